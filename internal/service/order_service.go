package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tram-kitchen/internal/cart"
	"tram-kitchen/internal/config"
	"tram-kitchen/internal/model"
	"tram-kitchen/internal/promo"
	"tram-kitchen/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	carts       *cart.Store
	validator   promo.Validator
	publisher   EventPublisher
	cache       OrderCache
	cfg         config.CheckoutConfig
	logger      zerolog.Logger
	now         func() time.Time
}

// NewOrderService creates a new order service. publisher and cache may be
// nil, in which case events and lookup caching are skipped.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	carts *cart.Store,
	validator promo.Validator,
	publisher EventPublisher,
	cache OrderCache,
	cfg config.CheckoutConfig,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		carts:       carts,
		validator:   validator,
		publisher:   publisher,
		cache:       cache,
		cfg:         cfg,
		logger:      logger.With().Str("service", "order").Logger(),
		now:         time.Now,
	}
}

// Checkout turns the session's cart into a persisted order. The cart is
// cleared only after the insert has committed; a failed write leaves the
// cart intact so the customer can retry.
func (s *orderService) Checkout(ctx context.Context, sessionID string, req *CheckoutRequest) (*model.Order, error) {
	if err := validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	c := s.carts.Get(sessionID)
	items := c.Items()
	if len(items) == 0 {
		s.logger.Debug().Str("session_id", sessionID).Msg("checkout attempted with empty cart")
		return nil, model.ErrEmptyCart
	}

	subtotal := c.Total()

	var discount float64
	if req.PromoCode != nil && *req.PromoCode != "" {
		if err := s.validator.Validate(ctx, *req.PromoCode); err != nil {
			s.logger.Warn().
				Str("promo_code", *req.PromoCode).
				Err(err).
				Msg("invalid promo code")
			return nil, err
		}
		discount = subtotal * s.cfg.PromoDiscountPct / 100
		s.logger.Debug().
			Str("promo_code", *req.PromoCode).
			Float64("discount", discount).
			Msg("promo code applied")
	}

	lines := make([]model.OrderLineItem, len(items))
	for i, item := range items {
		lines[i] = model.OrderLineItem{
			Name:       item.Name,
			Qty:        item.Quantity,
			TotalPrice: item.EffectivePrice() * float64(item.Quantity),
		}
	}
	itemsList, err := model.EncodeItemsList(lines)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode items list")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	now := s.now()
	deliveryDate := req.DeliveryDate
	if deliveryDate == "" {
		deliveryDate = now.Format("2006-01-02")
	}
	deliveryTime := req.DeliveryTime
	if deliveryTime == "" {
		deliveryTime = now.Format("15:04")
	}

	order := &model.Order{
		OrderCode:       s.newOrderCode(now),
		RecipientName:   req.RecipientName,
		PhoneNumber:     req.PhoneNumber,
		DeliveryAddress: req.DeliveryAddress,
		ItemsList:       itemsList,
		Note:            req.Note,
		Subtotal:        subtotal,
		ShippingFee:     s.cfg.ShippingFee,
		PromoCode:       req.PromoCode,
		DiscountAmount:  discount,
		TotalAmount:     subtotal + s.cfg.ShippingFee - discount,
		DeliveryMethod:  req.DeliveryMethod,
		PaymentStatus:   model.PaymentStatusUnpaid,
		DeliveryDate:    deliveryDate,
		DeliveryTime:    deliveryTime,
		Status:          model.OrderStatusPending,
		OrderTime:       now,
	}

	created, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Str("order_code", order.OrderCode).Msg("failed to persist order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	c.Clear()

	if s.publisher != nil {
		s.publisher.OrderCreated(ctx, created)
	}

	s.logger.Info().
		Str("order_code", created.OrderCode).
		Int("line_count", len(lines)).
		Float64("total_amount", created.TotalAmount).
		Msg("order created")

	return created, nil
}

// Lookup retrieves an order by its human-readable code, via the read cache
// when one is configured.
func (s *orderService) Lookup(ctx context.Context, code string) (*model.Order, error) {
	if code == "" {
		return nil, model.ErrOrderNotFound
	}

	if s.cache != nil {
		if order := s.cache.Get(ctx, code); order != nil {
			return order, nil
		}
	}

	order, err := s.orderRepo.GetByCode(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Str("order_code", code).Msg("failed to look up order")
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}
	if order == nil {
		s.logger.Debug().Str("order_code", code).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	if s.cache != nil {
		s.cache.Set(ctx, order)
	}

	return order, nil
}

// ListOrders retrieves orders for the back office, newest first.
func (s *orderService) ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Status != "" && !model.ValidOrderStatus(filter.Status) {
		return nil, model.ErrInvalidStatus
	}
	if filter.PaymentStatus != "" && !model.ValidPaymentStatus(filter.PaymentStatus) {
		return nil, model.ErrInvalidStatus
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// PatchOrder edits the admin-editable field subset of an order.
func (s *orderService) PatchOrder(ctx context.Context, id int64, patch model.OrderPatch) (*model.Order, error) {
	if patch.Status != nil && !model.ValidOrderStatus(*patch.Status) {
		return nil, model.ErrInvalidStatus
	}
	if patch.PaymentStatus != nil && !model.ValidPaymentStatus(*patch.PaymentStatus) {
		return nil, model.ErrInvalidStatus
	}

	updated, err := s.orderRepo.Patch(ctx, id, patch)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to patch order")
		return nil, err
	}

	s.logger.Info().Int64("order_id", id).Msg("order updated")

	return updated, nil
}

// Stats aggregates the dashboard figures.
func (s *orderService) Stats(ctx context.Context) (*DashboardStats, error) {
	orderStats, err := s.orderRepo.Stats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to aggregate order stats")
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}

	productCount, err := s.productRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count products")
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}

	return &DashboardStats{
		TotalOrders:      orderStats.TotalOrders,
		PendingOrders:    orderStats.PendingOrders,
		CompletedRevenue: orderStats.CompletedRevenue,
		TotalProducts:    productCount,
	}, nil
}

// newOrderCode builds a human-readable unique order code, e.g. DH-260901-4F21A0.
func (s *orderService) newOrderCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", s.cfg.OrderCodePrefix, now.Format("060102"), suffix)
}

// validateCheckoutRequest enforces the required delivery-form fields.
func validateCheckoutRequest(req *CheckoutRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "Checkout request is required")
	}
	if strings.TrimSpace(req.RecipientName) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Recipient name is required")
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Phone number is required")
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Delivery address is required")
	}
	switch req.DeliveryMethod {
	case "":
		req.DeliveryMethod = model.DeliveryMethodCOD
	case model.DeliveryMethodCOD, model.DeliveryMethodBanking:
	default:
		return model.NewDomainError(model.ErrCodeMissingField, "Unknown delivery method")
	}
	return nil
}
