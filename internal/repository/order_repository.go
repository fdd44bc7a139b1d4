package repository

import (
	"context"
	"fmt"
	"strings"

	"tram-kitchen/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = `
	id, order_code, recipient_name, phone_number, delivery_address,
	items_list, note, subtotal, shipping_fee, promo_code, discount_amount,
	total_amount, delivery_method, payment_status, delivery_date,
	delivery_time, status, order_time
`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// Create inserts a new order and returns the stored row.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	query := `
		INSERT INTO orders (order_code, recipient_name, phone_number,
			delivery_address, items_list, note, subtotal, shipping_fee,
			promo_code, discount_amount, total_amount, delivery_method,
			payment_status, delivery_date, delivery_time, status, order_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		order.OrderCode, order.RecipientName, order.PhoneNumber,
		order.DeliveryAddress, order.ItemsList, order.Note, order.Subtotal,
		order.ShippingFee, order.PromoCode, order.DiscountAmount,
		order.TotalAmount, order.DeliveryMethod, order.PaymentStatus,
		order.DeliveryDate, order.DeliveryTime, order.Status, order.OrderTime,
	).Scan(&order.ID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_code", order.OrderCode).
			Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Int64("order_id", order.ID).
		Str("order_code", order.OrderCode).
		Msg("order created successfully")

	return order, nil
}

// GetByCode retrieves an order by its human-readable code.
func (r *orderRepository) GetByCode(ctx context.Context, code string) (*model.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders WHERE order_code = $1"

	o, err := scanOrder(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_code", code).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_code", code).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	return o, nil
}

// List retrieves orders matching the filter, newest first.
func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + orderColumns + " FROM orders")

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf(
			"(order_code ILIKE %s OR recipient_name ILIKE %s OR phone_number ILIKE %s)", p, p, p))
	}
	if filter.Status != "" {
		conds = append(conds, "status = "+arg(filter.Status))
	}
	if filter.PaymentStatus != "" {
		conds = append(conds, "payment_status = "+arg(filter.PaymentStatus))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY order_time DESC")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// Patch updates the admin-editable field subset of an order.
func (r *orderRepository) Patch(ctx context.Context, id int64, patch model.OrderPatch) (*model.Order, error) {
	var (
		sets []string
		args []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if patch.Status != nil {
		sets = append(sets, "status = "+arg(*patch.Status))
	}
	if patch.PaymentStatus != nil {
		sets = append(sets, "payment_status = "+arg(*patch.PaymentStatus))
	}
	if patch.RecipientName != nil {
		sets = append(sets, "recipient_name = "+arg(*patch.RecipientName))
	}
	if patch.PhoneNumber != nil {
		sets = append(sets, "phone_number = "+arg(*patch.PhoneNumber))
	}
	if patch.DeliveryAddress != nil {
		sets = append(sets, "delivery_address = "+arg(*patch.DeliveryAddress))
	}

	if len(sets) == 0 {
		return r.getByID(ctx, id)
	}

	query := "UPDATE orders SET " + strings.Join(sets, ", ") +
		" WHERE id = " + arg(id) + " RETURNING " + orderColumns

	o, err := scanOrder(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("order_id", id).Msg("order not found for patch")
			return nil, model.ErrOrderNotFound
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to patch order")
		return nil, fmt.Errorf("failed to patch order: %w", err)
	}

	r.logger.Debug().Int64("order_id", id).Msg("order patched successfully")

	return o, nil
}

// Stats aggregates dashboard figures over all orders.
func (r *orderRepository) Stats(ctx context.Context) (*OrderStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'completed'), 0)
		FROM orders
	`

	var stats OrderStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalOrders,
		&stats.PendingOrders,
		&stats.CompletedRevenue,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order stats")
		return nil, fmt.Errorf("failed to query order stats: %w", err)
	}

	return &stats, nil
}

func (r *orderRepository) getByID(ctx context.Context, id int64) (*model.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders WHERE id = $1"

	o, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, model.ErrOrderNotFound
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	return o, nil
}

// scanOrder reads one order row in orderColumns order.
func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.OrderCode, &o.RecipientName, &o.PhoneNumber,
		&o.DeliveryAddress, &o.ItemsList, &o.Note, &o.Subtotal,
		&o.ShippingFee, &o.PromoCode, &o.DiscountAmount, &o.TotalAmount,
		&o.DeliveryMethod, &o.PaymentStatus, &o.DeliveryDate,
		&o.DeliveryTime, &o.Status, &o.OrderTime,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
