package service

import (
	"context"

	"tram-kitchen/internal/model"
)

// CatalogQuery is the storefront/back-office product listing request.
type CatalogQuery struct {
	CategoryID   *int64
	Search       string
	PriceMin     *float64
	PriceMax     *float64
	SortBy       string
	SortDesc     bool
	Limit        int
	IncludeAll   bool // admin listings see inactive and hidden products
	Status       string
	SpecialsOnly bool
}

// CatalogService defines operations over products and categories.
type CatalogService interface {
	// ListProducts retrieves products for the storefront or admin listing.
	ListProducts(ctx context.Context, query CatalogQuery) ([]model.Product, error)

	// GetProductBySlug retrieves a single product for the detail page.
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)

	// GetProductByID retrieves a single product, for cart and wishlist adds.
	GetProductByID(ctx context.Context, id int64) (*model.Product, error)

	// ListCategories retrieves all categories.
	ListCategories(ctx context.Context) ([]model.Category, error)

	// CreateProduct inserts a product, deriving the slug from the name when
	// absent.
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)

	// UpdateProduct overwrites a product by ID.
	UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error)

	// DeleteProduct removes a product by ID.
	DeleteProduct(ctx context.Context, id int64) error
}

// CheckoutRequest carries the delivery form a customer submits.
type CheckoutRequest struct {
	RecipientName   string  `json:"recipient_name"`
	PhoneNumber     string  `json:"phone_number"`
	DeliveryAddress string  `json:"delivery_address"`
	Note            *string `json:"note,omitempty"`
	DeliveryMethod  string  `json:"delivery_method"`
	PromoCode       *string `json:"promo_code,omitempty"`
	DeliveryDate    string  `json:"delivery_date,omitempty"`
	DeliveryTime    string  `json:"delivery_time,omitempty"`
}

// OrderService defines checkout and order administration operations.
type OrderService interface {
	// Checkout turns the session's cart into a persisted order and clears
	// the cart once the write has committed.
	Checkout(ctx context.Context, sessionID string, req *CheckoutRequest) (*model.Order, error)

	// Lookup retrieves an order by its human-readable code.
	Lookup(ctx context.Context, code string) (*model.Order, error)

	// ListOrders retrieves orders for the back office, newest first.
	ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// PatchOrder edits the admin-editable field subset of an order.
	PatchOrder(ctx context.Context, id int64, patch model.OrderPatch) (*model.Order, error)

	// Stats aggregates the dashboard figures.
	Stats(ctx context.Context) (*DashboardStats, error)
}

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalOrders      int64   `json:"total_orders"`
	PendingOrders    int64   `json:"pending_orders"`
	CompletedRevenue float64 `json:"completed_revenue"`
	TotalProducts    int64   `json:"total_products"`
}

// EventPublisher announces committed orders to downstream consumers.
// Publishing is best effort; checkout never fails on it.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order *model.Order)
}

// OrderCache is a read cache for the public order-lookup path.
type OrderCache interface {
	// Get returns the cached order, or nil on a miss or cache failure.
	Get(ctx context.Context, code string) *model.Order

	// Set stores the order; failures are swallowed.
	Set(ctx context.Context, order *model.Order)
}
