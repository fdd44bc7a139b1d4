package repository

import (
	"context"

	"tram-kitchen/internal/model"
)

// ProductFilter narrows product listings. Zero-valued fields are ignored.
// Sort columns are allowlisted by the repository; an unknown column falls
// back to name ascending.
type ProductFilter struct {
	ID           *int64
	CategoryID   *int64
	Status       string
	NameLike     string
	PriceMin     *float64
	PriceMax     *float64
	SpecialsOnly bool
	SortBy       string
	SortDesc     bool
	Limit        int
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products matching the filter, with the category name
	// attached via join.
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetBySlug retrieves a single product by its slug. Returns nil when absent.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// Create inserts a new product and returns the stored row.
	Create(ctx context.Context, product *model.Product) (*model.Product, error)

	// Update overwrites an existing product by ID and returns the stored row.
	Update(ctx context.Context, product *model.Product) (*model.Product, error)

	// Delete removes a product by ID. Returns model.ErrProductNotFound when
	// no row matched.
	Delete(ctx context.Context, id int64) error

	// Count returns the total number of products.
	Count(ctx context.Context) (int64, error)
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// List retrieves all categories ordered by name.
	List(ctx context.Context) ([]model.Category, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// Create inserts a new order and returns the stored row with its
	// generated ID.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)

	// GetByCode retrieves an order by its human-readable code. Returns nil
	// when absent.
	GetByCode(ctx context.Context, code string) (*model.Order, error)

	// List retrieves orders matching the filter, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// Patch updates the admin-editable field subset of an order and returns
	// the stored row. Returns model.ErrOrderNotFound when no row matched.
	Patch(ctx context.Context, id int64, patch model.OrderPatch) (*model.Order, error)

	// Stats aggregates dashboard figures over all orders.
	Stats(ctx context.Context) (*OrderStats, error)
}

// OrderStats holds the admin dashboard aggregates.
type OrderStats struct {
	TotalOrders      int64   `json:"total_orders"`
	PendingOrders    int64   `json:"pending_orders"`
	CompletedRevenue float64 `json:"completed_revenue"`
}
