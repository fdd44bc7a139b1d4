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

// productColumns is the select list shared by every product query. The
// category name rides along through a left join so listings never need a
// second round trip.
const productColumns = `
	p.id, p.category_id, p.name, p.slug, p.description, p.image_url,
	p.price, p.discount_price, p.promo_text, p.status, p.is_special,
	c.name AS category_name
`

// productSortColumns is the allowlist for ORDER BY; anything else falls back
// to name.
var productSortColumns = map[string]string{
	"name":  "p.name",
	"price": "COALESCE(p.discount_price, p.price)",
	"id":    "p.id",
}

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// List retrieves products matching the filter.
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(productColumns)
	sb.WriteString(" FROM products p LEFT JOIN categories c ON c.id = p.category_id")

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ID != nil {
		conds = append(conds, "p.id = "+arg(*filter.ID))
	}
	if filter.CategoryID != nil {
		conds = append(conds, "p.category_id = "+arg(*filter.CategoryID))
	}
	if filter.Status != "" {
		conds = append(conds, "p.status = "+arg(filter.Status))
	}
	if filter.NameLike != "" {
		conds = append(conds, "p.name ILIKE "+arg("%"+filter.NameLike+"%"))
	}
	if filter.PriceMin != nil {
		conds = append(conds, "COALESCE(p.discount_price, p.price) >= "+arg(*filter.PriceMin))
	}
	if filter.PriceMax != nil {
		conds = append(conds, "COALESCE(p.discount_price, p.price) <= "+arg(*filter.PriceMax))
	}
	// Specials must be narrowed before LIMIT applies, so the predicate
	// belongs in the WHERE clause rather than on the scanned rows.
	if filter.SpecialsOnly {
		conds = append(conds, "p.is_special = TRUE")
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	sortCol, ok := productSortColumns[filter.SortBy]
	if !ok {
		sortCol = "p.name"
	}
	sb.WriteString(" ORDER BY " + sortCol)
	if filter.SortDesc {
		sb.WriteString(" DESC")
	}

	if filter.Limit > 0 {
		sb.WriteString(" LIMIT " + arg(filter.Limit))
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := "SELECT " + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`
	return r.getOne(ctx, query, id)
}

// GetBySlug retrieves a single product by its slug.
func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := "SELECT " + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.slug = $1
	`
	return r.getOne(ctx, query, slug)
}

func (r *productRepository) getOne(ctx context.Context, query string, arg any) (*model.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Interface("key", arg).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Interface("key", arg).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return p, nil
}

// Create inserts a new product and returns the stored row.
func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	query := `
		INSERT INTO products (category_id, name, slug, description, image_url,
			price, discount_price, promo_text, status, is_special)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		product.CategoryID, product.Name, product.Slug, product.Description,
		product.ImageURL, product.Price, product.DiscountPrice,
		product.PromoText, product.Status, product.IsSpecial,
	).Scan(&product.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Int64("product_id", product.ID).Msg("product created successfully")

	return r.GetByID(ctx, product.ID)
}

// Update overwrites an existing product by ID and returns the stored row.
func (r *productRepository) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	query := `
		UPDATE products
		SET category_id = $2, name = $3, slug = $4, description = $5,
			image_url = $6, price = $7, discount_price = $8, promo_text = $9,
			status = $10, is_special = $11
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		product.ID, product.CategoryID, product.Name, product.Slug,
		product.Description, product.ImageURL, product.Price,
		product.DiscountPrice, product.PromoText, product.Status,
		product.IsSpecial,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Debug().Int64("product_id", product.ID).Msg("product not found for update")
		return nil, model.ErrProductNotFound
	}

	return r.GetByID(ctx, product.ID)
}

// Delete removes a product by ID.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().Int64("product_id", id).Msg("product deleted successfully")

	return nil
}

// Count returns the total number of products.
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// scanProduct reads one product row in productColumns order.
func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.ImageURL,
		&p.Price, &p.DiscountPrice, &p.PromoText, &p.Status, &p.IsSpecial,
		&p.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
