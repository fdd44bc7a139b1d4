package service

import (
	"context"
	"fmt"

	"tram-kitchen/internal/model"
	"tram-kitchen/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "catalog").Logger(),
	}
}

// ListProducts retrieves products for the storefront or admin listing.
// Storefront queries only ever see active products; admin queries may ask
// for a specific status or everything.
func (s *catalogService) ListProducts(ctx context.Context, query CatalogQuery) ([]model.Product, error) {
	filter := repository.ProductFilter{
		CategoryID:   query.CategoryID,
		NameLike:     query.Search,
		PriceMin:     query.PriceMin,
		PriceMax:     query.PriceMax,
		SpecialsOnly: query.SpecialsOnly,
		SortBy:       query.SortBy,
		SortDesc:     query.SortDesc,
		Limit:        query.Limit,
	}

	switch {
	case query.IncludeAll:
		filter.Status = query.Status
	default:
		filter.Status = model.ProductStatusActive
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// GetProductBySlug retrieves a single product for the detail page.
func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	if slug == "" {
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("failed to get product by slug")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		s.logger.Debug().Str("slug", slug).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// GetProductByID retrieves a single product, for cart and wishlist adds.
func (s *catalogService) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by id")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// ListCategories retrieves all categories.
func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateProduct inserts a product, deriving the slug from the name when absent.
func (s *catalogService) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if product.Slug == "" {
		product.Slug = model.Slugify(product.Name)
	}
	if product.Status == "" {
		product.Status = model.ProductStatusActive
	}

	created, err := s.productRepo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Int64("product_id", created.ID).
		Str("slug", created.Slug).
		Msg("product created")

	return created, nil
}

// UpdateProduct overwrites a product by ID.
func (s *catalogService) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if product.Slug == "" {
		product.Slug = model.Slugify(product.Name)
	}

	updated, err := s.productRepo.Update(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to update product")
		return nil, err
	}

	s.logger.Info().Int64("product_id", updated.ID).Msg("product updated")

	return updated, nil
}

// DeleteProduct removes a product by ID.
func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return err
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")

	return nil
}

// validateProduct enforces the fields every stored product needs.
func validateProduct(product *model.Product) error {
	if product == nil {
		return fmt.Errorf("product is nil")
	}
	if product.Name == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Product name is required")
	}
	if product.Price < 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Product price cannot be negative")
	}
	if product.Status != "" && !model.ValidStatus(product.Status) {
		return model.ErrInvalidStatus
	}
	return nil
}
