package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tram-kitchen/internal/model"
	"tram-kitchen/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func productTestRouter(h *ProductHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/products", h.List)
	r.Get("/api/products/{slug}", h.GetBySlug)
	r.Get("/api/categories", h.Categories)
	return r
}

func TestProductHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	testProducts := []model.Product{
		{ID: 1, Name: "Bánh chưng", Slug: "banh-chung", Price: 45000, Status: model.ProductStatusActive},
		{ID: 2, Name: "Chả lụa", Slug: "cha-lua", Price: 10000, Status: model.ProductStatusActive},
	}

	tests := []struct {
		name           string
		queryParams    string
		expectedQuery  *service.CatalogQuery
		mockReturn     []model.Product
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success without filters",
			queryParams:    "",
			expectedQuery:  &service.CatalogQuery{},
			mockReturn:     testProducts,
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Success with filters",
			queryParams: "?search=b%C3%A1nh&sort=price&order=desc&limit=5&special=true",
			expectedQuery: &service.CatalogQuery{
				Search:       "bánh",
				SortBy:       "price",
				SortDesc:     true,
				Limit:        5,
				SpecialsOnly: true,
			},
			mockReturn:     testProducts[:1],
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid category parameter",
			queryParams:    "?category=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid price_min parameter",
			queryParams:    "?price_min=cheap",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid limit parameter",
			queryParams:    "?limit=-1",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Service error",
			queryParams:    "",
			expectedQuery:  &service.CatalogQuery{},
			mockError:      errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := new(MockCatalogService)
			if tt.expectedQuery != nil {
				catalog.On("ListProducts", mock.Anything, *tt.expectedQuery).
					Return(tt.mockReturn, tt.mockError)
			}

			h := NewProductHandler(catalog, logger)
			req := httptest.NewRequest(http.MethodGet, "/api/products"+tt.queryParams, nil)
			w := httptest.NewRecorder()

			productTestRouter(h).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var got []model.Product
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, tt.mockReturn, got)
			}
			catalog.AssertExpectations(t)
		})
	}
}

func TestProductHandler_GetBySlug(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Found", func(t *testing.T) {
		catalog := new(MockCatalogService)
		product := &model.Product{ID: 1, Name: "Bánh chưng", Slug: "banh-chung"}
		catalog.On("GetProductBySlug", mock.Anything, "banh-chung").Return(product, nil)

		h := NewProductHandler(catalog, logger)
		req := httptest.NewRequest(http.MethodGet, "/api/products/banh-chung", nil)
		w := httptest.NewRecorder()

		productTestRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got model.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, *product, got)
	})

	t.Run("Not found", func(t *testing.T) {
		catalog := new(MockCatalogService)
		catalog.On("GetProductBySlug", mock.Anything, "missing").Return(nil, model.ErrProductNotFound)

		h := NewProductHandler(catalog, logger)
		req := httptest.NewRequest(http.MethodGet, "/api/products/missing", nil)
		w := httptest.NewRecorder()

		productTestRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp model.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, model.ErrCodeProductNotFound, resp.Error)
	})
}

func TestProductHandler_Categories(t *testing.T) {
	logger := zerolog.Nop()

	catalog := new(MockCatalogService)
	categories := []model.Category{{ID: 1, Name: "Món chính"}}
	catalog.On("ListCategories", mock.Anything).Return(categories, nil)

	h := NewProductHandler(catalog, logger)
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	w := httptest.NewRecorder()

	productTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []model.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, categories, got)
}
