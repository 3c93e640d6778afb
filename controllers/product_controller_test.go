package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahsan-alam-500/tonycustom/controllers"
	"github.com/ahsan-alam-500/tonycustom/models"
	"github.com/ahsan-alam-500/tonycustom/services"
)

// stubProductService returns canned results.
type stubProductService struct {
	product *models.Product
	list    []models.Product
	total   int64
	err     *services.ServiceError
}

func (s *stubProductService) Create(_ context.Context, _ *models.ProductRequest) (*models.Product, *services.ServiceError) {
	return s.product, s.err
}
func (s *stubProductService) Update(_ context.Context, _ uuid.UUID, _ *models.ProductRequest) (*models.Product, *services.ServiceError) {
	return s.product, s.err
}
func (s *stubProductService) Delete(_ context.Context, _ uuid.UUID) *services.ServiceError {
	return s.err
}
func (s *stubProductService) Get(_ context.Context, _ uuid.UUID) (*models.Product, *services.ServiceError) {
	return s.product, s.err
}
func (s *stubProductService) GetBySlug(_ context.Context, _ string) (*models.Product, *services.ServiceError) {
	return s.product, s.err
}
func (s *stubProductService) List(_ context.Context, _ models.ProductFilter, _, _ int) ([]models.Product, int64, *services.ServiceError) {
	return s.list, s.total, s.err
}

func setupRouter(svc services.ProductService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	pc := controllers.NewProductController(svc, "http://cdn.test/storage")

	r := gin.New()
	r.POST("/products", pc.Store)
	r.GET("/products", pc.Index)
	r.GET("/shop/:slug", pc.ShowBySlug)
	return r
}

func validProductBody() map[string]interface{} {
	return map[string]interface{}{
		"name":        "Custom Card",
		"type":        "customizable",
		"price":       49.99,
		"status":      true,
		"category_id": uuid.NewString(),
		"skin_tones": []map[string]interface{}{
			{"name": "Light", "images": []string{"data:image/png;base64,aGVsbG8="}},
		},
	}
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStoreProduct_Created(t *testing.T) {
	offer := 39.99
	svc := &stubProductService{product: &models.Product{
		ID:         uuid.New(),
		Name:       "Custom Card",
		Slug:       "custom-card",
		Type:       models.ProductTypeCustomizable,
		Price:      49.99,
		OfferPrice: &offer,
		Status:     true,
	}}
	r := setupRouter(svc)

	w := postJSON(r, "/products", validProductBody())
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Product map[string]interface{} `json:"product"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Product created successfully", resp.Message)
	assert.Equal(t, "custom-card", resp.Data.Product["slug"])
	assert.Equal(t, 39.99, resp.Data.Product["final_price"])
	assert.Equal(t, 20.0, resp.Data.Product["discount_percentage"])
}

func TestStoreProduct_ValidationError(t *testing.T) {
	svc := &stubProductService{err: services.NewValidationError("offer_price", "offer_price must be less than price")}
	r := setupRouter(svc)

	w := postJSON(r, "/products", validProductBody())
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "offer_price must be less than price", resp.Errors["offer_price"])
}

func TestStoreProduct_MissingFields(t *testing.T) {
	r := setupRouter(&stubProductService{})

	w := postJSON(r, "/products", map[string]interface{}{"name": "No type"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "type")
	assert.Contains(t, resp.Errors, "price")
	assert.Contains(t, resp.Errors, "status")
	assert.Contains(t, resp.Errors, "category_id")
}

func TestShowBySlug_NotFound(t *testing.T) {
	svc := &stubProductService{err: services.NewNotFoundError("Product not found")}
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/shop/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Product not found", resp.Message)
}

func TestIndex_MediaURLsAbsolute(t *testing.T) {
	svc := &stubProductService{
		list: []models.Product{{
			ID:     uuid.New(),
			Name:   "Card",
			Slug:   "card",
			Type:   models.ProductTypeSimple,
			Price:  10,
			Status: true,
			Image:  "products/main/1_abc.png",
		}},
		total: 1,
	}
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Products   []map[string]interface{} `json:"products"`
			Pagination map[string]interface{}   `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Products, 1)
	assert.Equal(t, "http://cdn.test/storage/products/main/1_abc.png", resp.Data.Products[0]["image"])
	assert.Equal(t, float64(1), resp.Data.Pagination["total"])
	assert.Equal(t, false, resp.Data.Pagination["has_more_pages"])
}
