package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/internal/app/service"
	"github.com/casepix/casepix-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryCartRepository stands in for the Redis-backed store.
type memoryCartRepository struct {
	carts map[string]*model.Cart
}

func (m *memoryCartRepository) Get(_ context.Context, sessionID string) (*model.Cart, error) {
	if cart, ok := m.carts[sessionID]; ok {
		return cart, nil
	}
	return &model.Cart{SessionID: sessionID, Items: []model.CartItem{}}, nil
}

func (m *memoryCartRepository) Save(_ context.Context, cart *model.Cart) error {
	m.carts[cart.SessionID] = cart
	return nil
}

func (m *memoryCartRepository) Delete(_ context.Context, sessionID string) error {
	delete(m.carts, sessionID)
	return nil
}

var _ repository.CartRepository = (*memoryCartRepository)(nil)

func setupCartControllerTest(t *testing.T) (*gin.Engine, *model.Product, *model.MobileModel, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	contentRepo := repository.NewContentRepository(testDB)
	compatRepo := repository.NewCompatibilityRepository(testDB)
	modelRepo := repository.NewModelRepository(testDB)

	compatService := service.NewCompatibilityService(compatRepo, modelRepo)
	viewService := service.NewProductViewService(productRepo, contentRepo)
	cartRepo := &memoryCartRepository{carts: make(map[string]*model.Cart)}
	cartService := service.NewCartService(cartRepo, productRepo, compatService, viewService)
	controller := NewCartController(cartService)

	brand := &model.MobileBrand{Name: "Apple"}
	require.NoError(t, testDB.Create(brand).Error)
	phone := &model.MobileModel{BrandID: brand.ID, Name: "iPhone 17"}
	require.NoError(t, testDB.Create(phone).Error)
	product := &model.Product{Name: "Ocean Waves", BasePrice: 29}
	require.NoError(t, testDB.Create(product).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/cart", controller.GetCart)
	router.POST("/cart", controller.AddToCart)
	router.PUT("/cart/:product_id", controller.UpdateCartItem)
	router.DELETE("/cart/:product_id", controller.RemoveCartItem)
	router.DELETE("/cart", controller.ClearCart)

	return router, product, phone, testDB
}

func cartRequest(t *testing.T, router *gin.Engine, method, path, session string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set("X-Session-ID", session)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCartController_RequiresSessionHeader(t *testing.T) {
	router, _, _, _ := setupCartControllerTest(t)

	w := cartRequest(t, router, http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "X-Session-ID")
}

func TestCartController_AddAndGet(t *testing.T) {
	router, product, phone, _ := setupCartControllerTest(t)

	w := cartRequest(t, router, http.MethodPost, "/cart", "sess-1", gin.H{
		"product_id": product.ID,
		"quantity":   2,
		"brand_id":   phone.BrandID,
		"model_id":   phone.ID,
		"case_type":  "snap",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = cartRequest(t, router, http.MethodGet, "/cart", "sess-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail service.CartDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, 2, detail.ItemCount)
	assert.Equal(t, 58.0, detail.Total)

	// Another session sees an empty cart.
	w = cartRequest(t, router, http.MethodGet, "/cart", "sess-2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Empty(t, detail.Lines)
}

func TestCartController_AddToCart_HiddenModelConflict(t *testing.T) {
	router, product, phone, testDB := setupCartControllerTest(t)

	require.NoError(t, testDB.Create(&model.CompatibleGroup{
		ModelID:   phone.ID,
		CaseType:  model.CaseTypeMetal,
		IsVisible: false,
	}).Error)

	w := cartRequest(t, router, http.MethodPost, "/cart", "sess-1", gin.H{
		"product_id": product.ID,
		"brand_id":   phone.BrandID,
		"model_id":   phone.ID,
		"case_type":  "metal",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCartController_AddToCart_InvalidCaseType(t *testing.T) {
	router, product, phone, _ := setupCartControllerTest(t)

	w := cartRequest(t, router, http.MethodPost, "/cart", "sess-1", gin.H{
		"product_id": product.ID,
		"brand_id":   phone.BrandID,
		"model_id":   phone.ID,
		"case_type":  "glass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartController_AddToCart_UnknownProduct(t *testing.T) {
	router, _, phone, _ := setupCartControllerTest(t)

	w := cartRequest(t, router, http.MethodPost, "/cart", "sess-1", gin.H{
		"product_id": 9999,
		"brand_id":   phone.BrandID,
		"model_id":   phone.ID,
		"case_type":  "snap",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartController_UpdateAndRemove(t *testing.T) {
	router, product, phone, _ := setupCartControllerTest(t)

	w := cartRequest(t, router, http.MethodPost, "/cart", "sess-1", gin.H{
		"product_id": product.ID,
		"brand_id":   phone.BrandID,
		"model_id":   phone.ID,
		"case_type":  "snap",
	})
	require.Equal(t, http.StatusOK, w.Code)

	path := fmt.Sprintf("/cart/%d", product.ID)
	w = cartRequest(t, router, http.MethodPut, path, "sess-1", gin.H{"quantity": 4})
	require.Equal(t, http.StatusOK, w.Code)

	var detail service.CartDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, 4, detail.Lines[0].Quantity)

	w = cartRequest(t, router, http.MethodDelete, path, "sess-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Empty(t, detail.Lines)

	// Removing again is a 404.
	w = cartRequest(t, router, http.MethodDelete, path, "sess-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartController_ClearCart(t *testing.T) {
	router, product, phone, _ := setupCartControllerTest(t)

	w := cartRequest(t, router, http.MethodPost, "/cart", "sess-1", gin.H{
		"product_id": product.ID,
		"brand_id":   phone.BrandID,
		"model_id":   phone.ID,
		"case_type":  "snap",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = cartRequest(t, router, http.MethodDelete, "/cart", "sess-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = cartRequest(t, router, http.MethodGet, "/cart", "sess-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail service.CartDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Empty(t, detail.Lines)
}
