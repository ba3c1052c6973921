package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/internal/app/service"
	"github.com/casepix/casepix-backend/internal/db"
	"github.com/casepix/casepix-backend/internal/events"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCompatibilityControllerTest(t *testing.T) (*gin.Engine, *model.MobileModel, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	compatRepo := repository.NewCompatibilityRepository(testDB)
	modelRepo := repository.NewModelRepository(testDB)
	compatService := service.NewCompatibilityService(compatRepo, modelRepo)
	controller := NewCompatibilityController(compatService, events.NewHub())

	brand := &model.MobileBrand{Name: "Samsung"}
	require.NoError(t, testDB.Create(brand).Error)
	phone := &model.MobileModel{BrandID: brand.ID, Name: "Galaxy S25"}
	require.NoError(t, testDB.Create(phone).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/compatibility/check", controller.CheckAvailability)
	router.GET("/admin/compatibility", controller.ListRegistry)
	router.PUT("/admin/compatibility", controller.SetVisibility)
	router.PUT("/admin/compatibility/bulk", controller.BulkSetVisibility)
	router.DELETE("/admin/compatibility/:id", controller.DeleteEntry)

	return router, phone, testDB
}

func checkAvailability(t *testing.T, router *gin.Engine, modelID uint, caseType string) map[string]interface{} {
	t.Helper()

	url := fmt.Sprintf("/compatibility/check?model_id=%d&case_type=%s", modelID, caseType)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestCompatibilityController_CheckAvailability_DefaultTrue(t *testing.T) {
	router, phone, _ := setupCompatibilityControllerTest(t)

	response := checkAvailability(t, router, phone.ID, "snap")
	assert.Equal(t, true, response["is_available"])
}

func TestCompatibilityController_CheckAvailability_InvalidParams(t *testing.T) {
	router, phone, _ := setupCompatibilityControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/compatibility/check?model_id=abc&case_type=snap", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	url := fmt.Sprintf("/compatibility/check?model_id=%d&case_type=leather", phone.ID)
	req = httptest.NewRequest(http.MethodGet, url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompatibilityController_SetVisibility(t *testing.T) {
	router, phone, _ := setupCompatibilityControllerTest(t)

	body, _ := json.Marshal(gin.H{
		"model_id":   phone.ID,
		"case_type":  "metal",
		"is_visible": false,
	})
	req := httptest.NewRequest(http.MethodPut, "/admin/compatibility", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	response := checkAvailability(t, router, phone.ID, "metal")
	assert.Equal(t, false, response["is_available"])

	// Snap availability is untouched.
	response = checkAvailability(t, router, phone.ID, "snap")
	assert.Equal(t, true, response["is_available"])
}

func TestCompatibilityController_SetVisibility_ModelNotFound(t *testing.T) {
	router, _, _ := setupCompatibilityControllerTest(t)

	body, _ := json.Marshal(gin.H{
		"model_id":   9999,
		"case_type":  "snap",
		"is_visible": false,
	})
	req := httptest.NewRequest(http.MethodPut, "/admin/compatibility", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompatibilityController_BulkSetVisibility(t *testing.T) {
	router, phone, testDB := setupCompatibilityControllerTest(t)

	body, _ := json.Marshal(gin.H{
		"updates": []gin.H{
			{"model_id": phone.ID, "case_type": "snap", "is_visible": false},
			{"model_id": phone.ID, "case_type": "metal", "is_visible": false},
		},
	})
	req := httptest.NewRequest(http.MethodPut, "/admin/compatibility/bulk", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	testDB.Model(&model.CompatibleGroup{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestCompatibilityController_DeleteEntry_RestoresDefault(t *testing.T) {
	router, phone, testDB := setupCompatibilityControllerTest(t)

	body, _ := json.Marshal(gin.H{
		"model_id":   phone.ID,
		"case_type":  "snap",
		"is_visible": false,
	})
	req := httptest.NewRequest(http.MethodPut, "/admin/compatibility", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var group model.CompatibleGroup
	require.NoError(t, testDB.Where("model_id = ?", phone.ID).First(&group).Error)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/compatibility/%d", group.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	response := checkAvailability(t, router, phone.ID, "snap")
	assert.Equal(t, true, response["is_available"])
}
