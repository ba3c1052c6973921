package service

import (
	"testing"

	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCompatibilityTest(t *testing.T) (CompatibilityService, *model.MobileBrand, []model.MobileModel, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	compatRepo := repository.NewCompatibilityRepository(testDB)
	modelRepo := repository.NewModelRepository(testDB)
	compatService := NewCompatibilityService(compatRepo, modelRepo)

	brand := &model.MobileBrand{Name: "Samsung"}
	testDB.Create(brand)

	models := []model.MobileModel{
		{BrandID: brand.ID, Name: "Galaxy S25"},
		{BrandID: brand.ID, Name: "Galaxy S25 Ultra"},
		{BrandID: brand.ID, Name: "Galaxy Z Flip 6"},
	}
	testDB.Create(&models)

	return compatService, brand, models, testDB
}

func TestCompatibilityService_IsModelAvailable_DefaultsToAvailable(t *testing.T) {
	compatService, _, models, _ := setupCompatibilityTest(t)

	// No registry entry exists for any model.
	available, err := compatService.IsModelAvailable(models[0].ID, model.CaseTypeSnap)
	assert.NoError(t, err)
	assert.True(t, available)

	available, err = compatService.IsModelAvailable(models[0].ID, model.CaseTypeMetal)
	assert.NoError(t, err)
	assert.True(t, available)
}

func TestCompatibilityService_IsModelAvailable_Hidden(t *testing.T) {
	compatService, _, models, _ := setupCompatibilityTest(t)

	_, err := compatService.SetVisibility(VisibilityUpdate{
		ModelID:   models[0].ID,
		CaseType:  model.CaseTypeMetal,
		IsVisible: false,
	})
	require.NoError(t, err)

	available, err := compatService.IsModelAvailable(models[0].ID, model.CaseTypeMetal)
	assert.NoError(t, err)
	assert.False(t, available)

	// Hiding metal does not touch snap availability.
	available, err = compatService.IsModelAvailable(models[0].ID, model.CaseTypeSnap)
	assert.NoError(t, err)
	assert.True(t, available)
}

func TestCompatibilityService_IsModelAvailable_InvalidCaseType(t *testing.T) {
	compatService, _, models, _ := setupCompatibilityTest(t)

	_, err := compatService.IsModelAvailable(models[0].ID, model.CaseType("leather"))
	assert.ErrorIs(t, err, ErrInvalidCaseType)
}

func TestCompatibilityService_SetVisibility_UpsertsSingleRow(t *testing.T) {
	compatService, _, models, testDB := setupCompatibilityTest(t)

	_, err := compatService.SetVisibility(VisibilityUpdate{
		ModelID:   models[1].ID,
		CaseType:  model.CaseTypeSnap,
		IsVisible: false,
	})
	require.NoError(t, err)

	// Writing the same pair again must update the row, not duplicate it.
	_, err = compatService.SetVisibility(VisibilityUpdate{
		ModelID:   models[1].ID,
		CaseType:  model.CaseTypeSnap,
		IsVisible: true,
	})
	require.NoError(t, err)

	var count int64
	testDB.Model(&model.CompatibleGroup{}).
		Where("model_id = ? AND case_type = ?", models[1].ID, model.CaseTypeSnap).
		Count(&count)
	assert.Equal(t, int64(1), count)

	available, err := compatService.IsModelAvailable(models[1].ID, model.CaseTypeSnap)
	assert.NoError(t, err)
	assert.True(t, available)
}

func TestCompatibilityService_SetVisibility_ModelNotFound(t *testing.T) {
	compatService, _, _, _ := setupCompatibilityTest(t)

	_, err := compatService.SetVisibility(VisibilityUpdate{
		ModelID:   9999,
		CaseType:  model.CaseTypeSnap,
		IsVisible: false,
	})
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestCompatibilityService_ListAvailableModels_ExcludesHidden(t *testing.T) {
	compatService, brand, models, _ := setupCompatibilityTest(t)

	_, err := compatService.SetVisibility(VisibilityUpdate{
		ModelID:   models[2].ID,
		CaseType:  model.CaseTypeMetal,
		IsVisible: false,
	})
	require.NoError(t, err)

	available, err := compatService.ListAvailableModels(&brand.ID, model.CaseTypeMetal)
	require.NoError(t, err)
	assert.Len(t, available, 2)
	for _, m := range available {
		assert.NotEqual(t, models[2].ID, m.ID)
	}

	// The same model remains listed for snap.
	available, err = compatService.ListAvailableModels(&brand.ID, model.CaseTypeSnap)
	require.NoError(t, err)
	assert.Len(t, available, 3)
}

func TestCompatibilityService_ListModelsWithAvailability(t *testing.T) {
	compatService, brand, models, _ := setupCompatibilityTest(t)

	// An explicit visible entry behaves the same as no entry.
	_, err := compatService.SetVisibility(VisibilityUpdate{
		ModelID:   models[0].ID,
		CaseType:  model.CaseTypeSnap,
		IsVisible: true,
	})
	require.NoError(t, err)
	_, err = compatService.SetVisibility(VisibilityUpdate{
		ModelID:   models[1].ID,
		CaseType:  model.CaseTypeSnap,
		IsVisible: false,
	})
	require.NoError(t, err)

	entries, err := compatService.ListModelsWithAvailability(&brand.ID, model.CaseTypeSnap)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byID := make(map[uint]bool, len(entries))
	for _, e := range entries {
		byID[e.Model.ID] = e.IsAvailable
	}
	assert.True(t, byID[models[0].ID])
	assert.False(t, byID[models[1].ID])
	assert.True(t, byID[models[2].ID])
}

func TestCompatibilityService_BulkSetVisibility(t *testing.T) {
	compatService, brand, models, _ := setupCompatibilityTest(t)

	updates := []VisibilityUpdate{
		{ModelID: models[0].ID, CaseType: model.CaseTypeMetal, IsVisible: false},
		{ModelID: models[1].ID, CaseType: model.CaseTypeMetal, IsVisible: false},
	}
	require.NoError(t, compatService.BulkSetVisibility(updates))

	available, err := compatService.ListAvailableModels(&brand.ID, model.CaseTypeMetal)
	require.NoError(t, err)
	assert.Len(t, available, 1)
	assert.Equal(t, models[2].ID, available[0].ID)
}

func TestCompatibilityService_DeleteEntry_RestoresAvailability(t *testing.T) {
	compatService, _, models, _ := setupCompatibilityTest(t)

	group, err := compatService.SetVisibility(VisibilityUpdate{
		ModelID:   models[0].ID,
		CaseType:  model.CaseTypeSnap,
		IsVisible: false,
	})
	require.NoError(t, err)

	available, _ := compatService.IsModelAvailable(models[0].ID, model.CaseTypeSnap)
	require.False(t, available)

	// Removing the entry reverts the pair to the default.
	require.NoError(t, compatService.DeleteEntry(group.ID))

	available, err = compatService.IsModelAvailable(models[0].ID, model.CaseTypeSnap)
	assert.NoError(t, err)
	assert.True(t, available)
}
