package service

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/internal/db"
	"github.com/casepix/casepix-backend/internal/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func setupImportTest(t *testing.T) (ImportService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	brandRepo := repository.NewBrandRepository(testDB)
	modelRepo := repository.NewModelRepository(testDB)
	importService := NewImportService(brandRepo, modelRepo, scraper.New(2*time.Second))
	return importService, testDB
}

// buildWorkbook writes a header row plus the given data rows and returns the
// xlsx bytes the way an uploaded file would arrive.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	workbook := excelize.NewFile()
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	header := []interface{}{"Brand", "Model", "Image", "URL"}
	require.NoError(t, workbook.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, workbook.SetSheetRow(sheet, cellRef, &row))
	}

	buf, err := workbook.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportService_ImportModels(t *testing.T) {
	importService, testDB := setupImportTest(t)

	buf := buildWorkbook(t, [][]interface{}{
		{"Samsung", "Galaxy S25", "https://cdn.example.com/s25.jpg", ""},
		{"Samsung", "Galaxy Z Flip 6", "", ""},
		{"Apple", "iPhone 17", "https://cdn.example.com/ip17.jpg", ""},
	})

	result, err := importService.ImportModels(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	// Brands were created on first sight, once each.
	var brands int64
	testDB.Model(&model.MobileBrand{}).Count(&brands)
	assert.Equal(t, int64(2), brands)

	var flip model.MobileModel
	require.NoError(t, testDB.Where("name = ?", "Galaxy Z Flip 6").First(&flip).Error)
	assert.Empty(t, flip.Image)
}

func TestImportService_ImportModels_SkipsExisting(t *testing.T) {
	importService, _ := setupImportTest(t)

	buf := buildWorkbook(t, [][]interface{}{
		{"Apple", "iPhone 17", "", ""},
	})
	_, err := importService.ImportModels(context.Background(), buf)
	require.NoError(t, err)

	// Re-importing the same sheet creates nothing new.
	buf = buildWorkbook(t, [][]interface{}{
		{"Apple", "iPhone 17", "", ""},
		{"Apple", "iPhone 17 Pro", "", ""},
	})
	result, err := importService.ImportModels(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)
}

func TestImportService_ImportModels_ReportsBadRows(t *testing.T) {
	importService, _ := setupImportTest(t)

	buf := buildWorkbook(t, [][]interface{}{
		{"", "Nameless Brand", "", ""},
		{"Samsung", "", "", ""},
		{"Samsung", "Galaxy S25", "", ""},
	})

	result, err := importService.ImportModels(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "row 2")
	assert.Contains(t, result.Errors[1], "row 3")
}

func TestImportService_ImportModels_ScrapesMissingImages(t *testing.T) {
	importService, testDB := setupImportTest(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="Galaxy S25 Ultra" />
			<meta property="og:image" content="https://cdn.example.com/s25u.jpg" />
		</head><body></body></html>`))
	}))
	defer server.Close()

	buf := buildWorkbook(t, [][]interface{}{
		{"Samsung", "Galaxy S25 Ultra", "", server.URL},
	})

	result, err := importService.ImportModels(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Empty(t, result.Errors)

	var created model.MobileModel
	require.NoError(t, testDB.Where("name = ?", "Galaxy S25 Ultra").First(&created).Error)
	assert.Equal(t, "https://cdn.example.com/s25u.jpg", created.Image)
}

func TestImportService_ImportModels_ScrapeFailureDegrades(t *testing.T) {
	importService, testDB := setupImportTest(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	buf := buildWorkbook(t, [][]interface{}{
		{"Samsung", "Galaxy S25 Ultra", "", server.URL},
	})

	result, err := importService.ImportModels(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "scrape failed")

	var created model.MobileModel
	require.NoError(t, testDB.Where("name = ?", "Galaxy S25 Ultra").First(&created).Error)
	assert.Empty(t, created.Image)
}

func TestImportService_ImportModels_RejectsGarbage(t *testing.T) {
	importService, _ := setupImportTest(t)

	_, err := importService.ImportModels(context.Background(), bytes.NewBufferString("not an xlsx file"))
	assert.ErrorIs(t, err, ErrImportInvalidFile)
}

func TestImportService_ImportModels_EmptySheet(t *testing.T) {
	importService, _ := setupImportTest(t)

	buf := buildWorkbook(t, nil)
	_, err := importService.ImportModels(context.Background(), buf)
	assert.ErrorIs(t, err, ErrImportEmptyFile)
}
