package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/internal/scraper"
	"github.com/casepix/casepix-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrImportInvalidFile = errors.New("import file could not be read")
	ErrImportEmptyFile   = errors.New("import file has no data rows")
)

// ImportResult summarizes one bulk import run.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// ImportService loads phone models in bulk from an uploaded spreadsheet.
// Expected columns: brand, model name, optional image URL, optional source
// page URL. When a source URL is given and no image is, the page is scraped
// for one.
type ImportService interface {
	ImportModels(ctx context.Context, file io.Reader) (*ImportResult, error)
	ScrapeModelInfo(ctx context.Context, pageURL string) (*scraper.MobileInfo, error)
}

type importService struct {
	brandRepo repository.BrandRepository
	modelRepo repository.ModelRepository
	scraper   *scraper.Scraper
}

func NewImportService(
	brandRepo repository.BrandRepository,
	modelRepo repository.ModelRepository,
	sc *scraper.Scraper,
) ImportService {
	return &importService{
		brandRepo: brandRepo,
		modelRepo: modelRepo,
		scraper:   sc,
	}
}

func (s *importService) ImportModels(ctx context.Context, file io.Reader) (*ImportResult, error) {
	workbook, err := excelize.OpenReader(file)
	if err != nil {
		logger.Warn("Failed to open import workbook", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, ErrImportInvalidFile
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, ErrImportInvalidFile
	}
	if len(rows) <= 1 {
		return nil, ErrImportEmptyFile
	}

	result := &ImportResult{}
	var toCreate []model.MobileModel

	// First row is the header.
	for i, row := range rows[1:] {
		rowNum := i + 2

		brandName := cell(row, 0)
		modelName := cell(row, 1)
		image := cell(row, 2)
		pageURL := cell(row, 3)

		if brandName == "" || modelName == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: brand and model name are required", rowNum))
			continue
		}

		brand, err := s.findOrCreateBrand(brandName)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		if _, err := s.modelRepo.FindByBrandAndName(brand.ID, modelName); err == nil {
			result.Skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		if image == "" && pageURL != "" {
			if info, err := s.scraper.Scrape(ctx, pageURL); err == nil {
				image = info.Image
			} else {
				// Scrape failures degrade to an imageless model.
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: scrape failed: %v", rowNum, err))
			}
		}

		toCreate = append(toCreate, model.MobileModel{
			BrandID: brand.ID,
			Name:    modelName,
			Image:   image,
		})
	}

	created, err := s.modelRepo.BulkCreate(toCreate)
	if err != nil {
		return nil, err
	}
	result.Created = len(created)

	logger.Info("Model import completed", map[string]interface{}{
		"created": result.Created,
		"skipped": result.Skipped,
		"errors":  len(result.Errors),
	})
	return result, nil
}

func (s *importService) ScrapeModelInfo(ctx context.Context, pageURL string) (*scraper.MobileInfo, error) {
	return s.scraper.Scrape(ctx, pageURL)
}

func (s *importService) findOrCreateBrand(name string) (*model.MobileBrand, error) {
	brand, err := s.brandRepo.FindByName(name)
	if err == nil {
		return brand, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	brand = &model.MobileBrand{Name: name}
	if err := s.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
