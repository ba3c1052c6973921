package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/casepix/casepix-backend/config"
	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/internal/app/service"
	"github.com/casepix/casepix-backend/internal/db"
	"github.com/casepix/casepix-backend/internal/scraper"
)

// Seeds the catalog with the baseline case content rows, and optionally
// imports phone models from an xlsx file given as the first argument.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(db.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	contentRepo := repository.NewContentRepository(db.GetDB())
	if err := seedCaseContents(contentRepo); err != nil {
		log.Fatal("Failed to seed case contents:", err)
	}
	fmt.Println("Seeded default case contents.")

	if len(os.Args) < 2 {
		fmt.Println("No xlsx file given; skipping model import.")
		return
	}

	filePath := os.Args[1]
	file, err := os.Open(filePath)
	if err != nil {
		log.Fatal("Failed to open xlsx file:", err)
	}
	defer file.Close()

	brandRepo := repository.NewBrandRepository(db.GetDB())
	modelRepo := repository.NewModelRepository(db.GetDB())
	importService := service.NewImportService(brandRepo, modelRepo, scraper.New(cfg.Scraper.Timeout))

	fmt.Printf("Importing models from %s\n", filePath)
	result, err := importService.ImportModels(context.Background(), file)
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	fmt.Printf("Import finished: %d created, %d skipped, %d errors\n",
		result.Created, result.Skipped, len(result.Errors))
	for _, msg := range result.Errors {
		fmt.Println("  -", msg)
	}
}

// seedCaseContents writes a starter content row per case type so product
// pages have copy before an admin customizes anything. Upserts keep reruns
// harmless.
func seedCaseContents(repo repository.ContentRepository) error {
	defaults := []model.CaseContent{
		{
			CaseType:    model.CaseTypeSnap,
			Title:       "Snap Case",
			Description: "A slim, lightweight case that snaps right on.",
			Features: model.FeatureList{
				"Lightweight & slim",
				"Easy snap-on installation",
				"Scratch-resistant finish",
			},
			ContentBlocks: model.ContentBlockList{},
		},
		{
			CaseType:    model.CaseTypeMetal,
			Title:       "Metal Case",
			Description: "Aluminum construction with a laser-etched design.",
			Features: model.FeatureList{
				"Premium aluminum build",
				"Maximum protection",
				"Laser-etched design",
			},
			ContentBlocks: model.ContentBlockList{},
		},
	}

	for i := range defaults {
		if err := repo.Upsert(&defaults[i]); err != nil {
			return err
		}
	}
	return nil
}
