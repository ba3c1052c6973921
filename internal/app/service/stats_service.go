package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	statsCacheKey = "stats:dashboard"
	statsCacheTTL = 2 * time.Hour
)

// DashboardStats is the admin dashboard snapshot. It is recomputed on a
// schedule and cached, not calculated per request.
type DashboardStats struct {
	ProductCount       int64     `json:"product_count"`
	BrandCount         int       `json:"brand_count"`
	ModelCount         int       `json:"model_count"`
	HiddenCombinations int       `json:"hidden_combinations"`
	GeneratedAt        time.Time `json:"generated_at"`
}

type StatsService interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
	RefreshStats(ctx context.Context) (*DashboardStats, error)
}

type statsService struct {
	productRepo repository.ProductRepository
	brandRepo   repository.BrandRepository
	modelRepo   repository.ModelRepository
	compatRepo  repository.CompatibilityRepository
	cache       *redis.Client
}

func NewStatsService(
	productRepo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	modelRepo repository.ModelRepository,
	compatRepo repository.CompatibilityRepository,
	cache *redis.Client,
) StatsService {
	return &statsService{
		productRepo: productRepo,
		brandRepo:   brandRepo,
		modelRepo:   modelRepo,
		compatRepo:  compatRepo,
		cache:       cache,
	}
}

// GetStats returns the cached snapshot, computing one on a cache miss.
func (s *statsService) GetStats(ctx context.Context) (*DashboardStats, error) {
	data, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err == nil {
		var stats DashboardStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
		logger.Warn("Discarding malformed stats cache entry")
	} else if !errors.Is(err, redis.Nil) {
		logger.Error("Failed to read stats cache", err)
	}

	return s.RefreshStats(ctx)
}

// RefreshStats recomputes the snapshot and writes it to the cache.
func (s *statsService) RefreshStats(ctx context.Context) (*DashboardStats, error) {
	productCount, err := s.productRepo.Count()
	if err != nil {
		return nil, err
	}

	brands, err := s.brandRepo.FindAll()
	if err != nil {
		return nil, err
	}

	models, err := s.modelRepo.FindAll(nil)
	if err != nil {
		return nil, err
	}

	groups, err := s.compatRepo.FindAll()
	if err != nil {
		return nil, err
	}
	hidden := 0
	for _, g := range groups {
		if !g.IsVisible {
			hidden++
		}
	}

	stats := &DashboardStats{
		ProductCount:       productCount,
		BrandCount:         len(brands),
		ModelCount:         len(models),
		HiddenCombinations: hidden,
		GeneratedAt:        time.Now(),
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil {
		// A cache write failure is not fatal; the snapshot is still valid.
		logger.Error("Failed to write stats cache", err)
	}

	logger.Info("Dashboard stats refreshed", map[string]interface{}{
		"products":            stats.ProductCount,
		"brands":              stats.BrandCount,
		"models":              stats.ModelCount,
		"hidden_combinations": stats.HiddenCombinations,
	})
	return stats, nil
}
