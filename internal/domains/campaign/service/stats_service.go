package service

import (
	"context"

	"campaignhub-backend/internal/domains/campaign/model"
	"campaignhub-backend/internal/domains/campaign/repository"
)

// =====================================================
// STATS SERVICE
// =====================================================

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{
		statsRepo: statsRepo,
	}
}

// GetPlatformStats recomputes aggregates from live rows on every call.
// At this scale the counting queries are cheap; they are the first
// thing to revisit if campaign volume grows.
func (s *statsService) GetPlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	return s.statsRepo.GetPlatformStats(ctx)
}
