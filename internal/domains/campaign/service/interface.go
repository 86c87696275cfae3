package service

import (
	"context"

	"github.com/google/uuid"

	"campaignhub-backend/internal/domains/campaign/model"
)

// CampaignService - campaign lifecycle business logic. Every operation
// taking an idOrSlug accepts either the opaque id or the slug; callers
// never need to know which form they hold. Caller identity is always an
// explicit argument, never ambient state.
type CampaignService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req model.CreateCampaignRequest) (*model.Campaign, error)
	Get(ctx context.Context, idOrSlug string) (*model.Campaign, error)
	ListPublic(ctx context.Context, sort string) ([]model.Campaign, error)
	ListMostVisited(ctx context.Context) ([]model.Campaign, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Campaign, error)

	Update(ctx context.Context, idOrSlug string, callerID uuid.UUID, req model.UpdateCampaignRequest) (*model.Campaign, error)
	SetProgress(ctx context.Context, idOrSlug string, callerID uuid.UUID, req model.SetProgressRequest) (*model.Campaign, error)
	SetVisibility(ctx context.Context, idOrSlug string, callerID uuid.UUID, hidden bool) (*model.Campaign, error)
	IncrementView(ctx context.Context, idOrSlug string) (int64, error)
	Delete(ctx context.Context, idOrSlug string, callerID uuid.UUID) error

	GetEditHistory(ctx context.Context, idOrSlug string) ([]model.EditHistoryEntry, error)
}

// UpdateService - the campaign update feed
type UpdateService interface {
	Create(ctx context.Context, idOrSlug string, authorID uuid.UUID, req model.CreateUpdateRequest) (*model.CampaignUpdate, error)
	ListForCampaign(ctx context.Context, idOrSlug string) ([]model.CampaignUpdate, error)
}

// StatsService - platform aggregates
type StatsService interface {
	GetPlatformStats(ctx context.Context) (*model.PlatformStats, error)
}
