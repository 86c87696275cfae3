package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"campaignhub-backend/internal/domains/campaign/model"
)

// CampaignRepository - data access for the campaign store.
// The slug column carries a UNIQUE constraint; Create translates the
// unique violation to model.ErrSlugTaken so the service can retry with
// the next suffix.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *model.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error)
	GetBySlug(ctx context.Context, slug string) (*model.Campaign, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListPublic returns visible campaigns ordered per sort
	// (model.SortNewest or model.SortMostVisited).
	ListPublic(ctx context.Context, sort string) ([]model.Campaign, error)
	ListMostVisited(ctx context.Context, limit int) ([]model.Campaign, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Campaign, error)

	Update(ctx context.Context, campaign *model.Campaign) error
	SetCurrentAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	SetCurrentBloodUnits(ctx context.Context, id uuid.UUID, units int) error
	SetVisibility(ctx context.Context, id uuid.UUID, hidden bool) error

	// IncrementViewCount bumps the counter atomically in the database
	// and returns the post-increment value.
	IncrementViewCount(ctx context.Context, id uuid.UUID) (int64, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

// UpdateRepository - append-only campaign update feed
type UpdateRepository interface {
	Create(ctx context.Context, update *model.CampaignUpdate) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.CampaignUpdate, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.CampaignUpdate, error)
}

// EditHistoryRepository - append-only audit trail of structural edits
type EditHistoryRepository interface {
	Create(ctx context.Context, entry *model.EditHistoryEntry) error
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.EditHistoryEntry, error)
}

// StatsRepository - platform aggregates computed from live data
type StatsRepository interface {
	GetPlatformStats(ctx context.Context) (*model.PlatformStats, error)
}
