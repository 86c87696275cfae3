package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"campaignhub-backend/internal/domains/campaign/model"
	"campaignhub-backend/internal/domains/campaign/repository"
	"campaignhub-backend/internal/shared/utils"
	"campaignhub-backend/pkg/logger"
)

// maxSlugRetries bounds the create loop when a concurrent creator wins
// the race for the same suffix. The unique constraint is the final
// arbiter; the loop just finds the next free suffix.
const maxSlugRetries = 5

// =====================================================
// CAMPAIGN SERVICE IMPLEMENTATION
// =====================================================

type campaignService struct {
	campaignRepo repository.CampaignRepository
	historyRepo  repository.EditHistoryRepository
}

func NewCampaignService(
	campaignRepo repository.CampaignRepository,
	historyRepo repository.EditHistoryRepository,
) CampaignService {
	return &campaignService{
		campaignRepo: campaignRepo,
		historyRepo:  historyRepo,
	}
}

// =====================================================
// CREATE CAMPAIGN
// =====================================================

func (s *campaignService) Create(ctx context.Context, ownerID uuid.UUID, req model.CreateCampaignRequest) (*model.Campaign, error) {
	// Step 1: Validate request shape and variant field set
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Pick a slug and insert; retry on the unique constraint.
	// The in-app existence probe returns a friendly incrementing suffix,
	// the constraint catches concurrent creators it could not see.
	for attempt := 0; attempt < maxSlugRetries; attempt++ {
		slug, err := utils.UniqueSlug(ctx, req.Title, s.campaignRepo.SlugExists)
		if err != nil {
			return nil, err
		}

		campaign := req.ToEntity(ownerID, slug, time.Now())
		err = s.campaignRepo.Create(ctx, campaign)
		if err == nil {
			return campaign, nil
		}
		if !errors.Is(err, model.ErrSlugTaken) {
			return nil, err
		}

		logger.Warn("slug taken by concurrent create, retrying", map[string]interface{}{
			"slug":    slug,
			"attempt": attempt + 1,
		})
	}

	return nil, model.ErrSlugTaken
}

// =====================================================
// READ / LIST
// =====================================================

// resolve - dual-mode lookup. A well-formed UUID is tried as an id
// first, then as a slug; anything else goes straight to the slug path.
func (s *campaignService) resolve(ctx context.Context, idOrSlug string) (*model.Campaign, error) {
	if id, err := uuid.Parse(idOrSlug); err == nil {
		campaign, err := s.campaignRepo.GetByID(ctx, id)
		if !errors.Is(err, model.ErrCampaignNotFound) {
			return campaign, err
		}
	}
	return s.campaignRepo.GetBySlug(ctx, idOrSlug)
}

func (s *campaignService) Get(ctx context.Context, idOrSlug string) (*model.Campaign, error) {
	return s.resolve(ctx, idOrSlug)
}

func (s *campaignService) ListPublic(ctx context.Context, sort string) ([]model.Campaign, error) {
	if sort != model.SortNewest && sort != model.SortMostVisited {
		sort = model.SortNewest
	}
	return s.campaignRepo.ListPublic(ctx, sort)
}

func (s *campaignService) ListMostVisited(ctx context.Context) ([]model.Campaign, error) {
	return s.campaignRepo.ListMostVisited(ctx, model.MostVisitedLimit)
}

func (s *campaignService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Campaign, error) {
	return s.campaignRepo.ListByOwner(ctx, ownerID)
}

// =====================================================
// EDIT CAMPAIGN
// =====================================================

func (s *campaignService) Update(ctx context.Context, idOrSlug string, callerID uuid.UUID, req model.UpdateCampaignRequest) (*model.Campaign, error) {
	// Step 1: Validate the patch shape
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Existence before ownership
	campaign, err := s.resolve(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if campaign.OwnerID != callerID {
		return nil, model.ErrNotOwner
	}

	// Step 3: Apply the patch to a copy and diff against the original
	updated := campaign.Clone()
	req.ApplyTo(updated)

	changes := model.ComputeDiff(campaign, updated)
	if len(changes) == 0 {
		// No-op edit: no write, no history, updated_at untouched
		return campaign, nil
	}

	// Step 4: Persist the full patch in one statement
	updated.UpdatedAt = time.Now()
	if err := s.campaignRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	// Step 5: Record the audit entry. Best-effort: a history write
	// failure leaves the edit un-audited but never rolls it back.
	entry := &model.EditHistoryEntry{
		ID:         uuid.New(),
		CampaignID: updated.ID,
		EditorID:   callerID,
		Changes:    changes,
	}
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		logger.Error("edit history write failed", err)
	}

	return updated, nil
}

// =====================================================
// PROGRESS & VISIBILITY
// =====================================================

// SetProgress sets the variant's counter to an absolute value. Progress
// flows through its own channel: no edit-history entry is written, but
// updated_at moves.
func (s *campaignService) SetProgress(ctx context.Context, idOrSlug string, callerID uuid.UUID, req model.SetProgressRequest) (*model.Campaign, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	campaign, err := s.resolve(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if campaign.OwnerID != callerID {
		return nil, model.ErrNotOwner
	}

	now := time.Now()
	switch campaign.Type {
	case model.TypeFundraising:
		amount := decimal.NewFromFloat(req.Value)
		if err := s.campaignRepo.SetCurrentAmount(ctx, campaign.ID, amount); err != nil {
			return nil, err
		}
		campaign.CurrentAmount = amount

	case model.TypeBloodDonation:
		if req.Value != math.Trunc(req.Value) {
			return nil, model.NewValidationError("blood units must be a whole number")
		}
		units := int(req.Value)
		if err := s.campaignRepo.SetCurrentBloodUnits(ctx, campaign.ID, units); err != nil {
			return nil, err
		}
		campaign.CurrentBloodUnits = units

	default:
		return nil, model.NewValidationError("unknown campaign type %q", campaign.Type)
	}

	campaign.UpdatedAt = now
	return campaign, nil
}

func (s *campaignService) SetVisibility(ctx context.Context, idOrSlug string, callerID uuid.UUID, hidden bool) (*model.Campaign, error) {
	campaign, err := s.resolve(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if campaign.OwnerID != callerID {
		return nil, model.ErrNotOwner
	}

	if err := s.campaignRepo.SetVisibility(ctx, campaign.ID, hidden); err != nil {
		return nil, err
	}

	campaign.IsHidden = hidden
	campaign.UpdatedAt = time.Now()
	return campaign, nil
}

// IncrementView - unauthenticated, every call counts. The increment is
// a single atomic statement at the storage layer.
func (s *campaignService) IncrementView(ctx context.Context, idOrSlug string) (int64, error) {
	campaign, err := s.resolve(ctx, idOrSlug)
	if err != nil {
		return 0, err
	}
	return s.campaignRepo.IncrementViewCount(ctx, campaign.ID)
}

// =====================================================
// DELETE
// =====================================================

func (s *campaignService) Delete(ctx context.Context, idOrSlug string, callerID uuid.UUID) error {
	campaign, err := s.resolve(ctx, idOrSlug)
	if err != nil {
		return err
	}
	if campaign.OwnerID != callerID {
		return model.ErrNotOwner
	}
	return s.campaignRepo.Delete(ctx, campaign.ID)
}

// =====================================================
// EDIT HISTORY
// =====================================================

func (s *campaignService) GetEditHistory(ctx context.Context, idOrSlug string) ([]model.EditHistoryEntry, error) {
	campaign, err := s.resolve(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	return s.historyRepo.ListByCampaign(ctx, campaign.ID)
}
