package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"campaignhub-backend/internal/domains/campaign/model"
	"campaignhub-backend/internal/domains/campaign/repository"
	"campaignhub-backend/internal/shared/utils"
)

// =====================================================
// UPDATE FEED SERVICE
// =====================================================

type updateService struct {
	campaignRepo repository.CampaignRepository
	updateRepo   repository.UpdateRepository
}

func NewUpdateService(
	campaignRepo repository.CampaignRepository,
	updateRepo repository.UpdateRepository,
) UpdateService {
	return &updateService{
		campaignRepo: campaignRepo,
		updateRepo:   updateRepo,
	}
}

func (s *updateService) Create(ctx context.Context, idOrSlug string, authorID uuid.UUID, req model.CreateUpdateRequest) (*model.CampaignUpdate, error) {
	// Step 1: Validate
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Existence before ownership
	campaign, err := s.resolveCampaign(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if campaign.OwnerID != authorID {
		return nil, model.ErrNotOwner
	}

	// Step 3: Append to the feed
	update := &model.CampaignUpdate{
		ID:          uuid.New(),
		CampaignID:  campaign.ID,
		AuthorID:    authorID,
		Title:       req.Title,
		Description: req.Description,
		Type:        model.UpdateType(req.Type),
		Image:       utils.StringPtr(req.Image),
	}
	if err := s.updateRepo.Create(ctx, update); err != nil {
		return nil, err
	}

	return update, nil
}

// ListForCampaign is intentionally open: supporters follow progress
// through the feed without authenticating.
func (s *updateService) ListForCampaign(ctx context.Context, idOrSlug string) ([]model.CampaignUpdate, error) {
	campaign, err := s.resolveCampaign(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	return s.updateRepo.ListByCampaign(ctx, campaign.ID)
}

func (s *updateService) resolveCampaign(ctx context.Context, idOrSlug string) (*model.Campaign, error) {
	if id, err := uuid.Parse(idOrSlug); err == nil {
		campaign, err := s.campaignRepo.GetByID(ctx, id)
		if !errors.Is(err, model.ErrCampaignNotFound) {
			return campaign, err
		}
	}
	return s.campaignRepo.GetBySlug(ctx, idOrSlug)
}
