package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"campaignhub-backend/internal/domains/campaign/model"
	"campaignhub-backend/internal/domains/campaign/repository"
)

// In-memory repository fakes. The mutex mirrors the row-level
// serialization the real store provides, so the concurrency tests mean
// something.

type fakeCampaignRepo struct {
	mu        sync.Mutex
	campaigns map[uuid.UUID]*model.Campaign
	createErr error
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: make(map[uuid.UUID]*model.Campaign)}
}

var _ repository.CampaignRepository = (*fakeCampaignRepo)(nil)

func (f *fakeCampaignRepo) Create(ctx context.Context, c *model.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.campaigns {
		if existing.Slug == c.Slug {
			return model.ErrSlugTaken
		}
	}
	f.campaigns[c.ID] = c.Clone()
	return nil
}

func (f *fakeCampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[id]
	if !ok {
		return nil, model.ErrCampaignNotFound
	}
	return c.Clone(), nil
}

func (f *fakeCampaignRepo) GetBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.campaigns {
		if c.Slug == slug {
			return c.Clone(), nil
		}
	}
	return nil, model.ErrCampaignNotFound
}

func (f *fakeCampaignRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.campaigns {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCampaignRepo) ListPublic(ctx context.Context, sortBy string) ([]model.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Campaign, 0)
	for _, c := range f.campaigns {
		if !c.IsHidden {
			out = append(out, *c.Clone())
		}
	}
	sortCampaigns(out, sortBy)
	return out, nil
}

func (f *fakeCampaignRepo) ListMostVisited(ctx context.Context, limit int) ([]model.Campaign, error) {
	out, _ := f.ListPublic(ctx, model.SortMostVisited)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCampaignRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Campaign, 0)
	for _, c := range f.campaigns {
		if c.OwnerID == ownerID {
			out = append(out, *c.Clone())
		}
	}
	sortCampaigns(out, model.SortNewest)
	return out, nil
}

func sortCampaigns(list []model.Campaign, sortBy string) {
	sort.Slice(list, func(i, j int) bool {
		if sortBy == model.SortMostVisited && list[i].ViewCount != list[j].ViewCount {
			return list[i].ViewCount > list[j].ViewCount
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

func (f *fakeCampaignRepo) Update(ctx context.Context, c *model.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.campaigns[c.ID]; !ok {
		return model.ErrCampaignNotFound
	}
	f.campaigns[c.ID] = c.Clone()
	return nil
}

func (f *fakeCampaignRepo) SetCurrentAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[id]
	if !ok {
		return model.ErrCampaignNotFound
	}
	c.CurrentAmount = amount
	return nil
}

func (f *fakeCampaignRepo) SetCurrentBloodUnits(ctx context.Context, id uuid.UUID, units int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[id]
	if !ok {
		return model.ErrCampaignNotFound
	}
	c.CurrentBloodUnits = units
	return nil
}

func (f *fakeCampaignRepo) SetVisibility(ctx context.Context, id uuid.UUID, hidden bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[id]
	if !ok {
		return model.ErrCampaignNotFound
	}
	c.IsHidden = hidden
	return nil
}

func (f *fakeCampaignRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[id]
	if !ok {
		return 0, model.ErrCampaignNotFound
	}
	c.ViewCount++
	return c.ViewCount, nil
}

func (f *fakeCampaignRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.campaigns[id]; !ok {
		return model.ErrCampaignNotFound
	}
	delete(f.campaigns, id)
	return nil
}

// ---------------------------------------------------------------------

type fakeUpdateRepo struct {
	mu      sync.Mutex
	updates map[uuid.UUID]*model.CampaignUpdate
}

func newFakeUpdateRepo() *fakeUpdateRepo {
	return &fakeUpdateRepo{updates: make(map[uuid.UUID]*model.CampaignUpdate)}
}

var _ repository.UpdateRepository = (*fakeUpdateRepo)(nil)

func (f *fakeUpdateRepo) Create(ctx context.Context, u *model.CampaignUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	dup := *u
	f.updates[u.ID] = &dup
	return nil
}

func (f *fakeUpdateRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.CampaignUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.updates[id]
	if !ok {
		return nil, model.ErrUpdateNotFound
	}
	dup := *u
	return &dup, nil
}

func (f *fakeUpdateRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.CampaignUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.CampaignUpdate, 0)
	for _, u := range f.updates {
		if u.CampaignID == campaignID {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// removeByCampaign mimics ON DELETE CASCADE
func (f *fakeUpdateRepo) removeByCampaign(campaignID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.updates {
		if u.CampaignID == campaignID {
			delete(f.updates, id)
		}
	}
}

// ---------------------------------------------------------------------

type fakeHistoryRepo struct {
	mu        sync.Mutex
	entries   []model.EditHistoryEntry
	createErr error
}

var _ repository.EditHistoryRepository = (*fakeHistoryRepo)(nil)

func (f *fakeHistoryRepo) Create(ctx context.Context, entry *model.EditHistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeHistoryRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.EditHistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.EditHistoryEntry, 0)
	for _, e := range f.entries {
		if e.CampaignID == campaignID {
			if e.EditorName == "" {
				e.EditorName = model.UnknownEditorName
			}
			out = append(out, e)
		}
	}
	return out, nil
}
