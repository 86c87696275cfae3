package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignhub-backend/internal/domains/campaign/model"
)

func floatPtr(v float64) *float64 { return &v }

func fundraisingRequest(title string) model.CreateCampaignRequest {
	return model.CreateCampaignRequest{
		Title:        title,
		Description:  "A description long enough to pass validation.",
		Type:         string(model.TypeFundraising),
		TargetAmount: floatPtr(1000),
		PaymentDetails: &model.PaymentDetailsInput{
			MobileBanking: "0123456789",
		},
	}
}

func bloodRequest(title string) model.CreateCampaignRequest {
	units := 20
	return model.CreateCampaignRequest{
		Title:       title,
		Description: "A description long enough to pass validation.",
		Type:        string(model.TypeBloodDonation),
		Hospital: &model.HospitalInfoInput{
			Name:    "City General",
			Address: "1 Main St",
		},
		Urgency:          string(model.UrgencyHigh),
		TargetBloodUnits: &units,
	}
}

func newServiceUnderTest() (CampaignService, *fakeCampaignRepo, *fakeHistoryRepo) {
	repo := newFakeCampaignRepo()
	history := &fakeHistoryRepo{}
	return NewCampaignService(repo, history), repo, history
}

// =====================================================
// CREATE & SLUG RESOLUTION
// =====================================================

func TestCreate_AssignsSlugAndZeroCounters(t *testing.T) {
	svc, _, _ := newServiceUnderTest()
	owner := uuid.New()

	campaign, err := svc.Create(context.Background(), owner, fundraisingRequest("Save the Park"))
	require.NoError(t, err)

	assert.Equal(t, "save-the-park", campaign.Slug)
	assert.Equal(t, owner, campaign.OwnerID)
	assert.False(t, campaign.IsHidden)
	assert.Zero(t, campaign.ViewCount)
	assert.True(t, campaign.CurrentAmount.IsZero())
}

func TestCreate_SameTitleGetsSuffixedSlug(t *testing.T) {
	svc, _, _ := newServiceUnderTest()
	ctx := context.Background()

	first, err := svc.Create(ctx, uuid.New(), fundraisingRequest("Save the Park"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, uuid.New(), fundraisingRequest("Save The Park"))
	require.NoError(t, err)

	assert.Equal(t, "save-the-park", first.Slug)
	assert.Equal(t, "save-the-park-1", second.Slug)

	// both resolve independently
	got, err := svc.Get(ctx, "save-the-park-1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestCreate_InvalidRequestRejectedBeforeAnyWrite(t *testing.T) {
	svc, repo, _ := newServiceUnderTest()

	req := fundraisingRequest("Save the Park")
	req.TargetAmount = nil
	_, err := svc.Create(context.Background(), uuid.New(), req)

	assert.Error(t, err)
	assert.Empty(t, repo.campaigns)
}

// =====================================================
// DUAL-MODE LOOKUP
// =====================================================

func TestGet_AcceptsIDOrSlug(t *testing.T) {
	svc, _, _ := newServiceUnderTest()
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), bloodRequest("Urgent Blood Drive"))
	require.NoError(t, err)

	byID, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	bySlug, err := svc.Get(ctx, "urgent-blood-drive")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = svc.Get(ctx, "no-such-campaign")
	assert.ErrorIs(t, err, model.ErrCampaignNotFound)
}

// =====================================================
// EDIT & HISTORY
// =====================================================

func TestUpdate_TitleChangeRecordsOneHistoryEntry(t *testing.T) {
	svc, _, _ := newServiceUnderTest()
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.Create(ctx, owner, fundraisingRequest("Save the Park"))
	require.NoError(t, err)

	newTitle := "Save the Whole Park"
	updated, err := svc.Update(ctx, created.ID.String(), owner, model.UpdateCampaignRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Save the Whole Park", updated.Title)
	assert.Equal(t, "save-the-park", updated.Slug, "slug is immutable after creation")

	entries, err := svc.GetEditHistory(ctx, created.Slug)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Changes, 1)
	assert.Equal(t, model.FieldTitle, entries[0].Changes[0].Field)
	assert.Equal(t, "Save the Park", entries[0].Changes[0].OldValue)
	assert.Equal(t, "Save the Whole Park", entries[0].Changes[0].NewValue)
	assert.Equal(t, owner, entries[0].EditorID)
}

func TestUpdate_NoOpEditSkipsHistoryAndUpdatedAt(t *testing.T) {
	svc, repo, history := newServiceUnderTest()
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.Create(ctx, owner, fundraisingRequest("Save the Park"))
	require.NoError(t, err)
	before := repo.campaigns[created.ID].UpdatedAt

	sameTitle := created.Title
	result, err := svc.Update(ctx, created.ID.String(), owner, model.UpdateCampaignRequest{Title: &sameTitle})
	require.NoError(t, err)

	assert.Equal(t, before, result.UpdatedAt)
	assert.Equal(t, before, repo.campaigns[created.ID].UpdatedAt)
	assert.Empty(t, history.entries)
}

func TestUpdate_HistoryWriteFailureDoesNotFailTheEdit(t *testing.T) {
	svc, repo, history := newServiceUnderTest()
	ctx := context.Background()
	owner := uuid.New()
	history.createErr = assert.AnError

	created, err := svc.Create(ctx, owner, fundraisingRequest("Save the Park"))
	require.NoError(t, err)

	newTitle := "Changed"
	updated, err := svc.Update(ctx, created.ID.String(), owner, model.UpdateCampaignRequest{Title: &newTitle})
	require.NoError(t, err, "edit commits even when the audit write fails")
	assert.Equal(t, "Changed", updated.Title)
	assert.Equal(t, "Changed", repo.campaigns[created.ID].Title)
}

// =====================================================
// ACCESS CONTROL ORDERING
// =====================================================

func TestOwnership_NotFoundBeforeForbidden(t *testing.T) {
	svc, _, _ := newServiceUnderTest()
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	created, err := svc.Create(ctx, owner, fundraisingRequest("Save the Park"))
	require.NoError(t, err)

	newTitle := "Hijacked"
	t.Run("existing campaign, wrong caller", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID.String(), stranger, model.UpdateCampaignRequest{Title: &newTitle})
		assert.ErrorIs(t, err, model.ErrNotOwner)

		_, err = svc.SetProgress(ctx, created.ID.String(), stranger, model.SetProgressRequest{Value: 10})
		assert.ErrorIs(t, err, model.ErrNotOwner)

		_, err = svc.SetVisibility(ctx, created.ID.String(), stranger, true)
		assert.ErrorIs(t, err, model.ErrNotOwner)

		assert.ErrorIs(t, svc.Delete(ctx, created.ID.String(), stranger), model.ErrNotOwner)
	})

	t.Run("missing campaign reports not-found even to a stranger", func(t *testing.T) {
		missing := uuid.New().String()
		_, err := svc.Update(ctx, missing, stranger, model.UpdateCampaignRequest{Title: &newTitle})
		assert.ErrorIs(t, err, model.ErrCampaignNotFound)

		_, err = svc.SetProgress(ctx, missing, stranger, model.SetProgressRequest{Value: 10})
		assert.ErrorIs(t, err, model.ErrCampaignNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, missing, stranger), model.ErrCampaignNotFound)
	})
}

// =====================================================
// PROGRESS
// =====================================================

func TestSetProgress_FundraisingRules(t *testing.T) {
	svc, _, history := newServiceUnderTest()
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.Create(ctx, owner, fundraisingRequest("Save the Park"))
	require.NoError(t, err)

	t.Run("negative rejected", func(t *testing.T) {
		_, err := svc.SetProgress(ctx, created.ID.String(), owner, model.SetProgressRequest{Value: -1})
		assert.Error(t, err)
	})

	t.Run("exceeding target accepted and completed", func(t *testing.T) {
		campaign, err := svc.SetProgress(ctx, created.ID.String(), owner, model.SetProgressRequest{Value: 1200})
		require.NoError(t, err)
		assert.True(t, campaign.CurrentAmount.Equal(decimal.NewFromInt(1200)))
		assert.True(t, campaign.IsCompleted())
		assert.True(t, campaign.RemainingAmount().IsZero())
	})

	t.Run("progress never writes edit history", func(t *testing.T) {
		assert.Empty(t, history.entries)
	})
}

func TestSetProgress_BloodUnitsMustBeWhole(t *testing.T) {
	svc, _, _ := newServiceUnderTest()
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.Create(ctx, owner, bloodRequest("Urgent Blood Drive"))
	require.NoError(t, err)

	_, err = svc.SetProgress(ctx, created.ID.String(), owner, model.SetProgressRequest{Value: 2.5})
	assert.ErrorIs(t, err, model.ErrValidation)

	campaign, err := svc.SetProgress(ctx, created.ID.String(), owner, model.SetProgressRequest{Value: 20})
	require.NoError(t, err)
	assert.Equal(t, 20, campaign.CurrentBloodUnits)
	assert.True(t, campaign.IsCompleted())
}

// =====================================================
// VIEW COUNTER
// =====================================================

func TestIncrementView_NoLostUpdatesUnderConcurrency(t *testing.T) {
	svc, _, _ := newServiceUnderTest()
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), fundraisingRequest("Save the Park"))
	require.NoError(t, err)

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.IncrementView(ctx, created.Slug)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	campaign, err := svc.Get(ctx, created.Slug)
	require.NoError(t, err)
	assert.EqualValues(t, n, campaign.ViewCount)
}

func TestIncrementView_DoesNotRequireAuthAndReturnsNewCount(t *testing.T) {
	svc, _, _ := newServiceUnderTest()
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), fundraisingRequest("Save the Park"))
	require.NoError(t, err)

	count, err := svc.IncrementView(ctx, created.ID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = svc.IncrementView(ctx, created.ID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

// =====================================================
// LISTING & VISIBILITY
// =====================================================

func TestListPublic_ExcludesHiddenAndSorts(t *testing.T) {
	svc, repo, _ := newServiceUnderTest()
	ctx := context.Background()
	owner := uuid.New()

	a, err := svc.Create(ctx, owner, fundraisingRequest("Alpha"))
	require.NoError(t, err)
	b, err := svc.Create(ctx, owner, fundraisingRequest("Beta"))
	require.NoError(t, err)

	// stagger creation times and view counts directly in the fake
	repo.mu.Lock()
	repo.campaigns[a.ID].CreatedAt = time.Now().Add(-time.Hour)
	repo.campaigns[a.ID].ViewCount = 50
	repo.campaigns[b.ID].ViewCount = 5
	repo.mu.Unlock()

	newest, err := svc.ListPublic(ctx, model.SortNewest)
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, b.ID, newest[0].ID)

	visited, err := svc.ListPublic(ctx, model.SortMostVisited)
	require.NoError(t, err)
	assert.Equal(t, a.ID, visited[0].ID)

	_, err = svc.SetVisibility(ctx, a.ID.String(), owner, true)
	require.NoError(t, err)

	visible, err := svc.ListPublic(ctx, model.SortNewest)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, b.ID, visible[0].ID)

	// the owner dashboard still shows the hidden campaign
	mine, err := svc.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

// =====================================================
// DELETE
// =====================================================

func TestDelete_RemovesCampaignEverywhere(t *testing.T) {
	svc, _, _ := newServiceUnderTest()
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.Create(ctx, owner, fundraisingRequest("Save the Park"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.Slug, owner))

	_, err = svc.Get(ctx, created.ID.String())
	assert.ErrorIs(t, err, model.ErrCampaignNotFound)

	public, err := svc.ListPublic(ctx, model.SortNewest)
	require.NoError(t, err)
	assert.Empty(t, public)

	mine, err := svc.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
