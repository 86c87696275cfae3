package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"campaignhub-backend/internal/domains/campaign/model"
)

// =====================================================
// PLATFORM STATS
// =====================================================

type postgresStatsRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &postgresStatsRepository{
		pool: pool,
	}
}

// GetPlatformStats aggregates everything in two queries against live
// rows. Stats are recomputed per call, never served from a snapshot:
// slight cost, always-consistent answer.
func (r *postgresStatsRepository) GetPlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	stats := &model.PlatformStats{}

	campaignQuery := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE type = 'fundraising') AS fundraising,
			COUNT(*) FILTER (WHERE type = 'blood_donation') AS blood_donation,
			COUNT(*) FILTER (WHERE is_hidden = false) AS active,
			COUNT(*) FILTER (WHERE
				(type = 'fundraising' AND target_amount IS NOT NULL AND current_amount >= target_amount) OR
				(type = 'blood_donation' AND target_blood_units IS NOT NULL AND current_blood_units >= target_blood_units)
			) AS completed,
			COALESCE(SUM(view_count), 0) AS total_views,
			COALESCE(SUM(current_amount) FILTER (WHERE type = 'fundraising'), 0) AS funds_raised,
			COALESCE(SUM(current_blood_units) FILTER (WHERE type = 'blood_donation'), 0) AS blood_units,
			COUNT(*) FILTER (WHERE created_at >= NOW() - make_interval(days => $1)) AS last_short,
			COUNT(*) FILTER (WHERE created_at >= NOW() - make_interval(days => $2)) AS last_long
		FROM campaigns
	`

	err := r.pool.QueryRow(ctx, campaignQuery, model.StatsWindowShort, model.StatsWindowLong).Scan(
		&stats.TotalCampaigns,
		&stats.FundraisingCampaigns,
		&stats.BloodDonationCampaigns,
		&stats.ActiveCampaigns,
		&stats.CompletedCampaigns,
		&stats.TotalViews,
		&stats.TotalFundsRaised,
		&stats.TotalBloodUnits,
		&stats.CampaignsLast7Days,
		&stats.CampaignsLast30Days,
	)
	if err != nil {
		return nil, fmt.Errorf("campaign stats query failed: %w", err)
	}

	userQuery := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE created_at >= NOW() - make_interval(days => $1)) AS last_short,
			COUNT(*) FILTER (WHERE created_at >= NOW() - make_interval(days => $2)) AS last_long
		FROM users
	`

	err = r.pool.QueryRow(ctx, userQuery, model.StatsWindowShort, model.StatsWindowLong).Scan(
		&stats.TotalUsers,
		&stats.UsersLast7Days,
		&stats.UsersLast30Days,
	)
	if err != nil {
		return nil, fmt.Errorf("user stats query failed: %w", err)
	}

	return stats, nil
}
