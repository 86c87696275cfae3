package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaignhub-backend/internal/domains/campaign/model"
)

// =====================================================
// CAMPAIGN UPDATE FEED
// =====================================================

type postgresUpdateRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUpdateRepository(pool *pgxpool.Pool) UpdateRepository {
	return &postgresUpdateRepository{
		pool: pool,
	}
}

func (r *postgresUpdateRepository) Create(ctx context.Context, update *model.CampaignUpdate) error {
	query := `
		INSERT INTO campaign_updates (
			id, campaign_id, author_id, title, description, type, image
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		update.ID,
		update.CampaignID,
		update.AuthorID,
		update.Title,
		update.Description,
		update.Type,
		update.Image,
	).Scan(&update.CreatedAt, &update.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert campaign update failed: %w", err)
	}

	return nil
}

func (r *postgresUpdateRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CampaignUpdate, error) {
	query := `
		SELECT id, campaign_id, author_id, title, description, type, image, created_at, updated_at
		FROM campaign_updates
		WHERE id = $1
	`

	var u model.CampaignUpdate
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.CampaignID, &u.AuthorID,
		&u.Title, &u.Description, &u.Type, &u.Image,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrUpdateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign update failed: %w", err)
	}

	return &u, nil
}

// ListByCampaign returns the feed newest-first
func (r *postgresUpdateRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.CampaignUpdate, error) {
	query := `
		SELECT id, campaign_id, author_id, title, description, type, image, created_at, updated_at
		FROM campaign_updates
		WHERE campaign_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list campaign updates failed: %w", err)
	}
	defer rows.Close()

	updates := make([]model.CampaignUpdate, 0)
	for rows.Next() {
		var u model.CampaignUpdate
		err := rows.Scan(
			&u.ID, &u.CampaignID, &u.AuthorID,
			&u.Title, &u.Description, &u.Type, &u.Image,
			&u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan campaign update failed: %w", err)
		}
		updates = append(updates, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return updates, nil
}
