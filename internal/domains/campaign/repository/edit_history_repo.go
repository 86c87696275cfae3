package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaignhub-backend/internal/domains/campaign/model"
)

// =====================================================
// EDIT HISTORY (audit trail)
// =====================================================

type postgresEditHistoryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresEditHistoryRepository(pool *pgxpool.Pool) EditHistoryRepository {
	return &postgresEditHistoryRepository{
		pool: pool,
	}
}

// Create appends one audit record. Changes go into a jsonb column as the
// list of {field, old_value, new_value} tuples.
func (r *postgresEditHistoryRepository) Create(ctx context.Context, entry *model.EditHistoryEntry) error {
	changesJSON, err := json.Marshal(entry.Changes)
	if err != nil {
		return fmt.Errorf("marshal changes failed: %w", err)
	}

	query := `
		INSERT INTO campaign_edit_history (id, campaign_id, editor_id, changes)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err = r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.CampaignID,
		entry.EditorID,
		changesJSON,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert edit history failed: %w", err)
	}

	return nil
}

// ListByCampaign returns the trail newest-first. Editor names resolve at
// read time; a deleted or missing editor account shows as "Unknown User"
// without breaking the history.
func (r *postgresEditHistoryRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.EditHistoryEntry, error) {
	query := `
		SELECT h.id, h.campaign_id, h.editor_id,
		       COALESCE(u.name, $2) AS editor_name,
		       h.changes, h.created_at
		FROM campaign_edit_history h
		LEFT JOIN users u ON u.id = h.editor_id
		WHERE h.campaign_id = $1
		ORDER BY h.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, campaignID, model.UnknownEditorName)
	if err != nil {
		return nil, fmt.Errorf("list edit history failed: %w", err)
	}
	defer rows.Close()

	entries := make([]model.EditHistoryEntry, 0)
	for rows.Next() {
		var entry model.EditHistoryEntry
		var changesJSON []byte
		err := rows.Scan(
			&entry.ID, &entry.CampaignID, &entry.EditorID,
			&entry.EditorName, &changesJSON, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan edit history failed: %w", err)
		}
		if err := json.Unmarshal(changesJSON, &entry.Changes); err != nil {
			return nil, fmt.Errorf("unmarshal changes failed: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return entries, nil
}
