package model

import (
	"time"

	"github.com/google/uuid"
)

// UpdateType tags a campaign update post
type UpdateType string

const (
	UpdateProgress  UpdateType = "progress"
	UpdateMilestone UpdateType = "milestone"
	UpdateGeneral   UpdateType = "general"
)

func (t UpdateType) IsValid() bool {
	switch t {
	case UpdateProgress, UpdateMilestone, UpdateGeneral:
		return true
	}
	return false
}

// CampaignUpdate is an append-only post authored by the campaign owner.
// Immutable after creation; deleted only when the parent campaign is
// deleted (cascade). Distinct from structural edits - supporters follow
// progress through these.
type CampaignUpdate struct {
	ID          uuid.UUID  `json:"id"`
	CampaignID  uuid.UUID  `json:"campaign_id"`
	AuthorID    uuid.UUID  `json:"author_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        UpdateType `json:"type"`
	Image       *string    `json:"image,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
