package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"campaignhub-backend/internal/domains/campaign/model"
	"campaignhub-backend/pkg/database"
	"campaignhub-backend/pkg/logger"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresCampaignRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCampaignRepository(pool *pgxpool.Pool) CampaignRepository {
	return &postgresCampaignRepository{
		pool: pool,
	}
}

const campaignColumns = `
	c.id, c.slug, c.owner_id, c.type, c.title, c.description,
	c.main_image, c.additional_images, c.is_hidden, c.view_count,
	c.target_amount, c.current_amount,
	c.hospital_name, c.hospital_address, c.hospital_contact, c.hospital_email,
	c.blood_type, c.urgency, c.target_blood_units, c.current_blood_units,
	c.created_at, c.updated_at,
	p.mobile_banking, p.bank_account_number, p.bank_name, p.bank_holder_name
`

const campaignFrom = `
	FROM campaigns c
	LEFT JOIN payment_details p ON p.campaign_id = c.id
`

// =====================================================
// CREATE CAMPAIGN
// =====================================================

func (r *postgresCampaignRepository) Create(ctx context.Context, campaign *model.Campaign) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return r.insertCampaign(ctx, tx, campaign)
	})
}

func (r *postgresCampaignRepository) insertCampaign(ctx context.Context, tx pgx.Tx, campaign *model.Campaign) error {
	query := `
		INSERT INTO campaigns (
			id, slug, owner_id, type, title, description,
			main_image, additional_images, is_hidden, view_count,
			target_amount, current_amount,
			hospital_name, hospital_address, hospital_contact, hospital_email,
			blood_type, urgency, target_blood_units, current_blood_units,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12,
			$13, $14, $15, $16,
			$17, $18, $19, $20,
			$21, $22
		)
	`

	var hospitalName, hospitalAddress, hospitalContact, hospitalEmail *string
	if campaign.Hospital != nil {
		hospitalName = &campaign.Hospital.Name
		hospitalAddress = &campaign.Hospital.Address
		hospitalContact = campaign.Hospital.Contact
		hospitalEmail = campaign.Hospital.Email
	}

	_, err := tx.Exec(ctx, query,
		campaign.ID,
		campaign.Slug,
		campaign.OwnerID,
		campaign.Type,
		campaign.Title,
		campaign.Description,
		campaign.MainImage,
		pq.Array(campaign.AdditionalImages),
		campaign.IsHidden,
		campaign.ViewCount,
		campaign.TargetAmount,
		campaign.CurrentAmount,
		hospitalName,
		hospitalAddress,
		hospitalContact,
		hospitalEmail,
		campaign.BloodType,
		campaign.Urgency,
		campaign.TargetBloodUnits,
		campaign.CurrentBloodUnits,
		campaign.CreatedAt,
		campaign.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on slug
			return model.ErrSlugTaken
		}
		return fmt.Errorf("insert campaign failed: %w", err)
	}

	if campaign.PaymentDetails != nil {
		if err := upsertPaymentDetails(ctx, tx, campaign.ID, campaign.PaymentDetails); err != nil {
			return err
		}
	}

	return nil
}

func upsertPaymentDetails(ctx context.Context, tx pgx.Tx, campaignID uuid.UUID, pd *model.PaymentDetails) error {
	query := `
		INSERT INTO payment_details (
			campaign_id, mobile_banking,
			bank_account_number, bank_name, bank_holder_name
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (campaign_id) DO UPDATE SET
			mobile_banking = EXCLUDED.mobile_banking,
			bank_account_number = EXCLUDED.bank_account_number,
			bank_name = EXCLUDED.bank_name,
			bank_holder_name = EXCLUDED.bank_holder_name
	`

	var accountNumber, bankName, holderName *string
	if pd.BankAccount != nil {
		accountNumber = &pd.BankAccount.AccountNumber
		bankName = &pd.BankAccount.BankName
		holderName = &pd.BankAccount.HolderName
	}

	if _, err := tx.Exec(ctx, query, campaignID, pd.MobileBanking, accountNumber, bankName, holderName); err != nil {
		return fmt.Errorf("upsert payment details failed: %w", err)
	}
	return nil
}

// =====================================================
// READ CAMPAIGN
// =====================================================

func (r *postgresCampaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + campaignFrom + `WHERE c.id = $1`
	return r.getOne(ctx, query, id)
}

func (r *postgresCampaignRepository) GetBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + campaignFrom + `WHERE c.slug = $1`
	return r.getOne(ctx, query, slug)
}

func (r *postgresCampaignRepository) getOne(ctx context.Context, query string, arg interface{}) (*model.Campaign, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	campaign, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign failed: %w", err)
	}
	return campaign, nil
}

func (r *postgresCampaignRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM campaigns WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("slug existence check failed: %w", err)
	}
	return exists, nil
}

// =====================================================
// LIST CAMPAIGNS
// =====================================================

func (r *postgresCampaignRepository) ListPublic(ctx context.Context, sort string) ([]model.Campaign, error) {
	orderBy := "c.created_at DESC"
	if sort == model.SortMostVisited {
		orderBy = "c.view_count DESC, c.created_at DESC"
	}

	query := `SELECT ` + campaignColumns + campaignFrom + `
		WHERE c.is_hidden = false
		ORDER BY ` + orderBy

	return r.list(ctx, query)
}

func (r *postgresCampaignRepository) ListMostVisited(ctx context.Context, limit int) ([]model.Campaign, error) {
	query := `SELECT ` + campaignColumns + campaignFrom + `
		WHERE c.is_hidden = false
		ORDER BY c.view_count DESC, c.created_at DESC
		LIMIT $1`

	return r.list(ctx, query, limit)
}

// ListByOwner includes hidden campaigns: the dashboard shows everything
// the owner has, visible or not.
func (r *postgresCampaignRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Campaign, error) {
	query := `SELECT ` + campaignColumns + campaignFrom + `
		WHERE c.owner_id = $1
		ORDER BY c.created_at DESC`

	return r.list(ctx, query, ownerID)
}

func (r *postgresCampaignRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Campaign, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns failed: %w", err)
	}
	defer rows.Close()

	campaigns := make([]model.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			logger.Error("scan campaign row failed", err)
			continue
		}
		campaigns = append(campaigns, *campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return campaigns, nil
}

// =====================================================
// UPDATE CAMPAIGN
// =====================================================

// Update persists the editable field set. The slug, type, owner and the
// progress counters are deliberately not in the SET list.
func (r *postgresCampaignRepository) Update(ctx context.Context, campaign *model.Campaign) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return r.updateCampaign(ctx, tx, campaign)
	})
}

func (r *postgresCampaignRepository) updateCampaign(ctx context.Context, tx pgx.Tx, campaign *model.Campaign) error {
	query := `
		UPDATE campaigns SET
			title = $2,
			description = $3,
			main_image = $4,
			additional_images = $5,
			target_amount = $6,
			hospital_name = $7,
			hospital_address = $8,
			hospital_contact = $9,
			hospital_email = $10,
			blood_type = $11,
			urgency = $12,
			target_blood_units = $13,
			updated_at = $14
		WHERE id = $1
	`

	var hospitalName, hospitalAddress, hospitalContact, hospitalEmail *string
	if campaign.Hospital != nil {
		hospitalName = &campaign.Hospital.Name
		hospitalAddress = &campaign.Hospital.Address
		hospitalContact = campaign.Hospital.Contact
		hospitalEmail = campaign.Hospital.Email
	}

	tag, err := tx.Exec(ctx, query,
		campaign.ID,
		campaign.Title,
		campaign.Description,
		campaign.MainImage,
		pq.Array(campaign.AdditionalImages),
		campaign.TargetAmount,
		hospitalName,
		hospitalAddress,
		hospitalContact,
		hospitalEmail,
		campaign.BloodType,
		campaign.Urgency,
		campaign.TargetBloodUnits,
		campaign.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update campaign failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCampaignNotFound
	}

	if campaign.PaymentDetails != nil {
		if err := upsertPaymentDetails(ctx, tx, campaign.ID, campaign.PaymentDetails); err != nil {
			return err
		}
	}

	return nil
}

// =====================================================
// PROGRESS & VISIBILITY
// =====================================================

func (r *postgresCampaignRepository) SetCurrentAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	return r.exec(ctx,
		`UPDATE campaigns SET current_amount = $2, updated_at = NOW() WHERE id = $1 AND type = 'fundraising'`,
		id, amount)
}

func (r *postgresCampaignRepository) SetCurrentBloodUnits(ctx context.Context, id uuid.UUID, units int) error {
	return r.exec(ctx,
		`UPDATE campaigns SET current_blood_units = $2, updated_at = NOW() WHERE id = $1 AND type = 'blood_donation'`,
		id, units)
}

func (r *postgresCampaignRepository) SetVisibility(ctx context.Context, id uuid.UUID, hidden bool) error {
	return r.exec(ctx,
		`UPDATE campaigns SET is_hidden = $2, updated_at = NOW() WHERE id = $1`,
		id, hidden)
}

func (r *postgresCampaignRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("campaign update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCampaignNotFound
	}
	return nil
}

// IncrementViewCount - single atomic statement, no read-modify-write.
// Concurrent bumps serialize on the row, none is lost. Does not touch
// updated_at: a view is not an edit.
func (r *postgresCampaignRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`UPDATE campaigns SET view_count = view_count + 1 WHERE id = $1 RETURNING view_count`,
		id).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, model.ErrCampaignNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment view count failed: %w", err)
	}
	return count, nil
}

// =====================================================
// DELETE CAMPAIGN
// =====================================================

// Delete removes the campaign; payment details, updates and edit history
// follow via ON DELETE CASCADE.
func (r *postgresCampaignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
}

// =====================================================
// ROW SCANNING
// =====================================================

func scanCampaign(row pgx.Row) (*model.Campaign, error) {
	var c model.Campaign
	var hospitalName, hospitalAddress, hospitalContact, hospitalEmail *string
	var mobileBanking, bankAccountNumber, bankName, bankHolderName *string

	err := row.Scan(
		&c.ID, &c.Slug, &c.OwnerID, &c.Type, &c.Title, &c.Description,
		&c.MainImage, pq.Array(&c.AdditionalImages), &c.IsHidden, &c.ViewCount,
		&c.TargetAmount, &c.CurrentAmount,
		&hospitalName, &hospitalAddress, &hospitalContact, &hospitalEmail,
		&c.BloodType, &c.Urgency, &c.TargetBloodUnits, &c.CurrentBloodUnits,
		&c.CreatedAt, &c.UpdatedAt,
		&mobileBanking, &bankAccountNumber, &bankName, &bankHolderName,
	)
	if err != nil {
		return nil, err
	}

	if hospitalName != nil {
		c.Hospital = &model.HospitalInfo{
			Name:    *hospitalName,
			Address: derefOr(hospitalAddress, ""),
			Contact: hospitalContact,
			Email:   hospitalEmail,
		}
	}
	if mobileBanking != nil {
		c.PaymentDetails = &model.PaymentDetails{MobileBanking: *mobileBanking}
		if bankAccountNumber != nil {
			c.PaymentDetails.BankAccount = &model.BankAccount{
				AccountNumber: *bankAccountNumber,
				BankName:      derefOr(bankName, ""),
				HolderName:    derefOr(bankHolderName, ""),
			}
		}
	}
	if c.AdditionalImages == nil {
		c.AdditionalImages = []string{}
	}

	return &c, nil
}

func derefOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
