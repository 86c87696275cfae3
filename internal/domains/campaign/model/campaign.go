package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CampaignType is the variant discriminant. It is immutable after
// creation and decides which progress counter is mutable.
type CampaignType string

const (
	TypeFundraising   CampaignType = "fundraising"
	TypeBloodDonation CampaignType = "blood_donation"
)

func (t CampaignType) IsValid() bool {
	switch t {
	case TypeFundraising, TypeBloodDonation:
		return true
	}
	return false
}

// UrgencyLevel applies to blood donation campaigns only
type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyHigh   UrgencyLevel = "high"
)

func (u UrgencyLevel) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// BankAccount is an informational display sub-record, not a validated
// payment rail. All fields are freeform strings.
type BankAccount struct {
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	HolderName    string `json:"holder_name"`
}

// PaymentDetails is owned one-to-one by a fundraising campaign and is
// never independently addressable by clients.
type PaymentDetails struct {
	MobileBanking string       `json:"mobile_banking"`
	BankAccount   *BankAccount `json:"bank_account,omitempty"`
}

// HospitalInfo belongs to blood donation campaigns
type HospitalInfo struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Contact *string `json:"contact,omitempty"`
	Email   *string `json:"email,omitempty"`
}

// Campaign is the core entity: a tagged union over the two variants.
// Exactly one variant's field set is populated, selected by Type.
type Campaign struct {
	ID      uuid.UUID    `json:"id"`
	Slug    string       `json:"slug"`
	OwnerID uuid.UUID    `json:"owner_id"`
	Type    CampaignType `json:"type"`

	Title            string   `json:"title"`
	Description      string   `json:"description"`
	MainImage        *string  `json:"main_image"`
	AdditionalImages []string `json:"additional_images"`

	IsHidden  bool  `json:"is_hidden"`
	ViewCount int64 `json:"view_count"`

	// Fundraising variant
	TargetAmount   *decimal.Decimal `json:"target_amount,omitempty"`
	CurrentAmount  decimal.Decimal  `json:"current_amount"`
	PaymentDetails *PaymentDetails  `json:"payment_details,omitempty"`

	// Blood donation variant
	Hospital          *HospitalInfo `json:"hospital,omitempty"`
	BloodType         *string       `json:"blood_type,omitempty"`
	Urgency           *UrgencyLevel `json:"urgency,omitempty"`
	TargetBloodUnits  *int          `json:"target_blood_units,omitempty"`
	CurrentBloodUnits int           `json:"current_blood_units"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsCompleted reports whether the campaign reached its goal.
// Exceeding the target is a valid state, so >= not ==.
func (c *Campaign) IsCompleted() bool {
	switch c.Type {
	case TypeFundraising:
		return c.TargetAmount != nil && c.CurrentAmount.GreaterThanOrEqual(*c.TargetAmount)
	case TypeBloodDonation:
		return c.TargetBloodUnits != nil && c.CurrentBloodUnits >= *c.TargetBloodUnits
	}
	return false
}

// ProgressPercent returns min(current/target, 1) * 100, clamped.
// Campaigns without a target report 0.
func (c *Campaign) ProgressPercent() float64 {
	switch c.Type {
	case TypeFundraising:
		if c.TargetAmount == nil || c.TargetAmount.IsZero() {
			return 0
		}
		ratio, _ := c.CurrentAmount.Div(*c.TargetAmount).Float64()
		if ratio > 1 {
			ratio = 1
		}
		return ratio * 100
	case TypeBloodDonation:
		if c.TargetBloodUnits == nil || *c.TargetBloodUnits == 0 {
			return 0
		}
		ratio := float64(c.CurrentBloodUnits) / float64(*c.TargetBloodUnits)
		if ratio > 1 {
			ratio = 1
		}
		return ratio * 100
	}
	return 0
}

// RemainingAmount returns max(target - current, 0) for fundraising
// campaigns, zero otherwise.
func (c *Campaign) RemainingAmount() decimal.Decimal {
	if c.Type != TypeFundraising || c.TargetAmount == nil {
		return decimal.Zero
	}
	remaining := c.TargetAmount.Sub(c.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// RemainingBloodUnits returns max(target - current, 0) for blood
// donation campaigns, zero otherwise.
func (c *Campaign) RemainingBloodUnits() int {
	if c.Type != TypeBloodDonation || c.TargetBloodUnits == nil {
		return 0
	}
	remaining := *c.TargetBloodUnits - c.CurrentBloodUnits
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Clone returns a deep copy. Used by the edit flow: the patch is applied
// to a copy so the diff can compare against the untouched original.
func (c *Campaign) Clone() *Campaign {
	dup := *c

	if c.AdditionalImages != nil {
		dup.AdditionalImages = append([]string(nil), c.AdditionalImages...)
	}
	if c.MainImage != nil {
		v := *c.MainImage
		dup.MainImage = &v
	}
	if c.TargetAmount != nil {
		v := *c.TargetAmount
		dup.TargetAmount = &v
	}
	if c.PaymentDetails != nil {
		pd := *c.PaymentDetails
		if c.PaymentDetails.BankAccount != nil {
			ba := *c.PaymentDetails.BankAccount
			pd.BankAccount = &ba
		}
		dup.PaymentDetails = &pd
	}
	if c.Hospital != nil {
		h := *c.Hospital
		if c.Hospital.Contact != nil {
			v := *c.Hospital.Contact
			h.Contact = &v
		}
		if c.Hospital.Email != nil {
			v := *c.Hospital.Email
			h.Email = &v
		}
		dup.Hospital = &h
	}
	if c.BloodType != nil {
		v := *c.BloodType
		dup.BloodType = &v
	}
	if c.Urgency != nil {
		v := *c.Urgency
		dup.Urgency = &v
	}
	if c.TargetBloodUnits != nil {
		v := *c.TargetBloodUnits
		dup.TargetBloodUnits = &v
	}

	return &dup
}
