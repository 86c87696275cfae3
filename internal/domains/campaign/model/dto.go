package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"campaignhub-backend/internal/shared/utils"
)

// ========================================
// REQUEST DTOs
// ========================================

// BankAccountInput - optional informational display fields
type BankAccountInput struct {
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	HolderName    string `json:"holder_name"`
}

func (b BankAccountInput) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.AccountNumber, validation.Required.Error("account number is required"), validation.Length(1, 64)),
		validation.Field(&b.BankName, validation.Required.Error("bank name is required"), validation.Length(1, 128)),
		validation.Field(&b.HolderName, validation.Required.Error("holder name is required"), validation.Length(1, 128)),
	)
}

// PaymentDetailsInput - required for fundraising campaigns
type PaymentDetailsInput struct {
	MobileBanking string            `json:"mobile_banking"`
	BankAccount   *BankAccountInput `json:"bank_account"`
}

func (p PaymentDetailsInput) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.MobileBanking, validation.Required.Error("mobile banking reference is required"), validation.Length(1, 128)),
		validation.Field(&p.BankAccount),
	)
}

// HospitalInfoInput - required for blood donation campaigns
type HospitalInfoInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
}

func (h HospitalInfoInput) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Name, validation.Required.Error("hospital name is required"), validation.Length(1, 200)),
		validation.Field(&h.Address, validation.Required.Error("hospital address is required"), validation.Length(1, 500)),
		validation.Field(&h.Email, validation.When(h.Email != "", is.Email.Error("invalid hospital email"))),
	)
}

// CreateCampaignRequest carries both variants' fields; Validate enforces
// the field set matching the declared type.
type CreateCampaignRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Type             string   `json:"type"`
	MainImage        string   `json:"main_image"`
	AdditionalImages []string `json:"additional_images"`

	// Fundraising
	TargetAmount   *float64             `json:"target_amount"`
	PaymentDetails *PaymentDetailsInput `json:"payment_details"`

	// Blood donation
	Hospital         *HospitalInfoInput `json:"hospital"`
	BloodType        string             `json:"blood_type"`
	Urgency          string             `json:"urgency"`
	TargetBloodUnits *int               `json:"target_blood_units"`
}

func (r CreateCampaignRequest) Validate() error {
	isFundraising := r.Type == string(TypeFundraising)
	isBloodDonation := r.Type == string(TypeBloodDonation)

	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(MinTitleLength, MaxTitleLength),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
			validation.Length(MinDescriptionLength, MaxDescriptionLength),
		),
		validation.Field(&r.Type,
			validation.Required.Error("type is required"),
			validation.In(string(TypeFundraising), string(TypeBloodDonation)).Error("type must be fundraising or blood_donation"),
		),
		validation.Field(&r.AdditionalImages,
			validation.Length(0, MaxAdditionalImages),
		),
		validation.Field(&r.TargetAmount,
			validation.When(isFundraising,
				validation.Required.Error("target amount is required for fundraising campaigns"),
				validation.Min(0.01).Error("target amount must be positive"),
			),
			validation.When(isBloodDonation, validation.Nil.Error("target amount is not valid for blood donation campaigns")),
		),
		validation.Field(&r.PaymentDetails,
			validation.When(isFundraising, validation.Required.Error("payment details are required for fundraising campaigns")),
			validation.When(isBloodDonation, validation.Nil.Error("payment details are not valid for blood donation campaigns")),
		),
		validation.Field(&r.Hospital,
			validation.When(isBloodDonation, validation.Required.Error("hospital information is required for blood donation campaigns")),
			validation.When(isFundraising, validation.Nil.Error("hospital information is not valid for fundraising campaigns")),
		),
		validation.Field(&r.Urgency,
			validation.When(isBloodDonation,
				validation.Required.Error("urgency level is required for blood donation campaigns"),
				validation.In(string(UrgencyLow), string(UrgencyMedium), string(UrgencyHigh)).Error("urgency must be low, medium or high"),
			),
		),
		validation.Field(&r.TargetBloodUnits,
			validation.Min(1).Error("target blood units must be positive"),
		),
	)
}

// ToEntity builds a Campaign with counters initialized per the creation
// contract: progress and views start at zero, visibility starts visible.
func (r CreateCampaignRequest) ToEntity(ownerID uuid.UUID, slug string, now time.Time) *Campaign {
	c := &Campaign{
		ID:               uuid.New(),
		Slug:             slug,
		OwnerID:          ownerID,
		Type:             CampaignType(r.Type),
		Title:            r.Title,
		Description:      r.Description,
		AdditionalImages: r.AdditionalImages,
		IsHidden:         false,
		ViewCount:        0,
		CurrentAmount:    decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if r.MainImage != "" {
		c.MainImage = &r.MainImage
	}
	if c.AdditionalImages == nil {
		c.AdditionalImages = []string{}
	}

	switch c.Type {
	case TypeFundraising:
		c.TargetAmount = utils.ParseFloatToDecimal(r.TargetAmount)
		if r.PaymentDetails != nil {
			c.PaymentDetails = r.PaymentDetails.toEntity()
		}
	case TypeBloodDonation:
		if r.Hospital != nil {
			c.Hospital = r.Hospital.toEntity()
		}
		if r.BloodType != "" {
			c.BloodType = &r.BloodType
		}
		if r.Urgency != "" {
			u := UrgencyLevel(r.Urgency)
			c.Urgency = &u
		}
		c.TargetBloodUnits = r.TargetBloodUnits
	}

	return c
}

func (p *PaymentDetailsInput) toEntity() *PaymentDetails {
	pd := &PaymentDetails{MobileBanking: p.MobileBanking}
	if p.BankAccount != nil {
		pd.BankAccount = &BankAccount{
			AccountNumber: p.BankAccount.AccountNumber,
			BankName:      p.BankAccount.BankName,
			HolderName:    p.BankAccount.HolderName,
		}
	}
	return pd
}

func (h *HospitalInfoInput) toEntity() *HospitalInfo {
	info := &HospitalInfo{Name: h.Name, Address: h.Address}
	if h.Contact != "" {
		info.Contact = &h.Contact
	}
	if h.Email != "" {
		info.Email = &h.Email
	}
	return info
}

// UpdateCampaignRequest is a partial patch over the editable field set.
// The slug, the variant tag and the progress counters are not editable.
type UpdateCampaignRequest struct {
	Title            *string  `json:"title"`
	Description      *string  `json:"description"`
	MainImage        *string  `json:"main_image"`
	AdditionalImages []string `json:"additional_images"` // nil = not provided

	// Fundraising
	TargetAmount   *float64             `json:"target_amount"`
	PaymentDetails *PaymentDetailsInput `json:"payment_details"`

	// Blood donation
	Hospital         *HospitalInfoInput `json:"hospital"`
	BloodType        *string            `json:"blood_type"`
	Urgency          *string            `json:"urgency"`
	TargetBloodUnits *int               `json:"target_blood_units"`
}

func (r UpdateCampaignRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(MinTitleLength, MaxTitleLength)),
		validation.Field(&r.Description, validation.Length(MinDescriptionLength, MaxDescriptionLength)),
		validation.Field(&r.AdditionalImages, validation.Length(0, MaxAdditionalImages)),
		validation.Field(&r.TargetAmount, validation.Min(0.01).Error("target amount must be positive")),
		validation.Field(&r.PaymentDetails),
		validation.Field(&r.Hospital),
		validation.Field(&r.Urgency,
			validation.In(string(UrgencyLow), string(UrgencyMedium), string(UrgencyHigh)).Error("urgency must be low, medium or high"),
		),
		validation.Field(&r.TargetBloodUnits, validation.Min(1).Error("target blood units must be positive")),
	)
}

// ApplyTo mutates a campaign snapshot in place. Call on a Clone() so the
// diff recorder can compare against the original.
func (r UpdateCampaignRequest) ApplyTo(c *Campaign) {
	if r.Title != nil {
		c.Title = *r.Title
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.MainImage != nil {
		if *r.MainImage == "" {
			c.MainImage = nil
		} else {
			v := *r.MainImage
			c.MainImage = &v
		}
	}
	if r.AdditionalImages != nil {
		c.AdditionalImages = append([]string(nil), r.AdditionalImages...)
	}

	switch c.Type {
	case TypeFundraising:
		if r.TargetAmount != nil {
			c.TargetAmount = utils.ParseFloatToDecimal(r.TargetAmount)
		}
		if r.PaymentDetails != nil {
			c.PaymentDetails = r.PaymentDetails.toEntity()
		}
	case TypeBloodDonation:
		if r.Hospital != nil {
			c.Hospital = r.Hospital.toEntity()
		}
		if r.BloodType != nil {
			if *r.BloodType == "" {
				c.BloodType = nil
			} else {
				v := *r.BloodType
				c.BloodType = &v
			}
		}
		if r.Urgency != nil {
			u := UrgencyLevel(*r.Urgency)
			c.Urgency = &u
		}
		if r.TargetBloodUnits != nil {
			v := *r.TargetBloodUnits
			c.TargetBloodUnits = &v
		}
	}
}

// SetProgressRequest sets the variant's progress counter to an absolute
// value. Exceeding the target is valid ("goal exceeded" state).
type SetProgressRequest struct {
	Value float64 `json:"value"`
}

func (r SetProgressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Value, validation.Min(0.0).Error("progress value cannot be negative")),
	)
}

// SetVisibilityRequest toggles the hidden flag
type SetVisibilityRequest struct {
	Hidden bool `json:"hidden"`
}

// CreateUpdateRequest creates a campaign update post
type CreateUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Image       string `json:"image"`
}

func (r CreateUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.Length(MinTitleLength, MaxTitleLength)),
		validation.Field(&r.Description, validation.Required.Error("description is required"), validation.Length(1, MaxDescriptionLength)),
		validation.Field(&r.Type,
			validation.Required.Error("type is required"),
			validation.In(string(UpdateProgress), string(UpdateMilestone), string(UpdateGeneral)).Error("type must be progress, milestone or general"),
		),
		validation.Field(&r.Image, validation.When(r.Image != "", is.URL.Error("image must be a valid URL"))),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

// CampaignResponse is the public representation of a campaign plus the
// derived progress values, recomputed on every read.
type CampaignResponse struct {
	ID               uuid.UUID    `json:"id"`
	Slug             string       `json:"slug"`
	OwnerID          uuid.UUID    `json:"owner_id"`
	Type             CampaignType `json:"type"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	MainImage        *string      `json:"main_image"`
	AdditionalImages []string     `json:"additional_images"`
	IsHidden         bool         `json:"is_hidden"`
	ViewCount        int64        `json:"view_count"`

	// Fundraising
	TargetAmount    *decimal.Decimal `json:"target_amount,omitempty"`
	CurrentAmount   *decimal.Decimal `json:"current_amount,omitempty"`
	RemainingAmount *decimal.Decimal `json:"remaining_amount,omitempty"`
	PaymentDetails  *PaymentDetails  `json:"payment_details,omitempty"`

	// Blood donation
	Hospital            *HospitalInfo `json:"hospital,omitempty"`
	BloodType           *string       `json:"blood_type,omitempty"`
	Urgency             *UrgencyLevel `json:"urgency,omitempty"`
	TargetBloodUnits    *int          `json:"target_blood_units,omitempty"`
	CurrentBloodUnits   *int          `json:"current_blood_units,omitempty"`
	RemainingBloodUnits *int          `json:"remaining_blood_units,omitempty"`

	// Derived
	ProgressPercent float64 `json:"progress_percent"`
	Completed       bool    `json:"completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCampaignResponse assembles the variant-specific view of a campaign
func NewCampaignResponse(c *Campaign) CampaignResponse {
	resp := CampaignResponse{
		ID:               c.ID,
		Slug:             c.Slug,
		OwnerID:          c.OwnerID,
		Type:             c.Type,
		Title:            c.Title,
		Description:      c.Description,
		MainImage:        c.MainImage,
		AdditionalImages: c.AdditionalImages,
		IsHidden:         c.IsHidden,
		ViewCount:        c.ViewCount,
		ProgressPercent:  c.ProgressPercent(),
		Completed:        c.IsCompleted(),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}

	switch c.Type {
	case TypeFundraising:
		current := c.CurrentAmount
		remaining := c.RemainingAmount()
		resp.TargetAmount = c.TargetAmount
		resp.CurrentAmount = &current
		resp.RemainingAmount = &remaining
		resp.PaymentDetails = c.PaymentDetails
	case TypeBloodDonation:
		currentUnits := c.CurrentBloodUnits
		remainingUnits := c.RemainingBloodUnits()
		resp.Hospital = c.Hospital
		resp.BloodType = c.BloodType
		resp.Urgency = c.Urgency
		resp.TargetBloodUnits = c.TargetBloodUnits
		resp.CurrentBloodUnits = &currentUnits
		resp.RemainingBloodUnits = &remainingUnits
	}

	return resp
}

// ViewCountResponse is returned by the view increment endpoint
type ViewCountResponse struct {
	ViewCount int64 `json:"view_count"`
}
