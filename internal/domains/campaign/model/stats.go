package model

import "github.com/shopspring/decimal"

// PlatformStats is an aggregate snapshot recomputed from live data on
// every read. Never served from a cache as the authoritative answer.
type PlatformStats struct {
	TotalCampaigns         int64 `json:"total_campaigns"`
	FundraisingCampaigns   int64 `json:"fundraising_campaigns"`
	BloodDonationCampaigns int64 `json:"blood_donation_campaigns"`
	ActiveCampaigns        int64 `json:"active_campaigns"`
	CompletedCampaigns     int64 `json:"completed_campaigns"`

	TotalViews       int64           `json:"total_views"`
	TotalFundsRaised decimal.Decimal `json:"total_funds_raised"`
	TotalBloodUnits  int64           `json:"total_blood_units"`

	TotalUsers int64 `json:"total_users"`

	CampaignsLast7Days  int64 `json:"campaigns_last_7_days"`
	CampaignsLast30Days int64 `json:"campaigns_last_30_days"`
	UsersLast7Days      int64 `json:"users_last_7_days"`
	UsersLast30Days     int64 `json:"users_last_30_days"`
}
