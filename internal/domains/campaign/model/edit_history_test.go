package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findChange(changes []FieldChange, field string) *FieldChange {
	for i := range changes {
		if changes[i].Field == field {
			return &changes[i]
		}
	}
	return nil
}

func TestComputeDiff_NoChanges(t *testing.T) {
	before := newFundraisingCampaign("1000", "100")
	after := before.Clone()

	assert.Nil(t, ComputeDiff(before, after), "identical snapshots must produce no diff")
}

func TestComputeDiff_TitleChange(t *testing.T) {
	before := newFundraisingCampaign("1000", "100")
	after := before.Clone()
	after.Title = "Help Build Two Schools"

	changes := ComputeDiff(before, after)
	require.Len(t, changes, 1)
	assert.Equal(t, FieldTitle, changes[0].Field)
	assert.Equal(t, "Help Build a School", changes[0].OldValue)
	assert.Equal(t, "Help Build Two Schools", changes[0].NewValue)
}

func TestComputeDiff_ImageListComparedByValue(t *testing.T) {
	before := newFundraisingCampaign("1000", "100")
	before.AdditionalImages = []string{"a.png", "b.png"}
	after := before.Clone()

	// fresh slice with equal contents is not a change
	after.AdditionalImages = []string{"a.png", "b.png"}
	assert.Nil(t, ComputeDiff(before, after))

	after.AdditionalImages = []string{"a.png", "c.png"}
	changes := ComputeDiff(before, after)
	require.Len(t, changes, 1)
	assert.Equal(t, FieldAdditionalImages, changes[0].Field)
}

func TestComputeDiff_ClearingAFieldIsRecorded(t *testing.T) {
	before := newFundraisingCampaign("1000", "100")
	before.MainImage = strPtr("cover.png")
	after := before.Clone()
	after.MainImage = nil

	changes := ComputeDiff(before, after)
	require.Len(t, changes, 1)
	assert.Equal(t, FieldMainImage, changes[0].Field)
	assert.Equal(t, "cover.png", changes[0].OldValue)
	assert.Nil(t, changes[0].NewValue)
}

func TestComputeDiff_PaymentDetailsFlattened(t *testing.T) {
	before := newFundraisingCampaign("1000", "100")
	before.PaymentDetails = &PaymentDetails{
		MobileBanking: "0123456789",
		BankAccount: &BankAccount{
			AccountNumber: "111",
			BankName:      "First Bank",
			HolderName:    "Jane Roe",
		},
	}
	after := before.Clone()
	after.PaymentDetails.MobileBanking = "0987654321"
	after.PaymentDetails.BankAccount.BankName = "Second Bank"

	changes := ComputeDiff(before, after)
	require.Len(t, changes, 2)

	mobile := findChange(changes, FieldMobileBanking)
	require.NotNil(t, mobile)
	assert.Equal(t, "0123456789", mobile.OldValue)
	assert.Equal(t, "0987654321", mobile.NewValue)

	bank := findChange(changes, FieldBankName)
	require.NotNil(t, bank)
	assert.Equal(t, "First Bank", bank.OldValue)
	assert.Equal(t, "Second Bank", bank.NewValue)
}

func TestComputeDiff_TargetAmountComparedByValue(t *testing.T) {
	before := newFundraisingCampaign("1000", "100")
	after := before.Clone()

	// same numeric value, different representation
	after.TargetAmount = decPtr("1000.00")
	assert.Nil(t, ComputeDiff(before, after))

	after.TargetAmount = decPtr("2000")
	changes := ComputeDiff(before, after)
	require.Len(t, changes, 1)
	assert.Equal(t, FieldTargetAmount, changes[0].Field)
	assert.Equal(t, "1000", changes[0].OldValue)
	assert.Equal(t, "2000", changes[0].NewValue)
}

func TestComputeDiff_BloodDonationFields(t *testing.T) {
	before := newBloodCampaign(10, 2)
	before.BloodType = strPtr("O-")
	after := before.Clone()

	urgency := UrgencyLow
	after.Urgency = &urgency
	after.TargetBloodUnits = intPtr(20)
	after.Hospital.Address = "2 Side St"

	changes := ComputeDiff(before, after)
	require.Len(t, changes, 3)
	assert.NotNil(t, findChange(changes, FieldUrgency))
	assert.NotNil(t, findChange(changes, FieldTargetBloodUnits))
	assert.NotNil(t, findChange(changes, FieldHospitalAddress))
	assert.Nil(t, findChange(changes, FieldBloodType))
}
