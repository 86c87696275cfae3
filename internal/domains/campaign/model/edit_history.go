package model

import (
	"time"

	"github.com/google/uuid"
)

// Editor fallback when the editing account no longer resolves
const UnknownEditorName = "Unknown User"

// Editable field names recorded in the audit trail. The slug and the
// progress counters are deliberately absent: the slug is immutable and
// progress updates flow through their own channel.
const (
	FieldTitle             = "title"
	FieldDescription       = "description"
	FieldMainImage         = "main_image"
	FieldAdditionalImages  = "additional_images"
	FieldTargetAmount      = "target_amount"
	FieldMobileBanking     = "mobile_banking"
	FieldBankAccountNumber = "bank_account_number"
	FieldBankName          = "bank_name"
	FieldBankHolderName    = "bank_holder_name"
	FieldHospitalName      = "hospital_name"
	FieldHospitalAddress   = "hospital_address"
	FieldHospitalContact   = "hospital_contact"
	FieldHospitalEmail     = "hospital_email"
	FieldBloodType         = "blood_type"
	FieldUrgency           = "urgency"
	FieldTargetBloodUnits  = "target_blood_units"
)

// FieldChange is one {field, old_value, new_value} tuple of an edit
type FieldChange struct {
	Field    string      `json:"field"`
	OldValue interface{} `json:"old_value"`
	NewValue interface{} `json:"new_value"`
}

// EditHistoryEntry is an immutable audit record of one structural edit.
// Never mutated or deleted after creation (removed only when the parent
// campaign cascades away).
type EditHistoryEntry struct {
	ID         uuid.UUID     `json:"id"`
	CampaignID uuid.UUID     `json:"campaign_id"`
	EditorID   uuid.UUID     `json:"editor_id"`
	EditorName string        `json:"editor_name"` // resolved at read time
	Changes    []FieldChange `json:"changes"`
	CreatedAt  time.Time     `json:"created_at"`
}

// ComputeDiff compares the editable field set of two campaign snapshots
// by value (deep comparison for list-valued fields) and returns one
// tuple per differing field. Returns nil when nothing changed so the
// caller can skip recording entirely for no-op edits.
func ComputeDiff(before, after *Campaign) []FieldChange {
	var changes []FieldChange
	add := func(field string, oldV, newV interface{}) {
		changes = append(changes, FieldChange{Field: field, OldValue: oldV, NewValue: newV})
	}

	if before.Title != after.Title {
		add(FieldTitle, before.Title, after.Title)
	}
	if before.Description != after.Description {
		add(FieldDescription, before.Description, after.Description)
	}
	if !strPtrEqual(before.MainImage, after.MainImage) {
		add(FieldMainImage, strPtrValue(before.MainImage), strPtrValue(after.MainImage))
	}
	if !stringSliceEqual(before.AdditionalImages, after.AdditionalImages) {
		add(FieldAdditionalImages, before.AdditionalImages, after.AdditionalImages)
	}

	switch before.Type {
	case TypeFundraising:
		if !decimalPtrEqual(before.TargetAmount, after.TargetAmount) {
			add(FieldTargetAmount, decimalPtrValue(before.TargetAmount), decimalPtrValue(after.TargetAmount))
		}
		diffPaymentDetails(before.PaymentDetails, after.PaymentDetails, add)

	case TypeBloodDonation:
		diffHospital(before.Hospital, after.Hospital, add)
		if !strPtrEqual(before.BloodType, after.BloodType) {
			add(FieldBloodType, strPtrValue(before.BloodType), strPtrValue(after.BloodType))
		}
		if !urgencyPtrEqual(before.Urgency, after.Urgency) {
			add(FieldUrgency, urgencyPtrValue(before.Urgency), urgencyPtrValue(after.Urgency))
		}
		if !intPtrEqual(before.TargetBloodUnits, after.TargetBloodUnits) {
			add(FieldTargetBloodUnits, intPtrValue(before.TargetBloodUnits), intPtrValue(after.TargetBloodUnits))
		}
	}

	return changes
}

func diffPaymentDetails(before, after *PaymentDetails, add func(string, interface{}, interface{})) {
	oldMobile, newMobile := "", ""
	var oldBank, newBank *BankAccount
	if before != nil {
		oldMobile = before.MobileBanking
		oldBank = before.BankAccount
	}
	if after != nil {
		newMobile = after.MobileBanking
		newBank = after.BankAccount
	}

	if oldMobile != newMobile {
		add(FieldMobileBanking, oldMobile, newMobile)
	}

	var oldNumber, oldName, oldHolder string
	var newNumber, newName, newHolder string
	if oldBank != nil {
		oldNumber, oldName, oldHolder = oldBank.AccountNumber, oldBank.BankName, oldBank.HolderName
	}
	if newBank != nil {
		newNumber, newName, newHolder = newBank.AccountNumber, newBank.BankName, newBank.HolderName
	}

	if oldNumber != newNumber {
		add(FieldBankAccountNumber, oldNumber, newNumber)
	}
	if oldName != newName {
		add(FieldBankName, oldName, newName)
	}
	if oldHolder != newHolder {
		add(FieldBankHolderName, oldHolder, newHolder)
	}
}

func diffHospital(before, after *HospitalInfo, add func(string, interface{}, interface{})) {
	var oldName, oldAddress string
	var newName, newAddress string
	var oldContact, oldEmail, newContact, newEmail *string
	if before != nil {
		oldName, oldAddress = before.Name, before.Address
		oldContact, oldEmail = before.Contact, before.Email
	}
	if after != nil {
		newName, newAddress = after.Name, after.Address
		newContact, newEmail = after.Contact, after.Email
	}

	if oldName != newName {
		add(FieldHospitalName, oldName, newName)
	}
	if oldAddress != newAddress {
		add(FieldHospitalAddress, oldAddress, newAddress)
	}
	if !strPtrEqual(oldContact, newContact) {
		add(FieldHospitalContact, strPtrValue(oldContact), strPtrValue(newContact))
	}
	if !strPtrEqual(oldEmail, newEmail) {
		add(FieldHospitalEmail, strPtrValue(oldEmail), strPtrValue(newEmail))
	}
}
