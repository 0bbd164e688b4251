package submission

import (
	"fmt"
	"strings"
)

// Known top-level field names of the transfer form.
const (
	FieldFirstName     = "firstName"
	FieldLastName      = "lastName"
	FieldDateOfBirth   = "dateOfBirth"
	FieldPhone         = "phone"
	FieldEmail         = "email"
	FieldPharmacyName  = "pharmacyName"
	FieldPharmacyPhone = "pharmacyPhone"
	FieldMedications   = "medications"
	FieldAllergies     = "allergies"
	FieldNotes         = "notes"
	FieldSessionToken  = "sessionToken"

	// Legacy single-medication variant, coalesced into a one-entry group.
	fieldMedicationName = "medicationName"
	fieldDosage         = "dosage"
	fieldFrequency      = "frequency"
)

// DefaultRequiredFields is the required subset when no configuration
// overrides it.
var DefaultRequiredFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldDateOfBirth,
	FieldPhone,
	FieldPharmacyName,
}

// Medication is one entry of the repeating medication group.
type Medication struct {
	Name      string
	Dosage    string
	Frequency string
}

// Submission is the typed view of one transfer request. Known fields
// are extracted into struct fields; everything else lands in Extra so
// unrecognized input passes through structurally without weakening the
// typing of the fields the renderer depends on.
type Submission struct {
	FirstName   string
	LastName    string
	DateOfBirth string

	Phone string
	Email string

	PharmacyName  string
	PharmacyPhone string

	Medications []Medication

	Allergies string
	Notes     string

	SessionToken string

	Extra map[string]any
}

// FromMap builds a Submission from a decoded JSON object. The caller is
// expected to have sanitized the map already; FromMap only reshapes it.
// The legacy flat medication fields are folded into a group of size one
// when the medications group itself is absent.
func FromMap(m map[string]any) Submission {
	sub := Submission{
		FirstName:     stringField(m, FieldFirstName),
		LastName:      stringField(m, FieldLastName),
		DateOfBirth:   stringField(m, FieldDateOfBirth),
		Phone:         stringField(m, FieldPhone),
		Email:         stringField(m, FieldEmail),
		PharmacyName:  stringField(m, FieldPharmacyName),
		PharmacyPhone: stringField(m, FieldPharmacyPhone),
		Allergies:     stringField(m, FieldAllergies),
		Notes:         stringField(m, FieldNotes),
		SessionToken:  stringField(m, FieldSessionToken),
	}

	if group, ok := m[FieldMedications].([]any); ok {
		for _, item := range group {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			sub.Medications = append(sub.Medications, Medication{
				Name:      stringField(entry, "name"),
				Dosage:    stringField(entry, fieldDosage),
				Frequency: stringField(entry, fieldFrequency),
			})
		}
	} else if name := stringField(m, fieldMedicationName); name != "" {
		sub.Medications = append(sub.Medications, Medication{
			Name:      name,
			Dosage:    stringField(m, fieldDosage),
			Frequency: stringField(m, fieldFrequency),
		})
	}

	known := map[string]struct{}{
		FieldFirstName: {}, FieldLastName: {}, FieldDateOfBirth: {},
		FieldPhone: {}, FieldEmail: {},
		FieldPharmacyName: {}, FieldPharmacyPhone: {},
		FieldMedications: {}, FieldAllergies: {}, FieldNotes: {},
		FieldSessionToken: {},
		fieldMedicationName: {}, fieldDosage: {}, fieldFrequency: {},
	}
	for k, v := range m {
		if _, ok := known[k]; ok {
			continue
		}
		if sub.Extra == nil {
			sub.Extra = make(map[string]any)
		}
		sub.Extra[k] = v
	}

	return sub
}

// MissingFields returns, in the order of required, every required field
// that is absent, not a string, or blank in the decoded body.
func MissingFields(m map[string]any, required []string) []string {
	var missing []string
	for _, field := range required {
		if stringField(m, field) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// Subject derives the mail subject line from the patient name fields.
// It must be called on a sanitized submission.
func (s Submission) Subject() string {
	name := strings.TrimSpace(s.FirstName + " " + s.LastName)
	if name == "" {
		name = "Unknown Patient"
	}
	return fmt.Sprintf("Prescription Transfer Request: %s", name)
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}
