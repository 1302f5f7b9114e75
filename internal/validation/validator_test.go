package validation

import (
	"math"
	"strings"
	"testing"

	"rhystmorgan/clientDesk/internal/models"
)

func validRecord() models.Record {
	return models.Record{
		Name:    "Ana Souza",
		Email:   "ana@example.com",
		Phone:   "(11) 98765-4321",
		Address: "Rua das Flores, 120",
		Income:  1500,
		Status:  models.StatusActive,
	}
}

func TestValidateValidRecord(t *testing.T) {
	result := NewRecordValidator().Validate(validRecord())

	if !result.IsValid {
		t.Errorf("Expected valid record, got errors: %+v", result.Errors)
	}
	if result.ValidatedAt.IsZero() {
		t.Error("ValidatedAt should be set")
	}
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*models.Record)
		code   ValidationErrorCode
	}{
		{"name", func(r *models.Record) { r.Name = "  " }, ErrorNameRequired},
		{"email", func(r *models.Record) { r.Email = "" }, ErrorEmailRequired},
		{"phone", func(r *models.Record) { r.Phone = "" }, ErrorPhoneRequired},
		{"address", func(r *models.Record) { r.Address = "" }, ErrorAddressRequired},
		{"status", func(r *models.Record) { r.Status = "" }, ErrorStatusRequired},
	}

	for _, test := range tests {
		record := validRecord()
		test.mutate(&record)

		result := NewRecordValidator().Validate(record)
		if result.IsValid {
			t.Errorf("Expected missing %s to be invalid", test.field)
			continue
		}
		if !result.HasRequiredFieldErrors() {
			t.Errorf("Expected a required-field error for %s", test.field)
		}
		if result.Errors[0].Code != test.code || result.Errors[0].Field != test.field {
			t.Errorf("Expected code %d on %s, got %+v", test.code, test.field, result.Errors[0])
		}
	}
}

func TestValidateOptionalFieldsMayBeEmpty(t *testing.T) {
	record := validRecord()
	record.Observations = ""
	record.Income = 0
	record.NumOfDependents = 0
	record.Photo = nil

	if result := NewRecordValidator().Validate(record); !result.IsValid {
		t.Errorf("Optional fields should not be required: %+v", result.Errors)
	}
}

func TestValidateRanges(t *testing.T) {
	record := validRecord()
	record.Income = -1
	record.NumOfDependents = -2
	record.Status = "ARQUIVADO"
	record.Name = strings.Repeat("a", MaxNameLength+1)

	result := NewRecordValidator().Validate(record)
	fields := result.FieldErrors()

	for _, field := range []string{"income", "numOfDependents", "status", "name"} {
		if _, ok := fields[field]; !ok {
			t.Errorf("Expected an error on %s, got %v", field, fields)
		}
	}
	if result.HasRequiredFieldErrors() {
		t.Error("None of these are required-field errors")
	}
}

func TestValidateIncome(t *testing.T) {
	tests := []struct {
		name   string
		income float64
		code   ValidationErrorCode
		valid  bool
	}{
		{"zero", 0, 0, true},
		{"positive", 1234.5, 0, true},
		{"negative", -0.01, ErrorNegativeIncome, false},
		{"not a number", math.NaN(), ErrorInvalidIncome, false},
		{"positive infinity", math.Inf(1), ErrorInvalidIncome, false},
		{"negative infinity", math.Inf(-1), ErrorInvalidIncome, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			record.Income = tt.income

			result := NewRecordValidator().Validate(record)
			if result.IsValid != tt.valid {
				t.Fatalf("Validate(income=%v).IsValid = %v, expected %v", tt.income, result.IsValid, tt.valid)
			}
			if tt.valid {
				return
			}
			if len(result.Errors) != 1 || result.Errors[0].Code != tt.code || result.Errors[0].Field != "income" {
				t.Errorf("Expected a single income error with code %d, got %+v", tt.code, result.Errors)
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := map[string]bool{
		"ana@example.com":      true,
		"ana.souza@empresa.br": true,
		"a@b.co":               true,
		"ana":                  false,
		"@example.com":         false,
		"ana@":                 false,
		"ana@example":          false,
		"ana@@example.com":     false,
		"ana @example.com":     false,
		"ana@example.":         false,
	}

	for email, expected := range tests {
		if got := IsValidEmail(email); got != expected {
			t.Errorf("IsValidEmail(%q) = %v, expected %v", email, got, expected)
		}
	}
}

func TestValidateDuplicateEmailIsWarning(t *testing.T) {
	validator := NewRecordValidator()
	validator.SetKnownRecords([]models.Record{{ID: 1, Email: "ANA@example.com"}})

	record := validRecord()
	result := validator.Validate(record)
	if !result.IsValid {
		t.Error("Duplicate email should not block submission")
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Code != ErrorDuplicateEmail {
		t.Errorf("Expected duplicate email warning, got %+v", result.Warnings)
	}

	record.ID = 1
	if result := validator.Validate(record); len(result.Warnings) != 0 {
		t.Errorf("Editing the owner of the email should not warn, got %+v", result.Warnings)
	}
}
