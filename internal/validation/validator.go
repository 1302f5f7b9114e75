package validation

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"rhystmorgan/clientDesk/internal/models"
)

const (
	MaxNameLength         = 120
	MaxFieldLength        = 255
	MaxObservationsLength = 2000

	RequiredFieldsMessage = "Por favor, preencha todos os campos obrigatórios (*)"
)

// RecordValidator checks a record before it is sent to the backend. It only
// looks at the record itself; uniqueness is the backend's call, so a local
// duplicate email is reported as a warning.
type RecordValidator struct {
	existingEmails map[string]int64
}

func NewRecordValidator() *RecordValidator {
	return &RecordValidator{existingEmails: make(map[string]int64)}
}

// SetKnownRecords feeds the emails currently in the store for the
// duplicate warning.
func (v *RecordValidator) SetKnownRecords(records []models.Record) {
	v.existingEmails = make(map[string]int64, len(records))
	for _, record := range records {
		if email := strings.ToLower(strings.TrimSpace(record.Email)); email != "" {
			v.existingEmails[email] = record.ID
		}
	}
}

// Validate performs every check and collects all failures.
func (v *RecordValidator) Validate(record models.Record) ValidationResult {
	result := ValidationResult{
		IsValid:     true,
		ValidatedAt: time.Now(),
	}

	addError := func(field string, code ValidationErrorCode, message string) {
		result.Errors = append(result.Errors, ValidationError{
			Field:    field,
			Code:     code,
			Message:  message,
			Severity: ValidationSeverityError,
		})
		result.IsValid = false
	}

	required := []struct {
		field string
		value string
		code  ValidationErrorCode
		label string
	}{
		{"name", record.Name, ErrorNameRequired, "Nome é obrigatório"},
		{"email", record.Email, ErrorEmailRequired, "Email é obrigatório"},
		{"phone", record.Phone, ErrorPhoneRequired, "Telefone é obrigatório"},
		{"address", record.Address, ErrorAddressRequired, "Endereço é obrigatório"},
		{"status", string(record.Status), ErrorStatusRequired, "Status é obrigatório"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			addError(r.field, r.code, r.label)
		}
	}

	if utf8.RuneCountInString(record.Name) > MaxNameLength {
		addError("name", ErrorNameTooLong, "Nome muito longo (máx. 120 caracteres)")
	}
	for field, value := range map[string]string{"email": record.Email, "phone": record.Phone, "address": record.Address} {
		if utf8.RuneCountInString(value) > MaxFieldLength {
			addError(field, ErrorFieldTooLong, "Campo muito longo (máx. 255 caracteres)")
		}
	}
	if utf8.RuneCountInString(record.Observations) > MaxObservationsLength {
		addError("observations", ErrorFieldTooLong, "Observações muito longas (máx. 2000 caracteres)")
	}

	if email := strings.TrimSpace(record.Email); email != "" && !IsValidEmail(email) {
		addError("email", ErrorInvalidEmail, "Email inválido")
	}

	if record.Status != "" && !record.Status.IsKnown() {
		addError("status", ErrorInvalidStatus, "Status inválido")
	}

	switch {
	case math.IsNaN(record.Income) || math.IsInf(record.Income, 0):
		addError("income", ErrorInvalidIncome, "Renda inválida")
	case record.Income < 0:
		addError("income", ErrorNegativeIncome, "Renda não pode ser negativa")
	}
	if record.NumOfDependents < 0 {
		addError("numOfDependents", ErrorNegativeDependents, "Dependentes não pode ser negativo")
	}

	email := strings.ToLower(strings.TrimSpace(record.Email))
	if ownerID, exists := v.existingEmails[email]; exists && email != "" && ownerID != record.ID {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:    "email",
			Code:     ErrorDuplicateEmail,
			Message:  "Email já usado por outro registro carregado",
			Severity: ValidationSeverityWarning,
		})
	}

	return result
}

// IsValidEmail accepts local@domain with a dot somewhere in the domain and
// no whitespace.
func IsValidEmail(email string) bool {
	if strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at != strings.LastIndexByte(email, '@') {
		return false
	}
	domain := email[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
