// Package contact implements the contact form: field state, the validation
// gate, the submission state machine and its runtime, and the alert banner
// mapping.
package contact

import (
	"regexp"
	"strings"

	"github.com/byteik/site/internal/errors"
)

// Form is the contact form snapshot sent to the submission endpoint.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Field names a form input.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// ParseField maps an input name to a Field.
func ParseField(s string) (Field, bool) {
	switch Field(s) {
	case FieldName, FieldEmail, FieldMessage:
		return Field(s), true
	default:
		return "", false
	}
}

// With returns a copy of f with one field replaced.
func (f Form) With(field Field, value string) Form {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldMessage:
		f.Message = value
	}
	return f
}

// Get returns the raw value of one field.
func (f Form) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldMessage:
		return f.Message
	default:
		return ""
	}
}

// IsZero reports whether every field is empty.
func (f Form) IsZero() bool {
	return f == Form{}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Filled reports whether every field has non-whitespace content. It drives
// the submit button and deliberately ignores the email format.
func Filled(f Form) bool {
	return strings.TrimSpace(f.Name) != "" &&
		strings.TrimSpace(f.Email) != "" &&
		strings.TrimSpace(f.Message) != ""
}

// ValidEmail reports whether s looks like local-part@domain.tld with no
// whitespace.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Validate is the gate in front of submission. The first failing rule wins:
// a blank field yields code "required", then a malformed email yields
// "invalid-email".
func Validate(f Form) error {
	if !Filled(f) {
		return errors.NewValidationError(errors.ErrCodeRequired, "name, email and message are required").
			WithComponent("contact")
	}
	if !ValidEmail(strings.TrimSpace(f.Email)) {
		return errors.NewValidationError(errors.ErrCodeInvalidEmail, "email address is not valid").
			WithComponent("contact").
			WithContext("email", f.Email)
	}
	return nil
}
