package contact

import (
	"github.com/byteik/site/internal/errors"
)

// Catalog keys for the alert texts.
const (
	KeyRequired     = "cta.form.requiredMsg"
	KeyInvalidEmail = "cta.form.emailInvalid"
	KeySuccess      = "cta.form.success"
	KeyFailure      = "cta.form.error"
)

// Messages holds the localized alert texts.
type Messages struct {
	Required     string
	InvalidEmail string
	Success      string
	Failure      string
}

// DefaultMessages returns the English texts.
func DefaultMessages() Messages {
	return Messages{
		Required:     "Please fill in your name, email and message.",
		InvalidEmail: "Please enter a valid email address.",
		Success:      "Thank you! Your message has been sent.",
		Failure:      "Something went wrong. Please try again later.",
	}
}

// MessagesFrom builds Messages by looking each key up with translate.
func MessagesFrom(translate func(key string) string) Messages {
	return Messages{
		Required:     translate(KeyRequired),
		InvalidEmail: translate(KeyInvalidEmail),
		Success:      translate(KeySuccess),
		Failure:      translate(KeyFailure),
	}
}

// ForValidation picks the text for a validation error code.
func (m Messages) ForValidation(code string) string {
	if code == errors.ErrCodeInvalidEmail {
		return m.InvalidEmail
	}
	return m.Required
}

// Banner is a rendered alert.
type Banner struct {
	Message string `json:"message"`
	Class   string `json:"class"`
}

// Visible reports whether the banner renders anything.
func (b Banner) Visible() bool {
	return b.Message != ""
}

// Present maps an alert to its banner. An empty message renders nothing.
func Present(a Alert) Banner {
	if a.IsZero() {
		return Banner{}
	}
	switch a.Kind {
	case AlertSuccess:
		return Banner{Message: a.Message, Class: "alert alert-success"}
	default:
		return Banner{Message: a.Message, Class: "alert alert-error"}
	}
}
