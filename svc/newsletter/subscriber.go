package newsletter

import (
	"github.com/dmitrymomot/newsroom/pkg/sanitizer"
	"github.com/dmitrymomot/newsroom/pkg/validator"
)

const (
	MaxNameLength  = 256
	ForbiddenChars = `/()"<>\{}`
)

// Subscriber is a validated name and email pair.
type Subscriber struct {
	Name  string
	Email string
}

var cleanName = sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.Trim)

// ParseSubscriberName trims s and checks it is non-empty, at most
// MaxNameLength characters and free of ForbiddenChars.
func ParseSubscriberName(s string) (string, error) {
	name := cleanName(s)
	if err := validator.Apply(
		validator.RequiredString("name", name),
		validator.MaxLenString("name", name, MaxNameLength),
		validator.NoneOfChars("name", name, ForbiddenChars),
	); err != nil {
		return "", err
	}
	return name, nil
}

// ParseSubscriberEmail normalizes s and checks it is a bare email address.
func ParseSubscriberEmail(s string) (string, error) {
	email := sanitizer.NormalizeEmail(s)
	if err := validator.Apply(validator.ValidEmail("email", email)); err != nil {
		return "", err
	}
	return email, nil
}

// NewSubscriber validates both fields and reports every failing rule at once.
func NewSubscriber(name, email string) (Subscriber, error) {
	var errs validator.ValidationErrors

	n, err := ParseSubscriberName(name)
	if err != nil {
		errs = append(errs, validator.ExtractValidationErrors(err)...)
	}
	e, err := ParseSubscriberEmail(email)
	if err != nil {
		errs = append(errs, validator.ExtractValidationErrors(err)...)
	}

	if !errs.IsEmpty() {
		return Subscriber{}, errs
	}
	return Subscriber{Name: n, Email: e}, nil
}
