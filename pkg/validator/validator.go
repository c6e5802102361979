package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// recipientPattern is the loose email shape accepted for recipients:
// local part, "@", and a domain containing a dot.
var recipientPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsRecipient reports whether s looks like an email address
func IsRecipient(s string) bool {
	return recipientPattern.MatchString(s)
}

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	if err := v.RegisterValidation("recipient", func(fl validator.FieldLevel) bool {
		return IsRecipient(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
