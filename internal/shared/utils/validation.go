package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// String length limits
const (
	MaxEmailLength    = 255
	MaxPasswordLength = 128
	MinPasswordLength = 8
	MaxSlugLength     = 64
	MaxQueryLength    = 256
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	// SlugPattern allows lowercase words joined by single hyphens (hero-01)
	SlugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Validator returns the shared validator instance with the custom rules registered.
func Validator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return len(s) <= MaxSlugLength && SlugPattern.MatchString(s)
		})

		validateInst = v
	})

	return validateInst
}

// ValidateStruct validates struct tags and flattens the first failure into a readable error
func ValidateStruct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%s failed %q validation", fe.Namespace(), fe.Tag())
	}
	return err
}

// ValidateSlug validates a block or category name
func ValidateSlug(name, fieldName string) error {
	if name == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if err := Validator().Var(name, "slug"); err != nil {
		return fmt.Errorf("%s must be lowercase words joined by hyphens", fieldName)
	}
	return nil
}

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > MaxEmailLength {
		return fmt.Errorf("email must be at most %d characters", MaxEmailLength)
	}
	if err := Validator().Var(email, "email"); err != nil {
		return fmt.Errorf("please enter a valid email address")
	}
	return nil
}

// ValidatePassword validates a password length
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
	}
	return nil
}

// NormalizeQuery trims a search query and caps it at MaxQueryLength bytes
// without splitting a character
func NormalizeQuery(q string) string {
	q = strings.TrimSpace(q)
	if len(q) <= MaxQueryLength {
		return q
	}
	cut := MaxQueryLength
	for cut > 0 && !utf8.RuneStart(q[cut]) {
		cut--
	}
	return q[:cut]
}
