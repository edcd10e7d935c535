package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/osa911/teamchat/internal/store"
)

// Length limits shared with the client forms
const (
	UsernameMinLength = 5
	UsernameMaxLength = 35
	TeamNameMinLength = 3
	TeamNameMaxLength = 40
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nameRegex     = regexp.MustCompile(`^[\p{L}\p{M}0-9\s\-_.]{1,50}$`)
	usernameRegex = regexp.MustCompile(fmt.Sprintf(`^[a-zA-Z0-9_-]{%d,%d}$`, UsernameMinLength, UsernameMaxLength))
)

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	validators := map[string]validator.Func{
		"email":    validateEmail,
		"name":     validateName,
		"username": validateUsername,
		"teamname": validateTeamName,
		"storekey": validateStoreKey,
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %q validator: %w", tag, err)
		}
	}
	return nil
}

// Setup registers the custom validators on gin's binding engine so ShouldBind* applies them
func Setup() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return RegisterValidators(v)
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// validateEmail checks if the email is valid
func validateEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

// validateName checks if the name is valid
func validateName(fl validator.FieldLevel) bool {
	return nameRegex.MatchString(fl.Field().String())
}

// validateUsername checks if the username is valid
func validateUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

// validateTeamName checks the length and that the name can be used as a MyTeams key
func validateTeamName(fl validator.FieldLevel) bool {
	return IsTeamName(fl.Field().String())
}

func validateStoreKey(fl validator.FieldLevel) bool {
	return store.ValidKey(fl.Field().String())
}

// IsTeamName reports whether name is an acceptable team name
func IsTeamName(name string) bool {
	n := utf8.RuneCountInString(name)
	if n < TeamNameMinLength || n > TeamNameMaxLength {
		return false
	}
	if strings.TrimSpace(name) != name {
		return false
	}
	return store.ValidKey(name) && !strings.ContainsAny(name, `<>&"'`)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// FormatValidationError formats validation errors into a user-friendly response
func FormatValidationError(err error) []ValidationError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	result := make([]ValidationError, 0, len(validationErrors))
	for _, e := range validationErrors {
		result = append(result, ValidationError{
			Field:   e.Field(),
			Tag:     e.Tag(),
			Value:   e.Param(),
			Message: message(e),
		})
	}
	return result
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "username":
		return fmt.Sprintf("%s must be %d to %d letters, digits, '-' or '_'", e.Field(), UsernameMinLength, UsernameMaxLength)
	case "teamname":
		return fmt.Sprintf("%s must be %d to %d characters without . $ # [ ] / < > & or quotes", e.Field(), TeamNameMinLength, TeamNameMaxLength)
	case "storekey":
		return fmt.Sprintf("%s contains characters not allowed in a key", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
	}
	return fmt.Sprintf("%s is invalid", e.Field())
}
