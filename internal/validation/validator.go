package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const maxUserIDLength = 128

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their JSON names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("user_id", validateUserID)
	validate.RegisterValidation("player_name", validatePlayerName)
}

// Validate checks a request struct and joins every failure into one error
func Validate(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, formatFieldError(fe))
	}
	return errors.New(strings.Join(messages, ", "))
}

var tagMessages = map[string]string{
	"required":    "{field} is required",
	"gt":          "{field} must be greater than {param}",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"hexadecimal": "{field} must be hexadecimal",
	"uuid":        "{field} must be a valid UUID",
	"unique":      "{field} contains duplicate entries",
	"user_id":     "{field} must contain only letters, numbers, dashes, dots, and underscores",
	"player_name": "{field} must not be blank or contain control characters",
}

func formatFieldError(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	switch fe.Tag() {
	case "min", "max", "len":
		bound := map[string]string{"min": "at least", "max": "at most", "len": "exactly"}[fe.Tag()]
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be %s %s characters long", field, bound, param)
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have %s %s entries", field, bound, param)
		}
		return fmt.Sprintf("%s must be %s %s", field, bound, param)
	}

	template, ok := tagMessages[fe.Tag()]
	if !ok {
		template = "{field} is invalid"
	}
	return strings.NewReplacer("{field}", field, "{param}", param).Replace(template)
}

// User ids become cache keys and path segments, so they stay in a safe alphabet
func validateUserID(fl validator.FieldLevel) bool {
	userID := fl.Field().String()
	if userID == "" || len(userID) > maxUserIDLength {
		return false
	}

	for _, char := range userID {
		switch {
		case char >= 'a' && char <= 'z', char >= 'A' && char <= 'Z', char >= '0' && char <= '9':
		case char == '_', char == '-', char == '.':
		default:
			return false
		}
	}
	return true
}

func validatePlayerName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if strings.TrimSpace(name) == "" {
		return false
	}
	return strings.IndexFunc(name, unicode.IsControl) < 0
}

// ValidateUserID checks a user id taken from a path or query string
func ValidateUserID(userID string) error {
	if err := validate.Var(userID, "required,user_id"); err != nil {
		return errors.New("userId must contain only letters, numbers, dashes, dots, and underscores")
	}
	return nil
}

// ValidateRange checks that value lies in [min, max]
func ValidateRange(value int64, min, max int64, fieldName string) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %d and %d", fieldName, min, max)
	}
	return nil
}
