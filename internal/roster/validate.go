package roster

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/desertthunder/emx/internal/models"
	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

// Validate is the shared validator instance with the roster's custom rules registered.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("failed to register phone validation: %v", err))
	}
	return v
}

// ValidateCandidate runs the static rules and returns one message per failing field.
func ValidateCandidate(c models.Candidate) map[Field]string {
	errs := map[Field]string{}

	err := Validate.Struct(c)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs[FieldName] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		field := Field(strings.ToLower(fe.Field()))
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = staticMessage(field, fe)
	}
	return errs
}

func staticMessage(field Field, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field.Label())
	case "email":
		return "Please enter a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field.Label(), fe.Param())
	case "phone":
		return "Please enter a valid phone number"
	}
	return fmt.Sprintf("%s is invalid", field.Label())
}
