package config

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidOptions is returned when generation options fail validation.
var ErrInvalidOptions = errors.New("invalid options")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return token.IsIdentifier(fl.Field().String())
	})

	return v
}

// Generate holds the resolved options of a generate run.
type Generate struct {
	SpecPath       string `validate:"required_without=DiscoveryURL"`
	DiscoveryURL   string `validate:"omitempty,url"`
	OutputDir      string `validate:"required"`
	PackageName    string `validate:"required,goident"`
	ImportPath     string `validate:"required_if=Resources true"`
	Resources      bool
	TemplateDir    string `validate:"omitempty,dir"`
	VocabularyPath string `validate:"omitempty,file"`
	Check          bool
	Watch          bool `validate:"excluded_with=Check,excluded_without=SpecPath"`
}

// Validate checks the options and reports every problem at once.
func (g *Generate) Validate() error {
	err := validate.Struct(g)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, ve.Field()+": "+formatValidationError(ve))
	}

	return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(messages, "; "))
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "is required"
	case "required_without":
		return "is required when " + ve.Param() + " is not set"
	case "required_if":
		return "is required when " + strings.ReplaceAll(ve.Param(), " ", " is ")
	case "excluded_with":
		return "cannot be combined with " + ve.Param()
	case "excluded_without":
		return "needs " + ve.Param()
	case "goident":
		return fmt.Sprintf("%q is not a valid Go package name", ve.Value())
	case "url":
		return fmt.Sprintf("%q is not a valid URL", ve.Value())
	case "dir":
		return fmt.Sprintf("%q is not a directory", ve.Value())
	case "file":
		return fmt.Sprintf("%q is not a file", ve.Value())
	default:
		return "failed " + ve.Tag() + " validation"
	}
}
