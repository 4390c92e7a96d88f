package internal

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"

	pkgerrs "github.com/jamesprial/go-facebook-graph-wrapper/pkg/errors"
)

const (
	// tagPathSegment rejects identifiers that would escape their path segment.
	tagPathSegment = "pathsegment"

	// maxIdentifierLength bounds ids, usernames and edge targets.
	maxIdentifierLength = 256
)

// Validator checks request options before they are serialized. It is safe for
// concurrent use once constructed.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	v := validator.New()
	// RegisterValidation only fails for an empty tag or a nil func.
	_ = v.RegisterValidation(tagPathSegment, func(fl validator.FieldLevel) bool {
		return ValidatePathSegment(fl.Field().String()) == nil
	})
	return &Validator{validate: v}
}

// Struct validates s and reports the first failing field as a PreconditionError
// attributed to op.
func (v *Validator) Struct(op string, s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) && len(valErrs) > 0 {
		fe := valErrs[0]
		return &pkgerrs.PreconditionError{
			Operation: op,
			Property:  fe.Field(),
			Message:   formatValidationError(fe),
		}
	}
	return errors.Wrap(err, "validate "+op)
}

// ValidatePathSegment checks that an identifier can be placed in a URL path
// without changing the path's shape or injecting a query.
func ValidatePathSegment(s string) error {
	if len(s) == 0 {
		return errors.New("identifier cannot be empty")
	}
	if len(s) > maxIdentifierLength {
		return fmt.Errorf("identifier too long (max %d characters)", maxIdentifierLength)
	}
	if s == "." || s == ".." {
		return fmt.Errorf("identifier %q is a relative path element", s)
	}
	if i := strings.IndexAny(s, "/?#%\\ "); i >= 0 {
		return fmt.Errorf("identifier contains invalid character %q at position %d", s[i], i)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == 0x7f {
			return fmt.Errorf("identifier contains invalid character %q at position %d", s[i], i)
		}
	}
	return nil
}

// formatValidationError converts a validator.FieldError to the tail of a
// PreconditionError message.
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case tagPathSegment:
		if err := ValidatePathSegment(fmt.Sprint(fe.Value())); err != nil {
			return "is not a valid identifier: " + err.Error()
		}
		return "is not a valid identifier"
	case "url":
		return "must be a valid URL"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "excluded_with":
		return fmt.Sprintf("cannot be combined with %s", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
