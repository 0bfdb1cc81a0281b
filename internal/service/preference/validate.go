package preference

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/heartmarshall/wordlens/internal/domain"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
			return domain.Theme(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("font", func(fl validator.FieldLevel) bool {
			return domain.Font(fl.Field().String()).IsValid()
		})

		validateInst = v
	})
	return validateInst
}

type themeInput struct {
	Theme string `validate:"required,theme"`
}

type fontInput struct {
	Font string `validate:"required,font"`
}

// toValidationError converts validator errors into a domain.ValidationError.
func toValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	fields := make([]domain.FieldError, 0, len(ves))
	for _, fe := range ves {
		fields = append(fields, domain.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageFor(fe),
		})
	}
	return domain.NewValidationError(fields...)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "theme":
		return "must be one of: light, dark"
	case "font":
		return "must be one of: sans, serif, mono"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
