package validator

import (
	"github.com/go-playground/validator/v10"

	"clubhub/internal/model"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterValidation("event_category", validateEventCategory)

	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// IsValidationError reports whether err came out of a struct validation, so
// the HTTP layer can map it to a 400.
func IsValidationError(err error) bool {
	_, ok := err.(validator.ValidationErrors)
	return ok
}

func validateEventCategory(fl validator.FieldLevel) bool {
	return model.ValidCategory(model.EventCategory(fl.Field().String()))
}
