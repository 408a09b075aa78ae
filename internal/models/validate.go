package models

import (
	"github.com/go-playground/validator/v10"

	"github.com/s/librekpi/internal/apperrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags of a model.
func Validate(model interface{}) error {
	if err := validate.Struct(model); err != nil {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, err.Error())
	}
	return nil
}
