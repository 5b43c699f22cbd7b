package service

import (
	"errors"

	"hostel_booking/internal/apperrors"
	"hostel_booking/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// stayError maps date parsing failures onto validation errors.
func stayError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidDate), errors.Is(err, domain.ErrEmptyStay):
		return apperrors.Validation(err.Error())
	default:
		return err
	}
}
