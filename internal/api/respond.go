package api

import (
	"errors"  // Error inspection
	"reflect" // Validator hook signature

	"hostel_booking/internal/apperrors"  // Application error type
	"hostel_booking/internal/domain"     // Date parsing
	"hostel_booking/internal/middleware" // Error rendering

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Request binding
	"github.com/go-playground/validator/v10" // Binding validator engine
)

// RegisterValidators adds the isodate rule and JSON field names to gin's binding engine
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(apperrors.FieldName)
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	})
}

// respondError renders err and aborts the request
func respondError(c *gin.Context, err error) {
	middleware.Abort(c, err)
}

// bindError turns a binding failure into a validation error
func bindError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return apperrors.FromValidator(err)
	}
	return apperrors.Validation("Invalid request")
}

// currentUser returns the authenticated user or renders 401
func currentUser(c *gin.Context) (*domain.User, bool) {
	user := middleware.CurrentUser(c)
	if user == nil {
		respondError(c, apperrors.Unauthorized("Unauthorized"))
		return nil, false
	}
	return user, true
}
