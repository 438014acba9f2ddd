package entities

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"spotbook/internal/parking"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	if err := v.RegisterValidation("booking_date", validateBookingDate); err != nil {
		panic(fmt.Sprintf("failed to register booking_date validator: %v", err))
	}
	return &Validator{validate: v}
}

func validateBookingDate(fl validator.FieldLevel) bool {
	_, err := parking.ParseDate(fl.Field().String())
	return err == nil
}

// Validate checks a request DTO. Failures come back as ValidationErrors.
func (v *Validator) Validate(req any) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var out ValidationErrors
	for _, err := range errs {
		field := err.Field()
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "required_without":
			message = fmt.Sprintf("%s or %s is required", field, err.Param())
		case "min":
			message = fmt.Sprintf("%s must have at least %s entries", field, err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", field, err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", field, err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email", field)
		case "booking_date":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
		}

		out = append(out, ValidationError{Field: field, Message: message})
	}
	return out
}
