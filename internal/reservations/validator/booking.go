package validator

import (
	"time"

	"spacebook/pkg/logger"
	"spacebook/pkg/model"
	"spacebook/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type (
	ValidationError  = validation.FieldError
	ValidationErrors = validation.Errors
)

var translator = validation.Translator{
	Custom: map[string]string{"calendar_date": "%s must be a calendar date in YYYY-MM-DD format"},
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("calendar_date", validateCalendarDate); err != nil {
		log.Fatal("Failed to register 'calendar_date' validator",
			"error", err,
		)
	}

	log.Debug("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(model.DateLayout, fl.Field().String())
	return err == nil
}

// Validate checks the request shape. Errors name the struct field, so callers can
// tell a bad date (HasField("Date")) from other problems.
func (v *BookingValidator) Validate(req *model.BookRequest) error {
	return translator.Translate(v.validate.Struct(req))
}
