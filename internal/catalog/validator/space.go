package validator

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"spacebook/pkg/logger"
	"spacebook/pkg/model"
	"spacebook/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type (
	ValidationError  = validation.FieldError
	ValidationErrors = validation.Errors
)

var translator = validation.Translator{
	Custom:     map[string]string{"clock_time": "%s must be in HH:MM format (00:00-23:59)"},
	Namespaced: true,
}

type SpaceValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewSpaceValidator(log *logger.Logger) *SpaceValidator {
	v := validator.New()

	if err := v.RegisterValidation("clock_time", validateClockTime); err != nil {
		log.Fatal("Failed to register 'clock_time' validator", "error", err)
	}

	log.Debug("Space validator initialized successfully")

	return &SpaceValidator{
		validate: v,
		logger:   log,
	}
}

func validateClockTime(fl validator.FieldLevel) bool {
	return clockRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

// Validate checks struct tags, then the rules tags cannot express:
// every slot ends after it starts and slot ids are unique within the space.
func (v *SpaceValidator) Validate(space *model.Space) error {
	if err := v.validate.Struct(space); err != nil {
		return translator.Translate(err)
	}

	var errs ValidationErrors
	seen := make(map[string]struct{}, len(space.Slots))
	for i, slot := range space.Slots {
		field := fmt.Sprintf("Slots[%d]", i)

		if _, dup := seen[slot.ID]; dup {
			errs = append(errs, ValidationError{
				Field:   field + ".ID",
				Message: fmt.Sprintf("duplicate slot id %q", slot.ID),
			})
		}
		seen[slot.ID] = struct{}{}

		start, _ := time.Parse(model.ClockLayout, slot.StartTime)
		end, _ := time.Parse(model.ClockLayout, slot.EndTime)
		if !end.After(start) {
			errs = append(errs, ValidationError{
				Field:   field + ".EndTime",
				Message: "end_time must be after start_time",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
