package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"groupcal/pkg/interval"
	"groupcal/pkg/logger"
	"groupcal/pkg/model"
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
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type GroupEventValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewGroupEventValidator(log *logger.Logger) *GroupEventValidator {
	v := validator.New()

	if err := v.RegisterValidation("event_date", validateEventDate); err != nil {
		log.Fatal("Failed to register 'event_date' validator", "error", err)
	}
	if err := v.RegisterValidation("clock_time", validateClockTime); err != nil {
		log.Fatal("Failed to register 'clock_time' validator", "error", err)
	}

	log.Info("Group event validator initialized successfully")

	return &GroupEventValidator{
		validate: v,
		logger:   log,
	}
}

func (gv *GroupEventValidator) Validate(ge *model.GroupEvent) error {
	if err := gv.validate.Struct(ge); err != nil {
		return translate(err)
	}
	return nil
}

// ValidateRecommendation checks the free-slot search inputs: a well-formed
// period with start <= end and a positive duration that fits the day window.
func (gv *GroupEventValidator) ValidateRecommendation(period model.Period, durationMin int, window interval.Interval) error {
	var errs ValidationErrors

	start, err := interval.ParseDate(period.Start)
	if err != nil {
		errs = append(errs, ValidationError{Field: "period_start", Message: "must be a YYYY-MM-DD date"})
	}
	end, err := interval.ParseDate(period.End)
	if err != nil {
		errs = append(errs, ValidationError{Field: "period_end", Message: "must be a YYYY-MM-DD date"})
	}
	if len(errs) == 0 && start.After(end) {
		errs = append(errs, ValidationError{Field: "period_start", Message: "must not be after period_end"})
	}

	if durationMin <= 0 {
		errs = append(errs, ValidationError{Field: "duration_min", Message: "must be positive"})
	} else if durationMin > window.Length() {
		errs = append(errs, ValidationError{
			Field:   "duration_min",
			Message: fmt.Sprintf("must not exceed the %d-minute search window", window.Length()),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateBooking checks the slot commit inputs: a well-formed date and a
// half-open clock range within one day.
func (gv *GroupEventValidator) ValidateBooking(date, startTime, endTime string) error {
	var errs ValidationErrors

	if _, err := interval.ParseDate(date); err != nil {
		errs = append(errs, ValidationError{Field: "date", Message: "must be a YYYY-MM-DD date"})
	}

	start, startErr := interval.ParseClock(startTime)
	if startErr != nil {
		errs = append(errs, ValidationError{Field: "start_time", Message: "must be an HH:MM clock time"})
	}
	end, endErr := interval.ParseClock(endTime)
	if endErr != nil {
		errs = append(errs, ValidationError{Field: "end_time", Message: "must be an HH:MM clock time (24:00 allowed)"})
	}
	if startErr == nil && endErr == nil && start >= end {
		errs = append(errs, ValidationError{Field: "start_time", Message: "must be before end_time"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateEventDate(fl validator.FieldLevel) bool {
	_, err := interval.ParseDate(fl.Field().String())
	return err == nil
}

func validateClockTime(fl validator.FieldLevel) bool {
	_, err := interval.ParseClock(fl.Field().String())
	return err == nil
}

func translate(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var errs ValidationErrors
	for _, fe := range validationErrs {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed %q constraint", fe.Tag()),
		})
	}
	return errs
}
