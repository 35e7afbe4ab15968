package helpers

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps go-playground validator with domain rules
type CustomValidator struct {
	validate *validator.Validate
}

// NewCustomValidator creates a new custom validator with domain rules
func NewCustomValidator() *CustomValidator {
	v := validator.New()

	// Register custom validators
	v.RegisterValidation("time_of_day", validateTimeOfDay)
	v.RegisterValidation("iana_timezone", validateIANATimezone)
	v.RegisterValidation("intake_status", validateIntakeStatus)

	return &CustomValidator{validate: v}
}

// Validate validates a struct
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// validateTimeOfDay validates a wall-clock "HH:MM" token
func validateTimeOfDay(fl validator.FieldLevel) bool {
	return timeOfDayRegex.MatchString(fl.Field().String())
}

// validateIANATimezone validates an IANA time zone identifier.
// Zone validity is checked here, at configuration time, so the scheduler
// can treat an unloadable zone as a misconfiguration rather than a
// per-tick failure.
func validateIANATimezone(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// validateIntakeStatus validates the intake status enum
func validateIntakeStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "taken", "skipped":
		return true
	}
	return false
}

// ParseTimeOfDay parses an "HH:MM" token into hour and minute components.
// Returns ok=false for anything that is not a valid 24h wall-clock time.
func ParseTimeOfDay(s string) (hour, minute int, ok bool) {
	if !timeOfDayRegex.MatchString(s) {
		return 0, 0, false
	}
	hour = int(s[0]-'0')*10 + int(s[1]-'0')
	minute = int(s[3]-'0')*10 + int(s[4]-'0')
	return hour, minute, true
}
