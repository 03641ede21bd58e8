package schedule

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

var (
	endAfterStartTag  = "endafterstart"
	endAfterStartText = "end time must be after start time"
)

// RegisterValidators wires the schedule-specific validations onto the app validator.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(sessionStructValidation, NewSession{})
	core.RegisterCustomTranslation(validate, translator, endAfterStartTag, endAfterStartText)
}

// sessionStructValidation does struct level validation on NewSession:
// an explicit end time must be strictly after the start time. A zero or
// negative duration session would be a degenerate interval.
func sessionStructValidation(sl validator.StructLevel) {
	ns, ok := sl.Current().Interface().(NewSession)
	if !ok {
		return
	}
	if ns.EndTime != nil && !ns.EndTime.After(ns.StartTime) {
		sl.ReportError(ns.EndTime, "end_time", "EndTime", endAfterStartTag, "")
	}
}
