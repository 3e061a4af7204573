package timetable

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/phoebuz/core"
)

var (
	dayTag  = "weekday"
	dayText = "invalid day"

	timeSlotTag  = "timeslot"
	timeSlotText = "invalid time slot"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(dayTag, core.OneOfValidation(Days...))
	core.RegisterCustomTranslation(validate, translator, dayTag, dayText)

	_ = validate.RegisterValidation(timeSlotTag, core.OneOfValidation(TimeSlots...))
	core.RegisterCustomTranslation(validate, translator, timeSlotTag, timeSlotText)
}
