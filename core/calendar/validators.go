package calendar

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/phoebuz/core"
)

var (
	eventTypeTag  = "eventtype"
	eventTypeText = "invalid event type"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(eventTypeTag, core.OneOfValidation(EventTypes...))
	core.RegisterCustomTranslation(validate, translator, eventTypeTag, eventTypeText)
}
