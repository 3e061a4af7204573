package homework

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/phoebuz/core"
)

var (
	statusTag  = "hwstatus"
	statusText = "invalid status"

	priorityTag  = "priority"
	priorityText = "invalid priority"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(statusTag, core.OneOfValidation(Statuses...))
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)

	_ = validate.RegisterValidation(priorityTag, core.OneOfValidation(Priorities...))
	core.RegisterCustomTranslation(validate, translator, priorityTag, priorityText)
}
