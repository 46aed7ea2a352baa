package trend

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/agendai/core"
)

var (
	directionTag  = "direction"
	directionText = "must be one of up, down, stable"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(directionTag, directionValidation)
	core.RegisterCustomTranslation(validate, translator, directionTag, directionText)
}

func directionValidation(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := ParseDirection(str)
	return err == nil
}
