package schedule

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/agendai/core"
)

var (
	clockTag  = "clock"
	clockText = "invalid time, expected HH:MM"

	windowOrderTag  = "window_order"
	windowOrderText = errWindowOrder.Error()
)

// WindowInput is the boundary form of a Window.
type WindowInput struct {
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time" validate:"required,clock"`
}

// Window must only be called on validated input.
func (in WindowInput) Window() Window {
	w, err := NewWindow(in.StartTime, in.EndTime)
	if err != nil {
		panic(err)
	}
	return w
}

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(clockTag, clockValidation)
	core.RegisterCustomTranslation(validate, translator, clockTag, clockText)

	validate.RegisterStructValidation(windowStructValidation, WindowInput{})
	core.RegisterCustomTranslation(validate, translator, windowOrderTag, windowOrderText)
}

func clockValidation(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := ParseClock(str)
	return err == nil
}

// windowStructValidation checks that a window ends after it starts.
func windowStructValidation(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(WindowInput)
	if !ok {
		return
	}
	start, err := ParseClock(in.StartTime)
	if err != nil {
		return // reported by `clock`
	}
	end, err := ParseClock(in.EndTime)
	if err != nil {
		return
	}
	if end <= start {
		sl.ReportError(in.EndTime, "end_time", "EndTime", windowOrderTag, "")
	}
}
