package echoapi

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/agendai/core/i18n"
)

const translatorKey = "translator"

// userIDMiddleware rejects non-UUID `:uid` path params.
func userIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if _, err := uuid.Parse(ctx.Param("uid")); err != nil {
			return errHttpNotFound
		}
		return next(ctx)
	}
}

// localeMiddleware picks the labels' translator from Accept-Language, falling back to defaultLocale.
func localeMiddleware(defaultLocale string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			locale := defaultLocale
			if header := ctx.Request().Header.Get("Accept-Language"); header != "" {
				locale = i18n.ParseAcceptLanguage(header)
			}
			ctx.Set(translatorKey, i18n.Translator(locale))
			return next(ctx)
		}
	}
}

func contextTranslator(ctx echo.Context) ut.Translator {
	if trans, ok := ctx.Get(translatorKey).(ut.Translator); ok {
		return trans
	}
	return i18n.Default()
}
