// Package i18n holds the label catalogs used by the calculators. Catalogs are
// registered from package init funcs and are read-only afterwards.
package i18n

import (
	"fmt"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
)

const DefaultLocale = "en"

var uni = ut.New(en.New(), en.New(), fr.New())

// Translator returns the translator for locale, falling back to English.
func Translator(locale string) ut.Translator {
	trans, _ := uni.FindTranslator(candidates(locale)...)
	return trans
}

// Default returns the English translator.
func Default() ut.Translator {
	return Translator(DefaultLocale)
}

// Supported reports whether locale has a translator of its own.
func Supported(locale string) bool {
	_, found := uni.FindTranslator(candidates(locale)...)
	return found
}

// Register adds texts to locale's catalog. It panics on malformed texts and
// is meant to be called from init funcs.
func Register(locale string, texts map[string]string) {
	trans := mustTranslator(locale)
	for key, text := range texts {
		if err := trans.Add(key, text, false); err != nil {
			panic(fmt.Sprintf("i18n: registering %s/%s: %v", locale, key, err))
		}
	}
}

// RegisterCardinal adds a pluralized text to locale's catalog. Both forms must contain "{0}".
func RegisterCardinal(locale, key, one, other string) {
	trans := mustTranslator(locale)
	for rule, text := range map[locales.PluralRule]string{locales.PluralRuleOne: one, locales.PluralRuleOther: other} {
		if err := trans.AddCardinal(key, text, rule, false); err != nil {
			panic(fmt.Sprintf("i18n: registering %s/%s: %v", locale, key, err))
		}
	}
}

// T translates key with trans, falling back to English and then to the key itself.
func T(trans ut.Translator, key string, params ...string) string {
	if trans == nil {
		trans = Default()
	}
	if s, err := trans.T(key, params...); err == nil {
		return s
	}
	if trans.Locale() != DefaultLocale {
		return T(Default(), key, params...)
	}
	return key
}

// C translates the pluralized key for num, formatted with `digits` decimals.
func C(trans ut.Translator, key string, num float64, digits uint64) string {
	if trans == nil {
		trans = Default()
	}
	if s, err := trans.C(key, num, digits, trans.FmtNumber(num, digits)); err == nil {
		return s
	}
	if trans.Locale() != DefaultLocale {
		return C(Default(), key, num, digits)
	}
	return key
}

// ParseAcceptLanguage returns the first supported locale named in an
// Accept-Language header, or DefaultLocale.
func ParseAcceptLanguage(header string) string {
	var tags []string
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" || tag == "*" {
			continue
		}
		tags = append(tags, candidates(tag)...)
	}
	if trans, found := uni.FindTranslator(tags...); found {
		return trans.Locale()
	}
	return DefaultLocale
}

// candidates expands "fr-CA" into ["fr_ca", "fr"].
func candidates(locale string) []string {
	locale = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "-", "_"))
	if locale == "" {
		return nil
	}
	if i := strings.IndexByte(locale, '_'); i > 0 {
		return []string{locale, locale[:i]}
	}
	return []string{locale}
}

func mustTranslator(locale string) ut.Translator {
	trans, found := uni.GetTranslator(locale)
	if !found {
		panic("i18n: unsupported locale " + locale)
	}
	return trans
}
