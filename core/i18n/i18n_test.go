package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func init() {
	Register("en", map[string]string{
		"test.greeting": "Hello {0}",
		"test.only-en":  "English only",
	})
	Register("fr", map[string]string{
		"test.greeting": "Bonjour {0}",
	})
	RegisterCardinal("en", "test.grades", "{0} grade", "{0} grades")
	RegisterCardinal("fr", "test.grades", "{0} note", "{0} notes")
}

func TestT(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		key    string
		params []string
		want   string
	}{
		{name: "english", locale: "en", key: "test.greeting", params: []string{"Ana"}, want: "Hello Ana"},
		{name: "french", locale: "fr", key: "test.greeting", params: []string{"Ana"}, want: "Bonjour Ana"},
		{name: "region falls back to base", locale: "fr-CA", key: "test.greeting", params: []string{"Ana"}, want: "Bonjour Ana"},
		{name: "missing in french", locale: "fr", key: "test.only-en", want: "English only"},
		{name: "unknown locale", locale: "sw", key: "test.greeting", params: []string{"Ana"}, want: "Hello Ana"},
		{name: "unknown key", locale: "en", key: "test.nope", want: "test.nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, T(Translator(tt.locale), tt.key, tt.params...))
		})
	}
}

func TestC(t *testing.T) {
	assert.Equal(t, "1 grade", C(Translator("en"), "test.grades", 1, 0))
	assert.Equal(t, "3 grades", C(Translator("en"), "test.grades", 3, 0))
	assert.Equal(t, "1 note", C(Translator("fr"), "test.grades", 1, 0))
	assert.Equal(t, "4 notes", C(Translator("fr"), "test.grades", 4, 0))
	assert.Equal(t, "test.none", C(nil, "test.none", 2, 0))
}

func TestParseAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"*", "en"},
		{"fr-FR,fr;q=0.9,en;q=0.8", "fr"},
		{"de-DE, fr;q=0.5", "fr"},
		{"es", "en"},
		{"EN-us", "en"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAcceptLanguage(tt.header), "header %q", tt.header)
	}
	assert.True(t, Supported("fr"))
	assert.False(t, Supported("de"))
}
