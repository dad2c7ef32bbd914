package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		names []string
		add   string
		want  []string
	}{
		{name: "append to empty", names: nil, add: "Sindarin", want: []string{"Sindarin"}},
		{name: "keeps order", names: []string{"Sindarin"}, add: "Grey-elven", want: []string{"Sindarin", "Grey-elven"}},
		{name: "case-insensitive duplicate", names: []string{"Sindarin"}, add: "sindarin", want: []string{"Sindarin"}},
		{name: "trims", names: nil, add: "  Quenya ", want: []string{"Quenya"}},
		{name: "empty ignored", names: []string{"Quenya"}, add: "   ", want: []string{"Quenya"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, AddName(tt.names, tt.add))
		})
	}
}

func TestParseLocaleCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want LocaleCode
		str  string
	}{
		{code: "sjn_BE", want: LocaleCode{Language: "sjn", Territory: "BE"}, str: "sjn_BE"},
		{code: "sr-Latn-RS", want: LocaleCode{Language: "sr", Script: "Latn", Territory: "RS"}, str: "sr_Latn_RS"},
		{code: "en_001", want: LocaleCode{Language: "en", Territory: "001"}, str: "en_001"},
		{code: "sl_rozaj", want: LocaleCode{Language: "sl", Variants: []string{"rozaj"}}, str: "sl_rozaj"},
		{code: "ja_latn_hepburn", want: LocaleCode{Language: "ja", Script: "Latn", Variants: []string{"hepburn"}}, str: "ja_Latn_hepburn"},
		{code: "de_CH_1901", want: LocaleCode{Language: "de", Territory: "CH", Variants: []string{"1901"}}, str: "de_CH_1901"},
		{code: "EN", want: LocaleCode{Language: "en"}, str: "en"},
		{code: "", want: LocaleCode{}, str: ""},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			got := ParseLocaleCode(tt.code)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.str, got.String())
		})
	}
}

func TestLocaleCode_HasVariant(t *testing.T) {
	t.Parallel()

	lc := ParseLocaleCode("de_CH_1901")
	assert.True(t, lc.HasVariant("1901"))
	assert.False(t, lc.HasVariant("1996"))
}
