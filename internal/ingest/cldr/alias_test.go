package cldr

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langnav/internal/domain"
)

const aliases = `{
  "supplemental": {
    "version": {"_cldrVersion": "45"},
    "metadata": {
      "alias": {
        "languageAlias": {
          "swc": {"_reason": "legacy", "_replacement": "sw_CD"},
          "arb": {"_reason": "overlong", "_replacement": "ar"},
          "sh": {"_reason": "legacy", "_replacement": "sr-Latn"},
          "cmn": {"_reason": "macrolanguage", "_replacement": "zh"},
          "broken": {"_reason": "deprecated"}
        }
      }
    }
  }
}`

func TestParseAliases(t *testing.T) {
	t.Parallel()

	rows, stats, err := ParseAliases(strings.NewReader(aliases))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Len(t, stats.Skipped, 1)

	codes := make([]string, len(rows))
	for i, r := range rows {
		codes[i] = r.Code
	}
	assert.Equal(t, []string{"arb", "cmn", "sh", "swc"}, codes)

	assert.Equal(t, ReasonOverlong, rows[0].Reason)
	assert.Equal(t, ReasonMacrolanguage, rows[1].Reason)
	assert.Equal(t, "sr_Latn", rows[2].Replacement)
	assert.Equal(t, "sr", rows[2].ReplacementLanguage())
}

func TestParseAliases_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "{nope"},
		{name: "missing table", input: `{"supplemental": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := ParseAliases(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedRow))
		})
	}
}

func TestParseCoverage(t *testing.T) {
	t.Parallel()

	input := "locale\tlevel\n" +
		"en\tModern\n" +
		"sjn-BE\tbasic\n" +
		"qya\t\n"

	rows, stats, err := ParseCoverage(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, stats.Skipped, 1)
	assert.Equal(t, Coverage{LocaleCode: "en", Level: "modern"}, rows[0])
	assert.Equal(t, "sjn_BE", rows[1].LocaleCode)
}
