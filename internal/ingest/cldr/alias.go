// Package cldr parses the CLDR supplemental language alias table and the
// per-locale coverage levels.
package cldr

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/langnav/internal/domain"
	"github.com/heartmarshall/langnav/internal/ingest/tsv"
)

const aliasPath = "supplemental.metadata.alias.languageAlias"

// AliasReason is the CLDR "_reason" attribute.
type AliasReason string

const (
	ReasonOverlong      AliasReason = "overlong"
	ReasonMacrolanguage AliasReason = "macrolanguage"
	ReasonBibliographic AliasReason = "bibliographic"
	ReasonDeprecated    AliasReason = "deprecated"
	ReasonLegacy        AliasReason = "legacy"
)

// Alias maps a CLDR language code to its preferred replacement.
type Alias struct {
	Code        string
	Replacement string
	Reason      AliasReason
}

// ReplacementLanguage returns the language subtag of the replacement,
// e.g. "sr" for "sr_Latn".
func (a Alias) ReplacementLanguage() string {
	return domain.ParseLocaleCode(a.Replacement).Language
}

// ParseAliases reads languageAlias.json. Entries are returned sorted by
// code so callers see a stable order.
func ParseAliases(r io.Reader) ([]Alias, tsv.Stats, error) {
	var stats tsv.Stats

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, stats, fmt.Errorf("read language aliases: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, stats, fmt.Errorf("parse language aliases: %w: invalid JSON", domain.ErrMalformedRow)
	}
	table := gjson.GetBytes(data, aliasPath)
	if !table.IsObject() {
		return nil, stats, fmt.Errorf("parse language aliases: %w: %s is not an object",
			domain.ErrMalformedRow, aliasPath)
	}

	var rows []Alias
	i := 0
	table.ForEach(func(key, value gjson.Result) bool {
		i++
		stats.TotalLines++
		code := strings.TrimSpace(key.String())
		replacement := strings.TrimSpace(value.Get("_replacement").String())
		if code == "" || replacement == "" {
			stats.Skip(i, fmt.Errorf("%w: alias %q has no replacement", domain.ErrMalformedRow, code))
			return true
		}
		rows = append(rows, Alias{
			Code:        domain.ParseLocaleCode(code).String(),
			Replacement: domain.ParseLocaleCode(replacement).String(),
			Reason:      AliasReason(strings.ToLower(value.Get("_reason").String())),
		})
		stats.Parsed++
		return true
	})

	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Code < rows[b].Code })
	return rows, stats, nil
}

// Coverage is the CLDR coverage level of one locale.
type Coverage struct {
	LocaleCode string
	Level      string
}

// ParseCoverage reads coverage.tsv: localeCode, level.
func ParseCoverage(r io.Reader) ([]Coverage, tsv.Stats, error) {
	var rows []Coverage
	stats, err := tsv.Scan(r, 2, func(_ int, cols []string) error {
		if cols[0] == "" || cols[1] == "" {
			return domain.NewRowError(0, "", "locale and level are required")
		}
		rows = append(rows, Coverage{
			LocaleCode: domain.ParseLocaleCode(cols[0]).String(),
			Level:      strings.ToLower(cols[1]),
		})
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("parse cldr coverage: %w", err)
	}
	return rows, stats, nil
}
