// Package glottolog parses the Glottolog languoid table.
package glottolog

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/heartmarshall/langnav/internal/domain"
	"github.com/heartmarshall/langnav/internal/ingest/tsv"
)

// Glottocodes are four lowercase alphanumerics followed by four digits.
var glottocodePattern = regexp.MustCompile(`^[a-z0-9]{4}[0-9]{4}$`)

// Languoid is one row of the Glottolog table.
type Languoid struct {
	Glottocode       string
	ISO              string
	Name             string
	Scope            domain.LanguageScope
	ParentGlottocode string
}

// Parse reads glottolog.tsv: glottocode, iso, name, level, parentGlottocode.
func Parse(r io.Reader) ([]Languoid, tsv.Stats, error) {
	var rows []Languoid
	var notes tsv.Stats
	stats, err := tsv.Scan(r, 4, func(line int, cols []string) error {
		code := strings.ToLower(cols[0])
		if !glottocodePattern.MatchString(code) {
			return domain.NewRowError(0, cols[0], "invalid glottocode")
		}
		scope, ok := domain.ParseLanguageScope(cols[3])
		if !ok {
			return domain.NewRowError(3, cols[3], "unknown level")
		}
		parent := strings.ToLower(tsv.Col(cols, 4))
		if parent != "" && !glottocodePattern.MatchString(parent) {
			notes.Warn("line %d: ignoring invalid parent glottocode %q", line, parent)
			parent = ""
		}
		rows = append(rows, Languoid{
			Glottocode:       code,
			ISO:              strings.ToLower(cols[1]),
			Name:             cols[2],
			Scope:            scope,
			ParentGlottocode: parent,
		})
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("parse glottolog: %w", err)
	}
	stats.Warnings = append(stats.Warnings, notes.Warnings...)
	return rows, stats, nil
}
