// Package locale parses the locale table and the keyboard layout list.
package locale

import (
	"fmt"
	"io"
	"strings"

	"github.com/heartmarshall/langnav/internal/domain"
	"github.com/heartmarshall/langnav/internal/ingest/tsv"
)

// Row is one line of locales.tsv.
type Row struct {
	Code               domain.LocaleCode
	Name               string
	PopulationSpeaking *int64
	OfficialStatus     string
	PopulationSource   string
}

// Parse reads locales.tsv:
// code, name, populationSpeaking, officialStatus, populationSource.
func Parse(r io.Reader) ([]Row, tsv.Stats, error) {
	var rows []Row
	stats, err := tsv.Scan(r, 1, func(_ int, cols []string) error {
		code := domain.ParseLocaleCode(cols[0])
		if code.Language == "" {
			return domain.NewRowError(0, cols[0], "locale code has no language")
		}
		pop, err := tsv.Count(tsv.Col(cols, 2))
		if err != nil {
			return domain.NewRowError(2, tsv.Col(cols, 2), err.Error())
		}
		rows = append(rows, Row{
			Code:               code,
			Name:               tsv.Col(cols, 1),
			PopulationSpeaking: pop,
			OfficialStatus:     strings.ToLower(tsv.Col(cols, 3)),
			PopulationSource:   tsv.Col(cols, 4),
		})
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("parse locales: %w", err)
	}
	return rows, stats, nil
}

// Keyboard is one line of keyboards.tsv.
type Keyboard struct {
	ID         string
	Name       string
	LocaleCode string
	Platform   string
}

// ParseKeyboards reads keyboards.tsv: id, name, localeCode, platform.
func ParseKeyboards(r io.Reader) ([]Keyboard, tsv.Stats, error) {
	var rows []Keyboard
	stats, err := tsv.Scan(r, 3, func(_ int, cols []string) error {
		if cols[0] == "" {
			return domain.NewRowError(0, "", "id is required")
		}
		lc := domain.ParseLocaleCode(cols[2])
		if lc.Language == "" {
			return domain.NewRowError(2, cols[2], "locale code has no language")
		}
		rows = append(rows, Keyboard{
			ID:         cols[0],
			Name:       cols[1],
			LocaleCode: lc.String(),
			Platform:   tsv.Col(cols, 3),
		})
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("parse keyboards: %w", err)
	}
	return rows, stats, nil
}
