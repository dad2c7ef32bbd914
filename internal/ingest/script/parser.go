// Package script parses the writing system table.
package script

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"

	"github.com/heartmarshall/langnav/internal/domain"
	"github.com/heartmarshall/langnav/internal/ingest/tsv"
)

// Row is one line of writing_systems.tsv.
type Row struct {
	Code              string
	Name              string
	ParentCode        string
	PrimaryLanguage   string
	TerritoryOfOrigin string
	Sample            string
}

// Parse reads writing_systems.tsv:
// code, name, parent, primaryLanguage, territoryOfOrigin, sample.
// Codes are ISO 15924 and come out in title case.
func Parse(r io.Reader) ([]Row, tsv.Stats, error) {
	var rows []Row
	var notes tsv.Stats
	stats, err := tsv.Scan(r, 2, func(line int, cols []string) error {
		code, known, ok := Canonical(cols[0])
		if !ok {
			return domain.NewRowError(0, cols[0], "script code must be 4 letters")
		}
		if !known {
			notes.Warn("line %d: script %s is not in the ISO 15924 registry", line, code)
		}
		parent := ""
		if p := tsv.Col(cols, 2); p != "" {
			if parent, _, ok = Canonical(p); !ok {
				return domain.NewRowError(2, p, "parent script code must be 4 letters")
			}
		}
		rows = append(rows, Row{
			Code:              code,
			Name:              cols[1],
			ParentCode:        parent,
			PrimaryLanguage:   strings.ToLower(tsv.Col(cols, 3)),
			TerritoryOfOrigin: strings.ToUpper(tsv.Col(cols, 4)),
			Sample:            tsv.Col(cols, 5),
		})
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("parse writing systems: %w", err)
	}
	stats.Warnings = append(stats.Warnings, notes.Warnings...)
	return rows, stats, nil
}

// Canonical returns the title-cased form of a script code. known reports
// whether the code is registered; ok is false when the code is not four
// letters.
func Canonical(code string) (canonical string, known, ok bool) {
	code = strings.TrimSpace(code)
	if len(code) != 4 {
		return "", false, false
	}
	for _, r := range code {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return "", false, false
		}
	}
	if s, err := language.ParseScript(code); err == nil {
		return s.String(), true, true
	}
	return strings.ToUpper(code[:1]) + strings.ToLower(code[1:]), false, true
}
