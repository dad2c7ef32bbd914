// Package langlist parses the hand-maintained language master list.
// Pure function: reader in, typed rows out. No graph dependencies.
package langlist

import (
	"fmt"
	"io"

	"github.com/heartmarshall/langnav/internal/domain"
	"github.com/heartmarshall/langnav/internal/ingest/tsv"
)

const (
	colCode = iota
	colName
	colEndonym
	colScope
	colParent
	colPopulation
	colWritingSystem
	colVitalityEth2013
	colVitalityEth2025
	colAltNames

	requiredCols = colParent + 1
)

// Row is one language master record.
type Row struct {
	Code                 string
	Name                 string
	Endonym              string
	Scope                domain.LanguageScope
	ParentCode           string
	PopulationCited      *int64
	PrimaryWritingSystem string
	VitalityEth2013      string
	VitalityEth2025      string
	AltNames             []string
}

// Parse reads languages.tsv.
func Parse(r io.Reader) ([]Row, tsv.Stats, error) {
	var rows []Row
	var stats tsv.Stats

	scanStats, err := tsv.Scan(r, requiredCols, func(line int, cols []string) error {
		code := domain.NormalizeCode(cols[colCode])
		if code == "" {
			return domain.NewRowError(colCode, "", "code is required")
		}

		scope, ok := domain.ParseLanguageScope(cols[colScope])
		if !ok && cols[colScope] != "" {
			stats.Warn("line %d: %s has unknown scope %q", line, code, cols[colScope])
		}

		pop, err := tsv.Count(tsv.Col(cols, colPopulation))
		if err != nil {
			return domain.NewRowError(colPopulation, tsv.Col(cols, colPopulation), err.Error())
		}

		rows = append(rows, Row{
			Code:                 code,
			Name:                 cols[colName],
			Endonym:              cols[colEndonym],
			Scope:                scope,
			ParentCode:           domain.NormalizeCode(cols[colParent]),
			PopulationCited:      pop,
			PrimaryWritingSystem: tsv.Col(cols, colWritingSystem),
			VitalityEth2013:      tsv.Col(cols, colVitalityEth2013),
			VitalityEth2025:      tsv.Col(cols, colVitalityEth2025),
			AltNames:             tsv.List(tsv.Col(cols, colAltNames), ","),
		})
		return nil
	})
	if err != nil {
		return nil, scanStats, fmt.Errorf("parse languages: %w", err)
	}

	scanStats.Warnings = append(scanStats.Warnings, stats.Warnings...)
	return rows, scanStats, nil
}
