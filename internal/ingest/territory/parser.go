// Package territory parses the territory table and the per-territory
// statistics supplement.
package territory

import (
	"fmt"
	"io"
	"strings"

	"github.com/heartmarshall/langnav/internal/domain"
	"github.com/heartmarshall/langnav/internal/ingest/tsv"
)

// Row is one line of territories.tsv.
type Row struct {
	Code          string
	Name          string
	Scope         domain.TerritoryScope
	ContainedIn   string
	SovereignCode string
	Population    *int64
}

// Parse reads territories.tsv:
// code, name, scope, containedIn, sovereign, population.
func Parse(r io.Reader) ([]Row, tsv.Stats, error) {
	var rows []Row
	stats, err := tsv.Scan(r, 3, func(_ int, cols []string) error {
		if cols[0] == "" {
			return domain.NewRowError(0, "", "code is required")
		}
		scope, ok := domain.ParseTerritoryScope(cols[2])
		if !ok {
			return domain.NewRowError(2, cols[2], "unknown territory scope")
		}
		pop, err := tsv.Count(tsv.Col(cols, 5))
		if err != nil {
			return domain.NewRowError(5, tsv.Col(cols, 5), err.Error())
		}
		rows = append(rows, Row{
			Code:          strings.ToUpper(cols[0]),
			Name:          cols[1],
			Scope:         scope,
			ContainedIn:   strings.ToUpper(tsv.Col(cols, 3)),
			SovereignCode: strings.ToUpper(tsv.Col(cols, 4)),
			Population:    pop,
		})
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("parse territories: %w", err)
	}
	return rows, stats, nil
}

// Stat holds optional economic and literacy figures for a territory.
type Stat struct {
	Code            string
	GDP             *float64
	LiteracyPercent *float64
}

// ParseStats reads territory_stats.tsv: code, gdp, literacyPercent.
// A literacy value outside [0, 100] rejects the row.
func ParseStats(r io.Reader) ([]Stat, tsv.Stats, error) {
	var rows []Stat
	stats, err := tsv.Scan(r, 2, func(_ int, cols []string) error {
		if cols[0] == "" {
			return domain.NewRowError(0, "", "code is required")
		}
		gdp, err := tsv.Float(cols[1])
		if err != nil {
			return domain.NewRowError(1, cols[1], err.Error())
		}
		lit, err := tsv.Float(tsv.Col(cols, 2))
		if err != nil {
			return domain.NewRowError(2, tsv.Col(cols, 2), err.Error())
		}
		if lit != nil && (*lit < 0 || *lit > 100) {
			return domain.NewRowError(2, tsv.Col(cols, 2), "literacy must be a percentage")
		}
		rows = append(rows, Stat{Code: strings.ToUpper(cols[0]), GDP: gdp, LiteracyPercent: lit})
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("parse territory stats: %w", err)
	}
	return rows, stats, nil
}
