// Package tsv reads the positional tab-separated files shared by most
// sources. Column order is load-bearing: there is no header-name binding.
package tsv

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/heartmarshall/langnav/internal/domain"
)

const maxLineLen = 1024 * 1024

// SkippedRow records an input row that was not turned into a record.
type SkippedRow struct {
	Line   int
	Reason string
}

// Stats holds parser statistics for logging and diagnostics.
type Stats struct {
	TotalLines int
	Parsed     int
	Skipped    []SkippedRow
	// Warnings are data-quality notes about rows that were still accepted.
	Warnings []string
}

// Skip records a rejected row.
func (s *Stats) Skip(line int, err error) {
	s.Skipped = append(s.Skipped, SkippedRow{Line: line, Reason: err.Error()})
}

// Warn records a data-quality note.
func (s *Stats) Warn(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

// Scan reads r line by line and calls fn for each data row. The first
// non-blank line is a header and is skipped; blank lines and lines starting
// with '#' are ignored. A row with fewer than minCols columns, or for which
// fn returns an error, is recorded in Stats.Skipped.
func Scan(r io.Reader, minCols int, fn func(line int, cols []string) error) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)

	headerSeen := false
	for scanner.Scan() {
		stats.TotalLines++
		line := strings.TrimRight(scanner.Text(), "\r")
		if stats.TotalLines == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}

		cols := Split(line)
		if len(cols) < minCols {
			stats.Skip(stats.TotalLines, fmt.Errorf("%w: %d columns, want at least %d",
				domain.ErrMalformedRow, len(cols), minCols))
			continue
		}
		if err := fn(stats.TotalLines, cols); err != nil {
			stats.Skip(stats.TotalLines, err)
			continue
		}
		stats.Parsed++
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scanner error: %w", err)
	}
	return stats, nil
}

// Split splits a line on tabs and trims each column.
func Split(line string) []string {
	cols := strings.Split(line, "\t")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	return cols
}

// Col returns column i, or "" when the row is shorter.
func Col(cols []string, i int) string {
	if i < len(cols) {
		return cols[i]
	}
	return ""
}

// Count parses a population-style integer. Thousands separators are
// accepted. An empty cell is unset (nil), never zero.
func Count(s string) (*int64, error) {
	s = cleanNumber(s)
	if s == "" {
		return nil, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("invalid count %q", s)
	}
	n := int64(math.Round(f))
	return &n, nil
}

// Float parses a decimal number; a trailing '%' is ignored. An empty cell
// is unset (nil).
func Float(s string) (*float64, error) {
	s = strings.TrimSuffix(cleanNumber(s), "%")
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return &f, nil
}

// List splits a sep-separated cell, trimming items and dropping empty ones.
func List(s, sep string) []string {
	var out []string
	for _, item := range strings.Split(s, sep) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	return strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
}
