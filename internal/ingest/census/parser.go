// Package census parses census tables. One file may describe several
// censuses side by side: metadata rows start with '#' and carry a default
// followed by one value per census; data rows carry one estimate per census.
//
//	#censusID	-	be2001	be2011
//	#territoryID	BE
//	#yearCollected		2001	2011
//	languageCode	name	2001	2011
//	sjn	Sindarin	9000	9300
package census

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/heartmarshall/langnav/internal/domain"
	"github.com/heartmarshall/langnav/internal/ingest/tsv"
)

const maxLineLen = 1024 * 1024

// Metadata keys recognised in '#' rows.
const (
	KeyCensusID           = "censusID"
	KeyNameDisplay        = "nameDisplay"
	KeyTerritoryID        = "territoryID"
	KeyYearCollected      = "yearCollected"
	KeyCollectorType      = "collectorType"
	KeyCollectorName      = "collectorName"
	KeyEligiblePopulation = "eligiblePopulation"
	KeyURL                = "url"
	KeyNotes              = "notes"
)

type metaRow struct {
	line   int
	def    string
	values []string
}

func (m metaRow) value(i int) string {
	if i < len(m.values) && m.values[i] != "" {
		return m.values[i]
	}
	return m.def
}

// Parse reads one census file. name is the file name; its base without
// extension prefixes the generated IDs of censuses that do not declare one.
func Parse(name string, r io.Reader) ([]*domain.Census, tsv.Stats, error) {
	var stats tsv.Stats

	meta := make(map[string]metaRow)
	type dataRow struct {
		line      int
		code      string
		estimates []string
	}
	var data []dataRow
	width := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	headerSeen := false
	for scanner.Scan() {
		stats.TotalLines++
		line := strings.TrimRight(scanner.Text(), "\r")
		if stats.TotalLines == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := tsv.Split(line)
		if strings.HasPrefix(cols[0], "#") {
			key := strings.TrimPrefix(cols[0], "#")
			if key == "" {
				continue
			}
			m := metaRow{line: stats.TotalLines, def: tsv.Col(cols, 1)}
			if len(cols) > 2 {
				m.values = cols[2:]
			}
			if _, dup := meta[key]; dup {
				stats.Warn("line %d: duplicate metadata key %q", stats.TotalLines, key)
			}
			meta[key] = m
			width = max(width, len(m.values))
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}

		code := domain.ParseLocaleCode(cols[0]).String()
		if code == "" {
			stats.Skip(stats.TotalLines, domain.NewRowError(0, "", "language code is required"))
			continue
		}
		var estimates []string
		if len(cols) > 2 {
			estimates = cols[2:]
		}
		data = append(data, dataRow{line: stats.TotalLines, code: code, estimates: estimates})
		width = max(width, len(estimates))
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("parse census %s: %w", name, err)
	}
	if width == 0 && len(data) > 0 {
		width = 1
	}

	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	censuses := make([]*domain.Census, width)
	for i := range censuses {
		censuses[i] = buildCensus(base, i, meta, &stats)
	}

	for _, row := range data {
		accepted := false
		for i, c := range censuses {
			if i >= len(row.estimates) || row.estimates[i] == "" {
				continue
			}
			n, err := tsv.Count(row.estimates[i])
			if err != nil || n == nil {
				stats.Warn("line %d: %s: census %s: %v", row.line, row.code, c.ID, err)
				continue
			}
			c.LanguageEstimates[row.code] = *n
			accepted = true
		}
		if !accepted {
			stats.Skip(row.line, fmt.Errorf("%w: %s has no usable estimate", domain.ErrMalformedRow, row.code))
			continue
		}
		stats.Parsed++
	}
	return censuses, stats, nil
}

func buildCensus(base string, i int, meta map[string]metaRow, stats *tsv.Stats) *domain.Census {
	get := func(key string) string { return meta[key].value(i) }

	id := get(KeyCensusID)
	if id == "" || id == "-" {
		id = fmt.Sprintf("%s#%d", base, i+1)
	}
	c := &domain.Census{
		Entity:            domain.Entity{ID: id, CodeDisplay: id, NameDisplay: get(KeyNameDisplay)},
		TerritoryCode:     strings.ToUpper(get(KeyTerritoryID)),
		CollectorName:     get(KeyCollectorName),
		URL:               get(KeyURL),
		Notes:             get(KeyNotes),
		LanguageEstimates: make(map[string]int64),
	}
	if c.NameDisplay == "" {
		c.NameDisplay = id
	}
	c.Names = domain.AddName(c.Names, c.NameDisplay)

	if c.TerritoryCode == "" {
		stats.Warn("census %s: missing %s", id, KeyTerritoryID)
	}
	if year := get(KeyYearCollected); year == "" {
		stats.Warn("census %s: missing %s", id, KeyYearCollected)
	} else if y, err := strconv.Atoi(year); err != nil {
		stats.Warn("census %s: invalid %s %q", id, KeyYearCollected, year)
	} else {
		c.YearCollected = y
	}
	if ct := get(KeyCollectorType); ct != "" {
		if t, ok := domain.ParseCollectorType(ct); ok {
			c.CollectorType = t
		} else {
			stats.Warn("census %s: unknown %s %q", id, KeyCollectorType, ct)
		}
	}
	if ep := get(KeyEligiblePopulation); ep != "" {
		if n, err := tsv.Count(ep); err != nil {
			stats.Warn("census %s: %v", id, err)
		} else if n != nil {
			c.EligiblePopulation = *n
		}
	}
	return c
}
