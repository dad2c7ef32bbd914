// Package iana parses the IANA language subtag registry. Only variant
// stanzas are kept; every other record type is counted and dropped.
package iana

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"

	"github.com/heartmarshall/langnav/internal/domain"
	"github.com/heartmarshall/langnav/internal/ingest/tsv"
)

const (
	stanzaSeparator = "%%"
	maxLineLen      = 256 * 1024
)

// Variant is a registry record of Type: variant.
type Variant struct {
	Subtag       string
	Descriptions []string
	Added        string
	Prefixes     []string
	Comments     string
}

type field struct {
	key, value string
}

// Parse reads the registry. Stanzas are separated by "%%" lines; a line
// starting with whitespace continues the previous field. The leading
// File-Date stanza has no Type and is ignored.
func Parse(r io.Reader) ([]Variant, tsv.Stats, error) {
	var (
		stats  tsv.Stats
		rows   []Variant
		fields []field
		start  int
	)

	flush := func() {
		if len(fields) == 0 {
			return
		}
		v, keep, err := buildVariant(fields, &stats, start)
		fields = fields[:0]
		switch {
		case err != nil:
			stats.Skip(start, err)
		case keep:
			rows = append(rows, v)
			stats.Parsed++
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	for scanner.Scan() {
		stats.TotalLines++
		line := strings.TrimRight(scanner.Text(), "\r")
		if stats.TotalLines == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		switch {
		case strings.TrimSpace(line) == stanzaSeparator:
			flush()
		case strings.TrimSpace(line) == "":
		case line[0] == ' ' || line[0] == '\t':
			if len(fields) == 0 {
				stats.Warn("line %d: continuation without a field", stats.TotalLines)
				continue
			}
			last := &fields[len(fields)-1]
			last.value += " " + strings.TrimSpace(line)
		default:
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				stats.Warn("line %d: expected \"Field: value\"", stats.TotalLines)
				continue
			}
			if len(fields) == 0 {
				start = stats.TotalLines
			}
			fields = append(fields, field{key: strings.TrimSpace(key), value: strings.TrimSpace(value)})
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("parse language subtag registry: %w", err)
	}
	return rows, stats, nil
}

func buildVariant(fields []field, stats *tsv.Stats, line int) (Variant, bool, error) {
	var v Variant
	isVariant := false
	for _, f := range fields {
		switch f.key {
		case "Type":
			isVariant = strings.EqualFold(f.value, "variant")
		case "Subtag":
			v.Subtag = f.value
		case "Description":
			v.Descriptions = append(v.Descriptions, f.value)
		case "Added":
			v.Added = f.value
		case "Prefix":
			v.Prefixes = append(v.Prefixes, domain.ParseLocaleCode(f.value).String())
		case "Comments":
			if v.Comments != "" {
				v.Comments += " "
			}
			v.Comments += f.value
		}
	}
	if !isVariant {
		return Variant{}, false, nil
	}
	if v.Subtag == "" {
		return Variant{}, false, fmt.Errorf("%w: variant without Subtag", domain.ErrMalformedRow)
	}

	if canonical, err := language.ParseVariant(v.Subtag); err == nil {
		v.Subtag = canonical.String()
	} else {
		stats.Warn("line %d: variant subtag %q is not well-formed: %v", line, v.Subtag, err)
		v.Subtag = strings.ToLower(v.Subtag)
	}
	return v, true, nil
}
