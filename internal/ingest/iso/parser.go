// Package iso parses the ISO 639-3 code tables, the macrolanguage mapping,
// the ISO 639-5 family list and the ISO 639-3 retirements table.
// Pure functions: reader in, typed rows out. No graph dependencies.
package iso

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/heartmarshall/langnav/internal/domain"
	"github.com/heartmarshall/langnav/internal/ingest/tsv"
)

// LanguageType is the ISO 639-3 Language_Type column.
type LanguageType string

const (
	TypeAncient     LanguageType = "A"
	TypeConstructed LanguageType = "C"
	TypeExtinct     LanguageType = "E"
	TypeHistorical  LanguageType = "H"
	TypeLiving      LanguageType = "L"
	TypeSpecial     LanguageType = "S"
)

// Vitality returns the ISO status name used by the vitality tables.
func (t LanguageType) Vitality() string {
	switch t {
	case TypeAncient:
		return "Ancient"
	case TypeConstructed:
		return "Constructed"
	case TypeExtinct:
		return "Extinct"
	case TypeHistorical:
		return "Historical"
	case TypeLiving:
		return "Living"
	case TypeSpecial:
		return "Special"
	}
	return ""
}

// Language is one row of iso-639-3.tab.
type Language struct {
	ID      string
	Part2B  string
	Part2T  string
	Part1   string
	Scope   domain.LanguageScope
	Type    LanguageType
	RefName string
	Comment string
}

// BCP returns the shortest BCP 47 language subtag for the code.
func (l Language) BCP() string {
	if l.Part1 != "" {
		return l.Part1
	}
	return l.ID
}

// ParseLanguages reads iso-639-3.tab:
// Id, Part2B, Part2T, Part1, Scope, Language_Type, Ref_Name, Comment.
func ParseLanguages(r io.Reader) ([]Language, tsv.Stats, error) {
	var rows []Language
	stats, err := tsv.Scan(r, 7, func(_ int, cols []string) error {
		if cols[0] == "" {
			return domain.NewRowError(0, "", "Id is required")
		}
		scope, ok := domain.ParseLanguageScope(cols[4])
		if !ok {
			return domain.NewRowError(4, cols[4], "unknown scope")
		}
		t := LanguageType(strings.ToUpper(cols[5]))
		if t.Vitality() == "" {
			return domain.NewRowError(5, cols[5], "unknown language type")
		}
		rows = append(rows, Language{
			ID:      strings.ToLower(cols[0]),
			Part2B:  strings.ToLower(cols[1]),
			Part2T:  strings.ToLower(cols[2]),
			Part1:   strings.ToLower(cols[3]),
			Scope:   scope,
			Type:    t,
			RefName: cols[6],
			Comment: tsv.Col(cols, 7),
		})
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("parse iso-639-3: %w", err)
	}
	return rows, stats, nil
}

// Membership is one row of the macrolanguage mapping.
type Membership struct {
	Macrolanguage string
	Individual    string
	Retired       bool
}

// ParseMacrolanguages reads the macrolanguage mapping: M_Id, I_Id, I_Status.
func ParseMacrolanguages(r io.Reader) ([]Membership, tsv.Stats, error) {
	var rows []Membership
	stats, err := tsv.Scan(r, 2, func(_ int, cols []string) error {
		if cols[0] == "" || cols[1] == "" {
			return domain.NewRowError(0, "", "both codes are required")
		}
		rows = append(rows, Membership{
			Macrolanguage: strings.ToLower(cols[0]),
			Individual:    strings.ToLower(cols[1]),
			Retired:       strings.EqualFold(tsv.Col(cols, 2), "R"),
		})
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("parse macrolanguages: %w", err)
	}
	return rows, stats, nil
}

// Family is one row of the ISO 639-5 list.
type Family struct {
	Code       string
	Name       string
	ParentCode string
}

// ParseFamilies reads iso-639-5.tsv: URI, code, label_en, label_fr, hierarchy.
// The hierarchy column lists ancestors root-first ("ine : gem : gmw"); the
// parent is the element before the family's own code.
func ParseFamilies(r io.Reader) ([]Family, tsv.Stats, error) {
	var rows []Family
	var warnings tsv.Stats
	stats, err := tsv.Scan(r, 3, func(line int, cols []string) error {
		code := strings.ToLower(cols[1])
		if code == "" {
			return domain.NewRowError(1, "", "code is required")
		}
		f := Family{Code: code, Name: cols[2]}

		chain := tsv.List(strings.ToLower(tsv.Col(cols, 4)), ":")
		if n := len(chain); n > 0 {
			if chain[n-1] != code {
				warnings.Warn("line %d: hierarchy of %s does not end with its own code", line, code)
				chain = append(chain, code)
				n++
			}
			if n > 1 {
				f.ParentCode = chain[n-2]
			}
		}
		rows = append(rows, f)
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("parse iso-639-5: %w", err)
	}
	stats.Warnings = append(stats.Warnings, warnings.Warnings...)
	return rows, stats, nil
}

// RetirementReason is the Ret_Reason column of the retirements table.
type RetirementReason string

const (
	ReasonChange      RetirementReason = "C"
	ReasonDuplicate   RetirementReason = "D"
	ReasonNonExistent RetirementReason = "N"
	ReasonSplit       RetirementReason = "S"
	ReasonMerge       RetirementReason = "M"
)

func (r RetirementReason) String() string {
	switch r {
	case ReasonChange:
		return "Change"
	case ReasonDuplicate:
		return "Duplicate"
	case ReasonNonExistent:
		return "Non-existent"
	case ReasonSplit:
		return "Split"
	case ReasonMerge:
		return "Merge"
	}
	return string(r)
}

// Retirement is one row of the retirements table.
type Retirement struct {
	ID        string
	RefName   string
	Reason    RetirementReason
	ChangeTo  string
	Remedy    string
	Effective string
}

var splitCodePattern = regexp.MustCompile(`[\[(]([a-z]{3})[\])]`)

// SplitInto extracts the codes a split language was divided into from the
// remedy text, e.g. "split into Nyamwezi [nym] and Sukuma [suk]".
func (r Retirement) SplitInto() []string {
	if r.Reason != ReasonSplit {
		return nil
	}
	var codes []string
	for _, m := range splitCodePattern.FindAllStringSubmatch(r.Remedy, -1) {
		codes = domain.AddName(codes, m[1])
	}
	return codes
}

// ParseRetirements reads the retirements table:
// Id, Ref_Name, Ret_Reason, Change_To, Ret_Remedy, Effective.
func ParseRetirements(r io.Reader) ([]Retirement, tsv.Stats, error) {
	var rows []Retirement
	stats, err := tsv.Scan(r, 3, func(_ int, cols []string) error {
		if cols[0] == "" {
			return domain.NewRowError(0, "", "Id is required")
		}
		reason := RetirementReason(strings.ToUpper(cols[2]))
		switch reason {
		case ReasonChange, ReasonDuplicate, ReasonNonExistent, ReasonSplit, ReasonMerge:
		default:
			return domain.NewRowError(2, cols[2], "unknown retirement reason")
		}
		rows = append(rows, Retirement{
			ID:        strings.ToLower(cols[0]),
			RefName:   cols[1],
			Reason:    reason,
			ChangeTo:  strings.ToLower(tsv.Col(cols, 3)),
			Remedy:    tsv.Col(cols, 4),
			Effective: tsv.Col(cols, 5),
		})
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("parse retirements: %w", err)
	}
	return rows, stats, nil
}
