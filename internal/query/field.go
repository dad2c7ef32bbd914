package query

import (
	"strings"
	"time"

	"github.com/heartmarshall/langnav/internal/domain"
)

// Field names a sortable, displayable attribute.
type Field string

const (
	FieldCode                         Field = "Code"
	FieldName                         Field = "Name"
	FieldEndonym                      Field = "Endonym"
	FieldScope                        Field = "Scope"
	FieldPopulation                   Field = "Population"
	FieldPopulationAttested           Field = "PopulationAttested"
	FieldPopulationOfDescendants      Field = "PopulationOfDescendants"
	FieldPercentOfTerritoryPopulation Field = "PercentOfTerritoryPopulation"
	FieldLiteracy                     Field = "Literacy"
	FieldDate                         Field = "Date"
	FieldCountOfLanguages             Field = "CountOfLanguages"
	FieldCountOfTerritories           Field = "CountOfTerritories"
	FieldVitalityMetascore            Field = "VitalityMetascore"
	FieldVitalityISO                  Field = "VitalityISO"
	FieldVitalityEth2013              Field = "VitalityEth2013"
	FieldVitalityEth2025              Field = "VitalityEth2025"
)

// Fields lists every field in display order.
var Fields = []Field{
	FieldCode, FieldName, FieldEndonym, FieldScope,
	FieldPopulation, FieldPopulationAttested, FieldPopulationOfDescendants,
	FieldPercentOfTerritoryPopulation, FieldLiteracy, FieldDate,
	FieldCountOfLanguages, FieldCountOfTerritories,
	FieldVitalityMetascore, FieldVitalityISO, FieldVitalityEth2013, FieldVitalityEth2025,
}

// ParseField matches a field name case-insensitively.
func ParseField(s string) (Field, bool) {
	for _, f := range Fields {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, true
		}
	}
	return "", false
}

// Ascending reports whether the field sorts A→Z by default. Numeric
// fields sort largest first.
func (f Field) Ascending() bool {
	switch f {
	case FieldCode, FieldName, FieldEndonym, FieldScope:
		return true
	}
	return false
}

// Lineage resolves a language's children in a classification source.
type Lineage interface {
	Children(src domain.LanguageSource, lang *domain.Language) []*domain.Language
}

// SourceContext selects the classification lens fields are read through.
// Lineage may be nil; lens-dependent counts are then undefined.
type SourceContext struct {
	Source  domain.LanguageSource
	Lineage Lineage
}

func (sc SourceContext) source() domain.LanguageSource {
	if sc.Source == "" {
		return domain.SourceAll
	}
	return sc.Source
}

// GetField returns the value of field for obj. Fields that do not apply
// to the object's type are undefined.
func GetField(obj domain.Object, field Field, sc SourceContext) Value {
	switch o := obj.(type) {
	case *domain.Language:
		return languageField(o, field, sc)
	case *domain.Locale:
		return localeField(o, field, sc)
	case *domain.Territory:
		return territoryField(o, field)
	case *domain.WritingSystem:
		return writingSystemField(o, field)
	case *domain.Census:
		return censusField(o, field)
	case *domain.VariantTag:
		return variantTagField(o, field)
	case *domain.Keyboard:
		return keyboardField(o, field)
	}
	return Undefined()
}

func scoreValue(score float64, ok bool) Value {
	if !ok {
		return Undefined()
	}
	return Number(score)
}

func languageField(l *domain.Language, field Field, sc SourceContext) Value {
	src := sc.source()
	rec := l.Record(src)

	switch field {
	case FieldCode:
		if rec != nil && rec.Code != "" {
			return Text(rec.Code)
		}
		return Text(l.ID)
	case FieldName:
		if rec != nil && rec.Name != "" {
			return Text(rec.Name)
		}
		return Text(l.NameDisplay)
	case FieldEndonym:
		return Text(l.Endonym)
	case FieldScope:
		if rec == nil {
			return Undefined()
		}
		return Text(string(rec.Scope))
	case FieldPopulation:
		return IntPtr(l.PopulationEstimate)
	case FieldPopulationAttested:
		if l.PopulationFromLocales == 0 {
			return Undefined()
		}
		return Int(l.PopulationFromLocales)
	case FieldPopulationOfDescendants:
		n, ok := l.PopulationOfDescendants[src]
		if !ok {
			return Undefined()
		}
		return Int(n)
	case FieldCountOfLanguages:
		if sc.Lineage == nil || rec == nil {
			return Undefined()
		}
		return Int(int64(len(sc.Lineage.Children(src, l))))
	case FieldCountOfTerritories:
		return Int(int64(countTerritories(l.Locales)))
	case FieldVitalityMetascore:
		return scoreValue(VitalityMetascore(l))
	case FieldVitalityISO:
		return scoreValue(ISOVitality(l.VitalityISO))
	case FieldVitalityEth2013:
		return scoreValue(Eth2013Vitality(l.VitalityEth2013))
	case FieldVitalityEth2025:
		return scoreValue(Eth2025Vitality(l.VitalityEth2025))
	}
	return Undefined()
}

func localeField(l *domain.Locale, field Field, sc SourceContext) Value {
	switch field {
	case FieldCode:
		return Text(l.ID)
	case FieldName:
		return Text(l.NameDisplay)
	case FieldEndonym:
		if l.Language != nil {
			return Text(l.Language.Endonym)
		}
		return Undefined()
	case FieldPopulation:
		return Int(l.PopulationSpeaking)
	case FieldPopulationAttested:
		if l.PopulationCensus == nil {
			return Undefined()
		}
		return Int(l.PopulationCensus.Estimate)
	case FieldPercentOfTerritoryPopulation:
		return FloatPtr(l.PopulationSpeakingPercent)
	case FieldLiteracy:
		if l.Territory == nil {
			return Undefined()
		}
		return FloatPtr(l.Territory.LiteracyPercent)
	case FieldDate:
		if l.PopulationCensus == nil || l.PopulationCensus.Census.YearCollected == 0 {
			return Undefined()
		}
		return Int(int64(l.PopulationCensus.Census.YearCollected))
	case FieldCountOfTerritories:
		if len(l.ContainedLocales) == 0 {
			return Undefined()
		}
		return Int(int64(countTerritories(l.ContainedLocales)))
	case FieldVitalityMetascore, FieldVitalityISO, FieldVitalityEth2013, FieldVitalityEth2025:
		if l.Language == nil {
			return Undefined()
		}
		return languageField(l.Language, field, sc)
	}
	return Undefined()
}

func territoryField(t *domain.Territory, field Field) Value {
	switch field {
	case FieldCode:
		return Text(t.ID)
	case FieldName:
		return Text(t.NameDisplay)
	case FieldScope:
		return Text(string(t.Scope))
	case FieldPopulation:
		return Int(t.Population)
	case FieldPercentOfTerritoryPopulation:
		if t.Parent == nil || t.Parent.Population <= 0 {
			return Undefined()
		}
		return Number(float64(t.Population) / float64(t.Parent.Population) * 100)
	case FieldLiteracy:
		return FloatPtr(t.LiteracyPercent)
	case FieldDate:
		var latest int
		for _, c := range t.Censuses {
			latest = max(latest, c.YearCollected)
		}
		if latest == 0 {
			return Undefined()
		}
		return Int(int64(latest))
	case FieldCountOfLanguages:
		langs := make(map[*domain.Language]bool)
		for _, loc := range t.Locales {
			if loc.Language != nil {
				langs[loc.Language] = true
			}
		}
		return Int(int64(len(langs)))
	case FieldCountOfTerritories:
		if t.Scope.IsGroup() {
			return Int(int64(len(t.Children)))
		}
		return Int(int64(len(t.Dependencies)))
	}
	return Undefined()
}

func writingSystemField(w *domain.WritingSystem, field Field) Value {
	switch field {
	case FieldCode:
		return Text(w.ID)
	case FieldName:
		return Text(w.NameDisplay)
	case FieldPopulation:
		return Int(w.PopulationUpperBound)
	case FieldPopulationOfDescendants:
		return Int(w.PopulationOfDescendants)
	case FieldCountOfLanguages:
		return Int(int64(len(w.Languages)))
	case FieldCountOfTerritories:
		return Int(int64(countTerritories(w.Locales)))
	}
	return Undefined()
}

func censusField(c *domain.Census, field Field) Value {
	switch field {
	case FieldCode:
		return Text(c.ID)
	case FieldName:
		return Text(c.NameDisplay)
	case FieldPopulation:
		if c.EligiblePopulation <= 0 {
			return Undefined()
		}
		return Int(c.EligiblePopulation)
	case FieldDate:
		if c.YearCollected == 0 {
			return Undefined()
		}
		return Int(int64(c.YearCollected))
	case FieldCountOfLanguages:
		return Int(int64(len(c.LanguageEstimates)))
	case FieldCountOfTerritories:
		if c.Territory == nil {
			return Undefined()
		}
		return Int(1)
	}
	return Undefined()
}

func variantTagField(v *domain.VariantTag, field Field) Value {
	switch field {
	case FieldCode:
		return Text(v.ID)
	case FieldName:
		return Text(v.NameDisplay)
	case FieldDate:
		added, err := time.Parse(time.DateOnly, v.Added)
		if err != nil {
			return Undefined()
		}
		return Int(int64(added.Year()))
	case FieldCountOfLanguages:
		return Int(int64(len(v.Languages)))
	}
	return Undefined()
}

func keyboardField(k *domain.Keyboard, field Field) Value {
	switch field {
	case FieldCode:
		return Text(k.ID)
	case FieldName:
		return Text(k.NameDisplay)
	case FieldPopulation:
		if k.Locale == nil {
			return Undefined()
		}
		return Int(k.Locale.PopulationSpeaking)
	}
	return Undefined()
}

// countTerritories counts the distinct territories of non-regional locales.
func countTerritories(locales []*domain.Locale) int {
	seen := make(map[*domain.Territory]bool)
	for _, loc := range locales {
		if loc.Territory != nil && !loc.IsRegional() {
			seen[loc.Territory] = true
		}
	}
	return len(seen)
}
