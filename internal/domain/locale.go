package domain

// CensusRecord is one census' evidence about one locale.
type CensusRecord struct {
	Census   *Census
	Estimate int64
	// Percent is Estimate relative to the census' eligible population.
	Percent *float64
}

// Locale is a language+territory(+script+variant) combination.
type Locale struct {
	Entity

	LanguageCode      string
	TerritoryCode     string
	WritingSystemCode string
	VariantCodes      []string
	Provenance        LocaleProvenance

	Language      *Language
	Territory     *Territory
	WritingSystem *WritingSystem
	VariantTags   []*VariantTag
	Keyboards     []*Keyboard

	PopulationSpeaking        int64
	PopulationSpeakingPercent *float64
	PopulationWriting         *int64
	PopulationSource          string
	OfficialStatus            string
	CLDRCoverage              string

	CensusRecords    []CensusRecord
	PopulationCensus *CensusRecord

	// ContainedLocales is set on regional locales only.
	ContainedLocales []*Locale
}

// NewLocale creates a locale from its composite code.
func NewLocale(code string, provenance LocaleProvenance) *Locale {
	lc := ParseLocaleCode(code)
	id := lc.String()
	return &Locale{
		Entity:            Entity{ID: id, CodeDisplay: id},
		LanguageCode:      lc.Language,
		TerritoryCode:     lc.Territory,
		WritingSystemCode: lc.Script,
		VariantCodes:      lc.Variants,
		Provenance:        provenance,
	}
}

func (l *Locale) ObjectType() ObjectType { return ObjectLocale }

// IsRegional reports whether the locale aggregates other locales.
func (l *Locale) IsRegional() bool {
	return l.Provenance == ProvenanceRegional || len(l.ContainedLocales) > 0
}
