package domain

import "strings"

// LanguageSource identifies one classification lens over the language graph.
type LanguageSource string

const (
	SourceAll       LanguageSource = "All"
	SourceISO       LanguageSource = "ISO"
	SourceUNESCO    LanguageSource = "UNESCO"
	SourceGlottolog LanguageSource = "Glottolog"
	SourceCLDR      LanguageSource = "CLDR"
)

// LanguageSources lists every lens in canonical order.
var LanguageSources = []LanguageSource{SourceAll, SourceISO, SourceUNESCO, SourceGlottolog, SourceCLDR}

func (s LanguageSource) String() string { return string(s) }

func (s LanguageSource) IsValid() bool {
	switch s {
	case SourceAll, SourceISO, SourceUNESCO, SourceGlottolog, SourceCLDR:
		return true
	}
	return false
}

// ParseLanguageSource matches a source name case-insensitively.
func ParseLanguageSource(s string) (LanguageSource, bool) {
	for _, src := range LanguageSources {
		if strings.EqualFold(strings.TrimSpace(s), string(src)) {
			return src, true
		}
	}
	return "", false
}

// LanguageScope is the classification level of a languoid.
type LanguageScope string

const (
	ScopeFamily        LanguageScope = "Family"
	ScopeMacrolanguage LanguageScope = "Macrolanguage"
	ScopeLanguage      LanguageScope = "Language"
	ScopeDialect       LanguageScope = "Dialect"
	ScopeSpecialCode   LanguageScope = "SpecialCode"
)

func (s LanguageScope) String() string { return string(s) }

func (s LanguageScope) IsValid() bool {
	switch s {
	case ScopeFamily, ScopeMacrolanguage, ScopeLanguage, ScopeDialect, ScopeSpecialCode:
		return true
	}
	return false
}

// ParseLanguageScope accepts the scope spellings used across the sources:
// the canonical names, ISO 639-3 scope letters and Glottolog levels.
func ParseLanguageScope(s string) (LanguageScope, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "family", "language family", "collective":
		return ScopeFamily, true
	case "macrolanguage", "m":
		return ScopeMacrolanguage, true
	case "language", "individual language", "individual", "i":
		return ScopeLanguage, true
	case "dialect":
		return ScopeDialect, true
	case "specialcode", "special code", "special", "s":
		return ScopeSpecialCode, true
	}
	return "", false
}

// TerritoryScope is the level of a territory in the containment tree.
type TerritoryScope string

const (
	TerritoryWorld        TerritoryScope = "World"
	TerritoryContinent    TerritoryScope = "Continent"
	TerritoryRegion       TerritoryScope = "Region"
	TerritorySubcontinent TerritoryScope = "Subcontinent"
	TerritoryCountry      TerritoryScope = "Country"
	TerritoryDependency   TerritoryScope = "Dependency"
)

func (s TerritoryScope) String() string { return string(s) }

// IsGroup reports whether the territory only aggregates other territories.
// Group territories never carry primitively measured statistics.
func (s TerritoryScope) IsGroup() bool {
	switch s {
	case TerritoryWorld, TerritoryContinent, TerritoryRegion, TerritorySubcontinent:
		return true
	}
	return false
}

// ParseTerritoryScope matches a territory scope case-insensitively.
func ParseTerritoryScope(s string) (TerritoryScope, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "world":
		return TerritoryWorld, true
	case "continent":
		return TerritoryContinent, true
	case "region":
		return TerritoryRegion, true
	case "subcontinent":
		return TerritorySubcontinent, true
	case "country":
		return TerritoryCountry, true
	case "dependency":
		return TerritoryDependency, true
	}
	return "", false
}

// LocaleProvenance records where a locale came from.
type LocaleProvenance string

const (
	ProvenanceRegularInput LocaleProvenance = "regularInput"
	ProvenanceIANA         LocaleProvenance = "IANA"
	ProvenanceRegional     LocaleProvenance = "regional"
	ProvenanceCensus       LocaleProvenance = "census"
)

func (p LocaleProvenance) String() string { return string(p) }

// CollectorType is the provenance category of a census.
type CollectorType string

const (
	CollectorGovernment CollectorType = "Government"
	CollectorStudy      CollectorType = "Study"
	CollectorCLDR       CollectorType = "CLDR"
)

func (c CollectorType) String() string { return string(c) }

// Rank orders collector types by trustworthiness; lower is better.
// Unknown collectors rank after every known one.
func (c CollectorType) Rank() int {
	switch c {
	case CollectorGovernment:
		return 1
	case CollectorStudy:
		return 2
	case CollectorCLDR:
		return 3
	}
	return 4
}

// ParseCollectorType matches a collector type case-insensitively.
func ParseCollectorType(s string) (CollectorType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "government", "official":
		return CollectorGovernment, true
	case "study":
		return CollectorStudy, true
	case "cldr":
		return CollectorCLDR, true
	}
	return "", false
}

// ObjectType identifies the concrete entity behind an Object.
type ObjectType string

const (
	ObjectLanguage      ObjectType = "Language"
	ObjectLocale        ObjectType = "Locale"
	ObjectTerritory     ObjectType = "Territory"
	ObjectWritingSystem ObjectType = "WritingSystem"
	ObjectCensus        ObjectType = "Census"
	ObjectVariantTag    ObjectType = "VariantTag"
	ObjectKeyboard      ObjectType = "Keyboard"
)

// ObjectTypes lists every entity type.
var ObjectTypes = []ObjectType{
	ObjectLanguage, ObjectLocale, ObjectTerritory, ObjectWritingSystem,
	ObjectCensus, ObjectVariantTag, ObjectKeyboard,
}

func (t ObjectType) String() string { return string(t) }

// ParseObjectType matches an object type case-insensitively.
func ParseObjectType(s string) (ObjectType, bool) {
	for _, t := range ObjectTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}
