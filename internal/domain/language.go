package domain

// LanguageSourceRecord is a language as one classification source sees it.
// ParentCode is expressed in that source's own code space.
type LanguageSourceRecord struct {
	Code       string
	Name       string
	Scope      LanguageScope
	ParentCode string
}

// Language is the canonical object for one languoid. The same pointer is
// shared by every classification lens; resolved parent/child edges live in
// the graph's per-source lineage tables, not here.
type Language struct {
	Entity

	Endonym    string
	CodeBCP    string
	ISO6392B   string
	Glottocode string

	Source map[LanguageSource]*LanguageSourceRecord

	PopulationCited         *int64
	PopulationFromLocales   int64
	PopulationEstimate      *int64
	PopulationOfDescendants map[LanguageSource]int64

	VitalityISO     string
	VitalityEth2013 string
	VitalityEth2025 string

	PrimaryWritingSystemCode string
	PrimaryWritingSystem     *WritingSystem

	// WritingSystems holds the primary script and every explicit locale script.
	WritingSystems []*WritingSystem

	// Warning is set for codes retired from ISO 639-3.
	Warning          string
	Notes            []string
	CLDRDataProvider *Language
	CLDRCoverage     string

	Locales     []*Locale
	VariantTags []*VariantTag
}

// NewLanguage creates a language with an All-lens record.
func NewLanguage(id, name string, scope LanguageScope) *Language {
	l := &Language{
		Entity: Entity{ID: id, CodeDisplay: id, NameDisplay: name},
		Source: map[LanguageSource]*LanguageSourceRecord{
			SourceAll: {Code: id, Name: name, Scope: scope},
		},
		PopulationOfDescendants: make(map[LanguageSource]int64),
	}
	l.AddName(name)
	return l
}

func (l *Language) ObjectType() ObjectType { return ObjectLanguage }

// Record returns the language as seen by src, or nil when src does not
// classify it.
func (l *Language) Record(src LanguageSource) *LanguageSourceRecord {
	if l.Source == nil {
		return nil
	}
	return l.Source[src]
}

// EnsureRecord returns the record for src, creating an empty one if needed.
func (l *Language) EnsureRecord(src LanguageSource) *LanguageSourceRecord {
	if l.Source == nil {
		l.Source = make(map[LanguageSource]*LanguageSourceRecord)
	}
	rec := l.Source[src]
	if rec == nil {
		rec = &LanguageSourceRecord{}
		l.Source[src] = rec
	}
	return rec
}

// Scope returns the All-lens scope.
func (l *Language) Scope() LanguageScope {
	if rec := l.Record(SourceAll); rec != nil {
		return rec.Scope
	}
	return ""
}

// AddNote appends an annotation unless it is already present.
func (l *Language) AddNote(note string) {
	for _, n := range l.Notes {
		if n == note {
			return
		}
	}
	l.Notes = append(l.Notes, note)
}
