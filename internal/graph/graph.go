// Package graph fuses the parsed sources into one cross-referenced
// knowledge graph and derives its statistics.
//
// Build runs canonicalization once, then the refresh pipeline (link,
// territory rollup, census selection, regional locale synthesis, derived
// populations, regional recompute). Enrich adds the supplemental sources
// and re-runs the refresh pipeline. Neither is safe for concurrent use;
// once loading is finished the graph is read-only.
package graph

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/heartmarshall/langnav/internal/diag"
	"github.com/heartmarshall/langnav/internal/domain"
	"github.com/heartmarshall/langnav/internal/ingest/cldr"
	"github.com/heartmarshall/langnav/internal/ingest/glottolog"
	"github.com/heartmarshall/langnav/internal/ingest/iana"
	"github.com/heartmarshall/langnav/internal/ingest/iso"
	"github.com/heartmarshall/langnav/internal/ingest/langlist"
	"github.com/heartmarshall/langnav/internal/ingest/locale"
	"github.com/heartmarshall/langnav/internal/ingest/script"
	"github.com/heartmarshall/langnav/internal/ingest/territory"
)

// DefaultRegionalMinSpeakers is the largest total at which a synthesized
// regional locale is still dropped.
const DefaultRegionalMinSpeakers = 10

// Options tunes the derivation heuristics.
type Options struct {
	// RegionalMinSpeakers: synthesized regional locales totalling this many
	// speakers or fewer are dropped.
	RegionalMinSpeakers int64
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{RegionalMinSpeakers: DefaultRegionalMinSpeakers}
}

// Inputs holds the parsed primary sources. Missing sources are nil.
type Inputs struct {
	Languages      []langlist.Row
	ISOLanguages   []iso.Language
	Macrolanguages []iso.Membership
	Families       []iso.Family
	Retirements    []iso.Retirement
	Glottolog      []glottolog.Languoid
	Variants       []iana.Variant
	Aliases        []cldr.Alias
	Territories    []territory.Row
	Locales        []locale.Row
	WritingSystems []script.Row
}

// Supplement holds the parsed supplemental sources.
type Supplement struct {
	TerritoryStats []territory.Stat
	Censuses       []*domain.Census
	Coverage       []cldr.Coverage
	Keyboards      []locale.Keyboard
}

// Graph is the fused knowledge graph. The dictionaries are keyed by ID and
// must not be modified by callers.
type Graph struct {
	Languages      map[string]*domain.Language
	Locales        map[string]*domain.Locale
	Territories    map[string]*domain.Territory
	WritingSystems map[string]*domain.WritingSystem
	Censuses       map[string]*domain.Census
	VariantTags    map[string]*domain.VariantTag
	Keyboards      map[string]*domain.Keyboard

	// Code spaces. bcp holds ISO 639-1/639-3 codes plus retirement
	// redirects; the others follow domain.LanguageSource.
	indexes map[domain.LanguageSource]*Index
	bcp     *Index
	lineage map[domain.LanguageSource]*Lineage

	censusOrder []string

	opts     Options
	log      *slog.Logger
	sink     diag.Sink
	reported map[diag.Diagnostic]bool
}

// New creates an empty graph. sink may be nil.
func New(log *slog.Logger, sink diag.Sink, opts Options) *Graph {
	if log == nil {
		log = slog.Default()
	}
	if sink == nil {
		sink = diag.Discard
	}
	if opts.RegionalMinSpeakers < 0 {
		opts.RegionalMinSpeakers = 0
	}
	g := &Graph{
		Languages:      make(map[string]*domain.Language),
		Locales:        make(map[string]*domain.Locale),
		Territories:    make(map[string]*domain.Territory),
		WritingSystems: make(map[string]*domain.WritingSystem),
		Censuses:       make(map[string]*domain.Census),
		VariantTags:    make(map[string]*domain.VariantTag),
		Keyboards:      make(map[string]*domain.Keyboard),
		indexes:        make(map[domain.LanguageSource]*Index),
		bcp:            NewIndex(),
		lineage:        make(map[domain.LanguageSource]*Lineage),
		opts:           opts,
		log:            log,
		sink:           sink,
		reported:       make(map[diag.Diagnostic]bool),
	}
	for _, src := range domain.LanguageSources {
		g.indexes[src] = NewIndex()
		g.lineage[src] = NewLineage()
	}
	return g
}

// Build canonicalizes the primary sources and derives every statistic.
func (g *Graph) Build(in Inputs) {
	g.canonicalize(in)
	g.refresh()
}

// Enrich merges the supplemental sources and re-derives every statistic.
func (g *Graph) Enrich(sup Supplement) {
	g.applySupplement(sup)
	g.refresh()
}

func (g *Graph) refresh() {
	g.link()
	g.rollupTerritories()
	g.selectCensusEstimates()
	g.synthesizeRegionalLocales()
	g.deriveLocalePopulations()
	g.deriveLanguagePopulations()
	g.deriveDescendantPopulations()
	g.deriveWritingSystemPopulations()
	g.recomputeRegionalLocales()
}

// Index returns the code index of src.
func (g *Graph) Index(src domain.LanguageSource) *Index {
	return g.indexes[src]
}

// Lineage returns the edge table of src.
func (g *Graph) Lineage(src domain.LanguageSource) *Lineage {
	return g.lineage[src]
}

// LookupLanguage resolves code in the code space of src.
func (g *Graph) LookupLanguage(src domain.LanguageSource, code string) (*domain.Language, bool) {
	x := g.indexes[src]
	if x == nil {
		return nil, false
	}
	id, ok := x.Lookup(code)
	if !ok {
		return nil, false
	}
	lang, ok := g.Languages[id]
	return lang, ok
}

// ResolveLanguage resolves a language subtag the way locale codes use it:
// CLDR first, then BCP 47 (with retirement redirects), then every other
// code space.
func (g *Graph) ResolveLanguage(code string) (*domain.Language, bool) {
	if code == "" {
		return nil, false
	}
	for _, x := range []*Index{
		g.indexes[domain.SourceCLDR], g.bcp, g.indexes[domain.SourceAll],
		g.indexes[domain.SourceISO], g.indexes[domain.SourceGlottolog],
	} {
		if id, ok := x.Lookup(code); ok {
			if lang, ok := g.Languages[id]; ok {
				return lang, true
			}
		}
	}
	return nil, false
}

// Parent returns the parent of lang in src's classification.
func (g *Graph) Parent(src domain.LanguageSource, lang *domain.Language) *domain.Language {
	if lang == nil {
		return nil
	}
	id, ok := g.lineage[src].Parent(lang.ID)
	if !ok {
		return nil
	}
	return g.Languages[id]
}

// Children returns the children of lang in src's classification.
func (g *Graph) Children(src domain.LanguageSource, lang *domain.Language) []*domain.Language {
	if lang == nil {
		return nil
	}
	ids := g.lineage[src].Children(lang.ID)
	out := make([]*domain.Language, 0, len(ids))
	for _, id := range ids {
		if l := g.Languages[id]; l != nil {
			out = append(out, l)
		}
	}
	return out
}

// CensusesInOrder returns the censuses in load order.
func (g *Graph) CensusesInOrder() []*domain.Census {
	out := make([]*domain.Census, 0, len(g.censusOrder))
	for _, id := range g.censusOrder {
		out = append(out, g.Censuses[id])
	}
	return out
}

// Objects returns every object of type t sorted by ID.
func (g *Graph) Objects(t domain.ObjectType) []domain.Object {
	switch t {
	case domain.ObjectLanguage:
		return objects(g.Languages)
	case domain.ObjectLocale:
		return objects(g.Locales)
	case domain.ObjectTerritory:
		return objects(g.Territories)
	case domain.ObjectWritingSystem:
		return objects(g.WritingSystems)
	case domain.ObjectCensus:
		return objects(g.Censuses)
	case domain.ObjectVariantTag:
		return objects(g.VariantTags)
	case domain.ObjectKeyboard:
		return objects(g.Keyboards)
	}
	return nil
}

// Counts returns the number of objects per type.
func (g *Graph) Counts() map[domain.ObjectType]int {
	return map[domain.ObjectType]int{
		domain.ObjectLanguage:      len(g.Languages),
		domain.ObjectLocale:        len(g.Locales),
		domain.ObjectTerritory:     len(g.Territories),
		domain.ObjectWritingSystem: len(g.WritingSystems),
		domain.ObjectCensus:        len(g.Censuses),
		domain.ObjectVariantTag:    len(g.VariantTags),
		domain.ObjectKeyboard:      len(g.Keyboards),
	}
}

func objects[T domain.Object](m map[string]T) []domain.Object {
	out := make([]domain.Object, 0, len(m))
	for _, id := range sortedKeys(m) {
		out = append(out, m[id])
	}
	return out
}

func sortedKeys[T any](m map[string]T) []string {
	return slices.Sorted(maps.Keys(m))
}

// report sends a diagnostic once per graph; refresh re-runs must not
// repeat what the first pass already said.
func (g *Graph) report(kind diag.Kind, source, code, format string, args ...any) {
	d := diag.Diagnostic{Kind: kind, Source: source, Code: code, Message: fmt.Sprintf(format, args...)}
	if g.reported[d] {
		return
	}
	g.reported[d] = true
	g.sink.Report(d)
}
