package graph

import (
	"math"

	"github.com/heartmarshall/langnav/internal/diag"
	"github.com/heartmarshall/langnav/internal/domain"
)

const sourceAggregate = "aggregate"

// walkTerritories visits the containment tree in post-order, roots in ID
// order. Territories caught in a containment cycle are never visited.
func (g *Graph) walkTerritories(fn func(*domain.Territory)) {
	visited := make(map[*domain.Territory]bool, len(g.Territories))
	var visit func(t *domain.Territory)
	visit = func(t *domain.Territory) {
		if visited[t] {
			return
		}
		visited[t] = true
		for _, c := range t.Children {
			visit(c)
		}
		fn(t)
	}
	for _, id := range sortedKeys(g.Territories) {
		if t := g.Territories[id]; t.Parent == nil {
			visit(t)
		}
	}
	if len(visited) < len(g.Territories) {
		for _, id := range sortedKeys(g.Territories) {
			if !visited[g.Territories[id]] {
				g.report(diag.DataQuality, sourceAggregate, id, "territory is part of a containment cycle")
			}
		}
	}
}

// rollupTerritories derives group territory population, GDP and literacy
// from their children.
func (g *Graph) rollupTerritories() {
	g.walkTerritories(func(t *domain.Territory) {
		if !t.Scope.IsGroup() {
			return
		}
		var (
			pop            int64
			gdp            float64
			hasGDP         bool
			literate, base float64
		)
		for _, c := range t.Children {
			pop += c.Population
			if c.GDP != nil {
				gdp += *c.GDP
				hasGDP = true
			}
			if c.LiteracyPercent != nil && c.Population > 0 {
				literate += *c.LiteracyPercent * float64(c.Population)
				base += float64(c.Population)
			}
		}
		t.Population = pop
		t.GDP = nil
		if hasGDP {
			t.GDP = &gdp
		}
		t.LiteracyPercent = nil
		if base > 0 {
			lit := literate / base
			t.LiteracyPercent = &lit
		}
	})
}

// synthesizeRegionalLocales creates or updates one regional locale per
// language found among the direct children of every group territory. Each
// child territory contributes only its largest locale of the language, so
// script locales of the same speakers are not added twice. Synthesized
// locales at or under the speaker threshold are dropped, as are regional
// locales that no longer have members.
func (g *Graph) synthesizeRegionalLocales() {
	keep := make(map[*domain.Locale]bool)
	for _, loc := range g.Locales {
		loc.ContainedLocales = nil
	}

	g.walkTerritories(func(t *domain.Territory) {
		if !t.Scope.IsGroup() {
			return
		}
		members := make(map[*domain.Language][]*domain.Locale)
		var order []*domain.Language
		for _, child := range t.Children {
			largest := make(map[*domain.Language]*domain.Locale)
			var childOrder []*domain.Language
			for _, loc := range child.Locales {
				if loc.Language == nil || len(loc.VariantCodes) > 0 {
					continue
				}
				if loc.IsRegional() && !keep[loc] {
					continue
				}
				cur, ok := largest[loc.Language]
				if !ok {
					childOrder = append(childOrder, loc.Language)
				}
				if !ok || loc.PopulationSpeaking > cur.PopulationSpeaking {
					largest[loc.Language] = loc
				}
			}
			for _, lang := range childOrder {
				if _, seen := members[lang]; !seen {
					order = append(order, lang)
				}
				members[lang] = append(members[lang], largest[lang])
			}
		}

		for _, lang := range order {
			contained := members[lang]
			var total int64
			for _, c := range contained {
				total += c.PopulationSpeaking
			}

			code := domain.LocaleCode{Language: lang.CodeBCP, Territory: t.ID}.String()
			loc := g.Locales[code]
			if loc == nil || loc.Provenance == domain.ProvenanceRegional {
				if total <= g.opts.RegionalMinSpeakers {
					continue
				}
			}
			if loc == nil {
				loc = domain.NewLocale(code, domain.ProvenanceRegional)
				loc.NameDisplay = lang.NameDisplay + " (" + t.NameDisplay + ")"
				loc.AddName(loc.NameDisplay)
				g.Locales[code] = loc
				g.attachLocale(loc)
			}
			loc.ContainedLocales = contained
			loc.PopulationSpeaking = total
			keep[loc] = true
		}
	})

	for _, id := range sortedKeys(g.Locales) {
		loc := g.Locales[id]
		if keep[loc] {
			continue
		}
		if loc.Provenance == domain.ProvenanceRegional {
			g.detachLocale(loc)
			delete(g.Locales, id)
		}
	}
}

// deriveLocalePopulations sets speaking percentages and writing
// populations. A chosen census percentage is kept as is.
func (g *Graph) deriveLocalePopulations() {
	for _, loc := range g.Locales {
		if loc.PopulationCensus == nil || loc.PopulationCensus.Percent == nil {
			loc.PopulationSpeakingPercent = nil
			if loc.Territory != nil {
				loc.PopulationSpeakingPercent = percentOf(loc.PopulationSpeaking, loc.Territory.Population)
			}
		}

		loc.PopulationWriting = nil
		if t := loc.Territory; t != nil && !t.Scope.IsGroup() && t.LiteracyPercent != nil {
			w := int64(math.Round(float64(loc.PopulationSpeaking) * *t.LiteracyPercent / 100))
			loc.PopulationWriting = &w
		}
	}
}

// countsTowardLanguage reports whether loc is primary evidence for its
// language's population: resolved, in a country or dependency, and not
// an aggregate of other locales.
func countsTowardLanguage(loc *domain.Locale) bool {
	return loc.Language != nil && loc.Territory != nil &&
		!loc.Territory.Scope.IsGroup() && !loc.IsRegional()
}

// deriveLanguagePopulations sums locale populations per language. Within
// one territory only the largest locale counts, so script or variant
// locales of the same speakers are not added twice.
func (g *Graph) deriveLanguagePopulations() {
	for _, lang := range g.Languages {
		perTerritory := make(map[*domain.Territory]int64)
		for _, loc := range lang.Locales {
			if !countsTowardLanguage(loc) {
				continue
			}
			perTerritory[loc.Territory] = max(perTerritory[loc.Territory], loc.PopulationSpeaking)
		}
		var total int64
		for _, n := range perTerritory {
			total += n
		}
		lang.PopulationFromLocales = total

		switch {
		case lang.PopulationCited != nil:
			est := *lang.PopulationCited
			lang.PopulationEstimate = &est
		case total > 0:
			est := total
			lang.PopulationEstimate = &est
		default:
			lang.PopulationEstimate = nil
		}
	}
}

// deriveDescendantPopulations computes, per source, the descendant
// population of every language: max(own estimate, sum over children) + 1.
func (g *Graph) deriveDescendantPopulations() {
	for _, lang := range g.Languages {
		lang.PopulationOfDescendants = make(map[domain.LanguageSource]int64)
	}
	for _, src := range domain.LanguageSources {
		lin := g.lineage[src]
		memo := make(map[string]int64)
		var visit func(id string) int64
		visit = func(id string) int64 {
			if n, ok := memo[id]; ok {
				return n
			}
			memo[id] = 0
			var sum int64
			for _, c := range lin.Children(id) {
				sum += visit(c)
			}
			var own int64
			if lang := g.Languages[id]; lang != nil && lang.PopulationEstimate != nil {
				own = *lang.PopulationEstimate
			}
			n := max(own, sum) + 1
			memo[id] = n
			return n
		}
		for _, id := range sortedKeys(g.Languages) {
			lang := g.Languages[id]
			if lang.Record(src) == nil {
				continue
			}
			lang.PopulationOfDescendants[src] = visit(id)
		}
	}
}

// deriveWritingSystemPopulations attributes speakers to scripts. A locale
// adds to its explicit script only when that script is not already its
// language's primary one.
func (g *Graph) deriveWritingSystemPopulations() {
	for _, ws := range g.WritingSystems {
		ws.PopulationUpperBound = 0
		ws.PopulationOfDescendants = 0
	}
	for _, lang := range g.Languages {
		if lang.PrimaryWritingSystem != nil && lang.PopulationEstimate != nil {
			lang.PrimaryWritingSystem.PopulationUpperBound += *lang.PopulationEstimate
		}
	}
	for _, loc := range g.Locales {
		if loc.WritingSystem == nil || !countsTowardLanguage(loc) {
			continue
		}
		if loc.Language.PrimaryWritingSystem == loc.WritingSystem {
			continue
		}
		loc.WritingSystem.PopulationUpperBound += loc.PopulationSpeaking
	}

	visited := make(map[*domain.WritingSystem]bool)
	var visit func(ws *domain.WritingSystem) int64
	visit = func(ws *domain.WritingSystem) int64 {
		if visited[ws] {
			return ws.PopulationOfDescendants
		}
		visited[ws] = true
		var sum int64
		for _, c := range ws.Children {
			sum += c.PopulationUpperBound + visit(c)
		}
		ws.PopulationOfDescendants = sum
		return sum
	}
	for _, id := range sortedKeys(g.WritingSystems) {
		visit(g.WritingSystems[id])
	}
}
