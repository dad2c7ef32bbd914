package graph

import (
	"math"

	"github.com/heartmarshall/langnav/internal/diag"
	"github.com/heartmarshall/langnav/internal/domain"
)

const sourceSupplement = "supplement"

// applySupplement merges territory statistics, censuses, CLDR coverage and
// keyboards. Census estimates without a locale of the same resolved
// language and territory create a speculative census locale.
func (g *Graph) applySupplement(sup Supplement) {
	for _, s := range sup.TerritoryStats {
		t := g.Territories[s.Code]
		switch {
		case t == nil:
			g.report(diag.MissingReference, sourceSupplement, s.Code, "territory not found for statistics")
		case t.Scope.IsGroup():
			g.report(diag.DataQuality, sourceSupplement, s.Code,
				"statistics ignored on %s territory; they are derived from children", t.Scope)
		default:
			t.GDP = s.GDP
			t.LiteracyPercent = s.LiteracyPercent
		}
	}

	for _, c := range sup.Censuses {
		if c == nil {
			continue
		}
		if _, dup := g.Censuses[c.ID]; dup {
			g.report(diag.DataQuality, sourceSupplement, c.ID, "duplicate census, keeping the first")
			continue
		}
		g.Censuses[c.ID] = c
		g.censusOrder = append(g.censusOrder, c.ID)
		if c.TerritoryCode == "" {
			g.report(diag.DataQuality, sourceSupplement, c.ID, "census has no territory; its estimates are not attached")
			continue
		}
		for _, code := range c.LanguageCodes() {
			loc, key := g.censusLocale(c, code)
			if loc != nil {
				continue
			}
			loc = domain.NewLocale(key, domain.ProvenanceCensus)
			loc.NameDisplay = key
			g.Locales[key] = loc
		}
	}

	for _, cov := range sup.Coverage {
		matched := false
		if loc := g.Locales[cov.LocaleCode]; loc != nil {
			loc.CLDRCoverage = cov.Level
			matched = true
		}
		lc := domain.ParseLocaleCode(cov.LocaleCode)
		if lc.Territory == "" && lc.Script == "" && len(lc.Variants) == 0 {
			if lang, ok := g.ResolveLanguage(lc.Language); ok {
				lang.CLDRCoverage = cov.Level
				matched = true
			}
		}
		if !matched {
			g.report(diag.MissingReference, sourceSupplement, cov.LocaleCode, "no locale or language for CLDR coverage")
		}
	}

	for _, row := range sup.Keyboards {
		if _, dup := g.Keyboards[row.ID]; dup {
			g.report(diag.DataQuality, sourceSupplement, row.ID, "duplicate keyboard, keeping the first")
			continue
		}
		k := &domain.Keyboard{
			Entity:     domain.Entity{ID: row.ID, CodeDisplay: row.ID, NameDisplay: row.Name},
			LocaleCode: row.LocaleCode,
			Platform:   row.Platform,
		}
		k.AddName(row.Name)
		g.Keyboards[k.ID] = k
	}
}

// PickCensusRecord chooses the canonical record among competing census
// records for one locale. Rules apply in order, each narrowing to the
// records tied on it: better collector type (Government, Study, CLDR,
// unknown), later collection year, higher percentage (unknown lowest).
// The first remaining record in input order wins.
func PickCensusRecord(records []domain.CensusRecord) (domain.CensusRecord, bool) {
	if len(records) == 0 {
		return domain.CensusRecord{}, false
	}

	rules := []func(domain.CensusRecord) float64{
		func(r domain.CensusRecord) float64 { return -float64(r.Census.CollectorType.Rank()) },
		func(r domain.CensusRecord) float64 { return float64(r.Census.YearCollected) },
		func(r domain.CensusRecord) float64 {
			if r.Percent == nil {
				return math.Inf(-1)
			}
			return *r.Percent
		},
	}

	candidates := records
	for _, score := range rules {
		if len(candidates) == 1 {
			break
		}
		best := math.Inf(-1)
		for _, r := range candidates {
			best = math.Max(best, score(r))
		}
		tied := make([]domain.CensusRecord, 0, len(candidates))
		for _, r := range candidates {
			if score(r) == best {
				tied = append(tied, r)
			}
		}
		candidates = tied
	}
	return candidates[0], true
}

// selectCensusEstimates applies the chosen census record to every locale
// that has census evidence.
func (g *Graph) selectCensusEstimates() {
	for _, id := range sortedKeys(g.Locales) {
		loc := g.Locales[id]
		rec, ok := PickCensusRecord(loc.CensusRecords)
		if !ok {
			loc.PopulationCensus = nil
			continue
		}
		loc.PopulationCensus = &rec
		loc.PopulationSource = "census:" + rec.Census.ID
		loc.PopulationSpeakingPercent = rec.Percent
		loc.PopulationSpeaking = rec.Estimate
		if rec.Percent != nil && loc.Territory != nil && loc.Territory.Population > 0 {
			loc.PopulationSpeaking = share(*rec.Percent, loc.Territory.Population)
		}
	}
}

// recomputeRegionalLocales re-derives regional locales from their
// contained locales' percentages against current territory populations.
// Post-order, so nested regional locales are settled before their parents.
func (g *Graph) recomputeRegionalLocales() {
	g.walkTerritories(func(t *domain.Territory) {
		for _, loc := range t.Locales {
			if len(loc.ContainedLocales) == 0 {
				continue
			}
			var sum int64
			for _, c := range loc.ContainedLocales {
				if c.PopulationSpeakingPercent != nil && c.Territory != nil && c.Territory.Population > 0 {
					sum += share(*c.PopulationSpeakingPercent, c.Territory.Population)
				} else {
					sum += c.PopulationSpeaking
				}
			}
			loc.PopulationSpeaking = sum
			loc.PopulationSpeakingPercent = percentOf(sum, t.Population)
		}
	})
}

// share returns round(percent × population / 100).
func share(percent float64, population int64) int64 {
	return int64(math.Round(percent * float64(population) / 100))
}

func percentOf(part, whole int64) *float64 {
	if whole <= 0 {
		return nil
	}
	p := float64(part) / float64(whole) * 100
	return &p
}
