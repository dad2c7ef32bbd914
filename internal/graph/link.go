package graph

import (
	"slices"

	"github.com/heartmarshall/langnav/internal/diag"
	"github.com/heartmarshall/langnav/internal/domain"
)

const sourceLink = "link"

// link wires every cross reference from the code fields. It clears all
// derived slices and edges first, so running it twice gives the same graph.
func (g *Graph) link() {
	g.resetLinks()
	g.linkLanguageLineage()
	g.linkTerritories()
	g.linkWritingSystems()
	g.linkLanguageScripts()
	g.linkLocales()
	g.linkVariantTags()
	g.linkKeyboards()
	g.linkCensuses()
}

func (g *Graph) resetLinks() {
	for _, l := range g.lineage {
		l.Reset()
	}
	for _, lang := range g.Languages {
		lang.PrimaryWritingSystem = nil
		lang.WritingSystems = nil
		lang.Locales = nil
		lang.VariantTags = nil
	}
	for _, t := range g.Territories {
		t.Parent, t.Children = nil, nil
		t.Sovereign, t.Dependencies = nil, nil
		t.Locales, t.Censuses = nil, nil
	}
	for _, ws := range g.WritingSystems {
		ws.Parent, ws.Children = nil, nil
		ws.PrimaryLanguage, ws.TerritoryOfOrigin = nil, nil
		ws.Languages, ws.Locales = nil, nil
	}
	for _, loc := range g.Locales {
		loc.Language, loc.Territory, loc.WritingSystem = nil, nil, nil
		loc.VariantTags, loc.Keyboards = nil, nil
		loc.CensusRecords = nil
	}
	for _, tag := range g.VariantTags {
		tag.Languages, tag.Locales = nil, nil
	}
	for _, k := range g.Keyboards {
		k.Locale = nil
	}
	for _, c := range g.Censuses {
		c.Territory = nil
	}
}

func (g *Graph) linkLanguageLineage() {
	ids := sortedKeys(g.Languages)
	for _, src := range domain.LanguageSources {
		lin := g.lineage[src]
		for _, id := range ids {
			lang := g.Languages[id]
			rec := lang.Record(src)
			if rec == nil || rec.ParentCode == "" {
				continue
			}
			parent, ok := g.LookupLanguage(src, rec.ParentCode)
			if !ok {
				g.report(diag.MissingReference, sourceLink, lang.ID,
					"%s parent %s not found", src, rec.ParentCode)
				continue
			}
			if !lin.Link(parent.ID, lang.ID) {
				g.report(diag.DataQuality, sourceLink, lang.ID,
					"%s parent %s would create a cycle", src, parent.ID)
			}
		}
	}
}

func (g *Graph) linkTerritories() {
	for _, id := range sortedKeys(g.Territories) {
		t := g.Territories[id]
		if t.ContainedInCode != "" {
			if p := g.Territories[t.ContainedInCode]; p != nil && p != t {
				t.Parent = p
				p.Children = append(p.Children, t)
			} else {
				g.report(diag.MissingReference, sourceLink, t.ID, "containing territory %s not found", t.ContainedInCode)
			}
		}
		if t.SovereignCode != "" {
			if s := g.Territories[t.SovereignCode]; s != nil && s != t {
				t.Sovereign = s
				s.Dependencies = append(s.Dependencies, t)
			} else {
				g.report(diag.MissingReference, sourceLink, t.ID, "sovereign %s not found", t.SovereignCode)
			}
		}
	}
}

func (g *Graph) linkWritingSystems() {
	for _, id := range sortedKeys(g.WritingSystems) {
		ws := g.WritingSystems[id]
		if ws.ParentCode != "" {
			if p := g.WritingSystems[ws.ParentCode]; p != nil && p != ws {
				ws.Parent = p
				p.Children = append(p.Children, ws)
			} else {
				g.report(diag.MissingReference, sourceLink, ws.ID, "parent script %s not found", ws.ParentCode)
			}
		}
		if ws.PrimaryLanguageCode != "" {
			if lang, ok := g.ResolveLanguage(ws.PrimaryLanguageCode); ok {
				ws.PrimaryLanguage = lang
			} else {
				g.report(diag.MissingReference, sourceLink, ws.ID, "primary language %s not found", ws.PrimaryLanguageCode)
			}
		}
		if ws.TerritoryOfOriginCode != "" {
			if t := g.Territories[ws.TerritoryOfOriginCode]; t != nil {
				ws.TerritoryOfOrigin = t
			} else {
				g.report(diag.MissingReference, sourceLink, ws.ID, "territory of origin %s not found", ws.TerritoryOfOriginCode)
			}
		}
	}
}

func (g *Graph) linkLanguageScripts() {
	for _, id := range sortedKeys(g.Languages) {
		lang := g.Languages[id]
		if lang.PrimaryWritingSystemCode == "" {
			continue
		}
		ws := g.WritingSystems[lang.PrimaryWritingSystemCode]
		if ws == nil {
			g.report(diag.MissingReference, sourceLink, lang.ID,
				"primary writing system %s not found", lang.PrimaryWritingSystemCode)
			continue
		}
		lang.PrimaryWritingSystem = ws
		lang.WritingSystems = appendUnique(lang.WritingSystems, ws)
		ws.Languages = append(ws.Languages, lang)
	}
}

func (g *Graph) linkLocales() {
	for _, id := range sortedKeys(g.Locales) {
		g.attachLocale(g.Locales[id])
	}
}

// attachLocale resolves the language, territory and script of loc and
// registers it with each of them. Unresolved references leave the
// locale in place without that link.
func (g *Graph) attachLocale(loc *domain.Locale) {
	if lang, ok := g.ResolveLanguage(loc.LanguageCode); ok {
		loc.Language = lang
		lang.Locales = append(lang.Locales, loc)
	} else {
		g.report(diag.MissingReference, sourceLink, loc.ID, "language %s not found", loc.LanguageCode)
	}
	if loc.TerritoryCode != "" {
		if t := g.Territories[loc.TerritoryCode]; t != nil {
			loc.Territory = t
			t.Locales = append(t.Locales, loc)
		} else {
			g.report(diag.MissingReference, sourceLink, loc.ID, "territory %s not found", loc.TerritoryCode)
		}
	}
	if loc.WritingSystemCode != "" {
		if ws := g.WritingSystems[loc.WritingSystemCode]; ws != nil {
			loc.WritingSystem = ws
			ws.Locales = append(ws.Locales, loc)
			if loc.Language != nil {
				loc.Language.WritingSystems = appendUnique(loc.Language.WritingSystems, ws)
			}
		} else {
			g.report(diag.MissingReference, sourceLink, loc.ID, "writing system %s not found", loc.WritingSystemCode)
		}
	}
}

// detachLocale undoes attachLocale.
func (g *Graph) detachLocale(loc *domain.Locale) {
	drop := func(s []*domain.Locale) []*domain.Locale {
		return slices.DeleteFunc(s, func(l *domain.Locale) bool { return l == loc })
	}
	if loc.Language != nil {
		loc.Language.Locales = drop(loc.Language.Locales)
	}
	if loc.Territory != nil {
		loc.Territory.Locales = drop(loc.Territory.Locales)
	}
	if loc.WritingSystem != nil {
		loc.WritingSystem.Locales = drop(loc.WritingSystem.Locales)
	}
	loc.Language, loc.Territory, loc.WritingSystem = nil, nil, nil
}

func (g *Graph) linkVariantTags() {
	for _, id := range sortedKeys(g.VariantTags) {
		tag := g.VariantTags[id]
		for _, prefix := range tag.Prefixes {
			lang, ok := g.ResolveLanguage(domain.ParseLocaleCode(prefix).Language)
			if !ok {
				g.report(diag.MissingReference, sourceLink, tag.ID, "prefix language %s not found", prefix)
				continue
			}
			if !slices.Contains(tag.Languages, lang) {
				tag.Languages = append(tag.Languages, lang)
				lang.VariantTags = append(lang.VariantTags, tag)
			}
		}
	}
	for _, id := range sortedKeys(g.Locales) {
		loc := g.Locales[id]
		for _, v := range loc.VariantCodes {
			tag := g.VariantTags[v]
			if tag == nil {
				g.report(diag.MissingReference, sourceLink, loc.ID, "variant %s not found", v)
				continue
			}
			tag.Locales = append(tag.Locales, loc)
			loc.VariantTags = append(loc.VariantTags, tag)
		}
	}
}

func (g *Graph) linkKeyboards() {
	for _, id := range sortedKeys(g.Keyboards) {
		k := g.Keyboards[id]
		loc := g.Locales[k.LocaleCode]
		if loc == nil {
			g.report(diag.MissingReference, sourceLink, k.ID, "locale %s not found", k.LocaleCode)
			continue
		}
		k.Locale = loc
		loc.Keyboards = append(loc.Keyboards, k)
	}
}

// linkCensuses attaches censuses to territories and one record per
// estimate to the matching locale, in census load order.
func (g *Graph) linkCensuses() {
	for _, c := range g.CensusesInOrder() {
		if t := g.Territories[c.TerritoryCode]; t != nil {
			c.Territory = t
			t.Censuses = append(t.Censuses, c)
		} else if c.TerritoryCode != "" {
			g.report(diag.MissingReference, sourceLink, c.ID, "territory %s not found", c.TerritoryCode)
		}
		for _, code := range c.LanguageCodes() {
			loc, _ := g.censusLocale(c, code)
			if loc == nil {
				continue
			}
			est := c.LanguageEstimates[code]
			loc.CensusRecords = append(loc.CensusRecords, domain.CensusRecord{
				Census:   c,
				Estimate: est,
				Percent:  c.PercentOf(est),
			})
		}
	}
}

// censusLocale finds the locale a census estimate is about: one of the
// resolved language in the census territory, with the same script and no
// variants. An exact code match wins. Without a match it returns nil and
// the code a new locale should take.
func (g *Graph) censusLocale(c *domain.Census, code string) (*domain.Locale, string) {
	lc := domain.ParseLocaleCode(code)
	lc.Territory = c.TerritoryCode
	if loc := g.Locales[lc.String()]; loc != nil {
		return loc, loc.ID
	}
	lang, ok := g.ResolveLanguage(lc.Language)
	if !ok {
		return nil, lc.String()
	}
	if len(lc.Variants) == 0 {
		for _, loc := range lang.Locales {
			if loc.TerritoryCode == lc.Territory && loc.WritingSystemCode == lc.Script &&
				len(loc.VariantCodes) == 0 && !loc.IsRegional() {
				return loc, loc.ID
			}
		}
	}
	if lang.CodeBCP != "" {
		lc.Language = lang.CodeBCP
	}
	key := lc.String()
	return g.Locales[key], key
}

func appendUnique[T comparable](s []T, v T) []T {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}
