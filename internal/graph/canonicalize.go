package graph

import (
	"fmt"
	"log/slog"
	"strings"

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

const sourceCanonicalize = "canonicalize"

// canonicalize merges the per-source records into one Language per
// languoid. Stage order matters: later stages look codes up in the
// indexes earlier stages filled.
func (g *Graph) canonicalize(in Inputs) {
	g.insertTerritories(in.Territories)
	g.insertWritingSystems(in.WritingSystems)
	g.insertLocales(in.Locales)

	g.mergeMasterList(in.Languages)
	g.mergeISO(in.ISOLanguages)
	g.mergeRetirements(in.Retirements)
	g.mergeFamilies(in.Families)
	g.mergeMacrolanguages(in.Macrolanguages)
	g.mergeGlottolog(in.Glottolog)
	g.deriveAllParents()
	g.parentSplitRetirements(in.Retirements)
	g.mergeCLDRAliases(in.Aliases)
	g.mergeVariants(in.Variants)

	for _, lang := range g.Languages {
		if lang.CodeBCP == "" {
			lang.CodeBCP = lang.ID
		}
	}

	g.log.Debug("canonicalized languages",
		slog.Int("languages", len(g.Languages)),
		slog.Int("iso_codes", g.indexes[domain.SourceISO].Len()),
		slog.Int("glottocodes", g.indexes[domain.SourceGlottolog].Len()),
	)
}

func (g *Graph) insertTerritories(rows []territory.Row) {
	for _, row := range rows {
		if _, dup := g.Territories[row.Code]; dup {
			g.report(diag.DataQuality, sourceCanonicalize, row.Code, "duplicate territory, keeping the first")
			continue
		}
		t := &domain.Territory{
			Entity:          domain.Entity{ID: row.Code, CodeDisplay: row.Code, NameDisplay: row.Name},
			Scope:           row.Scope,
			ContainedInCode: row.ContainedIn,
			SovereignCode:   row.SovereignCode,
		}
		t.AddName(row.Name)
		if row.Population != nil {
			if row.Scope.IsGroup() {
				g.report(diag.DataQuality, sourceCanonicalize, row.Code,
					"population ignored on %s territory; it is derived from children", row.Scope)
			} else {
				t.Population = *row.Population
			}
		}
		g.Territories[t.ID] = t
	}
}

func (g *Graph) insertWritingSystems(rows []script.Row) {
	for _, row := range rows {
		if _, dup := g.WritingSystems[row.Code]; dup {
			g.report(diag.DataQuality, sourceCanonicalize, row.Code, "duplicate writing system, keeping the first")
			continue
		}
		ws := &domain.WritingSystem{
			Entity:                domain.Entity{ID: row.Code, CodeDisplay: row.Code, NameDisplay: row.Name},
			ParentCode:            row.ParentCode,
			PrimaryLanguageCode:   row.PrimaryLanguage,
			TerritoryOfOriginCode: row.TerritoryOfOrigin,
			Sample:                row.Sample,
		}
		ws.AddName(row.Name)
		g.WritingSystems[ws.ID] = ws
	}
}

func (g *Graph) insertLocales(rows []locale.Row) {
	for _, row := range rows {
		code := row.Code.String()
		if _, dup := g.Locales[code]; dup {
			g.report(diag.DataQuality, sourceCanonicalize, code, "duplicate locale, keeping the first")
			continue
		}
		loc := domain.NewLocale(code, domain.ProvenanceRegularInput)
		loc.NameDisplay = row.Name
		if loc.NameDisplay == "" {
			loc.NameDisplay = code
		}
		loc.AddName(row.Name)
		if row.PopulationSpeaking != nil {
			loc.PopulationSpeaking = *row.PopulationSpeaking
		}
		loc.OfficialStatus = row.OfficialStatus
		loc.PopulationSource = row.PopulationSource
		g.Locales[code] = loc
	}
}

func (g *Graph) insertLanguage(lang *domain.Language) {
	g.Languages[lang.ID] = lang
	g.indexes[domain.SourceAll].Put(lang.ID, lang.ID)
}

// mergeMasterList creates the base language objects. The master list
// parent is authoritative for the All lens.
func (g *Graph) mergeMasterList(rows []langlist.Row) {
	for _, row := range rows {
		if _, dup := g.Languages[row.Code]; dup {
			g.report(diag.DataQuality, sourceCanonicalize, row.Code, "duplicate language, keeping the first")
			continue
		}
		lang := domain.NewLanguage(row.Code, row.Name, row.Scope)
		lang.Endonym = row.Endonym
		lang.PopulationCited = row.PopulationCited
		lang.VitalityEth2013 = row.VitalityEth2013
		lang.VitalityEth2025 = row.VitalityEth2025
		lang.Record(domain.SourceAll).ParentCode = row.ParentCode
		if row.PrimaryWritingSystem != "" {
			code, _, ok := script.Canonical(row.PrimaryWritingSystem)
			if !ok {
				g.report(diag.DataQuality, sourceCanonicalize, row.Code,
					"ignoring malformed primary writing system %q", row.PrimaryWritingSystem)
			}
			lang.PrimaryWritingSystemCode = code
		}
		lang.AddName(row.Endonym)
		for _, alt := range row.AltNames {
			lang.AddName(alt)
		}
		g.insertLanguage(lang)
	}
}

// mergeISO attaches the ISO 639-3 records. A master entry listed under
// its ISO 639-1 code is rekeyed to the 639-3 code, which becomes its ID.
func (g *Graph) mergeISO(rows []iso.Language) {
	all := g.indexes[domain.SourceAll]
	for _, row := range rows {
		lang := g.Languages[row.ID]
		if lang == nil && row.Part1 != "" {
			if prev := g.Languages[row.Part1]; prev != nil {
				lang = g.rekey(prev, row.ID)
			}
		}
		if lang == nil {
			lang = domain.NewLanguage(row.ID, row.RefName, row.Scope)
			g.insertLanguage(lang)
		}

		rec := lang.Record(domain.SourceAll)
		if rec.Scope == "" {
			rec.Scope = row.Scope
		}
		if rec.Name == "" {
			rec.Name = row.RefName
		}
		if lang.NameDisplay == "" {
			lang.NameDisplay = row.RefName
		}
		lang.AddName(row.RefName)

		*lang.EnsureRecord(domain.SourceISO) = domain.LanguageSourceRecord{
			Code: row.ID, Name: row.RefName, Scope: row.Scope,
		}
		g.indexes[domain.SourceISO].Put(row.ID, lang.ID)

		bcp := row.BCP()
		*lang.EnsureRecord(domain.SourceCLDR) = domain.LanguageSourceRecord{
			Code: bcp, Name: row.RefName, Scope: row.Scope,
		}
		g.indexes[domain.SourceCLDR].Put(bcp, lang.ID)

		if row.Scope == domain.ScopeLanguage || row.Scope == domain.ScopeMacrolanguage {
			*lang.EnsureRecord(domain.SourceUNESCO) = domain.LanguageSourceRecord{
				Code: row.ID, Name: row.RefName, Scope: row.Scope,
			}
			g.indexes[domain.SourceUNESCO].Put(row.ID, lang.ID)
		}

		lang.CodeBCP = bcp
		g.bcp.Put(bcp, lang.ID)
		g.bcp.Put(row.ID, lang.ID)
		if row.Part2B != "" && row.Part2B != row.ID {
			lang.ISO6392B = row.Part2B
			g.bcp.Put(row.Part2B, lang.ID)
		}
		lang.VitalityISO = row.Type.Vitality()
		if row.Part1 != "" && row.Part1 != lang.ID {
			all.Redirect(row.Part1, lang.ID)
		}
	}
}

// rekey moves lang to a new ID, leaving a redirect from the old one.
func (g *Graph) rekey(lang *domain.Language, id string) *domain.Language {
	old := lang.ID
	delete(g.Languages, old)
	for _, x := range g.indexes {
		x.Rebind(old, id)
	}
	g.bcp.Rebind(old, id)

	all := g.indexes[domain.SourceAll]
	all.Remove(old)
	lang.ID = id
	lang.CodeDisplay = id
	lang.Record(domain.SourceAll).Code = id
	g.insertLanguage(lang)
	all.Redirect(old, id)
	return lang
}

// mergeRetirements flags codes retired from ISO 639-3. Retired codes leave
// the ISO, BCP, CLDR and UNESCO code spaces but stay in All.
func (g *Graph) mergeRetirements(rows []iso.Retirement) {
	for _, r := range rows {
		lang := g.Languages[r.ID]
		if lang == nil {
			lang = domain.NewLanguage(r.ID, r.RefName, domain.ScopeSpecialCode)
			g.insertLanguage(lang)
		}
		if r.Effective != "" {
			lang.Warning = fmt.Sprintf("retired from ISO 639-3 on %s (%s)", r.Effective, r.Reason)
		} else {
			lang.Warning = fmt.Sprintf("retired from ISO 639-3 (%s)", r.Reason)
		}
		if r.Remedy != "" {
			lang.AddNote(r.Remedy)
		}

		for _, x := range []*Index{
			g.indexes[domain.SourceISO], g.indexes[domain.SourceCLDR],
			g.indexes[domain.SourceUNESCO], g.bcp,
		} {
			for _, code := range []string{r.ID, lang.CodeBCP} {
				if id, ok := x.Lookup(code); ok && id == lang.ID {
					x.Remove(code)
				}
			}
		}
		delete(lang.Source, domain.SourceISO)
		delete(lang.Source, domain.SourceCLDR)
		delete(lang.Source, domain.SourceUNESCO)

		switch r.Reason {
		case iso.ReasonChange, iso.ReasonMerge:
			if r.ChangeTo != "" {
				g.bcp.Redirect(r.ID, r.ChangeTo)
			}
		}
	}
}

// parentSplitRetirements places the targets of a split retirement under
// the retired code in All. Only targets still without an All parent
// after every other source has been applied are moved.
func (g *Graph) parentSplitRetirements(rows []iso.Retirement) {
	for _, r := range rows {
		lang := g.Languages[r.ID]
		if r.Reason != iso.ReasonSplit || lang == nil {
			continue
		}
		for _, code := range r.SplitInto() {
			child, ok := g.LookupLanguage(domain.SourceAll, code)
			if !ok {
				g.report(diag.MissingReference, sourceCanonicalize, r.ID,
					"split target %s not found", code)
				continue
			}
			if rec := child.Record(domain.SourceAll); rec.ParentCode == "" && child != lang {
				rec.ParentCode = lang.ID
			}
		}
	}
}

// mergeFamilies adds the ISO 639-5 collective codes.
func (g *Graph) mergeFamilies(rows []iso.Family) {
	for _, f := range rows {
		lang, ok := g.LookupLanguage(domain.SourceAll, f.Code)
		if !ok {
			lang = domain.NewLanguage(f.Code, f.Name, domain.ScopeFamily)
			g.insertLanguage(lang)
		}
		if rec := lang.Record(domain.SourceAll); rec.Scope == "" {
			rec.Scope = domain.ScopeFamily
		}
		lang.AddName(f.Name)
		*lang.EnsureRecord(domain.SourceISO) = domain.LanguageSourceRecord{
			Code: f.Code, Name: f.Name, Scope: domain.ScopeFamily, ParentCode: f.ParentCode,
		}
		g.indexes[domain.SourceISO].Put(f.Code, lang.ID)
		if !g.bcp.Has(f.Code) {
			g.bcp.Put(f.Code, lang.ID)
		}
		if lang.CodeBCP == "" {
			lang.CodeBCP = f.Code
		}
	}
}

// mergeMacrolanguages records macrolanguage membership in the ISO, UNESCO
// and CLDR lenses.
func (g *Graph) mergeMacrolanguages(rows []iso.Membership) {
	for _, m := range rows {
		if m.Retired {
			continue
		}
		macro, ok := g.LookupLanguage(domain.SourceISO, m.Macrolanguage)
		if !ok {
			g.report(diag.MissingReference, sourceCanonicalize, m.Macrolanguage, "macrolanguage not found")
			continue
		}
		member, ok := g.LookupLanguage(domain.SourceISO, m.Individual)
		if !ok {
			g.report(diag.MissingReference, sourceCanonicalize, m.Individual,
				"member of %s not found", m.Macrolanguage)
			continue
		}
		for _, src := range []domain.LanguageSource{domain.SourceISO, domain.SourceUNESCO, domain.SourceCLDR} {
			parent, child := macro.Record(src), member.Record(src)
			if parent != nil && child != nil {
				child.ParentCode = parent.Code
			}
		}
	}
}

// mergeGlottolog matches languoids by ISO code, then by glottocode, and
// creates a new language keyed by glottocode otherwise.
func (g *Graph) mergeGlottolog(rows []glottolog.Languoid) {
	gx := g.indexes[domain.SourceGlottolog]
	all := g.indexes[domain.SourceAll]
	for _, row := range rows {
		var lang *domain.Language
		if row.ISO != "" {
			if l, ok := g.LookupLanguage(domain.SourceISO, row.ISO); ok {
				lang = l
			} else {
				g.report(diag.MissingReference, sourceCanonicalize, row.Glottocode,
					"ISO code %s not found", row.ISO)
			}
		}
		if lang == nil {
			lang, _ = g.LookupLanguage(domain.SourceAll, row.Glottocode)
		}
		if lang == nil {
			lang = domain.NewLanguage(row.Glottocode, row.Name, row.Scope)
			g.insertLanguage(lang)
		}

		if rec := lang.Record(domain.SourceAll); rec.Scope == "" {
			rec.Scope = row.Scope
		}
		lang.Glottocode = row.Glottocode
		lang.AddName(row.Name)
		*lang.EnsureRecord(domain.SourceGlottolog) = domain.LanguageSourceRecord{
			Code: row.Glottocode, Name: row.Name, Scope: row.Scope, ParentCode: row.ParentGlottocode,
		}
		gx.Put(row.Glottocode, lang.ID)
		if !all.Has(row.Glottocode) {
			all.Put(row.Glottocode, lang.ID)
		}
	}
}

// deriveAllParents fills the All-lens parent from Glottolog, then ISO,
// wherever the master list gave none. Parents are stored as IDs.
func (g *Graph) deriveAllParents() {
	for _, id := range sortedKeys(g.Languages) {
		lang := g.Languages[id]
		rec := lang.Record(domain.SourceAll)
		if rec.ParentCode != "" {
			continue
		}
		for _, src := range []domain.LanguageSource{domain.SourceGlottolog, domain.SourceISO} {
			r := lang.Record(src)
			if r == nil || r.ParentCode == "" {
				continue
			}
			if parent, ok := g.LookupLanguage(src, r.ParentCode); ok && parent != lang {
				rec.ParentCode = parent.ID
				break
			}
		}
	}
}

// mergeCLDRAliases applies the CLDR language alias table.
func (g *Graph) mergeCLDRAliases(rows []cldr.Alias) {
	cx := g.indexes[domain.SourceCLDR]
	for _, a := range rows {
		target := a.ReplacementLanguage()
		src, hasSrc := g.lookupCLDR(a.Code)
		dst, hasDst := g.lookupCLDR(target)
		if !hasDst {
			g.report(diag.MissingReference, sourceCanonicalize, a.Code,
				"CLDR %s alias target %s not found", a.Reason, a.Replacement)
			if hasSrc {
				src.AddNote(fmt.Sprintf("CLDR %s alias of unresolved %s", a.Reason, a.Replacement))
			}
			continue
		}

		switch a.Reason {
		case cldr.ReasonOverlong:
			if !hasSrc {
				continue
			}
			src.AddNote(fmt.Sprintf("overlong CLDR code; CLDR uses %s", a.Replacement))
			if src != dst {
				src.CLDRDataProvider = dst
			}

		case cldr.ReasonMacrolanguage:
			if !hasSrc || src == dst {
				continue
			}
			g.transferMacrolanguage(dst, src, target)

		case cldr.ReasonBibliographic:
			if hasSrc {
				src.AddNote(fmt.Sprintf("bibliographic code; preferred %s", a.Replacement))
			}

		default:
			if !cx.Has(a.Code) {
				if r := dst.Record(domain.SourceCLDR); r != nil {
					target = r.Code
				}
				cx.Redirect(a.Code, target)
			}
			if hasSrc {
				src.AddNote(fmt.Sprintf("CLDR %s alias of %s", a.Reason, a.Replacement))
			}
		}
	}
}

func (g *Graph) lookupCLDR(code string) (*domain.Language, bool) {
	if lang, ok := g.LookupLanguage(domain.SourceCLDR, code); ok {
		return lang, true
	}
	if lang, ok := g.LookupLanguage(domain.SourceISO, code); ok {
		return lang, true
	}
	if lang, ok := g.LookupLanguage(domain.SourceAll, code); ok {
		return lang, true
	}
	// ISO 639-2/B codes live only in the BCP index.
	if id, ok := g.bcp.Lookup(code); ok {
		if lang := g.Languages[id]; lang != nil {
			return lang, true
		}
	}
	return nil, false
}

// transferMacrolanguage makes constituent canonical for the CLDR code of
// macro. The macrolanguage leaves the CLDR lens; its CLDR children move to
// the constituent, which takes over the macrolanguage's CLDR parent.
func (g *Graph) transferMacrolanguage(macro, constituent *domain.Language, code string) {
	macroRec := macro.Record(domain.SourceCLDR)
	rec := constituent.EnsureRecord(domain.SourceCLDR)
	oldCode := rec.Code

	rec.Code = code
	rec.ParentCode = ""
	if rec.Name == "" {
		rec.Name = constituent.NameDisplay
	}
	if rec.Scope == "" {
		rec.Scope = constituent.Scope()
	}
	if macroRec != nil {
		rec.ParentCode = macroRec.ParentCode
	}

	cx := g.indexes[domain.SourceCLDR]
	cx.Put(code, constituent.ID)
	if oldCode != "" && oldCode != code {
		cx.Put(oldCode, constituent.ID)
	}
	delete(macro.Source, domain.SourceCLDR)

	for _, lang := range g.Languages {
		if lang == constituent {
			continue
		}
		if r := lang.Record(domain.SourceCLDR); r != nil && (r.ParentCode == code || r.ParentCode == macro.ID) {
			r.ParentCode = code
		}
	}

	macro.CLDRDataProvider = constituent
	macro.AddNote(fmt.Sprintf("CLDR data for %s comes from %s", code, constituent.ID))
	constituent.AddNote(fmt.Sprintf("canonical CLDR language for macrolanguage %s", macro.ID))
}

// mergeVariants creates the IANA variant tags and one locale for every
// prefix+subtag combination that does not exist yet.
func (g *Graph) mergeVariants(rows []iana.Variant) {
	for _, v := range rows {
		if _, dup := g.VariantTags[v.Subtag]; dup {
			g.report(diag.DataQuality, sourceCanonicalize, v.Subtag, "duplicate variant subtag, keeping the first")
			continue
		}
		name := v.Subtag
		if len(v.Descriptions) > 0 {
			name = v.Descriptions[0]
		}
		tag := &domain.VariantTag{
			Entity:       domain.Entity{ID: v.Subtag, CodeDisplay: v.Subtag, NameDisplay: name},
			Descriptions: v.Descriptions,
			Added:        v.Added,
			Prefixes:     v.Prefixes,
			Comments:     v.Comments,
		}
		for _, d := range v.Descriptions {
			tag.AddName(d)
		}
		g.VariantTags[tag.ID] = tag

		for _, prefix := range v.Prefixes {
			code := domain.ParseLocaleCode(prefix + "_" + v.Subtag).String()
			if _, ok := g.Locales[code]; ok {
				continue
			}
			loc := domain.NewLocale(code, domain.ProvenanceIANA)
			loc.NameDisplay = strings.TrimSpace(name + " (" + prefix + ")")
			loc.AddName(loc.NameDisplay)
			g.Locales[code] = loc
		}
	}
}
