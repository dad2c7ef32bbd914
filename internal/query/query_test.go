package query

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langnav/internal/domain"
)

func population(n int64) *int64 { return &n }

func ids(objs []domain.Object) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.Base().ID
	}
	return out
}

type fakeLineage map[string][]*domain.Language

func (f fakeLineage) Children(_ domain.LanguageSource, lang *domain.Language) []*domain.Language {
	return f[lang.ID]
}

func languages() []domain.Object {
	big := domain.NewLanguage("big", "Zulu", domain.ScopeLanguage)
	big.PopulationEstimate = population(100)
	none := domain.NewLanguage("none", "Éwé", domain.ScopeMacrolanguage)
	small := domain.NewLanguage("small", "apple", domain.ScopeFamily)
	small.PopulationEstimate = population(50)
	return []domain.Object{big, none, small}
}

func TestSortFunc_UndefinedSortsLast(t *testing.T) {
	t.Parallel()

	objs := languages()
	slices.SortStableFunc(objs, SortFunc(FieldPopulation, SourceContext{}, false))
	assert.Equal(t, []string{"big", "small", "none"}, ids(objs))

	slices.SortStableFunc(objs, SortFunc(FieldPopulation, SourceContext{}, true))
	assert.Equal(t, []string{"small", "big", "none"}, ids(objs))
}

func TestSortFunc_LexicalCollation(t *testing.T) {
	t.Parallel()

	objs := languages()
	slices.SortStableFunc(objs, SortFunc(FieldName, SourceContext{}, false))
	assert.Equal(t, []string{"small", "none", "big"}, ids(objs), "apple, Éwé, Zulu")

	slices.SortStableFunc(objs, SortFunc(FieldName, SourceContext{}, true))
	assert.Equal(t, []string{"big", "none", "small"}, ids(objs))
}

func TestSortFunc_EqualUndefined(t *testing.T) {
	t.Parallel()

	cmp := SortFunc(FieldEndonym, SourceContext{}, false)
	objs := languages()
	assert.Zero(t, cmp(objs[0], objs[1]))
}

func TestGetField_Language(t *testing.T) {
	t.Parallel()

	parent := domain.NewLanguage("elv", "Elvish", domain.ScopeFamily)
	child := domain.NewLanguage("sjn", "Sindarin", domain.ScopeLanguage)
	child.EnsureRecord(domain.SourceGlottolog).Code = "sind1241"
	child.PopulationOfDescendants[domain.SourceAll] = 11221
	child.VitalityEth2013 = "threatened"
	sc := SourceContext{Lineage: fakeLineage{"elv": {child}}}

	assert.Equal(t, "sjn", GetField(child, FieldCode, sc).AsText())
	assert.Equal(t, "sind1241", GetField(child, FieldCode, SourceContext{Source: domain.SourceGlottolog}).AsText())
	assert.Equal(t, "Language", GetField(child, FieldScope, sc).AsText())
	assert.False(t, GetField(child, FieldScope, SourceContext{Source: domain.SourceISO}).IsDefined())
	assert.False(t, GetField(child, FieldEndonym, sc).IsDefined())
	assert.False(t, GetField(child, FieldPopulation, sc).IsDefined())
	assert.InDelta(t, 11221, GetField(child, FieldPopulationOfDescendants, sc).AsNumber(), 0)
	assert.InDelta(t, 1, GetField(parent, FieldCountOfLanguages, sc).AsNumber(), 0)
	assert.False(t, GetField(parent, FieldCountOfLanguages, SourceContext{}).IsDefined())
	assert.InDelta(t, 3, GetField(child, FieldVitalityMetascore, sc).AsNumber(), 0)
	assert.False(t, GetField(child, FieldVitalityISO, sc).IsDefined())
	assert.False(t, GetField(child, FieldLiteracy, sc).IsDefined())
}

func TestGetField_OtherTypes(t *testing.T) {
	t.Parallel()

	lit := 80.0
	world := &domain.Territory{Entity: domain.Entity{ID: "001"}, Scope: domain.TerritoryWorld, Population: 2000}
	be := &domain.Territory{
		Entity: domain.Entity{ID: "BE", NameDisplay: "Beleriand"}, Scope: domain.TerritoryCountry,
		Population: 500, Parent: world, LiteracyPercent: &lit,
	}
	world.Children = []*domain.Territory{be}
	census := &domain.Census{Entity: domain.Entity{ID: "be2011"}, YearCollected: 2011, Territory: be,
		LanguageEstimates: map[string]int64{"sjn": 10}}
	lang := domain.NewLanguage("sjn", "Sindarin", domain.ScopeLanguage)
	lang.VitalityISO = "Living"
	loc := domain.NewLocale("sjn_BE", domain.ProvenanceRegularInput)
	loc.Language, loc.Territory = lang, be
	loc.PopulationSpeaking = 10
	loc.PopulationCensus = &domain.CensusRecord{Census: census, Estimate: 10}
	be.Locales = []*domain.Locale{loc}
	tag := &domain.VariantTag{Entity: domain.Entity{ID: "1901"}, Added: "2005-10-16"}
	kb := &domain.Keyboard{Entity: domain.Entity{ID: "kb"}}

	sc := SourceContext{}
	assert.InDelta(t, 25, GetField(be, FieldPercentOfTerritoryPopulation, sc).AsNumber(), 1e-9)
	assert.False(t, GetField(world, FieldPercentOfTerritoryPopulation, sc).IsDefined())
	assert.InDelta(t, 1, GetField(world, FieldCountOfTerritories, sc).AsNumber(), 0)
	assert.InDelta(t, 1, GetField(be, FieldCountOfLanguages, sc).AsNumber(), 0)
	assert.Equal(t, "Country", GetField(be, FieldScope, sc).AsText())

	assert.InDelta(t, 80, GetField(loc, FieldLiteracy, sc).AsNumber(), 0)
	assert.InDelta(t, 2011, GetField(loc, FieldDate, sc).AsNumber(), 0)
	assert.InDelta(t, 9, GetField(loc, FieldVitalityMetascore, sc).AsNumber(), 0)
	assert.False(t, GetField(loc, FieldScope, sc).IsDefined())

	assert.InDelta(t, 2011, GetField(census, FieldDate, sc).AsNumber(), 0)
	assert.False(t, GetField(census, FieldPopulation, sc).IsDefined())
	assert.InDelta(t, 2005, GetField(tag, FieldDate, sc).AsNumber(), 0)
	assert.False(t, GetField(&domain.VariantTag{Added: "sometime"}, FieldDate, sc).IsDefined())
	assert.False(t, GetField(kb, FieldPopulation, sc).IsDefined())
	assert.False(t, GetField(nil, FieldCode, sc).IsDefined())
}

func TestSortFunc_DateAcrossObjectTypes(t *testing.T) {
	t.Parallel()

	objs := []domain.Object{
		&domain.VariantTag{Entity: domain.Entity{ID: "1901"}, Added: "2005-10-16"},
		&domain.Census{Entity: domain.Entity{ID: "be2011"}, YearCollected: 2011},
		&domain.VariantTag{Entity: domain.Entity{ID: "undated"}},
		&domain.Census{Entity: domain.Entity{ID: "be1990"}, YearCollected: 1990},
	}

	slices.SortStableFunc(objs, SortFunc(FieldDate, SourceContext{}, false))
	assert.Equal(t, []string{"be2011", "1901", "be1990", "undated"}, ids(objs))

	slices.SortStableFunc(objs, SortFunc(FieldDate, SourceContext{}, true))
	assert.Equal(t, []string{"be1990", "1901", "be2011", "undated"}, ids(objs))
}

func TestFilters(t *testing.T) {
	t.Parallel()

	objs := languages()
	terr := &domain.Territory{Entity: domain.Entity{ID: "BE", NameDisplay: "Beleriand"}}

	scope := ScopeFilter(SourceContext{}, "language", "Family")
	assert.True(t, scope(objs[0]))
	assert.False(t, scope(objs[1]))
	assert.True(t, scope(objs[2]))
	assert.True(t, ScopeFilter(SourceContext{})(objs[1]))
	assert.True(t, ScopeFilter(SourceContext{}, "Language")(&domain.Keyboard{}), "objects without scope pass")

	ewe := SubstringFilter("EWE")
	assert.False(t, ewe(objs[0]))
	assert.True(t, SubstringFilter("éwé")(objs[1]))
	assert.True(t, SubstringFilter("leria")(terr))
	assert.True(t, SubstringFilter("  ")(terr))
}

func TestApply(t *testing.T) {
	t.Parallel()

	objs := languages()
	page, total := Apply(objs, Options{
		Filters: []Filter{ScopeFilter(SourceContext{}, "Language", "Family")},
		Field:   FieldPopulation,
		Limit:   1,
	})
	assert.Equal(t, 2, total)
	require.Len(t, page, 1)
	assert.Equal(t, "big", page[0].Base().ID)

	page, total = Apply(objs, Options{Field: FieldName, Offset: 2, Limit: 5})
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"big"}, ids(page))

	page, _ = Apply(objs, Options{Offset: 10})
	assert.Empty(t, page)
	assert.Equal(t, []string{"big", "none", "small"}, ids(objs), "input is not reordered")
}
