package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguageScope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   LanguageScope
		wantOK bool
	}{
		{"family", ScopeFamily, true},
		{"M", ScopeMacrolanguage, true},
		{"I", ScopeLanguage, true},
		{"Individual Language", ScopeLanguage, true},
		{"dialect", ScopeDialect, true},
		{"S", ScopeSpecialCode, true},
		{"bogus", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseLanguageScope(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTerritoryScope_IsGroup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scope TerritoryScope
		want  bool
	}{
		{TerritoryWorld, true},
		{TerritoryContinent, true},
		{TerritoryRegion, true},
		{TerritorySubcontinent, true},
		{TerritoryCountry, false},
		{TerritoryDependency, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.scope.IsGroup())
		})
	}
}

func TestCollectorType_Rank(t *testing.T) {
	t.Parallel()

	assert.Less(t, CollectorGovernment.Rank(), CollectorStudy.Rank())
	assert.Less(t, CollectorStudy.Rank(), CollectorCLDR.Rank())
	assert.Less(t, CollectorCLDR.Rank(), CollectorType("").Rank())
}

func TestParseLanguageSource(t *testing.T) {
	t.Parallel()

	got, ok := ParseLanguageSource("glottolog")
	assert.True(t, ok)
	assert.Equal(t, SourceGlottolog, got)

	_, ok = ParseLanguageSource("ethnologue")
	assert.False(t, ok)
}

func TestParseObjectType(t *testing.T) {
	t.Parallel()

	got, ok := ParseObjectType("writingsystem")
	assert.True(t, ok)
	assert.Equal(t, ObjectWritingSystem, got)
	assert.Len(t, ObjectTypes, 7)
}
