package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineage_LinkAndReparent(t *testing.T) {
	t.Parallel()

	l := NewLineage()
	require.True(t, l.Link("elv", "sjn"))
	require.True(t, l.Link("elv", "qya"))
	require.True(t, l.Link("elv", "sjn"), "relinking the same edge is a no-op")
	assert.Equal(t, []string{"sjn", "qya"}, l.Children("elv"))

	require.True(t, l.Link("gre", "sjn"))
	p, ok := l.Parent("sjn")
	require.True(t, ok)
	assert.Equal(t, "gre", p)
	assert.Equal(t, []string{"qya"}, l.Children("elv"))
	assert.Equal(t, []string{"sjn"}, l.Children("gre"))
	assert.Equal(t, 2, l.Len())
}

func TestLineage_RefusesCycles(t *testing.T) {
	t.Parallel()

	l := NewLineage()
	require.True(t, l.Link("a", "b"))
	require.True(t, l.Link("b", "c"))

	assert.False(t, l.Link("c", "a"))
	assert.False(t, l.Link("a", "a"))
	assert.False(t, l.Link("", "a"))

	_, ok := l.Parent("a")
	assert.False(t, ok)
}

func TestLineage_UnlinkAndReset(t *testing.T) {
	t.Parallel()

	l := NewLineage()
	l.Link("a", "b")
	l.Link("a", "c")

	kids := l.Children("a")
	kids[0] = "mutated"
	assert.Equal(t, []string{"b", "c"}, l.Children("a"), "Children returns a copy")

	l.Unlink("b")
	l.Unlink("b")
	assert.Equal(t, []string{"c"}, l.Children("a"))

	l.Reset()
	assert.Zero(t, l.Len())
	assert.Nil(t, l.Children("a"))
}
