package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeDialectDraft4ExcludesModernKeywords(t *testing.T) {
	d := makeDialect(Draft4, nil)

	assert.True(t, d.Has("disallow"))
	assert.True(t, d.Has("extends"))
	assert.True(t, d.Has("id"))
	assert.False(t, d.Has("$id"))
	assert.False(t, d.Has("const"))
	assert.False(t, d.Has("if"))
	assert.False(t, d.Has("$recursiveRef"))
	assert.False(t, d.Has("$dynamicRef"))
	assert.False(t, d.Has("prefixItems"))
}

func TestMakeDialectDraft2019HasRecursiveRefOnly(t *testing.T) {
	d := makeDialect(Draft2019, nil)

	assert.True(t, d.Has("$recursiveRef"))
	assert.True(t, d.Has("$recursiveAnchor"))
	assert.False(t, d.Has("$dynamicRef"))
	assert.False(t, d.Has("prefixItems"))
	assert.False(t, d.Has("disallow"))
}

func TestMakeDialectDraft2020HasDynamicRefAndPrefixItems(t *testing.T) {
	d := makeDialect(Draft2020, nil)

	assert.True(t, d.Has("$dynamicRef"))
	assert.True(t, d.Has("$dynamicAnchor"))
	assert.True(t, d.Has("prefixItems"))
	assert.False(t, d.Has("$recursiveRef"))
	assert.False(t, d.Has("additionalItems"))
}

func TestMakeDialectIsMemoized(t *testing.T) {
	a := makeDialect(Draft2020, nil)
	b := makeDialect(Draft2020, nil)
	assert.Same(t, a, b)
}

func TestMakeDialectVocabularyOptOut(t *testing.T) {
	vocab := map[string]bool{vocabFormatAssertion: false}
	d := makeDialect(Draft2020, vocab)
	assert.True(t, d.Has("type"))
	assert.True(t, d.Has("format"))
}

func TestDialectOrderRespectsPredecessors(t *testing.T) {
	d := makeDialect(Draft2020, nil)
	present := map[string]bool{
		"additionalProperties": true,
		"properties":           true,
		"patternProperties":    true,
		"$ref":                 true,
		"$id":                  true,
	}
	ordered := d.OrderedKeywords(present)

	rankOf := func(name string) int {
		for i, n := range ordered {
			if n == name {
				return i
			}
		}
		t.Fatalf("keyword %q missing from ordered output", name)
		return -1
	}

	assert.Less(t, rankOf("$id"), rankOf("$ref"))
	assert.Less(t, rankOf("properties"), rankOf("additionalProperties"))
	assert.Less(t, rankOf("patternProperties"), rankOf("additionalProperties"))
}

func TestDialectOrderedKeywordsFiltersAbsent(t *testing.T) {
	d := makeDialect(Draft2020, nil)
	ordered := d.OrderedKeywords(map[string]bool{"type": true})
	assert.Equal(t, []string{"type"}, ordered)
}

func TestTopoSortBreaksCycles(t *testing.T) {
	specs := []keywordSpec{
		{name: "a", predecessors: []string{"b"}},
		{name: "b", predecessors: []string{"a"}},
	}
	order := topoSort(specs)
	assert.Len(t, order, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, order)
}
