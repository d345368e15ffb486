package jsonschema

import (
	"sort"
	"strings"
	"sync"
)

// Vocabulary URIs, as declared by the 2019-09+ meta-schemas' $vocabulary maps.
const (
	vocabCore               = "https://json-schema.org/draft/2020-12/vocab/core"
	vocabApplicator         = "https://json-schema.org/draft/2020-12/vocab/applicator"
	vocabValidation         = "https://json-schema.org/draft/2020-12/vocab/validation"
	vocabMetaData           = "https://json-schema.org/draft/2020-12/vocab/meta-data"
	vocabFormatAnnotation   = "https://json-schema.org/draft/2020-12/vocab/format-annotation"
	vocabFormatAssertion    = "https://json-schema.org/draft/2020-12/vocab/format-assertion"
	vocabContent            = "https://json-schema.org/draft/2020-12/vocab/content"
	vocabUnevaluated        = "https://json-schema.org/draft/2020-12/vocab/unevaluated"
)

// keywordSpec is one row of the declarative (draft, vocabulary, keyword) →
// (checker, predecessors) table described in §4.5 and the "dialect as data"
// design note: rather than seven near-identical per-draft switch statements,
// every keyword's applicability and ordering constraints live in one table.
type keywordSpec struct {
	name         string
	vocab        string
	minDraft     Draft // keyword introduced at this draft
	maxDraft     Draft // "" means still current; otherwise last draft that has it
	predecessors []string
}

// keywordTable is the single declarative source for component E. Ordering
// dependencies mirror §4.5 exactly ($schema before $ref, $id before $ref/
// $anchor/$recursiveAnchor/$dynamicAnchor, additionalItems after items,
// additionalProperties after properties/patternProperties, maxContains/
// minContains after contains, then/else after if, unevaluated* after every
// applicator that can mark keys evaluated).
var keywordTable = []keywordSpec{
	{name: "$schema", vocab: vocabCore},
	{name: "$id", vocab: vocabCore, minDraft: Draft6, predecessors: []string{"$schema"}},
	{name: "id", vocab: vocabCore, maxDraft: Draft4, predecessors: []string{"$schema"}},
	{name: "$anchor", vocab: vocabCore, minDraft: Draft2019, predecessors: []string{"$id"}},
	{name: "$dynamicAnchor", vocab: vocabCore, minDraft: Draft2020, predecessors: []string{"$id"}},
	{name: "$recursiveAnchor", vocab: vocabCore, minDraft: Draft2019, maxDraft: Draft2019, predecessors: []string{"$id"}},
	{name: "$defs", vocab: vocabCore, minDraft: Draft2019},
	{name: "definitions", vocab: vocabCore, maxDraft: Draft7},
	{name: "$vocabulary", vocab: vocabCore, minDraft: Draft2019},
	{name: "$comment", vocab: vocabCore, minDraft: Draft7},
	{name: "$ref", vocab: vocabCore, predecessors: []string{"$schema", "$id", "id"}},
	{name: "$recursiveRef", vocab: vocabCore, minDraft: Draft2019, maxDraft: Draft2019, predecessors: []string{"$ref"}},
	{name: "$dynamicRef", vocab: vocabCore, minDraft: Draft2020, predecessors: []string{"$ref"}},

	{name: "type", vocab: vocabValidation},
	{name: "disallow", vocab: vocabValidation, maxDraft: Draft4, predecessors: []string{"type"}},
	{name: "enum", vocab: vocabValidation},
	{name: "const", vocab: vocabValidation, minDraft: Draft6},

	{name: "allOf", vocab: vocabApplicator, minDraft: Draft6, predecessors: []string{"$ref"}},
	{name: "extends", vocab: vocabApplicator, maxDraft: Draft4, predecessors: []string{"$ref"}},
	{name: "anyOf", vocab: vocabApplicator, minDraft: Draft6, predecessors: []string{"$ref"}},
	{name: "oneOf", vocab: vocabApplicator, minDraft: Draft6, predecessors: []string{"$ref"}},
	{name: "not", vocab: vocabApplicator, predecessors: []string{"$ref"}},
	{name: "if", vocab: vocabApplicator, minDraft: Draft7, predecessors: []string{"$ref"}},
	{name: "then", vocab: vocabApplicator, minDraft: Draft7, predecessors: []string{"if"}},
	{name: "else", vocab: vocabApplicator, minDraft: Draft7, predecessors: []string{"if"}},

	{name: "properties", vocab: vocabApplicator, predecessors: []string{"$ref"}},
	{name: "patternProperties", vocab: vocabApplicator, predecessors: []string{"$ref"}},
	{name: "additionalProperties", vocab: vocabApplicator, predecessors: []string{"properties", "patternProperties"}},
	{name: "propertyNames", vocab: vocabApplicator, minDraft: Draft6, predecessors: []string{"$ref"}},
	{name: "dependencies", vocab: vocabApplicator, maxDraft: Draft7, predecessors: []string{"properties"}},
	{name: "dependentRequired", vocab: vocabValidation, minDraft: Draft2019, predecessors: []string{"properties"}},
	{name: "dependentSchemas", vocab: vocabApplicator, minDraft: Draft2019, predecessors: []string{"properties"}},
	{name: "propertyDependencies", vocab: vocabApplicator, predecessors: []string{"properties"}},

	{name: "prefixItems", vocab: vocabApplicator, minDraft: Draft2020, predecessors: []string{"$ref"}},
	{name: "items", vocab: vocabApplicator, predecessors: []string{"$ref", "prefixItems"}},
	{name: "additionalItems", vocab: vocabApplicator, maxDraft: Draft2019, predecessors: []string{"items"}},
	{name: "contains", vocab: vocabApplicator, minDraft: Draft6, predecessors: []string{"$ref"}},
	{name: "maxContains", vocab: vocabValidation, minDraft: Draft2019, predecessors: []string{"contains"}},
	{name: "minContains", vocab: vocabValidation, minDraft: Draft2019, predecessors: []string{"contains"}},

	{name: "multipleOf", vocab: vocabValidation},
	{name: "divisibleBy", vocab: vocabValidation, maxDraft: Draft3},
	{name: "maximum", vocab: vocabValidation},
	{name: "exclusiveMaximum", vocab: vocabValidation},
	{name: "minimum", vocab: vocabValidation},
	{name: "exclusiveMinimum", vocab: vocabValidation},
	{name: "maxLength", vocab: vocabValidation},
	{name: "minLength", vocab: vocabValidation},
	{name: "pattern", vocab: vocabValidation},
	{name: "maxItems", vocab: vocabValidation},
	{name: "minItems", vocab: vocabValidation},
	{name: "uniqueItems", vocab: vocabValidation},
	{name: "maxProperties", vocab: vocabValidation, minDraft: Draft4},
	{name: "minProperties", vocab: vocabValidation, minDraft: Draft4},
	{name: "required", vocab: vocabValidation, predecessors: []string{"properties"}},

	{name: "format", vocab: vocabFormatAnnotation},
	{name: "contentEncoding", vocab: vocabContent, minDraft: Draft7},
	{name: "contentMediaType", vocab: vocabContent, minDraft: Draft7, predecessors: []string{"contentEncoding"}},
	{name: "contentSchema", vocab: vocabContent, minDraft: Draft7, predecessors: []string{"contentMediaType"}},

	{name: "title", vocab: vocabMetaData},
	{name: "description", vocab: vocabMetaData},
	{name: "default", vocab: vocabMetaData},
	{name: "deprecated", vocab: vocabMetaData, minDraft: Draft2019},
	{name: "readOnly", vocab: vocabMetaData, minDraft: Draft6},
	{name: "writeOnly", vocab: vocabMetaData, minDraft: Draft7},
	{name: "examples", vocab: vocabMetaData, minDraft: Draft6},

	{name: "unevaluatedItems", vocab: vocabUnevaluated, minDraft: Draft2019,
		predecessors: []string{"items", "additionalItems", "contains", "allOf", "anyOf", "oneOf", "not", "if", "then", "else"}},
	{name: "unevaluatedProperties", vocab: vocabUnevaluated, minDraft: Draft2019,
		predecessors: []string{"properties", "patternProperties", "additionalProperties", "allOf", "anyOf", "oneOf", "not", "if", "then", "else", "dependentSchemas"}},
}

// Dialect is the materialized, ordered keyword set for one (draft,
// vocabulary-map) combination: §4.5's "function that, given a schema
// object, yields an ordered sequence of (keyword, checker) pairs".
// Because keyword presence varies per schema instance but draft/vocabulary
// does not, the expensive part (topological sort) is computed once per
// (draft, vocabulary signature) and reused for every schema compiled under
// it; OrderedKeywords then filters that static order down to the keywords
// actually present on a given node.
type Dialect struct {
	draft Draft
	order []string       // full topological order of every applicable keyword
	rank  map[string]int // name -> position in order, for fast lookup
}

// Has reports whether keyword is active in this dialect at all (regardless
// of whether any particular schema instance uses it).
func (d *Dialect) Has(keyword string) bool {
	_, ok := d.rank[keyword]
	return ok
}

// OrderedKeywords filters the dialect's total order down to the keywords
// present (non-default) in present, a set supplied by the caller.
func (d *Dialect) OrderedKeywords(present map[string]bool) []string {
	out := make([]string, 0, len(present))
	for _, name := range d.order {
		if present[name] {
			out = append(out, name)
		}
	}
	return out
}

var dialectCache sync.Map // key: draft + "|" + sorted vocab signature -> *Dialect

// makeDialect builds (or returns the memoized) Dialect for a draft and an
// optional `$vocabulary` override map (vocabulary URI -> required?). A nil
// or empty vocab map means "every vocabulary this draft defines by
// default", matching plain schemas that don't declare $vocabulary
// themselves (only meta-schemas do).
func makeDialect(draft Draft, vocab map[string]bool) *Dialect {
	key := dialectCacheKey(draft, vocab)
	if cached, ok := dialectCache.Load(key); ok {
		return cached.(*Dialect)
	}

	applicable := make([]keywordSpec, 0, len(keywordTable))
	for _, spec := range keywordTable {
		if !draftSupports(draft, spec) {
			continue
		}
		if len(vocab) > 0 {
			if enabled, declared := vocab[spec.vocab]; declared && !enabled {
				continue
			}
		}
		applicable = append(applicable, spec)
	}

	order := topoSort(applicable)
	d := &Dialect{draft: draft, order: order, rank: make(map[string]int, len(order))}
	for i, name := range order {
		d.rank[name] = i
	}

	actual, _ := dialectCache.LoadOrStore(key, d)
	return actual.(*Dialect)
}

func dialectCacheKey(draft Draft, vocab map[string]bool) string {
	if len(vocab) == 0 {
		return string(draft)
	}
	keys := make([]string, 0, len(vocab))
	for k, v := range vocab {
		if v {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return string(draft) + "|" + strings.Join(keys, ",")
}

func draftSupports(draft Draft, spec keywordSpec) bool {
	if spec.minDraft != "" && draft.before(spec.minDraft) {
		return false
	}
	if spec.maxDraft != "" && draft.atLeast(spec.maxDraft) && draft != spec.maxDraft {
		return false
	}
	return true
}

// topoSort orders keywords by a depth-first topological sort over the
// predecessor relation. There is no separate sort by vocabulary group:
// keywords with no ordering constraint between them keep the table's own
// declaration order (which groups keywords by vocabulary already), so the
// result is the same on every run.
func topoSort(specs []keywordSpec) []string {
	index := make(map[string]int, len(specs))
	for i, s := range specs {
		index[s.name] = i
	}

	visited := make([]int8, len(specs)) // 0 unvisited, 1 in-progress, 2 done
	order := make([]string, 0, len(specs))

	var visit func(i int)
	visit = func(i int) {
		switch visited[i] {
		case 2:
			return
		case 1:
			return // cycle in the static table itself: break it, don't hang
		}
		visited[i] = 1
		for _, pred := range specs[i].predecessors {
			if j, ok := index[pred]; ok {
				visit(j)
			}
		}
		visited[i] = 2
		order = append(order, specs[i].name)
	}

	for i := range specs {
		visit(i)
	}
	return order
}
