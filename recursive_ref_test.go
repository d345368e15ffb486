package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecursiveRefBookending exercises the 2019-09 "bookending" rule: a
// $recursiveRef resolves to the outermost schema in the dynamic scope that
// declares $recursiveAnchor: true, not merely its statically resolved target.
func TestRecursiveRefBookending(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"$id": "https://example.com/tree",
		"$recursiveAnchor": true,
		"type": "object",
		"properties": {
			"children": {
				"type": "array",
				"items": {"$recursiveRef": "#"}
			}
		}
	}`))
	require.NoError(t, err)

	valid := map[string]any{
		"children": []any{
			map[string]any{"children": []any{}},
		},
	}
	assert.True(t, schema.Validate(valid).IsValid())

	invalid := map[string]any{
		"children": []any{
			map[string]any{"children": "not an array"},
		},
	}
	assert.False(t, schema.Validate(invalid).IsValid())
}

func TestRecursiveRefWithoutAnchorFallsBackToStaticResolution(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"$id": "https://example.com/list",
		"type": "array",
		"items": {"$recursiveRef": "#"}
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate([]any{[]any{}, []any{}}).IsValid())
	assert.False(t, schema.Validate([]any{"nope"}).IsValid())
}

func TestEvaluationDepthGuardStopsInfiniteRefCycle(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id": "https://example.com/cycle",
		"$defs": {
			"a": {"$ref": "#/$defs/b"},
			"b": {"$ref": "#/$defs/a"}
		},
		"$ref": "#/$defs/a"
	}`))
	require.NoError(t, err)

	result := schema.Validate(map[string]any{})
	assert.False(t, result.IsValid())
}
