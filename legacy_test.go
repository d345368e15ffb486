package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft04Disallow(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"disallow": ["string"]
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(5).IsValid())
	assert.False(t, schema.Validate("nope").IsValid())
}

func TestDraft04DisallowRejectsIntegerUnderNumber(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"disallow": ["number"]
	}`))
	require.NoError(t, err)

	assert.False(t, schema.Validate(5).IsValid())
	assert.False(t, schema.Validate(5.5).IsValid())
	assert.True(t, schema.Validate("ok").IsValid())
}

func TestDraft04Extends(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"extends": [
			{"type": "object"},
			{"required": ["name"]}
		]
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(map[string]any{"name": "Alice"}).IsValid())
	assert.False(t, schema.Validate(map[string]any{}).IsValid())
	assert.False(t, schema.Validate("not an object").IsValid())
}

func TestDraft03DivisibleBy(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-03/schema#",
		"divisibleBy": 5
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(10).IsValid())
	result := schema.Validate(7)
	assert.False(t, result.IsValid())
	for _, evalErr := range result.Errors {
		assert.Equal(t, "divisibleBy", evalErr.Keyword)
	}
}

func TestLegacyDependenciesPropertyArray(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"dependencies": {
			"creditCard": ["billingAddress"]
		}
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(map[string]any{}).IsValid())
	assert.True(t, schema.Validate(map[string]any{"creditCard": "1234", "billingAddress": "here"}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"creditCard": "1234"}).IsValid())
}

func TestLegacyDependenciesSchema(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"dependencies": {
			"creditCard": {
				"properties": {"billingAddress": {"type": "string"}},
				"required": ["billingAddress"]
			}
		}
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(map[string]any{"creditCard": "1234", "billingAddress": "here"}).IsValid())
	assert.False(t, schema.Validate(map[string]any{"creditCard": "1234"}).IsValid())
}

func TestPropertyDependenciesSkippedWhenUndeclared(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"type": "object",
		"propertyDependencies": {
			"country": {
				"us": {"required": ["state"]}
			}
		}
	}`))
	require.NoError(t, err)

	// No "country" property at all: keyword is inapplicable.
	assert.True(t, schema.Validate(map[string]any{}).IsValid())

	// "country" present but value has no declared case: silently skipped.
	assert.True(t, schema.Validate(map[string]any{"country": "de"}).IsValid())

	// Declared case, constraint satisfied.
	assert.True(t, schema.Validate(map[string]any{"country": "us", "state": "CA"}).IsValid())

	// Declared case, constraint violated.
	assert.False(t, schema.Validate(map[string]any{"country": "us"}).IsValid())
}

func TestPropertyDependenciesSkipsNonStringifiableValues(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"type": "object",
		"propertyDependencies": {
			"meta": {
				"x": {"const": false}
			}
		}
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(map[string]any{"meta": map[string]any{"nested": true}}).IsValid())
	assert.True(t, schema.Validate(map[string]any{"meta": []any{1, 2, 3}}).IsValid())
}

func TestDraft04BooleanExclusiveMaximum(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"maximum": 10,
		"exclusiveMaximum": true
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(9).IsValid())
	assert.False(t, schema.Validate(10).IsValid())
	assert.False(t, schema.Validate(11).IsValid())
}

func TestDraft04BooleanExclusiveMinimum(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"minimum": 0,
		"exclusiveMinimum": true
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(1).IsValid())
	assert.False(t, schema.Validate(0).IsValid())
	assert.False(t, schema.Validate(-1).IsValid())
}

func TestDraft04MaximumWithFalseExclusiveMaximumStaysInclusive(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"maximum": 10,
		"exclusiveMaximum": false
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(10).IsValid())
	assert.False(t, schema.Validate(11).IsValid())
}

func TestDraft2020NumericExclusiveMaximumUnaffectedByLegacyPath(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"exclusiveMaximum": 10
	}`))
	require.NoError(t, err)

	assert.True(t, schema.Validate(9).IsValid())
	assert.False(t, schema.Validate(10).IsValid())
}

func TestStringifyPropertyDependencyValue(t *testing.T) {
	if _, ok := stringifyPropertyDependencyValue(map[string]interface{}{"a": 1}); ok {
		t.Errorf("expected map values to be skipped")
	}
	if _, ok := stringifyPropertyDependencyValue([]interface{}{1, 2}); ok {
		t.Errorf("expected slice values to be skipped")
	}
	if _, ok := stringifyPropertyDependencyValue(nil); ok {
		t.Errorf("expected nil to be skipped")
	}
	if s, ok := stringifyPropertyDependencyValue("us"); !ok || s != "us" {
		t.Errorf("expected string to stringify to itself, got %q, %v", s, ok)
	}
	if s, ok := stringifyPropertyDependencyValue(true); !ok || s != "true" {
		t.Errorf("expected bool true to stringify to \"true\", got %q, %v", s, ok)
	}
}
