package jsonschema

// evaluateExclusiveMinimum checks the draft-6+ numeric form of
// "exclusiveMinimum": the instance must be strictly greater than the given
// value. The pre-draft-6 boolean sibling form ({"minimum": N,
// "exclusiveMinimum": true}) is handled instead by evaluateMinimum, which
// reads the same field and switches minimum's own bound to exclusive; when
// ExclusiveMinimum carries a boolean rather than a number there is nothing
// further for this keyword to check on its own.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-exclusiveminimum
func evaluateExclusiveMinimum(schema *Schema, value *Rat) *EvaluationError {
	if schema.ExclusiveMinimum == nil || schema.ExclusiveMinimum.Value == nil {
		return nil
	}

	bound := schema.ExclusiveMinimum.Value
	if value.Cmp(bound.Rat) <= 0 {
		return NewEvaluationError("exclusiveMinimum", "exclusive_minimum_mismatch", "{value} should be greater than {exclusive_minimum}", map[string]interface{}{
			"exclusive_minimum": FormatRat(bound),
			"value":             FormatRat(value),
		})
	}
	return nil
}
