package jsonschema

// evaluateExclusiveMaximum checks the draft-6+ numeric form of
// "exclusiveMaximum": the instance must be strictly less than the given
// value. The pre-draft-6 boolean sibling form ({"maximum": N,
// "exclusiveMaximum": true}) is handled instead by evaluateMaximum, which
// reads the same field and switches maximum's own bound to exclusive; when
// ExclusiveMaximum carries a boolean rather than a number there is nothing
// further for this keyword to check on its own.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-exclusivemaximum
func evaluateExclusiveMaximum(schema *Schema, value *Rat) *EvaluationError {
	if schema.ExclusiveMaximum == nil || schema.ExclusiveMaximum.Value == nil {
		return nil
	}

	bound := schema.ExclusiveMaximum.Value
	if value.Cmp(bound.Rat) >= 0 {
		return NewEvaluationError("exclusiveMaximum", "exclusive_maximum_mismatch", "{value} should be less than {exclusive_maximum}", map[string]interface{}{
			"exclusive_maximum": FormatRat(bound),
			"value":             FormatRat(value),
		})
	}
	return nil
}
