package jsonschema

// evaluateMinimum checks the "minimum" keyword. As with maximum.go, its
// meaning depends on the effective draft: draft-6+ treats it as a plain
// inclusive lower bound; pre-draft-6 drafts read the sibling
// "exclusiveMinimum" boolean off this schema node and, when true, the bound
// here becomes exclusive instead of inclusive.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-minimum
func evaluateMinimum(schema *Schema, value *Rat) *EvaluationError {
	if schema.Minimum == nil || schema.Minimum.Rat == nil {
		return nil
	}

	if schema.effectiveDraft().before(Draft6) && schema.ExclusiveMinimum != nil && schema.ExclusiveMinimum.Value == nil && schema.ExclusiveMinimum.Bool {
		if value.Cmp(schema.Minimum.Rat) <= 0 {
			return NewEvaluationError("minimum", "value_below_exclusive_minimum", "{value} should be greater than {minimum}", map[string]interface{}{
				"value":   FormatRat(value),
				"minimum": FormatRat(schema.Minimum),
			})
		}
		return nil
	}

	if value.Cmp(schema.Minimum.Rat) < 0 {
		return NewEvaluationError("minimum", "value_below_minimum", "{value} should be at least {minimum}", map[string]interface{}{
			"value":   FormatRat(value),
			"minimum": FormatRat(schema.Minimum),
		})
	}
	return nil
}
