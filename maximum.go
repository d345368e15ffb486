package jsonschema

// evaluateMaximum checks the "maximum" keyword. Its meaning depends on the
// effective draft: draft-6 and later treat it as a plain inclusive upper
// bound, with exclusivity carried separately by the numeric exclusiveMaximum
// keyword; pre-draft-6 drafts instead read the sibling "exclusiveMaximum"
// boolean off this same schema node, and when it's true the bound here
// becomes exclusive instead of inclusive.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-maximum
func evaluateMaximum(schema *Schema, value *Rat) *EvaluationError {
	if schema.Maximum == nil || schema.Maximum.Rat == nil {
		return nil
	}

	if schema.effectiveDraft().before(Draft6) && schema.ExclusiveMaximum != nil && schema.ExclusiveMaximum.Value == nil && schema.ExclusiveMaximum.Bool {
		if value.Cmp(schema.Maximum.Rat) >= 0 {
			return NewEvaluationError("maximum", "value_above_exclusive_maximum", "{value} should be less than {maximum}", map[string]interface{}{
				"value":   FormatRat(value),
				"maximum": FormatRat(schema.Maximum),
			})
		}
		return nil
	}

	if value.Cmp(schema.Maximum.Rat) > 0 {
		return NewEvaluationError("maximum", "value_above_maximum", "{value} should be at most {maximum}", map[string]interface{}{
			"value":   FormatRat(value),
			"maximum": FormatRat(schema.Maximum),
		})
	}
	return nil
}
