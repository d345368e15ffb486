package jsonschema

import "net/url"

// evaluateID checks that a schema's resolved identifier (`$id`, or its
// draft-03/04 spelling `id`) is a well-formed absolute URI without a
// fragment, per the core vocabulary's identification rules. It runs against
// the already-resolved `schema.uri` (computed during compilation from the
// declared id and the ancestor base-URI chain) rather than the raw,
// possibly-relative keyword value, since a relative `$id` is valid JSON
// Schema and only the resolved form is required to be absolute.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-the-id-keyword
func evaluateID(schema *Schema) *EvaluationError {
	if schema.ID == "" && schema.LegacyID == "" {
		return nil
	}
	if schema.uri == "" {
		return nil
	}

	uri, err := url.Parse(schema.uri)
	if err != nil {
		return NewEvaluationError("$id", "id_invalid", "Invalid `$id` URI: {error}", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if !uri.IsAbs() {
		return NewEvaluationError("$id", "id_not_absolute", "`$id` must be an absolute URI without a fragment.")
	}

	if uri.Fragment != "" {
		return NewEvaluationError("$id", "id_contains_fragment", "`$id` must not contain a fragment.")
	}

	return nil
}
