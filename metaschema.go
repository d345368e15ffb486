package jsonschema

import "fmt"

// verifyAgainstMetaSchema runs a structural (not textual) check of a
// compiled schema against the keyword shape its effective draft requires.
// This is a lightweight bootstrap rather than validating against the full
// official meta-schema documents: it checks the invariants that actually
// catch malformed schemas in practice (type of each keyword's value,
// draft-appropriate keyword presence) without embedding ~7 drafts' worth of
// meta-schema JSON. Opt in via Compiler.VerifyMetaSchema.
func verifyAgainstMetaSchema(schema *Schema) error {
	if schema == nil || schema.Boolean != nil {
		return nil
	}

	draft := schema.effectiveDraft()
	dialect := makeDialect(draft, schema.Vocabulary)

	var problems []string
	walkMetaSchema(schema, dialect, draft, "#", &problems)

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMetaSchemaViolation, problems[0])
}

// walkMetaSchema recursively checks one schema node and the subschemas under
// $defs, properties, allOf/anyOf/oneOf, not, if/then/else, items, contains,
// additionalProperties and unevaluatedProperties/unevaluatedItems, appending
// every problem it finds. Other subschema keywords (prefixItems,
// patternProperties, dependentSchemas and the like) are not visited, and
// verifyAgainstMetaSchema reports only the first problem collected.
func walkMetaSchema(schema *Schema, dialect *Dialect, draft Draft, path string, problems *[]string) {
	if schema == nil || schema.Boolean != nil {
		return
	}

	if len(schema.Type) > 0 {
		for _, t := range schema.Type {
			if !isKnownInstanceType(t) {
				*problems = append(*problems, fmt.Sprintf("%s: type %q is not a recognized instance type", path, t))
			}
		}
	}

	if schema.Ref != "" && !dialect.Has("$ref") {
		*problems = append(*problems, fmt.Sprintf("%s: $ref is not part of the %s dialect", path, draft))
	}
	if schema.RecursiveRef != "" && !dialect.Has("$recursiveRef") {
		*problems = append(*problems, fmt.Sprintf("%s: $recursiveRef is not valid outside draft 2019-09", path))
	}
	if schema.DynamicRef != "" && !dialect.Has("$dynamicRef") {
		*problems = append(*problems, fmt.Sprintf("%s: $dynamicRef requires draft 2020-12 or later", path))
	}
	if len(schema.PrefixItems) > 0 && !dialect.Has("prefixItems") {
		*problems = append(*problems, fmt.Sprintf("%s: prefixItems requires draft 2020-12 or later", path))
	}

	if schema.MultipleOf != nil && schema.MultipleOf.Sign() <= 0 {
		*problems = append(*problems, fmt.Sprintf("%s: multipleOf must be strictly greater than 0", path))
	}
	if schema.DivisibleBy != nil && schema.DivisibleBy.Sign() <= 0 {
		*problems = append(*problems, fmt.Sprintf("%s: divisibleBy must be strictly greater than 0", path))
	}
	if idErr := evaluateID(schema); idErr != nil {
		*problems = append(*problems, fmt.Sprintf("%s: %s", path, idErr.Error()))
	}

	for name, def := range schema.Defs {
		walkMetaSchema(def, dialect, draft, path+"/$defs/"+name, problems)
	}
	if schema.Properties != nil {
		for name, prop := range *schema.Properties {
			walkMetaSchema(prop, dialect, draft, path+"/properties/"+name, problems)
		}
	}
	for i, sub := range schema.AllOf {
		walkMetaSchema(sub, dialect, draft, fmt.Sprintf("%s/allOf/%d", path, i), problems)
	}
	for i, sub := range schema.AnyOf {
		walkMetaSchema(sub, dialect, draft, fmt.Sprintf("%s/anyOf/%d", path, i), problems)
	}
	for i, sub := range schema.OneOf {
		walkMetaSchema(sub, dialect, draft, fmt.Sprintf("%s/oneOf/%d", path, i), problems)
	}
	walkMetaSchema(schema.Not, dialect, draft, path+"/not", problems)
	walkMetaSchema(schema.If, dialect, draft, path+"/if", problems)
	walkMetaSchema(schema.Then, dialect, draft, path+"/then", problems)
	walkMetaSchema(schema.Else, dialect, draft, path+"/else", problems)
	walkMetaSchema(schema.Items, dialect, draft, path+"/items", problems)
	walkMetaSchema(schema.Contains, dialect, draft, path+"/contains", problems)
	walkMetaSchema(schema.AdditionalProperties, dialect, draft, path+"/additionalProperties", problems)
	walkMetaSchema(schema.UnevaluatedProperties, dialect, draft, path+"/unevaluatedProperties", problems)
	walkMetaSchema(schema.UnevaluatedItems, dialect, draft, path+"/unevaluatedItems", problems)
}

func isKnownInstanceType(t string) bool {
	switch t {
	case "null", "boolean", "object", "array", "number", "string", "integer", "any":
		return true
	default:
		return false
	}
}
