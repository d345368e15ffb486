package jsonschema

import (
	"fmt"
	"strings"
)

// evaluateDisallow checks the draft-03/04 "disallow" keyword, the inverse of
// "type": the instance must NOT match any of the listed types.
//
// Reference: draft-03/04 §5.25 ("disallow").
func evaluateDisallow(schema *Schema, instance interface{}) *EvaluationError {
	if len(schema.Disallow) == 0 {
		return nil
	}

	instanceType := getDataType(instance)

	for _, disallowed := range schema.Disallow {
		if disallowed == "number" && instanceType == "integer" {
			return NewEvaluationError("disallow", "disallowed_type", "Value is {received} but type {expected} is disallowed", map[string]interface{}{
				"expected": disallowed,
				"received": instanceType,
			})
		}
		if instanceType == disallowed {
			return NewEvaluationError("disallow", "disallowed_type", "Value is {received} but type {expected} is disallowed", map[string]interface{}{
				"expected": disallowed,
				"received": instanceType,
			})
		}
	}

	return nil
}

// evaluateExtends checks the draft-03/04 "extends" keyword: the instance
// must additionally satisfy every schema listed, exactly like allOf.
//
// Reference: draft-03/04 §5.26 ("extends").
func evaluateExtends(schema *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, *EvaluationError) {
	if len(schema.Extends) == 0 {
		return nil, nil
	}

	invalidIndexes := []string{}
	results := []*EvaluationResult{}

	for i, subSchema := range schema.Extends {
		if subSchema == nil {
			continue
		}
		result, schemaEvaluatedProps, schemaEvaluatedItems := subSchema.evaluate(instance, dynamicScope)
		mergeStringMaps(evaluatedProps, schemaEvaluatedProps)
		mergeIntMaps(evaluatedItems, schemaEvaluatedItems)

		if result != nil {
			results = append(results, result.SetEvaluationPath(fmt.Sprintf("/extends/%d", i)).
				SetSchemaLocation(schema.GetSchemaLocation(fmt.Sprintf("/extends/%d", i))).
				SetInstanceLocation(""),
			)
			if !result.IsValid() {
				invalidIndexes = append(invalidIndexes, fmt.Sprintf("%d", i))
			}
		}
	}

	if len(invalidIndexes) == 0 {
		return results, nil
	}

	return results, NewEvaluationError("extends", "extends_mismatch", "Value does not match the extends schema at index {indexs}", map[string]interface{}{
		"indexs": strings.Join(invalidIndexes, ", "),
	})
}

// evaluateDivisibleBy checks the draft-03 "divisibleBy" keyword, a plain
// alias of "multipleOf" kept separate only so its error reports under its
// own keyword name.
//
// Reference: draft-03 §5.24 ("divisibleBy").
func evaluateDivisibleBy(schema *Schema, value *Rat) *EvaluationError {
	if schema.DivisibleBy == nil {
		return nil
	}
	alias := &Schema{MultipleOf: schema.DivisibleBy}
	err := evaluateMultipleOf(alias, value)
	if err == nil {
		return nil
	}
	return NewEvaluationError("divisibleBy", err.Code, err.Message, err.Params)
}

// evaluateDependencies checks the generic pre-2019-09 "dependencies"
// keyword: each entry is either a property-name array (present property
// requires the listed sibling properties) or a schema (present property
// requires the whole instance to validate against the given schema).
//
// Reference: draft-04/06/07 §6.5.7 ("dependencies").
func evaluateDependencies(schema *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, *EvaluationError) {
	if len(schema.Dependencies) == 0 {
		return nil, nil
	}

	objData, ok := instance.(map[string]interface{})
	if !ok {
		return nil, nil
	}

	results := []*EvaluationResult{}
	missingByProp := map[string][]string{}
	invalidProps := []string{}

	for propName, dep := range schema.Dependencies {
		if _, present := objData[propName]; !present || dep == nil {
			continue
		}

		if dep.Schema != nil {
			result, schemaEvaluatedProps, schemaEvaluatedItems := dep.Schema.evaluate(objData, dynamicScope)
			if result != nil {
				results = append(results, result.SetEvaluationPath(fmt.Sprintf("/dependencies/%s", propName)).
					SetSchemaLocation(schema.GetSchemaLocation(fmt.Sprintf("/dependencies/%s", propName))).
					SetInstanceLocation(""),
				)
			}
			if result.IsValid() {
				mergeStringMaps(evaluatedProps, schemaEvaluatedProps)
				mergeIntMaps(evaluatedItems, schemaEvaluatedItems)
			} else {
				invalidProps = append(invalidProps, propName)
			}
			continue
		}

		for _, required := range dep.Properties {
			if _, ok := objData[required]; !ok {
				missingByProp[propName] = append(missingByProp[propName], required)
			}
		}
	}

	if len(missingByProp) == 0 && len(invalidProps) == 0 {
		return results, nil
	}

	parts := make([]string, 0, len(missingByProp)+len(invalidProps))
	for prop, missing := range missingByProp {
		parts = append(parts, fmt.Sprintf("'%s' requires %s", prop, strings.Join(missing, ", ")))
	}
	for _, prop := range invalidProps {
		parts = append(parts, fmt.Sprintf("'%s' requires schema dependency to be satisfied", prop))
	}

	return results, NewEvaluationError("dependencies", "dependencies_mismatch", "Dependency constraints not satisfied: {details}", map[string]interface{}{
		"details": strings.Join(parts, "; "),
	})
}

// evaluatePropertyDependencies applies the non-standard propertyDependencies
// extension: propName -> (stringified value -> schema). When the instance
// doesn't have the property, or its value isn't one of the declared cases,
// or the value isn't a type that can be meaningfully stringified, the
// keyword is silently skipped rather than treated as a validation failure —
// hosts that don't use this extension must never see it turn into a
// spurious error.
func evaluatePropertyDependencies(schema *Schema, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, *EvaluationError) {
	if len(schema.PropertyDependencies) == 0 {
		return nil, nil
	}

	objData, ok := instance.(map[string]interface{})
	if !ok {
		return nil, nil
	}

	results := []*EvaluationResult{}
	invalidProps := []string{}

	for propName, cases := range schema.PropertyDependencies {
		rawValue, present := objData[propName]
		if !present {
			continue
		}
		key, ok := stringifyPropertyDependencyValue(rawValue)
		if !ok {
			continue
		}
		caseSchema, declared := cases[key]
		if !declared || caseSchema == nil {
			continue
		}

		result, schemaEvaluatedProps, schemaEvaluatedItems := caseSchema.evaluate(objData, dynamicScope)
		if result != nil {
			results = append(results, result.SetEvaluationPath(fmt.Sprintf("/propertyDependencies/%s/%s", propName, key)).
				SetSchemaLocation(schema.GetSchemaLocation(fmt.Sprintf("/propertyDependencies/%s/%s", propName, key))).
				SetInstanceLocation(""),
			)
		}
		if result.IsValid() {
			mergeStringMaps(evaluatedProps, schemaEvaluatedProps)
			mergeIntMaps(evaluatedItems, schemaEvaluatedItems)
		} else {
			invalidProps = append(invalidProps, propName)
		}
	}

	if len(invalidProps) == 0 {
		return results, nil
	}

	return results, NewEvaluationError("propertyDependencies", "property_dependencies_mismatch", "Properties {properties} do not meet their value-conditioned schema", map[string]interface{}{
		"properties": strings.Join(invalidProps, ", "),
	})
}

// stringifyPropertyDependencyValue converts the JSON scalar types commonly
// used to key a propertyDependencies case into a lookup string. Non-scalar
// values (objects, arrays) are not supported and cause the keyword to be
// skipped for that property, never reported as an error.
func stringifyPropertyDependencyValue(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		if t {
			return "true", true
		}
		return "false", true
	case map[string]interface{}, []interface{}, nil:
		return "", false
	case fmt.Stringer:
		return t.String(), true
	default:
		return fmt.Sprintf("%v", t), true
	}
}
