package jsonschema

// maxEvaluationDepth bounds dynamic-scope recursion during evaluation. Go
// cannot recover() from a genuine stack overflow, so a cyclic $ref/
// $recursiveRef/$dynamicRef chain must be caught by a depth budget checked
// before the call stack actually blows up, not after.
const maxEvaluationDepth = 1000

// Validate checks if the given instance conforms to the schema.
func (s *Schema) Validate(instance interface{}) *EvaluationResult {
	dynamicScope := NewDynamicScope()
	result, _, _ := s.evaluate(instance, dynamicScope)

	return result
}

func (s *Schema) evaluate(instance interface{}, dynamicScope *DynamicScope) (*EvaluationResult, map[string]bool, map[int]bool) {
	if dynamicScope.Size() >= maxEvaluationDepth {
		result := NewEvaluationResult(s)
		//nolint:errcheck
		result.AddError(NewEvaluationError("$ref", "stack_overflow", "StackOverflow: schema contains infinite $ref cycle"))
		return result, map[string]bool{}, map[int]bool{}
	}

	dynamicScope.Push(s)
	result := NewEvaluationResult(s)

	evaluatedProps := make(map[string]bool)
	evaluatedItems := make(map[int]bool)

	if s.Boolean != nil {
		// Check if the schema is a boolean
		if err := s.evaluateBoolean(instance, evaluatedProps, evaluatedItems); err != nil {
			//nolint:errcheck
			result.AddError(err)
		}
	} else {
		// Compile patterns for PatternProperties if not already compiled
		if s.PatternProperties != nil {
			s.compilePatterns()
		}

		// The $ref family resolves and recurses into another schema node
		// entirely; its own keywords run in that node's evaluate() call, not
		// here, so it is handled ahead of (and independently from) the
		// dialect-ordered dispatch below.
		s.evaluateRefs(instance, dynamicScope, result, evaluatedProps, evaluatedItems)

		dialect := makeDialect(s.effectiveDraft(), s.Vocabulary)
		for _, keyword := range dialect.OrderedKeywords(s.presentKeywords()) {
			s.evaluateKeyword(keyword, instance, evaluatedProps, evaluatedItems, dynamicScope, result)
		}
	}

	// Pop the schema from the dynamic scope
	dynamicScope.Pop()

	return result, evaluatedProps, evaluatedItems
}

// evaluateRefs resolves and recurses into $ref, $dynamicRef, and
// $recursiveRef, merging each target's evaluated-properties/items
// annotations back into this node's. These three precede dialect dispatch
// unconditionally: a resolved reference is not itself a "present keyword"
// check on this node, it is a pointer to keywords living elsewhere.
func (s *Schema) evaluateRefs(instance interface{}, dynamicScope *DynamicScope, result *EvaluationResult, evaluatedProps map[string]bool, evaluatedItems map[int]bool) {
	if s.ResolvedRef != nil {
		refResult, props, items := s.ResolvedRef.evaluate(instance, dynamicScope)

		if refResult != nil {
			//nolint:errcheck
			result.AddDetail(refResult)

			if !refResult.IsValid() {
				//nolint:errcheck
				result.AddError(
					NewEvaluationError("$ref", "ref_mismatch", "Value does not match the reference schema"),
				)
			}
		}

		mergeStringMaps(evaluatedProps, props)
		mergeIntMaps(evaluatedItems, items)
	}

	if s.ResolvedDynamicRef != nil {
		anchorSchema := s.ResolvedDynamicRef
		_, anchor := splitRef(s.DynamicRef)
		if !isJSONPointer(anchor) {
			dynamicAnchor := s.ResolvedDynamicRef.DynamicAnchor
			if dynamicAnchor != "" {
				if schema := dynamicScope.LookupDynamicAnchor(dynamicAnchor); schema != nil {
					anchorSchema = schema
				}
			}
		}

		dynamicRefResult, props, items := anchorSchema.evaluate(instance, dynamicScope)
		if dynamicRefResult != nil {
			//nolint:errcheck
			result.AddDetail(dynamicRefResult)

			if !dynamicRefResult.IsValid() {
				//nolint:errcheck
				result.AddError(
					NewEvaluationError("$dynamicRef", "dynamic_ref_mismatch", "Value does not match the dynamic reference schema"),
				)
			}
		}

		mergeStringMaps(evaluatedProps, props)
		mergeIntMaps(evaluatedItems, items)
	}

	if s.ResolvedRecursiveRef != nil {
		anchorSchema := s.ResolvedRecursiveRef
		if schema := dynamicScope.LookupOutermostRecursiveAnchor(); schema != nil {
			anchorSchema = schema
		}

		recursiveRefResult, props, items := anchorSchema.evaluate(instance, dynamicScope)
		if recursiveRefResult != nil {
			//nolint:errcheck
			result.AddDetail(recursiveRefResult)

			if !recursiveRefResult.IsValid() {
				//nolint:errcheck
				result.AddError(
					NewEvaluationError("$recursiveRef", "recursive_ref_mismatch", "Value does not match the recursive reference schema"),
				)
			}
		}

		mergeStringMaps(evaluatedProps, props)
		mergeIntMaps(evaluatedItems, items)
	}
}

// presentKeywords reports, for every keyword the dialect table knows about,
// whether this schema node actually sets it. Dialect.OrderedKeywords uses
// this to filter its draft-gated topological order down to the keywords
// this node needs dispatched. A handful of keywords share one evaluator
// (if/then/else, contains/minContains/maxContains,
// contentEncoding/contentMediaType/contentSchema) and so share one
// representative trigger here; evaluateKeyword dispatches all of them
// together under that representative's case.
func (s *Schema) presentKeywords() map[string]bool {
	return map[string]bool{
		"type":                  s.Type != nil,
		"disallow":              len(s.Disallow) > 0,
		"enum":                  s.Enum != nil,
		"const":                 s.Const != nil,
		"allOf":                 s.AllOf != nil,
		"extends":               len(s.Extends) > 0,
		"anyOf":                 s.AnyOf != nil,
		"oneOf":                 s.OneOf != nil,
		"not":                   s.Not != nil,
		"if":                    s.If != nil || s.Then != nil || s.Else != nil,
		"prefixItems":           len(s.PrefixItems) > 0,
		"items":                 s.Items != nil,
		"contains":              s.Contains != nil || (s.MaxContains != nil && s.MinContains != nil),
		"maxItems":              s.MaxItems != nil,
		"minItems":              s.MinItems != nil,
		"uniqueItems":           s.UniqueItems != nil,
		"multipleOf":            s.MultipleOf != nil,
		"divisibleBy":           s.DivisibleBy != nil,
		"maximum":               s.Maximum != nil,
		"exclusiveMaximum":      s.ExclusiveMaximum != nil,
		"minimum":               s.Minimum != nil,
		"exclusiveMinimum":      s.ExclusiveMinimum != nil,
		"maxLength":             s.MaxLength != nil,
		"minLength":             s.MinLength != nil,
		"pattern":               s.Pattern != nil,
		"format":                s.Format != nil,
		"properties":            s.Properties != nil,
		"patternProperties":     s.PatternProperties != nil,
		"additionalProperties":  s.AdditionalProperties != nil,
		"propertyNames":         s.PropertyNames != nil,
		"maxProperties":         s.MaxProperties != nil,
		"minProperties":         s.MinProperties != nil,
		"required":              len(s.Required) > 0,
		"dependentRequired":     len(s.DependentRequired) > 0,
		"dependentSchemas":      s.DependentSchemas != nil,
		"dependencies":          len(s.Dependencies) > 0,
		"propertyDependencies":  len(s.PropertyDependencies) > 0,
		"unevaluatedProperties": s.UnevaluatedProperties != nil,
		"unevaluatedItems":      s.UnevaluatedItems != nil,
		"contentEncoding":       s.ContentEncoding != nil || s.ContentMediaType != nil || s.ContentSchema != nil,
	}
}

// evaluateKeyword dispatches a single dialect-ordered keyword to its
// checker, folding the result/error into result and updating the
// evaluated-properties/items annotation maps the later unevaluated*
// keywords (always last in dialect order, since they depend on every
// other applicator) read from.
func (s *Schema) evaluateKeyword(keyword string, instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool, dynamicScope *DynamicScope, result *EvaluationResult) {
	switch keyword {
	case "type":
		if err := evaluateType(s, instance); err != nil {
			//nolint:errcheck
			result.AddError(err)
		}
	case "disallow":
		if err := evaluateDisallow(s, instance); err != nil {
			//nolint:errcheck
			result.AddError(err)
		}
	case "enum":
		if err := evaluateEnum(s, instance); err != nil {
			//nolint:errcheck
			result.AddError(err)
		}
	case "const":
		if err := evaluateConst(s, instance); err != nil {
			//nolint:errcheck
			result.AddError(err)
		}
	case "allOf":
		results, err := evaluateAllOf(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		addDetails(result, results)
		addError(result, err)
	case "extends":
		results, err := evaluateExtends(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		addDetails(result, results)
		addError(result, err)
	case "anyOf":
		results, err := evaluateAnyOf(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		addDetails(result, results)
		addError(result, err)
	case "oneOf":
		results, err := evaluateOneOf(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		addDetails(result, results)
		addError(result, err)
	case "not":
		notResult, err := evaluateNot(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		if notResult != nil {
			//nolint:errcheck
			result.AddDetail(notResult)
		}
		addError(result, err)
	case "if":
		results, err := evaluateConditional(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		addDetails(result, results)
		addError(result, err)
	case "prefixItems":
		if array, ok := instance.([]interface{}); ok {
			results, err := evaluatePrefixItems(s, array, evaluatedProps, evaluatedItems, dynamicScope)
			addDetails(result, results)
			addError(result, err)
		}
	case "items":
		if array, ok := instance.([]interface{}); ok {
			results, err := evaluateItems(s, array, evaluatedProps, evaluatedItems, dynamicScope)
			addDetails(result, results)
			addError(result, err)
		}
	case "contains":
		if array, ok := instance.([]interface{}); ok {
			results, err := evaluateContains(s, array, evaluatedProps, evaluatedItems, dynamicScope)
			addDetails(result, results)
			addError(result, err)
		}
	case "maxItems":
		if array, ok := instance.([]interface{}); ok {
			if err := evaluateMaxItems(s, array); err != nil {
				//nolint:errcheck
				result.AddError(err)
			}
		}
	case "minItems":
		if array, ok := instance.([]interface{}); ok {
			if err := evaluateMinItems(s, array); err != nil {
				//nolint:errcheck
				result.AddError(err)
			}
		}
	case "uniqueItems":
		if array, ok := instance.([]interface{}); ok && s.UniqueItems != nil && *s.UniqueItems {
			if err := evaluateUniqueItems(s, array); err != nil {
				//nolint:errcheck
				result.AddError(err)
			}
		}
	case "multipleOf", "divisibleBy", "maximum", "exclusiveMaximum", "minimum", "exclusiveMinimum":
		s.evaluateNumericKeyword(keyword, instance, result)
	case "maxLength", "minLength", "pattern":
		s.evaluateStringKeyword(keyword, instance, result)
	case "format":
		if err := evaluateFormat(s, instance); err != nil {
			//nolint:errcheck
			result.AddError(err)
		}
	case "properties":
		if object, ok := instance.(map[string]interface{}); ok {
			results, err := evaluateProperties(s, object, evaluatedProps, evaluatedItems, dynamicScope)
			addDetails(result, results)
			addError(result, err)
		}
	case "patternProperties":
		if object, ok := instance.(map[string]interface{}); ok {
			results, err := evaluatePatternProperties(s, object, evaluatedProps, evaluatedItems, dynamicScope)
			addDetails(result, results)
			addError(result, err)
		}
	case "additionalProperties":
		if object, ok := instance.(map[string]interface{}); ok {
			results, err := evaluateAdditionalProperties(s, object, evaluatedProps, evaluatedItems, dynamicScope)
			addDetails(result, results)
			addError(result, err)
		}
	case "propertyNames":
		if object, ok := instance.(map[string]interface{}); ok {
			results, err := evaluatePropertyNames(s, object, evaluatedProps, evaluatedItems, dynamicScope)
			addDetails(result, results)
			addError(result, err)
		}
	case "maxProperties":
		if object, ok := instance.(map[string]interface{}); ok {
			if err := evaluateMaxProperties(s, object); err != nil {
				//nolint:errcheck
				result.AddError(err)
			}
		}
	case "minProperties":
		if object, ok := instance.(map[string]interface{}); ok {
			if err := evaluateMinProperties(s, object); err != nil {
				//nolint:errcheck
				result.AddError(err)
			}
		}
	case "required":
		if object, ok := instance.(map[string]interface{}); ok {
			if err := evaluateRequired(s, object); err != nil {
				//nolint:errcheck
				result.AddError(err)
			}
		}
	case "dependentRequired":
		if object, ok := instance.(map[string]interface{}); ok {
			if err := evaluateDependentRequired(s, object); err != nil {
				//nolint:errcheck
				result.AddError(err)
			}
		}
	case "dependentSchemas":
		results, err := evaluateDependentSchemas(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		addDetails(result, results)
		addError(result, err)
	case "dependencies":
		results, err := evaluateDependencies(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		addDetails(result, results)
		addError(result, err)
	case "propertyDependencies":
		results, err := evaluatePropertyDependencies(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		addDetails(result, results)
		addError(result, err)
	case "unevaluatedProperties":
		results, err := evaluateUnevaluatedProperties(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		addDetails(result, results)
		addError(result, err)
	case "unevaluatedItems":
		results, err := evaluateUnevaluatedItems(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		addDetails(result, results)
		addError(result, err)
	case "contentEncoding":
		contentResult, err := evaluateContent(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		if contentResult != nil {
			//nolint:errcheck
			result.AddDetail(contentResult)
		}
		if err != nil {
			//nolint:errcheck
			result.AddError(err)
		}
	}
}

// evaluateNumericKeyword converts instance to a Rat once per call (the
// numeric keywords have no ordering dependency on one another in the
// dialect table, so each is dispatched independently rather than through a
// shared grouping function) and runs the one checker keyword names.
func (s *Schema) evaluateNumericKeyword(keyword string, instance interface{}, result *EvaluationResult) {
	dataType := getDataType(instance)
	if dataType != "number" && dataType != "integer" {
		return
	}

	value := NewRat(instance)
	if value == nil {
		//nolint:errcheck
		result.AddError(NewEvaluationError("type", "invalid_numberic", "Value is {received} but should be numeric", map[string]interface{}{
			"received": dataType,
		}))
		return
	}

	var err *EvaluationError
	switch keyword {
	case "multipleOf":
		err = evaluateMultipleOf(s, value)
	case "divisibleBy":
		err = evaluateDivisibleBy(s, value)
	case "maximum":
		err = evaluateMaximum(s, value)
	case "exclusiveMaximum":
		err = evaluateExclusiveMaximum(s, value)
	case "minimum":
		err = evaluateMinimum(s, value)
	case "exclusiveMinimum":
		err = evaluateExclusiveMinimum(s, value)
	}
	if err != nil {
		//nolint:errcheck
		result.AddError(err)
	}
}

// evaluateStringKeyword runs the one string checker keyword names, skipping
// silently when the instance isn't a string (the keyword simply doesn't
// apply rather than being an error).
func (s *Schema) evaluateStringKeyword(keyword string, instance interface{}, result *EvaluationResult) {
	value, ok := instance.(string)
	if !ok {
		return
	}

	var err *EvaluationError
	switch keyword {
	case "maxLength":
		err = evaluateMaxLength(s, value)
	case "minLength":
		err = evaluateMinLength(s, value)
	case "pattern":
		err = evaluatePattern(s, value)
	}
	if err != nil {
		//nolint:errcheck
		result.AddError(err)
	}
}

// addDetails and addError fold a keyword checker's ([]*EvaluationResult,
// *EvaluationError) return shape into result, skipping nils so callers in
// evaluateKeyword read as a flat list of one-line dispatches.
func addDetails(result *EvaluationResult, details []*EvaluationResult) {
	for _, d := range details {
		//nolint:errcheck
		result.AddDetail(d)
	}
}

func addError(result *EvaluationResult, err *EvaluationError) {
	if err != nil {
		//nolint:errcheck
		result.AddError(err)
	}
}

func (s *Schema) evaluateBoolean(instance interface{}, evaluatedProps map[string]bool, evaluatedItems map[int]bool) *EvaluationError {
	if s.Boolean == nil {
		return nil
	}

	if *s.Boolean {
		switch v := instance.(type) {
		case map[string]interface{}:
			for key := range v {
				evaluatedProps[key] = true
			}
		case []interface{}:
			for index := range v {
				evaluatedItems[index] = true
			}
		}
		return nil // No error, validation passes as the schema is true
	} else {
		return NewEvaluationError("schema", "false_schema_mismatch", "No values are allowed because the schema is set to 'false'")
	}
}

// DynamicScope struct defines a stack specifically for handling Schema types
type DynamicScope struct {
	schemas []*Schema // Slice storing pointers to Schema
}

// NewDynamicScope creates and returns a new empty DynamicScope
func NewDynamicScope() *DynamicScope {
	return &DynamicScope{schemas: make([]*Schema, 0)}
}

// Push adds a Schema to the dynamic scope
func (ds *DynamicScope) Push(schema *Schema) {
	ds.schemas = append(ds.schemas, schema)
}

// Pop removes and returns the top Schema from the dynamic scope
func (ds *DynamicScope) Pop() *Schema {
	if len(ds.schemas) == 0 {
		return nil // Or handle the error
	}
	lastIndex := len(ds.schemas) - 1
	schema := ds.schemas[lastIndex]
	ds.schemas = ds.schemas[:lastIndex]
	return schema
}

// Peek returns the top Schema without removing it
func (ds *DynamicScope) Peek() *Schema {
	if len(ds.schemas) == 0 {
		return nil // Or handle the error
	}
	return ds.schemas[len(ds.schemas)-1]
}

// IsEmpty checks if the dynamic scope is empty
func (ds *DynamicScope) IsEmpty() bool {
	return len(ds.schemas) == 0
}

// Size returns the number of Schemas in the dynamic scope
func (ds *DynamicScope) Size() int {
	return len(ds.schemas)
}

// LookupDynamicAnchor searches for a dynamic anchor in the dynamic scope
func (ds *DynamicScope) LookupDynamicAnchor(anchor string) *Schema {
	// use the first schema dynamic anchor matching the anchor
	for i := 0; i < len(ds.schemas); i++ {
		schema := ds.schemas[i]

		if schema.dynamicAnchors != nil && schema.dynamicAnchors[anchor] != nil {
			return schema.dynamicAnchors[anchor]
		}
	}

	return nil
}

// LookupOutermostRecursiveAnchor implements 2019-09's $recursiveRef
// bookending rule literally: starting from the outermost (oldest) schema in
// the dynamic scope and walking inward, return the first one that declares
// $recursiveAnchor: true. If no schema in scope sets $recursiveAnchor,
// $recursiveRef behaves like a plain $ref and this returns nil so the
// caller falls back to the statically resolved schema.
func (ds *DynamicScope) LookupOutermostRecursiveAnchor() *Schema {
	for i := 0; i < len(ds.schemas); i++ {
		schema := ds.schemas[i]
		if schema.RecursiveAnchor != nil && *schema.RecursiveAnchor {
			return schema
		}
	}
	return nil
}
