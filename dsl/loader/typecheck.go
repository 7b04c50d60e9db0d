package loader

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// typeSchemas caches one compiled Schema per primitive type name, built on
// first use - the same cache-by-key shape as the teacher's
// validatorCache in core/types/validation.go, simplified down to the
// handful of fixed primitive schemas this runtime needs rather than
// arbitrary user-supplied ones.
var typeSchemas = struct {
	mu    sync.Mutex
	cache map[string]*jsonschema.Schema
}{cache: make(map[string]*jsonschema.Schema)}

var primitiveSchemas = map[string]string{
	"int":    `{"type": "integer"}`,
	"number": `{"type": "number"}`,
	"bool":   `{"type": "boolean"}`,
	"string": `{"type": "string"}`,
}

func schemaFor(typeName string) (*jsonschema.Schema, bool, error) {
	raw, known := primitiveSchemas[typeName]
	if !known {
		return nil, false, nil
	}

	typeSchemas.mu.Lock()
	defer typeSchemas.mu.Unlock()

	if s, ok := typeSchemas.cache[typeName]; ok {
		return s, true, nil
	}

	compiler := jsonschema.NewCompiler()
	url := "schema://" + typeName + ".json"
	if err := compiler.AddResource(url, strings.NewReader(raw)); err != nil {
		return nil, true, err
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, true, err
	}
	typeSchemas.cache[typeName] = schema
	return schema, true, nil
}

// validateTypedLiteral checks literal against the JSON Schema for
// typeName, catching e.g. `in n: int` fed the literal "abc" statically at
// load time instead of failing the parse at tick time (spec.md's own
// port-direction/arity checks are unaffected; this is purely additive).
// An unrecognized typeName is not validated - only the DSL's own four
// primitive type names are known to this layer.
func validateTypedLiteral(typeName, literal string) error {
	schema, known, err := schemaFor(typeName)
	if err != nil {
		return fmt.Errorf("compiling schema for type %q: %w", typeName, err)
	}
	if !known {
		return nil
	}

	var value any
	if typeName == "string" {
		value = literal
	} else if err := json.Unmarshal([]byte(literal), &value); err != nil {
		return fmt.Errorf("literal %q is not a valid %s: %w", literal, typeName, err)
	}

	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("literal %q does not satisfy type %q: %w", literal, typeName, err)
	}
	return nil
}
