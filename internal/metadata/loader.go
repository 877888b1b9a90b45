package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func assemblySchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("assembly.schema.json", strings.NewReader(rawSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("assembly.schema.json")
	})
	return compiledSchema, schemaErr
}

// Load reads, validates, and decodes an assembly document. A missing
// input file is the one fatal error class of the whole pipeline, so the
// returned error carries the path.
func Load(path string) (*Assembly, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assembly document %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates raw document bytes against the schema and decodes them
// into the object model.
func Parse(data []byte) (*Assembly, error) {
	schema, err := assemblySchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile assembly schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid assembly document: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("assembly document failed schema validation: %w", err)
	}

	var asm Assembly
	if err := json.Unmarshal(data, &asm); err != nil {
		return nil, fmt.Errorf("failed to decode assembly document: %w", err)
	}
	return &asm, nil
}
