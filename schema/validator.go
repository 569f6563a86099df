package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const manifestSchemaURL = "manifest.schema.json"

// Validator checks decoded manifests against the schema reflected from
// ExtensionManifest, the same one `whiskers schema manifest` prints.
type Validator struct {
	schema *jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	generated, err := GenerateManifestSchema()
	if err != nil {
		return nil, fmt.Errorf("generate manifest schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(manifestSchemaURL, bytes.NewReader(generated)); err != nil {
		return nil, fmt.Errorf("add manifest schema: %w", err)
	}
	compiled, err := compiler.Compile(manifestSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile manifest schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// Validate checks manifest data decoded from JSON or YAML. Null members are
// treated as absent, as they are when the manifest is decoded.
func (v *Validator) Validate(manifestData interface{}) error {
	// YAML decodes to types the validator does not know; JSON normalises them.
	raw, err := json.Marshal(manifestData)
	if err != nil {
		return fmt.Errorf("manifest is not representable as JSON: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("manifest is not representable as JSON: %w", err)
	}

	err = v.schema.Validate(dropNulls(doc))
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	var lines []string
	collectErrors(verr, &lines)
	if len(lines) == 0 {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return fmt.Errorf("schema validation failed:\n%s", strings.Join(lines, "\n"))
}

func dropNulls(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for key, member := range val {
			if member == nil {
				delete(val, key)
				continue
			}
			val[key] = dropNulls(member)
		}
	case []interface{}:
		for i := range val {
			val[i] = dropNulls(val[i])
		}
	}
	return v
}

func collectErrors(err *jsonschema.ValidationError, lines *[]string) {
	if err.InstanceLocation != "" {
		*lines = append(*lines, fmt.Sprintf("- %s: %s", err.InstanceLocation, err.Message))
	}
	for _, cause := range err.Causes {
		collectErrors(cause, lines)
	}
}
