package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateManifestSchema reflects ExtensionManifest into the JSON Schema the
// registry validates manifests against. Unknown keys are allowed so newer
// manifests keep loading on older hosts.
func GenerateManifestSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
	}

	schema := r.Reflect(&ExtensionManifest{})
	schema.Title = "Whiskers Extension Manifest"
	schema.Description = "Schema for the manifest file shipped in every extension directory."

	return json.MarshalIndent(schema, "", "  ")
}
