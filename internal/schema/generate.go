package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/temirov/hooklint/internal/precommit"
)

const (
	generatedSchemaTitleConstant       = "Pre-commit configuration"
	generatedSchemaDescriptionConstant = "Structural schema for .pre-commit-config.yaml documents."
	generatedSchemaIndentConstant      = "  "
)

// GenerateSchema reflects the configuration model into a JSON Schema document.
// tools/schema-generator uses it to refresh the embedded schema.
func GenerateSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	reflectedSchema := reflector.Reflect(&precommit.Config{})
	reflectedSchema.Title = generatedSchemaTitleConstant
	reflectedSchema.Description = generatedSchemaDescriptionConstant

	return json.MarshalIndent(reflectedSchema, "", generatedSchemaIndentConstant)
}
