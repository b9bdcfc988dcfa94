package schema

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed precommit_config.schema.json
var embeddedSchemaData []byte

const (
	embeddedSchemaResourceNameConstant   = "precommit_config.schema.json"
	schemaResourceErrorTemplateConstant  = "failed to register embedded schema resource: %w"
	schemaCompileErrorTemplateConstant   = "failed to compile embedded schema: %w"
	documentDecodeErrorTemplateConstant  = "failed to decode document for schema validation: %w"
	validationFailedTemplateConstant     = "schema validation failed:\n%s"
	validationFailedWrapTemplateConstant = "schema validation failed: %w"
	validationMessageTemplateConstant    = "- %s: %s"
)

// Validator checks raw configuration documents against the embedded schema.
type Validator struct {
	compiledSchema *jsonschema.Schema
}

// NewValidator compiles the embedded schema into a reusable validator.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if resourceError := compiler.AddResource(embeddedSchemaResourceNameConstant, strings.NewReader(string(embeddedSchemaData))); resourceError != nil {
		return nil, fmt.Errorf(schemaResourceErrorTemplateConstant, resourceError)
	}

	compiledSchema, compileError := compiler.Compile(embeddedSchemaResourceNameConstant)
	if compileError != nil {
		return nil, fmt.Errorf(schemaCompileErrorTemplateConstant, compileError)
	}

	return &Validator{compiledSchema: compiledSchema}, nil
}

// ValidateYAML decodes raw YAML into generic data and validates it.
func (validator *Validator) ValidateYAML(documentData []byte) error {
	var genericDocument any
	if decodeError := yaml.Unmarshal(documentData, &genericDocument); decodeError != nil {
		return fmt.Errorf(documentDecodeErrorTemplateConstant, decodeError)
	}
	return validator.Validate(genericDocument)
}

// Validate checks generic document data against the compiled schema.
func (validator *Validator) Validate(genericDocument any) error {
	validationError := validator.compiledSchema.Validate(genericDocument)
	if validationError == nil {
		return nil
	}

	var schemaValidationError *jsonschema.ValidationError
	if castError, isValidationError := validationError.(*jsonschema.ValidationError); isValidationError {
		schemaValidationError = castError
	}
	if schemaValidationError == nil {
		return fmt.Errorf(validationFailedWrapTemplateConstant, validationError)
	}

	var messages []string
	collectValidationMessages(schemaValidationError, &messages)
	return fmt.Errorf(validationFailedTemplateConstant, strings.Join(messages, "\n"))
}

func collectValidationMessages(validationError *jsonschema.ValidationError, messages *[]string) {
	if len(validationError.InstanceLocation) > 0 {
		*messages = append(*messages, fmt.Sprintf(validationMessageTemplateConstant, validationError.InstanceLocation, validationError.Message))
	}
	for _, cause := range validationError.Causes {
		collectValidationMessages(cause, messages)
	}
}
