package schema_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/hooklint/internal/schema"
)

const (
	schemaSubtestNameTemplateConstant = "%d_%s"
	validDocumentConstant             = `repos:
  - repo: https://github.com/pre-commit/pre-commit-hooks
    rev: v4.5.0
    hooks:
      - id: end-of-file-fixer
        args: ["--fix"]
        exclude: '\.snap$'
`
	missingReposDocumentConstant = "fail_fast: true\n"
	emptyHooksDocumentConstant   = `repos:
  - repo: https://github.com/psf/black
    rev: 24.1.0
    hooks: []
`
	numericRevisionDocumentConstant = `repos:
  - repo: https://github.com/psf/black
    rev: 24
    hooks:
      - id: black
`
	unknownHookFieldDocumentConstant = `repos:
  - repo: https://github.com/psf/black
    rev: 24.1.0
    hooks:
      - id: black
        interpreter: python3
`
)

func TestValidatorAcceptsConformingDocuments(testInstance *testing.T) {
	validator, creationError := schema.NewValidator()
	require.NoError(testInstance, creationError)

	validationError := validator.ValidateYAML([]byte(validDocumentConstant))
	require.NoError(testInstance, validationError)
}

func TestValidatorRejectsNonConformingDocuments(testInstance *testing.T) {
	validator, creationError := schema.NewValidator()
	require.NoError(testInstance, creationError)

	testCases := []struct {
		name         string
		documentData string
	}{
		{name: "missing_repos", documentData: missingReposDocumentConstant},
		{name: "empty_hooks", documentData: emptyHooksDocumentConstant},
		{name: "numeric_revision", documentData: numericRevisionDocumentConstant},
		{name: "unknown_hook_field", documentData: unknownHookFieldDocumentConstant},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(schemaSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			validationError := validator.ValidateYAML([]byte(testCase.documentData))
			require.Error(testInstance, validationError)
		})
	}
}
