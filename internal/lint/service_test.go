package lint_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/hooklint/internal/discovery"
	"github.com/temirov/hooklint/internal/lint"
	"github.com/temirov/hooklint/internal/precommit"
	"github.com/temirov/hooklint/internal/schema"
)

const (
	cleanConfigurationConstant = `repos:
  - repo: https://github.com/pre-commit/pre-commit-hooks
    rev: v4.5.0
    hooks:
      - id: end-of-file-fixer
      - id: trailing-whitespace
`
	warningConfigurationConstant = `repos:
  - repo: https://github.com/psf/black
    rev: master
    hooks:
      - id: black
`
	brokenConfigurationConstant = `repos:
  - repo: https://github.com/psf/black
    hooks:
      - id: black
`
)

func newLintService(testInstance *testing.T, outputBuffer *bytes.Buffer, errorBuffer *bytes.Buffer) *lint.Service {
	testInstance.Helper()
	schemaValidator, validatorError := schema.NewValidator()
	require.NoError(testInstance, validatorError)
	return lint.NewService(discovery.NewFilesystemConfigDiscoverer(), schemaValidator, outputBuffer, errorBuffer)
}

func writeTestConfiguration(testInstance *testing.T, directoryPath string, configurationData string) string {
	testInstance.Helper()
	require.NoError(testInstance, os.MkdirAll(directoryPath, 0o755))
	configurationPath := filepath.Join(directoryPath, precommit.ConfigFileName)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationData), 0o600))
	return configurationPath
}

func TestServiceRunPassesCleanConfigurations(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationPath := writeTestConfiguration(testInstance, temporaryDirectory, cleanConfigurationConstant)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	service := newLintService(testInstance, outputBuffer, errorBuffer)

	runError := service.Run(context.Background(), lint.CommandOptions{Targets: []string{configurationPath}, Format: lint.ReportFormatText})
	require.NoError(testInstance, runError)
	require.Empty(testInstance, outputBuffer.String())
	require.Contains(testInstance, errorBuffer.String(), "1 file(s) checked")
}

func TestServiceRunFailsOnErrors(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	writeTestConfiguration(testInstance, temporaryDirectory, brokenConfigurationConstant)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	service := newLintService(testInstance, outputBuffer, errorBuffer)

	runError := service.Run(context.Background(), lint.CommandOptions{Targets: []string{temporaryDirectory}, Format: lint.ReportFormatText})
	require.ErrorIs(testInstance, runError, lint.ErrIssuesFound)
	require.Contains(testInstance, outputBuffer.String(), "rev-pin")
}

func TestServiceRunStrictPromotesWarnings(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationPath := writeTestConfiguration(testInstance, temporaryDirectory, warningConfigurationConstant)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	service := newLintService(testInstance, outputBuffer, errorBuffer)

	relaxedError := service.Run(context.Background(), lint.CommandOptions{Targets: []string{configurationPath}, Format: lint.ReportFormatText})
	require.NoError(testInstance, relaxedError)

	strictError := service.Run(context.Background(), lint.CommandOptions{Targets: []string{configurationPath}, Format: lint.ReportFormatText, Strict: true})
	require.ErrorIs(testInstance, strictError, lint.ErrIssuesFound)
}

func TestServiceRunRendersJSONReports(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationPath := writeTestConfiguration(testInstance, temporaryDirectory, warningConfigurationConstant)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	service := newLintService(testInstance, outputBuffer, errorBuffer)

	runError := service.Run(context.Background(), lint.CommandOptions{Targets: []string{configurationPath}, Format: lint.ReportFormatJSON})
	require.NoError(testInstance, runError)

	var decodedIssues []lint.Issue
	require.NoError(testInstance, json.Unmarshal(outputBuffer.Bytes(), &decodedIssues))
	require.Len(testInstance, decodedIssues, 1)
	require.Equal(testInstance, lint.RuleRevPin, decodedIssues[0].Rule)
	require.Equal(testInstance, lint.SeverityWarning, decodedIssues[0].Severity)
}

func TestServiceRunDiscoversConfigurationsUnderDirectories(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	writeTestConfiguration(testInstance, filepath.Join(temporaryDirectory, "app"), cleanConfigurationConstant)
	writeTestConfiguration(testInstance, filepath.Join(temporaryDirectory, "lib"), cleanConfigurationConstant)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	service := newLintService(testInstance, outputBuffer, errorBuffer)

	runError := service.Run(context.Background(), lint.CommandOptions{Targets: []string{temporaryDirectory}, Format: lint.ReportFormatText})
	require.NoError(testInstance, runError)
	require.Contains(testInstance, errorBuffer.String(), "2 file(s) checked")
}

func TestServiceRunReportsMissingTargets(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	service := newLintService(testInstance, outputBuffer, errorBuffer)

	runError := service.Run(context.Background(), lint.CommandOptions{Targets: []string{"/nonexistent/config.yaml"}, Format: lint.ReportFormatText})
	require.Error(testInstance, runError)
	require.NotErrorIs(testInstance, runError, lint.ErrIssuesFound)
}
