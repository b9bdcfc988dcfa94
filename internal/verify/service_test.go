package verify_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/hooklint/internal/discovery"
	"github.com/temirov/hooklint/internal/manifest"
	"github.com/temirov/hooklint/internal/precommit"
	"github.com/temirov/hooklint/internal/verify"
)

const (
	knownProviderURLConstant   = "https://github.com/pre-commit/pre-commit-hooks"
	unknownProviderURLConstant = "https://github.com/example/missing"
	providerRevisionConstant   = "v4.5.0"

	verifiableConfigurationConstant = `repos:
  - repo: https://github.com/pre-commit/pre-commit-hooks
    rev: v4.5.0
    hooks:
      - id: end-of-file-fixer
      - id: trailing-whitespace
  - repo: local
    hooks:
      - id: make-check
        entry: make check
        language: system
`
	unknownHookConfigurationConstant = `repos:
  - repo: https://github.com/pre-commit/pre-commit-hooks
    rev: v4.5.0
    hooks:
      - id: no-such-hook
`
	unreachableConfigurationConstant = `repos:
  - repo: https://github.com/example/missing
    rev: v1.0.0
    hooks:
      - id: anything
`
)

var errProviderUnreachable = errors.New("repository unreachable")

type fixtureResolver struct {
	manifestsByRepository map[string][]manifest.Definition
}

func (resolver *fixtureResolver) ResolveManifest(_ context.Context, repositoryURL string, _ string) ([]manifest.Definition, error) {
	definitions, known := resolver.manifestsByRepository[repositoryURL]
	if !known {
		return nil, errProviderUnreachable
	}
	return definitions, nil
}

func newFixtureResolver() *fixtureResolver {
	return &fixtureResolver{
		manifestsByRepository: map[string][]manifest.Definition{
			knownProviderURLConstant: {
				{ID: "end-of-file-fixer", Language: "python"},
				{ID: "trailing-whitespace", Language: "python"},
			},
		},
	}
}

func writeVerifyConfiguration(testInstance *testing.T, configurationData string) string {
	testInstance.Helper()
	temporaryDirectory := testInstance.TempDir()
	configurationPath := filepath.Join(temporaryDirectory, precommit.ConfigFileName)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationData), 0o600))
	return configurationPath
}

func TestServiceRunVerifiesResolvableRecords(testInstance *testing.T) {
	configurationPath := writeVerifyConfiguration(testInstance, verifiableConfigurationConstant)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	service := verify.NewService(discovery.NewFilesystemConfigDiscoverer(), newFixtureResolver(), outputBuffer, errorBuffer)

	runError := service.Run(context.Background(), verify.CommandOptions{Targets: []string{configurationPath}})
	require.NoError(testInstance, runError)
	require.Contains(testInstance, outputBuffer.String(), "ok")
	require.Contains(testInstance, outputBuffer.String(), "skipped  local")
	require.Contains(testInstance, errorBuffer.String(), "2 record(s) verified, 0 failed, 1 skipped")
}

func TestServiceRunFailsOnUnknownHooks(testInstance *testing.T) {
	configurationPath := writeVerifyConfiguration(testInstance, unknownHookConfigurationConstant)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	service := verify.NewService(discovery.NewFilesystemConfigDiscoverer(), newFixtureResolver(), outputBuffer, errorBuffer)

	runError := service.Run(context.Background(), verify.CommandOptions{Targets: []string{configurationPath}})
	require.ErrorIs(testInstance, runError, verify.ErrVerificationFailed)
	require.Contains(testInstance, outputBuffer.String(), "no-such-hook")
}

func TestServiceRunFailsOnUnreachableProviders(testInstance *testing.T) {
	configurationPath := writeVerifyConfiguration(testInstance, unreachableConfigurationConstant)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	service := verify.NewService(discovery.NewFilesystemConfigDiscoverer(), newFixtureResolver(), outputBuffer, errorBuffer)

	runError := service.Run(context.Background(), verify.CommandOptions{Targets: []string{configurationPath}})
	require.ErrorIs(testInstance, runError, verify.ErrVerificationFailed)
	require.Contains(testInstance, outputBuffer.String(), unknownProviderURLConstant)
}

func TestServiceRunReportsUnparsableConfigurations(testInstance *testing.T) {
	configurationPath := writeVerifyConfiguration(testInstance, "repos:\n  - repo: [unclosed\n")

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	service := verify.NewService(discovery.NewFilesystemConfigDiscoverer(), newFixtureResolver(), outputBuffer, errorBuffer)

	runError := service.Run(context.Background(), verify.CommandOptions{Targets: []string{configurationPath}})
	require.ErrorIs(testInstance, runError, verify.ErrVerificationFailed)
}
