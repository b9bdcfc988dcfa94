package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/hooklint/internal/manifest"
)

const (
	sampleManifestConstant = `- id: end-of-file-fixer
  name: fix end of files
  entry: end-of-file-fixer
  language: python
  types: [text]
- id: trailing-whitespace
  name: trim trailing whitespace
  entry: trailing-whitespace-fixer
  language: python
  types: [text]
`
	malformedManifestConstant = "- id: [unclosed\n"
	knownHookIdentifier       = "trailing-whitespace"
	unknownHookIdentifier     = "no-such-hook"
)

func TestParseDecodesDefinitions(testInstance *testing.T) {
	definitions, parseError := manifest.Parse([]byte(sampleManifestConstant))
	require.NoError(testInstance, parseError)
	require.Len(testInstance, definitions, 2)
	require.Equal(testInstance, "end-of-file-fixer", definitions[0].ID)
	require.Equal(testInstance, "python", definitions[0].Language)
}

func TestParseRejectsMalformedManifests(testInstance *testing.T) {
	_, parseError := manifest.Parse([]byte(malformedManifestConstant))
	require.Error(testInstance, parseError)
}

func TestParseRejectsEmptyManifests(testInstance *testing.T) {
	_, parseError := manifest.Parse([]byte(""))
	require.Error(testInstance, parseError)
}

func TestLookupResolvesIdentifiers(testInstance *testing.T) {
	definitions, parseError := manifest.Parse([]byte(sampleManifestConstant))
	require.NoError(testInstance, parseError)

	matchedDefinition, found := manifest.Lookup(definitions, knownHookIdentifier)
	require.True(testInstance, found)
	require.Equal(testInstance, knownHookIdentifier, matchedDefinition.ID)

	_, missingFound := manifest.Lookup(definitions, unknownHookIdentifier)
	require.False(testInstance, missingFound)
}

func TestLoadReadsManifestFromDisk(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	manifestPath := filepath.Join(temporaryDirectory, manifest.FileName)
	writeError := os.WriteFile(manifestPath, []byte(sampleManifestConstant), 0o600)
	require.NoError(testInstance, writeError)

	definitions, loadError := manifest.Load(manifestPath)
	require.NoError(testInstance, loadError)
	require.Len(testInstance, definitions, 2)
}
