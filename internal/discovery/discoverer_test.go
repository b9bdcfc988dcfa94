package discovery_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/hooklint/internal/discovery"
	"github.com/temirov/hooklint/internal/precommit"
)

const (
	projectsDirectoryName          = "Projects"
	applicationDirectoryName       = "app"
	libraryDirectoryName           = "lib"
	gitMetadataDirectoryName       = ".git"
	directoryPermissions           = 0o755
	configurationFilePermissions   = 0o600
	placeholderConfigurationYAML   = "repos: []\n"
	unrelatedConfigurationFileName = "config.yaml"
)

func writeConfiguration(testInstance *testing.T, directoryPath string) string {
	testInstance.Helper()
	creationError := os.MkdirAll(directoryPath, directoryPermissions)
	require.NoError(testInstance, creationError)
	configurationPath := filepath.Join(directoryPath, precommit.ConfigFileName)
	writeError := os.WriteFile(configurationPath, []byte(placeholderConfigurationYAML), configurationFilePermissions)
	require.NoError(testInstance, writeError)
	return configurationPath
}

func TestDiscoverConfigurationsWalksRoots(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()

	applicationConfiguration := writeConfiguration(testInstance, filepath.Join(rootDirectory, projectsDirectoryName, applicationDirectoryName))
	libraryConfiguration := writeConfiguration(testInstance, filepath.Join(rootDirectory, projectsDirectoryName, libraryDirectoryName))

	unrelatedPath := filepath.Join(rootDirectory, projectsDirectoryName, applicationDirectoryName, unrelatedConfigurationFileName)
	writeError := os.WriteFile(unrelatedPath, []byte(placeholderConfigurationYAML), configurationFilePermissions)
	require.NoError(testInstance, writeError)

	configDiscoverer := discovery.NewFilesystemConfigDiscoverer()
	discoveredConfigurations, discoveryError := configDiscoverer.DiscoverConfigurations([]string{rootDirectory})
	require.NoError(testInstance, discoveryError)

	expectedConfigurations := []string{applicationConfiguration, libraryConfiguration}
	sort.Strings(expectedConfigurations)
	require.Equal(testInstance, expectedConfigurations, discoveredConfigurations)
}

func TestDiscoverConfigurationsSkipsGitMetadata(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()

	visibleConfiguration := writeConfiguration(testInstance, filepath.Join(rootDirectory, applicationDirectoryName))
	writeConfiguration(testInstance, filepath.Join(rootDirectory, applicationDirectoryName, gitMetadataDirectoryName))

	configDiscoverer := discovery.NewFilesystemConfigDiscoverer()
	discoveredConfigurations, discoveryError := configDiscoverer.DiscoverConfigurations([]string{rootDirectory})
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, []string{visibleConfiguration}, discoveredConfigurations)
}

func TestDiscoverConfigurationsDeduplicatesOverlappingRoots(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	nestedDirectory := filepath.Join(rootDirectory, applicationDirectoryName)
	nestedConfiguration := writeConfiguration(testInstance, nestedDirectory)

	configDiscoverer := discovery.NewFilesystemConfigDiscoverer()
	discoveredConfigurations, discoveryError := configDiscoverer.DiscoverConfigurations([]string{rootDirectory, nestedDirectory})
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, []string{nestedConfiguration}, discoveredConfigurations)
}
