package discovery

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/temirov/hooklint/internal/precommit"
)

const gitMetadataDirectoryNameConstant = ".git"

// FilesystemConfigDiscoverer locates pre-commit configuration files on disk.
type FilesystemConfigDiscoverer struct{}

// NewFilesystemConfigDiscoverer constructs a discoverer backed by filepath.WalkDir.
func NewFilesystemConfigDiscoverer() *FilesystemConfigDiscoverer {
	return &FilesystemConfigDiscoverer{}
}

// DiscoverConfigurations walks the provided roots and returns configuration file paths.
func (discoverer *FilesystemConfigDiscoverer) DiscoverConfigurations(roots []string) ([]string, error) {
	seen := make(map[string]struct{})
	var configurations []string

	for _, root := range roots {
		walkError := filepath.WalkDir(root, func(path string, directoryEntry fs.DirEntry, walkError error) error {
			if walkError != nil {
				return nil
			}

			if directoryEntry.IsDir() {
				if directoryEntry.Name() == gitMetadataDirectoryNameConstant {
					return fs.SkipDir
				}
				return nil
			}

			if directoryEntry.Name() != precommit.ConfigFileName {
				return nil
			}

			if _, alreadySeen := seen[path]; alreadySeen {
				return nil
			}

			seen[path] = struct{}{}
			configurations = append(configurations, path)
			return nil
		})
		if walkError != nil {
			return nil, walkError
		}
	}

	sort.Strings(configurations)
	return configurations, nil
}
