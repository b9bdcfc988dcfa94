package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the manifest file providers publish at their repository root.
	FileName = ".pre-commit-hooks.yaml"

	manifestPathRequiredMessageConstant = "manifest path must be provided"
	manifestReadErrorTemplateConstant   = "failed to read hook manifest: %w"
	manifestParseErrorTemplateConstant  = "failed to parse hook manifest: %w"
	manifestEmptyMessageConstant        = "hook manifest defines no hooks"
)

// Definition describes one hook a provider advertises.
type Definition struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name,omitempty"`
	Entry           string   `yaml:"entry,omitempty"`
	Language        string   `yaml:"language,omitempty"`
	Files           string   `yaml:"files,omitempty"`
	Description     string   `yaml:"description,omitempty"`
	Stages          []string `yaml:"stages,omitempty"`
	Types           []string `yaml:"types,omitempty"`
	AlwaysRun       bool     `yaml:"always_run,omitempty"`
	PassFilenames   *bool    `yaml:"pass_filenames,omitempty"`
	MinimumVersion  string   `yaml:"minimum_pre_commit_version,omitempty"`
	RequireSerial   bool     `yaml:"require_serial,omitempty"`
	ExcludeTypes    []string `yaml:"exclude_types,omitempty"`
	AdditionalTypes []string `yaml:"types_or,omitempty"`
}

// Load reads the hook manifest at the provided path.
func Load(manifestPath string) ([]Definition, error) {
	trimmedPath := strings.TrimSpace(manifestPath)
	if len(trimmedPath) == 0 {
		return nil, errors.New(manifestPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return nil, fmt.Errorf(manifestReadErrorTemplateConstant, readError)
	}

	return Parse(contentBytes)
}

// Parse decodes manifest data into hook definitions.
func Parse(manifestData []byte) ([]Definition, error) {
	var definitions []Definition
	if unmarshalError := yaml.Unmarshal(manifestData, &definitions); unmarshalError != nil {
		return nil, fmt.Errorf(manifestParseErrorTemplateConstant, unmarshalError)
	}

	if len(definitions) == 0 {
		return nil, errors.New(manifestEmptyMessageConstant)
	}

	return definitions, nil
}

// Lookup returns the definition matching the provided hook identifier.
func Lookup(definitions []Definition, hookIdentifier string) (Definition, bool) {
	for _, definition := range definitions {
		if definition.ID == hookIdentifier {
			return definition, true
		}
	}
	return Definition{}, false
}
