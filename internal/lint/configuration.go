package lint

import "strings"

const (
	configurationFormatKeyConstant = "format"
	configurationStrictKeyConstant = "strict"
	configurationRootsKeyConstant  = "roots"
	configurationKeySeparator      = "."
)

// CommandConfiguration describes persisted configuration for the lint command.
type CommandConfiguration struct {
	Format string   `mapstructure:"format"`
	Strict bool     `mapstructure:"strict"`
	Roots  []string `mapstructure:"roots"`
}

// DefaultCommandConfiguration returns baseline lint configuration values.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Format: string(ReportFormatText),
		Strict: false,
		Roots:  []string{},
	}
}

// DefaultConfigurationValues produces Viper defaults for the lint command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparator + configurationFormatKeyConstant: defaults.Format,
		rootKey + configurationKeySeparator + configurationStrictKeyConstant: defaults.Strict,
		rootKey + configurationKeySeparator + configurationRootsKeyConstant:  defaults.Roots,
	}
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Format = strings.TrimSpace(configuration.Format)
	if len(sanitized.Format) == 0 {
		sanitized.Format = string(ReportFormatText)
	}

	sanitizedRoots := make([]string, 0, len(configuration.Roots))
	for _, root := range configuration.Roots {
		trimmedRoot := strings.TrimSpace(root)
		if len(trimmedRoot) > 0 {
			sanitizedRoots = append(sanitizedRoots, trimmedRoot)
		}
	}
	sanitized.Roots = sanitizedRoots

	return sanitized
}
