package verify

import (
	"strings"
	"time"
)

const (
	configurationRootsKeyConstant   = "roots"
	configurationTimeoutKeyConstant = "timeout"
	configurationKeySeparator       = "."

	defaultRecordTimeoutConstant = 2 * time.Minute
)

// CommandConfiguration describes persisted configuration for the verify command.
type CommandConfiguration struct {
	Roots   []string      `mapstructure:"roots"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultCommandConfiguration returns baseline verify configuration values.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Roots:   []string{},
		Timeout: defaultRecordTimeoutConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for the verify command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparator + configurationRootsKeyConstant:   defaults.Roots,
		rootKey + configurationKeySeparator + configurationTimeoutKeyConstant: defaults.Timeout,
	}
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	if sanitized.Timeout <= 0 {
		sanitized.Timeout = defaultRecordTimeoutConstant
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
