package lint

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/hooklint/internal/discovery"
	"github.com/temirov/hooklint/internal/schema"
)

const (
	commandUseConstant   = "lint [path...]"
	commandShortConstant = "Check pre-commit configuration files for structural problems"
	commandLongConstant  = "lint parses each targeted .pre-commit-config.yaml, validates it against the configuration schema, and applies structural rules covering repository URLs, revision pins, exclusion patterns, anchor reuse, duplicate hook identifiers, and local hook requirements."

	flagFormatNameConstant  = "format"
	flagFormatUsageConstant = "Report format (text or json)."
	flagStrictNameConstant  = "strict"
	flagStrictUsageConstant = "Treat warnings as failures."

	lintStartedMessageConstant  = "lint started"
	lintLogFieldTargetsConstant = "targets"
	lintLogFieldFormatConstant  = "format"
	lintLogFieldStrictConstant  = "strict"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted lint configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the lint cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Discoverer            ConfigDiscoverer
	SchemaValidator       SchemaValidator
}

// Build constructs the cobra command for configuration linting.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortConstant,
		Long:  commandLongConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagFormatNameConstant, "", flagFormatUsageConstant)
	command.Flags().Bool(flagStrictNameConstant, false, flagStrictUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	options := CommandOptions{
		Targets: arguments,
		Format:  ReportFormat(configuration.Format),
		Strict:  configuration.Strict,
	}
	if len(options.Targets) == 0 {
		options.Targets = configuration.Roots
	}

	if command.Flags().Changed(flagFormatNameConstant) {
		formatValue, _ := command.Flags().GetString(flagFormatNameConstant)
		options.Format = ReportFormat(formatValue)
	}
	if command.Flags().Changed(flagStrictNameConstant) {
		strictValue, _ := command.Flags().GetBool(flagStrictNameConstant)
		options.Strict = strictValue
	}

	logger := builder.resolveLogger()
	logger.Debug(
		lintStartedMessageConstant,
		zap.Strings(lintLogFieldTargetsConstant, options.Targets),
		zap.String(lintLogFieldFormatConstant, string(options.Format)),
		zap.Bool(lintLogFieldStrictConstant, options.Strict),
	)

	schemaValidator, validatorError := builder.resolveSchemaValidator()
	if validatorError != nil {
		return validatorError
	}

	service := NewService(builder.resolveDiscoverer(), schemaValidator, command.OutOrStdout(), command.ErrOrStderr())
	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveDiscoverer() ConfigDiscoverer {
	if builder.Discoverer != nil {
		return builder.Discoverer
	}
	return discovery.NewFilesystemConfigDiscoverer()
}

func (builder *CommandBuilder) resolveSchemaValidator() (SchemaValidator, error) {
	if builder.SchemaValidator != nil {
		return builder.SchemaValidator, nil
	}
	return schema.NewValidator()
}
