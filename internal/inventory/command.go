package inventory

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/hooklint/internal/discovery"
	"github.com/temirov/hooklint/internal/utils"
)

const (
	commandUseConstant   = "list [path...]"
	commandShortConstant = "Report every configured hook as a flat inventory"
	commandLongConstant  = "list flattens each targeted .pre-commit-config.yaml into one row per hook, covering the provider repository, pinned revision, hook identifier, arguments, and exclusion pattern. The report is rendered as CSV or JSON."

	flagFormatNameConstant  = "format"
	flagFormatUsageConstant = "Report format (csv or json)."

	listStartedMessageConstant  = "inventory started"
	listLogFieldTargetsConstant = "targets"
	listLogFieldFormatConstant  = "format"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted inventory configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the list cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Discoverer            ConfigDiscoverer
}

// Build constructs the cobra command for inventory reports.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortConstant,
		Long:  commandLongConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagFormatNameConstant, "", flagFormatUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	options := CommandOptions{
		Targets: arguments,
		Format:  ReportFormat(configuration.Format),
	}
	if len(options.Targets) == 0 {
		options.Targets = configuration.Roots
	}

	if command.Flags().Changed(flagFormatNameConstant) {
		formatValue, _ := command.Flags().GetString(flagFormatNameConstant)
		options.Format = ReportFormat(formatValue)
	}

	logger := builder.resolveLogger()
	logger.Debug(
		listStartedMessageConstant,
		zap.Strings(listLogFieldTargetsConstant, options.Targets),
		zap.String(listLogFieldFormatConstant, string(options.Format)),
	)

	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	service := NewService(builder.resolveDiscoverer(), outputWriter, command.ErrOrStderr())
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
