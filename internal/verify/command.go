package verify

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/hooklint/internal/discovery"
)

const (
	commandUseConstant   = "verify [path...]"
	commandShortConstant = "Resolve every configuration record against its provider"
	commandLongConstant  = "verify fetches each remote hook provider at its pinned revision, reads the provider's hook manifest, and confirms that every configured hook identifier is advertised there. Local and meta records are skipped."

	flagTimeoutNameConstant  = "timeout"
	flagTimeoutUsageConstant = "Per-record resolution timeout."

	verifyStartedMessageConstant  = "verify started"
	verifyLogFieldTargetsConstant = "targets"
	verifyLogFieldTimeoutConstant = "timeout"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted verify configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the verify cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Discoverer            ConfigDiscoverer
	Resolver              ProviderResolver
}

// Build constructs the cobra command for provider verification.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortConstant,
		Long:  commandLongConstant,
		RunE:  builder.run,
	}

	command.Flags().Duration(flagTimeoutNameConstant, 0, flagTimeoutUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	options := CommandOptions{
		Targets: arguments,
		Timeout: configuration.Timeout,
	}
	if len(options.Targets) == 0 {
		options.Targets = configuration.Roots
	}

	if command.Flags().Changed(flagTimeoutNameConstant) {
		timeoutValue, _ := command.Flags().GetDuration(flagTimeoutNameConstant)
		options.Timeout = timeoutValue
	}

	logger := builder.resolveLogger()
	logger.Debug(
		verifyStartedMessageConstant,
		zap.Strings(verifyLogFieldTargetsConstant, options.Targets),
		zap.Duration(verifyLogFieldTimeoutConstant, options.Timeout),
	)

	service := NewService(builder.resolveDiscoverer(), builder.resolveResolver(), command.OutOrStdout(), command.ErrOrStderr())
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

func (builder *CommandBuilder) resolveResolver() ProviderResolver {
	if builder.Resolver != nil {
		return builder.Resolver
	}
	return NewGitProviderResolver()
}
