package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/temirov/hooklint/internal/manifest"
	"github.com/temirov/hooklint/internal/precommit"
	pathutils "github.com/temirov/hooklint/internal/utils/path"
)

const (
	defaultTargetPathConstant            = "."
	noConfigurationsFoundMessageConstant = "no pre-commit configuration files found"
	verificationFailedMessageConstant    = "verification failed"
	targetStatErrorTemplateConstant      = "unable to inspect target %s: %w"
	resultOKTemplateConstant             = "ok       %s@%s\n"
	resultFailedTemplateConstant         = "failed   %s@%s: %s\n"
	resultSkippedTemplateConstant        = "skipped  %s\n"
	summaryTemplateConstant              = "%d record(s) verified, %d failed, %d skipped\n"
	missingHooksMessageTemplateConstant  = "hooks not advertised by provider: %s"
	missingHookSeparatorConstant         = ", "
)

// ErrVerificationFailed signals that at least one record did not resolve.
var ErrVerificationFailed = errors.New(verificationFailedMessageConstant)

// ConfigDiscoverer locates configuration files beneath root directories.
type ConfigDiscoverer interface {
	DiscoverConfigurations(roots []string) ([]string, error)
}

// RecordStatus classifies one repository record's verification outcome.
type RecordStatus string

// Supported verification outcomes.
const (
	RecordStatusOK      RecordStatus = "ok"
	RecordStatusFailed  RecordStatus = "failed"
	RecordStatusSkipped RecordStatus = "skipped"
)

// RecordResult reports the verification outcome of one repository record.
type RecordResult struct {
	ConfigPath     string
	Repository     string
	Revision       string
	Status         RecordStatus
	FailureMessage string
}

// CommandOptions captures one verify invocation.
type CommandOptions struct {
	Targets []string
	Timeout time.Duration
}

// Service verifies configuration records against their providers.
type Service struct {
	discoverer   ConfigDiscoverer
	resolver     ProviderResolver
	outputWriter io.Writer
	errorWriter  io.Writer
}

// NewService constructs a Service using the provided dependencies.
func NewService(discoverer ConfigDiscoverer, resolver ProviderResolver, outputWriter io.Writer, errorWriter io.Writer) *Service {
	return &Service{
		discoverer:   discoverer,
		resolver:     resolver,
		outputWriter: outputWriter,
		errorWriter:  errorWriter,
	}
}

// Run verifies every targeted configuration file and reports per-record results.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	configurationPaths, resolveError := service.resolveTargets(options.Targets)
	if resolveError != nil {
		return resolveError
	}
	if len(configurationPaths) == 0 {
		return errors.New(noConfigurationsFoundMessageConstant)
	}

	var results []RecordResult
	for _, configurationPath := range configurationPaths {
		document, loadError := precommit.Load(configurationPath)
		if loadError != nil {
			results = append(results, RecordResult{
				ConfigPath:     configurationPath,
				Repository:     configurationPath,
				Status:         RecordStatusFailed,
				FailureMessage: loadError.Error(),
			})
			continue
		}

		results = append(results, service.verifyDocument(executionContext, document, options.Timeout)...)
	}

	failedCount := 0
	skippedCount := 0
	for _, result := range results {
		switch result.Status {
		case RecordStatusOK:
			fmt.Fprintf(service.outputWriter, resultOKTemplateConstant, result.Repository, result.Revision)
		case RecordStatusFailed:
			failedCount++
			fmt.Fprintf(service.outputWriter, resultFailedTemplateConstant, result.Repository, result.Revision, result.FailureMessage)
		case RecordStatusSkipped:
			skippedCount++
			fmt.Fprintf(service.outputWriter, resultSkippedTemplateConstant, result.Repository)
		}
	}
	fmt.Fprintf(service.errorWriter, summaryTemplateConstant, len(results), failedCount, skippedCount)

	if failedCount > 0 {
		return ErrVerificationFailed
	}
	return nil
}

// VerifyDocument checks every record of a parsed document against its provider.
func (service *Service) VerifyDocument(executionContext context.Context, document precommit.Document, timeout time.Duration) []RecordResult {
	return service.verifyDocument(executionContext, document, timeout)
}

func (service *Service) verifyDocument(executionContext context.Context, document precommit.Document, timeout time.Duration) []RecordResult {
	var results []RecordResult

	for _, repository := range document.Config.Repos {
		if !repository.IsRemote() {
			results = append(results, RecordResult{
				ConfigPath: document.Path,
				Repository: strings.TrimSpace(repository.Repo),
				Status:     RecordStatusSkipped,
			})
			continue
		}

		results = append(results, service.verifyRecord(executionContext, document.Path, repository, timeout))
	}

	return results
}

func (service *Service) verifyRecord(executionContext context.Context, configurationPath string, repository precommit.Repo, timeout time.Duration) RecordResult {
	result := RecordResult{
		ConfigPath: configurationPath,
		Repository: strings.TrimSpace(repository.Repo),
		Revision:   strings.TrimSpace(repository.Rev),
	}

	recordContext := executionContext
	if timeout > 0 {
		var cancelRecordContext context.CancelFunc
		recordContext, cancelRecordContext = context.WithTimeout(executionContext, timeout)
		defer cancelRecordContext()
	}

	definitions, resolveError := service.resolver.ResolveManifest(recordContext, result.Repository, result.Revision)
	if resolveError != nil {
		result.Status = RecordStatusFailed
		result.FailureMessage = resolveError.Error()
		return result
	}

	var missingHooks []string
	for _, hook := range repository.Hooks {
		if _, found := manifest.Lookup(definitions, hook.ID); !found {
			missingHooks = append(missingHooks, hook.ID)
		}
	}
	if len(missingHooks) > 0 {
		result.Status = RecordStatusFailed
		result.FailureMessage = fmt.Sprintf(missingHooksMessageTemplateConstant, strings.Join(missingHooks, missingHookSeparatorConstant))
		return result
	}

	result.Status = RecordStatusOK
	return result
}

func (service *Service) resolveTargets(targets []string) ([]string, error) {
	homeExpander := pathutils.NewHomeExpander()
	sanitizedTargets := make([]string, 0, len(targets))
	for _, target := range targets {
		trimmedTarget := strings.TrimSpace(target)
		if len(trimmedTarget) > 0 {
			sanitizedTargets = append(sanitizedTargets, homeExpander.Expand(trimmedTarget))
		}
	}
	if len(sanitizedTargets) == 0 {
		sanitizedTargets = []string{defaultTargetPathConstant}
	}

	var configurationPaths []string
	var discoveryRoots []string
	for _, target := range sanitizedTargets {
		targetInfo, statError := os.Stat(target)
		if statError != nil {
			return nil, fmt.Errorf(targetStatErrorTemplateConstant, target, statError)
		}
		if targetInfo.IsDir() {
			discoveryRoots = append(discoveryRoots, target)
			continue
		}
		configurationPaths = append(configurationPaths, target)
	}

	if len(discoveryRoots) > 0 && service.discoverer != nil {
		discoveredPaths, discoveryError := service.discoverer.DiscoverConfigurations(discoveryRoots)
		if discoveryError != nil {
			return nil, discoveryError
		}
		configurationPaths = append(configurationPaths, discoveredPaths...)
	}

	sort.Strings(configurationPaths)

	seen := make(map[string]struct{}, len(configurationPaths))
	deduplicated := make([]string, 0, len(configurationPaths))
	for _, configurationPath := range configurationPaths {
		if _, alreadySeen := seen[configurationPath]; alreadySeen {
			continue
		}
		seen[configurationPath] = struct{}{}
		deduplicated = append(deduplicated, configurationPath)
	}
	return deduplicated, nil
}
