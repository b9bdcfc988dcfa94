package lint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/temirov/hooklint/internal/precommit"
	pathutils "github.com/temirov/hooklint/internal/utils/path"
)

const (
	defaultTargetPathConstant            = "."
	noConfigurationsFoundMessageConstant = "no pre-commit configuration files found"
	issuesFoundMessageConstant           = "configuration problems found"
	targetStatErrorTemplateConstant      = "unable to inspect target %s: %w"
	textIssueLineTemplateConstant        = "%s:%d: %s [%s] %s\n"
	textIssueNoLineTemplateConstant      = "%s: %s [%s] %s\n"
	textSummaryTemplateConstant          = "%d file(s) checked, %d error(s), %d warning(s)\n"
	jsonIndentConstant                   = "  "
)

// ReportFormat selects the diagnostic rendering.
type ReportFormat string

// Supported report formats.
const (
	ReportFormatText ReportFormat = "text"
	ReportFormatJSON ReportFormat = "json"
)

// ErrIssuesFound signals that linting surfaced blocking diagnostics.
var ErrIssuesFound = errors.New(issuesFoundMessageConstant)

// ConfigDiscoverer locates configuration files beneath root directories.
type ConfigDiscoverer interface {
	DiscoverConfigurations(roots []string) ([]string, error)
}

// SchemaValidator checks raw configuration documents against the schema.
type SchemaValidator interface {
	ValidateYAML(documentData []byte) error
}

// CommandOptions captures one lint invocation.
type CommandOptions struct {
	Targets []string
	Format  ReportFormat
	Strict  bool
}

// Service coordinates discovery, schema validation, and rule evaluation.
type Service struct {
	discoverer      ConfigDiscoverer
	schemaValidator SchemaValidator
	outputWriter    io.Writer
	errorWriter     io.Writer
}

// NewService constructs a Service using the provided dependencies.
func NewService(discoverer ConfigDiscoverer, schemaValidator SchemaValidator, outputWriter io.Writer, errorWriter io.Writer) *Service {
	return &Service{
		discoverer:      discoverer,
		schemaValidator: schemaValidator,
		outputWriter:    outputWriter,
		errorWriter:     errorWriter,
	}
}

// Run lints every targeted configuration file and renders the diagnostics.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	configurationPaths, resolveError := service.resolveTargets(options.Targets)
	if resolveError != nil {
		return resolveError
	}
	if len(configurationPaths) == 0 {
		return errors.New(noConfigurationsFoundMessageConstant)
	}

	var collectedIssues []Issue
	for _, configurationPath := range configurationPaths {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}
		collectedIssues = append(collectedIssues, service.lintFile(configurationPath)...)
	}

	if renderError := service.renderReport(options.Format, len(configurationPaths), collectedIssues); renderError != nil {
		return renderError
	}

	if HasErrors(collectedIssues) {
		return ErrIssuesFound
	}
	if options.Strict && len(collectedIssues) > 0 {
		return ErrIssuesFound
	}
	return nil
}

// LintFile evaluates one configuration file and returns its diagnostics.
func (service *Service) LintFile(configurationPath string) []Issue {
	return service.lintFile(configurationPath)
}

func (service *Service) lintFile(configurationPath string) []Issue {
	contentBytes, readError := os.ReadFile(configurationPath)
	if readError != nil {
		return []Issue{{
			Rule:     RuleParse,
			Severity: SeverityError,
			Message:  readError.Error(),
			Path:     configurationPath,
		}}
	}

	var issues []Issue
	if service.schemaValidator != nil {
		if validationError := service.schemaValidator.ValidateYAML(contentBytes); validationError != nil {
			issues = append(issues, Issue{
				Rule:     RuleSchema,
				Severity: SeverityError,
				Message:  validationError.Error(),
				Path:     configurationPath,
			})
		}
	}

	document, parseError := precommit.Parse(contentBytes, configurationPath)
	if parseError != nil {
		issues = append(issues, Issue{
			Rule:     RuleParse,
			Severity: SeverityError,
			Message:  parseError.Error(),
			Path:     configurationPath,
		})
		return issues
	}

	issues = append(issues, EvaluateDocument(document)...)
	return issues
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
	return deduplicatePaths(configurationPaths), nil
}

func (service *Service) renderReport(format ReportFormat, checkedFileCount int, issues []Issue) error {
	switch format {
	case ReportFormatJSON:
		encodedIssues, marshalError := json.MarshalIndent(issues, "", jsonIndentConstant)
		if marshalError != nil {
			return marshalError
		}
		if _, writeError := fmt.Fprintln(service.outputWriter, string(encodedIssues)); writeError != nil {
			return writeError
		}
		return nil
	default:
		for _, issue := range issues {
			if issue.Line > 0 {
				fmt.Fprintf(service.outputWriter, textIssueLineTemplateConstant, issue.Path, issue.Line, issue.Severity, issue.Rule, issue.Message)
				continue
			}
			fmt.Fprintf(service.outputWriter, textIssueNoLineTemplateConstant, issue.Path, issue.Severity, issue.Rule, issue.Message)
		}

		errorCount := 0
		warningCount := 0
		for _, issue := range issues {
			switch issue.Severity {
			case SeverityError:
				errorCount++
			case SeverityWarning:
				warningCount++
			}
		}
		fmt.Fprintf(service.errorWriter, textSummaryTemplateConstant, checkedFileCount, errorCount, warningCount)
		return nil
	}
}

func deduplicatePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	deduplicated := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, alreadySeen := seen[path]; alreadySeen {
			continue
		}
		seen[path] = struct{}{}
		deduplicated = append(deduplicated, path)
	}
	return deduplicated
}
