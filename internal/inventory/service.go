package inventory

import (
	"context"
	"encoding/csv"
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
	targetStatErrorTemplateConstant      = "unable to inspect target %s: %w"
	argumentJoinSeparatorConstant        = " "
	jsonIndentConstant                   = "  "

	csvHeaderConfigPath = "config_path"
	csvHeaderRepository = "repository"
	csvHeaderRevision   = "revision"
	csvHeaderHookID     = "hook_id"
	csvHeaderArguments  = "arguments"
	csvHeaderExclude    = "exclude"
)

// ReportFormat selects the inventory rendering.
type ReportFormat string

// Supported report formats.
const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatJSON ReportFormat = "json"
)

// Record is one flattened (configuration, repository, hook) row.
type Record struct {
	ConfigPath string `json:"config_path"`
	Repository string `json:"repository"`
	Revision   string `json:"revision,omitempty"`
	HookID     string `json:"hook_id"`
	Arguments  string `json:"arguments,omitempty"`
	Exclude    string `json:"exclude,omitempty"`
}

// ConfigDiscoverer locates configuration files beneath root directories.
type ConfigDiscoverer interface {
	DiscoverConfigurations(roots []string) ([]string, error)
}

// CommandOptions captures one inventory invocation.
type CommandOptions struct {
	Targets []string
	Format  ReportFormat
}

// Service flattens configuration files into inventory reports.
type Service struct {
	discoverer   ConfigDiscoverer
	outputWriter io.Writer
	errorWriter  io.Writer
}

// NewService constructs a Service using the provided dependencies.
func NewService(discoverer ConfigDiscoverer, outputWriter io.Writer, errorWriter io.Writer) *Service {
	return &Service{
		discoverer:   discoverer,
		outputWriter: outputWriter,
		errorWriter:  errorWriter,
	}
}

// Run renders the hook inventory of every targeted configuration file.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	configurationPaths, resolveError := service.resolveTargets(options.Targets)
	if resolveError != nil {
		return resolveError
	}
	if len(configurationPaths) == 0 {
		return errors.New(noConfigurationsFoundMessageConstant)
	}

	var records []Record
	for _, configurationPath := range configurationPaths {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}

		document, loadError := precommit.Load(configurationPath)
		if loadError != nil {
			return loadError
		}
		records = append(records, flattenDocument(document)...)
	}

	return service.renderReport(options.Format, records)
}

func flattenDocument(document precommit.Document) []Record {
	var records []Record
	for _, repository := range document.Config.Repos {
		for _, hook := range repository.Hooks {
			records = append(records, Record{
				ConfigPath: document.Path,
				Repository: strings.TrimSpace(repository.Repo),
				Revision:   strings.TrimSpace(repository.Rev),
				HookID:     hook.ID,
				Arguments:  strings.Join(hook.Args, argumentJoinSeparatorConstant),
				Exclude:    hook.Exclude,
			})
		}
	}
	return records
}

func (service *Service) renderReport(format ReportFormat, records []Record) error {
	switch format {
	case ReportFormatJSON:
		encodedRecords, marshalError := json.MarshalIndent(records, "", jsonIndentConstant)
		if marshalError != nil {
			return marshalError
		}
		_, writeError := fmt.Fprintln(service.outputWriter, string(encodedRecords))
		return writeError
	default:
		csvWriter := csv.NewWriter(service.outputWriter)
		header := []string{
			csvHeaderConfigPath,
			csvHeaderRepository,
			csvHeaderRevision,
			csvHeaderHookID,
			csvHeaderArguments,
			csvHeaderExclude,
		}
		if writeError := csvWriter.Write(header); writeError != nil {
			return writeError
		}
		for _, record := range records {
			row := []string{
				record.ConfigPath,
				record.Repository,
				record.Revision,
				record.HookID,
				record.Arguments,
				record.Exclude,
			}
			if writeError := csvWriter.Write(row); writeError != nil {
				return writeError
			}
		}
		csvWriter.Flush()
		return csvWriter.Error()
	}
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
