package lint

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/temirov/hooklint/internal/precommit"
)

const (
	urlValidationTagConstant = "url"

	emptyReposMessageConstant                = "configuration defines no repository records"
	emptyHooksMessageTemplateConstant        = "repository %s defines no hooks"
	invalidRepoURLMessageTemplateConstant    = "repository URL %q is not a valid git source"
	missingRevisionMessageTemplateConstant   = "repository %s is missing a pinned revision"
	forbiddenRevisionMessageTemplateConstant = "repository %s must not declare a revision"
	mutableRevisionMessageTemplateConstant   = "revision %q of repository %s is a mutable reference, not a pin"
	unusualRevisionMessageTemplateConstant   = "revision %q of repository %s does not look like a tag or commit hash"
	invalidPatternMessageTemplateConstant    = "pattern %q does not compile: %v"
	unusedAnchorMessageTemplateConstant      = "anchor %q is defined but never referenced"
	unresolvedAliasMessageTemplateConstant   = "alias %q references an undefined anchor"
	duplicateHookMessageTemplateConstant     = "hook %q appears multiple times in repository %s with identical configuration"
	localHookEntryMessageTemplateConstant    = "local hook %q must define an entry"
	localHookLanguageMessageTemplateConstant = "local hook %q must define a language"
)

var (
	scpLikeRemotePattern    = regexp.MustCompile(`^[A-Za-z0-9._~-]+@[A-Za-z0-9.-]+:[^\s]+$`)
	commitHashPattern       = regexp.MustCompile(`^[0-9a-f]{7,40}$`)
	versionTagPattern       = regexp.MustCompile(`^[Vv]?\d+(\.\d+)*([.-].*)?$`)
	mutableReferenceNameSet = map[string]struct{}{
		"HEAD":   {},
		"main":   {},
		"master": {},
	}
)

// RuleFunc evaluates one structural property of a document.
type RuleFunc func(document precommit.Document) []Issue

// DefaultRules returns the rules applied by the lint service.
func DefaultRules() []RuleFunc {
	return []RuleFunc{
		CheckEmptyRecords,
		CheckRepositoryURLs,
		CheckRevisionPins,
		CheckPatterns,
		CheckAnchorHygiene,
		CheckDuplicateHooks,
		CheckLocalHooks,
	}
}

// EvaluateDocument applies every default rule and returns the combined diagnostics.
func EvaluateDocument(document precommit.Document) []Issue {
	var issues []Issue
	for _, rule := range DefaultRules() {
		issues = append(issues, rule(document)...)
	}
	return issues
}

// CheckEmptyRecords requires a non-empty repos sequence and non-empty hook lists.
func CheckEmptyRecords(document precommit.Document) []Issue {
	var issues []Issue

	if len(document.Config.Repos) == 0 {
		issues = append(issues, Issue{
			Rule:     RuleEmpty,
			Severity: SeverityError,
			Message:  emptyReposMessageConstant,
			Path:     document.Path,
		})
		return issues
	}

	for repositoryIndex, repository := range document.Config.Repos {
		if len(repository.Hooks) == 0 {
			issues = append(issues, Issue{
				Rule:     RuleEmpty,
				Severity: SeverityError,
				Message:  fmt.Sprintf(emptyHooksMessageTemplateConstant, repositoryLabel(repository)),
				Path:     document.Path,
				Line:     document.RepoLine(repositoryIndex),
			})
		}
	}

	return issues
}

// CheckRepositoryURLs validates that every remote record names a syntactically valid source.
func CheckRepositoryURLs(document precommit.Document) []Issue {
	fieldValidator := validator.New()
	var issues []Issue

	for repositoryIndex, repository := range document.Config.Repos {
		if !repository.IsRemote() {
			continue
		}

		repositoryURL := strings.TrimSpace(repository.Repo)
		if scpLikeRemotePattern.MatchString(repositoryURL) {
			continue
		}
		if validationError := fieldValidator.Var(repositoryURL, urlValidationTagConstant); validationError == nil {
			continue
		}

		issues = append(issues, Issue{
			Rule:     RuleRepoURL,
			Severity: SeverityError,
			Message:  fmt.Sprintf(invalidRepoURLMessageTemplateConstant, repository.Repo),
			Path:     document.Path,
			Line:     document.RepoLine(repositoryIndex),
		})
	}

	return issues
}

// CheckRevisionPins requires remote records to carry immutable-looking revisions
// and forbids revisions on local and meta records.
func CheckRevisionPins(document precommit.Document) []Issue {
	var issues []Issue

	for repositoryIndex, repository := range document.Config.Repos {
		trimmedRevision := strings.TrimSpace(repository.Rev)
		recordLine := document.RepoLine(repositoryIndex)

		if !repository.IsRemote() {
			if len(trimmedRevision) > 0 {
				issues = append(issues, Issue{
					Rule:     RuleRevPin,
					Severity: SeverityError,
					Message:  fmt.Sprintf(forbiddenRevisionMessageTemplateConstant, repositoryLabel(repository)),
					Path:     document.Path,
					Line:     recordLine,
				})
			}
			continue
		}

		if len(trimmedRevision) == 0 {
			issues = append(issues, Issue{
				Rule:     RuleRevPin,
				Severity: SeverityError,
				Message:  fmt.Sprintf(missingRevisionMessageTemplateConstant, repositoryLabel(repository)),
				Path:     document.Path,
				Line:     recordLine,
			})
			continue
		}

		if _, isMutableReference := mutableReferenceNameSet[trimmedRevision]; isMutableReference {
			issues = append(issues, Issue{
				Rule:     RuleRevPin,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf(mutableRevisionMessageTemplateConstant, trimmedRevision, repositoryLabel(repository)),
				Path:     document.Path,
				Line:     recordLine,
			})
			continue
		}

		if !commitHashPattern.MatchString(trimmedRevision) && !versionTagPattern.MatchString(trimmedRevision) {
			issues = append(issues, Issue{
				Rule:     RuleRevPin,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf(unusualRevisionMessageTemplateConstant, trimmedRevision, repositoryLabel(repository)),
				Path:     document.Path,
				Line:     recordLine,
			})
		}
	}

	return issues
}

// CheckPatterns compiles every files/exclude pattern in the document.
func CheckPatterns(document precommit.Document) []Issue {
	var issues []Issue

	appendPatternIssue := func(patternSource string, line int) {
		if len(patternSource) == 0 {
			return
		}
		if _, compileError := regexp.Compile(patternSource); compileError != nil {
			issues = append(issues, Issue{
				Rule:     RuleExcludeRegex,
				Severity: SeverityError,
				Message:  fmt.Sprintf(invalidPatternMessageTemplateConstant, patternSource, compileError),
				Path:     document.Path,
				Line:     line,
			})
		}
	}

	appendPatternIssue(document.Config.Files, 0)
	appendPatternIssue(document.Config.Exclude, 0)

	for repositoryIndex, repository := range document.Config.Repos {
		for hookIndex, hook := range repository.Hooks {
			hookLine := document.HookLine(repositoryIndex, hookIndex)
			appendPatternIssue(hook.Files, hookLine)
			appendPatternIssue(hook.Exclude, hookLine)
		}
	}

	return issues
}

// CheckAnchorHygiene warns about named patterns that are defined but never
// reused, and flags alias references without a matching definition.
func CheckAnchorHygiene(document precommit.Document) []Issue {
	var issues []Issue

	referencedAnchorNames := make(map[string]struct{}, len(document.AliasReferences))
	for _, aliasReference := range document.AliasReferences {
		referencedAnchorNames[aliasReference.Name] = struct{}{}
	}

	definedAnchorNames := make(map[string]struct{}, len(document.AnchorDefinitions))
	for _, anchorDefinition := range document.AnchorDefinitions {
		definedAnchorNames[anchorDefinition.Name] = struct{}{}
		if _, isReferenced := referencedAnchorNames[anchorDefinition.Name]; !isReferenced {
			issues = append(issues, Issue{
				Rule:     RuleAliasHygiene,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf(unusedAnchorMessageTemplateConstant, anchorDefinition.Name),
				Path:     document.Path,
				Line:     anchorDefinition.Line,
			})
		}
	}

	for _, aliasReference := range document.AliasReferences {
		if _, isDefined := definedAnchorNames[aliasReference.Name]; !isDefined {
			issues = append(issues, Issue{
				Rule:     RuleAliasHygiene,
				Severity: SeverityError,
				Message:  fmt.Sprintf(unresolvedAliasMessageTemplateConstant, aliasReference.Name),
				Path:     document.Path,
				Line:     aliasReference.Line,
			})
		}
	}

	return issues
}

// CheckDuplicateHooks flags hook identifiers repeated within one repository
// block unless the repeated entries are reconfigured with distinct settings.
// Every entry is compared against each earlier entry carrying the same
// identifier, in declaration order.
func CheckDuplicateHooks(document precommit.Document) []Issue {
	var issues []Issue

	for repositoryIndex, repository := range document.Config.Repos {
		for hookIndex, hook := range repository.Hooks {
			for earlierIndex := 0; earlierIndex < hookIndex; earlierIndex++ {
				earlierEntry := repository.Hooks[earlierIndex]
				if earlierEntry.ID != hook.ID {
					continue
				}
				if !reflect.DeepEqual(earlierEntry, hook) {
					continue
				}

				issues = append(issues, Issue{
					Rule:     RuleDuplicateHook,
					Severity: SeverityError,
					Message:  fmt.Sprintf(duplicateHookMessageTemplateConstant, hook.ID, repositoryLabel(repository)),
					Path:     document.Path,
					Line:     document.HookLine(repositoryIndex, hookIndex),
				})
				break
			}
		}
	}

	return issues
}

// CheckLocalHooks requires local records to define entry and language per hook.
func CheckLocalHooks(document precommit.Document) []Issue {
	var issues []Issue

	for repositoryIndex, repository := range document.Config.Repos {
		if !repository.IsLocal() {
			continue
		}

		for hookIndex, hook := range repository.Hooks {
			hookLine := document.HookLine(repositoryIndex, hookIndex)
			if len(strings.TrimSpace(hook.Entry)) == 0 {
				issues = append(issues, Issue{
					Rule:     RuleLocalHook,
					Severity: SeverityError,
					Message:  fmt.Sprintf(localHookEntryMessageTemplateConstant, hook.ID),
					Path:     document.Path,
					Line:     hookLine,
				})
			}
			if len(strings.TrimSpace(hook.Language)) == 0 {
				issues = append(issues, Issue{
					Rule:     RuleLocalHook,
					Severity: SeverityError,
					Message:  fmt.Sprintf(localHookLanguageMessageTemplateConstant, hook.ID),
					Path:     document.Path,
					Line:     hookLine,
				})
			}
		}
	}

	return issues
}

func repositoryLabel(repository precommit.Repo) string {
	trimmedRepository := strings.TrimSpace(repository.Repo)
	if len(trimmedRepository) == 0 {
		return "<unnamed>"
	}
	return trimmedRepository
}
