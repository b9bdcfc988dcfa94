package lint

// Severity classifies a diagnostic.
type Severity string

// Supported diagnostic severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule identifiers reported with diagnostics.
const (
	RuleParse         = "parse"
	RuleSchema        = "schema"
	RuleEmpty         = "empty"
	RuleRepoURL       = "repo-url"
	RuleRevPin        = "rev-pin"
	RuleExcludeRegex  = "exclude-regex"
	RuleAliasHygiene  = "alias-hygiene"
	RuleDuplicateHook = "duplicate-hook"
	RuleLocalHook     = "local-hook"
)

// Issue is one diagnostic produced against a configuration document.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Path     string   `json:"path"`
	Line     int      `json:"line,omitempty"`
}

// HasErrors reports whether any issue carries error severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
