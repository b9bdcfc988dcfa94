// Package inventory flattens pre-commit configuration files into hook
// inventory reports for auditing pinned revisions across repositories.
package inventory
