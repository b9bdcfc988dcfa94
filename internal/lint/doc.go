// Package lint applies offline structural checks to pre-commit configuration
// documents.
//
// It exposes CommandBuilder for wiring the lint Cobra command, Service for
// driving checks programmatically, and the individual rules evaluating
// repository URLs, revision pins, exclusion patterns, anchor hygiene, and
// duplicate hook identifiers.
package lint
