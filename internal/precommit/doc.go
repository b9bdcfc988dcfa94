// Package precommit models pre-commit configuration files as immutable
// documents.
//
// It exposes Config, Repo, and Hook types mirroring the configuration schema,
// a strict YAML loader that preserves source positions and anchor usage for
// diagnostics, and predicates distinguishing remote providers from the local
// and meta sentinels.
package precommit
