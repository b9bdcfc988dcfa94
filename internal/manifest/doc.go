// Package manifest loads provider hook manifests.
//
// Hook providers advertise their available hooks in a .pre-commit-hooks.yaml
// file at the repository root; verification resolves configured hook
// identifiers against these definitions.
package manifest
