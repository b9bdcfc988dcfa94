// Package schema validates configuration documents against the embedded
// JSON Schema describing the pre-commit configuration surface.
//
// The embedded schema is generated from the Go model types by
// tools/schema-generator and committed alongside the code.
package schema
