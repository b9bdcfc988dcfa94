// Package discovery locates pre-commit configuration files beneath root
// directories.
package discovery
