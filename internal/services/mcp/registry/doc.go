// Package registry holds the catalog of named operations the gateway exposes.
//
// Operations are registered once through a Builder at start-up. The built
// Registry is read-only, so concurrent invocations share it without locking.
// Invoke resolves an operation, validates its string parameters, calls the
// provider and normalizes the raw result.
package registry
