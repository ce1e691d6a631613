// Package errs defines the error shapes shared across packages.
//
// Query errors are never wrapped in custom types: they reach callers as
// the driver produced them. The types here only describe local
// failures such as invalid configuration.
package errs
