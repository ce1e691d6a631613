// Package sqlerr classifies database driver errors.
//
// It never replaces the driver error: callers still return the original
// (wrapped) error. The classification only feeds structured log fields
// so a connectivity failure can be told apart from a bad SQL fragment.
package sqlerr
