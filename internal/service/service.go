// Package service contains the logic callers run on query results.
//
// It sits between the caller and the table package: the table package
// does the pure filtering, this layer reports what was altered through
// the logger.
package service
