// Package repository handles all interactions with the database.
//
// It contains the raw SQL for the statcast queries and the methods that
// run them, turning pgx rows into in-memory tables. SQL fragments and
// table names are trusted input and are concatenated as given.
package repository
