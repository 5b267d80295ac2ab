// Package store persists completed mining runs to SQLite.
//
// A run is the immutable output of one pipeline execution: the source name
// and threshold, the total basket count, every frequent itemset with its
// support, and every generated rule with its scores in generation order.
// Runs are written once inside a transaction and only read afterward.
//
// The schema lives in EnsureTables; Open configures the modernc.org/sqlite
// driver with WAL journaling for concurrent readers.
package store
