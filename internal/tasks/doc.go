// Package tasks implements dataset operations around the report suite: CSV
// imports into the dataset tables and concurrent execution of the full suite.
//
// The importer enforces the malformed-value policy at the boundary: rows that
// fail to parse or validate are skipped and counted, never stored, so every
// report downstream sees complete numeric data.
package tasks
