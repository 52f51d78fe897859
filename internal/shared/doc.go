// Package shared groups helpers used by more than one package.
//
// The testutil subpackage provides a buffered slog handler for asserting
// log output and helpers that write source fixtures (CSV and workbook
// files) into a test's temporary directory.
package shared
