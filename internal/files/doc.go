// Package files reads the raw tabular inputs of a run.
//
// Load dispatches on the file extension: .xlsx workbooks are read from
// their first worksheet, everything else is parsed as CSV. The result is a
// domain.Table holding the header and every data row exactly as found in
// the source; no filtering or coercion happens here.
//
// Any failure to open or parse a source is fatal for the run and is
// reported as an apperrors.AppError of type STORAGE or PARSING.
//
// Example usage:
//
//	inventory, sales, err := files.LoadSources("inventory.csv", "sales.csv")
//	if err != nil {
//	    return err
//	}
package files
