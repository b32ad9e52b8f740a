// Package exporter writes filtered job listings as CSV or XLSX.
//
// CSV output starts with a UTF-8 BOM so spreadsheet tools pick the right
// encoding, and uses the same header as the input dataset so an export can be
// loaded back. XLSX output is a single sheet named Jobs with a bold header.
//
// Example usage:
//
//	format, err := exporter.ParseFormat("xlsx")
//	if err != nil {
//		return err
//	}
//	n, err := exporter.Write(w, format, jobs)
package exporter
