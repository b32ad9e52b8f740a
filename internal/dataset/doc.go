// Package dataset reads the employment data file into an immutable
// domain.Dataset and keeps it for the life of the process.
//
// CSV and XLSX inputs share one header layout (see Columns). Columns are
// located by header name, cells are trimmed, and rows that cannot be turned
// into a JobListing are skipped and counted rather than failing the load.
//
// Store is populated at most once. A failed load is logged and leaves an
// empty dataset in place until the process restarts.
package dataset
