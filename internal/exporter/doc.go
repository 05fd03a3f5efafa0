// Package exporter renders assembled tables in the supported output formats.
//
// Formatters are looked up by name from a fixed registry:
//
// LaTeX: latex_longtable (default), latex, latex_raw and latex_booktabs.
// Cells are padded to the column width and escaped, except in latex_raw.
// Sub-row indentation such as `\quad ` is emitted verbatim.
//
// Text: plain, simple and grid tables plus pipe and github markdown, drawn
// with tablewriter.
//
// Delimited: csv and tsv.
//
// Workbook: xlsx, written with excelize. It is binary and cannot be wrapped
// with prepend or append text.
//
// Example usage:
//
//	out, err := exporter.Render("latex_longtable", table)
//	if err != nil {
//	    return err
//	}
package exporter
