// Package dataprocessing turns a fixed-width two-column report into table rows.
//
// # Architecture
//
// The package is organized into two stages:
//
// 1. Parser: splits each line at a fixed column, cleans the fields and groups
// values under the most recent non-empty label
// 2. TableBuilder: applies chunk rules to each label's values and emits simple,
// group header and sub rows
//
// # Usage
//
//	opts := dataprocessing.DefaultParseOptions()
//	data, err := dataprocessing.ParseLines(lines, opts)
//	if err != nil {
//	    return err
//	}
//	table, err := dataprocessing.BuildTable(data, dataprocessing.BuildOptions{Indent: `\quad `})
//
// # Data Flow
//
//	report lines → Parser → GroupedData → TableBuilder → Table
//
// # Chunk Rules
//
// A chunk is the ordered list of values collected for one label. Its first half
// holds sub-labels and its second half the matching values. DefaultRules collapses
// TRUE/FALSE summaries to the TRUE value and rewrites a FALSE-only 100% summary
// to "0 (0)".
//
// # Error Handling
//
// A continuation line before any label yields a MissingPriorLabelError and a
// multi-value chunk with an odd length yields an UnevenValuePairingError. Both
// are fatal. Empty chunks are logged and skipped.
package dataprocessing
