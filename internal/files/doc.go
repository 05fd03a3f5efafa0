// Package files provides the file system operations of a conversion run.
//
// Manager reads the report and the optional prepend/append documents, resolving
// relative paths that do not exist as given against the working directory. It
// writes the rendered document as prepend + table + append, byte for byte.
//
// Example usage:
//
//	m := files.NewManager(logger)
//	report, err := m.ReadText("table one.txt")
//	...
//	_, err = m.WriteDocument("table1.tex", preamble, body, closing)
package files
