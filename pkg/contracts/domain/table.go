package domain

// RowKind describes how a table row was produced
type RowKind string

const (
	RowSimple      RowKind = "simple"
	RowGroupHeader RowKind = "group_header"
	RowSubRow      RowKind = "sub_row"
)

// Row is a single two-cell table row.
// Indent is kept apart from Label so formatters can escape the label
// without touching markup used for indentation.
type Row struct {
	Label  string  `json:"label"`
	Value  string  `json:"value"`
	Indent string  `json:"indent,omitempty"`
	Kind   RowKind `json:"kind"`
}

// Cells returns the rendered cells of the row
func (r Row) Cells() []string {
	return []string{r.Indent + r.Label, r.Value}
}

// Table is the builder output consumed by formatters
type Table struct {
	Header []string `json:"header,omitempty"`
	Rows   []Row    `json:"rows"`
}

// HasHeader reports whether a header row was supplied
func (t *Table) HasHeader() bool {
	return len(t.Header) > 0
}

// ColumnCount returns the number of columns, header included
func (t *Table) ColumnCount() int {
	cols := 2
	if len(t.Header) > cols {
		cols = len(t.Header)
	}
	return cols
}

// Records flattens the header and rows into string records
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	if t.HasHeader() {
		records = append(records, t.Header)
	}
	for _, row := range t.Rows {
		records = append(records, row.Cells())
	}
	return records
}
