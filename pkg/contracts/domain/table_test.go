package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRow_Cells(t *testing.T) {
	row := Row{Label: "White", Value: "10 (50%)", Indent: `\quad `, Kind: RowSubRow}
	assert.Equal(t, []string{`\quad White`, "10 (50%)"}, row.Cells())

	header := Row{Label: "Race", Kind: RowGroupHeader}
	assert.Equal(t, []string{"Race", ""}, header.Cells())
}

func TestTable_Records(t *testing.T) {
	table := &Table{
		Header: []string{"Characteristic", "Overall"},
		Rows: []Row{
			{Label: "Age", Value: "65 (12.3)", Kind: RowSimple},
			{Label: "Race", Kind: RowGroupHeader},
			{Label: "White", Value: "10 (50%)", Indent: "  ", Kind: RowSubRow},
		},
	}

	assert.True(t, table.HasHeader())
	assert.Equal(t, 2, table.ColumnCount())
	assert.Equal(t, [][]string{
		{"Characteristic", "Overall"},
		{"Age", "65 (12.3)"},
		{"Race", ""},
		{"  White", "10 (50%)"},
	}, table.Records())
}

func TestTable_NoHeader(t *testing.T) {
	table := &Table{Rows: []Row{{Label: "Age", Value: "65", Kind: RowSimple}}}

	assert.False(t, table.HasHeader())
	assert.Equal(t, [][]string{{"Age", "65"}}, table.Records())
}

func TestTable_ColumnCountFollowsWideHeader(t *testing.T) {
	table := &Table{Header: []string{"a", "b", "c"}}
	assert.Equal(t, 3, table.ColumnCount())
}
