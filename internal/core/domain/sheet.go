package domain

// Sheet is one workbook tab: a header row plus data rows, cells
// addressable by zero-based column index. Data rows may be shorter than
// the header when trailing cells are empty.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// RowResult pairs a classified record with the zero-based index of the
// data row it came from, so the sink can align annotations to rows that
// were skipped (blank device name).
type RowResult struct {
	RowIndex int
	Record   Record
}
