package dataset

// Kind identifies the shape of a raw provider result.
type Kind int

const (
	// KindOpaque is a value whose shape was not recognized.
	KindOpaque Kind = iota
	// KindTabular is a labeled two-dimensional table.
	KindTabular
	// KindScalar is a single string, number, boolean or null.
	KindScalar
)

// String returns the lowercase kind label used in logs and spans.
func (k Kind) String() string {
	switch k {
	case KindTabular:
		return "tabular"
	case KindScalar:
		return "scalar"
	default:
		return "opaque"
	}
}

// Table is a labeled table: named columns and rows of cells in column order.
// A row shorter than Columns has null cells for the missing trailing columns.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Result is the raw value returned by a provider call, tagged with its shape.
// The zero value is an opaque nil.
type Result struct {
	kind  Kind
	table Table
	value any
}

// Tabular builds a tabular result.
func Tabular(columns []string, rows [][]any) Result {
	return Result{kind: KindTabular, table: Table{Columns: columns, Rows: rows}}
}

// Scalar builds a scalar result.
func Scalar(value any) Result {
	return Result{kind: KindScalar, value: value}
}

// Opaque builds a result whose shape is neither tabular nor scalar.
func Opaque(value any) Result {
	return Result{kind: KindOpaque, value: value}
}

// Kind reports the shape tag.
func (r Result) Kind() Kind {
	return r.kind
}

// Table returns the table for tabular results.
func (r Result) Table() (Table, bool) {
	if r.kind != KindTabular {
		return Table{}, false
	}
	return r.table, true
}

// Value returns the wrapped value for scalar and opaque results.
func (r Result) Value() any {
	return r.value
}
