package dataset

import (
	"bytes"
	"encoding/json"
)

// Record is one table row keyed by column name. It keeps the table's column
// order when encoded as JSON.
type Record struct {
	columns []string
	values  []any
}

// NewRecord pairs columns with values. Missing values are null.
func NewRecord(columns []string, values []any) Record {
	row := make([]any, len(columns))
	copy(row, values)
	return Record{columns: columns, values: row}
}

// Get returns the value stored under column.
func (r Record) Get(column string) (any, bool) {
	for i, name := range r.columns {
		if name == column {
			return r.values[i], true
		}
	}
	return nil, false
}

// MarshalJSON encodes the record as a JSON object in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
