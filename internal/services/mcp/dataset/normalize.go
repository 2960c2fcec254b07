package dataset

import "encoding/json"

// DefaultMaxRows is the row cap applied to every tabular result.
const DefaultMaxRows = 50

// Normalized is the protocol-safe form of a provider result.
type Normalized struct {
	// Value is []Record for tabular results, a single-key map for wrapped
	// scalars, and the raw value otherwise.
	Value any
	// Kind is the shape of the raw result.
	Kind Kind
	// TotalRows is the raw row count for tabular results.
	TotalRows int
	// Truncated is true when rows were dropped to honor the cap.
	Truncated bool
	// Fallback is true when an opaque value was passed through as-is.
	Fallback bool
}

// Rows returns the records of a tabular result.
func (n Normalized) Rows() ([]Record, bool) {
	records, ok := n.Value.([]Record)
	return records, ok
}

// MarshalJSON encodes only the normalized value.
func (n Normalized) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

// Normalizer converts raw results into bounded records. MaxRows is fixed at
// construction; a zero value uses DefaultMaxRows.
type Normalizer struct {
	MaxRows int
}

// NewNormalizer returns a normalizer capped at maxRows rows.
func NewNormalizer(maxRows int) Normalizer {
	return Normalizer{MaxRows: maxRows}
}

// Limit reports the effective row cap.
func (n Normalizer) Limit() int {
	if n.MaxRows <= 0 {
		return DefaultMaxRows
	}
	return n.MaxRows
}

// Normalize reshapes result. Tables keep their first Limit() rows in order.
// Scalars are wrapped as {wrapKey: value} when wrapKey is set. Opaque values
// pass through untouched and are flagged as a fallback.
func (n Normalizer) Normalize(result Result, wrapKey string) Normalized {
	switch result.Kind() {
	case KindTabular:
		table, _ := result.Table()
		return n.normalizeTable(table)
	case KindScalar:
		value := result.Value()
		if wrapKey != "" {
			value = map[string]any{wrapKey: value}
		}
		return Normalized{Value: value, Kind: KindScalar}
	default:
		return Normalized{Value: result.Value(), Kind: KindOpaque, Fallback: true}
	}
}

func (n Normalizer) normalizeTable(table Table) Normalized {
	total := len(table.Rows)
	limit := min(n.Limit(), total)
	records := make([]Record, 0, limit)
	for _, row := range table.Rows[:limit] {
		records = append(records, NewRecord(table.Columns, row))
	}
	return Normalized{
		Value:     records,
		Kind:      KindTabular,
		TotalRows: total,
		Truncated: total > limit,
	}
}
