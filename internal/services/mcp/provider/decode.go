package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/dataset"
)

// orderedObject is a JSON object that remembers key order.
type orderedObject struct {
	keys   []string
	values map[string]any
}

// Decode reads one JSON document and tags its shape. An array of objects is
// tabular with columns in first-seen key order; a bare string, number,
// boolean or null is scalar; anything else is opaque. Numbers decode as
// json.Number so their text is preserved.
func Decode(r io.Reader) (dataset.Result, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	value, err := decodeValue(dec)
	if err != nil {
		return dataset.Result{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return dataset.Result{}, fmt.Errorf("unexpected data after JSON document")
	}
	return classify(value), nil
}

func classify(value any) dataset.Result {
	switch v := value.(type) {
	case []any:
		if table, ok := tableOf(v); ok {
			return dataset.Tabular(table.Columns, table.Rows)
		}
		return dataset.Opaque(plain(v))
	case *orderedObject:
		return dataset.Opaque(plain(v))
	default:
		return dataset.Scalar(v)
	}
}

func tableOf(items []any) (dataset.Table, bool) {
	objects := make([]*orderedObject, 0, len(items))
	for _, item := range items {
		object, ok := item.(*orderedObject)
		if !ok {
			return dataset.Table{}, false
		}
		objects = append(objects, object)
	}
	var columns []string
	seen := make(map[string]struct{})
	for _, object := range objects {
		for _, key := range object.keys {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			columns = append(columns, key)
		}
	}
	rows := make([][]any, len(objects))
	for i, object := range objects {
		row := make([]any, len(columns))
		for c, column := range columns {
			row[c] = plain(object.values[column])
		}
		rows[i] = row
	}
	return dataset.Table{Columns: columns, Rows: rows}, true
}

// plain converts ordered objects back into ordinary maps.
func plain(value any) any {
	switch v := value.(type) {
	case *orderedObject:
		out := make(map[string]any, len(v.keys))
		for _, key := range v.keys {
			out[key] = plain(v.values[key])
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

func decodeValue(dec *json.Decoder) (any, error) {
	token, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := token.(json.Delim)
	if !ok {
		return token, nil
	}
	switch delim {
	case '[':
		items := []any{}
		for dec.More() {
			item, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return items, nil
	case '{':
		object := &orderedObject{values: make(map[string]any)}
		for dec.More() {
			keyToken, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyToken.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyToken)
			}
			value, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			if _, dup := object.values[key]; !dup {
				object.keys = append(object.keys, key)
			}
			object.values[key] = value
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return object, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}
