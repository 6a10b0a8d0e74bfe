// Package models defines the data structures exchanged with callers of the
// template engine.
package models

import (
	"fmt"
	"math"
	"strconv"
)

// Bindings maps a full label (e.g. "{name0}") to its replacement value.
// Values are strings or numbers; anything else is formatted with fmt.
type Bindings map[string]any

// Strings returns the bindings with every value stringified.
func (b Bindings) Strings() map[string]string {
	out := make(map[string]string, len(b))
	for k, v := range b {
		out[k] = Stringify(v)
	}
	return out
}

// Merge returns a new map holding b overlaid with other.
func (b Bindings) Merge(other Bindings) Bindings {
	out := make(Bindings, len(b)+len(other))
	for k, v := range b {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// IndexedBindings flattens a list of records into bindings whose labels are
// the record key suffixed with the record index, wrapped by label:
// [{"name": "zzz"}] gives {"{name0}": "zzz"} with the default format.
func IndexedBindings(records []map[string]any, label func(name string) string) Bindings {
	out := make(Bindings)
	for i, rec := range records {
		for key, value := range rec {
			out[label(key+strconv.Itoa(i))] = value
		}
	}
	return out
}

// Stringify renders a binding value the way it appears in slide text.
// Floats drop trailing zeros, so 90.0 renders as "90".
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case int:
		return strconv.Itoa(x)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", x)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}
