// Package numeric flattens the wide-integer values the DuckDB driver hands
// back for large counters (HUGEINT as *big.Int, UBIGINT as uint64) into the
// float64 representation the rest of the system works with. The conversion
// narrows; counters beyond the float64 integer range lose precision.
package numeric

import (
	"math/big"
	"reflect"
)

// Normalize recursively converts wide integers within a driver value.
// nil passes through, sequences are mapped element-wise, keyed records
// value-wise; anything else is returned unchanged. Normalize never fails
// and is idempotent.
func Normalize(value any) any {

	switch val := value.(type) {
	case nil:
		return nil

	case *big.Int:
		if val == nil {
			return nil
		}
		f, _ := new(big.Float).SetInt(val).Float64()
		return f

	case big.Int:
		f, _ := new(big.Float).SetInt(&val).Float64()
		return f

	case uint64:
		return float64(val)

	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = Normalize(elem)
		}
		return out

	case map[string]any:
		out := make(map[string]any, len(val))
		for key, elem := range val {
			out[key] = Normalize(elem)
		}
		return out

	case []byte, string:
		return val
	}

	// List-typed driver values arrive as concrete slice types; materialize
	// them into a generic sequence and map element-wise.
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	}

	return value
}
