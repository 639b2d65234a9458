package convert

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

var errNotMap = fmt.Errorf("input data is not a map")
var errNotStringValue = fmt.Errorf("map value is not a string")
var errNotSlice = fmt.Errorf("input data is not a slice")
var errNotMapElement = fmt.Errorf("slice element is not a map[string]any")

// ToStringMap converts map[string]any or map[string]string to map[string]string.
// Returns an error if input is not a map or if map[string]any contains non-string values.
// Returns nil map if input is nil.
func ToStringMap(data any) (map[string]string, error) {
	if data == nil {
		return nil, nil
	}
	if m, ok := data.(map[string]string); ok {
		return m, nil
	}
	if mAny, ok := data.(map[string]any); ok {
		result := make(map[string]string, len(mAny))
		for k, v := range mAny {
			vStr, okStr := v.(string)
			if !okStr {
				return nil, fmt.Errorf("key '%s': %w (type %T)", k, errNotStringValue, v)
			}
			result[k] = vStr
		}
		return result, nil
	}
	return nil, fmt.Errorf("%w: input type %T", errNotMap, data)
}

// StringEntries is the lenient form of ToStringMap: non-string values are
// formatted with %v and nil values are dropped.
func StringEntries(data any) map[string]string {
	switch m := data.(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, v := range m {
			if v == nil {
				continue
			}
			if s, ok := v.(string); ok {
				out[k] = s
				continue
			}
			out[k] = fmt.Sprintf("%v", v)
		}
		return out
	}
	return nil
}

// ToSliceOfString converts various slice types to []string.
// Handles []string and []any (converting elements via fmt.Sprintf).
// Returns an error if the input is not a slice.
func ToSliceOfString(data any) ([]string, error) {
	if data == nil {
		return []string{}, nil
	}
	if slice, ok := data.([]string); ok {
		return slice, nil
	}

	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%w: input type %T", errNotSlice, data)
	}

	result := make([]string, 0, val.Len())
	for i := 0; i < val.Len(); i++ {
		result = append(result, fmt.Sprintf("%v", val.Index(i).Interface()))
	}
	return result, nil
}

// ToSliceOfMap converts slice types ([]map[string]any, []any) to []map[string]any.
// Returns an error if input is not a slice or elements are not map[string]any.
func ToSliceOfMap(data any) ([]map[string]any, error) {
	if data == nil {
		return []map[string]any{}, nil
	}
	if sliceMap, ok := data.([]map[string]any); ok {
		return sliceMap, nil
	}

	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%w: input type %T", errNotSlice, data)
	}

	result := make([]map[string]any, 0, val.Len())
	for i := 0; i < val.Len(); i++ {
		item := val.Index(i).Interface()
		mapItem, okMap := item.(map[string]any)
		if !okMap {
			return nil, fmt.Errorf("index %d: %w (type %T)", i, errNotMapElement, item)
		}
		result = append(result, mapItem)
	}
	return result, nil
}

// ToBlock returns a nested block as a map. Blocks decoded from HCL or state
// files arrive as a single-element list; a bare map is accepted as well.
func ToBlock(data any) (map[string]any, bool) {
	switch v := data.(type) {
	case map[string]any:
		return v, true
	case []map[string]any:
		if len(v) > 0 {
			return v[0], true
		}
	case []any:
		if len(v) > 0 {
			m, ok := v[0].(map[string]any)
			return m, ok
		}
	}
	return nil, false
}

// ToInt accepts integral numbers of any kind, including float64 values
// produced by JSON decoding, and numeric strings.
func ToInt(data any) (int, bool) {
	f, ok := ToFloat64(data)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// ToFloat64 accepts numbers of any kind and numeric strings.
func ToFloat64(data any) (float64, bool) {
	switch v := data.(type) {
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	case nil:
		return 0, false
	}
	val := reflect.ValueOf(data)
	for val.Kind() == reflect.Ptr && !val.IsNil() {
		val = val.Elem()
	}
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(val.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(val.Uint()), true
	case reflect.Float32, reflect.Float64:
		return val.Float(), true
	}
	return 0, false
}

// ToBool accepts booleans and the strings "true" and "false".
func ToBool(data any) (bool, bool) {
	switch v := data.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	}
	return false, false
}

// IsEmpty reports whether an argument value carries nothing: nil, a zero
// scalar, or an empty string, map or list.
func IsEmpty(data any) bool {
	if data == nil {
		return true
	}
	val := reflect.ValueOf(data)
	switch val.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return val.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return val.IsNil()
	default:
		return val.IsZero()
	}
}
