package evaluator

import (
	"fmt"
	"math"
	"math/big"

	jsoniter "github.com/json-iterator/go"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	apperrors "github.com/olusolaa/infra-board/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ConvertCtyValue turns a wholly known cty value into plain Go values:
// objects and maps become map[string]any, lists, sets and tuples become []any.
// Whole numbers come back as int64.
func ConvertCtyValue(val cty.Value) (any, error) {
	if !val.IsWhollyKnown() {
		return nil, apperrors.New(apperrors.CodeHCLEvalError, "cannot convert unknown cty value")
	}
	if val.IsNull() {
		return nil, nil
	}
	val, _ = val.UnmarkDeep()

	if val.Type().Equals(cty.Number) {
		bf := val.AsBigFloat()
		if i64, acc := bf.Int64(); acc == big.Exact {
			return i64, nil
		}
		f64, _ := bf.Float64()
		if !math.IsInf(f64, 0) {
			return f64, nil
		}
		return bf.Text('g', -1), nil
	}

	raw, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return nil, &ValueConversionError{Err: fmt.Errorf("marshal %s: %w", val.Type().FriendlyName(), err)}
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ValueConversionError{Err: fmt.Errorf("unmarshal %s: %w", val.Type().FriendlyName(), err)}
	}
	return out, nil
}
