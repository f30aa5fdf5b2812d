package preprocessing

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/antoinebcx/ElectronML/pkg/errors"
)

// encodeCategory maps a raw categorical value to its training-time code.
//
// An unseen value does not fail: it takes the code of the first declared
// category and raises an UnknownCategoryWarning through the pkg/errors
// warning hook. Models were trained against exactly this behavior, so
// changing the default would silently change predictions. Pipelines built
// with WithStrictCategories return the warning as an error instead.
func (p *Pipeline) encodeCategory(op, feature string, table *categories, value any) (float64, error) {
	label := stringifyCategory(value)
	if code, ok := table.lookup(label); ok {
		return code, nil
	}

	fallback, code, ok := table.first()
	if !ok {
		return 0, errors.NewInvalidNumericValueError(op, feature, value, "feature has no declared categories")
	}

	warning := errors.NewUnknownCategoryWarning(feature, label, fallback)
	if p.strict {
		return 0, errors.WithStack(warning)
	}
	errors.Warn(warning)
	return code, nil
}

// stringifyCategory renders a raw value the way the training pipeline
// stringified the column before label encoding.
func stringifyCategory(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// coerceNumeric turns a raw value into a float64. A non-empty reason
// signals that no numeric interpretation exists.
func coerceNumeric(value any) (float64, string) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) {
			return 0, "value is NaN"
		}
		return v, ""
	case float32:
		if math.IsNaN(float64(v)) {
			return 0, "value is NaN"
		}
		return float64(v), ""
	case int:
		return float64(v), ""
	case int64:
		return float64(v), ""
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, "cannot parse as number"
		}
		return f, ""
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, "cannot parse as number"
		}
		if math.IsNaN(f) {
			return 0, "value is NaN"
		}
		return f, ""
	case bool:
		if v {
			return 1, ""
		}
		return 0, ""
	case nil:
		return 0, "value is null"
	default:
		return 0, fmt.Sprintf("unsupported type %T", value)
	}
}
