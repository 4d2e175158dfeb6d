// normalize.go - conversion of heterogeneous date-like inputs to the
// canonical time.Time used throughout the engine. time.Time values pass
// through untouched; strings accept RFC 3339 and the common date layouts;
// integers are Unix epoch seconds.

package ranges

import (
	"errors"
	"fmt"
	"time"
)

// ErrBadTimestamp is returned when an input cannot be converted to a point
// in time.
var ErrBadTimestamp = errors.New("unrecognized timestamp")

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize converts a date-like value to time.Time. Supported inputs:
// time.Time (returned as-is), string in one of the accepted layouts
// (interpreted as UTC), and int/int64/float64 Unix epoch seconds.
func Normalize(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.ParseInLocation(layout, x, time.UTC); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, x)
	case int:
		return time.Unix(int64(x), 0).UTC(), nil
	case int64:
		return time.Unix(x, 0).UTC(), nil
	case float64:
		sec := int64(x)
		nsec := int64((x - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %T", ErrBadTimestamp, v)
	}
}
