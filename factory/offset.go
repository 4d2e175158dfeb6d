/*
Package factory provides JSON to offset conversion.

PURPOSE:
  Converts JSON offset definitions into offsets.Offset values. This enables
  schedule configuration without code changes - clients describe the rule in
  JSON, and the factory dispatches to the typed constructors. The open map
  lives only here, at the boundary; past this point every parameter is an
  explicit typed field.

JSON SCHEMA:
  {
    "family": "quarter_begin",   // see family list below
    "n": 2,                       // step multiplier, default 1
    "weekday": 1,                 // week / week_of_month (0=Monday .. 6=Sunday)
    "week": 1,                    // week_of_month only (0-indexed)
    "starting_month": 3,          // quarter families
    "month": 12,                  // year families
    "normalize": true,            // business_day: truncate to midnight
    "delta": "2h30m"              // business_day sub-day delta (Go duration)
  }

FAMILIES:
  business_day, month_end, month_begin, business_month_end,
  business_month_begin, week, week_of_month, quarter_end, quarter_begin,
  business_quarter_end, business_quarter_begin, year_end, year_begin,
  business_year_end, business_year_begin, day, hour, minute, second,
  milli, micro, nano

DEFAULTS:
  Quarter families default starting_month to 3; End year families default
  month to 12 and Begin year families to 1. There is no frequency-string
  parsing here; families are named explicitly.

SEE ALSO:
  - offsets package: typed constructors and validation
  - api package: HTTP surface consuming these definitions
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/warp/schedule-engine/offsets"
)

// OffsetJSON is the JSON representation of an offset definition.
type OffsetJSON struct {
	Family        string `json:"family"`
	N             *int   `json:"n,omitempty"`
	Weekday       *int   `json:"weekday,omitempty"`
	Week          *int   `json:"week,omitempty"`
	Month         *int   `json:"month,omitempty"`
	StartingMonth *int   `json:"starting_month,omitempty"`
	Normalize     bool   `json:"normalize,omitempty"`
	Delta         string `json:"delta,omitempty"`
}

// Parse unmarshals a JSON definition and builds the offset.
func Parse(data []byte) (offsets.Offset, error) {
	var def OffsetJSON
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("invalid offset definition: %w", err)
	}
	return Build(def)
}

// Build validates the definition and constructs the typed offset.
func Build(def OffsetJSON) (offsets.Offset, error) {
	n := 1
	if def.N != nil {
		n = *def.N
	}

	switch def.Family {
	case "business_day":
		b := offsets.NewBusinessDay(n).WithNormalize(def.Normalize)
		if def.Delta != "" {
			d, err := time.ParseDuration(def.Delta)
			if err != nil {
				return nil, fmt.Errorf("invalid business_day delta %q: %w", def.Delta, err)
			}
			b = b.AddDelta(d)
		}
		return b, nil

	case "month_end":
		return offsets.NewMonthEnd(n), nil
	case "month_begin":
		return offsets.NewMonthBegin(n), nil
	case "business_month_end":
		return offsets.NewBusinessMonthEnd(n), nil
	case "business_month_begin":
		return offsets.NewBusinessMonthBegin(n), nil

	case "week":
		if def.Weekday == nil {
			return offsets.NewWeek(n), nil
		}
		return offsets.NewWeekOn(n, offsets.Weekday(*def.Weekday))

	case "week_of_month":
		if def.Weekday == nil || def.Week == nil {
			return nil, fmt.Errorf("week_of_month requires weekday and week")
		}
		return offsets.NewWeekOfMonth(n, *def.Week, offsets.Weekday(*def.Weekday))

	case "quarter_end":
		return offsets.NewQuarterEnd(n, startingMonth(def, 3))
	case "quarter_begin":
		return offsets.NewQuarterBegin(n, startingMonth(def, 3))
	case "business_quarter_end":
		return offsets.NewBusinessQuarterEnd(n, startingMonth(def, 3))
	case "business_quarter_begin":
		return offsets.NewBusinessQuarterBegin(n, startingMonth(def, 3))

	case "year_end":
		return offsets.NewYearEnd(n, month(def, 12))
	case "year_begin":
		return offsets.NewYearBegin(n, month(def, 1))
	case "business_year_end":
		return offsets.NewBusinessYearEnd(n, month(def, 12))
	case "business_year_begin":
		return offsets.NewBusinessYearBegin(n, month(def, 1))

	case "day":
		return offsets.NewDay(n), nil
	case "hour":
		return offsets.NewHour(n), nil
	case "minute":
		return offsets.NewMinute(n), nil
	case "second":
		return offsets.NewSecond(n), nil
	case "milli":
		return offsets.NewMilli(n), nil
	case "micro":
		return offsets.NewMicro(n), nil
	case "nano":
		return offsets.NewNano(n), nil

	default:
		return nil, fmt.Errorf("unknown offset family %q", def.Family)
	}
}

func startingMonth(def OffsetJSON, fallback int) time.Month {
	if def.StartingMonth != nil {
		return time.Month(*def.StartingMonth)
	}
	return time.Month(fallback)
}

func month(def OffsetJSON, fallback int) time.Month {
	if def.Month != nil {
		return time.Month(*def.Month)
	}
	return time.Month(fallback)
}
