// business.go - the business day offset: weekdays Mon-Fri, no holiday
// calendar. Apply walks in unit-day steps, only counting days that land on a
// weekday. A sub-day delta and a normalize-to-midnight flag ride along and
// are applied after the whole-day walk; combining with a plain duration
// accumulates the delta in closed form rather than re-walking.

package offsets

import (
	"fmt"
	"strings"
	"time"
)

// BusinessDay advances by n business days.
type BusinessDay struct {
	n         int
	delta     time.Duration
	normalize bool
}

// NewBusinessDay returns an offset of n business days.
func NewBusinessDay(n int) BusinessDay {
	return BusinessDay{n: n}
}

// WithNormalize returns a copy that truncates results to midnight before the
// sub-day delta is added.
func (b BusinessDay) WithNormalize(normalize bool) BusinessDay {
	b.normalize = normalize
	return b
}

// AddDelta returns a copy whose sub-day delta accumulates d. This is the
// closed-form combination of a business day offset with a plain duration.
func (b BusinessDay) AddDelta(d time.Duration) BusinessDay {
	b.delta += d
	return b
}

// AddTick combines the offset with a fixed-duration tick.
func (b BusinessDay) AddTick(t Tick) BusinessDay {
	return b.AddDelta(t.Delta())
}

// Delta returns the accumulated sub-day delta.
func (b BusinessDay) Delta() time.Duration { return b.delta }

func (b BusinessDay) Apply(t time.Time) time.Time {
	n := b.n
	if n == 0 && isWeekend(t) {
		n = 1
	}

	result := t
	for n != 0 {
		k := 1
		if n < 0 {
			k = -1
		}
		result = result.AddDate(0, 0, k)
		if !isWeekend(result) {
			n -= k
		}
	}

	if b.normalize {
		result = midnight(result)
	}
	return result.Add(b.delta)
}

func (b BusinessDay) OnOffset(t time.Time) bool {
	return !isWeekend(t)
}

func (b BusinessDay) IsAnchored() bool { return b.n == 1 }
func (b BusinessDay) N() int           { return b.n }
func (b BusinessDay) RuleCode() string { return "B" }

func (b BusinessDay) withN(n int) Offset {
	b.n = n
	return b
}

func (b BusinessDay) family() string { return "B" }

func (b BusinessDay) paramsKey() string {
	return fmt.Sprintf("B|n=%d|delta=%d|normalize=%t", b.n, b.delta, b.normalize)
}

// freqSuffix renders the sub-day delta, e.g. "+2H30Min" or "-1D".
func (b BusinessDay) freqSuffix() string {
	if b.delta == 0 {
		return ""
	}
	d := b.delta
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}

	var sb strings.Builder
	if days := d / (24 * time.Hour); days > 0 {
		fmt.Fprintf(&sb, "%dD", days)
		d -= days * 24 * time.Hour
	}
	if hrs := d / time.Hour; hrs > 0 {
		fmt.Fprintf(&sb, "%dH", hrs)
		d -= hrs * time.Hour
	}
	if mins := d / time.Minute; mins > 0 {
		fmt.Fprintf(&sb, "%dMin", mins)
		d -= mins * time.Minute
	}
	if secs := d / time.Second; secs > 0 {
		fmt.Fprintf(&sb, "%ds", secs)
		d -= secs * time.Second
	}
	if us := d / time.Microsecond; us > 0 {
		fmt.Fprintf(&sb, "%dus", us)
	}
	return sign + sb.String()
}
