package offsets_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/schedule-engine/offsets"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

// =============================================================================
// BUSINESS DAY
// =============================================================================

func TestBusinessDay_SkipsWeekends(t *testing.T) {
	b := offsets.NewBusinessDay(1)

	// Friday advances over the weekend to Monday.
	assert.Equal(t, date(2023, time.January, 9), b.Apply(date(2023, time.January, 6)))

	// Midweek is a plain next day.
	assert.Equal(t, date(2023, time.January, 5), b.Apply(date(2023, time.January, 4)))
}

func TestBusinessDay_Backward(t *testing.T) {
	b := offsets.NewBusinessDay(-1)

	// Monday steps back over the weekend to Friday.
	assert.Equal(t, date(2023, time.January, 6), b.Apply(date(2023, time.January, 9)))
}

func TestBusinessDay_ZeroSnapsForward(t *testing.T) {
	b := offsets.NewBusinessDay(0)

	// Saturday snaps forward to Monday.
	assert.Equal(t, date(2023, time.January, 9), b.Apply(date(2023, time.January, 7)))

	// A weekday is already on the lattice.
	assert.Equal(t, date(2023, time.January, 4), b.Apply(date(2023, time.January, 4)))
}

func TestBusinessDay_MultiStep(t *testing.T) {
	// Thursday + 2 business days crosses the weekend.
	b := offsets.NewBusinessDay(2)
	assert.Equal(t, date(2023, time.January, 9), b.Apply(date(2023, time.January, 5)))
}

func TestBusinessDay_DeltaAccumulatesClosedForm(t *testing.T) {
	// GIVEN: a business day carrying a 2h sub-day delta
	b := offsets.NewBusinessDay(1).AddDelta(2 * time.Hour)

	// WHEN: applied to Friday 10:00
	got := b.Apply(at(2023, time.January, 6, 10, 0))

	// THEN: the whole-day walk lands on Monday 10:00, then the delta is added
	assert.Equal(t, at(2023, time.January, 9, 12, 0), got)

	// Accumulating again composes without re-walking.
	b2 := b.AddDelta(30 * time.Minute)
	assert.Equal(t, 2*time.Hour+30*time.Minute, b2.Delta())
}

func TestBusinessDay_AddTick(t *testing.T) {
	b := offsets.NewBusinessDay(1).AddTick(offsets.NewHour(3))
	assert.Equal(t, 3*time.Hour, b.Delta())
}

func TestBusinessDay_Normalize(t *testing.T) {
	b := offsets.NewBusinessDay(1).WithNormalize(true)
	assert.Equal(t, date(2023, time.January, 9), b.Apply(at(2023, time.January, 6, 16, 45)))
}

func TestBusinessDay_OnOffset(t *testing.T) {
	b := offsets.NewBusinessDay(1)
	assert.True(t, b.OnOffset(date(2023, time.January, 4)))  // Wednesday
	assert.False(t, b.OnOffset(date(2023, time.January, 7))) // Saturday
	assert.False(t, b.OnOffset(date(2023, time.January, 8))) // Sunday
}

func TestBusinessDay_FreqStr(t *testing.T) {
	assert.Equal(t, "B", offsets.FreqStr(offsets.NewBusinessDay(1)))
	assert.Equal(t, "2B", offsets.FreqStr(offsets.NewBusinessDay(2)))
	assert.Equal(t, "-1B", offsets.FreqStr(offsets.NewBusinessDay(-1)))
	assert.Equal(t, "B+2H", offsets.FreqStr(offsets.NewBusinessDay(1).AddDelta(2*time.Hour)))
	assert.Equal(t, "B-30Min", offsets.FreqStr(offsets.NewBusinessDay(1).AddDelta(-30*time.Minute)))
	assert.Equal(t, "B+1D2H", offsets.FreqStr(offsets.NewBusinessDay(1).AddDelta(26*time.Hour)))
}
