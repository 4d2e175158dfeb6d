package ranges_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/schedule-engine/offsets"
	"github.com/warp/schedule-engine/ranges"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func collect(t *testing.T, spec ranges.Spec) []time.Time {
	t.Helper()
	seq, err := ranges.Generate(spec)
	require.NoError(t, err)
	out, err := seq.Collect()
	require.NoError(t, err)
	return out
}

// =============================================================================
// START + PERIODS
// =============================================================================

func TestGenerate_StartAndPeriods(t *testing.T) {
	start := date(2023, time.January, 2) // Monday
	got := collect(t, ranges.Spec{
		Start:   &start,
		Periods: 5,
		Offset:  offsets.NewBusinessDay(1),
	})

	want := []time.Time{
		date(2023, time.January, 2),
		date(2023, time.January, 3),
		date(2023, time.January, 4),
		date(2023, time.January, 5),
		date(2023, time.January, 6),
	}
	assert.Equal(t, want, got)
}

func TestGenerate_MisalignedStartSnapsForward(t *testing.T) {
	start := date(2023, time.January, 1) // Sunday
	got := collect(t, ranges.Spec{
		Start:   &start,
		Periods: 3,
		Offset:  offsets.NewBusinessDay(1),
	})
	assert.Equal(t, date(2023, time.January, 2), got[0])
	assert.Len(t, got, 3)
}

func TestGenerate_MonthEnds(t *testing.T) {
	start := date(2023, time.January, 15)
	got := collect(t, ranges.Spec{
		Start:   &start,
		Periods: 3,
		Offset:  offsets.NewMonthEnd(1),
	})

	want := []time.Time{
		date(2023, time.January, 31),
		date(2023, time.February, 28),
		date(2023, time.March, 31),
	}
	assert.Equal(t, want, got)
}

func TestGenerate_WeeklyAnchored(t *testing.T) {
	wMon, err := offsets.NewWeekOn(1, offsets.Monday)
	require.NoError(t, err)

	start := date(2023, time.January, 1) // Sunday
	got := collect(t, ranges.Spec{Start: &start, Periods: 3, Offset: wMon})

	want := []time.Time{
		date(2023, time.January, 2),
		date(2023, time.January, 9),
		date(2023, time.January, 16),
	}
	assert.Equal(t, want, got)
}

// =============================================================================
// END + PERIODS
// =============================================================================

func TestGenerate_EndAndPeriods(t *testing.T) {
	end := date(2023, time.January, 6) // Friday
	got := collect(t, ranges.Spec{
		End:     &end,
		Periods: 3,
		Offset:  offsets.NewBusinessDay(1),
	})

	want := []time.Time{
		date(2023, time.January, 4),
		date(2023, time.January, 5),
		date(2023, time.January, 6),
	}
	assert.Equal(t, want, got)
}

// =============================================================================
// START + END
// =============================================================================

func TestGenerate_StartAndEnd(t *testing.T) {
	start := date(2023, time.January, 1)
	end := date(2023, time.January, 10)
	got := collect(t, ranges.Spec{
		Start:  &start,
		End:    &end,
		Offset: offsets.NewBusinessDay(1),
	})

	want := []time.Time{
		date(2023, time.January, 2),
		date(2023, time.January, 3),
		date(2023, time.January, 4),
		date(2023, time.January, 5),
		date(2023, time.January, 6),
		date(2023, time.January, 9),
		date(2023, time.January, 10),
	}
	assert.Equal(t, want, got)
}

func TestGenerate_WeekendOnlyWindowIsEmpty(t *testing.T) {
	// Snapping a Saturday forward and a Sunday back inverts the bounds.
	start := date(2023, time.January, 7)
	end := date(2023, time.January, 8)
	got := collect(t, ranges.Spec{
		Start:  &start,
		End:    &end,
		Offset: offsets.NewBusinessDay(1),
	})
	assert.Empty(t, got)
}

func TestGenerate_DefaultOffsetIsBusinessDay(t *testing.T) {
	start := date(2023, time.January, 7) // Saturday
	got := collect(t, ranges.Spec{Start: &start, Periods: 2})
	assert.Equal(t, []time.Time{
		date(2023, time.January, 9),
		date(2023, time.January, 10),
	}, got)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestGenerate_InsufficientSpec(t *testing.T) {
	start := date(2023, time.January, 2)

	_, err := ranges.Generate(ranges.Spec{Offset: offsets.NewBusinessDay(1)})
	assert.True(t, errors.Is(err, ranges.ErrInsufficientRangeSpec))

	_, err = ranges.Generate(ranges.Spec{Start: &start})
	assert.True(t, errors.Is(err, ranges.ErrInsufficientRangeSpec))

	_, err = ranges.Generate(ranges.Spec{Periods: 5})
	assert.True(t, errors.Is(err, ranges.ErrInsufficientRangeSpec))
}

// =============================================================================
// NON-PROGRESSION GUARD
// =============================================================================

func TestGenerate_NonProgressingOffset(t *testing.T) {
	start := date(2023, time.January, 2)
	end := date(2023, time.January, 5)
	seq, err := ranges.Generate(ranges.Spec{
		Start:  &start,
		End:    &end,
		Offset: offsets.NewHour(0),
	})
	require.NoError(t, err)

	_, ok := seq.Next()
	assert.False(t, ok)
	assert.True(t, errors.Is(seq.Err(), ranges.ErrNonProgressingOffset))

	var npe *ranges.NonProgressingOffsetError
	require.True(t, errors.As(seq.Err(), &npe))
	assert.Equal(t, start, npe.At)
}

func TestCollect_NoPartialResultsOnError(t *testing.T) {
	start := date(2023, time.January, 2)
	end := date(2023, time.January, 5)
	seq, err := ranges.Generate(ranges.Spec{
		Start:  &start,
		End:    &end,
		Offset: offsets.NewHour(0),
	})
	require.NoError(t, err)

	got, err := seq.Collect()
	assert.Nil(t, got)
	assert.Error(t, err)
}

func TestSequence_ExhaustionIsSticky(t *testing.T) {
	start := date(2023, time.January, 2)
	seq, err := ranges.Generate(ranges.Spec{
		Start:   &start,
		Periods: 1,
		Offset:  offsets.NewBusinessDay(1),
	})
	require.NoError(t, err)

	_, ok := seq.Next()
	assert.True(t, ok)
	_, ok = seq.Next()
	assert.False(t, ok)
	_, ok = seq.Next()
	assert.False(t, ok)
	assert.NoError(t, seq.Err())
}

// =============================================================================
// NORMALIZE
// =============================================================================

func TestNormalize(t *testing.T) {
	want := date(2023, time.March, 10)

	got, err := ranges.Normalize(want)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ranges.Normalize("2023-03-10")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ranges.Normalize("2023-03-10T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.March, 10, 12, 30, 0, 0, time.UTC), got)

	got, err = ranges.Normalize("2023-03-10 12:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.March, 10, 12, 30, 0, 0, time.UTC), got)

	got, err = ranges.Normalize(int64(1678406400))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNormalize_Rejects(t *testing.T) {
	_, err := ranges.Normalize("not a date")
	assert.True(t, errors.Is(err, ranges.ErrBadTimestamp))

	_, err = ranges.Normalize(struct{}{})
	assert.True(t, errors.Is(err, ranges.ErrBadTimestamp))
}
