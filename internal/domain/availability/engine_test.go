package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(t *testing.T, hm string) int {
	t.Helper()
	m, err := ParseClock(hm)
	require.NoError(t, err)
	return m
}

func window(t *testing.T, from, to string) Range {
	return Range{Start: clock(t, from), End: clock(t, to)}
}

func TestSlots_MorningWindowNoBookings(t *testing.T) {
	got := Slots(Input{
		Windows:     []Range{window(t, "09:00", "12:00")},
		Duration:    30,
		Granularity: 30,
	})

	assert.Equal(t,
		[]string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		FormatAll(got),
	)
}

func TestSlots_ExcludesBookedInterval(t *testing.T) {
	got := Slots(Input{
		Windows:     []Range{window(t, "09:00", "12:00")},
		Occupied:    []Range{window(t, "10:00", "10:30")},
		Duration:    30,
		Granularity: 30,
	})

	assert.Equal(t,
		[]string{"09:00", "09:30", "10:30", "11:00", "11:30"},
		FormatAll(got),
	)
}

func TestSlots_LongServiceFitsExactly(t *testing.T) {
	got := Slots(Input{
		Windows:     []Range{window(t, "09:00", "12:00")},
		Duration:    180,
		Granularity: 30,
	})

	assert.Equal(t, []string{"09:00"}, FormatAll(got))
}

func TestSlots_DurationLongerThanWindow(t *testing.T) {
	got := Slots(Input{
		Windows:     []Range{window(t, "09:00", "10:00")},
		Duration:    90,
		Granularity: 30,
	})

	assert.Empty(t, got)
}

func TestSlots_BackToBackIsAllowed(t *testing.T) {
	got := Slots(Input{
		Windows:     []Range{window(t, "09:00", "11:00")},
		Occupied:    []Range{window(t, "09:00", "10:00")},
		Duration:    60,
		Granularity: 30,
	})

	assert.Equal(t, []string{"10:00"}, FormatAll(got))
}

func TestSlots_NeverStraddlesGapBetweenWindows(t *testing.T) {
	got := Slots(Input{
		Windows: []Range{
			window(t, "14:00", "18:00"),
			window(t, "09:00", "12:00"),
		},
		Duration:    60,
		Granularity: 30,
	})

	formatted := FormatAll(got)
	assert.Equal(t, []string{
		"09:00", "09:30", "10:00", "10:30", "11:00",
		"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00",
	}, formatted)
	assert.NotContains(t, formatted, "11:30")
	assert.NotContains(t, formatted, "12:00")
}

func TestSlots_OverlappingWindowsAreDeduplicated(t *testing.T) {
	got := Slots(Input{
		Windows: []Range{
			window(t, "09:00", "11:00"),
			window(t, "10:00", "12:00"),
		},
		Duration:    30,
		Granularity: 30,
	})

	assert.Equal(t,
		[]string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		FormatAll(got),
	)
}

func TestSlots_NotBeforeDropsEarlyCandidates(t *testing.T) {
	got := Slots(Input{
		Windows:     []Range{window(t, "09:00", "12:00")},
		Duration:    30,
		Granularity: 30,
		NotBefore:   clock(t, "10:15"),
	})

	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, FormatAll(got))
}

func TestSlots_InvalidInputs(t *testing.T) {
	assert.Nil(t, Slots(Input{Windows: []Range{window(t, "09:00", "12:00")}}))

	got := Slots(Input{
		Windows:  []Range{{Start: 600, End: 540}},
		Duration: 30,
	})
	assert.Empty(t, got)
}

func TestSlots_DefaultGranularity(t *testing.T) {
	got := Slots(Input{
		Windows:  []Range{window(t, "09:00", "10:00")},
		Duration: 30,
	})

	assert.Equal(t, []string{"09:00", "09:30"}, FormatAll(got))
}

func TestSlots_PropertiesHold(t *testing.T) {
	windows := []Range{window(t, "08:00", "12:00"), window(t, "13:00", "19:30")}
	occupied := []Range{
		window(t, "08:45", "09:30"),
		window(t, "11:00", "12:15"),
		window(t, "15:10", "15:50"),
	}

	for _, duration := range []int{15, 30, 45, 60, 95} {
		for _, step := range []int{5, 15, 30} {
			in := Input{Windows: windows, Occupied: occupied, Duration: duration, Granularity: step}
			got := Slots(in)

			for i, c := range got {
				candidate := Range{Start: c, End: c + duration}
				assert.True(t, WithinWindows(candidate, windows), "candidate %s outside windows", FormatClock(c))
				for _, o := range occupied {
					assert.False(t, candidate.Overlaps(o), "candidate %s overlaps %v", FormatClock(c), o)
				}
				if i > 0 {
					assert.Less(t, got[i-1], c)
				}
			}

			assert.Equal(t, got, Slots(in))
		}
	}
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("13:45")
	require.NoError(t, err)
	assert.Equal(t, 13*60+45, m)

	m, err = ParseClock("24:00")
	require.NoError(t, err)
	assert.Equal(t, MinutesPerDay, m)

	_, err = ParseClock("9h")
	assert.Error(t, err)
}

func TestMinuteOfDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	day := time.Date(2030, 3, 4, 0, 0, 0, 0, loc)

	assert.Equal(t, 9*60+30, MinuteOfDay(day, time.Date(2030, 3, 4, 12, 30, 0, 0, time.UTC)))
	assert.Equal(t, MinutesPerDay+60, MinuteOfDay(day, time.Date(2030, 3, 5, 1, 0, 0, 0, loc)))
}

func TestMinuteOfDay_SpringForwardDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Clocks jump from 02:00 to 03:00 on this date.
	day := time.Date(2030, 3, 10, 0, 0, 0, 0, loc)

	assert.Equal(t, 10*60, MinuteOfDay(day, time.Date(2030, 3, 10, 10, 0, 0, 0, loc)))
	assert.Equal(t, 10*60, MinuteOfDay(day, time.Date(2030, 3, 10, 10, 0, 0, 0, loc).UTC()))
	assert.Equal(t, 1*60+30, MinuteOfDay(day, time.Date(2030, 3, 10, 1, 30, 0, 0, loc)))
	assert.Equal(t, MinutesPerDay, MinuteOfDay(day, time.Date(2030, 3, 11, 0, 0, 0, 0, loc)))
	assert.Equal(t, -60, MinuteOfDay(day, time.Date(2030, 3, 9, 23, 0, 0, 0, loc)))
}

func TestMinuteOfDay_FallBackDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Clocks go back from 02:00 to 01:00 on this date.
	day := time.Date(2030, 11, 3, 0, 0, 0, 0, loc)

	assert.Equal(t, 9*60, MinuteOfDay(day, time.Date(2030, 11, 3, 9, 0, 0, 0, loc)))
	assert.Equal(t, 23*60+30, MinuteOfDay(day, time.Date(2030, 11, 3, 23, 30, 0, 0, loc)))
}

func TestSlots_SpringForwardDayExcludesBooking(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	day := time.Date(2030, 3, 10, 0, 0, 0, 0, loc)

	booked := Range{
		Start: MinuteOfDay(day, time.Date(2030, 3, 10, 10, 0, 0, 0, loc)),
		End:   MinuteOfDay(day, time.Date(2030, 3, 10, 10, 30, 0, 0, loc)),
	}

	got := FormatAll(Slots(Input{
		Windows:     []Range{{Start: 9 * 60, End: 12 * 60}},
		Occupied:    []Range{booked},
		Duration:    30,
		Granularity: 30,
	}))

	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, got)
}

func TestHasOverlaps(t *testing.T) {
	assert.False(t, HasOverlaps([]Range{window(t, "09:00", "12:00"), window(t, "12:00", "18:00")}))
	assert.True(t, HasOverlaps([]Range{window(t, "14:00", "18:00"), window(t, "09:00", "14:30")}))
}

func TestSlots_SameInputSameOutput(t *testing.T) {
	in := Input{
		Windows:     []Range{{Start: 540, End: 720}, {Start: 780, End: 1080}},
		Occupied:    []Range{{Start: 600, End: 645}, {Start: 900, End: 960}},
		Duration:    45,
		Granularity: 15,
		NotBefore:   555,
	}

	first := Slots(in)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Slots(in))
	}
	assert.Equal(t, []Range{{Start: 600, End: 645}, {Start: 900, End: 960}}, in.Occupied, "input must not be mutated")
}
