package availability

import (
	"testing"
	"time"

	"beedical/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "09:00", want: 540},
		{in: "9:05", want: 545},
		{in: "00:00", want: 0},
		{in: "24:00", want: 1440},
		{in: "23:59", want: 1439},
		{in: "12:60", wantErr: true},
		{in: "25:00", wantErr: true},
		{in: "0900", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
		{in: "10:5", wantErr: true},
		{in: "+9:00", wantErr: true},
		{in: "09:+5", wantErr: true},
		{in: "-1:00", wantErr: true},
		{in: " 9:00", want: 540},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClock_String(t *testing.T) {
	assert.Equal(t, "09:00", Clock(540).String())
	assert.Equal(t, "17:45", Clock(17*60+45).String())
}

func TestWindow_Overlaps(t *testing.T) {
	base := Window{Start: MustParseClock("09:00"), End: MustParseClock("10:00")}

	assert.True(t, base.Overlaps(Window{Start: MustParseClock("09:30"), End: MustParseClock("10:30")}))
	assert.True(t, base.Overlaps(Window{Start: MustParseClock("08:00"), End: MustParseClock("11:00")}))
	assert.False(t, base.Overlaps(Window{Start: MustParseClock("10:00"), End: MustParseClock("11:00")}), "touching end")
	assert.False(t, base.Overlaps(Window{Start: MustParseClock("08:00"), End: MustParseClock("09:00")}), "touching start")
}

func TestGenerate_CoversRangeWithoutGaps(t *testing.T) {
	for _, duration := range []int{5, 15, 20, 30, 45, 60, 90, 240} {
		start, end := MustParseClock("08:30"), MustParseClock("17:10")
		slots := Generate(start, end, duration)

		require.NotEmpty(t, slots)
		assert.Equal(t, start, slots[0].Start)
		assert.Equal(t, end, slots[len(slots)-1].End)
		for i := 1; i < len(slots); i++ {
			assert.Equal(t, slots[i-1].End, slots[i].Start, "duration %d: gap or overlap at %d", duration, i)
			assert.False(t, slots[i-1].Overlaps(slots[i]))
		}
		for i := 0; i < len(slots)-1; i++ {
			assert.Equal(t, duration, slots[i].Minutes())
		}
	}
}

func TestGenerate_ClampsLastSlot(t *testing.T) {
	slots := Generate(MustParseClock("09:00"), MustParseClock("10:45"), 30)

	require.Len(t, slots, 4)
	assert.Equal(t, Window{Start: MustParseClock("10:30"), End: MustParseClock("10:45")}, slots[3])
}

func TestGenerate_DegenerateInput(t *testing.T) {
	assert.Nil(t, Generate(MustParseClock("10:00"), MustParseClock("10:00"), 30))
	assert.Nil(t, Generate(MustParseClock("09:00"), MustParseClock("10:00"), 0))
}

func TestCalculate_NoConstraints(t *testing.T) {
	slots, err := Calculate(Input{
		WorkStart:    "09:00",
		WorkEnd:      "12:00",
		SlotDuration: 60,
		Date:         day("2025-03-10"),
	})

	require.NoError(t, err)
	assert.Equal(t, []Slot{
		{Start: "09:00", End: "10:00"},
		{Start: "10:00", End: "11:00"},
		{Start: "11:00", End: "12:00"},
	}, slots)
}

func TestCalculate_UnavailabilityWindowExcludesOverlappingSlot(t *testing.T) {
	slots, err := Calculate(Input{
		WorkStart:    "09:00",
		WorkEnd:      "12:00",
		SlotDuration: 60,
		Unavailable:  []Period{{Start: "10:00", End: "10:30"}},
		Date:         day("2025-03-10"),
	})

	require.NoError(t, err)
	assert.Equal(t, []Slot{
		{Start: "09:00", End: "10:00"},
		{Start: "11:00", End: "12:00"},
	}, slots)
}

func TestCalculate_BookingsOnlyBlockTheirOwnDate(t *testing.T) {
	target := day("2025-03-10")
	in := Input{
		WorkStart:    "09:00",
		WorkEnd:      "12:00",
		SlotDuration: 60,
		Date:         target,
		Bookings: []Booking{
			{Date: target, Start: "09:00", End: "10:00"},
			{Date: day("2025-03-11"), Start: "11:00", End: "12:00"},
		},
	}

	slots, err := Calculate(in)

	require.NoError(t, err)
	assert.Equal(t, []Slot{
		{Start: "10:00", End: "11:00"},
		{Start: "11:00", End: "12:00"},
	}, slots)
}

func TestCalculate_BookingWithTimeOfDayOnSameDate(t *testing.T) {
	booked := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	slots, err := Calculate(Input{
		WorkStart:    "09:00",
		WorkEnd:      "10:00",
		SlotDuration: 30,
		Date:         day("2025-03-10"),
		Bookings:     []Booking{{Date: booked, Start: "09:30", End: "10:00"}},
	})

	require.NoError(t, err)
	assert.Equal(t, []Slot{{Start: "09:00", End: "09:30"}}, slots)
}

func TestCalculate_WindowInsideWorkingHoursExcludesExactlyOverlappingSlots(t *testing.T) {
	unavailable := Window{Start: MustParseClock("13:10"), End: MustParseClock("14:50")}
	in := Input{
		WorkStart:    "08:00",
		WorkEnd:      "18:00",
		SlotDuration: 20,
		Unavailable:  []Period{{Start: unavailable.Start.String(), End: unavailable.End.String()}},
		Date:         day("2025-03-10"),
	}

	slots, err := Calculate(in)
	require.NoError(t, err)

	kept := make(map[string]bool, len(slots))
	for _, s := range slots {
		kept[s.Start] = true
	}
	for _, w := range Generate(MustParseClock("08:00"), MustParseClock("18:00"), 20) {
		assert.Equal(t, !w.Overlaps(unavailable), kept[w.Start.String()], "slot %s", w.Start)
	}
}

func TestCalculate_IsDeterministic(t *testing.T) {
	in := Input{
		WorkStart:    "08:00",
		WorkEnd:      "12:15",
		SlotDuration: 25,
		Unavailable:  []Period{{Start: "10:00", End: "10:20"}},
		Date:         day("2025-03-10"),
		Bookings:     []Booking{{Date: day("2025-03-10"), Start: "08:25", End: "08:50"}},
	}

	first, err := Calculate(in)
	require.NoError(t, err)
	second, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{name: "malformed work start", in: Input{WorkStart: "9h", WorkEnd: "12:00", SlotDuration: 30}},
		{name: "empty range", in: Input{WorkStart: "12:00", WorkEnd: "09:00", SlotDuration: 30}},
		{name: "zero duration", in: Input{WorkStart: "09:00", WorkEnd: "12:00"}},
		{name: "malformed window", in: Input{WorkStart: "09:00", WorkEnd: "12:00", SlotDuration: 30, Unavailable: []Period{{Start: "x", End: "10:00"}}}},
		{name: "malformed booking", in: Input{WorkStart: "09:00", WorkEnd: "12:00", SlotDuration: 30, Date: day("2025-03-10"), Bookings: []Booking{{Date: day("2025-03-10"), Start: "10:00", End: "1000"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.in)
			require.Error(t, err)
			assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
		})
	}
}

func TestConflicts(t *testing.T) {
	date := day("2025-03-10")
	bookings := []Booking{
		{Date: date, Start: "09:00", End: "09:30"},
		{Date: day("2025-03-11"), Start: "10:00", End: "10:30"},
	}

	hit, err := Conflicts(Window{Start: MustParseClock("09:15"), End: MustParseClock("09:45")}, date, bookings)
	require.NoError(t, err)
	assert.True(t, hit)

	hit, err = Conflicts(Window{Start: MustParseClock("10:00"), End: MustParseClock("10:30")}, date, bookings)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = Conflicts(Window{Start: MustParseClock("09:30"), End: MustParseClock("10:00")}, date, bookings)
	require.NoError(t, err)
	assert.False(t, hit)
}
