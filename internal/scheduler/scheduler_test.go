package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPeaks = []int{9, 13, 18}

func testService() *Service {
	return New(DefaultConfig())
}

func day(yearDay int) time.Time {
	return time.Date(2025, time.March, yearDay, 0, 0, 0, 0, time.UTC)
}

func TestComputeExactFit(t *testing.T) {
	svc := testService()

	res := svc.Compute(Request{
		VideoCount:   6,
		StartDate:    day(10),
		VideosPerDay: 3,
		CustomHours:  testPeaks,
		Now:          day(1),
	})

	require.Len(t, res.Slots, 6)
	assert.Equal(t, 2, res.TotalDays)
	assert.Equal(t, QualityOptimal, res.Quality)

	wantHours := []int{9, 13, 18, 9, 13, 18}
	for i, slot := range res.Slots {
		assert.Equal(t, i, slot.VideoIndex)
		assert.Equal(t, wantHours[i], slot.At.Hour())
		assert.Equal(t, 0, slot.At.Minute())
	}
	assert.Equal(t, 10, res.Slots[0].At.Day())
	assert.Equal(t, 11, res.Slots[3].At.Day())
}

func TestComputeOverCapacityInterpolates(t *testing.T) {
	svc := testService()

	res := svc.Compute(Request{
		VideoCount:   5,
		StartDate:    day(10),
		VideosPerDay: 5,
		CustomHours:  testPeaks,
		Now:          day(1),
	})

	require.Len(t, res.Slots, 5)
	assert.Equal(t, 1, res.TotalDays)

	cfg := DefaultConfig()
	for i, slot := range res.Slots {
		assert.GreaterOrEqual(t, slot.At.Hour(), cfg.DayStartHour)
		assert.LessOrEqual(t, slot.At.Hour(), cfg.DayEndHour)
		if i > 0 {
			assert.True(t, slot.At.After(res.Slots[i-1].At),
				"slot %d should be strictly after slot %d", i, i-1)
		}
	}
	assert.Contains(t, []Quality{QualityCompressed, QualityTight}, res.Quality)
}

func TestComputeSingleVideo(t *testing.T) {
	svc := testService()

	res := svc.Compute(Request{
		VideoCount:   1,
		StartDate:    day(10),
		VideosPerDay: 1,
		Persona:      PersonaGeneral,
		Now:          day(1),
	})

	require.Len(t, res.Slots, 1)
	assert.Equal(t, 1, res.TotalDays)
	assert.Equal(t, QualityOptimal, res.Quality)
	assert.Equal(t, PersonaGeneral.PeakHours()[0], res.Slots[0].At.Hour())
	assert.Equal(t, 10, res.Slots[0].At.Day())
}

func TestComputeZeroVideos(t *testing.T) {
	svc := testService()

	res := svc.Compute(Request{
		VideoCount:   0,
		StartDate:    day(10),
		VideosPerDay: 3,
		Persona:      PersonaGeneral,
		Now:          day(1),
	})

	assert.Empty(t, res.Slots)
	assert.Equal(t, 0, res.TotalDays)
}

func TestComputeSlotVideoBijection(t *testing.T) {
	svc := testService()

	for _, count := range []int{1, 2, 5, 7, 12, 23} {
		res := svc.Compute(Request{
			VideoCount:   count,
			StartDate:    day(10),
			VideosPerDay: 4,
			Persona:      PersonaStudent,
			Now:          day(1),
		})

		require.Len(t, res.Slots, count, "videoCount=%d", count)
		seen := make(map[int]bool, count)
		for _, slot := range res.Slots {
			assert.False(t, seen[slot.VideoIndex], "duplicate index %d", slot.VideoIndex)
			assert.GreaterOrEqual(t, slot.VideoIndex, 0)
			assert.Less(t, slot.VideoIndex, count)
			seen[slot.VideoIndex] = true
		}
	}
}

func TestComputeDayCapacity(t *testing.T) {
	svc := testService()

	res := svc.Compute(Request{
		VideoCount:   7,
		StartDate:    day(10),
		VideosPerDay: 3,
		Persona:      PersonaWorker,
		Now:          day(1),
	})

	require.Len(t, res.Slots, 7)
	assert.Equal(t, 3, res.TotalDays)

	perDay := make(map[int]int)
	for _, slot := range res.Slots {
		perDay[slot.At.Day()]++
	}
	assert.Equal(t, 3, perDay[10])
	assert.Equal(t, 3, perDay[11])
	assert.Equal(t, 1, perDay[12])
}

func TestComputeNoPastSlots(t *testing.T) {
	svc := testService()
	now := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)

	res := svc.Compute(Request{
		VideoCount:   3,
		VideosPerDay: 3,
		StartDate:    day(10),
		CustomHours:  testPeaks,
		Now:          now,
	})

	require.Len(t, res.Slots, 3)
	for _, slot := range res.Slots {
		assert.False(t, slot.At.Before(now), "slot at %v is before now %v", slot.At, now)
	}

	// 9:00 and 13:00 are already gone; 18:00 remains on day one, the other
	// two videos roll over and extend the schedule.
	assert.Equal(t, 18, res.Slots[0].At.Hour())
	assert.Equal(t, 10, res.Slots[0].At.Day())
	assert.Equal(t, 11, res.Slots[1].At.Day())
	assert.Equal(t, 11, res.Slots[2].At.Day())
	assert.Equal(t, 2, res.TotalDays)
}

func TestComputeStartDateInPastClampsToToday(t *testing.T) {
	svc := testService()
	now := time.Date(2025, time.March, 10, 5, 0, 0, 0, time.UTC)

	res := svc.Compute(Request{
		VideoCount:   2,
		VideosPerDay: 2,
		StartDate:    day(3),
		CustomHours:  []int{9, 18},
		Now:          now,
	})

	require.Len(t, res.Slots, 2)
	assert.Equal(t, 10, res.Slots[0].At.Day())
	assert.Equal(t, 10, res.Slots[1].At.Day())
}

func TestComputeIdempotent(t *testing.T) {
	svc := testService()
	req := Request{
		VideoCount:   9,
		StartDate:    day(12),
		VideosPerDay: 4,
		Persona:      PersonaNightOwl,
		Now:          day(2),
	}

	first := svc.Compute(req)
	second := svc.Compute(req)
	assert.Equal(t, first, second)
}

func TestComputeMonotonicWithinDay(t *testing.T) {
	svc := testService()

	res := svc.Compute(Request{
		VideoCount:   16,
		StartDate:    day(10),
		VideosPerDay: 8,
		Persona:      PersonaGeneral,
		Now:          day(1),
	})

	require.Len(t, res.Slots, 16)
	for i := 1; i < len(res.Slots); i++ {
		prev, cur := res.Slots[i-1], res.Slots[i]
		if prev.At.Day() == cur.At.Day() {
			assert.True(t, cur.At.After(prev.At),
				"slots on day %d must be strictly increasing", cur.At.Day())
		}
	}
}

func TestComputeCustomHoursTakePrecedence(t *testing.T) {
	svc := testService()

	res := svc.Compute(Request{
		VideoCount:   2,
		StartDate:    day(10),
		VideosPerDay: 2,
		Persona:      PersonaGeneral,
		CustomHours:  []int{8, 21},
		Now:          day(1),
	})

	require.Len(t, res.Slots, 2)
	assert.Equal(t, 8, res.Slots[0].At.Hour())
	assert.Equal(t, 21, res.Slots[1].At.Hour())
	assert.Equal(t, QualityOptimal, res.Quality)
}

func TestComputeCustomHoursNormalized(t *testing.T) {
	svc := testService()

	// Out-of-range and duplicate hours are dropped before scheduling.
	res := svc.Compute(Request{
		VideoCount:   2,
		StartDate:    day(10),
		VideosPerDay: 2,
		CustomHours:  []int{21, -3, 8, 8, 24, 30},
		Now:          day(1),
	})

	require.Len(t, res.Slots, 2)
	assert.Equal(t, 8, res.Slots[0].At.Hour())
	assert.Equal(t, 21, res.Slots[1].At.Hour())
}

func TestComputeClampsVideosPerDay(t *testing.T) {
	svc := testService()

	res := svc.Compute(Request{
		VideoCount:   4,
		StartDate:    day(10),
		VideosPerDay: -5,
		Persona:      PersonaGeneral,
		Now:          day(1),
	})

	// Defensive clamp to one per day instead of failing the preview.
	require.Len(t, res.Slots, 4)
	assert.Equal(t, 4, res.TotalDays)

	res = svc.Compute(Request{
		VideoCount:   30,
		StartDate:    day(10),
		VideosPerDay: 99,
		Persona:      PersonaGeneral,
		Now:          day(1),
	})

	require.Len(t, res.Slots, 30)
	assert.Equal(t, 3, res.TotalDays)
}

func TestComputeTightSchedule(t *testing.T) {
	svc := New(Config{
		MaxVideosPerDay:      10,
		DayStartHour:         9,
		DayEndHour:           11,
		GoodIntervalMinutes:  90,
		TightIntervalMinutes: 45,
	})

	res := svc.Compute(Request{
		VideoCount:   6,
		StartDate:    day(10),
		VideosPerDay: 6,
		CustomHours:  []int{9, 10, 11},
		Now:          day(1),
	})

	require.Len(t, res.Slots, 6)
	assert.Equal(t, QualityTight, res.Quality)
	assert.Less(t, res.IntervalMinutes, 45)
}

func TestComputeSubsetOfPeaksSpreadsEvenly(t *testing.T) {
	svc := testService()

	res := svc.Compute(Request{
		VideoCount:   2,
		StartDate:    day(10),
		VideosPerDay: 2,
		CustomHours:  testPeaks,
		Now:          day(1),
	})

	// Two videos over three peaks use the first and last hour.
	require.Len(t, res.Slots, 2)
	assert.Equal(t, 9, res.Slots[0].At.Hour())
	assert.Equal(t, 18, res.Slots[1].At.Hour())
}

func TestComputeIntervalReported(t *testing.T) {
	svc := testService()

	res := svc.Compute(Request{
		VideoCount:   3,
		StartDate:    day(10),
		VideosPerDay: 3,
		CustomHours:  testPeaks,
		Now:          day(1),
	})

	// Gaps are 240 and 300 minutes; the reported interval is the smaller.
	assert.Equal(t, 240, res.IntervalMinutes)
	assert.Equal(t, QualityOptimal, res.Quality)
}

func TestComputeDayZeroShiftKeepsOptimal(t *testing.T) {
	svc := testService()
	now := time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)

	res := svc.Compute(Request{
		VideoCount:   3,
		VideosPerDay: 3,
		StartDate:    day(10),
		CustomHours:  testPeaks,
		Now:          now,
	})

	// 9:00 is gone, so the schedule runs 13:00, 18:00, next-day 9:00.
	// Every slot still lands on a declared peak hour with wide spacing,
	// so losing day-0 hours alone must not degrade the grade.
	require.Len(t, res.Slots, 3)
	assert.Equal(t, 13, res.Slots[0].At.Hour())
	assert.Equal(t, 18, res.Slots[1].At.Hour())
	assert.Equal(t, 9, res.Slots[2].At.Hour())
	assert.Equal(t, 300, res.IntervalMinutes)
	assert.Equal(t, QualityOptimal, res.Quality)
}

func TestComputeWideInterpolationGradesCompressed(t *testing.T) {
	svc := testService()

	res := svc.Compute(Request{
		VideoCount:   4,
		VideosPerDay: 4,
		StartDate:    day(10),
		CustomHours:  testPeaks,
		Now:          day(1),
	})

	// One midpoint gets inserted between 13:00 and 18:00. The interval
	// stays wide (150 min), but the inserted slot is off-peak, so the
	// grade is compressed regardless.
	require.Len(t, res.Slots, 4)
	assert.Equal(t, 150, res.IntervalMinutes)
	assert.Equal(t, QualityCompressed, res.Quality)
}

func TestComputeClosePeakHoursGradeGood(t *testing.T) {
	svc := testService()

	res := svc.Compute(Request{
		VideoCount:   2,
		VideosPerDay: 2,
		StartDate:    day(10),
		CustomHours:  []int{9, 10},
		Now:          day(1),
	})

	// Both slots sit on declared hours, no interpolation, but only an
	// hour apart: below the 90 minute mark yet above tight.
	require.Len(t, res.Slots, 2)
	assert.Equal(t, 60, res.IntervalMinutes)
	assert.Equal(t, QualityGood, res.Quality)
}

func TestQualityDefensible(t *testing.T) {
	svc := testService()

	for _, count := range []int{2, 3, 6, 9} {
		res := svc.Compute(Request{
			VideoCount:   count,
			StartDate:    day(10),
			VideosPerDay: 3,
			CustomHours:  testPeaks,
			Now:          day(1),
		})
		// All slots land on declared peak hours with generous spacing.
		assert.Equal(t, QualityOptimal, res.Quality, "videoCount=%d", count)
	}
}
