package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T) *TimeGrid {
	t.Helper()
	grid, err := NewTimeGrid("UTC", 9, 17, 30)
	require.NoError(t, err)
	return grid
}

func TestNewTimeGrid_InvalidConfig(t *testing.T) {
	tests := []struct {
		name        string
		timezone    string
		startHour   int
		endHour     int
		slotMinutes int
	}{
		{"unknown timezone", "Mars/Olympus", 9, 17, 30},
		{"start after end", "UTC", 17, 9, 30},
		{"start equals end", "UTC", 9, 9, 30},
		{"negative start", "UTC", -1, 17, 30},
		{"end beyond 24", "UTC", 9, 25, 30},
		{"slot too short", "UTC", 9, 17, 1},
		{"slot too long", "UTC", 9, 17, 500},
		{"slot not dividing hour", "UTC", 9, 17, 45},
		{"zero slot", "UTC", 9, 17, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeGrid(tt.timezone, tt.startHour, tt.endHour, tt.slotMinutes)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidGridConfig)
		})
	}
}

func TestWeekStart_MondayBased(t *testing.T) {
	grid := mustGrid(t)

	// 2025-06-11 - среда
	wednesday := time.Date(2025, 6, 11, 15, 42, 7, 0, time.UTC)
	start := grid.WeekStart(wednesday)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Monday, start.Weekday())

	// Понедельник остаётся своим же началом недели
	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, grid.WeekStart(monday))

	// Воскресенье относится к уходящей неделе, не к следующей
	sunday := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, monday, grid.WeekStart(sunday))
}

func TestWeekRange_Paging(t *testing.T) {
	grid := mustGrid(t)
	now := time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)

	start0, end0 := grid.WeekRange(0, now)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), start0)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), end0)

	// Страница N сдвигает окно ровно на N недель, окна стыкуются без зазоров
	start1, end1 := grid.WeekRange(1, now)
	assert.Equal(t, end0, start1)
	assert.Equal(t, start1.AddDate(0, 0, 7), end1)

	start3, _ := grid.WeekRange(3, now)
	assert.Equal(t, start0.AddDate(0, 0, 21), start3)
}

func TestSlotBoundaries_FullWeek(t *testing.T) {
	grid := mustGrid(t)
	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	slots := grid.SlotBoundaries(weekStart)

	// 5 рабочих дней по 16 слотов (9:00..16:30)
	require.Len(t, slots, 80)

	assert.Equal(t, time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC), slots[0])
	assert.Equal(t, time.Date(2025, 6, 9, 16, 30, 0, 0, time.UTC), slots[15])
	// Последний слот недели - пятница 16:30, граница 17:00 не бронируема
	assert.Equal(t, time.Date(2025, 6, 13, 16, 30, 0, 0, time.UTC), slots[79])

	// Строгое возрастание, без дубликатов
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].After(slots[i-1]), "slots must be strictly ascending at %d", i)
	}

	// Выходные не попадают в сетку
	for _, s := range slots {
		assert.NotEqual(t, time.Saturday, s.Weekday())
		assert.NotEqual(t, time.Sunday, s.Weekday())
	}
}

func TestSlotBoundaries_Deterministic(t *testing.T) {
	grid := mustGrid(t)
	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	first := grid.SlotBoundaries(weekStart)
	second := grid.SlotBoundaries(weekStart)
	assert.Equal(t, first, second)
}

func TestIsAligned(t *testing.T) {
	grid := mustGrid(t)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"first slot of day", time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC), true},
		{"half hour boundary", time.Date(2025, 6, 9, 13, 30, 0, 0, time.UTC), true},
		{"last bookable slot", time.Date(2025, 6, 9, 16, 30, 0, 0, time.UTC), true},
		{"closing boundary not bookable", time.Date(2025, 6, 9, 17, 0, 0, 0, time.UTC), false},
		{"after hours", time.Date(2025, 6, 9, 18, 0, 0, 0, time.UTC), false},
		{"before opening", time.Date(2025, 6, 9, 8, 30, 0, 0, time.UTC), false},
		{"off-grid minute", time.Date(2025, 6, 9, 9, 15, 0, 0, time.UTC), false},
		{"non-zero seconds", time.Date(2025, 6, 9, 9, 0, 30, 0, time.UTC), false},
		{"non-zero nanoseconds", time.Date(2025, 6, 9, 9, 0, 0, 1, time.UTC), false},
		{"saturday", time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, grid.IsAligned(tt.t))
		})
	}
}

func TestIsAligned_NormalizesTimezone(t *testing.T) {
	grid := mustGrid(t)

	// 12:00 UTC, выраженное как 15:00 в UTC+3 - та же граница слота
	plus3 := time.FixedZone("UTC+3", 3*60*60)
	assert.True(t, grid.IsAligned(time.Date(2025, 6, 9, 15, 0, 0, 0, plus3)))

	// 17:30 в UTC+3 = 14:30 UTC - валидно, хотя по стеночным часам зоны это вне окна
	assert.True(t, grid.IsAligned(time.Date(2025, 6, 9, 17, 30, 0, 0, plus3)))
}

func TestSlotBoundaries_CoversEverySlotOfGrid(t *testing.T) {
	grid := mustGrid(t)
	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	for _, s := range grid.SlotBoundaries(weekStart) {
		assert.True(t, grid.IsAligned(s), "boundary %s must be aligned", s)
	}
}

func TestSlotDuration(t *testing.T) {
	grid := mustGrid(t)
	assert.Equal(t, 30*time.Minute, grid.SlotDuration())
	assert.Equal(t, 30, grid.SlotDurationMinutes())
}
