package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidGridConfig возвращается при некорректной конфигурации расписания.
	// Возникает только на старте процесса, не на пользовательских запросах.
	ErrInvalidGridConfig = errors.New("domain: invalid time grid configuration")
)

// TimeGrid defines the bookable slot grid: business hours, slot length and
// the reference timezone. Built once at startup from configuration and
// immutable afterwards, so it is safe for unsynchronized concurrent reads.
//
// Business days are Monday through Friday. A slot is valid only if the whole
// slot fits inside business hours: with 09:00-17:00 and 30-minute slots the
// last bookable start of a day is 16:30, the 17:00 boundary itself is not
// bookable.
type TimeGrid struct {
	loc          *time.Location
	startHour    int
	endHour      int
	slotDuration time.Duration
}

// NewTimeGrid validates the schedule configuration and builds the grid
func NewTimeGrid(timezone string, startHour, endHour, slotMinutes int) (*TimeGrid, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q: %v", ErrInvalidGridConfig, timezone, err)
	}

	if startHour < 0 || startHour > 23 {
		return nil, fmt.Errorf("%w: business start hour must be within 0..23, got %d", ErrInvalidGridConfig, startHour)
	}
	if endHour < 1 || endHour > 24 {
		return nil, fmt.Errorf("%w: business end hour must be within 1..24, got %d", ErrInvalidGridConfig, endHour)
	}
	if startHour >= endHour {
		return nil, fmt.Errorf("%w: business start hour %d must be before end hour %d", ErrInvalidGridConfig, startHour, endHour)
	}

	if slotMinutes < MinSlotDurationMinutes || slotMinutes > MaxSlotDurationMinutes {
		return nil, fmt.Errorf("%w: slot duration must be within %d..%d minutes, got %d",
			ErrInvalidGridConfig, MinSlotDurationMinutes, MaxSlotDurationMinutes, slotMinutes)
	}
	// Слоты должны ложиться на границы часа, иначе IsAligned теряет смысл
	if 60%slotMinutes != 0 {
		return nil, fmt.Errorf("%w: slot duration %d must divide 60 minutes evenly", ErrInvalidGridConfig, slotMinutes)
	}
	if ((endHour-startHour)*60)%slotMinutes != 0 {
		return nil, fmt.Errorf("%w: business window %d:00-%d:00 is not divisible by %d-minute slots",
			ErrInvalidGridConfig, startHour, endHour, slotMinutes)
	}

	return &TimeGrid{
		loc:          loc,
		startHour:    startHour,
		endHour:      endHour,
		slotDuration: time.Duration(slotMinutes) * time.Minute,
	}, nil
}

// Location returns the reference timezone of the grid
func (g *TimeGrid) Location() *time.Location {
	return g.loc
}

// SlotDuration returns the fixed slot length
func (g *TimeGrid) SlotDuration() time.Duration {
	return g.slotDuration
}

// SlotDurationMinutes returns the fixed slot length in minutes
func (g *TimeGrid) SlotDurationMinutes() int {
	return int(g.slotDuration / time.Minute)
}

// WeekStart returns Monday 00:00 of now's week in the grid timezone
func (g *TimeGrid) WeekStart(now time.Time) time.Time {
	local := now.In(g.loc)
	// time.Weekday: Sunday = 0, неделя расписания начинается с понедельника
	daysSinceMonday := (int(local.Weekday()) + 6) % 7
	year, month, day := local.AddDate(0, 0, -daysSinceMonday).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, g.loc)
}

// WeekRange returns the half-open range [start, start+7d) of the week that is
// page weeks after the current one. Page 0 is the current week; negative
// pages are the caller's validation error and are not resolved here.
func (g *TimeGrid) WeekRange(page int, now time.Time) (time.Time, time.Time) {
	start := g.WeekStart(now).AddDate(0, 0, DaysPerWeek*page)
	return start, start.AddDate(0, 0, DaysPerWeek)
}

// SlotBoundaries returns every slot start of the week beginning at weekStart
// that falls on a business day inside business hours, in ascending order.
// Pure function of the week and the grid configuration.
func (g *TimeGrid) SlotBoundaries(weekStart time.Time) []time.Time {
	weekStart = weekStart.In(g.loc)
	year, month, day := weekStart.Date()

	slots := make([]time.Time, 0, g.slotsPerDay()*5)
	for d := 0; d < DaysPerWeek; d++ {
		dayStart := time.Date(year, month, day+d, 0, 0, 0, 0, g.loc)
		if !isBusinessDay(dayStart.Weekday()) {
			continue
		}
		for m := g.startHour * 60; m+int(g.slotDuration/time.Minute) <= g.endHour*60; m += int(g.slotDuration / time.Minute) {
			slots = append(slots, time.Date(year, month, day+d, 0, m, 0, 0, g.loc))
		}
	}
	return slots
}

// IsAligned reports whether t is exactly on a bookable slot boundary:
// zero seconds, minute on the slot step, business day, and the whole slot
// inside business hours.
func (g *TimeGrid) IsAligned(t time.Time) bool {
	local := t.In(g.loc)

	if local.Second() != 0 || local.Nanosecond() != 0 {
		return false
	}
	slotMinutes := int(g.slotDuration / time.Minute)
	if local.Minute()%slotMinutes != 0 {
		return false
	}
	if !isBusinessDay(local.Weekday()) {
		return false
	}

	minuteOfDay := local.Hour()*60 + local.Minute()
	if minuteOfDay < g.startHour*60 {
		return false
	}
	// Слот должен целиком помещаться в рабочие часы: 17:00 при окне 9-17 невалиден
	if minuteOfDay+slotMinutes > g.endHour*60 {
		return false
	}
	return true
}

func (g *TimeGrid) slotsPerDay() int {
	return (g.endHour - g.startHour) * 60 / int(g.slotDuration/time.Minute)
}

func isBusinessDay(d time.Weekday) bool {
	return d != time.Saturday && d != time.Sunday
}
