package community

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sarchlab/epidemic/sim"
)

// Errors reported for malformed schedules.
var (
	ErrScheduleOutOfDay   = errors.New("time outside of the day")
	ErrScheduleOutOfOrder = errors.New("times out of order")
	ErrScheduleSyntax     = errors.New("schedule must look like start-end")
)

// A Schedule is the part of a day that a person spends at a place. Both times
// are offsets from midnight.
type Schedule struct {
	Start sim.VTimeInSec
	End   sim.VTimeInSec
}

// NewSchedule creates a schedule from a start and an end given in hours from
// midnight.
func NewSchedule(startHours, endHours float64) (Schedule, error) {
	if startHours < 0 || startHours >= 24 || endHours < 0 || endHours >= 24 {
		return Schedule{}, fmt.Errorf("(%g-%g): %w",
			startHours, endHours, ErrScheduleOutOfDay)
	}

	if startHours >= endHours {
		return Schedule{}, fmt.Errorf("(%g-%g): %w",
			startHours, endHours, ErrScheduleOutOfOrder)
	}

	return Schedule{
		Start: sim.VTimeInSec(startHours) * sim.Hour,
		End:   sim.VTimeInSec(endHours) * sim.Hour,
	}, nil
}

// ParseSchedule reads a schedule written as "start-end" in hours, optionally
// surrounded by parentheses, e.g. "8-17" or "(8.5-17)".
func ParseSchedule(text string) (Schedule, error) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")

	start, end, found := strings.Cut(trimmed, "-")
	if !found {
		return Schedule{}, fmt.Errorf("%q: %w", text, ErrScheduleSyntax)
	}

	startHours, err := strconv.ParseFloat(strings.TrimSpace(start), 64)
	if err != nil {
		return Schedule{}, fmt.Errorf("%q: %w", text, ErrScheduleSyntax)
	}

	endHours, err := strconv.ParseFloat(strings.TrimSpace(end), 64)
	if err != nil {
		return Schedule{}, fmt.Errorf("%q: %w", text, ErrScheduleSyntax)
	}

	return NewSchedule(startHours, endHours)
}

// Overlaps tells if two schedules share any instant, ends included.
func (s Schedule) Overlaps(o Schedule) bool {
	return s.Start <= o.End && s.End >= o.Start
}

// On returns the arrival and departure times of the schedule on the given
// simulated day.
func (s Schedule) On(day int) (arrive, depart sim.VTimeInSec) {
	base := sim.VTimeInSec(day) * sim.Day
	return base + s.Start, base + s.End
}

func (s Schedule) String() string {
	return strconv.FormatFloat(s.Start.Hours(), 'g', -1, 64) + "-" +
		strconv.FormatFloat(s.End.Hours(), 'g', -1, 64)
}
