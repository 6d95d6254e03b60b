package community

import (
	"errors"
	"fmt"
)

// Errors reported for malformed roles.
var (
	ErrNonPositiveFraction = errors.New("non-positive population fraction")
	ErrNoPlaces            = errors.New("role has no places")
	ErrNoHome              = errors.New("no home specified")
	ErrSecondHome          = errors.New("a second home")
	ErrPlaceReused         = errors.New("place kind reused")
	ErrOverlappingVisits   = errors.New("overlapping schedule times")
	ErrUnknownPlaceKind    = errors.New("undefined place kind")
)

// A Visit associates a role with a kind of place. A visit without a schedule
// is the home of the role, where people stay whenever they are not visiting
// somewhere else.
type Visit struct {
	Kind     *PlaceKind
	Schedule *Schedule
}

// HomeAt creates the home visit of a role.
func HomeAt(k *PlaceKind) Visit {
	return Visit{Kind: k}
}

// VisitDuring creates a scheduled visit.
func VisitDuring(k *PlaceKind, s Schedule) Visit {
	return Visit{Kind: k, Schedule: &s}
}

// IsHome tells if the visit is the home association.
func (v Visit) IsHome() bool {
	return v.Schedule == nil
}

// A Role is a segment of the population that shares the same daily pattern.
type Role struct {
	Name     string
	Fraction float64
	Visits   []Visit

	number int
}

// NewRole creates and validates a role.
func NewRole(name string, fraction float64, visits ...Visit) (*Role, error) {
	r := &Role{
		Name:     name,
		Fraction: fraction,
		Visits:   visits,
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate checks that the role has exactly one home, never names a place kind
// twice and never has two visits at the same time.
func (r *Role) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("role: %w", ErrNoName)
	}

	if r.Fraction <= 0 {
		return fmt.Errorf("%s: %w", r, ErrNonPositiveFraction)
	}

	if len(r.Visits) == 0 {
		return fmt.Errorf("%s: %w", r, ErrNoPlaces)
	}

	homes := 0
	for i, v := range r.Visits {
		if v.Kind == nil {
			return fmt.Errorf("%s: %w", r, ErrUnknownPlaceKind)
		}

		if v.IsHome() {
			homes++
			if homes > 1 {
				return fmt.Errorf("%s %s: %w", r, v.Kind.Name, ErrSecondHome)
			}
		}

		for _, other := range r.Visits[:i] {
			if other.Kind == v.Kind {
				return fmt.Errorf("%s %s: %w", r, v.Kind.Name, ErrPlaceReused)
			}

			if !v.IsHome() && !other.IsHome() &&
				v.Schedule.Overlaps(*other.Schedule) {
				return fmt.Errorf("%s %s(%s): %w",
					r, v.Kind.Name, v.Schedule, ErrOverlappingVisits)
			}
		}
	}

	if homes == 0 {
		return fmt.Errorf("%s: %w", r, ErrNoHome)
	}

	return nil
}

// HomeKind returns the kind of place the role lives in.
func (r *Role) HomeKind() *PlaceKind {
	for _, v := range r.Visits {
		if v.IsHome() {
			return v.Kind
		}
	}

	return nil
}

// Number returns how many people were created in this role.
func (r *Role) Number() int {
	return r.number
}

func (r *Role) String() string {
	return fmt.Sprintf("role %s %g", r.Name, r.Fraction)
}
