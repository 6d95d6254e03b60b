package community

import (
	"errors"
	"fmt"

	"github.com/sarchlab/epidemic/sampling"
	"github.com/sarchlab/epidemic/sim"
)

// Errors reported for malformed place kinds.
var (
	ErrNoName               = errors.New("missing name")
	ErrNonPositiveMedian    = errors.New("non-positive median")
	ErrNegativeScatter      = errors.New("negative scatter")
	ErrNegativeTransmission = errors.New("negative transmissivity")
)

// A PlaceKind is a category of places, such as homes or workplaces. The sizes
// of the places of one kind follow a log-normal distribution.
type PlaceKind struct {
	Name    string
	Median  float64
	Scatter float64

	// Transmissivity is the infection rate contributed by each infectious
	// occupant, per second.
	Transmissivity float64

	sigma   float64
	pending []association
}

// association links a person to a kind of place before the place is known. A
// nil schedule marks the home association.
type association struct {
	person   PersonID
	schedule *Schedule
}

// NewPlaceKind creates a place kind. The transmissivity is given per hour of
// exposure to one infectious occupant.
func NewPlaceKind(
	name string,
	median, scatter, transmissivityPerHour float64,
) (*PlaceKind, error) {
	if name == "" {
		return nil, fmt.Errorf("place: %w", ErrNoName)
	}

	if median <= 0 {
		return nil, fmt.Errorf("place %s: %w", name, ErrNonPositiveMedian)
	}

	if scatter < 0 {
		return nil, fmt.Errorf("place %s: %w", name, ErrNegativeScatter)
	}

	if transmissivityPerHour < 0 {
		return nil, fmt.Errorf("place %s: %w", name, ErrNegativeTransmission)
	}

	return &PlaceKind{
		Name:           name,
		Median:         median,
		Scatter:        scatter,
		Transmissivity: transmissivityPerHour / float64(sim.Hour),
		sigma:          sampling.SigmaFromScatter(median, scatter),
	}, nil
}

// Sigma returns the sigma of the log-normal size distribution.
func (k *PlaceKind) Sigma() float64 {
	return k.sigma
}

// Pending returns the number of people waiting to be assigned to a place of
// this kind.
func (k *PlaceKind) Pending() int {
	return len(k.pending)
}

func (k *PlaceKind) populate(p PersonID, s *Schedule) {
	k.pending = append(k.pending, association{person: p, schedule: s})
}

func (k *PlaceKind) String() string {
	return fmt.Sprintf("place %s %g %g %g",
		k.Name, k.Median, k.Scatter, k.Transmissivity*float64(sim.Hour))
}
