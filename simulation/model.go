package simulation

import (
	"errors"
	"fmt"

	"github.com/sarchlab/epidemic/community"
	"github.com/sarchlab/epidemic/disease"
)

// Errors reported for malformed models.
var (
	ErrBadPopulation = errors.New("population must be positive")
	ErrBadEndOfTime  = errors.New("end of time must be positive")
)

// A Model describes an outbreak to simulate.
type Model struct {
	Population int
	Infected   int

	// EndDays is the number of days to simulate.
	EndDays int

	Rules disease.Rules
	Kinds []*community.PlaceKind
	Roles []*community.Role
}

// Validate checks the parts of the model that do not depend on each other.
// Role and place kind references are checked when the world is built.
func (m Model) Validate() error {
	if m.Population <= 0 {
		return fmt.Errorf("%d: %w", m.Population, ErrBadPopulation)
	}

	if m.Infected < 0 || m.Infected > m.Population {
		return fmt.Errorf("%d infected out of %d: %w",
			m.Infected, m.Population, community.ErrBadInfectionCount)
	}

	if m.EndDays <= 0 {
		return fmt.Errorf("%d days: %w", m.EndDays, ErrBadEndOfTime)
	}

	if len(m.Roles) == 0 {
		return community.ErrNoRoles
	}

	return m.Rules.Validate()
}
