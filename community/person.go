package community

import (
	"strconv"

	"github.com/sarchlab/epidemic/disease"
	"github.com/sarchlab/epidemic/sim"
)

// PersonID identifies a person in a world.
type PersonID int

// An Appointment is a place a person visits following a daily schedule.
type Appointment struct {
	Place    PlaceID
	Schedule Schedule
}

// A Person is an individual of the synthetic population.
type Person struct {
	ID           PersonID
	Role         *Role
	Home         PlaceID
	Appointments []Appointment

	State    disease.State
	Location PlaceID

	// InfectAt is the firing time of the most recent infection request.
	InfectAt sim.VTimeInSec

	// infectionRequest grows each time a pending infection request is
	// superseded. Only the request issued under the current value may
	// infect the person.
	infectionRequest uint64
}

// Name returns a readable name of the person.
func (p *Person) Name() string {
	return "person#" + strconv.Itoa(int(p.ID))
}

// InfectionRequest returns the generation of the person's current infection
// request.
func (p *Person) InfectionRequest() uint64 {
	return p.infectionRequest
}
