package community

import "strconv"

// PlaceID identifies a place in a world.
type PlaceID int

// NoPlace is the location of someone who is nowhere, such as the dead.
const NoPlace PlaceID = -1

// A Place is a physical location that people occupy.
type Place struct {
	ID             PlaceID
	Kind           *PlaceKind
	Capacity       int
	Transmissivity float64

	// Occupants lists the people currently at the place, in arrival order.
	Occupants []PersonID

	// Infectious counts the occupants that currently spread the disease.
	Infectious int
}

// arrive registers a new occupant. It does not touch the contagion count.
func (p *Place) arrive(person PersonID) {
	p.Occupants = append(p.Occupants, person)
}

// depart removes an occupant. It does not touch the contagion count.
func (p *Place) depart(person PersonID) {
	for i, o := range p.Occupants {
		if o == person {
			p.Occupants = append(p.Occupants[:i], p.Occupants[i+1:]...)
			return
		}
	}
}

// Has tells if the person is currently at the place.
func (p *Place) Has(person PersonID) bool {
	for _, o := range p.Occupants {
		if o == person {
			return true
		}
	}

	return false
}

// Name returns a readable name of the place.
func (p *Place) Name() string {
	return p.Kind.Name + "#" + strconv.Itoa(int(p.ID))
}

// forceOfInfection returns the mean time to infection of an uninfected
// occupant, and false when nobody there can infect anyone.
func (p *Place) forceOfInfection() (meanDelay float64, ok bool) {
	if p.Infectious <= 0 || p.Transmissivity <= 0 {
		return 0, false
	}

	return 1 / (float64(p.Infectious) * p.Transmissivity), true
}
