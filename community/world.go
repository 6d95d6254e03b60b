// Package community models the population of the epidemic: the places people
// live and work in, the roles that decide where people go, and each person's
// progression through the disease.
//
// People and places refer to each other only through PersonID and PlaceID
// handles into the arenas a World owns.
package community

import (
	"errors"
	"fmt"

	"github.com/sarchlab/epidemic/disease"
	"github.com/sarchlab/epidemic/sampling"
	"github.com/sarchlab/epidemic/sim"
)

// Errors reported by a world.
var (
	ErrNoRoles           = errors.New("no roles specified")
	ErrDuplicateName     = errors.New("duplicate name")
	ErrAlreadyPopulated  = errors.New("world already populated")
	ErrBadInfectionCount = errors.New("bad initially infected count")
)

// A World owns every person and place of one simulation, together with the
// census of the population by disease state.
type World struct {
	sim.HookableBase

	engine  sim.EventScheduler
	sampler sampling.Sampler
	rules   disease.Rules
	census  *disease.Census

	kinds []*PlaceKind
	roles []*Role

	people []Person
	places []Place

	populated bool
}

// NewWorld creates an empty world whose people draw from the sampler and
// schedule their future through the engine.
func NewWorld(
	engine sim.EventScheduler,
	sampler sampling.Sampler,
	rules disease.Rules,
) *World {
	return &World{
		engine:  engine,
		sampler: sampler,
		rules:   rules,
		census:  disease.NewCensus(),
	}
}

// DeclarePlaceKind adds a kind of place to the world.
func (w *World) DeclarePlaceKind(k *PlaceKind) error {
	if w.populated {
		return ErrAlreadyPopulated
	}

	if w.PlaceKind(k.Name) != nil {
		return fmt.Errorf("%s: %w", k, ErrDuplicateName)
	}

	w.kinds = append(w.kinds, k)

	return nil
}

// DeclareRole adds a role to the world. Every place kind the role visits must
// have been declared before.
func (w *World) DeclareRole(r *Role) error {
	if w.populated {
		return ErrAlreadyPopulated
	}

	if err := r.Validate(); err != nil {
		return err
	}

	if w.Role(r.Name) != nil {
		return fmt.Errorf("%s: %w", r, ErrDuplicateName)
	}

	for _, v := range r.Visits {
		if w.PlaceKind(v.Kind.Name) != v.Kind {
			return fmt.Errorf("%s %s: %w", r, v.Kind.Name, ErrUnknownPlaceKind)
		}
	}

	w.roles = append(w.roles, r)

	return nil
}

// PlaceKind finds a place kind by name.
func (w *World) PlaceKind(name string) *PlaceKind {
	for _, k := range w.kinds {
		if k.Name == name {
			return k
		}
	}

	return nil
}

// Role finds a role by name.
func (w *World) Role(name string) *Role {
	for _, r := range w.roles {
		if r.Name == name {
			return r
		}
	}

	return nil
}

// Roles returns the declared roles in declaration order.
func (w *World) Roles() []*Role {
	return w.roles
}

// PlaceKinds returns the declared place kinds in declaration order.
func (w *World) PlaceKinds() []*PlaceKind {
	return w.kinds
}

// Census returns the population counts by disease state.
func (w *World) Census() *disease.Census {
	return w.census
}

// NumPeople returns the size of the population.
func (w *World) NumPeople() int {
	return len(w.people)
}

// Person returns a copy of a person.
func (w *World) Person(id PersonID) Person {
	p := w.people[id]
	p.Appointments = append([]Appointment(nil), p.Appointments...)

	return p
}

// NumPlaces returns the number of places.
func (w *World) NumPlaces() int {
	return len(w.places)
}

// Place returns a copy of a place.
func (w *World) Place(id PlaceID) Place {
	p := w.places[id]
	p.Occupants = append([]PersonID(nil), p.Occupants...)

	return p
}

func (w *World) newPerson(r *Role) PersonID {
	id := PersonID(len(w.people))
	w.people = append(w.people, Person{
		ID:       id,
		Role:     r,
		Home:     NoPlace,
		Location: NoPlace,
		State:    disease.Uninfected,
	})
	w.census.Add(disease.Uninfected)

	return id
}

func (w *World) newPlace(k *PlaceKind, capacity int) PlaceID {
	id := PlaceID(len(w.places))
	w.places = append(w.places, Place{
		ID:             id,
		Kind:           k,
		Capacity:       capacity,
		Transmissivity: k.Transmissivity,
	})

	return id
}
