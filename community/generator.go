package community

import (
	"fmt"
	"log"
	"math"
)

// PopulateRoles creates the population and puts every person in their
// places. The population is divided among the roles in proportion to their
// fractions, and exactly the requested number of people, picked at random,
// start out infected. It must be called once, after all roles and place kinds
// are declared.
func (w *World) PopulateRoles(population, infected int) error {
	if w.populated {
		return ErrAlreadyPopulated
	}

	if len(w.roles) == 0 {
		return ErrNoRoles
	}

	if infected < 0 || infected > population {
		return fmt.Errorf("%d infected out of %d: %w",
			infected, population, ErrBadInfectionCount)
	}

	w.populated = true

	w.sizeRoles(population)
	sick := w.createPeople(infected)
	w.distributePeople()

	for _, id := range sick {
		w.infect(0, id)
	}

	return nil
}

// sizeRoles decides how many people each role gets.
func (w *World) sizeRoles(population int) {
	sum := 0.0
	for _, r := range w.roles {
		sum += r.Fraction
	}

	for _, r := range w.roles {
		r.number = int(math.Round(r.Fraction / sum * float64(population)))
	}
}

// createPeople creates everyone and links them to their role's kinds of
// places. It picks who starts out infected: each person with a probability
// equal to the ratio of people still to infect over people still to create,
// which picks exactly the requested number.
func (w *World) createPeople(infected int) []PersonID {
	remaining := 0
	for _, r := range w.roles {
		remaining += r.number
	}

	toInfect := min(infected, remaining)
	sick := make([]PersonID, 0, toInfect)

	for _, r := range w.roles {
		for i := 0; i < r.number; i++ {
			id := w.newPerson(r)

			if w.sampler.Float64() < float64(toInfect)/float64(remaining) {
				sick = append(sick, id)
				toInfect--
			}
			remaining--

			for _, v := range r.Visits {
				v.Kind.populate(id, v.Schedule)
			}
		}
	}

	return sick
}

// distributePeople resolves, kind by kind, the associations of people to
// concrete places. The associations are shuffled first so that the order of
// creation does not decide who shares a place.
func (w *World) distributePeople() {
	for _, k := range w.kinds {
		pending := k.pending
		k.pending = nil

		w.sampler.Shuffle(len(pending), func(i, j int) {
			pending[i], pending[j] = pending[j], pending[i]
		})

		place := NoPlace
		unfilled := 0
		for _, a := range pending {
			if unfilled <= 0 {
				unfilled = int(math.Round(w.sampler.LogNormal(k.Median, k.Sigma())))
				place = w.newPlace(k, unfilled)
			}
			unfilled--

			w.emplace(a.person, place, a.schedule)
		}
	}
}

// emplace binds a person to a concrete place.
func (w *World) emplace(id PersonID, place PlaceID, s *Schedule) {
	p := &w.people[id]

	if s != nil {
		p.Appointments = append(p.Appointments, Appointment{
			Place:    place,
			Schedule: *s,
		})
		return
	}

	if p.Home != NoPlace {
		log.Panicf("%s already has a home", p.Name())
	}

	p.Home = place
}
