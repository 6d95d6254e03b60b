package community

import (
	"log"

	"github.com/sarchlab/epidemic/disease"
	"github.com/sarchlab/epidemic/sim"
)

// ScheduleInfect issues a new infection request for an uninfected person,
// due after an exponentially distributed delay with the given mean. Any
// request issued earlier is superseded. People who are already infected are
// left alone.
func (w *World) ScheduleInfect(
	now sim.VTimeInSec,
	id PersonID,
	meanDelay float64,
) {
	p := &w.people[id]
	if p.State != disease.Uninfected {
		return
	}

	p.infectionRequest++
	request := p.infectionRequest

	p.InfectAt = now + sim.VTimeInSec(w.sampler.Exponential(meanDelay))
	w.engine.Schedule(p.InfectAt, func(t sim.VTimeInSec) {
		w.TryInfect(t, id, request)
	})
}

// CancelInfection supersedes the pending infection request of a person, if
// any.
func (w *World) CancelInfection(id PersonID) {
	p := &w.people[id]
	if p.State != disease.Uninfected {
		return
	}

	p.infectionRequest++
}

// TryInfect carries out an infection request. It only infects the person if
// they are still uninfected and the request has not been superseded. It
// reports whether the person got infected.
func (w *World) TryInfect(
	now sim.VTimeInSec,
	id PersonID,
	request uint64,
) bool {
	p := &w.people[id]
	if p.State != disease.Uninfected || p.infectionRequest != request {
		return false
	}

	w.infect(now, id)

	return true
}

// infect makes an uninfected person latent.
func (w *World) infect(now sim.VTimeInSec, id PersonID) {
	w.transition(now, id, disease.Latent)

	duration := w.rules.For(disease.Latent).Duration(w.sampler)
	w.engine.Schedule(now+duration, func(t sim.VTimeInSec) {
		w.beContagious(t, id)
	})
}

// beContagious makes a latent person asymptomatic and infectious.
func (w *World) beContagious(now sim.VTimeInSec, id PersonID) {
	w.transition(now, id, disease.Asymptomatic)

	if loc := w.people[id].Location; loc != NoPlace {
		w.SetContagionDelta(now, loc, +1)
	}

	w.progress(now, id, w.rules.For(disease.Asymptomatic), w.feelSick)
}

// feelSick makes an asymptomatic person symptomatic.
func (w *World) feelSick(now sim.VTimeInSec, id PersonID) {
	w.transition(now, id, disease.Symptomatic)
	w.progress(now, id, w.rules.For(disease.Symptomatic), w.goToBed)
}

// goToBed makes a symptomatic person bedridden.
func (w *World) goToBed(now sim.VTimeInSec, id PersonID) {
	w.transition(now, id, disease.Bedridden)
	w.progress(now, id, w.rules.For(disease.Bedridden), w.die)
}

// progress schedules the end of the stage that just started, which is either
// recovery or the worsening step, as drawn from the rule of the stage.
func (w *World) progress(
	now sim.VTimeInSec,
	id PersonID,
	rule disease.Rule,
	worsen func(sim.VTimeInSec, PersonID),
) {
	duration := rule.Duration(w.sampler)

	next := worsen
	if rule.Recovers(w.sampler) {
		next = w.recover
	}

	w.engine.Schedule(now+duration, func(t sim.VTimeInSec) {
		next(t, id)
	})
}

// recover makes an infectious person well and immune.
func (w *World) recover(now sim.VTimeInSec, id PersonID) {
	w.transition(now, id, disease.Recovered)

	if loc := w.people[id].Location; loc != NoPlace {
		w.SetContagionDelta(now, loc, -1)
	}
}

// die ends a bedridden person. The dead leave their place for good.
func (w *World) die(now sim.VTimeInSec, id PersonID) {
	w.transition(now, id, disease.Dead)

	p := &w.people[id]
	if p.Location != NoPlace {
		w.SetContagionDelta(now, p.Location, -1)
		w.places[p.Location].depart(id)
		p.Location = NoPlace
	}
}

func (w *World) transition(now sim.VTimeInSec, id PersonID, to disease.State) {
	p := &w.people[id]
	from := p.State

	if !disease.CanTransition(from, to) {
		log.Panicf("%s cannot become %s while %s", p.Name(), to, from)
	}

	w.census.Transition(from, to)
	p.State = to

	// Infected before anyone is out and about, so at home.
	place := p.Location
	if place == NoPlace && from == disease.Uninfected {
		place = p.Home
	}

	w.InvokeHook(sim.HookCtx{
		Domain: w,
		Pos:    HookPosStateChange,
		Item: StateChange{
			Time:   now,
			Person: id,
			Place:  place,
			From:   from,
			To:     to,
		},
	})
}

// SetContagionDelta changes the number of infectious occupants of a place and
// recomputes the infection time of every occupant. Whenever nobody there is
// infectious any more, the pending infection requests of the occupants are
// superseded instead.
func (w *World) SetContagionDelta(
	now sim.VTimeInSec,
	placeID PlaceID,
	delta int,
) {
	place := &w.places[placeID]
	place.Infectious += delta

	if place.Infectious < 0 {
		log.Panicf("%s has %d infectious occupants",
			place.Name(), place.Infectious)
	}

	for _, occupant := range place.Occupants {
		w.exposeTo(now, occupant, placeID)
	}
}

// exposeTo recomputes the infection request of a person at a place.
func (w *World) exposeTo(now sim.VTimeInSec, id PersonID, placeID PlaceID) {
	meanDelay, ok := w.places[placeID].forceOfInfection()
	if !ok {
		w.CancelInfection(id)
		return
	}

	w.ScheduleInfect(now, id, meanDelay)
}
