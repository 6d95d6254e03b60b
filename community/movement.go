package community

import (
	"github.com/sarchlab/epidemic/disease"
	"github.com/sarchlab/epidemic/sim"
)

// StartAtHome puts everyone at their home. It must be called once, at time 0,
// after the world is populated.
func (w *World) StartAtHome(now sim.VTimeInSec) {
	for id := range w.people {
		p := &w.people[id]
		if p.Location != NoPlace || p.State == disease.Dead {
			continue
		}

		w.enter(now, PersonID(id), p.Home)
	}
}

// ScheduleDailyPlans schedules, for every day that starts before the given
// end, the planning of that day's movements.
func (w *World) ScheduleDailyPlans(endOfTime sim.VTimeInSec) {
	for day := 0; sim.VTimeInSec(day)*sim.Day < endOfTime; day++ {
		day := day // per-iteration copy for the scheduled closure (go < 1.22)
		w.engine.Schedule(sim.VTimeInSec(day)*sim.Day, func(sim.VTimeInSec) {
			w.PlanDay(day)
		})
	}
}

// PlanDay schedules the arrivals and departures of everyone's appointments on
// the given day. Bedridden and dead people do not get a plan.
func (w *World) PlanDay(day int) {
	for id := range w.people {
		w.planPersonDay(PersonID(id), day)
	}
}

func (w *World) planPersonDay(id PersonID, day int) {
	p := &w.people[id]
	if !p.State.CanMove() {
		return
	}

	for _, a := range p.Appointments {
		arrive, depart := a.Schedule.On(day)
		place := a.Place

		w.engine.Schedule(arrive, func(t sim.VTimeInSec) {
			w.Move(t, id, place)
		})
		w.engine.Schedule(depart, func(t sim.VTimeInSec) {
			w.Move(t, id, w.people[id].Home)
		})
	}
}

// Move takes a person from where they are to the destination. Bedridden and
// dead people stay where they are.
func (w *World) Move(now sim.VTimeInSec, id PersonID, dest PlaceID) {
	p := &w.people[id]
	if !p.State.CanMove() {
		return
	}

	from := p.Location
	w.leave(now, id)
	w.enter(now, id, dest)

	w.InvokeHook(sim.HookCtx{
		Domain: w,
		Pos:    HookPosMove,
		Item: Movement{
			Time:   now,
			Person: id,
			From:   from,
			To:     dest,
		},
	})
}

// leave removes a person from their location. An infectious person stops
// counting toward the contagion there before leaving, and an uninfected one
// drops the infection request they got there.
func (w *World) leave(now sim.VTimeInSec, id PersonID) {
	p := &w.people[id]
	if p.Location == NoPlace {
		return
	}

	if p.State.IsInfectious() {
		w.SetContagionDelta(now, p.Location, -1)
	}

	w.places[p.Location].depart(id)
	w.CancelInfection(id)
	p.Location = NoPlace
}

// enter puts a person at a place. An infectious person starts counting toward
// the contagion there before arriving, and an uninfected one gets exposed to
// whoever is infectious there.
func (w *World) enter(now sim.VTimeInSec, id PersonID, dest PlaceID) {
	p := &w.people[id]

	if p.State.IsInfectious() {
		w.SetContagionDelta(now, dest, +1)
	}

	w.places[dest].arrive(id)
	p.Location = dest

	if p.State == disease.Uninfected {
		w.exposeTo(now, id, dest)
	}
}
