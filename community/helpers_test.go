package community

import (
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/epidemic/disease"
	"github.com/sarchlab/epidemic/sim"
)

// predictableSampler makes every draw return its expectation. Stages with a
// recovery probability of one always recover and all others worsen.
func predictableSampler(ctrl *gomock.Controller) *MockSampler {
	s := NewMockSampler(ctrl)

	s.EXPECT().Exponential(gomock.Any()).
		DoAndReturn(func(mean float64) float64 { return mean }).
		AnyTimes()
	s.EXPECT().LogNormal(gomock.Any(), gomock.Any()).
		DoAndReturn(func(median, _ float64) float64 { return median }).
		AnyTimes()
	s.EXPECT().Bernoulli(gomock.Any()).
		DoAndReturn(func(p float64) bool { return p >= 1 }).
		AnyTimes()

	return s
}

// oneDayRules makes every stage last exactly one day.
func oneDayRules(recovery float64) disease.Rules {
	return disease.Rules{
		Latent:       disease.MustNewRule(1, 0, recovery),
		Asymptomatic: disease.MustNewRule(1, 0, recovery),
		Symptomatic:  disease.MustNewRule(1, 0, recovery),
		Bedridden:    disease.MustNewRule(1, 0, recovery),
	}
}

type changeRecorder struct {
	changes []StateChange
	moves   []Movement
}

func (r *changeRecorder) Func(ctx sim.HookCtx) {
	switch item := ctx.Item.(type) {
	case StateChange:
		r.changes = append(r.changes, item)
	case Movement:
		r.moves = append(r.moves, item)
	}
}

func (r *changeRecorder) of(id PersonID) []StateChange {
	var changes []StateChange
	for _, c := range r.changes {
		if c.Person == id {
			changes = append(changes, c)
		}
	}

	return changes
}

// makeSick walks a person through the disease up to the given state without
// scheduling anything.
func makeSick(w *World, id PersonID, to disease.State) {
	for s := disease.Latent; s <= to; s++ {
		w.transition(0, id, s)

		if s == disease.Asymptomatic {
			if loc := w.people[id].Location; loc != NoPlace {
				w.places[loc].Infectious++
			}
		}
	}
}

// infectionRequest reads the person's infection request from an addressable
// copy, since World.Person returns a value.
func infectionRequest(w *World, id PersonID) uint64 {
	p := w.Person(id)
	return p.InfectionRequest()
}
