// Package disease describes how an infection progresses through a person:
// the ordered disease states, the statistical rules that govern how long each
// stage lasts, and the population census by state.
package disease

// State is a stage of the disease progression of one person.
type State int

// The disease states, in the only order a person may visit them.
const (
	Uninfected State = iota
	Latent
	Asymptomatic
	Symptomatic
	Bedridden
	Recovered
	Dead

	// NumStates is the number of disease states.
	NumStates = int(Dead) + 1
)

var stateNames = [NumStates]string{
	"uninfected",
	"latent",
	"asymptomatic",
	"symptomatic",
	"bedridden",
	"recovered",
	"dead",
}

// AllStates lists every state in progression order.
func AllStates() []State {
	states := make([]State, NumStates)
	for i := range states {
		states[i] = State(i)
	}

	return states
}

func (s State) String() string {
	if s < 0 || int(s) >= NumStates {
		return "unknown"
	}

	return stateNames[s]
}

// IsInfectious tells if a person in this state spreads the disease to the
// people sharing their place.
func (s State) IsInfectious() bool {
	return s == Asymptomatic || s == Symptomatic || s == Bedridden
}

// IsTerminal tells if no further transitions may leave this state.
func (s State) IsTerminal() bool {
	return s == Recovered || s == Dead
}

// CanMove tells if a person in this state follows their daily schedule.
func (s State) CanMove() bool {
	return s != Bedridden && s != Dead
}

// CanTransition tells if the state machine allows moving from one state to the
// other.
func CanTransition(from, to State) bool {
	switch from {
	case Uninfected:
		return to == Latent
	case Latent:
		return to == Asymptomatic
	case Asymptomatic:
		return to == Symptomatic || to == Recovered
	case Symptomatic:
		return to == Bedridden || to == Recovered
	case Bedridden:
		return to == Recovered || to == Dead
	default:
		return false
	}
}
