package sim

// An Action is what happens when an event fires. It receives the time at which
// the event fires.
type Action func(now VTimeInSec)

// An Event is an action that is going to happen in the future. Events are
// immutable once scheduled and are consumed exactly once.
type Event struct {
	ID string

	time   VTimeInSec
	action Action
	seq    uint64
}

// NewEvent creates a new event that triggers the action at the given time.
// Its ID comes from the process wide ID generator.
func NewEvent(t VTimeInSec, action Action) *Event {
	return newEventWithID(GetIDGenerator().Generate(), t, action)
}

func newEventWithID(id string, t VTimeInSec, action Action) *Event {
	e := new(Event)
	e.ID = id
	e.time = t
	e.action = action
	return e
}

// Time returns the time that the event is going to happen.
func (e *Event) Time() VTimeInSec {
	return e.time
}

// Fire invokes the action of the event.
func (e *Event) Fire() {
	e.action(e.time)
}
