package disease

import (
	"log"
	"strconv"
	"strings"
	"sync"
)

// StateCount is the number of people in one state.
type StateCount struct {
	State State
	Count int
}

// Snapshot is the census of one simulated day.
type Snapshot struct {
	Day    int
	Counts []StateCount
}

// Total returns the number of people covered by the snapshot.
func (s Snapshot) Total() int {
	total := 0
	for _, c := range s.Counts {
		total += c.Count
	}

	return total
}

// Count returns the number of people in the given state.
func (s Snapshot) Count(state State) int {
	for _, c := range s.Counts {
		if c.State == state {
			return c.Count
		}
	}

	return 0
}

// String formats the snapshot as the day followed by the count of every
// state, separated by commas.
func (s Snapshot) String() string {
	fields := make([]string, 0, len(s.Counts)+1)
	fields = append(fields, strconv.Itoa(s.Day))
	for _, c := range s.Counts {
		fields = append(fields, strconv.Itoa(c.Count))
	}

	return strings.Join(fields, ",")
}

// Census counts the population by disease state. It is safe to read from
// other goroutines while the simulation updates it.
type Census struct {
	mu     sync.RWMutex
	counts [NumStates]int
}

// NewCensus creates an empty census.
func NewCensus() *Census {
	return &Census{}
}

// Add counts a new person in the given state.
func (c *Census) Add(s State) {
	c.mu.Lock()
	c.counts[s]++
	c.mu.Unlock()
}

// Transition moves one person from one state to another.
func (c *Census) Transition(from, to State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.counts[from] <= 0 {
		log.Panicf("census: no one is %s", from)
	}

	c.counts[from]--
	c.counts[to]++
}

// Count returns the number of people in the given state.
func (c *Census) Count(s State) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.counts[s]
}

// Infectious returns the number of people in an infectious state.
func (c *Census) Infectious() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for s, count := range c.counts {
		if State(s).IsInfectious() {
			n += count
		}
	}

	return n
}

// Total returns the size of the population.
func (c *Census) Total() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, count := range c.counts {
		n += count
	}

	return n
}

// Snapshot captures the current counts, labeled with the given day.
func (c *Census) Snapshot(day int) Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	counts := make([]StateCount, NumStates)
	for s := range counts {
		counts[s] = StateCount{State: State(s), Count: c.counts[s]}
	}

	return Snapshot{Day: day, Counts: counts}
}
