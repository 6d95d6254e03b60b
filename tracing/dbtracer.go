// Package tracing records what happens to the population while the simulation
// runs.
package tracing

import (
	"sync"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/epidemic/community"
	"github.com/sarchlab/epidemic/datarecording"
	"github.com/sarchlab/epidemic/disease"
	"github.com/sarchlab/epidemic/sim"
)

// Table names used by the DBTracer.
const (
	TransitionTable = "transition"
	MovementTable   = "movement"
	CensusTable     = "census"
)

// TransitionEntry is one disease state change.
type TransitionEntry struct {
	Time   float64
	Day    int
	Person int
	Place  int
	From   string
	To     string
}

// MovementEntry is one person going from one place to another.
type MovementEntry struct {
	Time   float64
	Person int
	From   int
	To     int
}

// CensusEntry is the population count by state at the start of one day.
type CensusEntry struct {
	Day          int
	Uninfected   int
	Latent       int
	Asymptomatic int
	Symptomatic  int
	Bedridden    int
	Recovered    int
	Dead         int
}

// DBTracer is a hook that stores state changes, and optionally movements,
// into a data recorder. It also stores the daily census it is handed.
type DBTracer struct {
	mu      sync.Mutex
	backend datarecording.DataRecorder

	traceMovements bool
}

// NewDBTracer creates a new DBTracer and the tables it writes to.
func NewDBTracer(dataRecorder datarecording.DataRecorder) *DBTracer {
	dataRecorder.CreateTable(TransitionTable, TransitionEntry{})
	dataRecorder.CreateTable(MovementTable, MovementEntry{})
	dataRecorder.CreateTable(CensusTable, CensusEntry{})

	t := &DBTracer{
		backend: dataRecorder,
	}

	atexit.Register(func() {
		t.Terminate()
	})

	return t
}

// TraceMovements makes the tracer also store every movement. Movements
// outnumber state changes by far.
func (t *DBTracer) TraceMovements() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.traceMovements = true
}

// Func records the hook item if it is a state change or a movement.
func (t *DBTracer) Func(ctx sim.HookCtx) {
	switch item := ctx.Item.(type) {
	case community.StateChange:
		t.recordStateChange(item)
	case community.Movement:
		t.recordMovement(item)
	}
}

func (t *DBTracer) recordStateChange(c community.StateChange) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData(TransitionTable, TransitionEntry{
		Time:   float64(c.Time),
		Day:    c.Time.DayNumber(),
		Person: int(c.Person),
		Place:  int(c.Place),
		From:   c.From.String(),
		To:     c.To.String(),
	})
}

func (t *DBTracer) recordMovement(m community.Movement) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.traceMovements {
		return
	}

	t.backend.InsertData(MovementTable, MovementEntry{
		Time:   float64(m.Time),
		Person: int(m.Person),
		From:   int(m.From),
		To:     int(m.To),
	})
}

// HandleSnapshot stores the census of a day.
func (t *DBTracer) HandleSnapshot(s disease.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData(CensusTable, CensusEntry{
		Day:          s.Day,
		Uninfected:   s.Count(disease.Uninfected),
		Latent:       s.Count(disease.Latent),
		Asymptomatic: s.Count(disease.Asymptomatic),
		Symptomatic:  s.Count(disease.Symptomatic),
		Bedridden:    s.Count(disease.Bedridden),
		Recovered:    s.Count(disease.Recovered),
		Dead:         s.Count(disease.Dead),
	})
}

// Handle flushes the recorder when the simulation ends.
func (t *DBTracer) Handle(_ sim.VTimeInSec) {
	t.Terminate()
}

// Terminate writes everything buffered so far.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.Flush()
}
