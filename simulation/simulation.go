// Package simulation assembles a world, its engine and its outputs from a
// model, and runs the outbreak day by day.
package simulation

import (
	"fmt"
	"io"

	"github.com/sarchlab/epidemic/community"
	"github.com/sarchlab/epidemic/datarecording"
	"github.com/sarchlab/epidemic/disease"
	"github.com/sarchlab/epidemic/monitoring"
	"github.com/sarchlab/epidemic/sampling"
	"github.com/sarchlab/epidemic/sim"
	"github.com/sarchlab/epidemic/tracing"
)

// A SnapshotHandler receives the census at the start of every simulated day.
type SnapshotHandler interface {
	HandleSnapshot(s disease.Snapshot)
}

// A Simulation is one run of a model.
type Simulation struct {
	id      string
	model   Model
	engine  *sim.SerialEngine
	sampler *sampling.Stream
	world   *community.World

	dataRecorder datarecording.DataRecorder
	tracer       *tracing.DBTracer
	monitor      *monitoring.Monitor

	snapshotHandlers []SnapshotHandler
	populated        bool
	ran              bool
}

func (s *Simulation) declare(model Model) error {
	for _, k := range model.Kinds {
		err := s.world.DeclarePlaceKind(k)
		if err != nil {
			return err
		}
	}

	for _, r := range model.Roles {
		err := s.world.DeclareRole(r)
		if err != nil {
			return err
		}
	}

	return nil
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Seed returns the seed of the random stream.
func (s *Simulation) Seed() int64 {
	return s.sampler.Seed()
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// GetWorld returns the population of the simulation.
func (s *Simulation) GetWorld() *community.World {
	return s.world
}

// GetDataRecorder returns the data recorder used in the simulation. It is nil
// when recording is disabled.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil when
// monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// RegisterSnapshotHandler adds a handler that receives the census of every
// day.
func (s *Simulation) RegisterSnapshotHandler(h SnapshotHandler) {
	s.snapshotHandlers = append(s.snapshotHandlers, h)
}

// Run simulates the model for the number of days it asks for.
func (s *Simulation) Run() error {
	return s.RunUntil(s.model.EndDays)
}

// RunUntil populates the world and simulates the given number of days. The
// census is handed out at the start of every day, before anything happens on
// that day. The simulation stops at the start of the last day, so the census
// of that day is not reported.
func (s *Simulation) RunUntil(endDays int) error {
	if s.ran {
		return fmt.Errorf("simulation %s already ran", s.id)
	}
	s.ran = true

	endOfTime := sim.VTimeInSec(endDays) * sim.Day

	s.engine.Schedule(endOfTime, func(sim.VTimeInSec) {
		s.engine.Halt()
	})

	var bar *monitoring.ProgressBar
	if s.monitor != nil {
		bar = s.monitor.CreateProgressBar("Days", uint64(endDays))
		defer s.monitor.CompleteProgressBar(bar)
	}

	for day := 0; day < endDays; day++ {
		day := day // per-iteration copy for the scheduled closure (go < 1.22)
		s.engine.Schedule(sim.VTimeInSec(day)*sim.Day, func(sim.VTimeInSec) {
			s.report(day)
			if bar != nil {
				bar.IncrementFinished(1)
			}
		})
	}

	err := s.Populate()
	if err != nil {
		return err
	}

	s.world.StartAtHome(0)
	s.world.ScheduleDailyPlans(endOfTime)

	if s.monitor != nil {
		s.monitor.RegisterWorld(s.world)
	}

	err = s.engine.Run()
	s.engine.Finished()

	return err
}

// Populate creates the people of the model and assigns them their places.
// RunUntil calls it when it has not been called before.
func (s *Simulation) Populate() error {
	if s.populated {
		return nil
	}

	err := s.world.PopulateRoles(s.model.Population, s.model.Infected)
	if err != nil {
		return err
	}

	s.populated = true

	return nil
}

// Describe populates the world and writes everyone's places.
func (s *Simulation) Describe(out io.Writer) error {
	err := s.Populate()
	if err != nil {
		return err
	}

	return s.world.Describe(out)
}

func (s *Simulation) report(day int) {
	snapshot := s.world.Census().Snapshot(day)
	for _, h := range s.snapshotHandlers {
		h.HandleSnapshot(snapshot)
	}
}

// Terminate terminates the simulation.
func (s *Simulation) Terminate() {
	if s.dataRecorder != nil {
		s.dataRecorder.Close()
	}
}
