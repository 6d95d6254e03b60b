package simulation

import (
	"fmt"
	"log"
	"os"

	"github.com/rs/xid"

	"github.com/sarchlab/epidemic/community"
	"github.com/sarchlab/epidemic/datarecording"
	"github.com/sarchlab/epidemic/monitoring"
	"github.com/sarchlab/epidemic/sampling"
	"github.com/sarchlab/epidemic/sim"
	"github.com/sarchlab/epidemic/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	seed             int64
	parallelIDs      bool
	recordingOn      bool
	traceMovements   bool
	monitorOn        bool
	monitorPort      int
	openBrowser      bool
	outputFileName   string
	eventLogger      *log.Logger
	snapshotHandlers []SnapshotHandler
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		recordingOn: true,
		monitorOn:   true,
	}
}

// WithSeed sets the seed of the random stream. Zero picks a seed from the
// clock.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithParallelIDs makes events carry globally unique IDs instead of
// sequential ones.
func (b Builder) WithParallelIDs() Builder {
	b.parallelIDs = true
	return b
}

// WithoutRecording sets the simulation to not write a database.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithMovementTracing makes the recorder also store every movement.
func (b Builder) WithMovementTracing() Builder {
	b.traceMovements = true
	return b
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowser opens the monitoring page once the server is up.
func (b Builder) WithBrowser() Builder {
	b.openBrowser = true
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithEventLogger logs every event that fires.
func (b Builder) WithEventLogger(logger *log.Logger) Builder {
	b.eventLogger = logger
	return b
}

// WithSnapshotHandler adds a handler that receives the census of every day.
func (b Builder) WithSnapshotHandler(h SnapshotHandler) Builder {
	b.snapshotHandlers = append(
		append([]SnapshotHandler(nil), b.snapshotHandlers...), h)
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.monitorOn && b.openBrowser {
		panic("browser cannot be opened when monitoring is disabled")
	}

	if !b.recordingOn && b.outputFileName != "" {
		panic("output file cannot be set when recording is disabled")
	}
}

// Build builds the simulation of a model.
func (b Builder) Build(model Model) (*Simulation, error) {
	b.parametersMustBeValid()

	err := model.Validate()
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		id:               xid.New().String(),
		model:            model,
		engine:           sim.NewSerialEngine(),
		sampler:          sampling.NewStream(b.seed),
		snapshotHandlers: append([]SnapshotHandler(nil), b.snapshotHandlers...),
	}

	if b.parallelIDs {
		s.engine.WithIDGenerator(sim.NewParallelIDGenerator())
	}

	s.world = community.NewWorld(s.engine, s.sampler, model.Rules)

	err = s.declare(model)
	if err != nil {
		return nil, err
	}

	if b.eventLogger != nil {
		s.engine.AcceptHook(sim.NewEventLogger(b.eventLogger))
	}

	if b.recordingOn {
		err = b.buildRecorder(s)
		if err != nil {
			return nil, err
		}
	}

	if b.monitorOn {
		b.buildMonitor(s)
	}

	return s, nil
}

func (b Builder) buildRecorder(s *Simulation) error {
	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "epidemic_" + s.id
	}

	recorder, err := datarecording.New(outputPath)
	if err != nil {
		return err
	}

	s.dataRecorder = recorder

	s.tracer = tracing.NewDBTracer(s.dataRecorder)
	if b.traceMovements {
		s.tracer.TraceMovements()
	}

	s.world.AcceptHook(s.tracer)
	s.engine.RegisterSimulationEndHandler(s.tracer)
	s.snapshotHandlers = append(s.snapshotHandlers, s.tracer)

	return nil
}

func (b Builder) buildMonitor(s *Simulation) {
	s.monitor = monitoring.NewMonitor()
	if b.monitorPort > 0 {
		s.monitor.WithPortNumber(b.monitorPort)
	}

	s.monitor.RegisterEngine(s.engine)
	s.monitor.StartServer()

	if b.openBrowser {
		err := s.monitor.OpenInBrowser()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open browser: %s\n", err)
		}
	}
}
