package tracing

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/epidemic/community"
	"github.com/sarchlab/epidemic/datarecording"
	"github.com/sarchlab/epidemic/disease"
	"github.com/sarchlab/epidemic/sampling"
	"github.com/sarchlab/epidemic/sim"
)

var _ = Describe("DBTracer", func() {
	var (
		mockCtrl *gomock.Controller
		backend  *MockDataRecorder
		tracer   *DBTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		backend = NewMockDataRecorder(mockCtrl)

		backend.EXPECT().CreateTable(TransitionTable, TransitionEntry{})
		backend.EXPECT().CreateTable(MovementTable, MovementEntry{})
		backend.EXPECT().CreateTable(CensusTable, CensusEntry{})

		tracer = NewDBTracer(backend)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should record state changes", func() {
		backend.EXPECT().InsertData(TransitionTable, TransitionEntry{
			Time:   float64(sim.Day + 6*sim.Hour),
			Day:    1,
			Person: 4,
			Place:  2,
			From:   "latent",
			To:     "asymptomatic",
		})

		tracer.Func(sim.HookCtx{
			Pos: community.HookPosStateChange,
			Item: community.StateChange{
				Time:   sim.Day + 6*sim.Hour,
				Person: 4,
				Place:  2,
				From:   disease.Latent,
				To:     disease.Asymptomatic,
			},
		})
	})

	It("should ignore movements by default", func() {
		tracer.Func(sim.HookCtx{
			Pos:  community.HookPosMove,
			Item: community.Movement{Time: 10, Person: 1, From: 0, To: 3},
		})
	})

	It("should record movements when asked to", func() {
		backend.EXPECT().InsertData(MovementTable, MovementEntry{
			Time: 10, Person: 1, From: 0, To: 3,
		})

		tracer.TraceMovements()
		tracer.Func(sim.HookCtx{
			Pos:  community.HookPosMove,
			Item: community.Movement{Time: 10, Person: 1, From: 0, To: 3},
		})
	})

	It("should ignore other hook items", func() {
		tracer.Func(sim.HookCtx{Pos: sim.HookPosBeforeEvent, Item: 42})
	})

	It("should record the census", func() {
		census := disease.NewCensus()
		for i := 0; i < 7; i++ {
			census.Add(disease.Uninfected)
		}
		census.Transition(disease.Uninfected, disease.Latent)

		backend.EXPECT().InsertData(CensusTable, CensusEntry{
			Day:        3,
			Uninfected: 6,
			Latent:     1,
		})

		tracer.HandleSnapshot(census.Snapshot(3))
	})

	It("should flush when the simulation ends", func() {
		backend.EXPECT().Flush()

		tracer.Handle(100)
	})
})

var _ = Describe("DBTracer with a database", func() {
	It("should store an outbreak", func() {
		dbPath := filepath.Join(GinkgoT().TempDir(), "outbreak")
		recorder, err := datarecording.New(dbPath)
		Expect(err).NotTo(HaveOccurred())
		tracer := NewDBTracer(recorder)

		engine := sim.NewSerialEngine()
		world := community.NewWorld(engine, sampling.NewStream(5), disease.Rules{
			Latent:       disease.MustNewRule(1, 0, 0),
			Asymptomatic: disease.MustNewRule(1, 0, 1),
			Symptomatic:  disease.MustNewRule(1, 0, 1),
			Bedridden:    disease.MustNewRule(1, 0, 1),
		})
		world.AcceptHook(tracer)

		home, _ := community.NewPlaceKind("home", 1, 0, 1)
		Expect(world.DeclarePlaceKind(home)).To(Succeed())
		hermit, _ := community.NewRole("hermit", 1, community.HomeAt(home))
		Expect(world.DeclareRole(hermit)).To(Succeed())

		Expect(world.PopulateRoles(10, 3)).To(Succeed())
		tracer.HandleSnapshot(world.Census().Snapshot(0))
		world.StartAtHome(0)
		Expect(engine.Run()).To(Succeed())
		tracer.HandleSnapshot(world.Census().Snapshot(2))
		Expect(recorder.Close()).To(Succeed())

		reader := datarecording.NewReader(dbPath + ".sqlite3")
		defer reader.Close()
		reader.MapTable(TransitionTable, TransitionEntry{})
		reader.MapTable(CensusTable, CensusEntry{})

		transitions, total, err := reader.Query(context.Background(),
			TransitionTable, datarecording.QueryParams{OrderBy: "Time"})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(9))
		Expect(transitions[0].(*TransitionEntry).To).To(Equal("latent"))
		Expect(transitions[8].(*TransitionEntry).To).To(Equal("recovered"))
		Expect(transitions[8].(*TransitionEntry).Day).To(Equal(2))

		census, _, err := reader.Query(context.Background(),
			CensusTable, datarecording.QueryParams{OrderBy: "Day"})
		Expect(err).NotTo(HaveOccurred())
		Expect(census).To(HaveLen(2))
		Expect(census[0]).To(Equal(&CensusEntry{Day: 0, Uninfected: 7, Latent: 3}))
		Expect(census[1]).To(Equal(&CensusEntry{Day: 2, Uninfected: 7, Recovered: 3}))
	})
})
