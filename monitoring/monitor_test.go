package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/epidemic/community"
	"github.com/sarchlab/epidemic/disease"
	"github.com/sarchlab/epidemic/sampling"
	"github.com/sarchlab/epidemic/sim"
)

var _ = Describe("Monitor", func() {
	var (
		engine *sim.SerialEngine
		world  *community.World
		m      *Monitor
	)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		m.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		return rec
	}

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		world = community.NewWorld(engine, sampling.NewStream(9), disease.Rules{
			Latent:       disease.MustNewRule(1, 0, 0),
			Asymptomatic: disease.MustNewRule(1, 0, 1),
			Symptomatic:  disease.MustNewRule(1, 0, 1),
			Bedridden:    disease.MustNewRule(1, 0, 1),
		})

		home, _ := community.NewPlaceKind("home", 2, 0, 1)
		office, _ := community.NewPlaceKind("office", 4, 0, 1)
		Expect(world.DeclarePlaceKind(home)).To(Succeed())
		Expect(world.DeclarePlaceKind(office)).To(Succeed())
		hours, _ := community.NewSchedule(9, 17)
		worker, _ := community.NewRole("worker", 1,
			community.HomeAt(home), community.VisitDuring(office, hours))
		Expect(world.DeclareRole(worker)).To(Succeed())
		Expect(world.PopulateRoles(8, 2)).To(Succeed())
		world.StartAtHome(0)

		m = NewMonitor()
		m.RegisterEngine(engine)
		m.RegisterWorld(world)
	})

	It("should tell the time", func() {
		rec := get("/api/now")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`{"now":0,"day":0}`))
	})

	It("should report the census", func() {
		rec := get("/api/census")

		rsp := censusRsp{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.Day).To(Equal(0))
		Expect(rsp.Counts).To(HaveLen(disease.NumStates))
		Expect(rsp.Counts[0]).To(Equal(stateCountRsp{State: "uninfected", Count: 6}))
		Expect(rsp.Counts[1]).To(Equal(stateCountRsp{State: "latent", Count: 2}))
	})

	It("should describe a person", func() {
		rec := get("/api/person/3")

		rsp := personRsp{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.ID).To(Equal(3))
		Expect(rsp.Role).To(Equal("worker"))
		Expect(rsp.Home).To(HavePrefix("home#"))
		Expect(rsp.Location).To(Equal(rsp.Home))
		Expect(rsp.Appointments).To(ConsistOf(MatchRegexp(`^office#\d+\(9-17\)$`)))
	})

	It("should describe a place", func() {
		rec := get("/api/place/0")

		rsp := placeRsp{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.Kind).To(Equal("home"))
		Expect(rsp.Capacity).To(Equal(2))
		Expect(rsp.Infectious).To(Equal(0))

		occupants := 0
		for _, n := range rsp.Occupants {
			occupants += n
		}
		Expect(occupants).To(Equal(2))
	})

	It("should not find people and places that do not exist", func() {
		Expect(get("/api/person/8").Code).To(Equal(http.StatusNotFound))
		Expect(get("/api/place/100").Code).To(Equal(http.StatusNotFound))
	})

	It("should not answer about the population before it is registered", func() {
		m = NewMonitor()
		m.RegisterEngine(engine)

		Expect(get("/api/census").Code).To(Equal(http.StatusServiceUnavailable))
		Expect(get("/api/person/0").Code).To(Equal(http.StatusServiceUnavailable))
		Expect(get("/api/place/0").Code).To(Equal(http.StatusServiceUnavailable))

		req := `{"kind":"person","id":"0"}`
		Expect(get("/api/field/" + url.PathEscape(req)).Code).
			To(Equal(http.StatusServiceUnavailable))

		m.RegisterWorld(world)
		Expect(get("/api/person/0").Code).To(Equal(http.StatusOK))
	})

	It("should not serialize fields of people that do not exist", func() {
		req := `{"kind":"person","id":"80","field_name":"State"}`
		rec := get("/api/field/" + url.PathEscape(req))

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should serialize a field", func() {
		req := `{"kind":"person","id":"1","field_name":"State"}`
		rec := get("/api/field/" + url.PathEscape(req))

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))
	})

	It("should reject fields of unknown kinds", func() {
		req := `{"kind":"planet","id":"1"}`
		rec := get("/api/field/" + url.PathEscape(req))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should pause and continue the engine", func() {
		get("/api/pause")
		Expect(m.paused).To(BeTrue())

		get("/api/pause")
		Expect(get("/api/person/0").Code).To(Equal(http.StatusOK))

		get("/api/continue")
		Expect(m.paused).To(BeFalse())

		Expect(engine.Run()).To(Succeed())
	})

	It("should list progress bars", func() {
		bar := m.CreateProgressBar("days", 10)
		bar.IncrementFinished(4)

		rec := get("/api/progress")

		var bars []progressBarRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("days"))
		Expect(bars[0].Finished).To(Equal(uint64(4)))
		Expect(bar.Fraction()).To(BeNumerically("~", 0.4, 1e-9))

		m.CompleteProgressBar(bar)
		Expect(get("/api/progress").Body.String()).To(Equal("[]"))
	})
})
