// Package monitoring turns a running simulation into a web server that can be
// queried and controlled while the simulation runs.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/epidemic/community"
	"github.com/sarchlab/epidemic/sim"
)

// Monitor can turn a simulation into a server and allows external monitoring
// controlling of the simulation.
type Monitor struct {
	engine     sim.Engine
	world      atomic.Pointer[community.World]
	portNumber int
	url        string

	pausedLock sync.Mutex
	paused     bool

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine registers the engine that is used in the simulation.
func (m *Monitor) RegisterEngine(e sim.Engine) {
	m.engine = e
}

// RegisterWorld registers the population to be inspected. Once registered,
// the world may only change inside engine events. Until then, requests about
// the population are answered with 503.
func (m *Monitor) RegisterWorld(w *community.World) {
	m.world.Store(w)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        sim.GetIDGenerator().Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/census", m.census)
	r.HandleFunc("/api/person/{id:[0-9]+}", m.personDetails)
	r.HandleFunc("/api/place/{id:[0-9]+}", m.placeDetails)
	r.HandleFunc("/api/field/{json}", m.fieldValue)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	return r
}

// StartServer starts the monitor as a web server with a custom port if wanted.
func (m *Monitor) StartServer() {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", m.url)

	r := m.router()
	go func() {
		err := http.Serve(listener, r)
		dieOnErr(err)
	}()
}

// URL returns the address of the server once it is started.
func (m *Monitor) URL() string {
	return m.url
}

// OpenInBrowser shows the census of the running server in a web browser.
func (m *Monitor) OpenInBrowser() error {
	if m.url == "" {
		return fmt.Errorf("monitoring server not started")
	}

	return browser.OpenURL(m.url + "/api/census")
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.pausedLock.Lock()
	defer m.pausedLock.Unlock()

	if !m.paused {
		m.engine.Pause()
		m.paused = true
	}

	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.pausedLock.Lock()
	defer m.pausedLock.Unlock()

	if m.paused {
		m.engine.Continue()
		m.paused = false
	}

	_, err := w.Write(nil)
	dieOnErr(err)
}

// inspect runs f while no event fires, unless the engine is already paused
// from the web interface.
// inspect runs f on the registered world while no event fires. It reports
// false when there is no world to inspect yet.
func (m *Monitor) inspect(f func(world *community.World)) bool {
	world := m.world.Load()
	if world == nil {
		return false
	}

	m.pausedLock.Lock()
	defer m.pausedLock.Unlock()

	if !m.paused {
		m.engine.Pause()
		defer m.engine.Continue()
	}

	f(world)

	return true
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	now := m.engine.CurrentTime()
	fmt.Fprintf(w, "{\"now\":%.10f,\"day\":%d}", float64(now), now.DayNumber())
}

type stateCountRsp struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

type censusRsp struct {
	Day    int             `json:"day"`
	Counts []stateCountRsp `json:"counts"`
}

func (m *Monitor) census(w http.ResponseWriter, _ *http.Request) {
	var rsp censusRsp
	ready := m.inspect(func(world *community.World) {
		snapshot := world.Census().Snapshot(m.engine.CurrentTime().DayNumber())

		rsp.Day = snapshot.Day
		for _, c := range snapshot.Counts {
			rsp.Counts = append(rsp.Counts, stateCountRsp{
				State: c.State.String(),
				Count: c.Count,
			})
		}
	})

	m.writeInspection(w, ready, true, "Census", rsp)
}

type personRsp struct {
	ID           int      `json:"id"`
	Role         string   `json:"role"`
	State        string   `json:"state"`
	Home         string   `json:"home"`
	Location     string   `json:"location"`
	Appointments []string `json:"appointments"`
	InfectAt     float64  `json:"infect_at"`
}

func (m *Monitor) personDetails(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var rsp personRsp
	found := false
	ready := m.inspect(func(world *community.World) {
		var p community.Person
		p, found = lookUpPerson(world, id)
		if !found {
			return
		}

		rsp = personRsp{
			ID:       int(p.ID),
			Role:     p.Role.Name,
			State:    p.State.String(),
			Home:     placeName(world, p.Home),
			Location: placeName(world, p.Location),
			InfectAt: float64(p.InfectAt),
		}

		for _, a := range p.Appointments {
			rsp.Appointments = append(rsp.Appointments,
				fmt.Sprintf("%s(%s)", placeName(world, a.Place), a.Schedule))
		}
	})

	m.writeInspection(w, ready, found, "Person", rsp)
}

type placeRsp struct {
	ID         int            `json:"id"`
	Kind       string         `json:"kind"`
	Capacity   int            `json:"capacity"`
	Infectious int            `json:"infectious"`
	Occupants  map[string]int `json:"occupants"`
}

func (m *Monitor) placeDetails(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var rsp placeRsp
	found := false
	ready := m.inspect(func(world *community.World) {
		var p community.Place
		p, found = lookUpPlace(world, id)
		if !found {
			return
		}

		rsp = placeRsp{
			ID:         int(p.ID),
			Kind:       p.Kind.Name,
			Capacity:   p.Capacity,
			Infectious: p.Infectious,
			Occupants:  make(map[string]int),
		}

		for _, o := range p.Occupants {
			state := world.Person(o).State
			rsp.Occupants[state.String()]++
		}
	})

	m.writeInspection(w, ready, found, "Place", rsp)
}

type fieldReq struct {
	Kind      string `json:"kind,omitempty"`
	ID        string `json:"id,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

// fieldValue serializes one field of a person or a place, addressed with a
// dot-separated path.
func (m *Monitor) fieldValue(w http.ResponseWriter, r *http.Request) {
	req := fieldReq{}

	err := json.Unmarshal([]byte(mux.Vars(r)["json"]), &req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	if req.Kind != "person" && req.Kind != "place" {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: unknown kind %q", req.Kind)
		return
	}

	buf := bytes.NewBuffer(nil)
	found := false
	ready := m.inspect(func(world *community.World) {
		var root any
		switch req.Kind {
		case "person":
			var p community.Person
			p, found = lookUpPerson(world, req.ID)
			root = &p
		case "place":
			var p community.Place
			p, found = lookUpPlace(world, req.ID)
			root = &p
		}

		if !found {
			return
		}

		serializer := goseth.NewSerializer()
		serializer.SetRoot(root)
		serializer.SetMaxDepth(1)

		if req.FieldName != "" {
			err = serializer.SetEntryPoint(strings.Split(req.FieldName, "."))
			if err != nil {
				return
			}
		}

		err = serializer.Serialize(buf)
	})

	if ready && found && err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	if !ready || !found {
		m.writeInspection(w, ready, found, "Field", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(buf.Bytes())
	dieOnErr(err)
}

func lookUpPerson(world *community.World, text string) (community.Person, bool) {
	id, err := strconv.Atoi(text)
	if err != nil || id < 0 || id >= world.NumPeople() {
		return community.Person{}, false
	}

	return world.Person(community.PersonID(id)), true
}

func lookUpPlace(world *community.World, text string) (community.Place, bool) {
	id, err := strconv.Atoi(text)
	if err != nil || id < 0 || id >= world.NumPlaces() {
		return community.Place{}, false
	}

	return world.Place(community.PlaceID(id)), true
}

func placeName(world *community.World, id community.PlaceID) string {
	if id == community.NoPlace {
		return ""
	}

	p := world.Place(id)

	return p.Name()
}

// writeInspection answers a request about the population.
func (m *Monitor) writeInspection(
	w http.ResponseWriter,
	ready, found bool,
	what string,
	rsp any,
) {
	switch {
	case !ready:
		http.Error(w, "Population not ready", http.StatusServiceUnavailable)
	case !found:
		http.Error(w, what+" not found", http.StatusNotFound)
	default:
		m.writeJSON(w, rsp)
	}
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.writeJSON(w, m.progressBars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	m.writeJSON(w, rsp)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	m.writeJSON(w, prof)
}

func (m *Monitor) writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
