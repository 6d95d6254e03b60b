package community

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"

	"github.com/sarchlab/epidemic/disease"
	"github.com/sarchlab/epidemic/sampling"
	"github.com/sarchlab/epidemic/sim"
)

func slowRules() disease.Rules {
	return disease.Rules{
		Latent:       disease.MustNewRule(2, 1, 0),
		Asymptomatic: disease.MustNewRule(3, 1, 0.5),
		Symptomatic:  disease.MustNewRule(4, 1, 0.7),
		Bedridden:    disease.MustNewRule(5, 1, 0.8),
	}
}

var _ = Describe("Generator", func() {
	var (
		engine *sim.SerialEngine
		world  *World
		home   *PlaceKind
		work   *PlaceKind
	)

	newWorld := func(seed int64) {
		engine = sim.NewSerialEngine()
		world = NewWorld(engine, sampling.NewStream(seed), slowRules())

		home, _ = NewPlaceKind("home", 3, 2, 1)
		work, _ = NewPlaceKind("work", 10, 5, 0.1)
		Expect(world.DeclarePlaceKind(home)).To(Succeed())
		Expect(world.DeclarePlaceKind(work)).To(Succeed())
	}

	declareRoles := func() (*Role, *Role) {
		nineToFive, _ := NewSchedule(9, 17)
		worker, err := NewRole("worker", 2,
			HomeAt(home), VisitDuring(work, nineToFive))
		Expect(err).NotTo(HaveOccurred())
		retiree, err := NewRole("retiree", 1, HomeAt(home))
		Expect(err).NotTo(HaveOccurred())

		Expect(world.DeclareRole(worker)).To(Succeed())
		Expect(world.DeclareRole(retiree)).To(Succeed())

		return worker, retiree
	}

	BeforeEach(func() {
		newWorld(11)
	})

	It("should fail without roles", func() {
		Expect(world.PopulateRoles(10, 1)).To(MatchError(ErrNoRoles))
	})

	It("should reject duplicate names", func() {
		dup, _ := NewPlaceKind("home", 1, 0, 0)
		Expect(world.DeclarePlaceKind(dup)).To(MatchError(ErrDuplicateName))

		declareRoles()
		again, _ := NewRole("retiree", 1, HomeAt(home))
		Expect(world.DeclareRole(again)).To(MatchError(ErrDuplicateName))
	})

	It("should reject roles visiting undeclared kinds", func() {
		elsewhere, _ := NewPlaceKind("elsewhere", 1, 0, 0)
		r, _ := NewRole("lost", 1, HomeAt(elsewhere))

		Expect(world.DeclareRole(r)).To(MatchError(ErrUnknownPlaceKind))
	})

	It("should split the population by fraction", func() {
		worker, retiree := declareRoles()

		Expect(world.PopulateRoles(1000, 0)).To(Succeed())

		Expect(worker.Number()).To(Equal(int(math.Round(2.0 / 3 * 1000))))
		Expect(retiree.Number()).To(Equal(int(math.Round(1.0 / 3 * 1000))))
		Expect(world.NumPeople()).To(Equal(1000))
		Expect(world.Census().Count(disease.Uninfected)).To(Equal(1000))
	})

	It("should only populate once", func() {
		declareRoles()

		Expect(world.PopulateRoles(10, 0)).To(Succeed())
		Expect(world.PopulateRoles(10, 0)).To(MatchError(ErrAlreadyPopulated))
	})

	It("should reject more infected than people", func() {
		declareRoles()

		Expect(world.PopulateRoles(10, 11)).To(MatchError(ErrBadInfectionCount))
	})

	for _, seed := range []int64{1, 2, 3, 4, 5, 6, 7, 8} {
		seed := seed

		It("should infect exactly the requested number", func() {
			newWorld(seed)
			declareRoles()

			Expect(world.PopulateRoles(301, 17)).To(Succeed())

			Expect(world.Census().Count(disease.Latent)).To(Equal(17))
			Expect(world.Census().Count(disease.Uninfected)).To(Equal(284))
		})
	}

	It("should infect everyone when asked to", func() {
		declareRoles()

		Expect(world.PopulateRoles(50, 50)).To(Succeed())

		Expect(world.Census().Count(disease.Latent)).To(Equal(50))
	})

	It("should infect people at their home", func() {
		declareRoles()
		recorder := &changeRecorder{}
		world.AcceptHook(recorder)

		Expect(world.PopulateRoles(60, 12)).To(Succeed())

		Expect(recorder.changes).To(HaveLen(12))
		for _, c := range recorder.changes {
			Expect(c.To).To(Equal(disease.Latent))
			Expect(c.Place).NotTo(Equal(NoPlace))
			Expect(c.Place).To(Equal(world.Person(c.Person).Home))
		}
	})

	It("should give everyone exactly one home and their appointments", func() {
		worker, _ := declareRoles()

		Expect(world.PopulateRoles(300, 0)).To(Succeed())

		for i := 0; i < world.NumPeople(); i++ {
			p := world.Person(PersonID(i))
			Expect(p.Home).NotTo(Equal(NoPlace))
			Expect(world.Place(p.Home).Kind).To(BeIdenticalTo(home))

			if p.Role == worker {
				Expect(p.Appointments).To(HaveLen(1))
				Expect(world.Place(p.Appointments[0].Place).Kind).
					To(BeIdenticalTo(work))
				Expect(p.Appointments[0].Schedule.String()).To(Equal("9-17"))
			} else {
				Expect(p.Appointments).To(BeEmpty())
			}
		}

		Expect(home.Pending()).To(Equal(0))
		Expect(work.Pending()).To(Equal(0))
	})

	It("should fill each place up to its capacity", func() {
		declareRoles()

		Expect(world.PopulateRoles(500, 0)).To(Succeed())

		members := make(map[PlaceID]int)
		for i := 0; i < world.NumPeople(); i++ {
			p := world.Person(PersonID(i))
			members[p.Home]++
			for _, a := range p.Appointments {
				members[a.Place]++
			}
		}

		for id, n := range members {
			Expect(n).To(BeNumerically("<=", max(world.Place(id).Capacity, 1)))
		}
	})

	It("should size places without scatter exactly at the median", func() {
		single, _ := NewPlaceKind("single", 1, 0, 1)
		Expect(world.DeclarePlaceKind(single)).To(Succeed())
		r, _ := NewRole("hermit", 1, HomeAt(single))
		Expect(world.DeclareRole(r)).To(Succeed())

		Expect(world.PopulateRoles(20, 0)).To(Succeed())

		Expect(world.NumPlaces()).To(Equal(20))
		for i := 0; i < world.NumPlaces(); i++ {
			Expect(world.Place(PlaceID(i)).Capacity).To(Equal(1))
		}
	})

	It("should not group people by role when sharing a place kind", func() {
		shared, _ := NewPlaceKind("shared", 20, 0, 1)
		Expect(world.DeclarePlaceKind(shared)).To(Succeed())

		morning, _ := NewSchedule(8, 12)
		a, _ := NewRole("a", 1, HomeAt(home), VisitDuring(shared, morning))
		b, _ := NewRole("b", 3, HomeAt(home), VisitDuring(shared, morning))
		Expect(world.DeclareRole(a)).To(Succeed())
		Expect(world.DeclareRole(b)).To(Succeed())

		Expect(world.PopulateRoles(4000, 0)).To(Succeed())

		fromA := make(map[PlaceID]int)
		total := make(map[PlaceID]int)
		for i := 0; i < world.NumPeople(); i++ {
			p := world.Person(PersonID(i))
			place := p.Appointments[0].Place
			total[place]++
			if p.Role == a {
				fromA[place]++
			}
		}

		mixed := 0
		sumRatio := 0.0
		for place, n := range total {
			ratio := float64(fromA[place]) / float64(n)
			sumRatio += ratio
			if ratio > 0 && ratio < 1 {
				mixed++
			}
		}

		Expect(len(total)).To(Equal(200))
		Expect(mixed).To(BeNumerically(">", 190))
		Expect(sumRatio / float64(len(total))).To(BeNumerically("~", 0.25, 0.03))
	})

	It("should describe everyone", func() {
		declareRoles()
		Expect(world.PopulateRoles(3, 0)).To(Succeed())

		out := gbytes.NewBuffer()
		Expect(world.Describe(out)).To(Succeed())

		Expect(out).To(gbytes.Say(`person#0 worker (uninfected|latent)\n`))
		Expect(out).To(gbytes.Say(`home#\d+\n`))
		Expect(out).To(gbytes.Say(`work#\d+\(9-17\)\n`))
	})
})
