// Package config reads the description of a model and the options of a run.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/epidemic/community"
	"github.com/sarchlab/epidemic/disease"
	"github.com/sarchlab/epidemic/simulation"
)

// ErrMissingField is reported for required fields left out of a model file.
var ErrMissingField = errors.New("missing field")

// ModelFile is the YAML form of a model.
//
//	population: 1000
//	infected: 10
//	end: 60
//	latent: {median: 2, scatter: 1}
//	asymptomatic: {median: 3, scatter: 1, recovery: 0.4}
//	places:
//	  - {name: home, median: 3, scatter: 1, transmissivity: 0.1}
//	roles:
//	  - name: worker
//	    fraction: 0.7
//	    visits:
//	      - place: home
//	      - {place: work, schedule: "8-17"}
type ModelFile struct {
	Population int `yaml:"population"`
	Infected   int `yaml:"infected"`
	End        int `yaml:"end"`

	Latent       *RuleSpec `yaml:"latent"`
	Asymptomatic *RuleSpec `yaml:"asymptomatic"`
	Symptomatic  *RuleSpec `yaml:"symptomatic"`
	Bedridden    *RuleSpec `yaml:"bedridden"`

	Places []PlaceSpec `yaml:"places"`
	Roles  []RoleSpec  `yaml:"roles"`
}

// RuleSpec describes how long a disease stage lasts, in days, and how likely
// it ends in recovery.
type RuleSpec struct {
	Median   float64 `yaml:"median"`
	Scatter  float64 `yaml:"scatter"`
	Recovery float64 `yaml:"recovery"`
}

// PlaceSpec describes a kind of place. The transmissivity is per hour.
type PlaceSpec struct {
	Name           string  `yaml:"name"`
	Median         float64 `yaml:"median"`
	Scatter        float64 `yaml:"scatter"`
	Transmissivity float64 `yaml:"transmissivity"`
}

// RoleSpec describes a role. The visit without a schedule is the home.
type RoleSpec struct {
	Name     string      `yaml:"name"`
	Fraction float64     `yaml:"fraction"`
	Visits   []VisitSpec `yaml:"visits"`
}

// VisitSpec names a kind of place and when it is visited, as "start-end" in
// hours.
type VisitSpec struct {
	Place    string `yaml:"place"`
	Schedule string `yaml:"schedule,omitempty"`
}

// Load reads a model file.
func Load(path string) (simulation.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return simulation.Model{}, err
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return simulation.Model{}, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Parse reads a model from YAML. Unknown fields are errors.
func Parse(r io.Reader) (simulation.Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file ModelFile
	if err := dec.Decode(&file); err != nil {
		return simulation.Model{}, fmt.Errorf("decode model: %w", err)
	}

	return file.Model()
}

// Model checks the file and converts it into a model. All the problems found
// are reported together.
func (f ModelFile) Model() (simulation.Model, error) {
	var errs []error
	report := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	m := simulation.Model{
		Population: f.Population,
		Infected:   f.Infected,
		EndDays:    f.End,
	}

	if f.Population == 0 {
		report(fmt.Errorf("population: %w", ErrMissingField))
	}

	if f.End == 0 {
		report(fmt.Errorf("end: %w", ErrMissingField))
	}

	var err error
	m.Rules.Latent, err = f.Latent.rule("latent")
	report(err)
	m.Rules.Asymptomatic, err = f.Asymptomatic.rule("asymptomatic")
	report(err)
	m.Rules.Symptomatic, err = f.Symptomatic.rule("symptomatic")
	report(err)
	m.Rules.Bedridden, err = f.Bedridden.rule("bedridden")
	report(err)

	kinds := make(map[string]*community.PlaceKind)
	for _, p := range f.Places {
		k, err := community.NewPlaceKind(p.Name, p.Median, p.Scatter, p.Transmissivity)
		if err != nil {
			report(err)
			continue
		}

		if kinds[k.Name] != nil {
			report(fmt.Errorf("%s: %w", k, community.ErrDuplicateName))
			continue
		}

		kinds[k.Name] = k
		m.Kinds = append(m.Kinds, k)
	}

	names := make(map[string]bool)
	for _, r := range f.Roles {
		role, err := r.role(kinds)
		if err != nil {
			report(err)
			continue
		}

		if names[role.Name] {
			report(fmt.Errorf("%s: %w", role, community.ErrDuplicateName))
			continue
		}

		names[role.Name] = true
		m.Roles = append(m.Roles, role)
	}

	if len(f.Roles) == 0 {
		report(community.ErrNoRoles)
	}

	if len(errs) > 0 {
		return simulation.Model{}, errors.Join(errs...)
	}

	return m, m.Validate()
}

func (s *RuleSpec) rule(stage string) (disease.Rule, error) {
	if s == nil {
		return disease.Rule{}, fmt.Errorf("%s: %w", stage, disease.ErrMissingRule)
	}

	r, err := disease.NewRule(s.Median, s.Scatter, s.Recovery)
	if err != nil {
		return disease.Rule{}, fmt.Errorf("%s: %w", stage, err)
	}

	return r, nil
}

func (s RoleSpec) role(
	kinds map[string]*community.PlaceKind,
) (*community.Role, error) {
	visits := make([]community.Visit, 0, len(s.Visits))

	for _, v := range s.Visits {
		k := kinds[v.Place]
		if k == nil {
			return nil, fmt.Errorf("role %s: %s: %w",
				s.Name, v.Place, community.ErrUnknownPlaceKind)
		}

		if v.Schedule == "" {
			visits = append(visits, community.HomeAt(k))
			continue
		}

		schedule, err := community.ParseSchedule(v.Schedule)
		if err != nil {
			return nil, fmt.Errorf("role %s %s: %w", s.Name, v.Place, err)
		}

		visits = append(visits, community.VisitDuring(k, schedule))
	}

	return community.NewRole(s.Name, s.Fraction, visits...)
}
