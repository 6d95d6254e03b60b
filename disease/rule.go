package disease

import (
	"errors"
	"fmt"

	"github.com/sarchlab/epidemic/sampling"
	"github.com/sarchlab/epidemic/sim"
)

// Rule is the statistical description of how long one disease stage lasts
// and how likely it is to end in recovery.
type Rule struct {
	Median   sim.VTimeInSec
	Sigma    float64
	Recovery float64

	scatter sim.VTimeInSec
}

// NewRule creates a rule. The median and the scatter of the stage duration
// are given in days; the recovery probability is in [0, 1].
func NewRule(medianDays, scatterDays, recovery float64) (Rule, error) {
	if medianDays <= 0 {
		return Rule{}, fmt.Errorf("median %g: %w", medianDays, ErrNonPositiveMedian)
	}

	if scatterDays < 0 {
		return Rule{}, fmt.Errorf("scatter %g: %w", scatterDays, ErrNegativeScatter)
	}

	if recovery < 0 || recovery > 1 {
		return Rule{}, fmt.Errorf("recovery %g: %w", recovery, ErrBadProbability)
	}

	return Rule{
		Median:   sim.VTimeInSec(medianDays) * sim.Day,
		Sigma:    sampling.SigmaFromScatter(medianDays, scatterDays),
		Recovery: recovery,
		scatter:  sim.VTimeInSec(scatterDays) * sim.Day,
	}, nil
}

// MustNewRule is NewRule that panics on invalid parameters.
func MustNewRule(medianDays, scatterDays, recovery float64) Rule {
	r, err := NewRule(medianDays, scatterDays, recovery)
	if err != nil {
		panic(err)
	}

	return r
}

// Duration draws how long the stage lasts.
func (r Rule) Duration(s sampling.Sampler) sim.VTimeInSec {
	return sim.VTimeInSec(s.LogNormal(float64(r.Median), r.Sigma))
}

// Recovers draws whether the stage ends with recovery.
func (r Rule) Recovers(s sampling.Sampler) bool {
	return s.Bernoulli(r.Recovery)
}

func (r Rule) String() string {
	return fmt.Sprintf("%g %g %g",
		r.Median.Days(), r.scatter.Days(), r.Recovery)
}

// Errors reported for malformed rules.
var (
	ErrNonPositiveMedian = errors.New("non-positive median")
	ErrNegativeScatter   = errors.New("negative scatter")
	ErrBadProbability    = errors.New("probability outside [0, 1]")
	ErrMissingRule       = errors.New("missing rule")
)

// Rules holds exactly one rule per disease stage.
type Rules struct {
	Latent       Rule
	Asymptomatic Rule
	Symptomatic  Rule
	Bedridden    Rule
}

// Validate checks that every stage has a rule.
func (r Rules) Validate() error {
	stages := []struct {
		name string
		rule Rule
	}{
		{"latent", r.Latent},
		{"asymptomatic", r.Asymptomatic},
		{"symptomatic", r.Symptomatic},
		{"bedridden", r.Bedridden},
	}

	for _, st := range stages {
		if st.rule.Median <= 0 {
			return fmt.Errorf("%s: %w", st.name, ErrMissingRule)
		}
	}

	return nil
}

// For returns the rule that governs the given stage.
func (r Rules) For(s State) Rule {
	switch s {
	case Latent:
		return r.Latent
	case Asymptomatic:
		return r.Asymptomatic
	case Symptomatic:
		return r.Symptomatic
	case Bedridden:
		return r.Bedridden
	default:
		panic(fmt.Sprintf("no rule for state %s", s))
	}
}
