// Package draw assigns every participant one other participant to give to.
//
// The generator uses rejection sampling: shuffle, check every pair against
// the exclusions, and retry until a valid assignment turns up or the attempt
// budget runs out. Exclusions are sparse and user-entered, so a constructive
// matching algorithm is not needed for realistic group sizes.
package draw

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/mmynk/secretsanta/internal/models"
)

// DefaultMaxAttempts caps the number of shuffles tried per draw.
const DefaultMaxAttempts = 100

var (
	// ErrInfeasible is returned when no valid assignment was found within the
	// attempt budget.
	ErrInfeasible = errors.New("unable to generate valid Secret Santa pairings after maximum attempts")

	// ErrRosterTooSmall is returned for rosters with fewer than two names.
	ErrRosterTooSmall = errors.New("at least two participants are required")
)

// InfeasibleError reports an exhausted attempt budget.
type InfeasibleError struct {
	Attempts int
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("%s (%d attempts)", ErrInfeasible.Error(), e.Attempts)
}

func (e *InfeasibleError) Unwrap() error {
	return ErrInfeasible
}

// Roster is the ordered list of participant names. The order is the giver
// order of the resulting pairs.
type Roster []string

// Result is a successful draw.
type Result struct {
	Pairs []models.Pair

	// Attempts is the number of shuffles it took, starting at 1.
	Attempts int
}

// Generator draws pairings. The zero value is usable and uses
// DefaultMaxAttempts with the global random source.
type Generator struct {
	maxAttempts int
	rng         *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxAttempts overrides the attempt budget. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithRand sets the random source, mainly so tests can seed it.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// MaxAttempts returns the attempt budget.
func (g *Generator) MaxAttempts() int {
	if g.maxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return g.maxAttempts
}

// Generate returns one pair per roster entry such that nobody draws
// themselves and no pair appears in history. The first valid shuffle wins.
func (g *Generator) Generate(roster Roster, history models.History) ([]models.Pair, error) {
	res, err := g.GenerateWithStats(roster, history)
	if err != nil {
		return nil, err
	}
	return res.Pairs, nil
}

// GenerateWithStats is Generate plus the number of attempts spent.
func (g *Generator) GenerateWithStats(roster Roster, history models.History) (Result, error) {
	if len(roster) < 2 {
		return Result{}, ErrRosterTooSmall
	}

	shuffled := make([]string, len(roster))
	copy(shuffled, roster)

	maxAttempts := g.MaxAttempts()
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		g.shuffle(shuffled)
		if !valid(roster, shuffled, history) {
			continue
		}

		pairs := make([]models.Pair, len(roster))
		for i, giver := range roster {
			pairs[i] = models.Pair{Giver: giver, Receiver: shuffled[i]}
		}
		return Result{Pairs: pairs, Attempts: attempt}, nil
	}

	return Result{}, &InfeasibleError{Attempts: maxAttempts}
}

// shuffle is an in-place Fisher-Yates shuffle.
func (g *Generator) shuffle(s []string) {
	for i := len(s) - 1; i > 0; i-- {
		j := g.intN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func (g *Generator) intN(n int) int {
	if g.rng != nil {
		return g.rng.IntN(n)
	}
	return rand.IntN(n)
}

func valid(givers, receivers []string, history models.History) bool {
	for i, giver := range givers {
		receiver := receivers[i]
		if giver == receiver || history.Forbids(giver, receiver) {
			return false
		}
	}
	return true
}
