// Package ga tunes an eval.EvaluationWeights vector by a self-play
// genetic algorithm: fitness-proportionate selection, arithmetic-mean
// crossover, and bounded multiplicative mutation. It is grounded on
// ZachBeta-neural_rps's alphago_demo/pkg/training/neat Population.Evolve
// (generation loop shape, champion preservation, per-generation
// progress reporting), adapted from a NEAT topology-evolving genome to
// a fixed-shape weight vector, since this engine has no neural oracle
// to evolve.
package ga

import (
	"math/rand"

	"connect6engine/board"
	"connect6engine/eval"
	"connect6engine/pvs"
)

// Individual is one candidate weight vector and its last-measured fitness.
type Individual struct {
	Weights eval.EvaluationWeights
	Fitness float64
}

// Config bounds one evolutionary run.
type Config struct {
	PopulationSize int
	Generations    int
	MatchCount     int     // self-play games per individual per generation
	MutationRate   float64 // per-field probability of mutation
	Seed           int64
}

// DefaultConfig mirrors the ranges and counts named in the source material.
func DefaultConfig() Config {
	return Config{
		PopulationSize: 20,
		Generations:    10,
		MatchCount:     4,
		MutationRate:   0.1,
		Seed:           1,
	}
}

type weightRange struct{ lo, hi float64 }

var initRanges = struct {
	road3, road4, live4, live5, vcdtBonus weightRange
}{
	road3:     weightRange{80, 120},
	road4:     weightRange{300, 400},
	live4:     weightRange{2500, 3500},
	live5:     weightRange{8000, 12000},
	vcdtBonus: weightRange{1000, 2000},
}

const (
	mutationLo = -0.075
	mutationHi = 0.075
	clampLo    = 50
	clampHi    = 20000
)

// Population holds one generation of individuals plus the best one seen so far.
type Population struct {
	Individuals []*Individual
	Best        *Individual
	rng         *rand.Rand
}

// NewPopulation seeds a fresh population from the named init ranges.
func NewPopulation(cfg Config) *Population {
	rng := rand.New(rand.NewSource(cfg.Seed))
	individuals := make([]*Individual, cfg.PopulationSize)
	for i := range individuals {
		individuals[i] = &Individual{Weights: randomWeights(rng)}
	}
	return &Population{Individuals: individuals, rng: rng}
}

func randomWeights(rng *rand.Rand) eval.EvaluationWeights {
	return eval.EvaluationWeights{
		Road3:     uniform(rng, initRanges.road3),
		Road4:     uniform(rng, initRanges.road4),
		Live4:     uniform(rng, initRanges.live4),
		Live5:     uniform(rng, initRanges.live5),
		VCDTBonus: uniform(rng, initRanges.vcdtBonus),
	}
}

func uniform(rng *rand.Rand, r weightRange) float64 {
	return r.lo + rng.Float64()*(r.hi-r.lo)
}

// ProgressFunc receives a one-line summary after each generation's
// fitness pass, mirroring the teacher's per-generation console reporting.
type ProgressFunc func(generation int, best, avg float64)

// Evolve runs cfg.Generations rounds of fitness, selection, crossover,
// and mutation, returning the best individual ever observed.
func (p *Population) Evolve(cfg Config, progress ProgressFunc) *Individual {
	for gen := 1; gen <= cfg.Generations; gen++ {
		sum := 0.0
		bestIdx := 0
		bestFitness := -1.0
		for i, ind := range p.Individuals {
			ind.Fitness = fitness(ind.Weights, cfg, p.rng)
			sum += ind.Fitness
			if ind.Fitness > bestFitness {
				bestFitness = ind.Fitness
				bestIdx = i
			}
		}
		avg := sum / float64(len(p.Individuals))

		if p.Best == nil || bestFitness > p.Best.Fitness {
			champion := *p.Individuals[bestIdx]
			p.Best = &champion
		}
		if progress != nil {
			progress(gen, bestFitness, avg)
		}

		p.Individuals = p.nextGeneration(cfg)
	}
	return p.Best
}

// nextGeneration keeps the champion and fills the rest by
// fitness-proportionate selection, arithmetic-mean crossover, and
// bounded multiplicative mutation.
func (p *Population) nextGeneration(cfg Config) []*Individual {
	next := make([]*Individual, len(p.Individuals))
	championCopy := *p.Best
	next[0] = &championCopy

	for i := 1; i < len(next); i++ {
		parentA := p.selectProportionate()
		parentB := p.selectProportionate()
		child := crossover(parentA.Weights, parentB.Weights)
		child = mutate(child, cfg.MutationRate, p.rng)
		next[i] = &Individual{Weights: child}
	}
	return next
}

// selectProportionate picks an individual with probability proportional
// to its fitness, falling back to uniform choice if all fitnesses are
// non-positive.
func (p *Population) selectProportionate() *Individual {
	total := 0.0
	for _, ind := range p.Individuals {
		if ind.Fitness > 0 {
			total += ind.Fitness
		}
	}
	if total <= 0 {
		return p.Individuals[p.rng.Intn(len(p.Individuals))]
	}
	target := p.rng.Float64() * total
	acc := 0.0
	for _, ind := range p.Individuals {
		if ind.Fitness <= 0 {
			continue
		}
		acc += ind.Fitness
		if acc >= target {
			return ind
		}
	}
	return p.Individuals[len(p.Individuals)-1]
}

func crossover(a, b eval.EvaluationWeights) eval.EvaluationWeights {
	return eval.EvaluationWeights{
		Road3:     (a.Road3 + b.Road3) / 2,
		Road4:     (a.Road4 + b.Road4) / 2,
		Live4:     (a.Live4 + b.Live4) / 2,
		Live5:     (a.Live5 + b.Live5) / 2,
		VCDTBonus: (a.VCDTBonus + b.VCDTBonus) / 2,
	}
}

func mutate(w eval.EvaluationWeights, rate float64, rng *rand.Rand) eval.EvaluationWeights {
	w.Road3 = mutateField(w.Road3, rate, rng)
	w.Road4 = mutateField(w.Road4, rate, rng)
	w.Live4 = mutateField(w.Live4, rate, rng)
	w.Live5 = mutateField(w.Live5, rate, rng)
	w.VCDTBonus = mutateField(w.VCDTBonus, rate, rng)
	return w
}

func mutateField(v, rate float64, rng *rand.Rand) float64 {
	if rng.Float64() >= rate {
		return v
	}
	factor := 1 + (mutationLo + rng.Float64()*(mutationHi-mutationLo))
	v *= factor
	if v < clampLo {
		v = clampLo
	}
	if v > clampHi {
		v = clampHi
	}
	return v
}

const (
	maxPlies          = 36
	earlyDepthPlies   = 10
	earlyDepth        = 2
	lateDepth         = 3
	plyTimeLimitMs    = 120
	winBlackBonus     = 1.0
	winWhiteBonus     = 0.0
	drawBonus         = 0.5
	longevityScale    = 0.1
	longevityDivisor  = 40.0
	stabilityScale    = 0.05
	stabilityDivisor  = 50_000.0
)

// fitness plays cfg.MatchCount self-play games with w for both sides
// and returns the mean per-match score.
func fitness(w eval.EvaluationWeights, cfg Config, rng *rand.Rand) float64 {
	matches := cfg.MatchCount
	if matches <= 0 {
		matches = 1
	}
	total := 0.0
	for k := 0; k < matches; k++ {
		total += playMatch(w, k%2 == 0)
	}
	return total / float64(matches)
}

// playMatch runs one bounded self-play game and scores it from
// Black's perspective, per the source material's match scoring rule.
// blackStarts only affects which color is assigned the first move;
// both sides always share weights w, since this is pure self-play.
func playMatch(w eval.EvaluationWeights, blackStarts bool) float64 {
	s := board.NewGame()
	if !blackStarts {
		s.CurrentPlayer = board.White
	}

	engine := pvs.NewEngine()
	lastScore := 0
	steps := 0
	for steps < maxPlies {
		depth := earlyDepth
		if steps >= earlyDepthPlies {
			depth = lateDepth
		}
		decision := engine.Search(s, s.CurrentPlayer, w, pvs.Config{MaxDepth: depth, TimeLimitMs: plyTimeLimitMs})
		if len(decision.Move.Positions) == 0 {
			break
		}
		next, err := board.Apply(s, decision.Move)
		if err != nil {
			break
		}
		s = next
		lastScore = decision.Score
		steps++
		if s.Winner != board.NoWinner {
			return matchScore(s.Winner, steps, lastScore)
		}
	}
	return matchScore(board.Draw, steps, lastScore)
}

func matchScore(winner board.Winner, steps, lastScore int) float64 {
	var outcome float64
	switch winner {
	case board.BlackWins:
		outcome = winBlackBonus
	case board.WhiteWins:
		outcome = winWhiteBonus
	default:
		outcome = drawBonus
	}
	longevity := float64(steps) / longevityDivisor * longevityScale
	stability := float64(lastScore) / stabilityDivisor * stabilityScale
	return outcome + longevity + stability
}
