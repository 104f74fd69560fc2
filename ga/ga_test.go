package ga

import (
	"math/rand"
	"testing"

	"connect6engine/board"
	"connect6engine/eval"
)

func TestRandomWeightsWithinInitRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		w := randomWeights(rng)
		if w.Road3 < 80 || w.Road3 > 120 {
			t.Fatalf("Road3 = %v out of range [80,120]", w.Road3)
		}
		if w.Road4 < 300 || w.Road4 > 400 {
			t.Fatalf("Road4 = %v out of range [300,400]", w.Road4)
		}
		if w.Live4 < 2500 || w.Live4 > 3500 {
			t.Fatalf("Live4 = %v out of range [2500,3500]", w.Live4)
		}
		if w.Live5 < 8000 || w.Live5 > 12000 {
			t.Fatalf("Live5 = %v out of range [8000,12000]", w.Live5)
		}
		if w.VCDTBonus < 1000 || w.VCDTBonus > 2000 {
			t.Fatalf("VCDTBonus = %v out of range [1000,2000]", w.VCDTBonus)
		}
	}
}

func TestCrossoverIsArithmeticMean(t *testing.T) {
	a := eval.EvaluationWeights{Road3: 100, Road4: 300, Live4: 2500, Live5: 8000, VCDTBonus: 1000}
	b := eval.EvaluationWeights{Road3: 120, Road4: 400, Live4: 3500, Live5: 12000, VCDTBonus: 2000}
	c := crossover(a, b)
	if c.Road3 != 110 || c.Road4 != 350 || c.Live4 != 3000 || c.Live5 != 10000 || c.VCDTBonus != 1500 {
		t.Fatalf("crossover = %+v, want the field-wise mean of a and b", c)
	}
}

func TestMutateFieldClampsToBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		v := mutateField(clampLo, 1.0, rng)
		if v < clampLo || v > clampHi {
			t.Fatalf("mutateField produced %v outside [%v,%v]", v, clampLo, clampHi)
		}
	}
}

func TestMutateFieldSkipsWhenBelowRate(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	v := mutateField(123.0, 0, rng)
	if v != 123.0 {
		t.Fatalf("mutateField with rate 0 should never mutate, got %v", v)
	}
}

func TestMatchScoreRewardsBlackWinMoreThanWhiteWin(t *testing.T) {
	blackScore := matchScore(board.BlackWins, 20, 0)
	whiteScore := matchScore(board.WhiteWins, 20, 0)
	if blackScore <= whiteScore {
		t.Fatalf("expected a Black win to score higher than a White win, got black=%v white=%v", blackScore, whiteScore)
	}
}

func TestMatchScoreDrawIsBetweenWinAndLoss(t *testing.T) {
	drawScore := matchScore(board.Draw, 20, 0)
	blackScore := matchScore(board.BlackWins, 20, 0)
	whiteScore := matchScore(board.WhiteWins, 20, 0)
	if drawScore <= whiteScore || drawScore >= blackScore {
		t.Fatalf("expected draw score between white and black win scores, got draw=%v white=%v black=%v", drawScore, whiteScore, blackScore)
	}
}

func TestSelectProportionateFavorsHigherFitness(t *testing.T) {
	p := &Population{
		Individuals: []*Individual{
			{Weights: eval.EvaluationWeights{Road3: 1}, Fitness: 0.01},
			{Weights: eval.EvaluationWeights{Road3: 2}, Fitness: 100},
		},
		rng: rand.New(rand.NewSource(3)),
	}
	counts := map[float64]int{}
	for i := 0; i < 200; i++ {
		counts[p.selectProportionate().Weights.Road3]++
	}
	if counts[2] <= counts[1] {
		t.Fatalf("expected the much fitter individual to be selected far more often, got counts %v", counts)
	}
}

func TestEvolveTracksBestAcrossGenerations(t *testing.T) {
	cfg := Config{PopulationSize: 4, Generations: 2, MatchCount: 1, MutationRate: 0.1, Seed: 7}
	pop := NewPopulation(cfg)
	best := pop.Evolve(cfg, nil)
	if best == nil {
		t.Fatal("expected Evolve to return a best individual")
	}
	if best.Weights.Road3 < 50 || best.Weights.Road3 > 20000 {
		t.Fatalf("best weights out of plausible clamp range: %+v", best.Weights)
	}
}
