// Package mcts implements a PUCT-guided Monte-Carlo tree search driven
// by a pluggable policy/value oracle. It replaces the teacher repo's
// UCB1 rollout-only search (mcts.go's treePolicy/defaultPolicy, which
// picked uniformly random moves and scored rollouts by a win/loss
// coin flip) with AlphaZero-style selection, expansion by oracle
// priors blended with Dirichlet root noise, and bounded semi-random
// rollouts sampled from a top-K policy softmax.
package mcts

import (
	"math"
	"math/rand"
	"time"

	"connect6engine/board"
	"connect6engine/rzop"
)

// Evaluator is the pluggable policy/value oracle. Policy is indexed by
// y*19+x; Value is the oracle's estimate of the position from the
// perspective of the state's side to move, in [-1, 1].
type Evaluator interface {
	Evaluate(s board.GameState) (policy [board.Size * board.Size]float64, value float64)
}

// Config bounds and tunes one search call.
type Config struct {
	Iterations           int
	TimeLimitMs          int
	ExplorationC         float64 // PUCT c, default 1.4
	ExpandNodes          int     // children materialized per expansion
	SimulationSteps      int     // rollout depth in plies
	TopK                 int     // rollout sampling pool size, default 6
	DirichletAlpha       float64 // default 0.3
	DirichletEpsilon     float64 // default 0.25
	MaxTranspositionSize int     // default 50,000
	MinWinRateThreshold  float64 // child pruning threshold
	Seed                 int64   // seeds Dirichlet noise and rollout sampling
}

// DefaultConfig mirrors the constants spec.md §4.9 names explicitly.
func DefaultConfig() Config {
	return Config{
		Iterations:           800,
		TimeLimitMs:          1000,
		ExplorationC:         1.4,
		ExpandNodes:          8,
		SimulationSteps:      6,
		TopK:                 6,
		DirichletAlpha:       0.3,
		DirichletEpsilon:     0.25,
		MaxTranspositionSize: 50_000,
		MinWinRateThreshold:  0.1,
	}
}

// Meta describes how a Decision was produced.
type Meta struct {
	Engine string
	Depth  int // not tracked per-node; reports configured rollout depth
	Nodes  int
	TTSize int
}

// Decision is the engine's chosen move plus provenance.
type Decision struct {
	Move board.Move
	Score float64
	Meta  Meta
}

// node is one tree position. value bookkeeping follows AlphaZero
// convention: visits/valueSum accumulate the value of this node from
// the perspective of the player to move at node.parent (the mover who
// chose the move into node), so Q = valueSum/visits is directly
// comparable across siblings during selection.
type node struct {
	state    board.GameState
	move     board.Move
	parent   *node
	children []*node
	prior    float64
	visits   int
	valueSum float64
	expanded bool
}

func (n *node) q() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.valueSum / float64(n.visits)
}

// winRateFromQ rescales a [-1,1] mean value into the [0,1] win-rate
// scale the Decision.Score field reports for MCTS.
func winRateFromQ(q float64) float64 {
	return (q + 1) / 2
}

// Engine holds the two transposition tables that persist across
// Search calls within one game.
type Engine struct {
	self     *ttTable
	opponent *ttTable
}

// NewEngine returns an Engine with empty transposition tables.
func NewEngine() *Engine {
	return &Engine{self: newTTTable(), opponent: newTTTable()}
}

// Search runs PUCT-guided MCTS rooted at s for player, consulting
// oracle at every expansion and rollout step.
func (e *Engine) Search(s board.GameState, player board.Cell, oracle Evaluator, cfg Config) Decision {
	root := &node{state: s}
	deadline := time.Now().Add(time.Duration(cfg.TimeLimitMs) * time.Millisecond)
	nodes := 0
	rng := rand.New(rand.NewSource(cfg.Seed))
	// Values below are from player's perspective; backup expects the
	// perspective of the mover into the node it starts from.
	backupFromRoot := func(n *node, v float64) {
		if n.state.CurrentPlayer == player {
			v = -v
		}
		e.backup(n, v, player)
	}

	for i := 0; i < cfg.Iterations; i++ {
		if i%64 == 0 && time.Now().After(deadline) {
			break
		}
		leaf := e.selectLeaf(root, player, cfg)
		if leaf.state.IsTerminal() {
			backupFromRoot(leaf, terminalValue(leaf.state, player))
			nodes++
			continue
		}

		simNode, leafValue, hasChildren := e.expand(leaf, player, oracle, cfg, leaf == root, rng)
		if !hasChildren {
			backupFromRoot(leaf, leafValue)
			nodes++
			continue
		}

		value := rollout(simNode.state, player, oracle, cfg, rng)
		backupFromRoot(simNode, value)
		nodes++

		e.self.evictIfOverflow(cfg.MaxTranspositionSize)
		e.opponent.evictIfOverflow(cfg.MaxTranspositionSize)
	}

	best := bestChildByVisits(root)
	if best == nil {
		candidates := rzop.Candidates(s, player)
		return Decision{Meta: Meta{Engine: "mcts", Nodes: nodes, TTSize: e.self.size() + e.opponent.size()}, Move: fallbackMove(s, player, candidates)}
	}

	return Decision{
		Move:  best.move,
		Score: winRateFromQ(best.q()),
		Meta: Meta{
			Engine: "mcts",
			Depth:  cfg.SimulationSteps,
			Nodes:  nodes,
			TTSize: e.self.size() + e.opponent.size(),
		},
	}
}

// selectLeaf walks expanded nodes using PUCT until it reaches an
// unexpanded node or a terminal state.
func (e *Engine) selectLeaf(root *node, rootPlayer board.Cell, cfg Config) *node {
	n := root
	for n.expanded && len(n.children) > 0 && !n.state.IsTerminal() {
		n = selectPUCT(n, cfg.ExplorationC)
	}
	return n
}

// selectPUCT picks the child maximizing Q(child) + c*prior(child)*sqrt(parentVisits)/(1+childVisits).
func selectPUCT(n *node, c float64) *node {
	var best *node
	bestScore := -math.MaxFloat64
	parentVisits := float64(n.visits)
	for _, child := range n.children {
		score := child.q() + c*child.prior*math.Sqrt(parentVisits)/(1+float64(child.visits))
		if score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

// expand consults the oracle at leaf and materializes up to
// cfg.ExpandNodes children ordered by oracle-prior pairs (blended with
// Dirichlet noise at the root). It returns the child to continue the
// simulation from (chosen by the same PUCT rule as selection, which
// at zero visits reduces to highest prior) and whether any child was
// built; when no candidates exist, it returns the oracle's own value
// for the leaf instead.
func (e *Engine) expand(leaf *node, rootPlayer board.Cell, oracle Evaluator, cfg Config, isRoot bool, rng *rand.Rand) (*node, float64, bool) {
	policy, value := oracle.Evaluate(leaf.state)
	candidates := rzop.Candidates(leaf.state, leaf.state.CurrentPlayer)
	if len(candidates) == 0 {
		leaf.expanded = true
		if leaf.state.CurrentPlayer != rootPlayer {
			return nil, -value, false
		}
		return nil, value, false
	}

	scores := make([]float64, len(candidates))
	for i, p := range candidates {
		scores[i] = policy[cellIndex(p)]
		if scores[i] == 0 {
			scores[i] = 1e-4
		}
	}
	if isRoot {
		applyDirichletNoise(scores, cfg.DirichletAlpha, cfg.DirichletEpsilon, rng)
	}

	leaf.children = buildChildren(leaf, candidates, scores, cfg, e.tableFor(rootPlayer, leaf.state))
	leaf.expanded = true
	if len(leaf.children) == 0 {
		if leaf.state.CurrentPlayer != rootPlayer {
			return nil, -value, false
		}
		return nil, value, false
	}

	return selectPUCT(leaf, cfg.ExplorationC), 0, true
}

// tableFor returns the self table when the state's mover is
// rootPlayer, else the opponent table.
func (e *Engine) tableFor(rootPlayer board.Cell, s board.GameState) *ttTable {
	if s.CurrentPlayer == rootPlayer {
		return e.self
	}
	return e.opponent
}

// buildChildren takes the top 3*expandNodes scored candidates,
// enumerates ordered pairs (or singles on the opening ply) until
// expandNodes children exist, skipping over-visited low-win-rate
// transposed children while always keeping at least one.
func buildChildren(parent *node, candidates []board.Position, scores []float64, cfg Config, tt *ttTable) []*node {
	pool := make([]scoredPosition, len(candidates))
	for i, p := range candidates {
		pool[i] = scoredPosition{p, scores[i]}
	}
	sortDescending(pool)

	poolSize := 3 * cfg.ExpandNodes
	if poolSize > len(pool) {
		poolSize = len(pool)
	}
	pool = pool[:poolSize]

	player := parent.state.CurrentPlayer
	var moves []board.Move
	var priors []float64

	if board.StonesToPlace(parent.state.MoveNumber) == 1 {
		total := 0.0
		for _, s := range pool {
			total += s.score
		}
		for _, s := range pool {
			moves = append(moves, board.Move{Player: player, Positions: []board.Position{s.pos}})
			priors = append(priors, normalize(s.score, total))
		}
	} else {
		total := 0.0
		var pairs []scoredPair
		for i := 0; i < len(pool); i++ {
			for j := i + 1; j < len(pool); j++ {
				p := scoredPair{pool[i], pool[j], pool[i].score * pool[j].score}
				pairs = append(pairs, p)
				total += p.score
			}
		}
		sortPairsDescending(pairs)
		for _, p := range pairs {
			moves = append(moves, board.Move{Player: player, Positions: []board.Position{p.a.pos, p.b.pos}})
			priors = append(priors, normalize(p.score, total))
		}
	}

	var children []*node
	for i, m := range moves {
		if len(children) >= cfg.ExpandNodes {
			break
		}
		child, err := board.Apply(parent.state, m)
		if err != nil {
			continue
		}
		key := ttKey(child)
		if e, ok := tt.lookup(key); ok && e.visits > 5 && e.winRate() < cfg.MinWinRateThreshold && len(children) > 0 {
			continue
		}
		children = append(children, &node{state: child, move: m, parent: parent, prior: priors[i]})
	}
	if len(children) == 0 && len(moves) > 0 {
		child, err := board.Apply(parent.state, moves[0])
		if err == nil {
			children = append(children, &node{state: child, move: moves[0], parent: parent, prior: priors[0]})
		}
	}
	return children
}

func normalize(v, total float64) float64 {
	if total == 0 {
		return 0
	}
	return v / total
}

// scoredPosition pairs a candidate cell with its policy score.
type scoredPosition struct {
	pos   board.Position
	score float64
}

// scoredPair pairs two candidate cells (a two-stone move) with their
// combined score.
type scoredPair struct {
	a, b  scoredPosition
	score float64
}

func sortDescending(s []scoredPosition) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j].score > s[j-1].score; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

func sortPairsDescending(pairs []scoredPair) {
	for i := 1; i < len(pairs); i++ {
		for j := i; j > 0 && pairs[j].score > pairs[j-1].score; j-- {
			pairs[j], pairs[j-1] = pairs[j-1], pairs[j]
		}
	}
}

// backup propagates value up the path from leaf to root, flipping
// sign at every level (negamax convention), and mirrors each visit
// into the self/opponent transposition table matching that node's
// state.
func (e *Engine) backup(leaf *node, value float64, rootPlayer board.Cell) {
	v := value
	for n := leaf; n != nil; n = n.parent {
		n.visits++
		n.valueSum += v
		if n.parent != nil {
			e.tableFor(rootPlayer, n.state).touch(ttKey(n.state), v)
		}
		v = -v
	}
}

// bestChildByVisits picks the most-visited child of root, ties broken by Q.
func bestChildByVisits(root *node) *node {
	var best *node
	for _, c := range root.children {
		if best == nil || c.visits > best.visits || (c.visits == best.visits && c.q() > best.q()) {
			best = c
		}
	}
	return best
}

func fallbackMove(s board.GameState, player board.Cell, candidates []board.Position) board.Move {
	if len(candidates) == 0 {
		return board.Move{Player: player}
	}
	if board.StonesToPlace(s.MoveNumber) == 1 || len(candidates) < 2 {
		return board.Move{Player: player, Positions: []board.Position{candidates[0]}}
	}
	return board.Move{Player: player, Positions: []board.Position{candidates[0], candidates[1]}}
}

// terminalValue returns +-1/0 from rootPlayer's perspective for a
// concluded game.
func terminalValue(s board.GameState, rootPlayer board.Cell) float64 {
	switch s.Winner {
	case board.BlackWins:
		if rootPlayer == board.Black {
			return 1
		}
		return -1
	case board.WhiteWins:
		if rootPlayer == board.White {
			return 1
		}
		return -1
	default:
		return 0
	}
}

func cellIndex(p board.Position) int {
	return p.Y*board.Size + p.X
}

func ttKey(s board.GameState) string {
	side := byte('B')
	if s.CurrentPlayer == board.White {
		side = 'W'
	}
	return s.Board.Hash() + string(side)
}

// applyDirichletNoise blends each score with independently sampled
// Dirichlet(alpha) noise, weighted by epsilon, in place.
func applyDirichletNoise(scores []float64, alpha, epsilon float64, rng *rand.Rand) {
	noise := sampleDirichlet(alpha, len(scores), rng)
	for i := range scores {
		scores[i] = (1-epsilon)*scores[i] + epsilon*noise[i]
	}
}

// sampleDirichlet draws from Dirichlet(alpha, ..., alpha) via
// independent Gamma(alpha, 1) draws normalized to sum to 1. The
// standard library's math/rand has no Gamma sampler and no example
// repo in the corpus imports a statistics library, so this uses the
// Marsaglia-Tsang method directly.
func sampleDirichlet(alpha float64, n int, rng *rand.Rand) []float64 {
	samples := make([]float64, n)
	total := 0.0
	for i := range samples {
		samples[i] = sampleGamma(alpha, rng)
		total += samples[i]
	}
	if total == 0 {
		for i := range samples {
			samples[i] = 1.0 / float64(n)
		}
		return samples
	}
	for i := range samples {
		samples[i] /= total
	}
	return samples
}

// sampleGamma draws from Gamma(shape, 1) via the Marsaglia-Tsang
// method, boosting shape < 1 by a power transform.
func sampleGamma(shape float64, rng *rand.Rand) float64 {
	if shape < 1 {
		u := rng.Float64()
		return sampleGamma(shape+1, rng) * math.Pow(u, 1/shape)
	}
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}

// rollout runs a bounded semi-random playout from s, sampling each
// ply's stones from a top-K policy softmax, stopping after
// simulationSteps plies or on terminal.
func rollout(s board.GameState, rootPlayer board.Cell, oracle Evaluator, cfg Config, rng *rand.Rand) float64 {
	cur := s
	for step := 0; step < cfg.SimulationSteps; step++ {
		if cur.IsTerminal() {
			return terminalValue(cur, rootPlayer)
		}
		candidates := rzop.Candidates(cur, cur.CurrentPlayer)
		if len(candidates) == 0 {
			break
		}
		policy, _ := oracle.Evaluate(cur)
		m := sampleMove(cur, candidates, policy, cfg.TopK, rng)
		next, err := board.Apply(cur, m)
		if err != nil {
			break
		}
		cur = next
	}
	if cur.IsTerminal() {
		return terminalValue(cur, rootPlayer)
	}
	_, value := oracle.Evaluate(cur)
	if cur.CurrentPlayer != rootPlayer {
		return -value
	}
	return value
}

// sampleMove picks two stones (or one on the opening ply) from the
// top-K candidates by policy score, via softmax sampling.
func sampleMove(s board.GameState, candidates []board.Position, policy [board.Size * board.Size]float64, topK int, rng *rand.Rand) board.Move {
	pool := make([]scoredPosition, len(candidates))
	for i, p := range candidates {
		v := policy[cellIndex(p)]
		if v == 0 {
			v = 1e-4
		}
		pool[i] = scoredPosition{p, v}
	}
	for i := 1; i < len(pool); i++ {
		for j := i; j > 0 && pool[j].score > pool[j-1].score; j-- {
			pool[j], pool[j-1] = pool[j-1], pool[j]
		}
	}
	if topK < len(pool) {
		pool = pool[:topK]
	}

	pick := func(exclude board.Position, hasExclude bool) board.Position {
		total := 0.0
		for _, c := range pool {
			if hasExclude && c.pos == exclude {
				continue
			}
			total += math.Exp(c.score)
		}
		if total == 0 {
			for _, c := range pool {
				if !hasExclude || c.pos != exclude {
					return c.pos
				}
			}
			return pool[0].pos
		}
		r := rng.Float64() * total
		acc := 0.0
		for _, c := range pool {
			if hasExclude && c.pos == exclude {
				continue
			}
			acc += math.Exp(c.score)
			if acc >= r {
				return c.pos
			}
		}
		return pool[len(pool)-1].pos
	}

	first := pick(board.Position{}, false)
	if board.StonesToPlace(s.MoveNumber) == 1 {
		return board.Move{Player: s.CurrentPlayer, Positions: []board.Position{first}}
	}
	second := pick(first, true)
	return board.Move{Player: s.CurrentPlayer, Positions: []board.Position{first, second}}
}
