package searcher

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"
	"sort"
	"sync/atomic"
	"time"

	"conspiracy/experiments/metrics"
	"conspiracy/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// NoiseScale is the largest score perturbation at full randomness.
const NoiseScale = 0.25

type Option func(b *Beam)

// Plan is the chosen action sequence for one turn. It always ends with end
// turn unless one of its plays wins the match.
type Plan struct {
	Actions []game.Action
	Score   float64
	Metric  metrics.SearchMetric
}

// Beam plans a whole turn with a beam search over cloned states. The live
// state handed to Search is never written. A Beam may run several searches
// at once.
type Beam struct {
	goroutines int
	seed       uint64
	searches   atomic.Uint64
	cutoff     int
	evaluate   game.Evaluate
	collector  func() metrics.Collector // one collector per search
}

func WithGoroutines(goroutines int) Option {
	return func(b *Beam) {
		if goroutines > 0 {
			b.goroutines = goroutines
		}
	}
}

// WithSeed makes a sequence of searches reproducible.
func WithSeed(seed uint64) Option {
	return func(b *Beam) {
		b.seed = seed
	}
}

func WithRolloutCutoff(depth int) Option {
	return func(b *Beam) {
		if depth > 0 {
			b.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(b *Beam) {
		if evaluate != nil {
			b.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(b *Beam) {
		b.collector = metrics.NewCollector
	}
}

func NewBeam(options ...Option) *Beam {
	b := &Beam{ // Default values
		goroutines: runtime.NumCPU(),
		seed:       uint64(time.Now().UnixNano()),
		cutoff:     DefaultRolloutCutoff,
		evaluate:   game.EvaluateWeighted,
		collector:  metrics.NewDummyCollector,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

type branch struct {
	from   *game.GameState // state the last action was played on
	state  *game.GameState // nil until simulated
	path   []game.Action
	hash   game.StateHash
	score  float64
	pruned bool
}

func (br *branch) last() game.Action {
	return br.path[len(br.path)-1]
}

func (br *branch) done() bool {
	if br.state.Won != "" {
		return true
	}
	return len(br.path) > 0 && br.last().IsEnd()
}

// Search plans the current player's turn from live, which must be in its ACT
// phase. The search runs in rounds: each round looks LookaheadDepth+1 plies
// ahead, commits the path into the best leaf and continues from there until
// the turn is over.
func (b *Beam) Search(ctx context.Context, live *game.GameState, rules game.Rules, d Difficulty) (Plan, error) {
	if err := d.Validate(); err != nil {
		return Plan{}, err
	}
	if live.Won != "" {
		return Plan{}, fmt.Errorf("match is already won by %s: %w", live.Won, game.ErrIllegalAction)
	}
	if live.Phase != game.ActPhase {
		return Plan{}, fmt.Errorf("cannot plan in phase %s: %w", live.Phase, game.ErrIllegalAction)
	}

	rng := rand.New(rand.NewSource(b.seed + b.searches.Add(1)))
	actor := live.CurrentPlayer
	m := b.collector()
	m.Start(b.goroutines, d.Name)

	current := &branch{state: live.Clone()}
	for !current.done() {
		best, err := b.round(ctx, current, rules, d, actor, rng, m)
		if err != nil {
			return Plan{}, err
		}
		if best == nil {
			break
		}
		current = best
	}

	actions := slices.Clone(current.path)
	if current.state.Won == "" && (len(actions) == 0 || !actions[len(actions)-1].IsEnd()) {
		actions = append(actions, game.EndTurnAction())
	}
	metric := m.Complete()
	log.Debug().
		Str("player", string(actor)).
		Str("difficulty", d.Name).
		Int("actions", len(actions)).
		Float64("score", current.score).
		Msg("planned turn")
	return Plan{Actions: actions, Score: current.score, Metric: metric}, nil
}

// round runs one beam search from start and returns the best leaf found.
func (b *Beam) round(ctx context.Context, start *branch, rules game.Rules, d Difficulty, actor game.PlayerID, rng *rand.Rand, m metrics.Collector) (*branch, error) {
	beam := []*branch{start}
	var leaves []*branch
	for ply := 0; ply <= d.LookaheadDepth && len(beam) > 0; ply++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		children := expand(beam, rules)
		if err := b.score(ctx, children, rules, d, actor, rng, m); err != nil {
			return nil, err
		}
		m.AddPly()

		var next []*branch
		for _, br := range selectTop(children, d.BeamWidth) {
			if br.done() {
				leaves = append(leaves, br)
			} else {
				next = append(next, br)
			}
		}
		beam = next
	}
	leaves = append(leaves, beam...)

	var best *branch
	for _, br := range leaves {
		if best == nil || br.score > best.score {
			best = br
		}
	}
	return best, nil
}

func expand(beam []*branch, rules game.Rules) []*branch {
	var children []*branch
	for _, parent := range beam {
		for _, action := range candidates(parent.state, rules) {
			children = append(children, &branch{
				from: parent.state,
				path: append(slices.Clone(parent.path), action),
			})
		}
	}
	return children
}

// score simulates every child in parallel. A child whose simulation fails is
// marked pruned; only cancellation aborts the whole batch.
func (b *Beam) score(ctx context.Context, children []*branch, rules game.Rules, d Difficulty, actor game.PlayerID, rng *rand.Rand, m metrics.Collector) error {
	// Seeds are drawn up front so results do not depend on scheduling.
	seeds := make([]uint64, len(children))
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.goroutines)
	for i, br := range children {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := b.simulate(br, rules, d, actor, rand.New(rand.NewSource(seeds[i])), m); err != nil {
				br.pruned = true
				m.AddPruned()
				log.Debug().Err(err).Str("action", br.last().String()).Msg("pruned branch")
			}
			return nil
		})
	}
	m.AddExpanded(len(children))
	return g.Wait()
}

func (b *Beam) simulate(br *branch, rules game.Rules, d Difficulty, actor game.PlayerID, rng *rand.Rand, m metrics.Collector) error {
	next, err := br.from.Play(rules, br.last())
	if err != nil {
		return err
	}
	br.state = next
	br.hash = next.Hash()

	// A turn still in progress is judged as if it ended here.
	settled := next
	if !br.done() {
		if s, err := next.Play(rules, game.EndTurnAction()); err == nil {
			settled = s
		}
	}

	w := d.Weights()
	values := make([]float64, 0, d.RolloutsPerBranch+1)
	values = append(values, b.evaluate(settled, rules, actor, w))
	if settled.Won == "" {
		for i := 0; i < d.RolloutsPerBranch; i++ {
			values = append(values, b.rollout(settled, rules, actor, d, rng, m))
		}
	}

	mean, stddev := meanStddev(values)
	br.score = mean - (1-d.RiskTolerance)*stddev
	if d.Randomness > 0 {
		br.score += (2*rng.Float64() - 1) * d.Randomness * NoiseScale
	}
	return nil
}

// selectTop drops pruned children, keeps the better of any two that reached
// the same position and returns the width best, highest score first.
func selectTop(children []*branch, width int) []*branch {
	byHash := make(map[game.StateHash]int)
	var kept []*branch
	for _, br := range children {
		if br.pruned {
			continue
		}
		if i, ok := byHash[br.hash]; ok {
			if br.score > kept[i].score {
				kept[i] = br
			}
			continue
		}
		byHash[br.hash] = len(kept)
		kept = append(kept, br)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})
	if len(kept) > width {
		kept = kept[:width]
	}
	return kept
}

func meanStddev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}
