// Package forest implements a bagged ensemble of regression trees (a random
// forest regressor). Training is deterministic for a given seed.
package forest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// ErrInvalidInput signals malformed training or prediction input.
var ErrInvalidInput = errors.New("forest: invalid input")

// Config controls the ensemble.
type Config struct {
	Trees           int   // number of bagged trees
	MaxDepth        int   // maximum depth of every tree (root is depth 0)
	MinSamplesSplit int   // minimum samples needed to split a node (default 2)
	MaxFeatures     int   // features considered per split, 0 = all
	Seed            int64 // bootstrap and feature sampling seed
}

// DefaultConfig returns 500 trees of depth 5 seeded with 42.
func DefaultConfig() Config {
	return Config{Trees: 500, MaxDepth: 5, MinSamplesSplit: 2, Seed: 42}
}

// Forest is a trained ensemble. It is read-only after Train.
type Forest struct {
	trees    []*node
	features int
}

type node struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *node
	right     *node
}

// Train fits a forest on rows x with targets y.
// ctx is checked between trees.
func Train(ctx context.Context, x [][]float64, y []float64, cfg Config) (*Forest, error) {
	if err := validate(x, y, cfg); err != nil {
		return nil, err
	}
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}
	width := len(x[0])
	if cfg.MaxFeatures <= 0 || cfg.MaxFeatures > width {
		cfg.MaxFeatures = width
	}

	//nolint:gosec // G404: math/rand is fine for reproducible bagging
	rng := rand.New(rand.NewSource(cfg.Seed))
	b := &builder{x: x, y: y, cfg: cfg, rng: rng}

	f := &Forest{trees: make([]*node, 0, cfg.Trees), features: width}
	n := len(x)
	for t := 0; t < cfg.Trees; t++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("train tree %d: %w", t, err)
		}
		sample := make([]int, n)
		for i := range sample {
			sample[i] = rng.Intn(n)
		}
		f.trees = append(f.trees, b.grow(sample, 0))
	}
	return f, nil
}

// Predict returns the mean prediction of all trees.
func (f *Forest) Predict(row []float64) (float64, error) {
	if len(row) != f.features {
		return 0, fmt.Errorf("%w: expected %d features, got %d", ErrInvalidInput, f.features, len(row))
	}
	var sum float64
	for _, t := range f.trees {
		sum += t.predict(row)
	}
	return sum / float64(len(f.trees)), nil
}

// Size returns the number of trees.
func (f *Forest) Size() int { return len(f.trees) }

// Depth returns the depth of the deepest tree.
func (f *Forest) Depth() int {
	deepest := 0
	for _, t := range f.trees {
		if d := t.depth(); d > deepest {
			deepest = d
		}
	}
	return deepest
}

func validate(x [][]float64, y []float64, cfg Config) error {
	if len(x) == 0 {
		return fmt.Errorf("%w: no training rows", ErrInvalidInput)
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d rows but %d targets", ErrInvalidInput, len(x), len(y))
	}
	width := len(x[0])
	if width == 0 {
		return fmt.Errorf("%w: rows have no features", ErrInvalidInput)
	}
	for i, row := range x {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d features, want %d", ErrInvalidInput, i, len(row), width)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: row %d feature %d is not finite", ErrInvalidInput, i, j)
			}
		}
		if math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return fmt.Errorf("%w: target %d is not finite", ErrInvalidInput, i)
		}
	}
	if cfg.Trees <= 0 {
		return fmt.Errorf("%w: trees must be positive, got %d", ErrInvalidInput, cfg.Trees)
	}
	if cfg.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidInput, cfg.MaxDepth)
	}
	return nil
}

type builder struct {
	x   [][]float64
	y   []float64
	cfg Config
	rng *rand.Rand
}

func (b *builder) grow(idx []int, depth int) *node {
	mean, sse := b.stats(idx)
	if depth >= b.cfg.MaxDepth || len(idx) < b.cfg.MinSamplesSplit || sse <= 0 {
		return &node{leaf: true, value: mean}
	}

	feature, threshold, ok := b.bestSplit(idx, sse)
	if !ok {
		return &node{leaf: true, value: mean}
	}

	var left, right []int
	for _, i := range idx {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &node{
		feature:   feature,
		threshold: threshold,
		left:      b.grow(left, depth+1),
		right:     b.grow(right, depth+1),
	}
}

// bestSplit scans candidate features for the threshold minimizing the summed
// squared error of both children. Only strict improvements are accepted.
func (b *builder) bestSplit(idx []int, parentSSE float64) (int, float64, bool) {
	bestFeature, bestThreshold := -1, 0.0
	bestSSE := parentSSE

	sorted := make([]int, len(idx))
	for _, f := range b.candidateFeatures() {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, c int) bool {
			return b.x[sorted[a]][f] < b.x[sorted[c]][f]
		})

		var totalSum, totalSq float64
		for _, i := range sorted {
			totalSum += b.y[i]
			totalSq += b.y[i] * b.y[i]
		}

		var leftSum, leftSq float64
		for k := 0; k < len(sorted)-1; k++ {
			yi := b.y[sorted[k]]
			leftSum += yi
			leftSq += yi * yi

			cur, next := b.x[sorted[k]][f], b.x[sorted[k+1]][f]
			if cur == next {
				continue
			}
			nl := float64(k + 1)
			nr := float64(len(sorted) - k - 1)
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
			if sse < bestSSE-1e-12 {
				bestSSE = sse
				bestFeature = f
				bestThreshold = (cur + next) / 2
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

func (b *builder) candidateFeatures() []int {
	width := len(b.x[0])
	all := make([]int, width)
	for i := range all {
		all[i] = i
	}
	if b.cfg.MaxFeatures >= width {
		return all
	}
	b.rng.Shuffle(width, func(i, j int) { all[i], all[j] = all[j], all[i] })
	picked := all[:b.cfg.MaxFeatures]
	sort.Ints(picked)
	return picked
}

func (b *builder) stats(idx []int) (mean, sse float64) {
	var sum, sq float64
	for _, i := range idx {
		sum += b.y[i]
		sq += b.y[i] * b.y[i]
	}
	n := float64(len(idx))
	mean = sum / n
	sse = sq - sum*sum/n
	if sse < 1e-12 {
		sse = 0
	}
	return mean, sse
}

func (n *node) predict(row []float64) float64 {
	for !n.leaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

func (n *node) depth() int {
	if n.leaf {
		return 0
	}
	l, r := n.left.depth(), n.right.depth()
	if l > r {
		return l + 1
	}
	return r + 1
}
