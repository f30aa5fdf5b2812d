package xgboost

import (
	"math"

	"github.com/antoinebcx/ElectronML/pkg/errors"
)

// marginClamp bounds the logistic margin before exponentiation.
const marginClamp = 40.0

// softmaxCutoff is the shifted-margin threshold below which a softmax term
// underflows to exactly zero.
const softmaxCutoff = -40.0

// Predictor scores single feature vectors against a loaded Model. It is safe
// for concurrent use; the traversal cache is the only mutable state and is
// mutex-protected. Predictions are pure functions of (model, input) and the
// cache never changes observable output, only latency.
type Predictor struct {
	model *Model
	cache *traversalCache
}

// Option configures a Predictor.
type Option func(*Predictor)

// WithCacheCapacity sets the traversal cache bound. Values below 1 disable
// caching entirely.
func WithCacheCapacity(n int) Option {
	return func(p *Predictor) {
		if n < 1 {
			p.cache = nil
			return
		}
		p.cache = newTraversalCache(n)
	}
}

// WithoutCache disables traversal memoization. Every prediction then walks
// every tree; useful when inputs never repeat.
func WithoutCache() Option {
	return func(p *Predictor) {
		p.cache = nil
	}
}

// NewPredictor creates a Predictor for the given model with a traversal cache
// of DefaultCacheCapacity unless configured otherwise.
func NewPredictor(model *Model, opts ...Option) *Predictor {
	p := &Predictor{
		model: model,
		cache: newTraversalCache(DefaultCacheCapacity),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Model returns the model this predictor scores against.
func (p *Predictor) Model() *Model {
	return p.model
}

// Info returns the model's read-only descriptor.
func (p *Predictor) Info() ModelInfo {
	return p.model.Info()
}

// Predict returns the predicted class for the feature vector: for
// single-output ensembles 1 if the positive-class probability is at least
// 0.5, else 0; for multiclass ensembles the index of the largest raw margin,
// with ties going to the lowest index. Regression-style callers wanting the
// raw value should use PredictMargin.
func (p *Predictor) Predict(features []float64) (float64, error) {
	return p.predict("Predict", features)
}

// PredictProba returns the class probability vector for the feature vector.
// Single-output ensembles return [P(class 0), P(class 1)] through the
// logistic link; multiclass ensembles return one probability per class
// through the softmax link.
func (p *Predictor) PredictProba(features []float64) ([]float64, error) {
	return p.predictProba("PredictProba", features)
}

// PredictMargin returns the raw pre-link margins: a single accumulated value
// for single-output ensembles (base score included), one accumulator per
// class for multiclass ensembles.
func (p *Predictor) PredictMargin(features []float64) ([]float64, error) {
	return p.margins("PredictMargin", features)
}

// ClearCache drops every memoized traversal and resets the cache counters.
func (p *Predictor) ClearCache() {
	if p.cache != nil {
		p.cache.clear()
	}
}

// CacheStats returns traversal cache counters. A predictor built with
// WithoutCache reports zeros.
func (p *Predictor) CacheStats() CacheStats {
	if p.cache == nil {
		return CacheStats{}
	}
	return p.cache.stats()
}

func (p *Predictor) predict(op string, features []float64) (float64, error) {
	if p.model.NumClasses > 1 {
		margins, err := p.margins(op, features)
		if err != nil {
			return 0, err
		}
		return float64(argmax(margins)), nil
	}

	proba, err := p.predictProba(op, features)
	if err != nil {
		return 0, err
	}
	if proba[1] >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

func (p *Predictor) predictProba(op string, features []float64) ([]float64, error) {
	margins, err := p.margins(op, features)
	if err != nil {
		return nil, err
	}
	if p.model.NumClasses > 1 {
		return stableSoftmax(margins), nil
	}
	pos := stableSigmoid(margins[0])
	return []float64{1 - pos, pos}, nil
}

// margins validates the input and accumulates raw tree outputs. Validation
// runs before any cache access, so a rejected input never mutates cache
// state.
func (p *Predictor) margins(op string, features []float64) ([]float64, error) {
	if err := p.validate(op, features); err != nil {
		return nil, err
	}

	var sig string
	if p.cache != nil {
		sig = vectorSignature(features)
	}

	if p.model.NumClasses > 1 {
		margins := make([]float64, p.model.NumClasses)
		for i := range p.model.Trees {
			weight, err := p.traverse(op, i, features, sig)
			if err != nil {
				return nil, err
			}
			margins[p.model.TreeToClass[i]] += weight
		}
		return margins, nil
	}

	margin := p.model.BaseScore
	for i := range p.model.Trees {
		weight, err := p.traverse(op, i, features, sig)
		if err != nil {
			return nil, err
		}
		margin += weight
	}
	return []float64{margin}, nil
}

func (p *Predictor) validate(op string, features []float64) error {
	if len(features) != p.model.NumFeatures {
		return errors.NewFeatureCountError(op, p.model.NumFeatures, len(features))
	}
	for i, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.NewInvalidFeatureValueError(op, i, v)
		}
	}
	return nil
}

// traverse walks tree treeIdx from the root to a leaf and returns its weight.
// Split feature indices are checked against the input vector here rather
// than at construction; a split referencing a feature beyond the vector is a
// structural mismatch between model and input.
func (p *Predictor) traverse(op string, treeIdx int, features []float64, sig string) (float64, error) {
	key := traversalKey{tree: treeIdx, sig: sig}
	if p.cache != nil {
		if weight, ok := p.cache.get(key); ok {
			return weight, nil
		}
	}

	tree := &p.model.Trees[treeIdx]
	node := 0
	for !tree.IsLeaf(node) {
		feature := tree.SplitFeatures[node]
		if feature < 0 || feature >= len(features) {
			return 0, errors.NewInvalidFeatureIndexError(op, treeIdx, node, feature, len(features))
		}
		if features[feature] <= tree.Thresholds[node] {
			node = tree.LeftChildren[node]
		} else {
			node = tree.RightChildren[node]
		}
	}

	weight := tree.Weights[node]
	if p.cache != nil {
		p.cache.put(key, weight)
	}
	return weight, nil
}

// argmax returns the index of the largest value, first occurrence winning.
func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

// stableSigmoid applies the logistic link with the margin clamped to
// [-marginClamp, marginClamp], split into positive and negative branches so
// the exponent argument is never positive.
func stableSigmoid(margin float64) float64 {
	m := errors.ClipValue(margin, -marginClamp, marginClamp)
	if m >= 0 {
		return 1.0 / (1.0 + math.Exp(-m))
	}
	e := math.Exp(m)
	return e / (1.0 + e)
}

// stableSoftmax applies the softmax link after shifting by the row maximum.
// Shifted margins below softmaxCutoff contribute exactly zero; an all-zero
// sum keeps a denominator of 1 and yields a zero vector instead of NaN.
func stableSoftmax(margins []float64) []float64 {
	maxMargin := margins[0]
	for _, m := range margins[1:] {
		if m > maxMargin {
			maxMargin = m
		}
	}

	result := make([]float64, len(margins))
	sum := 0.0
	for i, m := range margins {
		shifted := m - maxMargin
		if shifted < softmaxCutoff {
			continue
		}
		result[i] = errors.StabilizeExp(shifted)
		sum += result[i]
	}
	if sum == 0 {
		sum = 1
	}
	for i := range result {
		result[i] /= sum
	}
	return result
}
