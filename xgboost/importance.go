package xgboost

import (
	"gonum.org/v1/gonum/floats"

	"github.com/antoinebcx/ElectronML/pkg/errors"
)

// FeatureImportances returns the split-frequency importance of each feature:
// the share of internal-node splits across the ensemble that test it. The
// result sums to 1, or is all zeros for an ensemble without splits. Split
// indices outside [0, NumFeatures) are skipped rather than counted.
func (p *Predictor) FeatureImportances() []float64 {
	counts := make([]float64, p.model.NumFeatures)
	for ti := range p.model.Trees {
		tree := &p.model.Trees[ti]
		for node := 0; node < tree.NumNodes(); node++ {
			if tree.IsLeaf(node) {
				continue
			}
			if f := tree.SplitFeatures[node]; f >= 0 && f < len(counts) {
				counts[f]++
			}
		}
	}
	floats.Scale(errors.SafeDivide(1, floats.Sum(counts)), counts)
	return counts
}
