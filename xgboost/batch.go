package xgboost

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/antoinebcx/ElectronML/pkg/errors"
)

// minParallelRows is the batch size under which row fan-out is not worth the
// goroutine overhead.
const minParallelRows = 32

// PredictBatch scores every row of X and returns a rows-by-1 matrix of
// predicted classes. It is a convenience for interactive what-if grids;
// single-record Predict remains the primary API.
func (p *Predictor) PredictBatch(X mat.Matrix) (*mat.Dense, error) {
	const op = "PredictBatch"
	rows, cols := X.Dims()
	if cols != p.model.NumFeatures {
		return nil, errors.NewFeatureCountError(op, p.model.NumFeatures, cols)
	}

	out := mat.NewDense(rows, 1, nil)
	err := p.forEachRow(rows, func(i int) error {
		pred, err := p.predict(op, mat.Row(nil, i, X))
		if err != nil {
			return err
		}
		out.Set(i, 0, pred)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PredictProbaBatch returns per-class probabilities for every row of X:
// rows-by-2 for single-output ensembles, rows-by-NumClasses for multiclass.
func (p *Predictor) PredictProbaBatch(X mat.Matrix) (*mat.Dense, error) {
	const op = "PredictProbaBatch"
	rows, cols := X.Dims()
	if cols != p.model.NumFeatures {
		return nil, errors.NewFeatureCountError(op, p.model.NumFeatures, cols)
	}

	out := mat.NewDense(rows, p.probaWidth(), nil)
	err := p.forEachRow(rows, func(i int) error {
		proba, err := p.predictProba(op, mat.Row(nil, i, X))
		if err != nil {
			return err
		}
		out.SetRow(i, proba)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// probaWidth is the probability vector length PredictProba emits.
func (p *Predictor) probaWidth() int {
	if p.model.NumClasses > 1 {
		return p.model.NumClasses
	}
	return 2
}

// forEachRow runs fn for every row index, fanning out across CPUs for larger
// batches. Workers touch disjoint output rows and share only the traversal
// cache, which carries its own lock.
func (p *Predictor) forEachRow(rows int, fn func(i int) error) error {
	workers := runtime.NumCPU()
	if rows < minParallelRows || workers < 2 {
		for i := 0; i < rows; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	if workers > rows {
		workers = rows
	}
	chunk := (rows + workers - 1) / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > rows {
			end = rows
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
