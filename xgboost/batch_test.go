package xgboost

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	mlerrors "github.com/antoinebcx/ElectronML/pkg/errors"
)

// irisGrid builds a rows-by-4 matrix alternating two reference inputs.
func irisGrid(rows int) *mat.Dense {
	a := []float64{5.1, 3.5, 1.4, 0.2}
	b := []float64{6.7, 3.0, 5.2, 2.3}

	X := mat.NewDense(rows, 4, nil)
	for i := 0; i < rows; i++ {
		if i%2 == 0 {
			X.SetRow(i, a)
		} else {
			X.SetRow(i, b)
		}
	}
	return X
}

func TestPredictBatchMatchesSingle(t *testing.T) {
	model, err := LoadModelFromFile("testdata/binary_model.json")
	require.NoError(t, err)
	predictor := NewPredictor(model)

	// Both the sequential path (small batch) and the fan-out path.
	for _, rows := range []int{4, 40} {
		X := irisGrid(rows)

		batch, err := predictor.PredictBatch(X)
		require.NoError(t, err)

		gotRows, gotCols := batch.Dims()
		require.Equal(t, rows, gotRows)
		require.Equal(t, 1, gotCols)

		for i := 0; i < rows; i++ {
			single, err := predictor.Predict(mat.Row(nil, i, X))
			require.NoError(t, err)
			assert.Equal(t, single, batch.At(i, 0), "row %d", i)
		}
	}
}

func TestPredictProbaBatchShapes(t *testing.T) {
	binary, err := LoadModelFromFile("testdata/binary_model.json")
	require.NoError(t, err)
	multiclass, err := LoadModelFromFile("testdata/multiclass_model.json")
	require.NoError(t, err)

	testCases := []struct {
		name  string
		model *Model
		cols  int
	}{
		{name: "binary", model: binary, cols: 2},
		{name: "multiclass", model: multiclass, cols: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			predictor := NewPredictor(tc.model)
			X := irisGrid(40)

			proba, err := predictor.PredictProbaBatch(X)
			require.NoError(t, err)

			rows, cols := proba.Dims()
			assert.Equal(t, 40, rows)
			assert.Equal(t, tc.cols, cols)

			for i := 0; i < rows; i++ {
				sum := 0.0
				for j := 0; j < cols; j++ {
					sum += proba.At(i, j)
				}
				assert.InDelta(t, 1.0, sum, 1e-9, "row %d", i)
			}
		})
	}
}

func TestPredictBatchDimensionMismatch(t *testing.T) {
	model, err := LoadModelFromFile("testdata/binary_model.json")
	require.NoError(t, err)
	predictor := NewPredictor(model)

	_, err = predictor.PredictBatch(mat.NewDense(3, 2, nil))
	require.Error(t, err)

	var countErr *mlerrors.FeatureCountError
	require.True(t, mlerrors.As(err, &countErr))
	assert.Equal(t, "PredictBatch", countErr.Op)
	assert.Equal(t, 4, countErr.Expected)
	assert.Equal(t, 2, countErr.Got)
}

func TestPredictBatchRowError(t *testing.T) {
	model, err := LoadModelFromFile("testdata/binary_model.json")
	require.NoError(t, err)
	predictor := NewPredictor(model)

	// A NaN deep in the batch must surface from the fan-out path too.
	for _, rows := range []int{5, 40} {
		X := irisGrid(rows)
		X.Set(rows-2, 0, math.NaN())

		_, err := predictor.PredictBatch(X)
		require.Error(t, err)

		var valueErr *mlerrors.InvalidFeatureValueError
		assert.True(t, mlerrors.As(err, &valueErr), "rows=%d: %v", rows, err)
	}
}
