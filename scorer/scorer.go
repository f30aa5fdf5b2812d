// Package scorer composes the preprocessing pipeline and the tree
// predictor into end-to-end record scoring, the way generated inference
// clients consume a training run: raw named features in, labeled
// prediction out.
package scorer

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/antoinebcx/ElectronML/pkg/errors"
	"github.com/antoinebcx/ElectronML/preprocessing"
	"github.com/antoinebcx/ElectronML/xgboost"
)

// Prediction is one scored record. Classification predictions carry the
// class index, its training-time label and the full probability vector;
// regression predictions carry the raw value in Margin only.
type Prediction struct {
	Class         int       `json:"class"`
	Label         string    `json:"label,omitempty"`
	Probabilities []float64 `json:"probabilities,omitempty"`
	Margin        float64   `json:"margin"`
}

// Scorer scores raw feature records against one training run. It owns a
// preprocessing.Pipeline for the feature transforms and an
// xgboost.Predictor for the decoded model artifact.
type Scorer struct {
	result    *TrainingResult
	pipeline  *preprocessing.Pipeline
	predictor *xgboost.Predictor
}

// New builds a Scorer from a parsed training result and the matching
// preprocessing pipeline, decoding the embedded model artifact. Predictor
// options are passed through. The pipeline and the model must agree on
// the feature count; a mismatch means the two documents came from
// different training runs.
func New(result *TrainingResult, pipeline *preprocessing.Pipeline, opts ...xgboost.Option) (*Scorer, error) {
	model, err := xgboost.LoadModelFromBase64(result.Artifacts.Model.Data)
	if err != nil {
		return nil, err
	}

	if pipeline.NumFeatures() != model.NumFeatures {
		return nil, errors.NewModelFormatError("metadata.features",
			fmt.Sprintf("metadata declares %d features but the model expects %d",
				pipeline.NumFeatures(), model.NumFeatures))
	}

	return &Scorer{
		result:    result,
		pipeline:  pipeline,
		predictor: xgboost.NewPredictor(model, opts...),
	}, nil
}

// NewFromBytes parses the raw envelope and metadata documents and builds
// a Scorer from them.
func NewFromBytes(resultData, metaData []byte, opts ...xgboost.Option) (*Scorer, error) {
	result, err := ParseTrainingResult(resultData)
	if err != nil {
		return nil, err
	}
	pipeline, err := preprocessing.NewPipeline(metaData)
	if err != nil {
		return nil, err
	}
	return New(result, pipeline, opts...)
}

// Result returns the training result envelope the scorer was built from.
func (s *Scorer) Result() *TrainingResult {
	return s.result
}

// Pipeline returns the feature preprocessing pipeline.
func (s *Scorer) Pipeline() *preprocessing.Pipeline {
	return s.pipeline
}

// Predictor returns the model predictor.
func (s *Scorer) Predictor() *xgboost.Predictor {
	return s.predictor
}

// Score transforms one raw record and scores it. Transform and prediction
// errors pass through untouched, naming the offending feature or index.
func (s *Scorer) Score(record map[string]any) (*Prediction, error) {
	vector, err := s.pipeline.Transform(record)
	if err != nil {
		return nil, err
	}
	return s.scoreVector(vector)
}

// ScoreBatch transforms and scores a slice of records. The first failing
// record aborts the batch.
func (s *Scorer) ScoreBatch(records []map[string]any) ([]Prediction, error) {
	X, err := s.pipeline.TransformBatch(records)
	if err != nil {
		return nil, err
	}

	rows, _ := X.Dims()
	predictions := make([]Prediction, rows)
	for i := 0; i < rows; i++ {
		prediction, err := s.scoreVector(mat.Row(nil, i, X))
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		predictions[i] = *prediction
	}
	return predictions, nil
}

func (s *Scorer) scoreVector(vector []float64) (*Prediction, error) {
	margins, err := s.predictor.PredictMargin(vector)
	if err != nil {
		return nil, err
	}

	objective := s.predictor.Model().Objective
	if objective != xgboost.BinaryLogistic && objective != xgboost.MulticlassSoftmax {
		// Regression-style ensembles: the margin is the prediction.
		return &Prediction{Margin: margins[0]}, nil
	}

	proba, err := s.predictor.PredictProba(vector)
	if err != nil {
		return nil, err
	}
	predicted, err := s.predictor.Predict(vector)
	if err != nil {
		return nil, err
	}

	class := int(predicted)
	margin := margins[0]
	if objective == xgboost.MulticlassSoftmax {
		margin = margins[class]
	}

	return &Prediction{
		Class:         class,
		Label:         s.result.Label(class),
		Probabilities: proba,
		Margin:        margin,
	}, nil
}
