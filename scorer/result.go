package scorer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/antoinebcx/ElectronML/pkg/errors"
)

// TrainingResult is the envelope a training run returns: evaluation
// metrics, training-time feature importances, the class label mapping and
// the transport-encoded model artifact.
type TrainingResult struct {
	Status            string         `json:"status"`
	Metrics           Metrics        `json:"metrics"`
	FeatureImportance []float64      `json:"feature_importance"`
	FeatureNames      []string       `json:"feature_names"`
	ClassMapping      map[int]string `json:"class_mapping"`
	Artifacts         Artifacts      `json:"artifacts"`
}

// Metrics carries the task-dependent evaluation block. Classification runs
// fill the accuracy fields and the confusion matrix, regression runs the
// RMSE fields and the held-out predictions; the other side stays zero.
type Metrics struct {
	TrainAccuracy   float64          `json:"train_accuracy,omitempty"`
	TestAccuracy    float64          `json:"test_accuracy,omitempty"`
	NumClasses      int              `json:"n_classes,omitempty"`
	TrainRMSE       float64          `json:"train_rmse,omitempty"`
	TestRMSE        float64          `json:"test_rmse,omitempty"`
	NumFeatures     int              `json:"n_features"`
	ConfusionMatrix [][]int          `json:"confusion_matrix,omitempty"`
	TestPredictions *TestPredictions `json:"test_predictions,omitempty"`
}

// TestPredictions pairs held-out targets with the model's predictions,
// kept for regression result charts.
type TestPredictions struct {
	Actual    []float64 `json:"actual"`
	Predicted []float64 `json:"predicted"`
}

// Artifacts groups the serialized artifacts of a training run.
type Artifacts struct {
	Model ModelArtifact `json:"model"`
}

// ModelArtifact is the transport-encoded model dump and its format tag.
type ModelArtifact struct {
	Data   string `json:"data"`
	Format string `json:"format"`
}

// IsClassification reports whether the envelope came from a
// classification run. Regression results carry no class mapping.
func (r *TrainingResult) IsClassification() bool {
	return len(r.ClassMapping) > 0
}

// Label resolves a class index to its training-time label. Unmapped
// indices resolve to the empty string.
func (r *TrainingResult) Label(class int) string {
	return r.ClassMapping[class]
}

// ParseTrainingResult decodes a training result envelope. The embedded
// model artifact must be present and declared in a supported format;
// everything else is carried as-is.
func ParseTrainingResult(data []byte) (result *TrainingResult, err error) {
	defer errors.Recover(&err, "ParseTrainingResult")

	if len(data) == 0 {
		return nil, errors.WrapModelFormatError(errors.ErrEmptyData, "result", "training result is empty")
	}

	var r TrainingResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.WrapModelFormatError(err, "result", "not a valid JSON training result")
	}

	if r.Artifacts.Model.Data == "" {
		return nil, errors.NewModelFormatError("artifacts.model.data", "model artifact is missing")
	}
	if format := r.Artifacts.Model.Format; format != "" && format != "json" {
		return nil, errors.NewModelFormatError("artifacts.model.format",
			fmt.Sprintf("unsupported model format %q", format))
	}
	return &r, nil
}

// ParseTrainingResultFromReader reads the full envelope from r and parses it.
func ParseTrainingResultFromReader(r io.Reader) (*TrainingResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read training result")
	}
	return ParseTrainingResult(data)
}

// ParseTrainingResultFromFile parses a training result envelope from disk.
func ParseTrainingResultFromFile(path string) (*TrainingResult, error) {
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return nil, errors.Newf("path traversal detected in result path: %s", path)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "read training result file")
	}
	return ParseTrainingResult(data)
}
