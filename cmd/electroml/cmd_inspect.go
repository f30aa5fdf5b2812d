package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/antoinebcx/ElectronML/preprocessing"
	"github.com/antoinebcx/ElectronML/scorer"
	"github.com/antoinebcx/ElectronML/xgboost"
)

// modelReport is the JSON document info prints. The importances field is
// computed from the booster (split frequency, sums to 1); feature_importance
// is the gain-based vector reported by the training run, when the file is a
// full result envelope.
type modelReport struct {
	Model             xgboost.ModelInfo `json:"model"`
	Importances       []float64         `json:"importances"`
	Status            string            `json:"status,omitempty"`
	Metrics           *scorer.Metrics   `json:"metrics,omitempty"`
	FeatureNames      []string          `json:"feature_names,omitempty"`
	ClassMapping      map[int]string    `json:"class_mapping,omitempty"`
	FeatureImportance []float64         `json:"feature_importance,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) {
	model := resolvePath(modelPath, config.Model)
	if model == "" {
		log.Fatalf("info needs --model (or model in the config)")
	}

	result, err := loadTrainingResult(model)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	m, err := xgboost.LoadModelFromBase64(result.Artifacts.Model.Data)
	if err != nil {
		log.Fatalf("Failed to parse model: %v", err)
	}
	predictor := xgboost.NewPredictor(m, xgboost.WithoutCache())

	report := modelReport{
		Model:       predictor.Info(),
		Importances: predictor.FeatureImportances(),
		Status:      result.Status,
	}
	if result.Status != "" {
		report.Metrics = &result.Metrics
	}
	if len(result.FeatureNames) > 0 {
		report.FeatureNames = result.FeatureNames
	}
	if len(result.ClassMapping) > 0 {
		report.ClassMapping = result.ClassMapping
	}
	if len(result.FeatureImportance) > 0 {
		report.FeatureImportance = result.FeatureImportance
	}
	printJSON(report)
}

func runFeatures(cmd *cobra.Command, args []string) {
	meta := resolvePath(metaPath, config.Meta)
	if meta == "" {
		log.Fatalf("features needs --meta (or meta in the config)")
	}

	pipeline, err := preprocessing.NewPipelineFromFile(meta)
	if err != nil {
		log.Fatalf("Failed to load metadata: %v", err)
	}
	printJSON(pipeline.FeatureInfo())
}
