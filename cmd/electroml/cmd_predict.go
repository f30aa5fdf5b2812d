package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/antoinebcx/ElectronML/pkg/errors"
	mllog "github.com/antoinebcx/ElectronML/pkg/log"
	"github.com/antoinebcx/ElectronML/preprocessing"
	"github.com/antoinebcx/ElectronML/scorer"
	"github.com/antoinebcx/ElectronML/xgboost"
)

// predictOutput is the JSON document predict prints per record. Regression
// models fill value; classification models fill class and label.
type predictOutput struct {
	Class         *int      `json:"class,omitempty"`
	Label         string    `json:"label,omitempty"`
	Value         *float64  `json:"value,omitempty"`
	Probabilities []float64 `json:"probabilities,omitempty"`
	Margin        *float64  `json:"margin,omitempty"`
}

func runPredict(cmd *cobra.Command, args []string) {
	model := resolvePath(modelPath, config.Model)
	meta := resolvePath(metaPath, config.Meta)
	if model == "" || meta == "" {
		log.Fatalf("predict needs --model and --meta (or model/meta in the config)")
	}

	sc, err := buildScorer(cmd.Context(), model, meta)
	if err != nil {
		log.Fatalf("Failed to load artifacts: %v", err)
	}

	records, single, err := readRecords(inputPath)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	outputs := make([]predictOutput, 0, len(records))
	for i, record := range records {
		p, err := sc.Score(record)
		if err != nil {
			log.Fatalf("Failed to score record %d: %v", i, err)
		}
		outputs = append(outputs, buildOutput(p, showProba, showMargin))
	}

	if single {
		printJSON(outputs[0])
		return
	}
	printJSON(outputs)
}

// buildScorer loads the model envelope and the preprocessing metadata
// concurrently; the two artifacts are independent reads.
func buildScorer(ctx context.Context, modelFile, metaFile string) (*scorer.Scorer, error) {
	start := time.Now()
	var (
		result   *scorer.TrainingResult
		pipeline *preprocessing.Pipeline
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result, err = loadTrainingResult(modelFile)
		return err
	})
	g.Go(func() error {
		var opts []preprocessing.Option
		if strictCats {
			opts = append(opts, preprocessing.WithStrictCategories())
		}
		var err error
		pipeline, err = preprocessing.NewPipelineFromFile(metaFile, opts...)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sc, err := scorer.New(result, pipeline, xgboost.WithCacheCapacity(cacheCapacity()))
	if err != nil {
		return nil, err
	}
	info := sc.Predictor().Info()
	slog.Debug("artifacts loaded",
		slog.String(mllog.ObjectiveKey, info.ObjectiveName),
		slog.Int(mllog.TreesKey, info.NumTrees),
		slog.Int(mllog.FeaturesKey, info.NumFeatures),
		slog.Int64(mllog.DurationMsKey, time.Since(start).Milliseconds()))
	return sc, nil
}

// loadTrainingResult reads a model file in any of the three shapes a
// training run can leave behind: the full result envelope, a raw booster
// dump, or a bare base64 artifact. The last two are wrapped into a minimal
// envelope so the scorer can consume them; they carry no class mapping, so
// predictions stay unlabeled.
func loadTrainingResult(path string) (*scorer.TrainingResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read model file")
	}
	if looksLikeEnvelope(data) {
		return scorer.ParseTrainingResult(data)
	}

	encoded := strings.TrimSpace(string(data))
	if strings.HasPrefix(encoded, "{") {
		encoded = base64.StdEncoding.EncodeToString(data)
	}
	return &scorer.TrainingResult{
		Artifacts: scorer.Artifacts{
			Model: scorer.ModelArtifact{Data: encoded, Format: "json"},
		},
	}, nil
}

// looksLikeEnvelope reports whether the document carries the artifacts
// section of a training result, as opposed to a raw booster dump.
func looksLikeEnvelope(data []byte) bool {
	var probe struct {
		Artifacts *struct {
			Model *json.RawMessage `json:"model"`
		} `json:"artifacts"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Artifacts != nil && probe.Artifacts.Model != nil
}

// readRecords parses the input document into records to score. A single
// JSON object scores one record; a JSON array scores each element. The
// returned flag reports the single-object case so the output keeps the
// input's shape.
func readRecords(path string) ([]map[string]any, bool, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "read input")
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, false, errors.Wrap(errors.ErrEmptyData, "input")
	}
	if trimmed[0] == '[' {
		var records []map[string]any
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, false, errors.Wrap(err, "parse input records")
		}
		return records, false, nil
	}
	var record map[string]any
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return nil, false, errors.Wrap(err, "parse input record")
	}
	return []map[string]any{record}, true, nil
}

func buildOutput(p *scorer.Prediction, withProba, withMargin bool) predictOutput {
	var out predictOutput
	if p.Probabilities == nil {
		value := p.Margin
		out.Value = &value
	} else {
		class := p.Class
		out.Class = &class
		out.Label = p.Label
		if withProba {
			out.Probabilities = p.Probabilities
		}
	}
	if withMargin {
		margin := p.Margin
		out.Margin = &margin
	}
	return out
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
	fmt.Println(string(out))
}
