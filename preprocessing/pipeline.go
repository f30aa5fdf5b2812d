package preprocessing

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/antoinebcx/ElectronML/pkg/errors"
)

// Pipeline maps a raw named-feature record onto the ordered numeric vector
// the model was trained against. It is built from the preprocessing
// metadata document and applies the recorded transforms only; it never
// fits anything itself.
//
// A Pipeline is immutable after construction and safe for concurrent use.
type Pipeline struct {
	features    []string
	categorical map[string]*categories
	numeric     map[string]scalingParams
	method      ScalingMethod
	strict      bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStrictCategories makes unseen categorical values fail the transform
// with an UnknownCategoryWarning error instead of falling back to the
// first declared category. The fallback default matches training-time
// behavior; strict mode trades that availability for early detection of
// data-quality problems.
func WithStrictCategories() Option {
	return func(p *Pipeline) {
		p.strict = true
	}
}

// NewPipeline parses a preprocessing metadata document. Construction only
// requires the document to decode against the schema; defects inside
// individual parameter blocks surface on the first Transform that touches
// the affected feature.
func NewPipeline(data []byte, opts ...Option) (p *Pipeline, err error) {
	defer errors.Recover(&err, "NewPipeline")

	if len(data) == 0 {
		return nil, errors.WrapModelFormatError(errors.ErrEmptyData, "metadata", "preprocessing metadata is empty")
	}

	var doc metadataDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapModelFormatError(err, "metadata", "not a valid JSON metadata document")
	}

	p = &Pipeline{
		features:    doc.Features,
		categorical: doc.Categorical,
		numeric:     doc.Numeric,
		method:      parseScalingMethod(doc.ScalingMethod),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// NewPipelineFromReader reads the full metadata document from r and parses it.
func NewPipelineFromReader(r io.Reader, opts ...Option) (*Pipeline, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read preprocessing metadata")
	}
	return NewPipeline(data, opts...)
}

// NewPipelineFromFile parses a preprocessing metadata document from disk.
func NewPipelineFromFile(path string, opts ...Option) (*Pipeline, error) {
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return nil, errors.Newf("path traversal detected in metadata path: %s", path)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "read metadata file")
	}
	return NewPipeline(data, opts...)
}

// Transform converts a raw record into the model's feature vector, in the
// declared feature order.
//
// Every declared feature must be present in the record; absent names are
// collected and reported together in one MissingFeaturesError. Categorical
// values are stringified and looked up in the feature's category table,
// with unseen values falling back to the first declared category (see
// WithStrictCategories). Numeric values are coerced to float64 and scaled
// with the document's scaling method; a value with no numeric
// interpretation, or a parameter block that produces a non-finite result,
// fails with an InvalidNumericValueError naming the feature.
//
// Transform is deterministic: identical input records always produce
// identical vectors.
func (p *Pipeline) Transform(record map[string]any) ([]float64, error) {
	return p.transform("Transform", record)
}

func (p *Pipeline) transform(op string, record map[string]any) ([]float64, error) {
	var missing []string
	for _, name := range p.features {
		if _, ok := record[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewMissingFeaturesError(op, missing)
	}

	vector := make([]float64, len(p.features))
	for i, name := range p.features {
		value := record[name]

		if table, ok := p.categorical[name]; ok {
			code, err := p.encodeCategory(op, name, table, value)
			if err != nil {
				return nil, err
			}
			vector[i] = code
			continue
		}

		scaled, err := p.scaleNumeric(op, name, value)
		if err != nil {
			return nil, err
		}
		vector[i] = scaled
	}
	return vector, nil
}

// scaleNumeric coerces and scales one numeric feature value. The finite
// check catches malformed parameter blocks (zero or missing scale) as well
// as infinite inputs, keeping every emitted vector finite.
func (p *Pipeline) scaleNumeric(op, feature string, value any) (float64, error) {
	num, reason := coerceNumeric(value)
	if reason != "" {
		return 0, errors.NewInvalidNumericValueError(op, feature, value, reason)
	}

	scaled := p.numeric[feature].apply(p.method, num)
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return 0, errors.NewInvalidNumericValueError(op, feature, value, "scaled value is not finite")
	}
	return scaled, nil
}

// TransformBatch transforms a slice of records into a row-per-record
// matrix suitable for PredictBatch-style consumers. The first failing
// record aborts the batch with its index attached.
func (p *Pipeline) TransformBatch(records []map[string]any) (*mat.Dense, error) {
	if len(records) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "TransformBatch")
	}
	if len(p.features) == 0 {
		return nil, errors.NewModelFormatError("features", "metadata declares no features")
	}

	X := mat.NewDense(len(records), len(p.features), nil)
	for i, record := range records {
		vector, err := p.transform("TransformBatch", record)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		X.SetRow(i, vector)
	}
	return X, nil
}

// FeatureInfo describes the pipeline's feature layout for UI hinting and
// debugging. Category labels appear in their declared order.
type FeatureInfo struct {
	Features      []string            `json:"features"`
	Categorical   map[string][]string `json:"categorical_features"`
	Numeric       []string            `json:"numeric_features"`
	ScalingMethod ScalingMethod       `json:"scaling_method"`
}

// FeatureInfo reports the ordered feature names, the valid labels of every
// categorical feature, and the names treated as numeric. It is purely
// descriptive and has no side effects.
func (p *Pipeline) FeatureInfo() FeatureInfo {
	info := FeatureInfo{
		Features:      append([]string(nil), p.features...),
		Categorical:   make(map[string][]string, len(p.categorical)),
		ScalingMethod: p.method,
	}
	for name, table := range p.categorical {
		info.Categorical[name] = append([]string(nil), table.labels...)
	}
	for _, name := range p.features {
		if _, ok := p.categorical[name]; !ok {
			info.Numeric = append(info.Numeric, name)
		}
	}
	return info
}

// NumFeatures returns the length of the vectors Transform emits.
func (p *Pipeline) NumFeatures() int {
	return len(p.features)
}
