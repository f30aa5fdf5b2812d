// Package log defines standard attribute keys for model scoring operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in ElectronML. Using these standard keys enables
// better log analysis, monitoring, and debugging of inference workflows.
//
// The attributes are organized into categories:
//   - Model and Operation Context
//   - Data Shape and Characteristics
//   - Prediction Output
//   - Cache Statistics
//   - Error Context
//
// These keys follow a hierarchical naming convention (e.g., "model.objective",
// "data.features") to enable structured log analysis and filtering.

package log

// Model and Operation Context
// These attributes identify the model artifact and the operation being performed.
const (
	// ModelNameKey identifies the kind of model being scored.
	// Examples: "xgboost", "scorer"
	ModelNameKey = "model.name"

	// ObjectiveKey records the model's training objective.
	// Examples: "binary:logistic", "multi:softmax"
	ObjectiveKey = "model.objective"

	// TreesKey records the number of trees in the loaded ensemble.
	TreesKey = "model.trees"

	// ClassesKey records the number of output classes of the model.
	ClassesKey = "model.classes"

	// OperationKey specifies the scoring operation being performed.
	// Standard values: "load", "predict", "predict_proba", "transform", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "xgboost", "preprocessing", "scorer"
	ComponentKey = "ml.component"
)

// Data Shape and Characteristics
// These attributes describe the structure of data being processed.
const (
	// SamplesKey indicates the number of records in a batch.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features per record.
	// Important for debugging feature count mismatches.
	FeaturesKey = "data.features"
)

// Prediction Output
// These attributes describe prediction results.
const (
	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"

	// ClassLabelKey records the predicted class label after mapping.
	ClassLabelKey = "preds.label"

	// ConfidenceKey records the probability of the predicted class.
	// Range [0.0, 1.0].
	ConfidenceKey = "preds.confidence"
)

// Cache Statistics
// These attributes describe the predictor's leaf cache.
const (
	// CacheHitsKey records accumulated cache hits.
	CacheHitsKey = "cache.hits"

	// CacheMissesKey records accumulated cache misses.
	CacheMissesKey = "cache.misses"

	// CacheSizeKey records the current number of cached entries.
	CacheSizeKey = "cache.size"
)

// Performance
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Artifact Context
// These attributes describe model and metadata artifacts being loaded.
const (
	// ArtifactPathKey records the filesystem path an artifact was read from.
	ArtifactPathKey = "artifact.path"

	// ArtifactBytesKey records the decoded artifact size in bytes.
	ArtifactBytesKey = "artifact.size_bytes"

	// ArtifactFormatKey records the artifact encoding.
	// Examples: "json", "base64"
	ArtifactFormatKey = "artifact.format"
)

// Error and Warning Context
// These attributes provide additional context for error and warning messages.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "MODEL_FORMAT", "FEATURE_COUNT", "MISSING_FEATURES"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ModelFormatError", "InvalidNumericValueError"
	ErrorTypeKey = "error.type"

	// SuggestionKey provides helpful suggestions for resolving issues.
	// Examples: "Check the preprocessing metadata", "Re-export the model"
	SuggestionKey = "error.suggestion"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard scoring operations
	OperationLoad         = "load"
	OperationPredict      = "predict"
	OperationPredictProba = "predict_proba"
	OperationTransform    = "transform"
	OperationScore        = "score"

	// Standard error codes
	ErrorModelFormat         = "MODEL_FORMAT"
	ErrorFeatureCount        = "FEATURE_COUNT"
	ErrorInvalidFeatureValue = "INVALID_FEATURE_VALUE"
	ErrorInvalidFeatureIndex = "INVALID_FEATURE_INDEX"
	ErrorMissingFeatures     = "MISSING_FEATURES"
	ErrorInvalidNumericValue = "INVALID_NUMERIC_VALUE"
)
