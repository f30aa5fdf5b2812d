// Package preprocessing reproduces at inference time the feature
// transforms that were fitted at training time. A Pipeline parses the
// metadata document the training service exports next to each model and
// maps raw named-feature records onto the ordered numeric vectors the
// ensemble expects.
//
// # Metadata Document
//
// The document lists the feature order, a label-to-code table per
// categorical feature, per-feature scaling parameters for numeric
// features, and the scaling method applied uniformly to all of them:
//
//	{
//	  "features": ["island", "bill_length_mm"],
//	  "categorical_features": {"island": {"Biscoe": 0, "Dream": 1}},
//	  "numeric_features": {"bill_length_mm": {"mean": 43.9, "scale": 5.4}},
//	  "scaling_method": "standard"
//	}
//
// Standard scaling computes (value - mean) / scale, min-max scaling
// (value - min) / scale. Category tables keep their document order, which
// matters for the unknown-category fallback below.
//
// # Unknown Categories
//
// A categorical value that never occurred at training time is not an
// error: it is encoded as the first declared category, and the incident is
// reported through the pkg/errors warning hook. The trained model only
// knows the recorded codes, so failing here would reject records the
// original pipeline happily scored, while remapping would change
// predictions. Callers who prefer fail-fast behavior can opt in:
//
//	pipeline, err := preprocessing.NewPipeline(meta, preprocessing.WithStrictCategories())
//
// # Basic Usage
//
//	pipeline, err := preprocessing.NewPipeline(meta)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	vector, err := pipeline.Transform(map[string]any{
//	    "island":         "Dream",
//	    "bill_length_mm": 46.5,
//	})
package preprocessing
