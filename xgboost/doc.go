// Package xgboost decodes XGBoost native JSON model dumps and scores feature
// vectors against them in pure Go, with no dependency on the training
// runtime.
//
// The package targets single-record, interactive inference:
//   - Strict decoding: the artifact is validated once at load time and every
//     structural defect fails fast with a ModelFormatError
//   - Flat tree storage: trees keep the artifact's parallel-array encoding,
//     so traversal is array walking without pointer graphs
//   - Numerically stable links: clamped logistic and max-shifted softmax
//   - Bounded traversal memoization: an LRU keyed by (tree, feature vector)
//     speeds up repeated what-if predictions
//
// # Basic Usage
//
// Load a model artifact and score a feature vector:
//
//	model, err := xgboost.LoadModelFromFile("model.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	predictor := xgboost.NewPredictor(model)
//	class, err := predictor.Predict([]float64{5.1, 3.5, 1.4, 0.2})
//	proba, err := predictor.PredictProba([]float64{5.1, 3.5, 1.4, 0.2})
//
// # Loading Formats
//
// Artifacts arrive either as raw JSON dumps or base64 transport-encoded, the
// form training services embed in their result envelopes:
//
//	model, _ := xgboost.LoadModel(rawJSON)
//	model, _ := xgboost.LoadModelFromBase64(encoded)
//	model, _ := xgboost.LoadModelAuto(data) // detects the encoding
//
// # Cache Control
//
// The traversal cache is bounded and can be resized or disabled:
//
//	predictor := xgboost.NewPredictor(model, xgboost.WithCacheCapacity(4096))
//	predictor := xgboost.NewPredictor(model, xgboost.WithoutCache())
//	predictor.ClearCache()
//
// # Introspection
//
// Model metadata and split-frequency feature importances are exposed for
// debugging and UI display:
//
//	info := predictor.Info()
//	importances := predictor.FeatureImportances()
//
// Booster types other than tree ensembles (linear boosters, DART) and
// missing-value default-direction routing are not supported.
package xgboost
