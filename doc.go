// Package electronml provides a pure-Go inference runtime for models
// trained with the ElectronML desktop trainer: XGBoost-style gradient
// boosted trees shipped as native JSON dumps, plus the preprocessing
// metadata needed to turn raw named features into the numeric vectors
// those trees expect.
//
// No Python runtime and no cgo are involved. A training run leaves behind
// two JSON artifacts (a result envelope with a base64 model inside, and a
// preprocessing metadata document); this module consumes both.
//
// # Installation
//
//	go get github.com/antoinebcx/ElectronML
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/antoinebcx/ElectronML/scorer"
//	)
//
//	func main() {
//	    sc, err := scorer.NewFromBytes(resultJSON, metaJSON)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    p, err := sc.Score(map[string]any{
//	        "income":     64000.0,
//	        "age":        35,
//	        "employment": "full_time",
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(p.Label, p.Probabilities)
//	}
//
// # Packages
//
//   - xgboost: model loading (raw or base64 JSON dumps), tree traversal,
//     margins, probabilities and batch prediction
//   - preprocessing: metadata parsing, category encoding and feature scaling
//   - scorer: the two combined, raw records in and labeled predictions out
//   - pkg/errors: the typed error taxonomy and warning plumbing
//   - pkg/log: slog setup with stacktrace-aware error attributes
//
// The cmd/electroml command exposes the same flow on the command line.
package electronml
