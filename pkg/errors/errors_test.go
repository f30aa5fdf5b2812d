package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewModelFormatError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		reason   string
		cause    error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "without cause",
			field:    "learner.objective",
			reason:   "objective name is required",
			cause:    nil,
			wantMsg:  "electronml: invalid model format: learner.objective: objective name is required",
			hasStack: true,
		},
		{
			name:     "with cause",
			field:    "learner.gradient_booster.model.trees",
			reason:   "cannot decode",
			cause:    fmt.Errorf("test error"),
			wantMsg:  "electronml: invalid model format: learner.gradient_booster.model.trees: cannot decode: test error",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.cause != nil {
				err = WrapModelFormatError(tt.cause, tt.field, tt.reason)
			} else {
				err = NewModelFormatError(tt.field, tt.reason)
			}

			// 基本的なエラーメッセージの確認
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			// ModelFormatError型にキャスト可能か確認
			var fmtErr *ModelFormatError
			if !As(err, &fmtErr) {
				t.Error("Error should be castable to *ModelFormatError")
			}

			// 原因エラーのチェーンを確認
			if tt.cause != nil && !Is(err, tt.cause) {
				t.Error("Expected Is(err, cause) to be true")
			}
		})
	}
}

func TestNewFeatureCountError(t *testing.T) {
	err := NewFeatureCountError("Predict", 4, 3)

	// 基本的なエラーメッセージの確認
	want := "electronml: Predict: feature count mismatch: expected 4 features, got 3"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// FeatureCountError型にキャスト可能か確認
	var countErr *FeatureCountError
	if !As(err, &countErr) {
		t.Error("Error should be castable to *FeatureCountError")
	}
	if countErr.Expected != 4 || countErr.Got != 3 {
		t.Errorf("Expected/Got = %d/%d, want 4/3", countErr.Expected, countErr.Got)
	}
}

func TestNewInvalidFeatureValueError(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		value   float64
		wantMsg string
	}{
		{
			name:    "NaN value",
			index:   2,
			value:   math.NaN(),
			wantMsg: "electronml: Predict: non-finite value NaN at feature index 2",
		},
		{
			name:    "positive infinity",
			index:   0,
			value:   math.Inf(1),
			wantMsg: "electronml: Predict: non-finite value +Inf at feature index 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewInvalidFeatureValueError("Predict", tt.index, tt.value)
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			var valErr *InvalidFeatureValueError
			if !As(err, &valErr) {
				t.Error("Error should be castable to *InvalidFeatureValueError")
			}
		})
	}
}

func TestNewInvalidFeatureIndexError(t *testing.T) {
	err := NewInvalidFeatureIndexError("Predict", 1, 3, 7, 4)

	want := "electronml: Predict: tree 1 node 3 references feature 7 out of range [0, 4)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var idxErr *InvalidFeatureIndexError
	if !As(err, &idxErr) {
		t.Error("Error should be castable to *InvalidFeatureIndexError")
	}
	if idxErr.Tree != 1 || idxErr.Node != 3 {
		t.Errorf("Tree/Node = %d/%d, want 1/3", idxErr.Tree, idxErr.Node)
	}
}

func TestNewMissingFeaturesError(t *testing.T) {
	err := NewMissingFeaturesError("Transform", []string{"age", "income"})

	// すべての欠落特徴量が列挙されることの確認
	want := "electronml: Transform: missing required features: age, income"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var missErr *MissingFeaturesError
	if !As(err, &missErr) {
		t.Error("Error should be castable to *MissingFeaturesError")
	}
	if len(missErr.Features) != 2 {
		t.Errorf("len(Features) = %d, want 2", len(missErr.Features))
	}
}

func TestNewInvalidNumericValueError(t *testing.T) {
	err := NewInvalidNumericValueError("Transform", "age", "abc", "not a number")

	want := `electronml: Transform: feature "age": invalid numeric value abc: not a number`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var numErr *InvalidNumericValueError
	if !As(err, &numErr) {
		t.Error("Error should be castable to *InvalidNumericValueError")
	}
}

func TestNewUnknownCategoryWarning(t *testing.T) {
	warn := NewUnknownCategoryWarning("color", "teal", "blue")

	want := `unknown category "teal" for feature "color", falling back to "blue"`
	if warn.Error() != want {
		t.Errorf("Error() = %v, want %v", warn.Error(), want)
	}

	// UnknownCategoryWarning型へのキャストのみ確認
	var catWarn *UnknownCategoryWarning
	if !As(warn, &catWarn) {
		t.Error("Warning should be castable to *UnknownCategoryWarning")
	}
}

func TestWarnHandler(t *testing.T) {
	var captured []error
	SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer SetWarningHandler(func(w error) {})

	Warn(NewUnknownCategoryWarning("city", "Atlantis", "Boston"))
	Warn(NewDataConversionWarning("string", "float64", "numeric feature supplied as string"))

	if len(captured) != 2 {
		t.Fatalf("captured %d warnings, want 2", len(captured))
	}
	if !strings.Contains(captured[0].Error(), "Atlantis") {
		t.Errorf("first warning = %v, want unknown category warning", captured[0])
	}
}

func TestWrapAndIs(t *testing.T) {
	// 元のエラー
	baseErr := ErrEmptyData

	// ラップ
	wrapped := Wrap(baseErr, "in Pipeline.TransformBatch")

	// Is関数でチェック
	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	// エラーメッセージの確認
	if !strings.Contains(wrapped.Error(), "in Pipeline.TransformBatch") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	baseErr := ErrEmptyData

	// フォーマット付きラップ
	wrapped := Wrapf(baseErr, "in %s: expected %d, got %d", "PredictBatch", 10, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in PredictBatch: expected 10, got 0"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	// エラーチェーンの作成
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := WrapModelFormatError(err2, "learner", "decode failed")

	// チェーン全体を確認
	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	// スタックトレースの確認（詳細表示）
	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
