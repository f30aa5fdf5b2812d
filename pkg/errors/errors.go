// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// モデル成果物のデコードと特徴量前処理で発生する問題を、構造化されたエラー情報として提供します。
package errors

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("ElectronML-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// これにより、UnknownCategoryWarningなどのカスタム警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	// zerologが設定されている場合は優先的に使用
	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	// フォールバック: 従来のハンドラ
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	前処理の警告型
//
// ===========================================================================

// UnknownCategoryWarning は学習時に存在しなかったカテゴリ値が入力された場合に発生する警告です。
// 変換自体は先頭カテゴリへのフォールバックで継続されます。
type UnknownCategoryWarning struct {
	Feature  string
	Value    string
	Fallback string
}

func (w *UnknownCategoryWarning) Error() string {
	return fmt.Sprintf("unknown category %q for feature %q, falling back to %q", w.Value, w.Feature, w.Fallback)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *UnknownCategoryWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("feature", w.Feature).
		Str("value", w.Value).
		Str("fallback", w.Fallback).
		Str("type", "UnknownCategoryWarning")
}

// NewUnknownCategoryWarning は新しいUnknownCategoryWarningを作成します。
func NewUnknownCategoryWarning(feature, value, fallback string) *UnknownCategoryWarning {
	return &UnknownCategoryWarning{Feature: feature, Value: value, Fallback: fallback}
}

// DataConversionWarning はデータの型が暗黙的に変換された場合に発生する警告です。
type DataConversionWarning struct {
	FromType string
	ToType   string
	Reason   string
}

func (w *DataConversionWarning) Error() string {
	return fmt.Sprintf("data converted from %s to %s. Reason: %s", w.FromType, w.ToType, w.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DataConversionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("from_type", w.FromType).
		Str("to_type", w.ToType).
		Str("reason", w.Reason).
		Str("type", "DataConversionWarning")
}

// NewDataConversionWarning は新しいDataConversionWarningを作成します。
func NewDataConversionWarning(from, to, reason string) *DataConversionWarning {
	return &DataConversionWarning{FromType: from, ToType: to, Reason: reason}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// ModelFormatError はモデル成果物のJSONが構造的に不正な場合のエラーです。
// 必須フィールドの欠落、型の不一致、木構造の破損などを示します。
type ModelFormatError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ModelFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("electronml: invalid model format: %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("electronml: invalid model format: %s: %s", e.Field, e.Reason)
}

func (e *ModelFormatError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ModelFormatError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("field", e.Field).
		Str("reason", e.Reason).
		Str("type", "ModelFormatError")
}

// NewModelFormatError は新しいModelFormatErrorを作成し、スタックトレースを付与します。
func NewModelFormatError(field, reason string) error {
	err := &ModelFormatError{Field: field, Reason: reason}
	return errors.WithStack(err)
}

// WrapModelFormatError は下位のパースエラーをModelFormatErrorでラップします。
func WrapModelFormatError(cause error, field, reason string) error {
	err := &ModelFormatError{Field: field, Reason: reason, Err: cause}
	return errors.WithStack(err)
}

// FeatureCountError は入力ベクトルの特徴量数がモデルの期待値と異なる場合のエラーです。
type FeatureCountError struct {
	Op       string
	Expected int
	Got      int
}

func (e *FeatureCountError) Error() string {
	return fmt.Sprintf("electronml: %s: feature count mismatch: expected %d features, got %d", e.Op, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *FeatureCountError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "FeatureCountError")
}

// NewFeatureCountError は新しいFeatureCountErrorを作成し、スタックトレースを付与します。
func NewFeatureCountError(op string, expected, got int) error {
	err := &FeatureCountError{Op: op, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// InvalidFeatureValueError は入力ベクトルにNaNまたは無限大が含まれる場合のエラーです。
type InvalidFeatureValueError struct {
	Op    string
	Index int
	Value float64
}

func (e *InvalidFeatureValueError) Error() string {
	return fmt.Sprintf("electronml: %s: non-finite value %g at feature index %d", e.Op, e.Value, e.Index)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidFeatureValueError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("index", e.Index).
		Float64("value", e.Value).
		Str("type", "InvalidFeatureValueError")
}

// NewInvalidFeatureValueError は新しいInvalidFeatureValueErrorを作成し、スタックトレースを付与します。
func NewInvalidFeatureValueError(op string, index int, value float64) error {
	err := &InvalidFeatureValueError{Op: op, Index: index, Value: value}
	return errors.WithStack(err)
}

// InvalidFeatureIndexError は木の分岐ノードが存在しない特徴量インデックスを参照している場合のエラーです。
// モデルの特徴量数と分岐定義の不整合を示します。
type InvalidFeatureIndexError struct {
	Op          string
	Tree        int
	Node        int
	Index       int
	NumFeatures int
}

func (e *InvalidFeatureIndexError) Error() string {
	return fmt.Sprintf("electronml: %s: tree %d node %d references feature %d out of range [0, %d)",
		e.Op, e.Tree, e.Node, e.Index, e.NumFeatures)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidFeatureIndexError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("tree", e.Tree).
		Int("node", e.Node).
		Int("index", e.Index).
		Int("num_features", e.NumFeatures).
		Str("type", "InvalidFeatureIndexError")
}

// NewInvalidFeatureIndexError は新しいInvalidFeatureIndexErrorを作成し、スタックトレースを付与します。
func NewInvalidFeatureIndexError(op string, tree, node, index, numFeatures int) error {
	err := &InvalidFeatureIndexError{Op: op, Tree: tree, Node: node, Index: index, NumFeatures: numFeatures}
	return errors.WithStack(err)
}

// MissingFeaturesError は入力レコードに必須の特徴量が欠けている場合のエラーです。
// 欠けている特徴量は一度の検査ですべて収集されます。
type MissingFeaturesError struct {
	Op       string
	Features []string
}

func (e *MissingFeaturesError) Error() string {
	return fmt.Sprintf("electronml: %s: missing required features: %s", e.Op, strings.Join(e.Features, ", "))
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *MissingFeaturesError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Strs("features", e.Features).
		Str("type", "MissingFeaturesError")
}

// NewMissingFeaturesError は新しいMissingFeaturesErrorを作成し、スタックトレースを付与します。
func NewMissingFeaturesError(op string, features []string) error {
	err := &MissingFeaturesError{Op: op, Features: features}
	return errors.WithStack(err)
}

// InvalidNumericValueError は数値特徴量の値を数値に変換できない場合のエラーです。
type InvalidNumericValueError struct {
	Op      string
	Feature string
	Value   interface{}
	Reason  string
}

func (e *InvalidNumericValueError) Error() string {
	return fmt.Sprintf("electronml: %s: feature %q: invalid numeric value %v: %s", e.Op, e.Feature, e.Value, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidNumericValueError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("feature", e.Feature).
		Str("reason", e.Reason).
		Str("type", "InvalidNumericValueError")
}

// NewInvalidNumericValueError は新しいInvalidNumericValueErrorを作成し、スタックトレースを付与します。
func NewInvalidNumericValueError(op, feature string, value interface{}, reason string) error {
	err := &InvalidNumericValueError{Op: op, Feature: feature, Value: value, Reason: reason}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")
)
