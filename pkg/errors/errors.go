// Package errors はcartree全体のエラーハンドリングと警告システムを提供します。
// エラーは全てcockroachdb/errorsでスタックトレースを付与して生成され、
// zerologの構造化ログにそのまま埋め込めるようになっています。
package errors

import (
	"fmt"
	"log"
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
		log.Printf("cartree-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
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
// nilを渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// IgnoredParameterWarning is raised when a hyperparameter is accepted but
// overridden, e.g. a classification criterion passed to a regression tree.
type IgnoredParameterWarning struct {
	Param string
	Given string
	Used  string
}

func (w *IgnoredParameterWarning) Error() string {
	return fmt.Sprintf("parameter '%s'=%q is ignored, using %q instead", w.Param, w.Given, w.Used)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *IgnoredParameterWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("param", w.Param).
		Str("given", w.Given).
		Str("used", w.Used).
		Str("type", "IgnoredParameterWarning")
}

// NewIgnoredParameterWarning は新しいIgnoredParameterWarningを作成します。
func NewIgnoredParameterWarning(param, given, used string) *IgnoredParameterWarning {
	return &IgnoredParameterWarning{Param: param, Given: given, Used: used}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Predict` などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("cartree: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// InvalidInputError is returned at the fit/predict boundary when the
// caller hands over data or settings the tree cannot work with: an empty
// table, mismatched row counts, an unknown mode/criterion/prune strategy
// or a malformed serialized tree.
type InvalidInputError struct {
	Op     string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("cartree: %s: invalid input: %s", e.Op, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidInputError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Str("type", "InvalidInputError")
}

// NewInvalidInputError は新しいInvalidInputErrorを作成し、スタックトレースを付与します。
func NewInvalidInputError(op, reason string) error {
	return errors.WithStack(&InvalidInputError{Op: op, Reason: reason})
}

// NewInvalidInputErrorf はフォーマット文字列から理由を組み立てます。
func NewInvalidInputErrorf(op, format string, args ...interface{}) error {
	return errors.WithStack(&InvalidInputError{Op: op, Reason: fmt.Sprintf(format, args...)})
}

// OutOfRangeFeatureError は予測対象の行が木の参照する特徴量インデックスを持たない場合のエラーです。
type OutOfRangeFeatureError struct {
	Op        string
	Feature   int // 参照された特徴量インデックス
	RowLength int // 入力行の長さ
}

func (e *OutOfRangeFeatureError) Error() string {
	return fmt.Sprintf("cartree: %s: feature index %d out of range for row of length %d", e.Op, e.Feature, e.RowLength)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *OutOfRangeFeatureError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("feature", e.Feature).
		Int("row_length", e.RowLength).
		Str("type", "OutOfRangeFeatureError")
}

// NewOutOfRangeFeatureError は新しいOutOfRangeFeatureErrorを作成し、スタックトレースを付与します。
func NewOutOfRangeFeatureError(op string, feature, rowLength int) error {
	return errors.WithStack(&OutOfRangeFeatureError{Op: op, Feature: feature, RowLength: rowLength})
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

	// ErrNoVariance は目的変数の分散が0で決定係数を定義できない場合のエラーです。
	ErrNoVariance = New("no variance in target")
)
