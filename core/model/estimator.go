package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X mat.Matrix, y Target) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力の各行に対するラベルを入力順に返す
	Predict(X mat.Matrix) ([]Label, error)
}

// Scorer はスコアを計算できるモデルのインターフェース
type Scorer interface {
	// Score は分類なら正解率、回帰なら決定係数（R²）を返す
	Score(X mat.Matrix, y Target) (float64, error)
}

// Estimator は教師あり学習モデルの基本インターフェース
type Estimator interface {
	Fitter
	Predictor
	Scorer
	IsFitted() bool
}

// ParameterGetter はハイパーパラメータを公開するモデルのインターフェース
type ParameterGetter interface {
	GetParams() map[string]interface{}
}

// ParameterSetter はハイパーパラメータの変更を許すモデルのインターフェース
type ParameterSetter interface {
	SetParams(params map[string]interface{}) error
}
