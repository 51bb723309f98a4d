package model

import (
	"encoding/json"

	"github.com/YuminosukeSato/cartree/pkg/errors"
)

// Envelope はモデルをJSONで保存・読み込みするための共通の外枠
type Envelope struct {
	// ModelType はモデルの種類（DecisionTree等）
	ModelType string `json:"model_type"`

	// Version はフォーマットのバージョン（互換性チェック用）
	Version string `json:"version"`

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// Features は特徴量の名前
	Features []string `json:"features,omitempty"`

	// Classes は分類モデルのクラス名（昇順）
	Classes []string `json:"classes,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`

	// Payload はモデル固有の学習結果
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ToJSON はEnvelopeをインデント付きJSONにシリアライズ
func (e *Envelope) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal model envelope")
	}
	return data, nil
}

// FromJSON はJSONからEnvelopeをデシリアライズし、妥当性を検証する
func (e *Envelope) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, e); err != nil {
		return errors.NewInvalidInputErrorf("Envelope.FromJSON", "malformed model JSON: %v", err)
	}
	return e.Validate()
}

// Validate はEnvelopeの妥当性を検証
func (e *Envelope) Validate() error {
	if e.ModelType == "" {
		return errors.NewInvalidInputError("Envelope.Validate", "model_type is required")
	}
	if e.Version == "" {
		return errors.NewInvalidInputError("Envelope.Validate", "version is required")
	}
	if e.IsFitted && len(e.Payload) == 0 {
		return errors.NewInvalidInputError("Envelope.Validate", "fitted model must have a payload")
	}
	if !e.IsFitted && len(e.Payload) > 0 {
		return errors.NewInvalidInputError("Envelope.Validate", "unfitted model should not have a payload")
	}
	return nil
}
