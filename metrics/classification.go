package metrics

import "github.com/YuminosukeSato/cartree/pkg/errors"

// Accuracy は予測クラスが正解と一致した割合を返す
func Accuracy(yTrue, yPred []string) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.NewInvalidInputError("Accuracy", "empty label slice")
	}
	if len(yPred) != len(yTrue) {
		return 0, errors.NewInvalidInputErrorf("Accuracy", "length mismatch: yTrue has %d labels, yPred has %d", len(yTrue), len(yPred))
	}

	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}
