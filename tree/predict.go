package tree

import (
	"github.com/YuminosukeSato/cartree/core/model"
	"github.com/YuminosukeSato/cartree/pkg/errors"
)

// PredictOne routes row from n down to a leaf and returns its label.
func (n *Node) PredictOne(row []float64) (model.Label, error) {
	cur := n
	for !cur.IsLeaf() {
		if cur.Feature >= len(row) {
			return model.Label{}, errors.NewOutOfRangeFeatureError("Node.PredictOne", cur.Feature, len(row))
		}
		if row[cur.Feature] <= cur.Threshold {
			cur = cur.Left
		} else {
			cur = cur.Right
		}
	}
	return cur.Label, nil
}
