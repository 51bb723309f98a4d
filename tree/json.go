package tree

import (
	"encoding/json"
	"io"

	"github.com/YuminosukeSato/cartree/core/model"
	"github.com/YuminosukeSato/cartree/pkg/errors"
)

// Saved tree format.
const (
	FormatName    = "cartree"
	FormatVersion = "1.0"
)

// WriteJSON writes the fitted tree, its hyperparameters, feature names and
// classes to w.
func (dt *DecisionTree) WriteJSON(w io.Writer) error {
	if !dt.IsFitted() {
		return errors.NewNotFittedError("DecisionTree", "WriteJSON")
	}
	payload, err := json.Marshal(dt.root)
	if err != nil {
		return errors.Wrap(err, "marshal tree nodes")
	}
	env := &model.Envelope{
		ModelType:       FormatName,
		Version:         FormatVersion,
		Hyperparameters: dt.GetParams(),
		Features:        dt.names,
		Classes:         dt.classes,
		IsFitted:        true,
		Payload:         payload,
	}
	data, err := env.ToJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "write tree")
	}
	return nil
}

// ReadJSON reads a tree written by WriteJSON. The node structure is
// validated before the tree is returned.
func ReadJSON(r io.Reader, opts ...Option) (*DecisionTree, error) {
	const op = "tree.ReadJSON"
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read tree")
	}

	var env model.Envelope
	if err := env.FromJSON(data); err != nil {
		return nil, err
	}
	if env.ModelType != FormatName {
		return nil, errors.NewInvalidInputErrorf(op, "unsupported model type %q", env.ModelType)
	}
	if env.Version != FormatVersion {
		return nil, errors.NewInvalidInputErrorf(op, "unsupported format version %q", env.Version)
	}

	dt := NewDecisionTree(opts...)
	if err := dt.SetParams(env.Hyperparameters); err != nil {
		return nil, err
	}
	if !env.IsFitted {
		return dt, nil
	}

	var root Node
	if err := json.Unmarshal(env.Payload, &root); err != nil {
		return nil, errors.NewInvalidInputErrorf(op, "malformed tree nodes: %v", err)
	}
	if len(env.Features) == 0 {
		return nil, errors.NewInvalidInputError(op, "fitted tree has no feature names")
	}
	if (dt.mode == Classification) != (len(env.Classes) > 0) {
		return nil, errors.NewInvalidInputErrorf(op, "%s tree with %d classes", dt.mode, len(env.Classes))
	}
	if err := validateNodes(&root, len(env.Features), len(env.Classes)); err != nil {
		return nil, err
	}

	dt.root = &root
	dt.names = env.Features
	dt.classes = env.Classes
	dt.SetFitted(len(env.Features))
	return dt, nil
}

// validateNodes checks the structural invariants of a decoded tree.
func validateNodes(root *Node, nFeatures, nClasses int) error {
	const op = "tree.ReadJSON"
	if root.Depth != 0 {
		return errors.NewInvalidInputErrorf(op, "root depth is %d", root.Depth)
	}
	var err error
	root.Walk(func(n *Node) bool {
		if err != nil {
			return false
		}
		switch {
		case n.Feature == NoFeature:
			if n.Left != nil || n.Right != nil {
				err = errors.NewInvalidInputErrorf(op, "leaf at depth %d has children", n.Depth)
			}
		case n.Feature < 0 || n.Feature >= nFeatures:
			err = errors.NewInvalidInputErrorf(op, "feature index %d out of range [0, %d)", n.Feature, nFeatures)
		case n.Left == nil || n.Right == nil:
			err = errors.NewInvalidInputErrorf(op, "split at depth %d must have two children", n.Depth)
		case n.Left.Depth != n.Depth+1 || n.Right.Depth != n.Depth+1:
			err = errors.NewInvalidInputErrorf(op, "child depth mismatch below depth %d", n.Depth)
		case n.Left.Samples+n.Right.Samples != n.Samples:
			err = errors.NewInvalidInputErrorf(op, "children of node at depth %d hold %d samples, want %d",
				n.Depth, n.Left.Samples+n.Right.Samples, n.Samples)
		}
		if err == nil && n.Label.IsClass != (nClasses > 0) {
			err = errors.NewInvalidInputErrorf(op, "label kind mismatch at depth %d", n.Depth)
		}
		return err == nil
	})
	return err
}
