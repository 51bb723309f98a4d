// Package plot draws the training points of two feature columns together
// with the split thresholds a fitted tree places in that plane.
package plot

import (
	"fmt"
	"math"
	"sort"

	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/tree"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Box is an axis-aligned region of the (x, y) feature plane.
type Box struct {
	MinX, MaxX, MinY, MaxY float64
}

// Segment is a split boundary drawn inside the region of its node.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Depth          int
}

// Segments returns the boundaries of every split on feature fx (vertical)
// or fy (horizontal), clipped to the region each split applies to.
// Splits on other features do not narrow the region.
func Segments(root *tree.Node, fx, fy int, box Box) []Segment {
	var segs []Segment
	collectSegments(root, fx, fy, box, &segs)
	return segs
}

func collectSegments(n *tree.Node, fx, fy int, box Box, segs *[]Segment) {
	if n == nil || n.IsLeaf() {
		return
	}
	left, right := box, box
	switch n.Feature {
	case fx:
		t := n.Threshold
		if t >= box.MinX && t <= box.MaxX {
			*segs = append(*segs, Segment{X1: t, Y1: box.MinY, X2: t, Y2: box.MaxY, Depth: n.Depth})
		}
		left.MaxX = math.Min(box.MaxX, t)
		right.MinX = math.Max(box.MinX, t)
	case fy:
		t := n.Threshold
		if t >= box.MinY && t <= box.MaxY {
			*segs = append(*segs, Segment{X1: box.MinX, Y1: t, X2: box.MaxX, Y2: t, Depth: n.Depth})
		}
		left.MaxY = math.Min(box.MaxY, t)
		right.MinY = math.Max(box.MinY, t)
	}
	collectSegments(n.Left, fx, fy, left, segs)
	collectSegments(n.Right, fx, fy, right, segs)
}

// Options controls Boundaries.
type Options struct {
	XFeature int
	YFeature int
	Title    string
}

// Boundaries plots X[:, XFeature] against X[:, YFeature], one glyph colour
// per label, and overlays the tree's split boundaries in that plane.
// labels may be nil.
func Boundaries(dt *tree.DecisionTree, X mat.Matrix, labels []string, opts Options) (*plot.Plot, error) {
	const op = "plot.Boundaries"
	if !dt.IsFitted() {
		return nil, errors.NewNotFittedError("DecisionTree", "Boundaries")
	}
	r, c := X.Dims()
	if opts.XFeature < 0 || opts.XFeature >= c || opts.YFeature < 0 || opts.YFeature >= c {
		return nil, errors.NewInvalidInputErrorf(op, "features %d and %d must be in [0, %d)", opts.XFeature, opts.YFeature, c)
	}
	if opts.XFeature == opts.YFeature {
		return nil, errors.NewInvalidInputError(op, "x and y features must differ")
	}
	if labels != nil && len(labels) != r {
		return nil, errors.NewInvalidInputErrorf(op, "%d labels for %d rows", len(labels), r)
	}

	names := dt.FeatureNames()
	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = "Decision boundaries"
	}
	p.X.Label.Text = names[opts.XFeature]
	p.Y.Label.Text = names[opts.YFeature]

	groups := map[string]plotter.XYs{}
	box := Box{MinX: math.Inf(1), MaxX: math.Inf(-1), MinY: math.Inf(1), MaxY: math.Inf(-1)}
	for i := 0; i < r; i++ {
		x, y := X.At(i, opts.XFeature), X.At(i, opts.YFeature)
		box.MinX, box.MaxX = math.Min(box.MinX, x), math.Max(box.MaxX, x)
		box.MinY, box.MaxY = math.Min(box.MinY, y), math.Max(box.MaxY, y)
		key := ""
		if labels != nil {
			key = labels[i]
		}
		groups[key] = append(groups[key], plotter.XY{X: x, Y: y})
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		s, err := plotter.NewScatter(groups[k])
		if err != nil {
			return nil, errors.Wrapf(err, "scatter for %q", k)
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		if k != "" {
			p.Legend.Add(k, s)
		}
	}

	for _, seg := range Segments(dt.Root(), opts.XFeature, opts.YFeature, box) {
		line, err := plotter.NewLine(plotter.XYs{{X: seg.X1, Y: seg.Y1}, {X: seg.X2, Y: seg.Y2}})
		if err != nil {
			return nil, errors.Wrap(err, "boundary line")
		}
		line.LineStyle.Width = vg.Points(math.Max(0.5, 2-0.5*float64(seg.Depth)))
		line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(line)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

// Save writes p to path. The format follows the file extension (png, svg,
// pdf, ...).
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	if err := p.Save(width, height, path); err != nil {
		return errors.Wrap(err, fmt.Sprintf("saving plot to %s", path))
	}
	return nil
}
