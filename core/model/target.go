package model

import (
	"sort"
	"strconv"
)

// TargetKind distinguishes classification targets from regression targets.
type TargetKind int

const (
	// ClassTarget holds class names, one per row.
	ClassTarget TargetKind = iota
	// ValueTarget holds real values, one per row.
	ValueTarget
)

func (k TargetKind) String() string {
	if k == ValueTarget {
		return "value"
	}
	return "class"
}

// Target is the target sequence aligned with the rows of a feature table.
//
// Class targets are encoded as indices into the distinct class names sorted
// ascending, so "first class" always means the smallest name.
type Target struct {
	kind    TargetKind
	classes []string
	codes   []float64
}

// NewClassTarget builds a classification target from class names.
func NewClassTarget(labels []string) Target {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	classes := make([]string, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	codes := make([]float64, len(labels))
	for i, l := range labels {
		codes[i] = float64(index[l])
	}
	return Target{kind: ClassTarget, classes: classes, codes: codes}
}

// NewValueTarget builds a regression target. The slice is copied.
func NewValueTarget(values []float64) Target {
	codes := make([]float64, len(values))
	copy(codes, values)
	return Target{kind: ValueTarget, codes: codes}
}

// Kind returns the target kind.
func (t Target) Kind() TargetKind { return t.kind }

// IsClassification reports whether t holds class names.
func (t Target) IsClassification() bool { return t.kind == ClassTarget }

// Len returns the number of rows.
func (t Target) Len() int { return len(t.codes) }

// Classes returns the distinct class names in ascending order (nil for value targets).
func (t Target) Classes() []string {
	if t.kind != ClassTarget {
		return nil
	}
	out := make([]string, len(t.classes))
	copy(out, t.classes)
	return out
}

// Numeric returns a copy of the numeric form of the target: class indices
// for class targets, the values themselves for value targets.
func (t Target) Numeric() []float64 {
	out := make([]float64, len(t.codes))
	copy(out, t.codes)
	return out
}

// Labels returns one Label per row.
func (t Target) Labels() []Label {
	out := make([]Label, len(t.codes))
	for i, c := range t.codes {
		if t.kind == ClassTarget {
			out[i] = ClassLabel(t.classes[int(c)], int(c))
		} else {
			out[i] = ValueLabel(c)
		}
	}
	return out
}

// Label is what a tree node predicts: a class for classification trees,
// a mean value for regression trees.
type Label struct {
	// Class is the class name (classification only).
	Class string `json:"class,omitempty"`
	// Value is the mean target (regression) or the class index (classification).
	Value float64 `json:"value"`
	// IsClass marks a classification label.
	IsClass bool `json:"is_class,omitempty"`
}

// ClassLabel returns a classification label for the class with the given index.
func ClassLabel(class string, index int) Label {
	return Label{Class: class, Value: float64(index), IsClass: true}
}

// ValueLabel returns a regression label.
func ValueLabel(v float64) Label {
	return Label{Value: v}
}

func (l Label) String() string {
	if l.IsClass {
		return l.Class
	}
	return strconv.FormatFloat(l.Value, 'g', -1, 64)
}
