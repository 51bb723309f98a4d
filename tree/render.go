package tree

import (
	"fmt"
	"strings"
)

const branchMarker = "|---"

// Render returns one line per node of the subtree rooted at n. Each line is
// prefixed by depth branch markers and branch ("then ", "else " or "").
func (n *Node) Render(depth int, branch string) []string {
	var lines []string
	n.render(&lines, depth, branch)
	return lines
}

func (n *Node) render(lines *[]string, depth int, branch string) {
	prefix := strings.Repeat(branchMarker, depth) + branch
	if n.IsLeaf() {
		*lines = append(*lines, fmt.Sprintf("%s{class is: %s, number of samples: %d}", prefix, n.Label, n.Samples))
		return
	}
	*lines = append(*lines, fmt.Sprintf("%sif %s <= %.2f", prefix, n.FeatureName, n.Threshold))
	n.Left.render(lines, depth+1, "then ")
	n.Right.render(lines, depth+1, "else ")
}
