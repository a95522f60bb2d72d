package dom

import "golang.org/x/net/html"

// ComparePoints returns -1, 0 or 1 when a lies before, at or after b.
// Both boundaries must be in the same tree.
func ComparePoints(a, b Boundary) int {
	if a.Node == b.Node {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	}

	if Precedes(b.Node, a.Node) {
		return -ComparePoints(b, a)
	}

	if Contains(a.Node, b.Node) {
		child := b.Node
		for child.Parent != a.Node {
			child = child.Parent
		}
		if Index(child) < a.Offset {
			return 1
		}
	}
	return -1
}

// Precedes reports whether x comes before y in tree order. Nodes of
// different trees never precede each other.
func Precedes(x, y *html.Node) bool {
	if x == y {
		return false
	}
	xs, ys := ancestry(x), ancestry(y)
	if xs[0] != ys[0] {
		return false
	}
	i := 0
	for i < len(xs) && i < len(ys) && xs[i] == ys[i] {
		i++
	}
	switch {
	case i == len(xs):
		return true
	case i == len(ys):
		return false
	}
	return Index(xs[i]) < Index(ys[i])
}

// ancestry lists the inclusive ancestors of n from the root down
func ancestry(n *html.Node) []*html.Node {
	var chain []*html.Node
	for p := n; p != nil; p = p.Parent {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
