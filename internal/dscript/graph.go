package dscript

// Walk visits every node reachable from root exactly once, depth first in
// successor order. Returning false from fn stops the walk.
func Walk(root *Node, fn func(*Node) bool) {
	if root == nil {
		return
	}
	seen := make(map[*Node]bool)
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		if !fn(n) {
			return
		}
		// Push in reverse so the first successor is visited first.
		for i := len(n.next) - 1; i >= 0; i-- {
			if !seen[n.next[i]] {
				stack = append(stack, n.next[i])
			}
		}
	}
}

// Count returns the number of distinct nodes reachable from root.
func Count(root *Node) int {
	count := 0
	Walk(root, func(*Node) bool {
		count++
		return true
	})
	return count
}

// Endings returns the reachable nodes with no successors.
func Endings(root *Node) []*Node {
	var endings []*Node
	Walk(root, func(n *Node) bool {
		if len(n.next) == 0 {
			endings = append(endings, n)
		}
		return true
	})
	return endings
}

// Index assigns every reachable node a stable id in Walk order.
func Index(root *Node) ([]*Node, map[*Node]int) {
	var nodes []*Node
	ids := make(map[*Node]int)
	Walk(root, func(n *Node) bool {
		ids[n] = len(nodes)
		nodes = append(nodes, n)
		return true
	})
	return nodes, ids
}

// Equal reports whether two graphs have the same content, successor order,
// choice texts and sharing shape.
func Equal(a, b *Node) bool {
	return equalNodes(a, b, make(map[*Node]*Node), make(map[*Node]*Node))
}

// equalNodes compares a and b given the pairings already made. A node on one
// side must always pair with the same node on the other side.
func equalNodes(a, b *Node, ab, ba map[*Node]*Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if pb, ok := ab[a]; ok {
		return pb == b
	}
	if pa, ok := ba[b]; ok {
		return pa == a
	}
	if !sameContent(a, b) || len(a.next) != len(b.next) {
		return false
	}
	ab[a] = b
	ba[b] = a
	for i := range a.next {
		if !equalNodes(a.next[i], b.next[i], ab, ba) {
			return false
		}
	}
	return true
}

func sameContent(a, b *Node) bool {
	if a.Speaker != b.Speaker || a.Emotion != b.Emotion || a.Message != b.Message ||
		a.IsChoice != b.IsChoice || a.Label != b.Label || a.ChoiceMessage != b.ChoiceMessage ||
		len(a.Choices) != len(b.Choices) {
		return false
	}
	for i := range a.Choices {
		if a.Choices[i] != b.Choices[i] {
			return false
		}
	}
	return true
}
