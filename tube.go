package watersort

// Tube is an ordered sequence of Nodes in bottom-to-top order; the last
// element is the top. Tubes are shared structurally between Games:
// constructing a successor only copies the tubes a move actually touches.
type Tube []Node

// top returns the last element and true, or the zero Node and false if the
// tube is empty.
func (t Tube) top() (Node, bool) {
	if len(t) == 0 {
		return Node{}, false
	}
	return t[len(t)-1], true
}

// bottom returns the first element and true, or the zero Node and false if
// the tube is empty.
func (t Tube) bottom() (Node, bool) {
	if len(t) == 0 {
		return Node{}, false
	}
	return t[0], true
}

// isCompleted reports whether the tube is full, entirely KNOWN, and
// uniform-colored.
func (t Tube) isCompleted(capacity int) bool {
	if len(t) != capacity {
		return false
	}
	var color Color
	for i, n := range t {
		if n.Tag != NodeKnown {
			return false
		}
		if i == 0 {
			color = n.Color
		} else if n.Color != color {
			return false
		}
	}
	return true
}

// isUniformColor reports whether every node in the tube is KNOWN with the
// same color. An empty tube is vacuously not uniform.
func (t Tube) isUniformColor() bool {
	if len(t) == 0 {
		return false
	}
	var color Color
	for i, n := range t {
		if n.Tag != NodeKnown {
			return false
		}
		if i == 0 {
			color = n.Color
		} else if n.Color != color {
			return false
		}
	}
	return true
}

// clone returns a shallow copy with its own backing array, so appends to
// the copy never alias the original's storage.
func (t Tube) clone() Tube {
	out := make(Tube, len(t))
	copy(out, t)
	return out
}
