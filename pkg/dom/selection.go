package dom

// Target is either a single node or an ordered collection of nodes; both
// shapes expose the same capability set and both can be handed to the event
// layer. A collection applies operations to every member in document order.
type Target interface {
	// Members returns the addressed nodes in order. A single node returns
	// itself; a collection returns its members as captured at query time.
	Members() []*Node
}

// Selection is an ordered collection of nodes, fixed at query time. It is
// not live: tree mutations after the query do not change its membership.
// Mutating methods apply to every member in order and return the selection
// unchanged so calls chain.
type Selection struct {
	nodes []*Node
}

// NewSelection builds a selection from explicit nodes; nils are dropped.
func NewSelection(nodes ...*Node) *Selection {
	kept := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			kept = append(kept, n)
		}
	}
	return &Selection{nodes: kept}
}

// Members returns the selection's nodes in document order.
func (s *Selection) Members() []*Node {
	if s == nil {
		return nil
	}
	return s.nodes
}

// Len returns the number of members.
func (s *Selection) Len() int { return len(s.nodes) }

// IsEmpty reports whether the selection matched nothing. An empty selection
// is a normal result, never an error.
func (s *Selection) IsEmpty() bool { return len(s.nodes) == 0 }

// First returns the first member, or nil for an empty selection.
func (s *Selection) First() *Node {
	if len(s.nodes) == 0 {
		return nil
	}
	return s.nodes[0]
}

// Each invokes fn for every member in order.
func (s *Selection) Each(fn func(*Node)) *Selection {
	for _, n := range s.nodes {
		fn(n)
	}
	return s
}

// AddClass adds the named classes to every member.
func (s *Selection) AddClass(names ...string) *Selection {
	for _, n := range s.nodes {
		n.AddClass(names...)
	}
	return s
}

// RemoveClass removes the named classes from every member.
func (s *Selection) RemoveClass(names ...string) *Selection {
	for _, n := range s.nodes {
		n.RemoveClass(names...)
	}
	return s
}

// ToggleClass flips the named classes on every member.
func (s *Selection) ToggleClass(names ...string) *Selection {
	for _, n := range s.nodes {
		n.ToggleClass(names...)
	}
	return s
}

// HasClass reports whether at least one member carries the named class.
// This "any" aggregation is a deliberate policy choice; callers needing
// per-member answers should iterate with Each.
func (s *Selection) HasClass(name string) bool {
	for _, n := range s.nodes {
		if n.HasClass(name) {
			return true
		}
	}
	return false
}

// Show makes every member visible. See Node.Show for the display mode used.
func (s *Selection) Show() *Selection {
	for _, n := range s.nodes {
		n.Show()
	}
	return s
}

// Hide removes every member from the visual flow.
func (s *Selection) Hide() *Selection {
	for _, n := range s.nodes {
		n.Hide()
	}
	return s
}

// ToggleVisibility flips the visibility of every member independently.
func (s *Selection) ToggleVisibility() *Selection {
	for _, n := range s.nodes {
		n.ToggleVisibility()
	}
	return s
}
