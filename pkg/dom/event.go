package dom

// Event is a single firing delivered to listeners during dispatch.
//
// Target is the node the event originated at and never changes. Current is
// the node whose listeners are being invoked; for delegated reactions the
// event layer rebinds it to the ancestor that matched the delegation
// selector (the effective origin) for the duration of the callback.
type Event struct {
	Kind    string
	Target  *Node
	Current *Node

	stopProp      bool
	stopImmediate bool
}

// StopPropagation prevents the event from bubbling past the current node.
// Remaining listeners on the current node still run.
func (e *Event) StopPropagation() { e.stopProp = true }

// StopImmediatePropagation halts dispatch entirely: no further listener runs,
// on this node or any ancestor.
func (e *Event) StopImmediatePropagation() {
	e.stopProp = true
	e.stopImmediate = true
}

// ListenerFunc is a natively installed listener.
type ListenerFunc func(*Event)

// Handle identifies one natively installed listener. Handles are unique per
// installation: installing the same function twice yields two handles, and
// detaching one leaves the other active.
type Handle struct {
	node *Node
	kind string
	fn   ListenerFunc
}

// Kind returns the event kind the handle is installed for.
func (h *Handle) Kind() string { return h.kind }

// AttachListener installs fn as a native listener for kind on the node.
// Listeners fire in installation order. There is no de-duplication.
func (n *Node) AttachListener(kind string, fn ListenerFunc) (*Handle, error) {
	if n == nil {
		return nil, ErrNilNode
	}
	if kind == "" {
		return nil, ErrEmptyKind
	}
	if fn == nil {
		return nil, ErrNilListener
	}
	h := &Handle{node: n, kind: kind, fn: fn}
	n.doc.mu.Lock()
	n.listeners[kind] = append(n.listeners[kind], h)
	n.doc.mu.Unlock()
	return h, nil
}

// DetachListener removes exactly the installation identified by h. Handles
// are compared by identity, so a structurally equal but distinct listener is
// never detached. Unknown or already-detached handles are a no-op.
func (n *Node) DetachListener(h *Handle) {
	if n == nil || h == nil || h.node != n {
		return
	}
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	installed := n.listeners[h.kind]
	for i, cand := range installed {
		if cand == h {
			n.listeners[h.kind] = append(installed[:i], installed[i+1:]...)
			return
		}
	}
}

// snapshot copies the current listener list for kind so dispatch can invoke
// callbacks without holding the document lock; listeners added or removed
// mid-dispatch do not affect the firing in flight.
func (n *Node) snapshot(kind string) []*Handle {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	installed := n.listeners[kind]
	if len(installed) == 0 {
		return nil
	}
	out := make([]*Handle, len(installed))
	copy(out, installed)
	return out
}

// Dispatch fires an event of the given kind at origin and bubbles it upward:
// origin first, then each ancestor element up to the root. At every node the
// installed listeners run synchronously in installation order. Dispatching
// at a nil origin is a programmer error and fails immediately.
func (d *Document) Dispatch(origin *Node, kind string) error {
	if origin == nil {
		return ErrNilNode
	}
	if kind == "" {
		return ErrEmptyKind
	}

	ev := &Event{Kind: kind, Target: origin}
	for node := origin; node != nil; node = node.Parent() {
		ev.Current = node
		for _, h := range node.snapshot(kind) {
			h.fn(ev)
			if ev.stopImmediate {
				return nil
			}
		}
		if ev.stopProp {
			return nil
		}
	}
	return nil
}
