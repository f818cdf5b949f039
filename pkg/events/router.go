package events

import "github.com/xkilldash9x/graft/pkg/dom"

// Router translates registry decisions into native attach/detach calls on
// the document tree. It owns no state of its own; everything it needs is
// passed per call.
type Router struct{}

// Attach installs fn as a native listener for kind on n. Listeners installed
// through the same router on the same (node, kind) fire in attach order.
func (Router) Attach(n *dom.Node, kind string, fn dom.ListenerFunc) (*dom.Handle, error) {
	return n.AttachListener(kind, fn)
}

// Detach removes exactly the installation identified by h.
func (Router) Detach(n *dom.Node, h *dom.Handle) {
	n.DetachListener(h)
}
