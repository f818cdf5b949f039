package dom

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Node is the canonical wrapper for one element in a Document's tree.
// Mutating methods return the node itself so calls chain.
type Node struct {
	doc *Document
	n   *html.Node

	// listeners holds the natively installed listeners per event kind, in
	// installation order. Guarded by doc.mu.
	listeners map[string][]*Handle
}

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// HTMLNode exposes the underlying parse-tree node.
func (n *Node) HTMLNode() *html.Node { return n.n }

// Tag returns the element's tag name.
func (n *Node) Tag() string { return n.n.Data }

// Members makes a single node usable wherever a Target is expected.
func (n *Node) Members() []*Node {
	if n == nil {
		return nil
	}
	return []*Node{n}
}

// Parent returns the nearest ancestor element, or nil at the top of the tree.
func (n *Node) Parent() *Node {
	for p := n.n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return n.doc.wrap(p)
		}
	}
	return nil
}

// Matches reports whether the node matches a compiled selector.
func (n *Node) Matches(m Matcher) bool {
	return n != nil && m.Match(n.n)
}

// Query returns the first descendant matching selector, or nil. The scope
// element itself is never a match, mirroring scoped lookup on the host.
func (n *Node) Query(selector string) *Node {
	m, err := CompileSelector(selector)
	if err != nil {
		n.doc.log.Debug("selector rejected by engine", zap.String("selector", selector), zap.Error(err))
		return nil
	}
	for _, c := range m.matchAll(n.n) {
		if c != n.n {
			return n.doc.wrap(c)
		}
	}
	return nil
}

// QueryAll returns every descendant matching selector in document order,
// excluding the scope element itself.
func (n *Node) QueryAll(selector string) *Selection {
	m, err := CompileSelector(selector)
	if err != nil {
		n.doc.log.Debug("selector rejected by engine", zap.String("selector", selector), zap.Error(err))
		return &Selection{}
	}
	matched := m.matchAll(n.n)
	kept := matched[:0]
	for _, c := range matched {
		if c != n.n {
			kept = append(kept, c)
		}
	}
	return n.doc.wrapAll(kept)
}

// Attr returns the value of an attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (n *Node) SetAttr(name, value string) *Node {
	for i, a := range n.n.Attr {
		if a.Key == name {
			n.n.Attr[i].Val = value
			return n
		}
	}
	n.n.Attr = append(n.n.Attr, html.Attribute{Key: name, Val: value})
	return n
}

// Text returns the concatenated text content of the subtree.
func (n *Node) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		if h.Type == html.TextNode {
			b.WriteString(h.Data)
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.n)
	return b.String()
}

// AppendChild attaches child as the last child of n, detaching it from any
// previous parent first.
func (n *Node) AppendChild(child *Node) *Node {
	if child == nil || child == n {
		return n
	}
	if child.n.Parent != nil {
		child.n.Parent.RemoveChild(child.n)
	}
	n.n.AppendChild(child.n)
	return n
}

// Remove detaches the node from its parent. Listener bookkeeping held
// elsewhere becomes best-effort after this: stale removals are no-ops.
func (n *Node) Remove() {
	if n.n.Parent != nil {
		n.n.Parent.RemoveChild(n.n)
	}
}

// --- Class operations ---

func (n *Node) classList() []string {
	v, _ := n.Attr("class")
	return strings.Fields(v)
}

func (n *Node) setClassList(classes []string) {
	n.SetAttr("class", strings.Join(classes, " "))
}

// AddClass adds the named classes, skipping any the node already carries.
func (n *Node) AddClass(names ...string) *Node {
	classes := n.classList()
	for _, name := range names {
		if name == "" || containsToken(classes, name) {
			continue
		}
		classes = append(classes, name)
	}
	n.setClassList(classes)
	return n
}

// RemoveClass removes the named classes; absent names are ignored.
func (n *Node) RemoveClass(names ...string) *Node {
	classes := n.classList()
	kept := classes[:0]
	for _, c := range classes {
		if !containsToken(names, c) {
			kept = append(kept, c)
		}
	}
	n.setClassList(kept)
	return n
}

// ToggleClass flips the presence of each named class.
func (n *Node) ToggleClass(names ...string) *Node {
	for _, name := range names {
		if name == "" {
			continue
		}
		if n.HasClass(name) {
			n.RemoveClass(name)
		} else {
			n.AddClass(name)
		}
	}
	return n
}

// HasClass reports whether the node carries the named class.
func (n *Node) HasClass(name string) bool {
	return containsToken(n.classList(), name)
}

func containsToken(tokens []string, tok string) bool {
	for _, t := range tokens {
		if t == tok {
			return true
		}
	}
	return false
}

// --- Display state ---

// Show makes the node visible by setting display:inline-block. The previous
// inline display mode is not restored; callers needing a different mode must
// set it explicitly afterwards.
func (n *Node) Show() *Node {
	n.setStyleProp("display", "inline-block")
	return n
}

// Hide removes the node from the visual flow via display:none.
func (n *Node) Hide() *Node {
	n.setStyleProp("display", "none")
	return n
}

// ToggleVisibility flips between Hide and Show based on the current inline
// display value.
func (n *Node) ToggleVisibility() *Node {
	if n.styleProp("display") == "none" {
		return n.Show()
	}
	return n.Hide()
}

// styleProps parses the inline style attribute into ordered name/value pairs.
func (n *Node) styleProps() [][2]string {
	v, ok := n.Attr("style")
	if !ok {
		return nil
	}
	var props [][2]string
	for _, decl := range strings.Split(v, ";") {
		name, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		props = append(props, [2]string{name, strings.TrimSpace(value)})
	}
	return props
}

func (n *Node) styleProp(name string) string {
	for _, p := range n.styleProps() {
		if p[0] == name {
			return p[1]
		}
	}
	return ""
}

func (n *Node) setStyleProp(name, value string) {
	props := n.styleProps()
	replaced := false
	for i, p := range props {
		if p[0] == name {
			props[i][1] = value
			replaced = true
			break
		}
	}
	if !replaced {
		props = append(props, [2]string{name, value})
	}
	decls := make([]string, 0, len(props))
	for _, p := range props {
		decls = append(decls, p[0]+": "+p[1])
	}
	n.SetAttr("style", strings.Join(decls, "; "))
}
