// Package dom wraps an in-memory HTML tree (golang.org/x/net/html) behind
// short, chainable operations over single nodes and node collections.
//
// The package also supplies the "host platform" pieces the higher layers
// build on: the native selector engine (cascadia), per-node listener lists,
// and the synchronous bubbling dispatch loop. Listener bookkeeping that
// callers care about lives in package events; this package only installs,
// removes, and invokes raw listeners.
package dom

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/xkilldash9x/graft/pkg/lifecycle"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document owns a parsed HTML tree and the canonical node wrappers over it.
// Wrappers are canonicalized per underlying *html.Node, so two lookups of the
// same element yield the same *Node pointer; the event layer relies on this
// for identity-keyed bookkeeping.
type Document struct {
	id   string
	log  *zap.Logger
	life *lifecycle.Broadcaster

	mu       sync.Mutex
	root     *html.Node
	wrappers map[*html.Node]*Node
}

// Option configures a Document at parse time.
type Option func(*Document)

// WithLogger attaches a logger. The default is a no-op logger; the library
// self-initializes and requires no configuration.
func WithLogger(log *zap.Logger) Option {
	return func(d *Document) {
		if log != nil {
			d.log = log
		}
	}
}

// Parse reads an HTML document from r. On success the document's ready
// signal has already fired: the structural tree is fully parsed before Parse
// returns, so OnReady callbacks registered afterwards run immediately.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	d := &Document{
		id:       uuid.NewString(),
		log:      zap.NewNop(),
		life:     lifecycle.New(),
		root:     root,
		wrappers: make(map[*html.Node]*Node),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.Named("dom").With(zap.String("doc_id", d.id))

	d.log.Debug("document parsed")
	d.life.NotifyReady()
	return d, nil
}

// ParseString is Parse over an in-memory document.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// ID returns the document's unique identifier, used for log correlation.
func (d *Document) ID() string { return d.id }

// Lifecycle exposes the document's readiness broadcaster.
func (d *Document) Lifecycle() *lifecycle.Broadcaster { return d.life }

// OnReady runs fn once the structural tree is parsed; immediately if it
// already is. See lifecycle.Broadcaster.
func (d *Document) OnReady(fn func()) { d.life.OnReady(fn) }

// OnLoad runs fn once the document is fully loaded; immediately if it
// already is. See lifecycle.Broadcaster.
func (d *Document) OnLoad(fn func()) { d.life.OnLoad(fn) }

// FinishLoad is the host hook for "all subordinate resources fetched". An
// embedder that fetches images, scripts, or styles calls this when its
// fetches settle; for purely in-memory documents it can be called right
// after Parse. Only the first call has any effect.
func (d *Document) FinishLoad() {
	d.log.Debug("document load complete")
	d.life.NotifyLoad()
}

// Root returns the document's root element (normally <html>).
func (d *Document) Root() *Node {
	return d.wrap(firstElement(d.root))
}

func firstElement(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// wrap returns the canonical wrapper for n, creating it on first use.
// Only element nodes are addressable.
func (d *Document) wrap(n *html.Node) *Node {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if w, ok := d.wrappers[n]; ok {
		return w
	}
	w := &Node{doc: d, n: n, listeners: make(map[string][]*Handle)}
	d.wrappers[n] = w
	return w
}

func (d *Document) wrapAll(ns []*html.Node) *Selection {
	nodes := make([]*Node, 0, len(ns))
	for _, n := range ns {
		if w := d.wrap(n); w != nil {
			nodes = append(nodes, w)
		}
	}
	return &Selection{nodes: nodes}
}

// Query returns the first element matching selector, or nil when nothing
// matches. A selector that does not compile is treated as no-match and
// logged at debug level; use QueryErr to observe the error.
func (d *Document) Query(selector string) *Node {
	n, err := d.QueryErr(selector)
	if err != nil {
		d.log.Debug("selector rejected by engine", zap.String("selector", selector), zap.Error(err))
		return nil
	}
	return n
}

// QueryErr is Query with the selector engine's error surfaced.
func (d *Document) QueryErr(selector string) (*Node, error) {
	m, err := CompileSelector(selector)
	if err != nil {
		return nil, err
	}
	return d.wrap(m.matchFirst(d.root)), nil
}

// QueryAll returns every element matching selector in document order. The
// returned selection is fixed at query time; later tree mutations do not
// update it. An empty selection is a normal result, never an error.
func (d *Document) QueryAll(selector string) *Selection {
	s, err := d.QueryAllErr(selector)
	if err != nil {
		d.log.Debug("selector rejected by engine", zap.String("selector", selector), zap.Error(err))
		return &Selection{}
	}
	return s
}

// QueryAllErr is QueryAll with the selector engine's error surfaced.
func (d *Document) QueryAllErr(selector string) (*Selection, error) {
	m, err := CompileSelector(selector)
	if err != nil {
		return nil, err
	}
	return d.wrapAll(m.matchAll(d.root)), nil
}

// ByID returns the element whose id attribute equals id, or nil.
func (d *Document) ByID(id string) *Node {
	if id == "" {
		return nil
	}
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val == id {
					found = n
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return d.wrap(found)
}

// CreateElement builds a detached element owned by this document. Attach it
// with Node.AppendChild.
func (d *Document) CreateElement(tag string) *Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return d.wrap(n)
}

// Render serializes the document tree as HTML.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	return nil
}
