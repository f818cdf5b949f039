package dom

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Matcher is a compiled CSS selector. Matching is delegated entirely to
// cascadia; this package adds no selector logic of its own.
type Matcher struct {
	sel cascadia.Selector
}

// CompileSelector compiles a CSS selector string. A malformed selector
// returns cascadia's error wrapped with the offending selector.
func CompileSelector(selector string) (Matcher, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return Matcher{}, fmt.Errorf("compile selector %q: %w", selector, err)
	}
	return Matcher{sel: sel}, nil
}

// Match reports whether the compiled selector matches n.
func (m Matcher) Match(n *html.Node) bool {
	return m.sel != nil && n != nil && m.sel(n)
}

func (m Matcher) matchAll(root *html.Node) []*html.Node {
	if m.sel == nil || root == nil {
		return nil
	}
	return m.sel.MatchAll(root)
}

func (m Matcher) matchFirst(root *html.Node) *html.Node {
	if m.sel == nil || root == nil {
		return nil
	}
	return m.sel.MatchFirst(root)
}
