// Package events implements delegated event registration with
// identity-exact removal over a dom.Document.
//
// A Registry records, for every (target, kind, selector, callback)
// registration, the listener actually installed on the node. For direct
// registrations that is the callback itself; for delegated ones it is a
// synthesized wrapper that matches the event's origin chain against a CSS
// selector at dispatch time. Keeping the installed listener alongside the
// caller's callback is what makes removal exact: Off detaches precisely the
// installation created for that callback, never a structurally equal one.
//
// Removal is keyed on callback identity (reflect.Value.Pointer of the func
// value), not structural equality. Callers must retain and reuse the exact
// callback value they registered; a freshly created closure is a different
// value and will not match. The pointer is not guaranteed to identify a
// function uniquely, so distinct callbacks that happen to report the same
// pointer would be indistinguishable to Off; in that case Off removes the
// oldest matching registration.
package events

import (
	"reflect"
	"sync"

	"github.com/xkilldash9x/graft/pkg/dom"
	"go.uber.org/zap"
)

// Callback is the caller-supplied reaction. It is an alias of the native
// listener type so a direct registration installs the callback itself, with
// no wrapper in between.
type Callback = dom.ListenerFunc

type regKey struct {
	node *dom.Node
	kind string
}

// record is one active registration on one node.
type record struct {
	selector  string
	cbID      uintptr
	installed *dom.Handle
}

// Registry owns the registration bookkeeping for one or more documents.
// Construct independent instances where isolation matters (tests do).
type Registry struct {
	log    *zap.Logger
	router Router

	mu      sync.Mutex
	records map[regKey][]*record
}

// New creates an empty registry. A nil logger disables logging.
func New(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		log:     log.Named("events"),
		records: make(map[regKey][]*record),
	}
}

// On registers cb for events of the given kind on every member of target.
//
// With an empty selector the registration is direct: cb itself is installed
// and fires whenever the event reaches the node, exactly as a native
// listener would. With a selector the registration is delegated: a wrapper
// is installed that, per firing, walks upward from the event's origin
// towards (and including) the registration node, testing each element
// against the selector; the first match becomes the event's Current (the
// effective origin) for the duration of the callback, and no further
// ancestor is considered. Elements that did not exist at registration time
// are still handled, because matching happens per event, not per element.
//
// Registering the same (target, kind, selector, callback) again installs a
// second independent listener; there is no de-duplication.
func (r *Registry) On(target dom.Target, kind, selector string, cb Callback) error {
	members, err := checkTarget(target)
	if err != nil {
		return err
	}
	if cb == nil {
		return ErrNilCallback
	}

	var matcher dom.Matcher
	if selector != "" {
		if matcher, err = dom.CompileSelector(selector); err != nil {
			return err
		}
	}

	cbID := callbackID(cb)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, node := range members {
		fn := cb
		if selector != "" {
			fn = delegateWrapper(node, matcher, cb)
		}
		installed, err := r.router.Attach(node, kind, fn)
		if err != nil {
			return err
		}
		key := regKey{node: node, kind: kind}
		r.records[key] = append(r.records[key], &record{
			selector:  selector,
			cbID:      cbID,
			installed: installed,
		})
	}

	r.log.Debug("reaction registered",
		zap.String("kind", kind),
		zap.String("selector", selector),
		zap.Int("targets", len(members)))
	return nil
}

// Off removes a registration made with the identical (target, kind,
// selector, callback) tuple. The selector is part of the key: a direct and
// a delegated registration of the same callback on the same node and kind
// are distinct and must be removed separately.
//
// One Off undoes one On; duplicated registrations need one removal each,
// oldest first. When nothing matches (never registered, already removed, or
// a different callback value) Off is a silent no-op: the only effect of
// removal is cleanup, so there is nothing useful to fail loudly about.
func (r *Registry) Off(target dom.Target, kind, selector string, cb Callback) error {
	members, err := checkTarget(target)
	if err != nil {
		return err
	}
	if cb == nil {
		return ErrNilCallback
	}

	cbID := callbackID(cb)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, node := range members {
		key := regKey{node: node, kind: kind}
		recs := r.records[key]
		found := false
		for i, rec := range recs {
			if rec.selector != selector || rec.cbID != cbID {
				continue
			}
			r.router.Detach(node, rec.installed)
			r.records[key] = append(recs[:i], recs[i+1:]...)
			if len(r.records[key]) == 0 {
				delete(r.records, key)
			}
			found = true
			break
		}
		if !found {
			r.log.Debug("no matching registration to remove",
				zap.String("kind", kind),
				zap.String("selector", selector))
		}
	}
	return nil
}

// Active returns the number of live registrations for kind on every member
// of target combined. Bookkeeping is best-effort after external node
// removal: records for detached nodes linger until removed explicitly.
func (r *Registry) Active(target dom.Target, kind string) int {
	members, err := checkTarget(target)
	if err != nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, node := range members {
		total += len(r.records[regKey{node: node, kind: kind}])
	}
	return total
}

// delegateWrapper synthesizes the installed listener for a delegated
// registration. The wrapper fires when the event bubbles to owner; it then
// resolves the nearest matching ancestor of the origin, bounded inclusively
// by owner, and invokes cb once with Current rebound to that match.
func delegateWrapper(owner *dom.Node, m dom.Matcher, cb Callback) dom.ListenerFunc {
	return func(ev *dom.Event) {
		for n := ev.Target; n != nil; n = n.Parent() {
			if n.Matches(m) {
				prev := ev.Current
				ev.Current = n
				cb(ev)
				ev.Current = prev
				return
			}
			if n == owner {
				return
			}
		}
	}
}

func checkTarget(target dom.Target) ([]*dom.Node, error) {
	if target == nil {
		return nil, ErrEmptyTarget
	}
	members := target.Members()
	if len(members) == 0 {
		return nil, ErrEmptyTarget
	}
	for _, n := range members {
		if n == nil {
			return nil, dom.ErrNilNode
		}
	}
	return members, nil
}

// callbackID derives the identity key for a callback: the code pointer of
// the function value. See the package comment for the retained-reference
// constraint this implies for callers.
func callbackID(cb Callback) uintptr {
	return reflect.ValueOf(cb).Pointer()
}
