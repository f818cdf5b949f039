package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/graft/pkg/dom"
	"github.com/xkilldash9x/graft/pkg/events"
	"go.uber.org/zap/zaptest"
)

const page = `<html><body>
<div id="app">
  <ul id="list" class="menu">
    <li class="item" id="first"><span id="deep">one</span></li>
    <li class="item" id="second">two</li>
  </ul>
  <button id="btn">go</button>
</div>
</body></html>`

type fixture struct {
	doc *dom.Document
	reg *events.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	doc, err := dom.ParseString(page, dom.WithLogger(log))
	require.NoError(t, err)
	// Independent registry per test; nothing leaks across cases.
	return &fixture{doc: doc, reg: events.New(log)}
}

func (f *fixture) click(t *testing.T, n *dom.Node) {
	t.Helper()
	require.NoError(t, f.doc.Dispatch(n, "click"))
}

func TestDirectRegistration(t *testing.T) {
	f := newFixture(t)
	btn := f.doc.ByID("btn")

	calls := 0
	require.NoError(t, f.reg.On(btn, "click", "", func(*dom.Event) { calls++ }))

	f.click(t, btn)
	assert.Equal(t, 1, calls)

	t.Run("fires for bubbling descendants too", func(t *testing.T) {
		f := newFixture(t)
		list := f.doc.ByID("list")

		calls := 0
		require.NoError(t, f.reg.On(list, "click", "", func(*dom.Event) { calls++ }))

		f.click(t, f.doc.ByID("deep"))
		assert.Equal(t, 1, calls)
	})
}

func TestIdentityExactRemoval(t *testing.T) {
	t.Run("registered then removed never fires", func(t *testing.T) {
		f := newFixture(t)
		btn := f.doc.ByID("btn")

		calls := 0
		cb := func(*dom.Event) { calls++ }
		require.NoError(t, f.reg.On(btn, "click", "", cb))
		require.NoError(t, f.reg.Off(btn, "click", "", cb))

		f.click(t, btn)
		assert.Zero(t, calls)
		assert.Zero(t, f.reg.Active(btn, "click"))
	})

	t.Run("removing with a distinct function leaves the registered one active", func(t *testing.T) {
		f := newFixture(t)
		btn := f.doc.ByID("btn")

		var registered, stranger int
		cb := func(*dom.Event) { registered++ }
		other := func(*dom.Event) { stranger++ }

		require.NoError(t, f.reg.On(btn, "click", "", cb))
		require.NoError(t, f.reg.Off(btn, "click", "", other), "removal miss is a silent no-op")

		f.click(t, btn)
		assert.Equal(t, 1, registered)
		assert.Zero(t, stranger)
	})

	t.Run("removal miss on an empty registry is silent", func(t *testing.T) {
		f := newFixture(t)
		btn := f.doc.ByID("btn")
		assert.NoError(t, f.reg.Off(btn, "click", "", func(*dom.Event) {}))
	})
}

func TestDuplicateRegistrationsAreIndependent(t *testing.T) {
	f := newFixture(t)
	btn := f.doc.ByID("btn")

	calls := 0
	cb := func(*dom.Event) { calls++ }
	require.NoError(t, f.reg.On(btn, "click", "", cb))
	require.NoError(t, f.reg.On(btn, "click", "", cb))
	assert.Equal(t, 2, f.reg.Active(btn, "click"), "no de-duplication")

	f.click(t, btn)
	assert.Equal(t, 2, calls)

	require.NoError(t, f.reg.Off(btn, "click", "", cb))
	f.click(t, btn)
	assert.Equal(t, 3, calls, "one Off undoes one On")

	require.NoError(t, f.reg.Off(btn, "click", "", cb))
	f.click(t, btn)
	assert.Equal(t, 3, calls)
}

func TestDelegationLateBinding(t *testing.T) {
	f := newFixture(t)
	app := f.doc.ByID("app")

	var origins []*dom.Node
	require.NoError(t, f.reg.On(app, "click", ".item", func(ev *dom.Event) {
		origins = append(origins, ev.Current)
	}))

	// The matching element is created after registration.
	late := f.doc.CreateElement("li")
	late.AddClass("item")
	f.doc.ByID("list").AppendChild(late)

	f.click(t, late)
	require.Len(t, origins, 1)
	assert.Same(t, late, origins[0], "effective origin is the new node")
}

func TestDelegationNearestAncestorWins(t *testing.T) {
	const nested = `<html><body>
<div id="app">
  <div class="item" id="outer">
    <div class="item" id="inner">
      <span id="leaf">x</span>
    </div>
  </div>
</div>
</body></html>`

	log := zaptest.NewLogger(t)
	doc, err := dom.ParseString(nested, dom.WithLogger(log))
	require.NoError(t, err)
	reg := events.New(log)

	var origins []*dom.Node
	require.NoError(t, reg.On(doc.ByID("app"), "click", ".item", func(ev *dom.Event) {
		origins = append(origins, ev.Current)
	}))

	require.NoError(t, doc.Dispatch(doc.ByID("leaf"), "click"))
	require.Len(t, origins, 1, "one invocation, not one per matching ancestor")
	assert.Same(t, doc.ByID("inner"), origins[0])
}

func TestDelegationGrandchildScenario(t *testing.T) {
	// Click origin two levels below the registration target: the callback
	// fires once with the nearest .item ancestor as the effective origin,
	// not the origin span and not the registration target.
	f := newFixture(t)
	app := f.doc.ByID("app")
	deep := f.doc.ByID("deep")
	first := f.doc.ByID("first")

	var origins []*dom.Node
	var targets []*dom.Node
	require.NoError(t, f.reg.On(app, "click", ".item", func(ev *dom.Event) {
		origins = append(origins, ev.Current)
		targets = append(targets, ev.Target)
	}))

	f.click(t, deep)
	require.Len(t, origins, 1)
	assert.Same(t, first, origins[0])
	assert.Same(t, deep, targets[0], "the raw origin stays observable on the event")
}

func TestDelegationNoMatchNoInvocation(t *testing.T) {
	f := newFixture(t)

	calls := 0
	require.NoError(t, f.reg.On(f.doc.ByID("app"), "click", ".missing", func(*dom.Event) { calls++ }))

	f.click(t, f.doc.ByID("deep"))
	assert.Zero(t, calls)
}

func TestDelegationUpperBoundInclusive(t *testing.T) {
	f := newFixture(t)
	list := f.doc.ByID("list")

	var origins []*dom.Node
	require.NoError(t, f.reg.On(list, "click", ".menu", func(ev *dom.Event) {
		origins = append(origins, ev.Current)
	}))

	f.click(t, f.doc.ByID("deep"))
	require.Len(t, origins, 1, "the registration target itself is eligible to match")
	assert.Same(t, list, origins[0])
}

func TestRegistrationOrderDispatch(t *testing.T) {
	f := newFixture(t)
	btn := f.doc.ByID("btn")

	var order []int
	require.NoError(t, f.reg.On(btn, "click", "", func(*dom.Event) { order = append(order, 1) }))
	require.NoError(t, f.reg.On(btn, "click", "", func(*dom.Event) { order = append(order, 2) }))

	f.click(t, btn)
	f.click(t, btn)
	assert.Equal(t, []int{1, 2, 1, 2}, order)
}

func TestFullKeySeparatesDirectAndDelegated(t *testing.T) {
	f := newFixture(t)
	list := f.doc.ByID("list")

	calls := 0
	cb := func(*dom.Event) { calls++ }
	require.NoError(t, f.reg.On(list, "click", "", cb))
	require.NoError(t, f.reg.On(list, "click", ".item", cb))

	// Removing the direct registration must not touch the delegated one.
	require.NoError(t, f.reg.Off(list, "click", "", cb))
	assert.Equal(t, 1, f.reg.Active(list, "click"))

	f.click(t, f.doc.ByID("first"))
	assert.Equal(t, 1, calls, "only the delegated registration remains")

	require.NoError(t, f.reg.Off(list, "click", ".item", cb))
	f.click(t, f.doc.ByID("first"))
	assert.Equal(t, 1, calls)
}

func TestCollectionRegistration(t *testing.T) {
	f := newFixture(t)
	items := f.doc.QueryAll(".item")
	require.Equal(t, 2, items.Len())

	var origins []*dom.Node
	cb := func(ev *dom.Event) { origins = append(origins, ev.Current) }
	require.NoError(t, f.reg.On(items, "click", "", cb))
	assert.Equal(t, 2, f.reg.Active(items, "click"))

	f.click(t, f.doc.ByID("first"))
	f.click(t, f.doc.ByID("second"))
	require.Len(t, origins, 2, "members are registered independently")
	assert.Same(t, f.doc.ByID("first"), origins[0])
	assert.Same(t, f.doc.ByID("second"), origins[1])

	require.NoError(t, f.reg.Off(items, "click", "", cb))
	f.click(t, f.doc.ByID("first"))
	assert.Len(t, origins, 2)
	assert.Zero(t, f.reg.Active(items, "click"))
}

func TestFailFast(t *testing.T) {
	f := newFixture(t)
	btn := f.doc.ByID("btn")
	cb := func(*dom.Event) {}

	t.Run("nil target", func(t *testing.T) {
		assert.ErrorIs(t, f.reg.On(nil, "click", "", cb), events.ErrEmptyTarget)
		var n *dom.Node
		assert.ErrorIs(t, f.reg.On(n, "click", "", cb), events.ErrEmptyTarget)
		assert.ErrorIs(t, f.reg.Off(nil, "click", "", cb), events.ErrEmptyTarget)
	})

	t.Run("empty selection", func(t *testing.T) {
		empty := f.doc.QueryAll(".absent")
		assert.ErrorIs(t, f.reg.On(empty, "click", "", cb), events.ErrEmptyTarget)
	})

	t.Run("nil callback", func(t *testing.T) {
		assert.ErrorIs(t, f.reg.On(btn, "click", "", nil), events.ErrNilCallback)
		assert.ErrorIs(t, f.reg.Off(btn, "click", "", nil), events.ErrNilCallback)
	})

	t.Run("malformed selector", func(t *testing.T) {
		err := f.reg.On(btn, "click", "li[", cb)
		require.Error(t, err)
		assert.Zero(t, f.reg.Active(btn, "click"), "nothing installed on failure")
	})

	t.Run("empty kind", func(t *testing.T) {
		assert.ErrorIs(t, f.reg.On(btn, "", "", cb), dom.ErrEmptyKind)
	})
}

func TestStopPropagationFromDelegatedCallback(t *testing.T) {
	f := newFixture(t)
	list := f.doc.ByID("list")
	app := f.doc.ByID("app")

	var order []string
	require.NoError(t, f.reg.On(list, "click", ".item", func(ev *dom.Event) {
		order = append(order, "delegated")
		ev.StopPropagation()
	}))
	require.NoError(t, f.reg.On(app, "click", "", func(*dom.Event) {
		order = append(order, "outer")
	}))

	f.click(t, f.doc.ByID("first"))
	assert.Equal(t, []string{"delegated"}, order,
		"stopping propagation is the callback's own call to make")
}
