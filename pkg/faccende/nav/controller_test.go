package nav

import (
	"testing"

	"github.com/BrandonKowalski/faccende/pkg/faccende/bus"
)

type testScreen struct {
	route  string
	params map[string]any
}

func (s testScreen) Route() string { return s.route }

func testRegistry() *Registry {
	factory := func(route string) Factory {
		return func(params map[string]any) Screen {
			return testScreen{route: route, params: params}
		}
	}
	return NewRegistry().
		RegisterScreen("landing", factory("landing")).
		RegisterScreen("tasks", factory("tasks")).
		RegisterScreen("task-detail", factory("task-detail")).
		RegisterModal("confirm-complete", factory("confirm-complete")).
		RegisterModal("assign-task", factory("assign-task"))
}

func newTestController(t *testing.T, window string) (*bus.Bus, *Controller) {
	t.Helper()
	b := bus.New(nil)
	c := New(window, b, testRegistry(), nil)
	t.Cleanup(c.Close)
	return b, c
}

func TestPushSetsCurrentScreenAndGrowsHistory(t *testing.T) {
	_, c := newTestController(t, "main")

	c.Push("tasks", map[string]any{"filter": "today"})
	if c.CurrentRoute() != "tasks" {
		t.Fatalf("expected current route tasks, got %q", c.CurrentRoute())
	}
	if c.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", c.Depth())
	}

	s, ok := c.CurrentScreen().(testScreen)
	if !ok {
		t.Fatalf("expected instantiated test screen, got %T", c.CurrentScreen())
	}
	if s.params["filter"] != "today" {
		t.Fatalf("expected params forwarded to the factory, got %v", s.params)
	}
}

func TestReplaceKeepsHistoryDepth(t *testing.T) {
	_, c := newTestController(t, "main")

	c.Push("landing", nil)
	c.Replace("tasks", nil)
	if c.Depth() != 1 {
		t.Fatalf("expected depth unchanged at 1, got %d", c.Depth())
	}
	if c.CurrentRoute() != "tasks" {
		t.Fatalf("expected tasks, got %q", c.CurrentRoute())
	}
}

func TestReplaceOnEmptyHistoryPushes(t *testing.T) {
	_, c := newTestController(t, "main")

	c.Replace("landing", nil)
	if c.Depth() != 1 || c.CurrentRoute() != "landing" {
		t.Fatalf("expected landing at depth 1, got %q depth %d", c.CurrentRoute(), c.Depth())
	}
}

func TestPopReturnsToPreviousScreen(t *testing.T) {
	_, c := newTestController(t, "main")

	c.Push("tasks", nil)
	c.Push("task-detail", nil)
	c.Pop()
	if c.CurrentRoute() != "tasks" {
		t.Fatalf("expected tasks after pop, got %q", c.CurrentRoute())
	}
	if c.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", c.Depth())
	}
}

func TestPopOnEmptyHistoryIsNoOp(t *testing.T) {
	_, c := newTestController(t, "main")

	// Must degrade to a no-op inside the controller, not surface the
	// stack's empty error.
	c.Pop()
	c.Pop()
	if c.Depth() != 0 {
		t.Fatalf("expected empty history, got depth %d", c.Depth())
	}
}

func TestDefensivePopSkipsWhenRouteNotOnTop(t *testing.T) {
	_, c := newTestController(t, "main")

	c.Push("tasks", nil)
	c.Push("task-detail", nil)
	c.PopIf("tasks") // stale: tasks is no longer on top
	if c.CurrentRoute() != "task-detail" {
		t.Fatalf("expected defensive pop to skip, got %q", c.CurrentRoute())
	}

	c.PopIf("task-detail")
	if c.CurrentRoute() != "tasks" {
		t.Fatalf("expected matching defensive pop to proceed, got %q", c.CurrentRoute())
	}
}

func TestPushUnregisteredRouteKeepsCurrentScreen(t *testing.T) {
	_, c := newTestController(t, "main")

	c.Push("tasks", nil)
	c.Push("no-such-screen", nil)
	if c.CurrentRoute() != "tasks" || c.Depth() != 1 {
		t.Fatalf("expected failed navigation to keep user on tasks, got %q depth %d",
			c.CurrentRoute(), c.Depth())
	}
}

func TestClearStackKeepsRenderedScreen(t *testing.T) {
	_, c := newTestController(t, "main")

	c.Push("landing", nil)
	c.Push("tasks", nil)
	c.ClearStack()
	if c.Depth() != 0 {
		t.Fatalf("expected empty history, got %d", c.Depth())
	}
	if c.CurrentRoute() != "tasks" {
		t.Fatalf("clear must not change the rendered screen, got %q", c.CurrentRoute())
	}
}

func TestClearStackIgnoresOtherScopes(t *testing.T) {
	b := bus.New(nil)
	main := New("main", b, testRegistry(), nil)
	sidebar := New("sidebar", b, testRegistry(), nil)
	t.Cleanup(main.Close)
	t.Cleanup(sidebar.Close)

	main.Push("tasks", nil)
	sidebar.Push("landing", nil)

	main.ClearStack()
	if main.Depth() != 0 {
		t.Fatalf("expected main history cleared, got %d", main.Depth())
	}
	if sidebar.Depth() != 1 {
		t.Fatalf("expected sidebar history untouched, got %d", sidebar.Depth())
	}
}

func TestNavigateScopedToOtherWindowIsIgnored(t *testing.T) {
	b := bus.New(nil)
	main := New("main", b, testRegistry(), nil)
	sidebar := New("sidebar", b, testRegistry(), nil)
	t.Cleanup(main.Close)
	t.Cleanup(sidebar.Close)

	main.Push("tasks", nil)
	if sidebar.CurrentRoute() != "" || sidebar.Depth() != 0 {
		t.Fatalf("sidebar must ignore navigation scoped to main")
	}
}

func TestModalRoundTripResolvesMatchingContinuation(t *testing.T) {
	_, c := newTestController(t, "main")
	c.Push("task-detail", nil)

	var got *bus.ModalResult
	idX := c.OpenModal("confirm-complete", map[string]any{"task": "t-1"}, func(r bus.ModalResult) {
		got = &r
	})
	otherResolved := false
	idY := c.OpenModal("assign-task", nil, func(bus.ModalResult) { otherResolved = true })

	if c.ModalRoute() != "assign-task" {
		t.Fatalf("expected assign-task as current modal, got %q", c.ModalRoute())
	}

	c.CloseModal("confirm-complete", bus.Succeeded(idX, "done"))
	if got == nil {
		t.Fatalf("expected continuation for %s to resolve", idX)
	}
	if got.Status != bus.StatusSuccess || got.Payload != "done" {
		t.Fatalf("unexpected result %+v", *got)
	}
	if otherResolved {
		t.Fatalf("continuation for %s must not resolve", idY)
	}
}

func TestCloseModalWithMismatchedCallbackIsDropped(t *testing.T) {
	_, c := newTestController(t, "main")

	resolved := false
	c.OpenModal("confirm-complete", nil, func(bus.ModalResult) { resolved = true })

	c.CloseModal("confirm-complete", bus.Succeeded("wrong-id", nil))
	if resolved {
		t.Fatalf("mismatched callback id must not resolve the continuation")
	}
	if c.ModalRoute() != "confirm-complete" {
		t.Fatalf("mismatched close must leave the modal open")
	}
}

func TestDuplicateCloseModalIsIgnored(t *testing.T) {
	_, c := newTestController(t, "main")

	calls := 0
	id := c.OpenModal("confirm-complete", nil, func(bus.ModalResult) { calls++ })

	c.CloseModal("confirm-complete", bus.Succeeded(id, nil))
	c.CloseModal("confirm-complete", bus.Succeeded(id, nil))
	if calls != 1 {
		t.Fatalf("expected exactly one resolution, got %d", calls)
	}
}

func TestReopeningModalDropsDisplacedContinuation(t *testing.T) {
	_, c := newTestController(t, "main")

	firstResolved := false
	firstID := c.OpenModal("confirm-complete", nil, func(bus.ModalResult) { firstResolved = true })

	var got *bus.ModalResult
	secondID := c.OpenModal("confirm-complete", nil, func(r bus.ModalResult) { got = &r })

	// The first open's token is displaced; closing with it is a no-op.
	c.CloseModal("confirm-complete", bus.Succeeded(firstID, "stale"))
	if firstResolved {
		t.Fatalf("displaced continuation must never resolve")
	}
	if c.ModalRoute() != "confirm-complete" {
		t.Fatalf("stale close must leave the modal open, got %q", c.ModalRoute())
	}

	c.CloseModal("confirm-complete", bus.Succeeded(secondID, "done"))
	if got == nil || got.Payload != "done" {
		t.Fatalf("expected second open's continuation to resolve with its payload")
	}
}

func TestFireAndForgetOpenIsLegal(t *testing.T) {
	_, c := newTestController(t, "main")

	id := c.OpenModal("confirm-complete", nil, nil)
	c.CloseModal("confirm-complete", bus.Canceled(id))
	if c.ModalRoute() != "" {
		t.Fatalf("expected modal cleared, got %q", c.ModalRoute())
	}
}

func TestScreenChangeObservers(t *testing.T) {
	_, c := newTestController(t, "main")

	var routes []string
	c.OnScreenChange("recorder", func(route string) { routes = append(routes, route) })

	c.Push("tasks", nil)
	c.Push("task-detail", nil)
	c.Pop()

	want := []string{"tasks", "task-detail", "tasks"}
	if len(routes) != len(want) {
		t.Fatalf("expected %v, got %v", want, routes)
	}
	for i := range want {
		if routes[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, routes)
		}
	}

	if !c.RemoveScreenObserver("recorder") {
		t.Fatalf("expected observer removal")
	}
	c.Push("tasks", nil)
	if len(routes) != len(want) {
		t.Fatalf("expected no notification after removal, got %v", routes)
	}
}

func TestBreadcrumbsTrackHistoryReactively(t *testing.T) {
	_, c := newTestController(t, "main")

	c.Push("tasks", nil)
	c.Push("task-detail", nil)

	crumbs := c.Breadcrumbs()
	if len(crumbs) != 2 || crumbs[0] != "Tasks" || crumbs[1] != "Task Detail" {
		t.Fatalf("expected humanized titles [Tasks, Task Detail], got %v", crumbs)
	}

	c.Pop()
	crumbs = c.Breadcrumbs()
	if len(crumbs) != 1 || crumbs[0] != "Tasks" {
		t.Fatalf("expected [Tasks] after pop, got %v", crumbs)
	}
}
