package stack

import (
	"errors"
	"testing"
)

func TestPushPopLeavesFirstOnTop(t *testing.T) {
	s := New[string]()
	s.Push("a")
	s.Push("b")

	item, err := s.Pop()
	if err != nil {
		t.Fatalf("unexpected pop error: %v", err)
	}
	if item != "b" {
		t.Fatalf("expected b, got %q", item)
	}
	if top, ok := s.Peek(0); !ok || top != "a" {
		t.Fatalf("expected a on top, got %q (ok=%v)", top, ok)
	}
	if s.Len() != 1 {
		t.Fatalf("expected size 1, got %d", s.Len())
	}
}

func TestPopEmptyReturnsErrEmpty(t *testing.T) {
	s := New[string]()
	if _, err := s.Pop(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestPeekOffsets(t *testing.T) {
	s := New[string]()
	s.Push("a")
	s.Push("b")
	s.Push("c")

	if v, ok := s.Peek(0); !ok || v != "c" {
		t.Fatalf("Peek(0): expected c, got %q (ok=%v)", v, ok)
	}
	if v, ok := s.Peek(-2); !ok || v != "a" {
		t.Fatalf("Peek(-2): expected a, got %q (ok=%v)", v, ok)
	}
	if _, ok := s.Peek(-3); ok {
		t.Fatalf("Peek(-3): expected out of range")
	}
	if _, ok := s.Peek(1); ok {
		t.Fatalf("Peek(1): positive offsets are always out of range")
	}
}

func TestClearAndIsEmpty(t *testing.T) {
	s := New[int]()
	if !s.IsEmpty() {
		t.Fatalf("new stack must be empty")
	}
	s.Push(1)
	s.Push(2)
	s.Clear()
	if !s.IsEmpty() || s.Len() != 0 {
		t.Fatalf("expected empty after clear, len=%d", s.Len())
	}
}

func TestRemoveFirstMatchFromTop(t *testing.T) {
	s := New[string]()
	s.Push("a")
	s.Push("b")
	s.Push("a")

	if !s.Remove("a") {
		t.Fatalf("expected removal")
	}
	items := s.Items()
	if len(items) != 2 || items[0] != "a" || items[1] != "b" {
		t.Fatalf("expected [a b] after removing topmost a, got %v", items)
	}
	if s.Remove("z") {
		t.Fatalf("expected no removal for missing element")
	}
}

func TestObserversSeeEveryMutation(t *testing.T) {
	s := New[string]()
	var changes []Change[string]
	s.Observe("recorder", func(c Change[string]) { changes = append(changes, c) })

	s.Push("a")
	s.Push("b")
	s.Pop() //nolint:errcheck
	s.Remove("a")
	s.Clear()

	want := []Op{OpPush, OpPush, OpPop, OpRemove, OpClear}
	if len(changes) != len(want) {
		t.Fatalf("expected %d notifications, got %d", len(want), len(changes))
	}
	for i, op := range want {
		if changes[i].Op != op {
			t.Fatalf("notification %d: expected op %v, got %v", i, op, changes[i].Op)
		}
	}
	if changes[0].Item != "a" || changes[0].Size != 1 {
		t.Fatalf("first push: expected item a size 1, got %+v", changes[0])
	}
	if changes[4].Size != 0 {
		t.Fatalf("clear: expected size 0, got %d", changes[4].Size)
	}
}

func TestUnobserveStopsNotifications(t *testing.T) {
	s := New[string]()
	count := 0
	s.Observe("recorder", func(Change[string]) { count++ })
	s.Push("a")

	if !s.Unobserve("recorder") {
		t.Fatalf("expected observer removal")
	}
	if s.Unobserve("recorder") {
		t.Fatalf("expected second Unobserve to be a no-op")
	}
	s.Push("b")
	if count != 1 {
		t.Fatalf("expected one notification, got %d", count)
	}
}
