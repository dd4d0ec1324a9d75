package nav_test

import (
	"fmt"

	"github.com/BrandonKowalski/faccende/pkg/faccende/bus"
	"github.com/BrandonKowalski/faccende/pkg/faccende/nav"
)

type taskScreen struct {
	route string
}

func (s taskScreen) Route() string { return s.route }

func screenFor(route string) nav.Factory {
	return func(params map[string]any) nav.Screen {
		return taskScreen{route: route}
	}
}

// Example demonstrates the push/pop flow and the modal round-trip: a
// detail screen opens a confirmation modal, the modal closes with a
// correlated result, and the continuation pops back to the task board.
func Example() {
	b := bus.New(nil)
	registry := nav.NewRegistry().
		RegisterScreen("tasks", screenFor("tasks")).
		RegisterScreen("task-detail", screenFor("task-detail")).
		RegisterModal("confirm-complete", screenFor("confirm-complete"))

	c := nav.New("main", b, registry, nil)
	defer c.Close()

	c.Push("tasks", nil)
	c.Push("task-detail", map[string]any{"task": "water-plants"})
	fmt.Println("showing:", c.CurrentRoute())

	callbackID := c.OpenModal("confirm-complete", nil, func(r bus.ModalResult) {
		if r.Status == bus.StatusSuccess {
			fmt.Println("task completed, going back")
			c.PopIf("task-detail")
		}
	})
	fmt.Println("modal:", c.ModalRoute())

	c.CloseModal("confirm-complete", bus.Succeeded(callbackID, nil))
	fmt.Println("showing:", c.CurrentRoute())

	// Output:
	// showing: task-detail
	// modal: confirm-complete
	// task completed, going back
	// showing: tasks
}
