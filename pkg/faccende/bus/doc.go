// Package bus provides the typed publish/subscribe hub that decouples
// screens, modals, and window controllers from each other.
//
// Events are delivered synchronously to every listener registered under the
// event's exact kind. Listeners are identified by an explicit caller-chosen
// Token rather than by inferred function identity: subscribing the same token
// twice collapses to one registration, and the same token unsubscribes it.
//
// # Basic Usage
//
//	b := bus.New(logger)
//
//	b.Subscribe(bus.KindNavigate, "breadcrumbs", func(e bus.Event) {
//	    nav := e.(bus.NavigateEvent)
//	    // update breadcrumb display for nav.Route
//	})
//
//	b.Publish(bus.NavigateEvent{Route: "tasks", Action: bus.ActionPush})
//
// The bus makes no ordering promise across listeners within one Publish call.
// Across sequential Publish calls from the same goroutine, events arrive in
// program order. A panicking listener aborts delivery to the remaining
// listeners of that publish; the bus never recovers on a listener's behalf.
package bus
