// Package geoloc abstracts the device that delivers player position fixes.
// The game consumes updates through a start/stop subscription; whether they
// come from real hardware or a simulator is invisible to it.
package geoloc

// Update is one geolocation fix.
type Update struct {
	Lat float64
	Lng float64
}

// Subscription is a handle to an active stream of fixes. Stop is idempotent.
type Subscription interface {
	Stop()
}

// Source delivers position updates to a callback until the returned
// subscription is stopped. The callback may be invoked from another
// goroutine; consumers serialize it against their own state.
type Source interface {
	Subscribe(fn func(Update)) (Subscription, error)
}
