package engine

// ListenerID identifies one subscription so it can be removed again.
type ListenerID uint64

type listener[T any] struct {
	id ListenerID
	fn func(T)
}

// EventWithArg is a multi-cast event carrying one argument. Collision
// callbacks fire through it, so listeners may add or remove listeners (or
// destroy objects) while it is being invoked: Invoke works on a snapshot.
type EventWithArg[T any] struct {
	listeners []listener[T]
	nextID    ListenerID
}

// AddListener subscribes fn. A nil fn is ignored and returns 0.
func (e *EventWithArg[T]) AddListener(fn func(T)) ListenerID {
	if fn == nil {
		return 0
	}
	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: e.nextID, fn: fn})
	return e.nextID
}

// RemoveListener unsubscribes id. Returns false if it was not subscribed.
func (e *EventWithArg[T]) RemoveListener(id ListenerID) bool {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls the listeners subscribed when it started, in subscription
// order. Listeners removed by an earlier listener in the same call are
// skipped.
func (e *EventWithArg[T]) Invoke(arg T) {
	snapshot := e.listeners
	for _, l := range snapshot {
		if e.subscribed(l.id) {
			l.fn(arg)
		}
	}
}

func (e *EventWithArg[T]) subscribed(id ListenerID) bool {
	for _, l := range e.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

func (e *EventWithArg[T]) ListenerCount() int {
	return len(e.listeners)
}
