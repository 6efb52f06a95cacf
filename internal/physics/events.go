package physics

import "collide3d/internal/collision"

// CollisionEvent is one classified pair outcome waiting to reach an owner.
type CollisionEvent struct {
	Result collision.CollisionResult
	Shape  collision.Handle
	Other  collision.Handle
	Info   collision.CollisionInformation
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []CollisionEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt CollisionEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []CollisionEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
