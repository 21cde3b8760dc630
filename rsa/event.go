package rsa

import "container/heap"

// EventKind distinguishes arrival from departure events.
type EventKind int

const (
	// EventArrival marks a request attempting to be dispatched.
	EventArrival EventKind = iota
	// EventDeparture marks a previously accepted request releasing its
	// spectrum.
	EventDeparture
)

// Event is one entry of the simulation's time-ordered event queue.
type Event struct {
	Time    float64
	Kind    EventKind
	Request *Request
	// seq is the insertion sequence number, used only to break ties
	// between events with identical Time: strict insertion-order
	// stability (first scheduled, first processed).
	seq uint64
}

// EventQueue is a container/heap-backed min-heap ordered by ascending Time,
// then by insertion order for ties.
type EventQueue struct {
	items   []Event
	nextSeq uint64
}

// NewEventQueue creates an empty EventQueue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Len implements heap.Interface.
func (q *EventQueue) Len() int { return len(q.items) }

// Less implements heap.Interface: ascending Time, then ascending seq.
func (q *EventQueue) Less(i, j int) bool {
	if q.items[i].Time != q.items[j].Time {
		return q.items[i].Time < q.items[j].Time
	}
	return q.items[i].seq < q.items[j].seq
}

// Swap implements heap.Interface.
func (q *EventQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

// Push implements heap.Interface. Use Schedule, not Push, from outside this
// package.
func (q *EventQueue) Push(x any) {
	q.items = append(q.items, x.(Event))
}

// Pop implements heap.Interface. Use PopNext, not Pop, from outside this
// package.
func (q *EventQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

// Empty reports whether the queue has no pending events.
func (q *EventQueue) Empty() bool { return len(q.items) == 0 }

// Size returns the number of pending events.
func (q *EventQueue) Size() int { return len(q.items) }

// Top returns the next event to be processed without removing it. Callers
// must check Empty first.
func (q *EventQueue) Top() Event { return q.items[0] }

// Schedule inserts an event, assigning it the next insertion sequence
// number for tie-breaking.
func (q *EventQueue) Schedule(e Event) {
	e.seq = q.nextSeq
	q.nextSeq++
	heap.Push(q, e)
}

// PopNext removes and returns the next event. Callers must check Empty
// first.
func (q *EventQueue) PopNext() Event {
	return heap.Pop(q).(Event)
}
