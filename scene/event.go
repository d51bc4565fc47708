package scene

// Action is the work carried by a queued event.
type Action interface {
	Do()
}

// ActionFunc adapts a plain function to Action.
type ActionFunc func()

func (f ActionFunc) Do() { f() }

// Event is an entry in one of the scene queues. Clearing Active turns a
// queued event into a no-op without removing it from its list.
type Event struct {
	Active bool
	Action Action
}

func (e *Event) run() bool {
	if e == nil || !e.Active || e.Action == nil {
		return false
	}
	e.Action.Do()
	return true
}

// Cancel deactivates the event.
func (e *Event) Cancel() {
	if e == nil {
		return
	}
	e.Active = false
}

// queue is a FIFO list of events.
type queue struct {
	items []*Event
}

func (q *queue) push(e *Event) {
	q.items = append(q.items, e)
}

// drain returns all events and clears the queue.
func (q *queue) drain() []*Event {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// compact drops inactive events.
func (q *queue) compact() {
	kept := q.items[:0]
	for _, e := range q.items {
		if e != nil && e.Active {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = nil
	}
	q.items = kept
}

func (q *queue) len() int {
	return len(q.items)
}
