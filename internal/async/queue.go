package async

// Completed is a result delivered by Queue.Poll.
type Completed struct {
	Handle *Handle
	Result
}

// Queue tracks pending handles for a host poll loop. It is not safe for
// concurrent use; poll it from a single goroutine.
type Queue struct {
	sched   Scheduler
	pending []*Handle
}

// NewQueue creates a queue submitting to sched.
func NewQueue(sched Scheduler) *Queue {
	return &Queue{sched: sched}
}

// Submit schedules job and tracks its handle.
func (q *Queue) Submit(label string, job Job) *Handle {
	h := q.sched.Submit(label, job)
	q.pending = append(q.pending, h)
	return h
}

// Poll returns the jobs that finished since the last call and retires their
// handles. It never blocks.
func (q *Queue) Poll() []Completed {
	var out []Completed
	keep := q.pending[:0]
	for _, h := range q.pending {
		if r, ok := h.Poll(); ok {
			out = append(out, Completed{Handle: h, Result: r})
			continue
		}
		keep = append(keep, h)
	}
	clear(q.pending[len(keep):])
	q.pending = keep
	return out
}

// Len is the number of handles not yet delivered.
func (q *Queue) Len() int { return len(q.pending) }
