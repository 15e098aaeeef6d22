// Package sched provides a deterministic cooperative scheduler.
// All callbacks run on the caller's goroutine inside Advance/AdvanceTo, one at
// a time, in deadline order. Time is virtual: it only moves when the owner
// advances it, which keeps game logic reproducible under test.
package sched

import (
	"container/heap"
	"time"
)

// TaskID identifies a scheduled callback. Zero is never a valid ID.
type TaskID uint64

// Func is a scheduled callback. It receives the virtual time it fired at.
type Func func(now time.Time)

type task struct {
	id    TaskID
	at    time.Time
	every time.Duration // 0 for one-shot tasks
	fn    Func
	seq   uint64 // insertion order, breaks deadline ties
	index int    // position in the heap, -1 when not queued
}

// taskQueue is a min-heap ordered by (deadline, seq).
type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler is a single logical event queue.
// It is not safe for concurrent use; owners serialize access themselves.
type Scheduler struct {
	now     time.Time
	queue   taskQueue
	tasks   map[TaskID]*task
	nextID  TaskID
	nextSeq uint64
}

// New creates a scheduler whose virtual clock starts at start.
func New(start time.Time) *Scheduler {
	return &Scheduler{
		now:   start,
		tasks: make(map[TaskID]*task),
	}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// After schedules fn to run once, d after the current virtual time.
// A non-positive d makes the task due on the next Advance.
func (s *Scheduler) After(d time.Duration, fn Func) TaskID {
	if d < 0 {
		d = 0
	}
	return s.schedule(s.now.Add(d), 0, fn)
}

// Every schedules fn to run repeatedly with the given interval.
// The first run happens one interval from now.
func (s *Scheduler) Every(interval time.Duration, fn Func) TaskID {
	if interval <= 0 {
		panic("sched: non-positive interval")
	}
	return s.schedule(s.now.Add(interval), interval, fn)
}

func (s *Scheduler) schedule(at time.Time, every time.Duration, fn Func) TaskID {
	s.nextID++
	s.nextSeq++
	t := &task{
		id:    s.nextID,
		at:    at,
		every: every,
		fn:    fn,
		seq:   s.nextSeq,
	}
	s.tasks[t.id] = t
	heap.Push(&s.queue, t)
	return t.id
}

// Cancel removes a pending task so it never runs again.
// Returns false if the task already ran (one-shot) or was cancelled.
func (s *Scheduler) Cancel(id TaskID) bool {
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	delete(s.tasks, id)
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
	return true
}

// Scheduled reports whether the task is still pending.
func (s *Scheduler) Scheduled(id TaskID) bool {
	_, ok := s.tasks[id]
	return ok
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// NextDeadline returns the deadline of the earliest pending task.
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	if len(s.queue) == 0 {
		return time.Time{}, false
	}
	return s.queue[0].at, true
}

// Advance moves the clock forward by d, running every task that falls due.
func (s *Scheduler) Advance(d time.Duration) int {
	return s.AdvanceTo(s.now.Add(d))
}

// AdvanceTo moves the clock to t and runs all tasks due at or before t,
// including tasks scheduled by callbacks during this call.
// Returns the number of callbacks executed. Moving backwards is a no-op.
func (s *Scheduler) AdvanceTo(t time.Time) int {
	if t.Before(s.now) {
		return 0
	}

	ran := 0
	for len(s.queue) > 0 && !s.queue[0].at.After(t) {
		next := heap.Pop(&s.queue).(*task)
		s.now = next.at

		if next.every > 0 {
			// Requeue before running so the callback can cancel itself.
			next.at = next.at.Add(next.every)
			s.nextSeq++
			next.seq = s.nextSeq
			heap.Push(&s.queue, next)
		} else {
			delete(s.tasks, next.id)
		}

		next.fn(s.now)
		ran++
	}

	s.now = t
	return ran
}
