package core

import "time"

// Scheduler is a timer queue driven by an external clock. Tasks run from
// RunDue, on the caller's goroutine, in due-time order (ties keep the
// order they were scheduled in). There is no cancellation: tasks that may
// go stale must re-check their preconditions when they run.
type Scheduler struct {
	tasks []scheduledTask
	seq   uint64
}

type scheduledTask struct {
	due time.Duration
	seq uint64
	fn  func()
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once the clock reaches now+delay.
func (s *Scheduler) After(now, delay time.Duration, fn func()) {
	s.seq++
	task := scheduledTask{due: now + delay, seq: s.seq, fn: fn}

	// Insert keeping (due, seq) order; the queue stays tiny.
	i := len(s.tasks)
	for i > 0 && s.tasks[i-1].due > task.due {
		i--
	}
	s.tasks = append(s.tasks, scheduledTask{})
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = task
}

// RunDue runs every task whose due time is <= now and returns how many ran.
// Tasks scheduled by a running task are eligible in the same call.
func (s *Scheduler) RunDue(now time.Duration) int {
	ran := 0
	for len(s.tasks) > 0 && s.tasks[0].due <= now {
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		task.fn()
		ran++
	}
	return ran
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}
