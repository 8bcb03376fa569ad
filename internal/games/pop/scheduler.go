package pop

import "time"

// Scheduler runs named periodic tasks from an external clock. It never
// blocks and never starts goroutines: the owner calls Advance from its own
// loop. Tasks are added disabled and run in registration order.
type Scheduler struct {
	tasks   []*task
	running bool
}

type task struct {
	name    string
	every   time.Duration // 0 runs once per Advance with the frame delta
	fn      func(dt time.Duration)
	acc     time.Duration
	enabled bool
}

// NewScheduler creates a stopped scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add registers a task. every == 0 makes it a per-frame task.
func (s *Scheduler) Add(name string, every time.Duration, fn func(dt time.Duration)) {
	s.tasks = append(s.tasks, &task{name: name, every: every, fn: fn})
}

// Start marks the scheduler running. Tasks still need Enable.
func (s *Scheduler) Start() {
	s.running = true
}

// Enable activates a task with a fresh period. Unknown names are ignored.
func (s *Scheduler) Enable(name string) {
	for _, t := range s.tasks {
		if t.name == name {
			t.enabled = true
			t.acc = 0
		}
	}
}

// Enabled reports whether a task is active.
func (s *Scheduler) Enabled(name string) bool {
	for _, t := range s.tasks {
		if t.name == name {
			return t.enabled && s.running
		}
	}
	return false
}

// Running reports whether Advance will run tasks.
func (s *Scheduler) Running() bool {
	return s.running
}

// Stop halts every task immediately. It is safe to call from inside a task;
// no further task runs in the current Advance.
func (s *Scheduler) Stop() {
	s.running = false
	for _, t := range s.tasks {
		t.enabled = false
		t.acc = 0
	}
}

// Advance moves the clock by dt and runs due tasks. A periodic task that
// fell behind runs once per missed period. The running flag is checked
// before every invocation.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	for _, t := range s.tasks {
		if !s.running {
			return
		}
		if !t.enabled {
			continue
		}
		if t.every <= 0 {
			t.fn(dt)
			continue
		}
		t.acc += dt
		for t.acc >= t.every && s.running && t.enabled {
			t.acc -= t.every
			t.fn(t.every)
		}
	}
}
