package runtime

import "sort"

// Task is a unit of queued work: a timer callback or a microtask.
type Task struct {
	ID       int64
	Callback *Value // ObjFunction
	Args     []*Value
	Env      *Environment // captured at schedule time; timer-id back-patch writes here
	Due      int64        // virtual ms
	Interval int64        // >0 for setInterval, reschedules after each fire
	seq      int64
	canceled bool
}

// Scheduler owns the virtual clock, the timer queue and the microtask queue.
// Nothing here touches wall-clock time: the clock only advances when a timer
// fires, so schedules like setTimeout(fn, 86400000) run instantly.
type Scheduler struct {
	now    int64
	nextID int64
	seq    int64
	timers []*Task
	micro  []*Task

	// Invoke runs a task's callback. The evaluator installs it; keeping it
	// as a seam avoids a package cycle.
	Invoke func(*Task) error

	// LastScheduled is the most recently queued timer task. The statement
	// executor reads it to patch a declared timer id into the task's own
	// captured environment.
	LastScheduled *Task
}

func NewScheduler() *Scheduler {
	return &Scheduler{nextID: 1}
}

// NowMS reports the virtual clock in milliseconds.
func (s *Scheduler) NowMS() int64 { return s.now }

// ScheduleTimeout queues a one-shot timer and returns its id.
func (s *Scheduler) ScheduleTimeout(cb *Value, delay int64, args []*Value, env *Environment) int64 {
	return s.schedule(cb, delay, 0, args, env)
}

// ScheduleInterval queues a repeating timer and returns its id.
func (s *Scheduler) ScheduleInterval(cb *Value, delay int64, args []*Value, env *Environment) int64 {
	if delay < 1 {
		delay = 1
	}
	return s.schedule(cb, delay, delay, args, env)
}

func (s *Scheduler) schedule(cb *Value, delay, interval int64, args []*Value, env *Environment) int64 {
	if delay < 0 {
		delay = 0
	}
	t := &Task{
		ID:       s.nextID,
		Callback: cb,
		Args:     args,
		Env:      env,
		Due:      s.now + delay,
		Interval: interval,
		seq:      s.seq,
	}
	s.nextID++
	s.seq++
	s.timers = append(s.timers, t)
	s.LastScheduled = t
	return t.ID
}

// Cancel removes the timer with the given id. Unknown ids are ignored,
// matching clearTimeout.
func (s *Scheduler) Cancel(id int64) {
	for _, t := range s.timers {
		if t.ID == id {
			t.canceled = true
		}
	}
}

// QueueMicrotask queues work to run before the next timer fires.
func (s *Scheduler) QueueMicrotask(cb *Value, args []*Value, env *Environment) {
	s.micro = append(s.micro, &Task{Callback: cb, Args: args, Env: env})
}

// DrainMicrotasks runs queued microtasks to exhaustion, including ones
// queued by microtasks themselves.
func (s *Scheduler) DrainMicrotasks() error {
	for len(s.micro) > 0 {
		t := s.micro[0]
		s.micro = s.micro[1:]
		if err := s.Invoke(t); err != nil {
			return err
		}
	}
	return nil
}

// Tick advances the clock to the next due timer and fires it, after first
// draining microtasks. It reports whether any timer remains.
func (s *Scheduler) Tick() (bool, error) {
	if err := s.DrainMicrotasks(); err != nil {
		return false, err
	}
	s.compact()
	if len(s.timers) == 0 {
		return false, nil
	}
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].Due != s.timers[j].Due {
			return s.timers[i].Due < s.timers[j].Due
		}
		return s.timers[i].seq < s.timers[j].seq
	})
	t := s.timers[0]
	s.timers = s.timers[1:]
	if t.Due > s.now {
		s.now = t.Due
	}
	if t.Interval > 0 {
		next := &Task{
			ID:       t.ID,
			Callback: t.Callback,
			Args:     t.Args,
			Env:      t.Env,
			Due:      s.now + t.Interval,
			Interval: t.Interval,
			seq:      s.seq,
		}
		s.seq++
		s.timers = append(s.timers, next)
	}
	if err := s.Invoke(t); err != nil {
		return false, err
	}
	return true, nil
}

// Run drives the queues until both are empty or maxTicks timers have fired.
// maxTicks <= 0 means no limit beyond the default guard against runaway
// intervals.
func (s *Scheduler) Run(maxTicks int) error {
	if maxTicks <= 0 {
		maxTicks = 10000
	}
	for i := 0; i < maxTicks; i++ {
		more, err := s.Tick()
		if err != nil {
			return err
		}
		if !more {
			return s.DrainMicrotasks()
		}
	}
	return s.DrainMicrotasks()
}

func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.canceled {
			live = append(live, t)
		}
	}
	s.timers = live
}
