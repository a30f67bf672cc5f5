package runtime

import "testing"

// recordingScheduler wires Invoke to collect the string callback of each
// fired task, standing in for the evaluator.
func recordingScheduler() (*Scheduler, *[]string) {
	s := NewScheduler()
	var fired []string
	s.Invoke = func(t *Task) error {
		fired = append(fired, ToString(t.Callback))
		return nil
	}
	return s, &fired
}

func TestTimersFireInDueOrder(t *testing.T) {
	s, fired := recordingScheduler()
	s.ScheduleTimeout(NewString("late"), 100, nil, nil)
	s.ScheduleTimeout(NewString("early"), 50, nil, nil)
	if err := s.Run(0); err != nil {
		t.Fatal(err)
	}
	if len(*fired) != 2 || (*fired)[0] != "early" || (*fired)[1] != "late" {
		t.Errorf("got %v", *fired)
	}
	if s.NowMS() != 100 {
		t.Errorf("clock should rest at the last due time, got %d", s.NowMS())
	}
}

func TestEqualDueTimesKeepScheduleOrder(t *testing.T) {
	s, fired := recordingScheduler()
	s.ScheduleTimeout(NewString("first"), 10, nil, nil)
	s.ScheduleTimeout(NewString("second"), 10, nil, nil)
	if err := s.Run(0); err != nil {
		t.Fatal(err)
	}
	if len(*fired) != 2 || (*fired)[0] != "first" || (*fired)[1] != "second" {
		t.Errorf("got %v", *fired)
	}
}

func TestCancelRemovesPendingTimer(t *testing.T) {
	s, fired := recordingScheduler()
	id := s.ScheduleTimeout(NewString("never"), 50, nil, nil)
	s.Cancel(id)
	s.Cancel(9999) // unknown ids are ignored
	if err := s.Run(0); err != nil {
		t.Fatal(err)
	}
	if len(*fired) != 0 {
		t.Errorf("canceled timer fired: %v", *fired)
	}
}

func TestIntervalReschedulesUntilCanceled(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.Invoke = func(task *Task) error {
		count++
		if count == 3 {
			s.Cancel(task.ID)
		}
		return nil
	}
	s.ScheduleInterval(NewString("tick"), 10, nil, nil)
	if err := s.Run(0); err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("expected 3 fires, got %d", count)
	}
	if s.NowMS() != 30 {
		t.Errorf("expected clock at 30, got %d", s.NowMS())
	}
}

func TestIntervalDelayClampedToOne(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.Invoke = func(task *Task) error {
		count++
		s.Cancel(task.ID)
		return nil
	}
	s.ScheduleInterval(NewString("tick"), 0, nil, nil)
	if err := s.Run(0); err != nil {
		t.Fatal(err)
	}
	if s.NowMS() != 1 {
		t.Errorf("expected the minimum 1ms delay, got %d", s.NowMS())
	}
}

func TestMicrotasksDrainBeforeTimers(t *testing.T) {
	s, fired := recordingScheduler()
	s.ScheduleTimeout(NewString("timer"), 5, nil, nil)
	s.QueueMicrotask(NewString("micro"), nil, nil)
	if err := s.Run(0); err != nil {
		t.Fatal(err)
	}
	if len(*fired) != 2 || (*fired)[0] != "micro" || (*fired)[1] != "timer" {
		t.Errorf("got %v", *fired)
	}
}

func TestMicrotaskMayQueueMicrotask(t *testing.T) {
	s := NewScheduler()
	var fired []string
	s.Invoke = func(task *Task) error {
		label := ToString(task.Callback)
		fired = append(fired, label)
		if label == "first" {
			s.QueueMicrotask(NewString("second"), nil, nil)
		}
		return nil
	}
	s.QueueMicrotask(NewString("first"), nil, nil)
	if err := s.DrainMicrotasks(); err != nil {
		t.Fatal(err)
	}
	if len(fired) != 2 || fired[1] != "second" {
		t.Errorf("got %v", fired)
	}
}

func TestClockJumpsToDistantTimer(t *testing.T) {
	s, _ := recordingScheduler()
	s.ScheduleTimeout(NewString("day"), 86400000, nil, nil)
	if err := s.Run(0); err != nil {
		t.Fatal(err)
	}
	if s.NowMS() != 86400000 {
		t.Errorf("expected an instant jump, got %d", s.NowMS())
	}
}

func TestLastScheduledExposesTask(t *testing.T) {
	s, _ := recordingScheduler()
	env := NewEnvironment()
	id := s.ScheduleTimeout(NewString("cb"), 10, nil, env)
	task := s.LastScheduled
	if task == nil || task.ID != id {
		t.Fatalf("LastScheduled should be the just-queued task")
	}
	if task.Env != env {
		t.Error("the captured environment should ride on the task")
	}
}

func TestRunGuardStopsRunawayInterval(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.Invoke = func(*Task) error {
		count++
		return nil
	}
	s.ScheduleInterval(NewString("spin"), 1, nil, nil)
	if err := s.Run(25); err != nil {
		t.Fatal(err)
	}
	if count != 25 {
		t.Errorf("expected the tick guard to stop the interval, got %d fires", count)
	}
}
