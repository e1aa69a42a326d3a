package game

import (
	"sync"
	"time"
)

var _ Scheduler = &TimerScheduler{}

// TimerScheduler schedules ticks on the runtime timer.
type TimerScheduler struct {
	timer *time.Timer
	sync.Mutex
}

// NewTimerScheduler returns a scheduler with nothing pending.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

// ScheduleNext replaces any pending callback with fn.
func (s *TimerScheduler) ScheduleNext(fn func(), delay time.Duration) {
	s.Lock()
	defer s.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, fn)
}

// Cancel drops the pending callback, if any.
func (s *TimerScheduler) Cancel() {
	s.Lock()
	defer s.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
