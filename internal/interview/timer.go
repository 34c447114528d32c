package interview

import (
	"context"
	"time"
)

// timerHandle is the single countdown owned by the session. The generation
// counter invalidates ticks from a countdown that outlived its question.
type timerHandle struct {
	gen    int
	cancel context.CancelFunc
}

// restartTimerLocked replaces the countdown for the question that was just
// drawn. The previous countdown, if any, is cancelled so a stale tick can
// never fire against the new question's state.
func (s *Session) restartTimerLocked() {
	s.stopTimerLocked()

	if s.manualTimer {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.timer.cancel = cancel

	go s.countdown(ctx, s.timer.gen)
}

func (s *Session) stopTimerLocked() {
	s.timer.gen++
	if s.timer.cancel != nil {
		s.timer.cancel()
		s.timer.cancel = nil
	}
}

// countdown decrements the time left once per real-time second until the
// question changes, the session finishes, or the limit is exhausted.
func (s *Session) countdown(ctx context.Context, gen int) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.tick(gen) {
				return
			}
		}
	}
}

// Tick advances the countdown by one second. The background countdown calls
// it internally; with ManualTimer set, callers drive it directly.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tickLocked()
}

func (s *Session) tick(gen int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.timer.gen {
		return false
	}

	return s.tickLocked()
}

// tickLocked reports whether the countdown should keep running. Reaching
// zero forces a submission exactly once: the forced submit either arms a
// fresh countdown for the next question or finishes the session.
func (s *Session) tickLocked() bool {
	if !s.started || s.finished || s.timeLeft <= 0 {
		return false
	}

	s.timeLeft--
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.submitLocked(true)
		return false
	}

	s.emitLocked(EventTick)

	return true
}
