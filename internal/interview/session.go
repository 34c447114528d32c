package interview

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const (
	// maxQuestions caps the interview length.
	maxQuestions = 5
	// earlyStopIndex is the earliest zero-based question index at which
	// the running average is checked for early termination.
	earlyStopIndex = 2
	// earlyStopAverage ends the interview when the running average drops
	// below it once enough questions are answered.
	earlyStopAverage = 35.0

	defaultEventBuffer = 16
)

// Config configures a Session.
type Config struct {
	Logger *zap.Logger
	// ManualTimer disables the background countdown. Ticks are then driven
	// by calls to Tick; tests use this to control time.
	ManualTimer bool
	// EventBuffer overrides the capacity of the Events channel.
	EventBuffer int
}

// Session is the interview state machine: it draws questions, runs the
// per-question countdown, scores answers, adapts the difficulty and decides
// when the interview is over. All mutations are serialized under one mutex
// so the countdown goroutine and the caller never race.
type Session struct {
	mu sync.Mutex

	logger      *zap.Logger
	manualTimer bool

	role          Role
	difficulty    Difficulty
	questionIndex int
	question      string
	answer        string
	timeLeft      int
	scores        []int
	started       bool
	finished      bool
	report        *Report

	timer timerHandle

	events chan Event
}

// EventKind names a session notification.
type EventKind string

const (
	EventQuestion EventKind = "question"
	EventTick     EventKind = "tick"
	EventFinished EventKind = "finished"
)

// Event notifies the rendering layer about a state change.
type Event struct {
	Kind EventKind
	View View
}

// View is a read-only projection of the session for rendering. Callers never
// touch internal fields.
type View struct {
	Role          Role       `json:"role"`
	Difficulty    Difficulty `json:"difficulty"`
	QuestionIndex int        `json:"question_index"`
	Question      string     `json:"question"`
	TimeLeft      int        `json:"time_left"`
	Started       bool       `json:"started"`
	Finished      bool       `json:"finished"`
	Scores        []int      `json:"scores"`
	Report        *Report    `json:"report,omitempty"`
}

// New creates a session in the not-started state.
func New(cfg *Config) *Session {
	if cfg == nil {
		cfg = &Config{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	buffer := cfg.EventBuffer
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}

	return &Session{
		logger:      logger,
		manualTimer: cfg.ManualTimer,
		difficulty:  DifficultyEasy,
		events:      make(chan Event, buffer),
	}
}

// Events returns the channel carrying session notifications. Events are
// dropped, never blocked on, when the consumer lags.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Start begins the interview. The role is detected once from the job
// description and fixed for the session; the first question is drawn at the
// easy tier.
func (s *Session) Start(resume, jd string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("%w: session already started", ErrInvalidInput)
	}
	if strings.TrimSpace(resume) == "" || strings.TrimSpace(jd) == "" {
		return fmt.Errorf("%w: resume and job description are required", ErrInvalidInput)
	}

	s.role = DetectRole(jd)
	s.difficulty = DifficultyEasy
	s.questionIndex = 0
	s.started = true

	s.logger.Info("interview started",
		zap.String("role", string(s.role)),
		zap.String("difficulty", string(s.difficulty)),
	)

	s.askLocked()

	return nil
}

// Submit records a manual answer. A blank answer or a session that is not in
// progress is rejected with ErrInvalidInput.
func (s *Session) Submit(answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.finished {
		return fmt.Errorf("%w: session is not in progress", ErrInvalidInput)
	}
	if strings.TrimSpace(answer) == "" {
		return fmt.Errorf("%w: answer must not be empty", ErrInvalidInput)
	}

	s.answer = answer
	s.submitLocked(false)

	return nil
}

// View returns a snapshot of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.viewLocked()
}

// askLocked draws a question for the current tier and re-arms the countdown.
func (s *Session) askLocked() {
	s.question = PickQuestion(s.difficulty, s.role)
	s.timeLeft = TimeLimit(s.difficulty)
	s.restartTimerLocked()
	s.emitLocked(EventQuestion)
}

// submitLocked scores the pending answer and advances the state machine.
// The early-termination check runs against the average including the
// just-appended score.
func (s *Session) submitLocked(timedOut bool) {
	limit := TimeLimit(s.difficulty)
	score := Score(s.answer, timedOut, s.timeLeft, limit)
	s.scores = append(s.scores, score)

	next := NextDifficulty(score)
	avg := average(s.scores)

	s.logger.Info("answer scored",
		zap.Int("question", s.questionIndex+1),
		zap.Int("score", score),
		zap.Bool("timed_out", timedOut),
		zap.Float64("running_average", avg),
		zap.String("next_difficulty", string(next)),
	)

	if s.questionIndex >= earlyStopIndex && avg < earlyStopAverage {
		s.finishLocked("average score too low")
		return
	}
	if s.questionIndex == maxQuestions-1 {
		s.finishLocked("question limit reached")
		return
	}

	s.questionIndex++
	s.answer = ""
	s.difficulty = next
	s.askLocked()
}

func (s *Session) finishLocked(reason string) {
	s.finished = true
	s.stopTimerLocked()
	s.report = Synthesize(s.scores)

	s.logger.Info("interview finished",
		zap.String("reason", reason),
		zap.Int("questions", len(s.scores)),
		zap.Float64("average_score", s.report.AverageScore),
		zap.String("verdict", s.report.Readiness),
	)

	s.emitLocked(EventFinished)
}

func (s *Session) viewLocked() View {
	scores := make([]int, len(s.scores))
	copy(scores, s.scores)

	return View{
		Role:          s.role,
		Difficulty:    s.difficulty,
		QuestionIndex: s.questionIndex,
		Question:      s.question,
		TimeLeft:      s.timeLeft,
		Started:       s.started,
		Finished:      s.finished,
		Scores:        scores,
		Report:        s.report,
	}
}

// emitLocked delivers the event without blocking. A lagging consumer loses
// notifications, never state.
func (s *Session) emitLocked(kind EventKind) {
	select {
	case s.events <- Event{Kind: kind, View: s.viewLocked()}:
	default:
	}
}
