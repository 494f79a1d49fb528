// Package warmlib provides the core warming primitives for prewarm: a
// trigger-gated, cooldown-aware scheduler that keeps a remote inference
// backend hot by issuing synthetic warm predictions and polling them to a
// terminal state.
package warmlib

import (
	"fmt"
	"sync"
	"time"

	"github.com/prewarm/prewarm/pkg/logger"
)

const (
	// DefaultCooldownPeriod is the minimum time since the last successful
	// warm call before another one is permitted.
	DefaultCooldownPeriod = 10 * time.Second
	// DefaultPollInterval is the fixed wait between prediction status polls.
	DefaultPollInterval = 2 * time.Second
	// DefaultTarget is the small animation reference sent with warm calls.
	DefaultTarget = "animations/idle-loop-small.mp4"
)

// Config holds the tunable parameters of a WarmingScheduler. It is copied
// on construction; later changes go through UpdateConfig.
type Config struct {
	CooldownPeriod time.Duration
	PollInterval   time.Duration
	Target         string
}

func (c *Config) setDefault() {
	if c.CooldownPeriod <= 0 {
		c.CooldownPeriod = DefaultCooldownPeriod
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Target == "" {
		c.Target = DefaultTarget
	}
}

// ConfigUpdate is a partial configuration merge. Nil fields keep their
// current value. The update takes effect on the next trigger or warm cycle.
type ConfigUpdate struct {
	CooldownPeriod *time.Duration
	PollInterval   *time.Duration
	Target         *string
	Handlers       *Handlers
}

// Status is a point-in-time read of the scheduler state.
type Status struct {
	InProgress           bool          `json:"inProgress"`
	LastWarmAttemptAt    time.Time     `json:"lastWarmAttemptAt"`
	LastSuccessfulWarmAt time.Time     `json:"lastSuccessfulWarmAt"`
	SinceLastAttempt     time.Duration `json:"sinceLastAttempt"`
	SinceLastSuccess     time.Duration `json:"sinceLastSuccess"`
	CanWarm              bool          `json:"canWarm"`
}

// WarmingScheduler debounces warm triggers, enforces a cooldown between
// successful warm calls, and runs at most one warm cycle at a time.
//
// The inProgress flag is the cooperative mutual-exclusion signal: it is
// checked at trigger time for the immediate path and at executor entry.
// The delayed fire deliberately does not re-check it before invoking the
// executor; the executor entry guard is the only backstop on that path.
type WarmingScheduler struct {
	mu                   sync.Mutex
	inProgress           bool
	lastWarmAttemptAt    time.Time
	lastSuccessfulWarmAt time.Time
	pendingTimer         *time.Timer
	closed               bool

	cfg      Config
	handlers *Handlers
	client   *PredictionClient
	source   ImageSource
	log      logger.Logger
}

// NewWarmingScheduler creates a scheduler that issues warm calls through
// client using images from source. A nil cfg or handlers uses defaults;
// a nil source uses the deterministic placeholder; a nil log discards.
func NewWarmingScheduler(client *PredictionClient, source ImageSource, l logger.Logger, cfg *Config, h *Handlers) *WarmingScheduler {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.setDefault()
	if h == nil {
		h = &Handlers{}
	}
	if l == nil {
		l = logger.NewNopLogger()
	}
	h.setDefault(l)
	if source == nil {
		source = &PlaceholderSource{}
	}
	return &WarmingScheduler{
		cfg:      *cfg,
		handlers: h,
		client:   client,
		source:   source,
		log:      l,
	}
}

// Trigger is the entry point for external interaction signals. While a warm
// cycle is in progress the trigger is dropped. Otherwise any pending
// delayed fire is cancelled and replaced: the cycle starts immediately when
// the cooldown has elapsed, or is scheduled for the instant it does.
func (s *WarmingScheduler) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.inProgress {
		s.log.Info("warm trigger skipped: cycle in progress")
		return
	}
	if s.pendingTimer != nil {
		s.pendingTimer.Stop()
		s.pendingTimer = nil
	}
	elapsed := time.Since(s.lastSuccessfulWarmAt)
	remaining := s.cfg.CooldownPeriod - elapsed
	if remaining <= 0 {
		go s.runWarmCycle()
		return
	}
	s.log.Info("warm trigger queued: %s of cooldown remaining", remaining)
	var t *time.Timer
	t = time.AfterFunc(remaining, func() {
		s.mu.Lock()
		if s.pendingTimer == t {
			s.pendingTimer = nil
		}
		s.mu.Unlock()
		s.runWarmCycle()
	})
	s.pendingTimer = t
}

// runWarmCycle performs one full warm cycle: create the prediction, poll it
// to a terminal state, and update the state register on every exit path.
// Errors are funneled to the error handler and never propagate out.
func (s *WarmingScheduler) runWarmCycle() {
	s.mu.Lock()
	if s.inProgress {
		s.mu.Unlock()
		return
	}
	s.inProgress = true
	handlers := s.handlers
	client := s.client
	source := s.source
	interval := s.cfg.PollInterval
	target := s.cfg.Target
	s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.markAttempt()
			handlers.WarmingErrorHandler(fmt.Errorf("unexpected warming failure: %v", r))
		}
		s.mu.Lock()
		s.inProgress = false
		s.mu.Unlock()
	}()

	handlers.WarmingStartHandler()

	src, err := source.SourceImage()
	if err != nil {
		s.markAttempt()
		handlers.WarmingErrorHandler(err)
		return
	}
	pred, err := client.CreateWarm(&WarmRequest{Source: src, Target: target})
	if err != nil {
		if se, ok := err.(*StatusError); ok {
			// Early return: the non-success creation branch does not
			// advance the attempt timestamp.
			handlers.WarmingErrorHandler(se)
			return
		}
		s.markAttempt()
		handlers.WarmingErrorHandler(err)
		return
	}
	for _, line := range pred.Logs {
		s.log.Info("prediction %s: %s", pred.ID, line)
	}

	for !pred.Terminal() {
		time.Sleep(interval)
		next, err := client.GetPrediction(pred.ID)
		if err != nil {
			s.markAttempt()
			handlers.WarmingErrorHandler(fmt.Errorf("%w: %v", ErrPollFetch, err))
			return
		}
		pred = next
	}

	now := time.Now()
	s.mu.Lock()
	s.lastWarmAttemptAt = now
	if pred.Status == StatusSucceeded {
		s.lastSuccessfulWarmAt = now
	}
	s.mu.Unlock()

	if pred.Status == StatusSucceeded {
		s.log.Info("warm cycle completed: prediction %s", pred.ID)
		handlers.WarmingCompleteHandler()
	} else {
		handlers.WarmingErrorHandler(&PredictionFailedError{Message: pred.Error})
	}
}

func (s *WarmingScheduler) markAttempt() {
	s.mu.Lock()
	s.lastWarmAttemptAt = time.Now()
	s.mu.Unlock()
}

// Freeze forces the in-progress flag on, suppressing all warming activity.
// Callers use it while a genuine user-facing inference call is in flight so
// warming never competes with real requests. Pending timers are left alone;
// their fire is absorbed by the executor entry guard.
func (s *WarmingScheduler) Freeze() {
	s.mu.Lock()
	s.inProgress = true
	s.mu.Unlock()
}

// Reset clears the in-progress flag and restarts the cooldown window from
// now, as if a warm call had just succeeded. Callers use it after a real
// inference call completes so a redundant warm is not triggered.
func (s *WarmingScheduler) Reset() {
	s.mu.Lock()
	s.inProgress = false
	s.lastSuccessfulWarmAt = time.Now()
	s.mu.Unlock()
}

// Status returns a snapshot of the scheduler state. No side effects.
func (s *WarmingScheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		InProgress:           s.inProgress,
		LastWarmAttemptAt:    s.lastWarmAttemptAt,
		LastSuccessfulWarmAt: s.lastSuccessfulWarmAt,
	}
	if !s.lastWarmAttemptAt.IsZero() {
		st.SinceLastAttempt = time.Since(s.lastWarmAttemptAt)
	}
	sinceSuccess := time.Since(s.lastSuccessfulWarmAt)
	if !s.lastSuccessfulWarmAt.IsZero() {
		st.SinceLastSuccess = sinceSuccess
	}
	st.CanWarm = !s.inProgress && sinceSuccess > s.cfg.CooldownPeriod
	return st
}

// UpdateConfig merges a partial configuration update. It takes effect on
// the next trigger or warm cycle; an in-flight cycle keeps the values it
// started with.
func (s *WarmingScheduler) UpdateConfig(u *ConfigUpdate) {
	if u == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.CooldownPeriod != nil && *u.CooldownPeriod > 0 {
		s.cfg.CooldownPeriod = *u.CooldownPeriod
	}
	if u.PollInterval != nil && *u.PollInterval > 0 {
		s.cfg.PollInterval = *u.PollInterval
	}
	if u.Target != nil && *u.Target != "" {
		s.cfg.Target = *u.Target
	}
	if u.Handlers != nil {
		u.Handlers.setDefault(s.log)
		s.handlers = u.Handlers
	}
}

// Config returns a copy of the current configuration.
func (s *WarmingScheduler) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Close cancels any pending delayed fire and drops all future triggers.
// Safe to call multiple times. An in-flight warm cycle is not cancelled;
// it runs to its terminal state.
func (s *WarmingScheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingTimer != nil {
		s.pendingTimer.Stop()
		s.pendingTimer = nil
	}
	s.closed = true
}
