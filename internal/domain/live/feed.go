package live

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// DefaultTickInterval is one session second.
const DefaultTickInterval = time.Second

// Ticker is the clock source driving a feed.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker for the given interval.
type TickerFactory func(d time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker wraps time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Line is one transcript entry.
type Line struct {
	Second int    `json:"second"`
	Role   string `json:"role"`
	Text   string `json:"text"`
}

// Snapshot is the observable state of a running feed.
type Snapshot struct {
	Elapsed      int      `json:"elapsed_seconds"`
	Recording    bool     `json:"recording"`
	Transcript   []Line   `json:"transcript"`
	Tips         []string `json:"tips"`
	RepTalk      int      `json:"rep_talk_seconds"`
	CustomerTalk int      `json:"customer_talk_seconds"`
	Stopped      bool     `json:"stopped"`
}

// Feed starts per-session live feeds.
type Feed struct {
	script    Script
	interval  time.Duration
	newTicker TickerFactory
	logger    *slog.Logger
}

// NewFeed creates a feed runner. Zero values fall back to the default script,
// a one second interval and a real ticker.
func NewFeed(script Script, interval time.Duration, newTicker TickerFactory, logger *slog.Logger) *Feed {
	if script == nil {
		script = DefaultScript()
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if newTicker == nil {
		newTicker = NewTimeTicker
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Feed{script: script, interval: interval, newTicker: newTicker, logger: logger}
}

// Start launches the feed goroutine for one session. When recording is false
// the clock does not advance until StartRecording is called.
func (f *Feed) Start(ctx context.Context, sessionID string, recording bool) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		script: f.script,
		cancel: cancel,
		done:   make(chan struct{}),
		state:  Snapshot{Recording: recording},
	}

	ticker := f.newTicker(f.interval)
	logger := f.logger.With("session_id", sessionID)
	go func() {
		defer close(h.done)
		defer ticker.Stop()
		logger.Debug("live feed started", "recording", recording)
		for {
			select {
			case <-ctx.Done():
				logger.Debug("live feed stopped")
				return
			case <-ticker.C():
				// Stop may have raced the tick.
				if ctx.Err() != nil {
					return
				}
				h.tick()
			}
		}
	}()
	return h
}

// Handle controls one running feed.
type Handle struct {
	script Script
	cancel context.CancelFunc
	done   chan struct{}

	mu    sync.Mutex
	state Snapshot
	once  sync.Once
}

func (h *Handle) tick() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Stopped || !h.state.Recording {
		return
	}

	h.state.Elapsed++
	cue, ok := h.script.At(h.state.Elapsed)
	if !ok {
		return
	}
	h.state.Transcript = append(h.state.Transcript, Line{Second: cue.Second, Role: cue.Role, Text: cue.Text})
	if cue.Tip != "" {
		h.state.Tips = append([]string{cue.Tip}, h.state.Tips...)
	}
	if cue.Role == RoleRep {
		h.state.RepTalk += cue.talkSeconds()
	} else {
		h.state.CustomerTalk += cue.talkSeconds()
	}
}

// StartRecording begins advancing the clock. It is a no-op once recording or
// after Stop.
func (h *Handle) StartRecording() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Stopped {
		return
	}
	h.state.Recording = true
}

// Stop cancels the feed and waits for its goroutine to exit. No state changes
// happen after Stop returns. Safe to call more than once.
func (h *Handle) Stop() {
	h.once.Do(func() {
		h.mu.Lock()
		h.state.Stopped = true
		h.mu.Unlock()
		h.cancel()
		<-h.done
	})
}

// Done is closed when the feed goroutine has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Snapshot returns a copy of the current feed state.
func (h *Handle) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.state
	s.Transcript = append([]Line(nil), h.state.Transcript...)
	s.Tips = append([]string(nil), h.state.Tips...)
	return s
}
