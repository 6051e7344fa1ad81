// Package notify models transient user-facing notices: a message with a
// severity that appears shortly after being posted, stays visible for its
// duration, fades out and is then removed.
package notify

import (
	"sync"
	"time"
)

// Level is the severity of a Notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Display timings. The page script applies the same schedule in the browser.
const (
	DefaultDuration = 3000 * time.Millisecond
	ShowDelay       = 10 * time.Millisecond
	RemoveDelay     = 500 * time.Millisecond
)

// Phase is where a notice is in its display lifecycle.
type Phase int

const (
	PhaseEntering Phase = iota
	PhaseVisible
	PhaseHidden
	PhaseRemoved
)

func (p Phase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseVisible:
		return "visible"
	case PhaseHidden:
		return "hidden"
	default:
		return "removed"
	}
}

// Notice is one message. PostedAt is set when it is added to a Board.
type Notice struct {
	Text     string
	Level    Level
	Duration time.Duration
	PostedAt time.Time
}

// New builds a notice with the default duration. Unknown levels become info.
func New(text string, level Level) Notice {
	switch level {
	case LevelInfo, LevelSuccess, LevelWarning, LevelError:
	default:
		level = LevelInfo
	}
	return Notice{Text: text, Level: level, Duration: DefaultDuration}
}

func Info(text string) Notice    { return New(text, LevelInfo) }
func Success(text string) Notice { return New(text, LevelSuccess) }
func Warning(text string) Notice { return New(text, LevelWarning) }
func Error(text string) Notice   { return New(text, LevelError) }

// WithDuration overrides how long the notice stays visible.
func (n Notice) WithDuration(d time.Duration) Notice {
	if d > 0 {
		n.Duration = d
	}
	return n
}

// DurationMillis is the duration in milliseconds, as the page script expects.
func (n Notice) DurationMillis() int64 {
	return n.duration().Milliseconds()
}

func (n Notice) duration() time.Duration {
	if n.Duration <= 0 {
		return DefaultDuration
	}
	return n.Duration
}

// PhaseAt reports the lifecycle phase at now.
//
//	[PostedAt, +ShowDelay)              entering
//	[+ShowDelay, +Duration)             visible
//	[+Duration, +Duration+RemoveDelay)  hidden (fading out)
//	after that                          removed
func (n Notice) PhaseAt(now time.Time) Phase {
	elapsed := now.Sub(n.PostedAt)
	d := n.duration()
	switch {
	case elapsed < ShowDelay:
		return PhaseEntering
	case elapsed < d:
		return PhaseVisible
	case elapsed < d+RemoveDelay:
		return PhaseHidden
	default:
		return PhaseRemoved
	}
}

// Board collects notices. Every posted notice runs its own lifecycle; nothing
// is queued or replaced.
type Board struct {
	mu      sync.Mutex
	now     func() time.Time
	notices []Notice
}

// NewBoard returns an empty board using the wall clock.
func NewBoard() *Board {
	return &Board{now: time.Now}
}

// NewBoardWithClock is NewBoard with an injectable clock.
func NewBoardWithClock(now func() time.Time) *Board {
	return &Board{now: now}
}

// Post appends n, stamping PostedAt.
func (b *Board) Post(n Notice) Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	n.PostedAt = b.now()
	b.notices = append(b.notices, n)
	return n
}

// Active prunes removed notices and returns the rest in posting order.
func (b *Board) Active() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	kept := b.notices[:0]
	for _, n := range b.notices {
		if n.PhaseAt(now) != PhaseRemoved {
			kept = append(kept, n)
		}
	}
	b.notices = kept
	out := make([]Notice, len(kept))
	copy(out, kept)
	return out
}

// Len returns the number of notices not yet pruned.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.notices)
}
