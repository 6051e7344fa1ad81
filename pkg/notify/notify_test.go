package notify

import (
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	n := New("hi", Level("loud"))
	if n.Level != LevelInfo {
		t.Errorf("unknown level: got %q, want info", n.Level)
	}
	if n.Duration != DefaultDuration {
		t.Errorf("Duration: got %v, want %v", n.Duration, DefaultDuration)
	}
	if Success("ok").DurationMillis() != 3000 {
		t.Errorf("DurationMillis: got %d", Success("ok").DurationMillis())
	}
}

func TestNotice_PhaseAt(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	n := Info("x")
	n.PostedAt = t0

	tests := []struct {
		after time.Duration
		want  Phase
	}{
		{0, PhaseEntering},
		{5 * time.Millisecond, PhaseEntering},
		{ShowDelay, PhaseVisible},
		{2999 * time.Millisecond, PhaseVisible},
		{3000 * time.Millisecond, PhaseHidden},
		{3499 * time.Millisecond, PhaseHidden},
		{3500 * time.Millisecond, PhaseRemoved},
	}
	for _, tt := range tests {
		if got := n.PhaseAt(t0.Add(tt.after)); got != tt.want {
			t.Errorf("after %v: got %v, want %v", tt.after, got, tt.want)
		}
	}
}

func TestNotice_WithDuration(t *testing.T) {
	t0 := time.Unix(0, 0)
	n := Error("x").WithDuration(time.Second)
	n.PostedAt = t0
	if got := n.PhaseAt(t0.Add(1200 * time.Millisecond)); got != PhaseHidden {
		t.Errorf("got %v, want hidden", got)
	}
	if Error("x").WithDuration(-1).Duration != DefaultDuration {
		t.Error("non-positive override should be ignored")
	}
}

func TestBoard_AccumulatesAndPrunes(t *testing.T) {
	now := time.Unix(100, 0)
	b := NewBoardWithClock(func() time.Time { return now })

	b.Post(Success("saved"))
	now = now.Add(time.Second)
	b.Post(Warning("deleted"))

	if got := b.Active(); len(got) != 2 {
		t.Fatalf("expected both notices visible at once, got %d", len(got))
	}

	now = now.Add(2600 * time.Millisecond) // first at 3.6s, second at 2.6s
	active := b.Active()
	if len(active) != 1 || active[0].Text != "deleted" {
		t.Fatalf("expected only the second notice, got %+v", active)
	}

	now = now.Add(time.Second)
	if b.Active(); b.Len() != 0 {
		t.Fatalf("expected board to be empty, got %d", b.Len())
	}
}
