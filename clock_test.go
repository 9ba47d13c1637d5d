package showcase

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestManualClock(t *testing.T) {
	var c ManualClock
	if c.Now() != 0 {
		t.Errorf("Now = %v, want 0", c.Now())
	}
	c.Advance(250 * time.Millisecond)
	c.Advance(-time.Second)
	if c.Now() != 250*time.Millisecond {
		t.Errorf("Now = %v, want 250ms", c.Now())
	}
	c.Set(3 * time.Second)
	if c.Now() != 3*time.Second {
		t.Errorf("Now after Set = %v, want 3s", c.Now())
	}
}

func TestTickClock(t *testing.T) {
	var c tickClock
	if c.Now() != 0 {
		t.Errorf("Now = %v, want 0", c.Now())
	}
	tps := ebiten.TPS()
	for i := 0; i < tps; i++ {
		c.tick()
	}
	if c.Now() != time.Second {
		t.Errorf("Now after %d ticks = %v, want 1s", tps, c.Now())
	}
}

func TestSettleStage(t *testing.T) {
	var s settleStage
	if _, _, ok := s.poll(time.Hour); ok {
		t.Error("empty stage should never fire")
	}

	video := ContentAction{Kind: ContentVideo, Path: "/v.mp4"}
	s.schedule("a", video, time.Second)
	if _, _, ok := s.poll(999 * time.Millisecond); ok {
		t.Error("stage fired before its due time")
	}
	target, action, ok := s.poll(time.Second)
	if !ok || target != "a" || action != video {
		t.Errorf("poll = (%q, %v, %v), want (a, %v, true)", target, action, ok, video)
	}
	if _, _, ok := s.poll(2 * time.Second); ok {
		t.Error("stage fired twice")
	}
}

func TestSettleStageLastWriterWins(t *testing.T) {
	var s settleStage
	s.schedule("a", ContentAction{}, time.Second)
	s.schedule("b", ContentAction{Kind: ContentImage}, 2*time.Second)
	if _, _, ok := s.poll(1500 * time.Millisecond); ok {
		t.Error("replaced stage should not fire at the old due time")
	}
	if target, _, ok := s.poll(2 * time.Second); !ok || target != "b" {
		t.Errorf("poll = (%q, %v), want (b, true)", target, ok)
	}

	s.schedule("c", ContentAction{}, time.Second)
	s.cancel()
	if _, _, ok := s.poll(time.Hour); ok {
		t.Error("cancelled stage fired")
	}
}
