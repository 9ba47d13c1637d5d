package showcase

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Clock reports elapsed time since an arbitrary fixed origin.
type Clock interface {
	Now() time.Duration
}

// ManualClock is a Clock advanced by hand. Tests and scripted runs use it to
// make transitions deterministic.
type ManualClock struct {
	now time.Duration
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration { return c.now }

// Advance moves the clock forward by d. Negative values are ignored.
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Duration) { c.now = t }

// tickClock derives time from the number of ebiten updates, so the showcase
// stays in lock-step with the game loop even when frames are dropped.
type tickClock struct {
	ticks int64
}

func (c *tickClock) tick() { c.ticks++ }

func (c *tickClock) Now() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Duration(c.ticks) * time.Second / time.Duration(tps)
}

// settleStage is the single pending wait between camera arrival and the
// content reveal. Scheduling replaces whatever was pending.
type settleStage struct {
	pending bool
	target  string
	action  ContentAction
	due     time.Duration
}

func (s *settleStage) schedule(target string, action ContentAction, due time.Duration) {
	*s = settleStage{pending: true, target: target, action: action, due: due}
}

func (s *settleStage) cancel() { *s = settleStage{} }

// poll reports whether the stage has elapsed at now, clearing it if so.
func (s *settleStage) poll(now time.Duration) (string, ContentAction, bool) {
	if !s.pending || now < s.due {
		return "", ContentAction{}, false
	}
	target, action := s.target, s.action
	s.cancel()
	return target, action, true
}
