package showcase

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScript is returned by LoadTestScript for a script without steps.
var ErrEmptyScript = errors.New("test script has no steps")

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Target string  `json:"target,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected clicks, waits, screenshots, and reveal
// expectations across frames. Attach to a Controller via SetTestRunner.
//
// Supported actions: "click" (x, y), "drag" (fromX, fromY, toX, toY,
// frames), "wait" (frames), "screenshot" (label), and "expect_reveal"
// (target, or empty to expect no reveal yet).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool

	revealed    []string
	failures    []string
	screenshots []string
	handle      CallbackHandle
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Controller via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", ErrEmptyScript)
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "drag", "wait", "screenshot", "expect_reveal":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the controller. The runner's step
// method is called from Update before input is processed each frame.
// Passing nil detaches the current runner.
func (c *Controller) SetTestRunner(runner *TestRunner) {
	if c.testRunner != nil {
		c.testRunner.handle.Remove()
	}
	c.testRunner = runner
	if runner == nil {
		return
	}
	runner.handle = c.OnReveal(func(ctx RevealContext) {
		runner.revealed = append(runner.revealed, ctx.Target)
	})
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Revealed returns the targets revealed since the runner was attached.
func (r *TestRunner) Revealed() []string {
	return r.revealed
}

// Failures returns the failed expectations, in step order.
func (r *TestRunner) Failures() []string {
	return r.failures
}

// takeScreenshots returns and clears the screenshot labels requested since
// the last call.
func (r *TestRunner) takeScreenshots() []string {
	labels := r.screenshots
	r.screenshots = nil
	return labels
}

// step advances the test runner by one frame. Called from Controller.Update.
func (r *TestRunner) step(c *Controller) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(c.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		r.screenshots = append(r.screenshots, st.Label)
	case "click":
		c.InjectClick(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "expect_reveal":
		r.expectReveal(r.cursor-1, st.Target)
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(c.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) expectReveal(stepIdx int, target string) {
	var last string
	if n := len(r.revealed); n > 0 {
		last = r.revealed[n-1]
	}
	if last != target {
		r.failures = append(r.failures,
			fmt.Sprintf("step %d: expected last reveal %q, got %q", stepIdx, target, last))
	}
}
