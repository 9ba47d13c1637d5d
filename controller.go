package showcase

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Presenter shows the content bound to a target once the camera has settled.
// Audio, video, and overlay presentation live behind this interface.
type Presenter interface {
	Reveal(action ContentAction)
}

// PresenterFunc adapts a plain function to the Presenter interface.
type PresenterFunc func(action ContentAction)

// Reveal calls f(action).
func (f PresenterFunc) Reveal(action ContentAction) { f(action) }

// RippleTrigger receives every click, accepted or not, so the water surface
// can react to it.
type RippleTrigger interface {
	Trigger(screenX, screenY float64, now time.Duration)
}

// EntityStore is the interface for optional ECS integration.
// When set on a Controller, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type EventType
	// Target is the resolved target name (pick, arrive, reveal) or the
	// nearest target behind the blocker (blocked). Empty for misses.
	Target   string
	EntityID uint32
	ScreenX  float64
	ScreenY  float64
	NDC      NDC
	// Distance is the world distance to the target hit (pick, blocked).
	Distance float64
	// Blocker is the name of the occluder that stopped a blocked click.
	Blocker string
	// Action is the content bound to the target (pick, arrive, reveal).
	Action ContentAction
}

// ClickContext describes a resolved click for scene-level handlers.
type ClickContext struct {
	ScreenX, ScreenY float64
	NDC              NDC
	Resolution       Resolution
	// Action is the bound content for picks, zero otherwise.
	Action ContentAction
}

// RevealContext describes a content reveal.
type RevealContext struct {
	Target string
	Action ContentAction
}

// ControllerOptions configures a Controller. The zero value is usable.
type ControllerOptions struct {
	// Presenter receives reveals. nil drops them (handlers still fire).
	Presenter Presenter
	// Ripple is told about every click. Optional.
	Ripple RippleTrigger
	// Store receives interaction events. Optional.
	Store EntityStore
	// Logger receives diagnostics. nil logs warnings and errors to stderr;
	// SetDebugMode lowers that default logger to Debug.
	Logger *slog.Logger
	// DragDeadZone is the pointer travel, in pixels, beyond which a press
	// becomes a camera drag instead of a click. Zero uses 4 px.
	DragDeadZone float64
}

// Controller turns pointer clicks into picks, camera moves, and content
// reveals. It owns no scene state: the Index and Choreographer are passed in.
//
// All methods must be called from the game update goroutine.
type Controller struct {
	index    *Index
	choreo   *Choreographer
	bindings Bindings
	focus    Pose
	pan      time.Duration
	settle   time.Duration

	presenter Presenter
	ripple    RippleTrigger
	store     EntityStore
	handlers  handlerRegistry

	log   *slog.Logger
	level *slog.LevelVar
	debug bool

	pending settleStage
	now     time.Duration

	// Input
	pointer      pointerState
	dragDeadZone float64
	injectQueue  []syntheticPointerEvent
	source       pointerSource
	testRunner   *TestRunner
}

// NewController wires idx and choreo together using the bindings, focused
// pose, and timings from cfg. Panics if choreo is nil.
func NewController(idx *Index, choreo *Choreographer, cfg Config, opts ControllerOptions) *Controller {
	if choreo == nil {
		panic("showcase: controller needs a choreographer")
	}
	c := &Controller{
		index:        idx,
		choreo:       choreo,
		bindings:     cfg.Bindings(),
		focus:        cfg.FocusedPose(),
		pan:          cfg.Timing.Transition(),
		settle:       cfg.Timing.Settle(),
		presenter:    opts.Presenter,
		ripple:       opts.Ripple,
		store:        opts.Store,
		log:          opts.Logger,
		dragDeadZone: opts.DragDeadZone,
	}
	if c.dragDeadZone <= 0 {
		c.dragDeadZone = defaultDragDeadZone
	}
	if c.log == nil {
		c.level = new(slog.LevelVar)
		c.level.Set(slog.LevelWarn)
		c.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.level}))
	}
	c.log = c.log.With("component", "showcase")
	return c
}

// Index returns the scene index the controller picks from.
func (c *Controller) Index() *Index { return c.index }

// SetIndex swaps the scene index, for example after a deferred scene load.
// A pending reveal is kept.
func (c *Controller) SetIndex(idx *Index) { c.index = idx }

// Choreographer returns the camera choreographer.
func (c *Controller) Choreographer() *Choreographer { return c.choreo }

// Camera returns the camera driven by the choreographer.
func (c *Controller) Camera() *Camera { return c.choreo.Camera() }

// SetEntityStore sets the optional ECS bridge.
func (c *Controller) SetEntityStore(store EntityStore) { c.store = store }

// SetPresenter replaces the presenter.
func (c *Controller) SetPresenter(p Presenter) { c.presenter = p }

// SetDebugMode enables or disables debug logging. With the default logger
// this lowers its level to Debug; a caller-supplied logger keeps its own
// level and only gains the per-frame state lines.
func (c *Controller) SetDebugMode(enabled bool) {
	c.debug = enabled
	if c.level == nil {
		return
	}
	if enabled {
		c.level.Set(slog.LevelDebug)
	} else {
		c.level.Set(slog.LevelWarn)
	}
}

// PendingReveal reports the target waiting for its settle delay, if any.
func (c *Controller) PendingReveal() (string, bool) {
	return c.pending.target, c.pending.pending
}

// Update runs one frame at time now: it drains one synthetic input event (or
// polls the real pointer when attached to a window), advances the camera
// transition, and fires a due reveal.
func (c *Controller) Update(now time.Duration) {
	c.now = now
	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	c.processInput()

	wasAnimating := c.choreo.State() == StateAnimating
	c.choreo.Advance(now)
	if c.debug && wasAnimating {
		c.log.Debug("camera",
			"state", c.choreo.State().String(),
			"progress", c.choreo.Progress(),
			"position", fmt.Sprint(c.choreo.Camera().Position))
	}

	if target, action, ok := c.pending.poll(now); ok {
		c.reveal(target, action)
	}
}

// HandleClick resolves a click at viewport pixel (screenX, screenY). Misses,
// blocked clicks, and unbound targets change nothing visible. An accepted
// pick pans the camera to the focused pose and replaces any pending reveal.
// The ripple is stamped with the time passed to the last Update, so callers
// outside the frame loop should call Update first. A panic while resolving
// is logged and the click treated as a miss.
func (c *Controller) HandleClick(screenX, screenY float64) {
	c.triggerRipple(screenX, screenY)

	cam := c.choreo.Camera()
	ndc := cam.ScreenToNDC(screenX, screenY)
	var res Resolution
	c.safeCall("resolve", func() { res = Resolve(ndc, cam, c.index) })
	ctx := ClickContext{ScreenX: screenX, ScreenY: screenY, NDC: ndc, Resolution: res}
	evt := InteractionEvent{ScreenX: screenX, ScreenY: screenY, NDC: ndc}

	switch res.Outcome {
	case OutcomeNoHit:
		c.log.Debug("click missed", "x", screenX, "y", screenY)
		evt.Type = EventMiss
		c.emit(evt)
		c.fireClick(c.handlers.miss, ctx)

	case OutcomeBlocked:
		c.log.Debug("click blocked",
			"target", res.TargetHit.Candidate.Name,
			"blocker", res.Blocker.Candidate.Name,
			"target_distance", res.TargetHit.Distance,
			"blocker_distance", res.Blocker.Distance)
		evt.Type = EventBlocked
		evt.Target = res.TargetHit.Candidate.Name
		evt.EntityID = res.TargetHit.Candidate.EntityID
		evt.Distance = res.TargetHit.Distance
		evt.Blocker = res.Blocker.Candidate.Name
		c.emit(evt)
		c.fireClick(c.handlers.blocked, ctx)

	case OutcomeHit:
		action, ok := c.bindings[res.Target]
		if !ok {
			c.log.Warn("target has no content binding", "target", res.Target)
			return
		}
		c.log.Info("pick", "target", res.Target, "kind", action.Kind.String(), "path", action.Path)

		ctx.Action = action
		evt.Type = EventPick
		evt.Target = res.Target
		evt.EntityID = res.TargetHit.Candidate.EntityID
		evt.Distance = res.TargetHit.Distance
		evt.Action = action
		c.emit(evt)
		c.fireClick(c.handlers.pick, ctx)

		c.pending.cancel()
		target, entityID := res.Target, evt.EntityID
		c.choreo.PanTo(c.focus, c.pan, func() {
			c.arrive(target, entityID, action)
		})
	}
}

// arrive runs when the camera reaches the focused pose and schedules the
// settle stage.
func (c *Controller) arrive(target string, entityID uint32, action ContentAction) {
	c.log.Debug("camera arrived", "target", target)
	c.emit(InteractionEvent{Type: EventArrive, Target: target, EntityID: entityID, Action: action})
	c.pending.schedule(target, action, c.now+c.settle)
}

func (c *Controller) reveal(target string, action ContentAction) {
	c.log.Info("reveal", "target", target, "kind", action.Kind.String(), "path", action.Path)
	entityID := uint32(0)
	if n, ok := c.index.Target(target); ok {
		entityID = n.EntityID
	}
	c.emit(InteractionEvent{Type: EventReveal, Target: target, EntityID: entityID, Action: action})

	ctx := RevealContext{Target: target, Action: action}
	for _, h := range c.handlers.reveal {
		c.safeCall("reveal handler", func() { h.fn(ctx) })
	}
	if c.presenter != nil {
		c.safeCall("presenter", func() { c.presenter.Reveal(action) })
	}
}

func (c *Controller) triggerRipple(sx, sy float64) {
	if c.ripple == nil {
		return
	}
	c.safeCall("ripple", func() { c.ripple.Trigger(sx, sy, c.now) })
}

func (c *Controller) emit(evt InteractionEvent) {
	if c.store == nil {
		return
	}
	c.safeCall("entity store", func() { c.store.EmitEvent(evt) })
}

func (c *Controller) fireClick(handlers []clickHandler, ctx ClickContext) {
	for _, h := range handlers {
		c.safeCall("click handler", func() { h.fn(ctx) })
	}
}

// safeCall runs fn and logs a panic instead of letting it unwind the frame.
func (c *Controller) safeCall(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("recovered panic", "in", what, "panic", fmt.Sprint(r))
		}
	}()
	fn()
}
