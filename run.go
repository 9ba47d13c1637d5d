package showcase

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds optional parameters for Run.
type RunConfig struct {
	// Config is the showcase configuration. nil means DefaultConfig().
	Config *Config
	// Scene is the scene root. nil means an empty scene: every click misses.
	Scene *Node
	// Presenter receives content reveals.
	Presenter Presenter
	// Store receives interaction events.
	Store EntityStore
	// Logger receives diagnostics.
	Logger *slog.Logger
	// Script, when set, drives the session with synthetic input.
	Script *TestRunner
	// ScreenshotDir is where scripted screenshots are written. Empty means
	// "screenshots".
	ScreenshotDir string
	// ExitWhenDone stops the game loop once Script finishes.
	ExitWhenDone bool
	// Debug enables the on-screen overlay and debug logging.
	Debug bool
}

// Game hosts a Controller inside the ebiten game loop. It implements
// ebiten.Game.
type Game struct {
	ctrl     *Controller
	scene    *Node
	ripple   *RippleLayer
	renderer Renderer
	clock    tickClock

	width, height int
	frame         *ebiten.Image

	script        *TestRunner
	exitWhenDone  bool
	screenshotDir string
	debug         bool

	onFrame []func()
}

// NewGame classifies the scene and wires a controller, choreographer,
// camera, and ripple layer from rc.
func NewGame(rc RunConfig) *Game {
	cfg := DefaultConfig()
	if rc.Config != nil {
		cfg = *rc.Config
	}
	w, h := cfg.Window.Width, cfg.Window.Height

	cam := cfg.NewCamera(float64(w), float64(h))
	idx := Classify(rc.Scene, cfg.Bindings(), cfg.Occluders)
	ripple := NewRippleLayer(cfg.Ripple)
	ctrl := NewController(idx, NewChoreographer(cam), cfg, ControllerOptions{
		Presenter: rc.Presenter,
		Ripple:    ripple,
		Store:     rc.Store,
		Logger:    rc.Logger,
	})
	ctrl.SetDebugMode(rc.Debug)
	ctrl.AttachMouse()

	g := &Game{
		ctrl:          ctrl,
		scene:         rc.Scene,
		ripple:        ripple,
		width:         w,
		height:        h,
		script:        rc.Script,
		exitWhenDone:  rc.ExitWhenDone,
		screenshotDir: rc.ScreenshotDir,
		debug:         rc.Debug,
	}
	if g.screenshotDir == "" {
		g.screenshotDir = "screenshots"
	}
	if rc.Script != nil {
		ctrl.SetTestRunner(rc.Script)
	}
	return g
}

// Controller returns the hosted controller.
func (g *Game) Controller() *Controller { return g.ctrl }

// OnFrame registers fn to run at the end of every Update, after the
// controller. ECS systems that consume interaction events hook in here.
func (g *Game) OnFrame(fn func()) {
	g.onFrame = append(g.onFrame, fn)
}

// Update advances the showcase by one tick.
func (g *Game) Update() error {
	g.clock.tick()
	g.ctrl.Update(g.clock.Now())
	if p, ok := g.ctrl.PendingReveal(); ok {
		g.renderer.Highlight = p
	} else if g.ctrl.Choreographer().State() == StateIdle {
		g.renderer.Highlight = ""
	}
	for _, fn := range g.onFrame {
		fn()
	}
	if g.exitWhenDone && g.script != nil && g.script.Done() {
		for _, f := range g.script.Failures() {
			g.ctrl.log.Error("script expectation failed", "detail", f)
		}
		return ebiten.Termination
	}
	return nil
}

// Draw renders the wireframe scene through the ripple layer.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame == nil || g.frame.Bounds() != screen.Bounds() {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(screen.Bounds().Dx(), screen.Bounds().Dy())
	}
	g.frame.Fill(color.RGBA{R: 0x0c, G: 0x0e, B: 0x16, A: 0xff})
	g.renderer.Draw(g.frame, g.scene, g.ctrl.Camera())

	g.ripple.Draw(screen, g.frame, g.clock.Now())
	if g.debug {
		drawDebugOverlay(screen, g.ctrl)
	}
	if g.script != nil {
		g.flushScreenshots(screen, g.script.takeScreenshots())
	}
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Run opens a window and runs the showcase until it is closed (or, with
// ExitWhenDone, until the script finishes).
func Run(rc RunConfig) error {
	cfg := DefaultConfig()
	if rc.Config != nil {
		cfg = *rc.Config
	}
	return RunGame(NewGame(rc), cfg.Window)
}

// RunGame runs an already built Game in a window sized by win.
func RunGame(g *Game, win WindowConfig) error {
	ebiten.SetWindowSize(win.Width, win.Height)
	ebiten.SetWindowTitle(win.Title)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run showcase: %w", err)
	}
	if g.script != nil && len(g.script.Failures()) > 0 {
		return fmt.Errorf("run showcase: %d script expectation(s) failed", len(g.script.Failures()))
	}
	return nil
}
