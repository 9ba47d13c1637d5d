package showcase

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultDragDeadZone = 4.0 // pixels

// --- Pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
	button   MouseButton // button captured at press time
}

// pointerSource reports the live pointer position and whether a button is
// held. It is nil until the controller is attached to a window.
type pointerSource func() (sx, sy float64, pressed bool, button MouseButton)

// ebitenPointer reads the mouse through ebiten.
func ebitenPointer() (float64, float64, bool, MouseButton) {
	mx, my := ebiten.CursorPosition()
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		return float64(mx), float64(my), true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		return float64(mx), float64(my), true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		return float64(mx), float64(my), true, MouseButtonMiddle
	}
	return float64(mx), float64(my), false, MouseButtonLeft
}

// AttachMouse makes Update poll the real mouse when no synthetic input is
// queued. Run calls it; headless callers never need to.
func (c *Controller) AttachMouse() {
	c.source = ebitenPointer
}

// --- Handler registry ---

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type revealHandler struct {
	id uint32
	fn func(RevealContext)
}

type handlerRegistry struct {
	pick    []clickHandler
	blocked []clickHandler
	miss    []clickHandler
	reveal  []revealHandler
	nextID  uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPick:
		h.reg.pick = removeClickHandler(h.reg.pick, h.id)
	case EventBlocked:
		h.reg.blocked = removeClickHandler(h.reg.blocked, h.id)
	case EventMiss:
		h.reg.miss = removeClickHandler(h.reg.miss, h.id)
	case EventReveal:
		h.reg.reveal = removeRevealHandler(h.reg.reveal, h.id)
	}
}

func removeClickHandler(s []clickHandler, id uint32) []clickHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = clickHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeRevealHandler(s []revealHandler, id uint32) []revealHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = revealHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) addClick(event EventType, fn func(ClickContext)) CallbackHandle {
	r.nextID++
	h := clickHandler{id: r.nextID, fn: fn}
	switch event {
	case EventPick:
		r.pick = append(r.pick, h)
	case EventBlocked:
		r.blocked = append(r.blocked, h)
	case EventMiss:
		r.miss = append(r.miss, h)
	}
	return CallbackHandle{id: h.id, reg: r, event: event}
}

// --- Scene-level event registration ---

// OnPick registers a callback for accepted picks of bound targets. It runs
// before the camera starts moving.
func (c *Controller) OnPick(fn func(ClickContext)) CallbackHandle {
	return c.handlers.addClick(EventPick, fn)
}

// OnBlocked registers a callback for clicks whose nearest target sits behind
// an occluder.
func (c *Controller) OnBlocked(fn func(ClickContext)) CallbackHandle {
	return c.handlers.addClick(EventBlocked, fn)
}

// OnMiss registers a callback for clicks that hit no target.
func (c *Controller) OnMiss(fn func(ClickContext)) CallbackHandle {
	return c.handlers.addClick(EventMiss, fn)
}

// OnReveal registers a callback fired when content is revealed, just before
// the presenter is called.
func (c *Controller) OnReveal(fn func(RevealContext)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.reveal = append(c.handlers.reveal, revealHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventReveal}
}

// SetDragDeadZone sets the minimum movement in pixels before a press turns
// into a camera drag.
func (c *Controller) SetDragDeadZone(pixels float64) {
	c.dragDeadZone = pixels
}

// --- Input processing ---

// processInput handles at most one synthetic event, otherwise the live
// pointer when one is attached.
func (c *Controller) processInput() {
	if c.processInjectedInput() {
		return
	}
	if c.source == nil {
		return
	}
	sx, sy, pressed, button := c.source()
	c.processPointer(sx, sy, pressed, button)
}

// processPointer runs the press/release state machine. A release that never
// left the drag dead zone is a click; left-button travel beyond it orbits
// the camera and suppresses the click.
func (c *Controller) processPointer(sx, sy float64, pressed bool, button MouseButton) {
	ps := &c.pointer

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = sx, sy
		ps.lastX, ps.lastY = sx, sy
		ps.dragging = false

	case !pressed && ps.down:
		if !ps.dragging && ps.button == MouseButtonLeft {
			c.HandleClick(sx, sy)
		}
		ps.down = false
		ps.dragging = false

	case pressed && ps.down:
		if sx == ps.lastX && sy == ps.lastY {
			return
		}
		if !ps.dragging {
			dx := sx - ps.startX
			dy := sy - ps.startY
			if math.Sqrt(dx*dx+dy*dy) > c.dragDeadZone {
				ps.dragging = true
			}
		}
		if ps.dragging && ps.button == MouseButtonLeft {
			c.orbitBy(sx-ps.lastX, sy-ps.lastY)
		}
		ps.lastX, ps.lastY = sx, sy
	}
}

// orbitBy converts a pointer drag in pixels into an orbit around the look-at
// point: a drag the full viewport height turns the camera once around.
func (c *Controller) orbitBy(dx, dy float64) {
	h := c.Camera().Viewport.Height
	if h <= 0 {
		return
	}
	c.choreo.Orbit(2*math.Pi*dx/h, 2*math.Pi*dy/h)
}
