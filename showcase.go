package showcase

import "github.com/go-gl/mathgl/mgl64"

// Vec3 is the 3D vector type used for positions, directions, and sizes
// throughout the API.
type Vec3 = mgl64.Vec3

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default wireframe color.
var ColorWhite = Color{1, 1, 1, 1}

// Rect is an axis-aligned screen rectangle. The coordinate system has its
// origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Pose is a camera placement: where it sits and the point it looks at.
type Pose struct {
	Position Vec3
	LookAt   Vec3
}

// Group classifies a node for picking. Classification happens once, right
// after the scene is loaded, and never changes afterwards.
type Group uint8

const (
	GroupDecorative Group = iota // ignored by picking (default)
	GroupPickable                // may be the subject of a click action
	GroupOccluder                // blocks picks behind it, never selectable itself
)

// String returns the lower-case group name.
func (g Group) String() string {
	switch g {
	case GroupPickable:
		return "pickable"
	case GroupOccluder:
		return "occluder"
	default:
		return "decorative"
	}
}

// ContentKind identifies what a target reveals once the camera settles.
type ContentKind uint8

const (
	ContentVideo    ContentKind = iota // play a video file
	ContentImage                       // show an image overlay
	ContentDocument                    // show a document (resume) popup
)

// String returns the lower-case kind name.
func (k ContentKind) String() string {
	switch k {
	case ContentVideo:
		return "video"
	case ContentImage:
		return "image"
	case ContentDocument:
		return "document"
	default:
		return "unknown"
	}
}

// ContentAction is the content bound to an interactive target.
type ContentAction struct {
	Kind ContentKind
	Path string
}

// Bindings maps target names to their content actions. It is static
// configuration, never derived from the scene at runtime.
type Bindings map[string]ContentAction

// DocumentTargetName is the reserved name of the document (resume) screen.
// A node with this name is always pickable, even when no binding names it.
const DocumentTargetName = "resume_screen"

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventMiss    EventType = iota // click ray hit no pickable object
	EventBlocked                  // nearest pickable hit sits behind an occluder
	EventPick                     // a visible target was selected
	EventArrive                   // the camera reached the focused pose
	EventReveal                   // the settle delay elapsed and content was revealed
)

// String returns the event name used in log lines.
func (e EventType) String() string {
	switch e {
	case EventMiss:
		return "miss"
	case EventBlocked:
		return "blocked"
	case EventPick:
		return "pick"
	case EventArrive:
		return "arrive"
	case EventReveal:
		return "reveal"
	default:
		return "unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)
