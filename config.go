package showcase

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the static showcase configuration: which scene objects reveal
// what, which ones block picks, and how the camera moves.
type Config struct {
	// Videos, Images, and Documents map target names to content paths.
	Videos    map[string]string `toml:"videos"`
	Images    map[string]string `toml:"images"`
	Documents map[string]string `toml:"documents"`

	// Occluders names the scene objects that block picks behind them.
	Occluders []string `toml:"occluders"`

	Focus  PoseConfig   `toml:"focus"`
	Camera CameraConfig `toml:"camera"`
	Timing TimingConfig `toml:"timing"`
	Ripple RippleConfig `toml:"ripple"`
	Window WindowConfig `toml:"window"`
}

// PoseConfig is a camera pose in file form.
type PoseConfig struct {
	Position [3]float64 `toml:"position"`
	LookAt   [3]float64 `toml:"look_at"`
}

// Pose converts to the runtime pose.
func (p PoseConfig) Pose() Pose {
	return Pose{Position: Vec3(p.Position), LookAt: Vec3(p.LookAt)}
}

// CameraConfig is the camera lens and starting pose.
type CameraConfig struct {
	FovY  float64    `toml:"fov"`
	Near  float64    `toml:"near"`
	Far   float64    `toml:"far"`
	Start PoseConfig `toml:"start"`
}

// TimingConfig holds the two completion stages in milliseconds.
type TimingConfig struct {
	TransitionMS int `toml:"transition_ms"`
	SettleMS     int `toml:"settle_ms"`
}

// Transition returns the camera move duration.
func (t TimingConfig) Transition() time.Duration {
	return time.Duration(t.TransitionMS) * time.Millisecond
}

// Settle returns the wait between arrival and reveal.
func (t TimingConfig) Settle() time.Duration {
	return time.Duration(t.SettleMS) * time.Millisecond
}

// RippleConfig tunes the water effect.
type RippleConfig struct {
	Enabled bool `toml:"enabled"`
	// LifetimeMS is how long one ripple stays visible.
	LifetimeMS int `toml:"lifetime_ms"`
	// Amplitude is the peak displacement as a fraction of the screen size.
	Amplitude float64 `toml:"amplitude"`
	// WaterLevel is the fraction of the screen height, from the top, where
	// the water surface begins.
	WaterLevel float64 `toml:"water_level"`
}

// Lifetime returns the ripple lifetime.
func (r RippleConfig) Lifetime() time.Duration {
	return time.Duration(r.LifetimeMS) * time.Millisecond
}

// WindowConfig sizes the demo window.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// DefaultConfig returns the stock showcase configuration.
func DefaultConfig() Config {
	return Config{
		Videos: map[string]string{
			"screen_3dcompositing":  "/videos/3D_Compositing.mp4",
			"screen_2dcompositing":  "/videos/2D_Compositing.mp4",
			"screen_photogrammetry": "/videos/Photogrammetry.mp4",
		},
		Images: map[string]string{
			"access_screen": "/images/intro_2.png",
		},
		Documents: map[string]string{
			DocumentTargetName: "/documents/resume.pdf",
		},
		Occluders: []string{"bounding_box_l", "bounding_box_b", "bounding_box_t"},
		Focus: PoseConfig{
			Position: [3]float64{0, 0, 10},
			LookAt:   [3]float64{0, 0, 0},
		},
		Camera: CameraConfig{
			FovY: 50,
			Near: 0.1,
			Far:  100,
			Start: PoseConfig{
				Position: [3]float64{0, 0, 10},
				LookAt:   [3]float64{0, 0, 0},
			},
		},
		Timing: TimingConfig{TransitionMS: 1000, SettleMS: 500},
		Ripple: RippleConfig{
			Enabled:    true,
			LifetimeMS: 1000,
			Amplitude:  0.03,
			WaterLevel: 0.65,
		},
		Window: WindowConfig{Width: 1280, Height: 720, Title: "showcase"},
	}
}

// ParseConfig decodes TOML over DefaultConfig, so a file only needs the keys
// it changes. Content tables add to the default bindings; the occluder list
// replaces the default one. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the config as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate reports configuration that would make the showcase misbehave.
func (c Config) Validate() error {
	var errs []error
	if c.Timing.TransitionMS < 0 {
		errs = append(errs, fmt.Errorf("timing.transition_ms must be >= 0, got %d", c.Timing.TransitionMS))
	}
	if c.Timing.SettleMS < 0 {
		errs = append(errs, fmt.Errorf("timing.settle_ms must be >= 0, got %d", c.Timing.SettleMS))
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov must be in (0, 180), got %g", c.Camera.FovY))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes must satisfy 0 < near < far, got near=%g far=%g", c.Camera.Near, c.Camera.Far))
	}
	if c.Focus.Position == c.Focus.LookAt {
		errs = append(errs, errors.New("focus.position must differ from focus.look_at"))
	}
	if c.Ripple.WaterLevel < 0 || c.Ripple.WaterLevel > 1 {
		errs = append(errs, fmt.Errorf("ripple.water_level must be in [0, 1], got %g", c.Ripple.WaterLevel))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	seen := make(map[string]string)
	for _, group := range []struct {
		kind  string
		paths map[string]string
	}{{"videos", c.Videos}, {"images", c.Images}, {"documents", c.Documents}} {
		for name := range group.paths {
			if prev, dup := seen[name]; dup {
				errs = append(errs, fmt.Errorf("target %q bound in both %s and %s", name, prev, group.kind))
			}
			seen[name] = group.kind
		}
	}
	for _, name := range c.Occluders {
		if kind, bound := seen[name]; bound {
			errs = append(errs, fmt.Errorf("occluder %q is also bound in %s", name, kind))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Bindings flattens the content tables into one name-to-action map.
func (c Config) Bindings() Bindings {
	b := make(Bindings, len(c.Videos)+len(c.Images)+len(c.Documents))
	for name, path := range c.Videos {
		b[name] = ContentAction{Kind: ContentVideo, Path: path}
	}
	for name, path := range c.Images {
		b[name] = ContentAction{Kind: ContentImage, Path: path}
	}
	for name, path := range c.Documents {
		b[name] = ContentAction{Kind: ContentDocument, Path: path}
	}
	return b
}

// TargetNames returns every bound target name, sorted.
func (c Config) TargetNames() []string {
	b := c.Bindings()
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FocusedPose returns the single pose every accepted pick moves to.
func (c Config) FocusedPose() Pose { return c.Focus.Pose() }

// NewCamera builds the configured camera at its start pose for a viewport
// of the given size.
func (c Config) NewCamera(width, height float64) *Camera {
	cam := NewCamera(c.Camera.FovY, c.Camera.Near, c.Camera.Far, Rect{Width: width, Height: height})
	cam.SetPose(c.Camera.Start.Pose())
	return cam
}
