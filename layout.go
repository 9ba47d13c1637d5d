package showcase

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

//go:embed layouts/showcase.yaml
var defaultLayoutYAML []byte

// Layout is a scene description in file form. It stands in for a full asset
// pipeline: every node is a named box, sphere, quad, or group.
type Layout struct {
	Name  string       `yaml:"name"`
	Nodes []LayoutNode `yaml:"nodes"`
}

// LayoutNode describes one node and its subtree.
type LayoutNode struct {
	Name string `yaml:"name"`
	// Shape is one of "group" (or empty), "box", "sphere", "quad".
	Shape string `yaml:"shape"`
	// Size is the full extent: three values for a box, two for a quad.
	Size   []float64 `yaml:"size"`
	Radius float64   `yaml:"radius"`

	Position []float64 `yaml:"position"`
	// Rotation is in degrees, applied X then Y then Z.
	Rotation []float64 `yaml:"rotation"`
	Scale    []float64 `yaml:"scale"`

	Hidden bool `yaml:"hidden"`
	// Color is "#rrggbb" or "#rrggbbaa".
	Color string `yaml:"color"`

	Children []LayoutNode `yaml:"children"`
}

// ParseLayout decodes a YAML layout. Unknown keys are rejected.
func ParseLayout(data []byte) (*Layout, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var l Layout
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return &l, nil
}

// LoadLayout reads a YAML layout file and builds its scene tree.
func LoadLayout(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	l, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", path, err)
	}
	root, err := l.Build()
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", path, err)
	}
	return root, nil
}

// DefaultLayout builds the stock showcase station.
func DefaultLayout() *Node {
	l, err := ParseLayout(defaultLayoutYAML)
	if err != nil {
		panic("showcase: embedded layout: " + err.Error())
	}
	root, err := l.Build()
	if err != nil {
		panic("showcase: embedded layout: " + err.Error())
	}
	return root
}

// Build creates the scene tree. The root is a group named after the layout.
func (l *Layout) Build() (*Node, error) {
	root := NewGroupNode(l.Name)
	for i := range l.Nodes {
		child, err := l.Nodes[i].build(l.Nodes[i].Name)
		if err != nil {
			return nil, err
		}
		root.AddChild(child)
	}
	return root, nil
}

func (ln *LayoutNode) build(path string) (*Node, error) {
	if ln.Name == "" {
		return nil, fmt.Errorf("node under %q has no name", path)
	}
	geom, err := ln.geometry()
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", path, err)
	}

	var n *Node
	if geom == nil {
		n = NewGroupNode(ln.Name)
	} else {
		n = NewMeshNode(ln.Name, geom)
	}
	if n.Position, err = vec3Field("position", ln.Position, Vec3{}); err != nil {
		return nil, fmt.Errorf("node %q: %w", path, err)
	}
	rot, err := vec3Field("rotation", ln.Rotation, Vec3{})
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", path, err)
	}
	n.Rotation = Vec3{mgl64.DegToRad(rot[0]), mgl64.DegToRad(rot[1]), mgl64.DegToRad(rot[2])}
	if n.Scale, err = vec3Field("scale", ln.Scale, Vec3{1, 1, 1}); err != nil {
		return nil, fmt.Errorf("node %q: %w", path, err)
	}
	n.Visible = !ln.Hidden
	if ln.Color != "" {
		if n.Color, err = parseHexColor(ln.Color); err != nil {
			return nil, fmt.Errorf("node %q: %w", path, err)
		}
	}

	for i := range ln.Children {
		child, err := ln.Children[i].build(path + "/" + ln.Children[i].Name)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

func (ln *LayoutNode) geometry() (Geometry, error) {
	switch strings.ToLower(ln.Shape) {
	case "", "group":
		return nil, nil
	case "box":
		if len(ln.Size) != 3 {
			return nil, fmt.Errorf("box size needs 3 values, got %d", len(ln.Size))
		}
		return NewBox(Vec3{}, Vec3{ln.Size[0], ln.Size[1], ln.Size[2]}), nil
	case "quad":
		if len(ln.Size) != 2 {
			return nil, fmt.Errorf("quad size needs 2 values, got %d", len(ln.Size))
		}
		return NewQuadMesh(ln.Size[0], ln.Size[1]), nil
	case "sphere":
		if ln.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive, got %g", ln.Radius)
		}
		return Sphere{Radius: ln.Radius}, nil
	default:
		return nil, fmt.Errorf("unknown shape %q", ln.Shape)
	}
}

func vec3Field(field string, v []float64, def Vec3) (Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return Vec3{v[0], v[1], v[2]}, nil
	default:
		return Vec3{}, fmt.Errorf("%s needs 3 values, got %d", field, len(v))
	}
}

var errBadColor = errors.New("color must be #rrggbb or #rrggbbaa")

func parseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: %q", errBadColor, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", errBadColor, s)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
