// Package scene loads annotation layouts from YAML files.
//
// Each shape carries its geometry as WKT. WKT X and Y span the ground plane
// and Z is the height, so "POINT Z (3 4 1)" is world {3, 1, 4} with Y up.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/OCAP2/painter/internal/element"
	"github.com/OCAP2/painter/internal/shape"
	"github.com/go-gl/mathgl/mgl32"
	geom "github.com/peterstace/simplefeatures/geom"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedGeometry is returned when a shape's WKT type does not match
// its kind.
var ErrUnsupportedGeometry = errors.New("unsupported geometry")

// Shape kinds.
const (
	KindPath   = "path"
	KindZone   = "zone"
	KindCircle = "circle"
	KindMarker = "marker"
)

// Camera describes the demo host viewpoint.
type Camera struct {
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
	FOV    float32    `yaml:"fov"`   // degrees
	Orbit  float32    `yaml:"orbit"` // degrees per second around Target
}

// Shape is one annotation entry.
type Shape struct {
	Name      string        `yaml:"name"`
	Kind      string        `yaml:"kind"`
	WKT       string        `yaml:"wkt"`
	Color     string        `yaml:"color"`
	Fill      string        `yaml:"fill"`
	Thickness float32       `yaml:"thickness"`
	Radius    float32       `yaml:"radius"`
	Segments  int           `yaml:"segments"`
	Text      string        `yaml:"text"`
	Scale     float32       `yaml:"scale"`
	Dot       float32       `yaml:"dot"`
	ExpireIn  time.Duration `yaml:"expireIn"`
	RemoveIn  time.Duration `yaml:"removeIn"`
}

// Scene is a parsed scene file.
type Scene struct {
	Camera Camera  `yaml:"camera"`
	Shapes []Shape `yaml:"shapes"`
}

// Entry is a built drawing plus the host-driven removal delay, zero when
// the drawing stays until expiry or shutdown.
type Entry struct {
	Name     string
	Drawing  element.Drawing
	RemoveIn time.Duration
}

// Load reads and parses the scene file at path.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scene: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a scene from r.
func Parse(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	if s.Camera.FOV == 0 {
		s.Camera.FOV = 60
	}
	return &s, nil
}

// Build turns every shape into a drawing. Shapes with ExpireIn set are
// scheduled to expire relative to now.
func (s *Scene) Build(now time.Time) ([]Entry, error) {
	entries := make([]Entry, 0, len(s.Shapes))
	for i, sh := range s.Shapes {
		d, err := sh.Build()
		if err != nil {
			name := sh.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("shape %s: %w", name, err)
		}
		if sh.ExpireIn > 0 {
			d.State().ExpireAt(now.Add(sh.ExpireIn))
		}
		entries = append(entries, Entry{Name: sh.Name, Drawing: d, RemoveIn: sh.RemoveIn})
	}
	return entries, nil
}

// Build converts a single entry.
func (sh Shape) Build() (element.Drawing, error) {
	g, err := geom.UnmarshalWKT(sh.WKT)
	if err != nil {
		return nil, fmt.Errorf("parsing wkt: %w", err)
	}
	clr, err := ParseColor(sh.Color)
	if err != nil {
		return nil, err
	}
	fill, err := ParseColor(sh.Fill)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(sh.Kind) {
	case KindPath:
		if g.Type() != geom.TypeLineString {
			return nil, fmt.Errorf("%w: path needs a LINESTRING, got %s", ErrUnsupportedGeometry, g.Type())
		}
		return shape.NewPath(sequence(g.MustAsLineString().Coordinates(), false), clr, sh.Thickness), nil

	case KindZone:
		if g.Type() != geom.TypePolygon {
			return nil, fmt.Errorf("%w: zone needs a POLYGON, got %s", ErrUnsupportedGeometry, g.Type())
		}
		ring := g.MustAsPolygon().ExteriorRing().Coordinates()
		return shape.NewZone(sequence(ring, true), fill, clr, sh.Thickness), nil

	case KindCircle:
		center, err := point(g)
		if err != nil {
			return nil, err
		}
		if sh.Radius <= 0 {
			return nil, fmt.Errorf("circle radius must be positive, got %v", sh.Radius)
		}
		return shape.NewCircle(center, sh.Radius, sh.Segments, fill, clr, sh.Thickness), nil

	case KindMarker:
		pos, err := point(g)
		if err != nil {
			return nil, err
		}
		scale := sh.Scale
		if scale == 0 {
			scale = 1
		}
		return shape.NewMarker(pos, sh.Text, clr, scale, sh.Dot), nil

	default:
		return nil, fmt.Errorf("unknown shape kind %q", sh.Kind)
	}
}

func point(g geom.Geometry) (mgl32.Vec3, error) {
	if g.Type() != geom.TypePoint {
		return mgl32.Vec3{}, fmt.Errorf("%w: need a POINT, got %s", ErrUnsupportedGeometry, g.Type())
	}
	c, ok := g.MustAsPoint().Coordinates()
	if !ok {
		return mgl32.Vec3{}, fmt.Errorf("%w: empty POINT", ErrUnsupportedGeometry)
	}
	return toWorld(c), nil
}

// sequence converts WKT coordinates to world points. Closed rings drop the
// repeated closing point.
func sequence(seq geom.Sequence, closed bool) []mgl32.Vec3 {
	n := seq.Length()
	if closed && n > 1 && seq.GetXY(0) == seq.GetXY(n-1) {
		n--
	}
	out := make([]mgl32.Vec3, n)
	for i := 0; i < n; i++ {
		out[i] = toWorld(seq.Get(i))
	}
	return out
}

func toWorld(c geom.Coordinates) mgl32.Vec3 {
	var z float64
	if c.Type.Is3D() {
		z = c.Z
	}
	return mgl32.Vec3{float32(c.X), float32(z), float32(c.Y)}
}
