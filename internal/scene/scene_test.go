package scene

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/OCAP2/painter/internal/shape"
	"github.com/go-gl/mathgl/mgl32"
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
camera:
  eye: [0, 20, -30]
  target: [0, 0, 0]
  orbit: 10
shapes:
  - name: route
    kind: path
    wkt: LINESTRING Z (0 0 0, 10 0 0, 10 10 1)
    color: yellow
    thickness: 3
  - name: danger
    kind: zone
    wkt: POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0))
    fill: "#ff000040"
    color: red
    thickness: 2
    expireIn: 10s
  - name: aoe
    kind: circle
    wkt: POINT Z (5 5 0)
    radius: 3
    segments: 16
    color: orange
    thickness: 1
    removeIn: 4s
  - name: boss
    kind: marker
    wkt: POINT Z (3 4 2)
    text: Boss
    color: white
    dot: 4
`

func TestParse_Sample(t *testing.T) {
	s, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, [3]float32{0, 20, -30}, s.Camera.Eye)
	assert.Equal(t, float32(60), s.Camera.FOV, "fov defaults to 60")
	assert.Equal(t, float32(10), s.Camera.Orbit)
	require.Len(t, s.Shapes, 4)
	assert.Equal(t, 10*time.Second, s.Shapes[1].ExpireIn)
	assert.Equal(t, 4*time.Second, s.Shapes[2].RemoveIn)
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, s.Shapes)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader("shapes:\n  - kind: path\n    colour: red\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding scene")
}

func TestBuild_Sample(t *testing.T) {
	s, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	now := time.Unix(1_700_000_000, 0)
	entries, err := s.Build(now)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.IsType(t, &shape.Path{}, entries[0].Drawing)
	assert.IsType(t, &shape.Zone{}, entries[1].Drawing)
	assert.IsType(t, &shape.Circle{}, entries[2].Drawing)
	assert.IsType(t, &shape.Marker{}, entries[3].Drawing)

	exp, ok := entries[1].Drawing.State().Expiry()
	require.True(t, ok)
	assert.True(t, exp.Equal(now.Add(10*time.Second)))

	_, ok = entries[0].Drawing.State().Expiry()
	assert.False(t, ok)

	assert.Equal(t, "aoe", entries[2].Name)
	assert.Equal(t, 4*time.Second, entries[2].RemoveIn)
}

func TestShapeBuild_Errors(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  string
	}{
		{"bad wkt", Shape{Kind: KindPath, WKT: "LINESTRING (0 0,"}, "parsing wkt"},
		{"path from point", Shape{Kind: KindPath, WKT: "POINT (1 2)"}, "unsupported geometry"},
		{"zone from line", Shape{Kind: KindZone, WKT: "LINESTRING (0 0, 1 1)"}, "unsupported geometry"},
		{"empty point", Shape{Kind: KindMarker, WKT: "POINT EMPTY"}, "empty POINT"},
		{"circle without radius", Shape{Kind: KindCircle, WKT: "POINT (1 2)"}, "radius"},
		{"unknown kind", Shape{Kind: "arrow", WKT: "POINT (1 2)"}, "unknown shape kind"},
		{"bad colour", Shape{Kind: KindPath, WKT: "LINESTRING (0 0, 1 1)", Color: "octarine"}, "unknown colour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.shape.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuild_ErrorNamesShape(t *testing.T) {
	s := &Scene{Shapes: []Shape{
		{Kind: KindPath, WKT: "LINESTRING (0 0, 1 1)"},
		{Kind: KindMarker, WKT: "LINESTRING (0 0, 1 1)"},
	}}

	_, err := s.Build(time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shape #1")
}

func TestSequence_WorldAxes(t *testing.T) {
	pos, err := point(mustWKT(t, "POINT Z (3 4 2)"))
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{3, 2, 4}, pos)

	pos, err = point(mustWKT(t, "POINT (3 4)"))
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{3, 0, 4}, pos)
}

func TestSequence_DropsClosingPoint(t *testing.T) {
	g := mustWKT(t, "POLYGON ((0 0, 4 0, 4 4, 0 0))")
	ring := sequence(g.MustAsPolygon().ExteriorRing().Coordinates(), true)
	assert.Equal(t, []mgl32.Vec3{{0, 0, 0}, {4, 0, 0}, {4, 0, 4}}, ring)

	g = mustWKT(t, "LINESTRING (0 0, 4 0, 0 0)")
	line := sequence(g.MustAsLineString().Coordinates(), false)
	assert.Len(t, line, 3, "open curves keep every point")
}

func mustWKT(t *testing.T, wkt string) geom.Geometry {
	t.Helper()
	g, err := geom.UnmarshalWKT(wkt)
	require.NoError(t, err)
	return g
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Shapes, 4)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening scene")
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "", want: color.RGBA{}},
		{in: "red", want: color.RGBA{R: 255, A: 255}},
		{in: " LimeGreen ", want: color.RGBA{R: 50, G: 205, B: 50, A: 255}},
		{in: "#0f0", want: color.RGBA{G: 255, A: 255}},
		{in: "#102030", want: color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}},
		{in: "#10203080", want: color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}},
		{in: "#12345", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "octarine", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
