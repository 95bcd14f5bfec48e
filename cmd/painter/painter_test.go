package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/OCAP2/painter/internal/config"
	"github.com/OCAP2/painter/internal/painter"
	"github.com/OCAP2/painter/internal/projection"
	"github.com/OCAP2/painter/internal/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScene = `
camera:
  eye: [0, 10, -20]
  target: [0, 0, 0]
  orbit: 90
shapes:
  - name: route
    kind: path
    wkt: LINESTRING (-5 0, 5 0)
    color: yellow
    thickness: 3
  - name: zone
    kind: zone
    wkt: POLYGON ((-2 -2, 2 -2, 2 2, -2 2, -2 -2))
    fill: "#ff000060"
    color: red
    thickness: 2
    removeIn: 200ms
  - name: label
    kind: marker
    wkt: POINT Z (0 0 2)
    text: hello
    color: white
    dot: 3
`

func TestOrbitCamera_TargetAtScreenCentre(t *testing.T) {
	cam := newOrbitCamera(scene.Camera{Eye: [3]float32{0, 10, -20}, FOV: 60}, mgl32.Vec2{800, 600})
	frame := projection.NewFrame(cam, nil, projection.Settings{})

	pos, ok := frame.WorldToScreen(mgl32.Vec3{0, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 400, pos[0], 0.5)
	assert.InDelta(t, 300, pos[1], 0.5)

	_, ok = frame.WorldToScreen(mgl32.Vec3{0, 10, -40})
	assert.False(t, ok, "points behind the eye are rejected")
}

func TestOrbitCamera_Advance(t *testing.T) {
	cam := newOrbitCamera(scene.Camera{Eye: [3]float32{0, 5, -10}, Orbit: 90, FOV: 60}, mgl32.Vec2{1, 1})

	cam.Advance(1)

	eye := cam.Eye()
	assert.InDelta(t, 5, eye[1], 1e-4, "height is kept")
	assert.InDelta(t, 10, mgl32.Vec2{eye[0], eye[2]}.Len(), 1e-4, "distance is kept")
	assert.InDelta(t, 0, eye[2], 1e-4)
}

func TestFlatGround_Raycast(t *testing.T) {
	g := flatGround{height: 1}

	hit, ok := g.Raycast(mgl32.Vec3{3, 11, 4}, mgl32.Vec3{0, -1, 0}, 20)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{3, 1, 4}, hit)

	_, ok = g.Raycast(mgl32.Vec3{0, 30, 0}, mgl32.Vec3{0, -1, 0}, 20)
	assert.False(t, ok, "beyond max distance")

	_, ok = g.Raycast(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, -1, 0}, 20)
	assert.False(t, ok, "plane above the origin")

	_, ok = g.Raycast(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{1, 0, 0}, 20)
	assert.False(t, ok, "parallel ray")
}

func TestSnapshot_WritesFramesAndRemovesTimedDrawings(t *testing.T) {
	sc, err := scene.Parse(strings.NewReader(testScene))
	require.NoError(t, err)

	dir := t.TempDir()
	cfg := config.SurfaceConfig{
		Width:     160,
		Height:    120,
		OutputDir: dir,
		Frames:    5,
		FrameStep: time.Second,
	}
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	frames, err := snapshot(sc, cfg, painter.DefaultSettings(), logger)
	require.NoError(t, err)
	assert.Equal(t, 5, frames)

	files, err := filepath.Glob(filepath.Join(dir, AppName+"_*.png"))
	require.NoError(t, err)
	assert.Len(t, files, 5)
	for _, f := range files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	assert.Contains(t, logs.String(), "scene loaded")
	assert.Contains(t, logs.String(), "drawing removed")
}

func TestStepClock(t *testing.T) {
	start := time.Unix(100, 0)
	c := &stepClock{now: start}

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start.Add(time.Second), c.Advance(time.Second))
	assert.Equal(t, start.Add(time.Second), c.Now())
}
