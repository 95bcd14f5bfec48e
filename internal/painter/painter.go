// Package painter keeps world-space drawings projected onto a screen overlay.
//
// Two independent host ticks drive it: Update re-projects every live drawing
// and publishes a fresh primitive list, Draw renders the last published list.
// AddDrawing and RemoveDrawing are safe from any goroutine.
package painter

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/OCAP2/painter/internal/drawbuf"
	"github.com/OCAP2/painter/internal/element"
	"github.com/OCAP2/painter/internal/primitive"
	"github.com/OCAP2/painter/internal/projection"
	"github.com/OCAP2/painter/internal/render"
	"github.com/OCAP2/painter/internal/scheduler"
	"github.com/OCAP2/painter/internal/store"
	"go.opentelemetry.io/otel/metric"
)

var (
	// ErrMissingDependency is returned when a required provider is nil.
	ErrMissingDependency = errors.New("missing painter dependency")
	// ErrClosed aborts sweeps that start after Close.
	ErrClosed = errors.New("painter closed")
)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Dependencies holds all providers the painter talks to.
type Dependencies struct {
	Camera  projection.Camera
	Ground  projection.Ground // optional
	Clock   Clock             // defaults to SystemClock
	Canvas  primitive.Canvas
	Surface render.Surface
	Logger  Logger       // defaults to slog.Default()
	Meter   metric.Meter // defaults to the global meter provider
}

// Painter owns the drawing store, the update pipeline and the draw buffer.
type Painter struct {
	name     string
	deps     Dependencies
	settings atomic.Pointer[Settings]

	store     *store.Store
	buffer    *drawbuf.Buffer
	scheduler *scheduler.Scheduler
	renderer  *render.Dispatcher

	// closeMu is read-held by Update for the whole inline sweep so Close can
	// wait it out.
	closeMu sync.RWMutex
	closed  atomic.Bool
}

// New creates a painter. name identifies its overlay region.
func New(name string, deps Dependencies, settings Settings) (*Painter, error) {
	switch {
	case deps.Camera == nil:
		return nil, fmt.Errorf("%w: camera", ErrMissingDependency)
	case deps.Canvas == nil:
		return nil, fmt.Errorf("%w: canvas", ErrMissingDependency)
	case deps.Surface == nil:
		return nil, fmt.Errorf("%w: surface", ErrMissingDependency)
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	p := &Painter{
		name:   name,
		deps:   deps,
		store:  store.New(),
		buffer: drawbuf.New(),
	}
	p.settings.Store(&settings)

	opts := []scheduler.Option{scheduler.WithMeter(deps.Meter)}
	if settings.AsyncUpdate {
		opts = append(opts, scheduler.Async())
	}
	sched, err := scheduler.New(p.store, p.buffer, deps.Logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}
	p.scheduler = sched
	p.renderer = render.NewDispatcher(name, deps.Surface, p.buffer, deps.Logger)

	return p, nil
}

// Settings returns the current settings.
func (p *Painter) Settings() Settings {
	return *p.settings.Load()
}

// SetSettings replaces the settings. Drawings already added keep their
// animation values; projection and scheduling use s from the next tick.
func (p *Painter) SetSettings(s Settings) {
	p.settings.Store(&s)
	p.scheduler.SetAsync(s.AsyncUpdate)
	p.deps.Logger.Debug("painter settings updated", "painter", p.name, "async", s.AsyncUpdate)
}

// AddDrawing stamps d with the current defaults and starts drawing it.
func (p *Painter) AddDrawing(d element.Drawing) {
	p.store.Add(d, p.Settings().Defaults())
}

// RemoveDrawing starts the fade-out of d. Calling it again is a no-op.
func (p *Painter) RemoveDrawing(d element.Drawing) {
	p.store.MarkDead(d, p.deps.Clock.Now())
}

// Update is the update tick. It reports whether a sweep was started; ticks
// arriving while a sweep is running are dropped.
func (p *Painter) Update() bool {
	p.closeMu.RLock()
	defer p.closeMu.RUnlock()
	if p.closed.Load() {
		return false
	}
	return p.scheduler.Tick(p.buildTick)
}

// Draw is the render tick.
func (p *Painter) Draw() error {
	return p.renderer.Render()
}

// Published returns the primitives the next Draw will render.
func (p *Painter) Published() []primitive.Primitive {
	return p.buffer.Load()
}

// Len returns the number of drawings still held, fading ones included.
func (p *Painter) Len() int {
	return p.store.Len()
}

// Wait blocks until a background sweep in flight has finished.
func (p *Painter) Wait() {
	p.scheduler.Wait()
}

// Close waits for the running sweep and drops every drawing. Later Updates
// are ignored. Calling it again is a no-op.
func (p *Painter) Close() {
	p.closeMu.Lock()
	already := p.closed.Swap(true)
	p.closeMu.Unlock()
	if already {
		return
	}

	p.scheduler.Wait()
	p.store.Clear()
	p.buffer.Publish(nil)
	p.deps.Logger.Info("painter closed", "painter", p.name)
}

func (p *Painter) buildTick() (*element.Tick, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	s := p.Settings()
	return &element.Tick{
		Now:       p.deps.Clock.Now(),
		Projector: projection.NewFrame(p.deps.Camera, p.deps.Ground, s.Projection()),
		Canvas:    p.deps.Canvas,
	}, nil
}
