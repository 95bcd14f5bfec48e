// Package render draws the published primitives once per render tick.
package render

import (
	"fmt"

	"github.com/OCAP2/painter/internal/primitive"
)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Surface opens the overlay region primitives draw into: full viewport,
// transparent and ignoring input. EndOverlay is only called after a
// successful BeginOverlay.
type Surface interface {
	BeginOverlay(name string) bool
	EndOverlay()
}

// Source is the published snapshot to iterate.
type Source interface {
	Range(fn func(primitive.Primitive))
}

// Dispatcher renders a Source onto a Surface.
type Dispatcher struct {
	name    string
	surface Surface
	source  Source
	logger  Logger
}

// NewDispatcher creates a render dispatcher. name identifies the overlay
// region on the surface.
func NewDispatcher(name string, surface Surface, source Source, logger Logger) *Dispatcher {
	return &Dispatcher{
		name:    name,
		surface: surface,
		source:  source,
		logger:  logger,
	}
}

// Render draws every primitive of the current snapshot. A failure while
// drawing is logged; the overlay region is closed either way.
func (d *Dispatcher) Render() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s failed to draw: %v", d.name, r)
			d.logger.Error("overlay draw failed", "overlay", d.name, "error", err)
		}
	}()

	if !d.surface.BeginOverlay(d.name) {
		return nil
	}
	defer d.surface.EndOverlay()

	drawn := 0
	d.source.Range(func(p primitive.Primitive) {
		p.Draw()
		drawn++
	})
	d.logger.Debug("overlay drawn", "overlay", d.name, "primitives", drawn)
	return nil
}
