// Package scheduler runs the per-tick update pipeline: sweep the store, sort
// the resulting primitives and publish them to the draw buffer.
package scheduler

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/OCAP2/painter/internal/element"
	"github.com/OCAP2/painter/internal/primitive"

	"go.opentelemetry.io/otel/metric"
)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Sweeper produces the primitives for one tick.
type Sweeper interface {
	Sweep(tick *element.Tick) ([]primitive.Primitive, error)
}

// Publisher receives each successfully sorted primitive list.
type Publisher interface {
	Publish(items []primitive.Primitive)
}

// TickBuilder snapshots the camera and clock for a sweep. It is only called
// once the sweep guard has been acquired.
type TickBuilder func() (*element.Tick, error)

// Option configures a Scheduler.
type Option func(*config)

type config struct {
	async bool
	meter metric.Meter
}

// Async runs sweeps on a background goroutine instead of inline.
func Async() Option {
	return func(c *config) {
		c.async = true
	}
}

// Scheduler guarantees at most one sweep in flight. Ticks arriving while a
// sweep runs are dropped, never queued.
type Scheduler struct {
	sweeper   Sweeper
	publisher Publisher
	logger    Logger

	async   atomic.Bool
	running atomic.Bool
	wg      sync.WaitGroup

	lastPublished atomic.Int64

	// OTEL metrics
	completed metric.Int64Counter
	dropped   metric.Int64Counter
	failed    metric.Int64Counter
	duration  metric.Float64Histogram
	published metric.Int64ObservableGauge
}

// New creates a Scheduler.
// Metrics go to the global OTel meter unless WithMeter says otherwise.
func New(sweeper Sweeper, publisher Publisher, logger Logger, opts ...Option) (*Scheduler, error) {
	cfg := &config{meter: defaultMeter()}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Scheduler{
		sweeper:   sweeper,
		publisher: publisher,
		logger:    logger,
	}
	s.async.Store(cfg.async)

	m := cfg.meter

	var err error

	s.completed, err = m.Int64Counter(
		"painter.sweeps.completed",
		metric.WithDescription("Sweeps that published a new buffer"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating completed counter: %w", err)
	}

	s.dropped, err = m.Int64Counter(
		"painter.sweeps.dropped",
		metric.WithDescription("Ticks dropped because a sweep was in progress"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dropped counter: %w", err)
	}

	s.failed, err = m.Int64Counter(
		"painter.sweeps.failed",
		metric.WithDescription("Sweeps abandoned because of an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	s.duration, err = m.Float64Histogram(
		"painter.sweep.duration",
		metric.WithDescription("Time spent sweeping, sorting and publishing"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	s.published, err = m.Int64ObservableGauge(
		"painter.primitives.published",
		metric.WithDescription("Primitives in the last published buffer"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating published gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(s.published, s.lastPublished.Load())
			return nil
		},
		s.published,
	)
	if err != nil {
		return nil, fmt.Errorf("registering published callback: %w", err)
	}

	return s, nil
}

// SetAsync switches between inline and background sweeps for later ticks.
func (s *Scheduler) SetAsync(async bool) {
	s.async.Store(async)
}

// Running reports whether a sweep is in flight.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// Tick starts a sweep unless one is already running. It reports whether the
// tick was accepted.
func (s *Scheduler) Tick(build TickBuilder) bool {
	if !s.running.CompareAndSwap(false, true) {
		s.dropped.Add(context.Background(), 1)
		s.logger.Debug("sweep in progress, dropping tick")
		return false
	}

	if s.async.Load() {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.run(build)
		}()
		return true
	}

	s.run(build)
	return true
}

// Wait blocks until a background sweep in flight has finished.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) run(build TickBuilder) {
	defer s.running.Store(false)

	start := time.Now()
	n, err := s.sweep(build)
	elapsed := time.Since(start)

	if err != nil {
		s.failed.Add(context.Background(), 1)
		s.logger.Error("sweep failed, keeping previous buffer", "duration", elapsed, "error", err)
		return
	}

	s.lastPublished.Store(int64(n))
	s.completed.Add(context.Background(), 1)
	s.duration.Record(context.Background(), float64(elapsed.Microseconds())/1000)
}

// sweep runs one pass. Panics from drawings or providers are turned into
// errors so the tick is abandoned as a whole.
func (s *Scheduler) sweep(build TickBuilder) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sweep panicked: %v", r)
		}
	}()

	tick, err := build()
	if err != nil {
		return 0, fmt.Errorf("building tick: %w", err)
	}

	prims, err := s.sweeper.Sweep(tick)
	if err != nil {
		return 0, fmt.Errorf("sweeping drawings: %w", err)
	}

	Sort(prims)
	s.publisher.Publish(prims)
	return len(prims), nil
}

// Sort orders primitives by draw tier, keeping production order within a tier.
func Sort(prims []primitive.Primitive) {
	slices.SortStableFunc(prims, func(a, b primitive.Primitive) int {
		return cmp.Compare(primitive.Tier(a), primitive.Tier(b))
	})
}
