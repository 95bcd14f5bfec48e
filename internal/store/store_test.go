package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/OCAP2/painter/internal/element"
	"github.com/OCAP2/painter/internal/primitive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopPrimitive struct{ id string }

func (nopPrimitive) Draw() {}

type fakeDrawing struct {
	element.Lifecycle
	id       string
	advanced int
	err      error
}

func (f *fakeDrawing) AdvanceAnimation(now time.Time) {
	f.advanced++
	f.Lifecycle.AdvanceAnimation(now)
}

func (f *fakeDrawing) ToScreenPrimitives(*element.Tick) ([]primitive.Primitive, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []primitive.Primitive{nopPrimitive{id: f.id}}, nil
}

var t0 = time.Unix(1_700_000_000, 0)

func defaults() element.Defaults {
	return element.Defaults{
		DisappearKind:   element.EaseBack,
		TimeToDisappear: 1500 * time.Millisecond,
		WarningLeadTime: 3 * time.Second,
		WarningRatio:    0.8,
		WarningKind:     element.EaseCubic,
	}
}

func tickAt(ts time.Time) *element.Tick {
	return &element.Tick{Now: ts}
}

func ids(prims []primitive.Primitive) []string {
	out := make([]string, len(prims))
	for i, p := range prims {
		out[i] = p.(nopPrimitive).id
	}
	return out
}

func TestStore_AddStampsDefaults(t *testing.T) {
	s := New()
	d := &fakeDrawing{id: "a"}

	s.Add(d, defaults())

	assert.Equal(t, defaults(), d.Defaults())
	assert.Equal(t, 1, s.Len())
}

func TestStore_SweepKeepsProductionOrder(t *testing.T) {
	s := New()
	for _, id := range []string{"a", "b", "c"} {
		s.Add(&fakeDrawing{id: id}, defaults())
	}

	prims, err := s.Sweep(tickAt(t0))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(prims))
}

func TestStore_SweepAdvancesEveryDrawing(t *testing.T) {
	s := New()
	a, b := &fakeDrawing{id: "a"}, &fakeDrawing{id: "b"}
	s.Add(a, defaults())
	s.Add(b, defaults())
	s.MarkDead(b, t0)

	_, err := s.Sweep(tickAt(t0.Add(time.Second)))
	require.NoError(t, err)
	assert.Equal(t, 1, a.advanced)
	assert.Equal(t, 1, b.advanced)
}

func TestStore_RemovedAfterDisappearDuration(t *testing.T) {
	s := New()
	a, b := &fakeDrawing{id: "a"}, &fakeDrawing{id: "b"}
	s.Add(a, defaults())
	s.Add(b, defaults())

	assert.True(t, s.MarkDead(a, t0))
	assert.False(t, s.MarkDead(a, t0.Add(time.Second)), "second mark is a no-op")

	prims, err := s.Sweep(tickAt(t0.Add(time.Second)))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(prims), "still fading")
	assert.Equal(t, 2, s.Len())

	prims, err = s.Sweep(tickAt(t0.Add(1500 * time.Millisecond)))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(prims), "exactly at the duration is not past it")

	prims, err = s.Sweep(tickAt(t0.Add(2 * time.Second)))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(prims), "the removing sweep still draws it")
	assert.Equal(t, 1, s.Len())

	prims, err = s.Sweep(tickAt(t0.Add(3 * time.Second)))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(prims))
}

func TestStore_RemovalTickDrawsThenCompacts(t *testing.T) {
	s := New()
	var all []*fakeDrawing
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		d := &fakeDrawing{id: id}
		all = append(all, d)
		s.Add(d, defaults())
	}
	s.MarkDead(all[0], t0)
	s.MarkDead(all[2], t0)
	s.MarkDead(all[4], t0)

	prims, err := s.Sweep(tickAt(t0.Add(time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(prims))
	assert.Equal(t, 2, s.Len())

	prims, err = s.Sweep(tickAt(t0.Add(time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d"}, ids(prims))
}

func TestStore_DefaultsDoNotRetroact(t *testing.T) {
	s := New()
	a := &fakeDrawing{id: "a"}
	s.Add(a, defaults())

	longer := defaults()
	longer.TimeToDisappear = time.Hour
	s.Add(&fakeDrawing{id: "b"}, longer)

	s.MarkDead(a, t0)
	_, err := s.Sweep(tickAt(t0.Add(2 * time.Second)))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestStore_ExpiryMarksDead(t *testing.T) {
	s := New()
	a := &fakeDrawing{id: "a"}
	s.Add(a, defaults())
	a.ExpireAt(t0)

	_, err := s.Sweep(tickAt(t0.Add(-time.Second)))
	require.NoError(t, err)
	_, dead := a.DeadTime()
	assert.False(t, dead)

	_, err = s.Sweep(tickAt(t0.Add(time.Second)))
	require.NoError(t, err)
	deadAt, dead := a.DeadTime()
	require.True(t, dead)
	assert.True(t, deadAt.Equal(t0), "dead-time is the scheduled expiry")

	_, err = s.Sweep(tickAt(t0.Add(2 * time.Second)))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestStore_ErrorAbortsWithoutRemoval(t *testing.T) {
	s := New()
	a := &fakeDrawing{id: "a"}
	boom := errors.New("boom")
	s.Add(a, defaults())
	s.Add(&fakeDrawing{id: "b", err: boom}, defaults())
	s.MarkDead(a, t0)

	prims, err := s.Sweep(tickAt(t0.Add(time.Minute)))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, prims)
	assert.Equal(t, 2, s.Len())
}

func TestStore_Clear(t *testing.T) {
	s := New()
	s.Add(&fakeDrawing{id: "a"}, defaults())
	s.Clear()

	prims, err := s.Sweep(tickAt(t0))
	require.NoError(t, err)
	assert.Empty(t, prims)
	assert.Equal(t, 0, s.Len())
}

func TestStore_ConcurrentAddDuringSweep(t *testing.T) {
	s := New()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d := &fakeDrawing{id: "x"}
				s.Add(d, defaults())
				s.MarkDead(d, t0)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := s.Sweep(tickAt(t0.Add(time.Second)))
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 400, s.Len())
	_, err := s.Sweep(tickAt(t0.Add(time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}
