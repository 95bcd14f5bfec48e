package element

import (
	"math"
	"sync/atomic"
	"time"
)

// warningDepth is how far the alpha dips at the peak of a warning pulse.
const warningDepth = 0.6

// Defaults is the animation configuration an annotation is stamped with when
// it is added. Later config changes never reach annotations already added.
type Defaults struct {
	DisappearKind   EaseFuncType
	TimeToDisappear time.Duration
	WarningLeadTime time.Duration
	WarningRatio    float32
	WarningKind     EaseFuncType
}

// Lifecycle carries the dead-time marker, the defaults snapshot and the
// animation state of an annotation. Embed it in concrete drawings.
//
// Timestamps are stored as Unix nanoseconds; zero means unset.
type Lifecycle struct {
	deadTime atomic.Int64
	expireAt atomic.Int64

	// Only touched by the store, under its lock.
	defaults Defaults
	alpha    float32
}

// State returns l so that embedding types satisfy Drawing. The embedded
// field itself is named Lifecycle, so the accessor cannot share that name.
func (l *Lifecycle) State() *Lifecycle {
	return l
}

// ApplyDefaults stamps the annotation with d.
func (l *Lifecycle) ApplyDefaults(d Defaults) {
	l.defaults = d
	l.alpha = 1
}

// Defaults returns the snapshot taken at add time.
func (l *Lifecycle) Defaults() Defaults {
	return l.defaults
}

// MarkDead records now as the dead-time unless one is already set.
// It reports whether this call set it.
func (l *Lifecycle) MarkDead(now time.Time) bool {
	return l.deadTime.CompareAndSwap(0, now.UnixNano())
}

// DeadTime returns the dead-time and whether it is set.
func (l *Lifecycle) DeadTime() (time.Time, bool) {
	ns := l.deadTime.Load()
	if ns == 0 {
		return time.Time{}, false
	}
	return time.Unix(0, ns), true
}

// ExpireAt schedules the annotation to be marked dead at t. The warning
// animation runs during the lead time before t.
func (l *Lifecycle) ExpireAt(t time.Time) {
	l.expireAt.Store(t.UnixNano())
}

// Expiry returns the scheduled expiry and whether one is set.
func (l *Lifecycle) Expiry() (time.Time, bool) {
	ns := l.expireAt.Load()
	if ns == 0 {
		return time.Time{}, false
	}
	return time.Unix(0, ns), true
}

// Removable reports whether the fade-out after the dead mark has finished.
func (l *Lifecycle) Removable(now time.Time) bool {
	dead, ok := l.DeadTime()
	if !ok {
		return false
	}
	return now.Sub(dead) > l.defaults.TimeToDisappear
}

// Alpha is the opacity computed by the last AdvanceAnimation.
func (l *Lifecycle) Alpha() float32 {
	return l.alpha
}

// AdvanceAnimation recomputes the opacity for now: fading out after the dead
// mark, pulsing during the warning window before a scheduled expiry, opaque
// otherwise.
func (l *Lifecycle) AdvanceAnimation(now time.Time) {
	if dead, ok := l.DeadTime(); ok {
		l.alpha = l.disappearAlpha(now.Sub(dead))
		return
	}

	if exp, ok := l.Expiry(); ok {
		remaining := exp.Sub(now)
		if remaining > 0 && remaining <= l.defaults.WarningLeadTime {
			l.alpha = l.warningAlpha(l.defaults.WarningLeadTime - remaining)
			return
		}
	}

	l.alpha = 1
}

func (l *Lifecycle) disappearAlpha(elapsed time.Duration) float32 {
	if l.defaults.TimeToDisappear <= 0 {
		return 0
	}
	t := float32(elapsed.Seconds() / l.defaults.TimeToDisappear.Seconds())
	return clamp01(1 - l.defaults.DisappearKind.Ease(t))
}

// warningAlpha pulses once per second; the first WarningRatio of every cycle
// dims along the warning curve, the rest stays opaque.
func (l *Lifecycle) warningAlpha(inWindow time.Duration) float32 {
	ratio := float64(l.defaults.WarningRatio)
	if ratio <= 0 {
		return 1
	}
	_, cycle := math.Modf(inWindow.Seconds())
	if cycle >= ratio {
		return 1
	}
	w := l.defaults.WarningKind.Ease(float32(cycle / ratio))
	return clamp01(1 - warningDepth*w)
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
