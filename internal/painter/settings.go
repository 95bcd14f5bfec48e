package painter

import (
	"time"

	"github.com/OCAP2/painter/internal/element"
	"github.com/OCAP2/painter/internal/projection"
)

// Settings is the process-wide painter configuration. It may be replaced at
// any time; drawings keep the animation values they were added with.
type Settings struct {
	AsyncUpdate            bool
	RemoveGroundMissPoints bool
	DrawingHeight          float32
	SampleLength           float32
	TimeToDisappear        time.Duration
	DisappearKind          element.EaseFuncType
	DefaultWarningTime     time.Duration
	WarningRatio           float32
	WarningKind            element.EaseFuncType
}

// DefaultSettings returns the stock configuration.
func DefaultSettings() Settings {
	return Settings{
		AsyncUpdate:            true,
		RemoveGroundMissPoints: true,
		DrawingHeight:          3,
		SampleLength:           0.5,
		TimeToDisappear:        1500 * time.Millisecond,
		DisappearKind:          element.EaseBack,
		DefaultWarningTime:     3 * time.Second,
		WarningRatio:           0.8,
		WarningKind:            element.EaseCubic,
	}
}

// Defaults is the snapshot stamped onto newly added drawings.
func (s Settings) Defaults() element.Defaults {
	return element.Defaults{
		DisappearKind:   s.DisappearKind,
		TimeToDisappear: s.TimeToDisappear,
		WarningLeadTime: s.DefaultWarningTime,
		WarningRatio:    s.WarningRatio,
		WarningKind:     s.WarningKind,
	}
}

// Projection returns the projection engine settings.
func (s Settings) Projection() projection.Settings {
	return projection.Settings{
		SampleLength:     s.SampleLength,
		DrawingHeight:    s.DrawingHeight,
		RemoveGroundMiss: s.RemoveGroundMissPoints,
	}
}
