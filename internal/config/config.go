package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/OCAP2/painter/internal/element"
	"github.com/OCAP2/painter/internal/painter"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "painter.cfg.json"

// LogConfig holds logging settings
type LogConfig struct {
	Level          string
	Dir            string
	Backend        string // "slog" or "zerolog"
	GraylogEnabled bool
	GraylogAddress string
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled        bool
	ServiceName    string
	BatchTimeout   time.Duration
	MetricInterval time.Duration
	Endpoint       string
	Insecure       bool
}

// SurfaceConfig holds settings of the demo host window or snapshot output
type SurfaceConfig struct {
	Width     int
	Height    int
	Title     string
	OutputDir string
	Frames    int
	FrameStep time.Duration
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./painterlogs")
	viper.SetDefault("log.backend", "slog")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "painter")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.metricInterval", "30s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("painter.asyncUpdate", true)
	viper.SetDefault("painter.removeGroundMissPoints", true)
	viper.SetDefault("painter.drawingHeight", 3.0)
	viper.SetDefault("painter.sampleLength", 0.5)
	viper.SetDefault("painter.timeToDisappear", "1.5s")
	viper.SetDefault("painter.disappearAnimation", "back")
	viper.SetDefault("painter.defaultWarningTime", "3s")
	viper.SetDefault("painter.warningRatio", 0.8)
	viper.SetDefault("painter.warningAnimation", "cubic")

	viper.SetDefault("surface.width", 1280)
	viper.SetDefault("surface.height", 720)
	viper.SetDefault("surface.title", "painter")
	viper.SetDefault("surface.outputDir", "./frames")
	viper.SetDefault("surface.frames", 30)
	viper.SetDefault("surface.frameStep", "100ms")

	viper.SetDefault("scene", "scene.yaml")
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetLogConfig returns the logging settings.
func GetLogConfig() LogConfig {
	return LogConfig{
		Level:          viper.GetString("logLevel"),
		Dir:            viper.GetString("logsDir"),
		Backend:        strings.ToLower(viper.GetString("log.backend")),
		GraylogEnabled: viper.GetBool("graylog.enabled"),
		GraylogAddress: viper.GetString("graylog.address"),
	}
}

// GetOTelConfig returns the OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:        viper.GetBool("otel.enabled"),
		ServiceName:    viper.GetString("otel.serviceName"),
		BatchTimeout:   viper.GetDuration("otel.batchTimeout"),
		MetricInterval: viper.GetDuration("otel.metricInterval"),
		Endpoint:       viper.GetString("otel.endpoint"),
		Insecure:       viper.GetBool("otel.insecure"),
	}
}

// GetSurfaceConfig returns the demo host surface settings.
func GetSurfaceConfig() SurfaceConfig {
	return SurfaceConfig{
		Width:     viper.GetInt("surface.width"),
		Height:    viper.GetInt("surface.height"),
		Title:     viper.GetString("surface.title"),
		OutputDir: viper.GetString("surface.outputDir"),
		Frames:    viper.GetInt("surface.frames"),
		FrameStep: viper.GetDuration("surface.frameStep"),
	}
}

// GetPainterSettings returns the painter settings. Unknown easing names are
// reported as an error.
func GetPainterSettings() (painter.Settings, error) {
	disappear, err := element.ParseEase(viper.GetString("painter.disappearAnimation"))
	if err != nil {
		return painter.Settings{}, fmt.Errorf("painter.disappearAnimation: %w", err)
	}
	warning, err := element.ParseEase(viper.GetString("painter.warningAnimation"))
	if err != nil {
		return painter.Settings{}, fmt.Errorf("painter.warningAnimation: %w", err)
	}

	return painter.Settings{
		AsyncUpdate:            viper.GetBool("painter.asyncUpdate"),
		RemoveGroundMissPoints: viper.GetBool("painter.removeGroundMissPoints"),
		DrawingHeight:          float32(viper.GetFloat64("painter.drawingHeight")),
		SampleLength:           float32(viper.GetFloat64("painter.sampleLength")),
		TimeToDisappear:        viper.GetDuration("painter.timeToDisappear"),
		DisappearKind:          disappear,
		DefaultWarningTime:     viper.GetDuration("painter.defaultWarningTime"),
		WarningRatio:           float32(viper.GetFloat64("painter.warningRatio")),
		WarningKind:            warning,
	}, nil
}

// Watch calls fn with the reloaded painter settings whenever the config file
// changes. Invalid edits are passed to onErr and the old settings stay.
func Watch(fn func(painter.Settings), onErr func(error)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		s, err := GetPainterSettings()
		if err != nil {
			if onErr != nil {
				onErr(fmt.Errorf("reloading %s: %w", e.Name, err))
			}
			return
		}
		fn(s)
	})
	viper.WatchConfig()
}
