package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/OCAP2/painter/internal/config"
	"github.com/OCAP2/painter/internal/logging"
	intOtel "github.com/OCAP2/painter/internal/otel"
	"github.com/OCAP2/painter/internal/painter"
	"github.com/OCAP2/painter/internal/scene"
	"go.opentelemetry.io/otel/metric"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

const AppName = "painter"

var (
	// SlogManager is the slog-based logging manager
	SlogManager *logging.SlogManager
	// Logger is the slog logger, also used directly by the host code
	Logger *slog.Logger
	// PainterLogger is handed to the painter; slog or zerolog per log.backend
	PainterLogger painter.Logger

	// OTelProvider is the OpenTelemetry provider (nil if disabled)
	OTelProvider *intOtel.Provider
	// PainterMeter receives sweep metrics; nil falls back to the global provider
	PainterMeter metric.Meter

	SessionStartTime = time.Now()

	closers []io.Closer

	// published reports the size of the live buffer for log context
	published func() int
)

func contextAttrs() []slog.Attr {
	if published == nil {
		return nil
	}
	return []slog.Attr{slog.Int("published", published())}
}

// setup loads the config and wires logging and OTel.
func setup(configDir string) error {
	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(nil, "info", nil)
	Logger = SlogManager.Logger()

	if err := config.Load(configDir); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config", "dir", configDir)
	}

	logCfg := config.GetLogConfig()
	logFile, err := logging.OpenLogFile(logCfg.Dir, AppName, SessionStartTime)
	if err != nil {
		return err
	}
	closers = append(closers, logFile)

	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:        otelCfg.Enabled,
			ServiceName:    otelCfg.ServiceName,
			BatchTimeout:   otelCfg.BatchTimeout,
			MetricInterval: otelCfg.MetricInterval,
			LogWriter:      logFile,
			Endpoint:       otelCfg.Endpoint,
			Insecure:       otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
		}
	}

	var extra []slog.Handler
	if logCfg.GraylogEnabled {
		h, closer, err := logging.NewGELFHandler(logCfg.GraylogAddress, logCfg.Level)
		if err != nil {
			Logger.Error("Failed to connect to Graylog", "error", err)
		} else {
			extra = append(extra, h)
			closers = append(closers, closer)
		}
	}

	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
		PainterMeter = OTelProvider.Meter(AppName)
	}
	SlogManager.SetContextProvider(contextAttrs)
	SlogManager.Setup(logFile, logCfg.Level, otelLogProvider, extra...)
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", logFile.Name())

	switch logCfg.Backend {
	case "zerolog":
		PainterLogger = logging.NewZerologAdapter(
			logging.NewZerolog(os.Stdout, logFile, logCfg.Level, contextAttrs),
		)
	default:
		PainterLogger = Logger
	}
	return nil
}

func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := SlogManager.Flush(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "flushing logs: %v\n", err)
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "shutting down otel: %v\n", err)
		}
	}
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i].Close()
	}
}

// loadScene resolves a relative scene path against the config directory.
func loadScene(configDir string) (*scene.Scene, error) {
	path := config.GetString("scene")
	if !filepath.IsAbs(path) {
		path = filepath.Join(configDir, path)
	}
	return scene.Load(path)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [run|snapshot] [configDir]\n", AppName)
}

func main() {
	mode := "run"
	configDir := "."
	args := os.Args[1:]
	if len(args) > 0 {
		mode = strings.ToLower(args[0])
	}
	if len(args) > 1 {
		configDir = args[1]
	}

	if err := setup(configDir); err != nil {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
		os.Exit(1)
	}
	defer shutdown()

	sc, err := loadScene(configDir)
	if err != nil {
		Logger.Error("Failed to load scene", "error", err)
		shutdown()
		os.Exit(1)
	}

	switch mode {
	case "run":
		err = runWindow(sc)
	case "snapshot":
		var frames int
		frames, err = runSnapshot(sc, config.GetSurfaceConfig())
		if err == nil {
			Logger.Info("Snapshot complete", "frames", frames)
		}
	default:
		usage()
		return
	}
	if err != nil {
		Logger.Error("Painter stopped with error", "mode", mode, "error", err)
		shutdown()
		os.Exit(1)
	}
}
