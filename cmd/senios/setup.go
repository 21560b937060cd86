package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/erparts/go-senios"
	"github.com/erparts/go-senios/config"
	"github.com/erparts/go-senios/ffmpegsource"
	"github.com/erparts/go-senios/reisensource"
)

// app holds what every command needs.
type app struct {
	cfg    config.Config
	logger *log.Logger
}

func setup(c *cli.Context) (*app, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	senios.SetLogger(logger)

	logger.Debug("configured", "backend", cfg.Backend, "media_dir", cfg.MediaDir, "tick", cfg.TickInterval())
	return &app{cfg: cfg, logger: logger}, nil
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.LoadFromFile(path); err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
	}

	if v := c.String("backend"); v != "" {
		cfg.Backend = v
	}
	if v := c.String("ffmpeg-path"); v != "" {
		cfg.FFmpegPath = v
	}
	if v := c.String("media-dir"); v != "" {
		cfg.MediaDir = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger creates a charm logger writing to w. Terminals get the text
// formatter, anything else logfmt.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	formatter := log.LogfmtFormatter
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		formatter = log.TextFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:          "senios",
		Level:           lvl,
		ReportTimestamp: true,
		Formatter:       formatter,
	}), nil
}

func newSource(cfg config.Config) (senios.FrameSource, error) {
	switch cfg.Backend {
	case config.BackendFFmpeg:
		source, err := ffmpegsource.New(ffmpegsource.Options{
			FFmpegPath:  cfg.FFmpegPath,
			FFprobePath: cfg.FFprobePath,
			ReadTimeout: cfg.ReadTimeout(),
		})
		if errors.Is(err, ffmpegsource.ErrFFmpegNotFound) {
			return nil, fmt.Errorf("%w (install ffmpeg or use --backend reisen)", err)
		}
		if err != nil {
			return nil, err
		}
		return source, nil
	case config.BackendReisen:
		return reisensource.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// newPlayback wires a controller and its command loop to surface.
func (a *app) newPlayback(surface senios.Surface) (*senios.Loop, error) {
	source, err := newSource(a.cfg)
	if err != nil {
		return nil, err
	}
	scaler, err := senios.ParseScaler(a.cfg.ScaleFilter)
	if err != nil {
		return nil, err
	}

	clock := senios.NewTickerClock(a.cfg.TickInterval())
	controller := senios.NewController(source, clock, senios.NewPresenterWithScaler(scaler), surface)
	controller.OnStateChange(func(from, to senios.PlaybackState) {
		a.logger.Debug("playback state", "from", from, "to", to)
	})

	loop := senios.NewLoop(controller, 0)
	loop.SetAutoplay(a.cfg.Autoplay)
	return loop, nil
}
