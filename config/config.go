// Package config holds the command line settings and validates them before a
// game is built.
package config

import (
	"flag"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// MinBoardSide is the smallest board edge that can host a freshly spawned snake
const MinBoardSide = 5

// Frontends
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

var (
	ErrBoardTooSmall = errors.New("board must be at least 5x5")
	ErrInterval      = errors.New("min interval must not exceed base interval")
)

type Config struct {
	Rows    int   `validate:"min=5,max=500"`
	Columns int   `validate:"min=5,max=500"`
	Seed    int64 // 0 picks a time based seed

	BaseInterval time.Duration `validate:"gt=0"`
	MinInterval  time.Duration `validate:"gt=0"`
	SpeedStep    time.Duration `validate:"gte=0"`

	Frontend     string `validate:"oneof=window terminal headless"`
	SpectateAddr string `validate:"omitempty,hostname_port"`
	MaxGames     int    `validate:"gte=0"`

	LogLevel string `validate:"oneof=trace debug info warn error"`
	LogFile  string
}

func Default() Config {
	return Config{
		Rows:         20,
		Columns:      20,
		BaseInterval: 200 * time.Millisecond,
		MinInterval:  60 * time.Millisecond,
		SpeedStep:    5 * time.Millisecond,
		Frontend:     FrontendWindow,
		LogLevel:     "info",
	}
}

// Parse reads flags from args (without the program name) on top of Default
// and validates the result.
func Parse(args []string, output io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("grid-snake", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.Rows, "rows", cfg.Rows, "board rows (>= 5)")
	fs.IntVar(&cfg.Columns, "cols", cfg.Columns, "board columns (>= 5)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 for time based")
	fs.DurationVar(&cfg.BaseInterval, "speed", cfg.BaseInterval, "initial tick interval (lower = faster)")
	fs.DurationVar(&cfg.MinInterval, "min-speed", cfg.MinInterval, "fastest tick interval")
	fs.DurationVar(&cfg.SpeedStep, "speed-step", cfg.SpeedStep, "interval reduction per point scored")
	fs.StringVar(&cfg.Frontend, "ui", cfg.Frontend, "frontend: window, terminal or headless")
	fs.StringVar(&cfg.SpectateAddr, "spectate", cfg.SpectateAddr, "serve a read-only websocket stream on host:port")
	fs.IntVar(&cfg.MaxGames, "games", cfg.MaxGames, "stop after this many finished games (restarts do not count), 0 for no limit")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file instead of stderr")

	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parse flags")
	}
	if fs.NArg() > 0 {
		return Config{}, errors.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every field. Board size problems wrap ErrBoardTooSmall.
func (c Config) Validate() error {
	if c.Rows < MinBoardSide || c.Columns < MinBoardSide {
		return errors.Wrapf(ErrBoardTooSmall, "got %dx%d", c.Rows, c.Columns)
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.Errorf("invalid %s: %v fails %q", strings.ToLower(fe.Field()), fe.Value(), fe.Tag())
		}
		return errors.Wrap(err, "validate config")
	}

	if c.MinInterval > c.BaseInterval {
		return errors.Wrapf(ErrInterval, "min %s, base %s", c.MinInterval, c.BaseInterval)
	}
	return nil
}
