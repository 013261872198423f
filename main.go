package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"grid-snake/config"
	"grid-snake/driver"
	"grid-snake/game/types"
	"grid-snake/logging"
	"grid-snake/spectate"
	"grid-snake/stats"
	"grid-snake/ui/terminal"
	"grid-snake/ui/window"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		// usage has already been printed
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	out, closeLog, err := logging.Open(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	pretty := cfg.LogFile == ""
	if cfg.Frontend == config.FrontendTerminal && cfg.LogFile == "" {
		// the board owns the terminal
		out = io.Discard
	}
	log, err := logging.New(out, cfg.LogLevel, pretty)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("exiting")
		closeLog()
		os.Exit(1)
	}
}

func run(cfg config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gs := stats.NewGameStats()
	s := driver.NewSession(driver.Options{
		Grid:   types.Grid{Rows: cfg.Rows, Columns: cfg.Columns},
		Random: types.NewRandom(uint64(seed)),
		Policy: driver.Policy{
			Base: cfg.BaseInterval,
			Min:  cfg.MinInterval,
			Step: cfg.SpeedStep,
		},
		Stats:       gs,
		Logger:      log,
		AutoRestart: cfg.Frontend == config.FrontendHeadless,
		MaxGames:    cfg.MaxGames,
	})
	log.Info().
		Str("session", s.ID).
		Int("rows", cfg.Rows).
		Int("cols", cfg.Columns).
		Int64("seed", seed).
		Str("ui", cfg.Frontend).
		Msg("session started")

	var renderers []driver.Renderer
	serveErr := make(chan error, 1)
	if cfg.SpectateAddr != "" {
		hub := spectate.NewHub(log)
		renderers = append(renderers, hub)
		go func() {
			serveErr <- spectate.Serve(ctx, cfg.SpectateAddr, hub)
		}()
	}

	var err error
	switch cfg.Frontend {
	case config.FrontendWindow:
		err = window.Run(ctx, s, log, renderers...)
	case config.FrontendTerminal:
		err = terminal.Run(ctx, s, log, renderers...)
	default:
		err = s.Run(ctx, renderers...)
	}
	stop()

	if cfg.SpectateAddr != "" {
		if serr := <-serveErr; serr != nil && err == nil {
			err = serr
		}
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	sum := gs.Summary()
	log.Info().
		Int("games", sum.Games).
		Int("wins", sum.Wins).
		Int("best", sum.BestScore).
		Float64("avg", sum.AverageScore).
		Msg("session finished")
	return err
}
