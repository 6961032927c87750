package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"tilemerge/communication/server"
	"tilemerge/config"
	"tilemerge/engine"
	"tilemerge/experiments"
	"tilemerge/experiments/metrics"
	"tilemerge/player"
	"tilemerge/searcher"
	"tilemerge/searcher/agent"
)

func main() {
	mode := flag.String("mode", "auto", "auto, play, remote, serve, experiment or throughput")
	configPath := flag.String("config", "", "Optional config file")
	depth := flag.Int("depth", 0, "Moves per rollout, counting the first move")
	rollouts := flag.Int("rollouts", 0, "Rollouts per legal first move")
	goroutines := flag.Int("goroutines", 0, "Number of goroutines for parallel rollouts")
	seed := flag.Uint64("seed", 0, "Seed for tile spawns and rollouts, 0 draws one")
	games := flag.Int("games", 0, "Games per agent config in experiment mode")
	delay := flag.Duration("delay", 0, "Pause between AI moves")
	addr := flag.String("addr", "", "Listen address in serve mode")
	agentURL := flag.String("agent-url", "", "Agent server in remote mode")
	logLevel := flag.String("log-level", "", "Log level")
	maxMoves := flag.Int("max-moves", 0, "Moves per game, 0 plays until game over")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Only flags given on the command line override the loaded config
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "depth":
			cfg.RolloutDepth = *depth
		case "rollouts":
			cfg.Rollouts = *rollouts
		case "goroutines":
			cfg.Goroutines = *goroutines
		case "seed":
			cfg.Seed = *seed
		case "games":
			cfg.ExperimentGames = *games
		case "delay":
			cfg.MoveDelay = *delay
		case "addr":
			cfg.ListenAddr = *addr
		case "agent-url":
			cfg.AgentURL = *agentURL
		case "log-level":
			cfg.LogLevel = *logLevel
		case "max-moves":
			cfg.MaxMoves = *maxMoves
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Seed == 0 {
		cfg.Seed = frand.Uint64n(math.MaxUint64) + 1
	}
	log.Info().Uint64("seed", cfg.Seed).Str("mode", *mode).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *mode, cfg); err != nil && !errors.Is(err, player.ErrQuit) && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("stopped")
	}
}

func run(ctx context.Context, mode string, cfg *config.Config) error {
	switch mode {
	case "auto":
		e := engine.LocalEngine(agent.NewEvaluationAgent(newRollout(cfg)), cfg.Seed,
			engine.WithMaxMoves(cfg.MaxMoves), engine.WithDelay(cfg.MoveDelay), engine.WithOutput(os.Stdout), engine.WithColor())
		return session(ctx, e)
	case "remote":
		e := engine.RemoteEngine(cfg.AgentURL, cfg.Seed,
			engine.WithMaxMoves(cfg.MaxMoves), engine.WithDelay(cfg.MoveDelay), engine.WithOutput(os.Stdout), engine.WithColor())
		return session(ctx, e)
	case "play":
		return play(ctx, cfg)
	case "serve":
		return server.New(agent.NewEvaluationAgent(newRollout(cfg))).ListenAndServe(ctx, cfg.ListenAddr)
	case "experiment":
		_, err := experiments.RunStrength(ctx, cfg.Goroutines, cfg.RolloutDepth, experimentOptions(cfg))
		return err
	case "throughput":
		_, err := experiments.RunThroughput(ctx, cfg.RolloutDepth, cfg.Rollouts, experimentOptions(cfg))
		return err
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// session restarts an AI game after game over until the user declines.
func session(ctx context.Context, e engine.Engine) error {
	prompt := player.NewConsole(os.Stdin, os.Stdout)
	return engine.Session(ctx, e, func(gameMetric metrics.GameMetric) bool {
		fmt.Printf("Final score: %d, best tile: %d\n", gameMetric.Score, gameMetric.MaxTile)
		return gameMetric.Terminal && prompt.PlayAgain()
	})
}

// play lets a human play on the console, restarting after game over until
// they decline.
func play(ctx context.Context, cfg *config.Config) error {
	p := player.NewConsole(os.Stdin, os.Stdout)
	e := engine.LocalEngine(p, cfg.Seed, engine.WithOutput(os.Stdout), engine.WithColor())
	return engine.Session(ctx, e, func(gameMetric metrics.GameMetric) bool {
		fmt.Printf("Final score: %d, best tile: %d\n", gameMetric.Score, gameMetric.MaxTile)
		return p.PlayAgain()
	})
}

func experimentOptions(cfg *config.Config) experiments.Options {
	return experiments.Options{
		Games:    cfg.ExperimentGames,
		Dir:      cfg.ExperimentDir,
		MaxMoves: cfg.MaxMoves,
		Seed:     cfg.Seed,
	}
}

func newRollout(cfg *config.Config) *searcher.Rollout {
	return searcher.NewRollout(cfg.Goroutines,
		searcher.WithDepth(cfg.RolloutDepth),
		searcher.WithRollouts(cfg.Rollouts),
		searcher.WithSeed(cfg.Seed),
	)
}
