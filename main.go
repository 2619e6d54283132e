// main.go
//
// wordlebot entry point.
//
// Usage:
//   wordlebot play   [-solution WORD] [-daily] [-auto] [-endless] [-cheat] [-guesses a,b]
//   wordlebot assist [-endless]
//   wordlebot bench  [-n N] [-workers N] [-progress]
//   wordlebot serve
//
// Configuration comes from the environment (see internal/config).

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Joeltronics/wordlebot/internal/cli"
	"github.com/Joeltronics/wordlebot/internal/config"
	"github.com/Joeltronics/wordlebot/internal/daily"
	"github.com/Joeltronics/wordlebot/internal/httpserver"
	"github.com/Joeltronics/wordlebot/internal/match"
	"github.com/Joeltronics/wordlebot/internal/store"
	"github.com/Joeltronics/wordlebot/internal/words"
)

func main() {
	mode := "play"
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		mode, args = args[0], args[1:]
	}

	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if mode != "serve" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cat, err := words.Load(cfg.AnswersFile, cfg.AllowedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	fmt.Fprintf(os.Stderr, "%d total allowed words, %d possible solutions\n", cat.Len(), cat.NumSolutions())

	oracle, err := openOracle(ctx, cfg, cat, mode != "serve")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare lookup table")
	}
	env := cli.Env{Cat: cat, Oracle: oracle, Params: cfg.Solver, In: os.Stdin, Out: os.Stdout}

	switch mode {
	case "play":
		err = runPlay(env, cfg, args)
	case "assist":
		fs := flag.NewFlagSet("assist", flag.ExitOnError)
		endless := fs.Bool("endless", false, "keep going after six guesses")
		_ = fs.Parse(args)
		err = cli.Assist(env, *endless)
	case "bench":
		err = runBench(ctx, env, args)
	case "serve":
		srv := httpserver.New(cat, oracle, httpserver.Options{
			Params:       cfg.Solver,
			Secret:       cfg.SessionSecret,
			SessionTTL:   cfg.SessionTTL,
			DailySalt:    cfg.DailySalt,
			CookieSecure: cfg.CookieSecure,
		})
		log.Info().Str("port", cfg.Port).Msg("starting wordlebot server")
		err = srv.Start(":" + cfg.Port)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q (want play, assist, bench or serve)\n", mode)
		os.Exit(2)
	}
	if err != nil && !cli.IsQuit(err) {
		log.Fatal().Err(err).Str("mode", mode).Msg("exited with error")
	}
}

// openOracle returns the lookup table per TABLE_CACHE_DSN, or direct
// computation when the cache is off.
func openOracle(ctx context.Context, cfg config.Config, cat *words.Catalog, progress bool) (match.Oracle, error) {
	var tables store.TableStore
	switch cfg.TableCacheDSN {
	case config.TableCacheOff:
		return match.Direct{}, nil
	case config.TableCacheMemory:
		tables = store.NewMemoryTables()
	default:
		st, err := store.OpenSQLiteTables(cfg.TableCacheDSN)
		if err != nil {
			return nil, err
		}
		tables = st
	}
	defer tables.Close()
	return match.LoadOrBuild(ctx, cat, tables, progress)
}

func runPlay(env cli.Env, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	solution := fs.String("solution", "", "set the specific solution")
	today := fs.Bool("daily", false, "play today's puzzle")
	auto := fs.Bool("auto", false, "let the solver play")
	endless := fs.Bool("endless", false, "keep going after six guesses")
	cheat := fs.Bool("cheat", false, "show the solution")
	guesses := fs.String("guesses", "", "comma-separated opening guesses")
	_ = fs.Parse(args)

	opts := cli.PlayOptions{Auto: *auto, Endless: *endless, Cheat: *cheat}
	switch {
	case *solution != "":
		w, err := env.Cat.Parse(*solution)
		if err != nil {
			return err
		}
		opts.Secret = w
		fmt.Fprintf(env.Out, "Solution given: %s\n", w)
	case *today:
		now := time.Now()
		opts.Secret = daily.Secret(env.Cat, now, cfg.DailySalt)
		fmt.Fprintf(env.Out, "Daily puzzle #%d (%s)\n", daily.Number(now), daily.DateKey(now))
	}
	if *guesses != "" {
		ws, err := cli.ParseGuesses(env.Cat, strings.Split(*guesses, ","))
		if err != nil {
			return err
		}
		opts.Guesses = ws
	}
	_, err := cli.Play(env, opts)
	return err
}

func runBench(ctx context.Context, env cli.Env, args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	n := fs.Int("n", 0, "play only the first N solutions")
	workers := fs.Int("workers", 0, "parallel games (default GOMAXPROCS)")
	progress := fs.Bool("progress", true, "show progress")
	_ = fs.Parse(args)

	res, err := cli.Benchmark(ctx, env, cli.BenchOptions{Limit: *n, Workers: *workers, Progress: *progress})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return err
	}
	res.Report(env.Out)
	return nil
}
