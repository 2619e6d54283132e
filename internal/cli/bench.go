package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"

	"github.com/Joeltronics/wordlebot/internal/game"
	"github.com/Joeltronics/wordlebot/internal/solver"
	"github.com/Joeltronics/wordlebot/internal/words"
)

// BenchOptions configures Benchmark.
type BenchOptions struct {
	Limit    int  // play only the first Limit solutions; 0 means all
	Workers  int  // parallel games; 0 means GOMAXPROCS
	MaxTurns int  // give up after this many guesses; 0 means 20
	Progress bool // show a progress bar
}

// BenchResult holds the outcome of a benchmark run.
type BenchResult struct {
	// Turns maps each secret to the guesses it took; 0 means unsolved
	// within MaxTurns.
	Turns    map[string]int
	MaxTurns int
	Elapsed  time.Duration
}

// Benchmark lets the solver play every solution word in parallel.
func Benchmark(ctx context.Context, env Env, opts BenchOptions) (*BenchResult, error) {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = 20
	}
	if _, err := solver.New(env.Cat, env.Oracle, env.Params); err != nil {
		return nil, err
	}

	secrets := env.Cat.Solutions()
	if opts.Limit > 0 && opts.Limit < len(secrets) {
		secrets = secrets[:opts.Limit]
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.Default(int64(len(secrets)), "benchmark")
	} else {
		bar = progressbar.DefaultSilent(int64(len(secrets)))
	}

	start := time.Now()
	turns := make([]int, len(secrets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, secret := range secrets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := solveSilently(env, secret, opts.MaxTurns)
			if err != nil {
				return fmt.Errorf("secret %s: %w", secret, err)
			}
			turns[i] = n
			_ = bar.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	_ = bar.Finish()

	res := &BenchResult{
		Turns:    make(map[string]int, len(secrets)),
		MaxTurns: opts.MaxTurns,
		Elapsed:  time.Since(start),
	}
	for i, s := range secrets {
		res.Turns[s.String()] = turns[i]
	}
	log.Debug().Int("games", len(secrets)).Dur("took", res.Elapsed).Msg("benchmark finished")
	return res, nil
}

// solveSilently plays secret with the solver and returns the number of
// guesses, or 0 when maxTurns is exceeded.
func solveSilently(env Env, secret words.Word, maxTurns int) (int, error) {
	sv, err := solver.New(env.Cat, env.Oracle, env.Params)
	if err != nil {
		return 0, err
	}
	g := game.New(secret, true)
	for turn := 1; turn <= maxTurns; turn++ {
		guess, err := sv.BestGuess()
		if err != nil {
			return 0, err
		}
		pat, state, err := g.ApplyGuess(guess)
		if err != nil {
			return 0, err
		}
		if state == game.StateWon {
			return turn, nil
		}
		if err := sv.AddGuess(guess, pat); err != nil {
			return 0, err
		}
	}
	return 0, nil
}

// Histogram counts games by number of guesses; index 0 is unsolved.
func (r *BenchResult) Histogram() []int {
	h := make([]int, r.MaxTurns+1)
	for _, n := range r.Turns {
		h[n]++
	}
	return h
}

// Report writes the histogram and summary metrics.
func (r *BenchResult) Report(w io.Writer) {
	h := r.Histogram()
	total := len(r.Turns)
	width := len(fmt.Sprint(total))
	cum := 0
	for n := 1; n < len(h); n++ {
		if h[n] == 0 {
			continue
		}
		cum += h[n]
		fmt.Fprintf(w, "%2d: %*d/%d (cum. %*d/%d)\n", n, width, h[n], total, width, cum, total)
	}
	if h[0] > 0 {
		fmt.Fprintf(w, "unsolved: %d/%d\n", h[0], total)
	}
	for _, m := range metrics {
		fmt.Fprintln(w, m.run(r))
	}
	fmt.Fprintf(w, "took %s\n", r.Elapsed.Round(time.Millisecond))
}

type metric interface {
	run(r *BenchResult) string
}

// worstMetric reports the words with the highest badness.
type worstMetric[T constraints.Ordered] struct {
	name    string
	badness func(turns, maxTurns int) T
}

func (m *worstMetric[T]) run(r *BenchResult) string {
	var worst T
	var worstWords []string
	first := true
	for w, n := range r.Turns {
		b := m.badness(n, r.MaxTurns)
		switch {
		case first || worst < b:
			worstWords = []string{w}
			worst = b
			first = false
		case worst == b:
			worstWords = append(worstWords, w)
		}
	}
	sort.Strings(worstWords)
	if len(worstWords) > 20 {
		worstWords = append(worstWords[:20], "...")
	}
	return fmt.Sprintf("%v: %v (%v)", m.name, worst, strings.Join(worstWords, " "))
}

// aggregateMetric reports one number over all games.
type aggregateMetric[T constraints.Integer | constraints.Float] struct {
	name string
	agg  func(h []int) T
}

func (m *aggregateMetric[T]) run(r *BenchResult) string {
	return fmt.Sprintf("%v: %v", m.name, m.agg(r.Histogram()))
}

var metrics = []metric{
	&worstMetric[int]{"worst", func(n, maxTurns int) int {
		if n == 0 {
			return maxTurns + 1
		}
		return n
	}},
	&aggregateMetric[float64]{"average", func(h []int) float64 {
		sum, ct := 0, 0
		for n := 1; n < len(h); n++ {
			sum += n * h[n]
			ct += h[n]
		}
		if ct == 0 {
			return 0
		}
		return float64(sum) / float64(ct)
	}},
	&aggregateMetric[float64]{"not-in-6 %", func(h []int) float64 {
		win, loss := 0, h[0]
		for n := 1; n < len(h); n++ {
			if n <= game.DefaultRows {
				win += h[n]
			} else {
				loss += h[n]
			}
		}
		if win+loss == 0 {
			return 0
		}
		return 100 * float64(loss) / float64(win+loss)
	}},
}
