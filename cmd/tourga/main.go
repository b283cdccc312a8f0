// SPDX-License-Identifier: MIT

// Command tourga optimizes a closed tour over random or CSV cities from the
// command line. Environment variables (TOURGA_*) set the defaults; flags
// override them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/tourga/config"
	"github.com/katalvlaran/tourga/distance"
	"github.com/katalvlaran/tourga/ga"
	"github.com/katalvlaran/tourga/report"
	"github.com/katalvlaran/tourga/store"
	"github.com/katalvlaran/tourga/tour"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "tourga:", err)
		os.Exit(1)
	}
}

type options struct {
	cities   int
	width    float64
	height   float64
	csvPath  string
	outPath  string
	runs     int
	paced    bool
	dbPath   string
	logEvery int
	label    string
	polish   bool
	ga       ga.Config
}

func parseFlags(args []string, env *config.Config, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("tourga", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		o   options
		def = env.GAConfig()
	)
	fs.IntVar(&o.cities, "cities", 50, "number of random cities (ignored with -csv)")
	fs.Float64Var(&o.width, "width", 800, "random city area width")
	fs.Float64Var(&o.height, "height", 600, "random city area height")
	fs.StringVar(&o.csvPath, "csv", "", "read cities from an id,x,y CSV file")
	fs.StringVar(&o.outPath, "out", "", "write the best tour of the first run as CSV")
	fs.IntVar(&o.runs, "runs", 1, "independent runs with derived seeds, executed in parallel")
	fs.BoolVar(&o.paced, "paced", false, "wait -interval between generations")
	fs.StringVar(&o.dbPath, "db", env.Store.Path, "record finished runs in this SQLite file")
	fs.IntVar(&o.logEvery, "log-every", 100, "log progress every n generations")
	fs.StringVar(&o.label, "label", "", "label stored with each run")
	fs.BoolVar(&o.polish, "polish", false, "improve each final tour with 2-opt")

	fs.IntVar(&o.ga.PopulationSize, "pop", def.PopulationSize, "population size")
	fs.Float64Var(&o.ga.MutationRate, "mut", def.MutationRate, "swap mutation probability per child")
	fs.IntVar(&o.ga.TournamentSize, "tour", def.TournamentSize, "tournament size")
	fs.IntVar(&o.ga.MaxGenerations, "gens", def.MaxGenerations, "number of generations")
	fs.DurationVar(&o.ga.GenerationInterval, "interval", def.GenerationInterval, "pause between generations with -paced")
	fs.Int64Var(&o.ga.Seed, "seed", def.Seed, "seed of run 0; later runs use derived seeds (0 = default)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.runs < 1 {
		return options{}, fmt.Errorf("-runs must be >= 1, got %d", o.runs)
	}
	if !o.paced {
		o.ga.GenerationInterval = 0
	}
	return o, o.ga.Validate()
}

func loadCities(o options) ([]distance.City, error) {
	if o.csvPath == "" {
		return distance.RandomCities(o.cities, o.width, o.height, tour.NewRNG(o.ga.Seed)), nil
	}
	f, err := os.Open(o.csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return distance.ReadCSV(f)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	env, err := config.Load()
	if err != nil {
		return err
	}
	log := env.NewLogger(stderr)
	slog.SetDefault(log)

	o, err := parseFlags(args, env, stderr)
	if err != nil {
		return err
	}
	cities, err := loadCities(o)
	if err != nil {
		return err
	}

	var st *store.Store
	if o.dbPath != "" {
		if st, err = store.Open(ctx, o.dbPath); err != nil {
			return err
		}
		defer st.Close()
	}

	m, err := distance.Build(cities)
	if err != nil {
		return fmt.Errorf("%w: %w", ga.ErrInvalidInput, err)
	}

	results := make([]ga.Result, o.runs)
	raw := make([]float64, o.runs)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < o.runs; i++ {
		g.Go(func() error {
			cfg := o.ga
			cfg.Seed = tour.RunSeed(o.ga.Seed, i)
			reporters := []ga.Reporter{report.Logger(log.With(slog.Int("run", i)), o.logEvery)}
			if st != nil {
				reporters = append(reporters, store.Recorder(st, store.Meta{Label: o.label, Config: cfg, Cities: len(cities)}, log))
			}
			opts := []ga.Option{
				ga.WithReporter(report.Multi(reporters...)),
				ga.WithLogger(log),
			}
			res, err := solve(gctx, o.paced, cfg, cities, opts)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			raw[i] = res.Length
			if o.polish {
				pol, err := tour.TwoOpt(m, res.Perm, 0)
				if err != nil {
					return fmt.Errorf("run %d: polish: %w", i, err)
				}
				res.Perm, res.Length = pol.Perm, pol.Length
			}
			results[i] = res
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return err
	}

	if err = printResults(stdout, results, raw); err != nil {
		return err
	}
	if o.outPath != "" {
		return writeTour(o.outPath, distance.Ordered(cities, results[0].Perm))
	}
	return nil
}

// solve runs one optimization, paced through a Driver when requested.
func solve(ctx context.Context, paced bool, cfg ga.Config, cities []distance.City, opts []ga.Option) (ga.Result, error) {
	if !paced {
		return ga.Solve(ctx, cfg, cities, opts...)
	}
	s := ga.NewScheduler(opts...)
	if err := s.Start(cfg, cities); err != nil {
		return ga.Result{}, err
	}
	ga.Driver{Scheduler: s}.Run(ctx)
	return s.Snapshot().Result(), nil
}

// printResults writes one line per run and, for batches, a gonum summary.
// raw holds the GA lengths before any polishing.
func printResults(w io.Writer, results []ga.Result, raw []float64) error {
	lengths := make([]float64, len(results))
	for i, r := range results {
		lengths[i] = r.Length
		line := fmt.Sprintf("run %d: length=%.4f generations=%d reason=%s id=%s", i, r.Length, r.Generations, r.Reason, r.RunID)
		if raw[i] != r.Length {
			line += fmt.Sprintf(" ga=%.4f", raw[i])
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(results) < 2 {
		return nil
	}
	mean, std := stat.MeanStdDev(lengths, nil)
	_, err := fmt.Fprintf(w, "summary: best=%.4f mean=%.4f std=%.4f worst=%.4f\n",
		floats.Min(lengths), mean, std, floats.Max(lengths))
	return err
}

func writeTour(path string, ordered []distance.City) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = distance.WriteCSV(f, ordered); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
