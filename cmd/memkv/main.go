package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/andyeko/memkv/internal/bench"
	"github.com/andyeko/memkv/internal/shell"
	"github.com/andyeko/memkv/store"
)

// Store layouts accepted by --store.
const (
	storeKindGuarded = "guarded"
	storeKindSharded = "sharded"
)

func main() {
	app := &cli.App{
		Name:  "memkv",
		Usage: "in-memory key-value store with a demo walkthrough, an interactive shell, and a workload benchmark",
		Commands: []*cli.Command{
			demoCommand(),
			shellCommand(),
			benchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// storeFlags selects the concurrent store layout for the commands that
// need one.
func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "store",
			Usage: fmt.Sprintf("store layout, %q or %q", storeKindGuarded, storeKindSharded),
			Value: storeKindGuarded,
		},
		&cli.IntFlag{
			Name:  "shards",
			Usage: "shard count for the sharded layout, 0 means one per CPU",
		},
		&cli.StringFlag{
			Name: "hash",
			Usage: fmt.Sprintf("shard hash strategy: %q, %q, or %q",
				store.HashXXHash, store.HashMurmur3, store.HashFNV1a),
		},
	}
}

// buildStore resolves the layout flags into a concurrency-safe store.
// The shard flags only apply to the sharded layout.
func buildStore(c *cli.Context) (store.Store, error) {
	switch kind := c.String("store"); kind {
	case storeKindGuarded:
		return store.NewGuarded(), nil
	case storeKindSharded:
		hash, err := store.ParseHashStrategy(c.String("hash"))
		if err != nil {
			return nil, err
		}

		return store.NewSharded(store.ShardConfig{
			Shards: c.Int("shards"),
			Hash:   hash,
		}), nil
	default:
		return nil, fmt.Errorf("unknown store layout %q; valid values are: %q, %q",
			kind, storeKindGuarded, storeKindSharded)
	}
}

func shellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "interactive session against a fresh store",
		Flags: storeFlags(),
		Action: func(c *cli.Context) error {
			st, err := buildStore(c)
			if err != nil {
				return err
			}

			session, err := shell.NewSession(st)
			if err != nil {
				return err
			}

			return session.Run()
		},
	}
}

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "run a read/update/delete workload and report latency percentiles",
		Flags: append(storeFlags(),
			&cli.StringFlag{
				Name:  "workload",
				Usage: "workload properties file; built-in defaults apply when omitted",
			},
			&cli.IntFlag{
				Name:  "threads",
				Usage: "worker goroutines, overrides the workload file",
			},
			&cli.IntFlag{
				Name:  "ops",
				Usage: "total operations, overrides the workload file",
			},
			&cli.IntFlag{
				Name:  "records",
				Usage: "preloaded entries, overrides the workload file",
			},
			&cli.IntFlag{
				Name:  "target",
				Usage: "total ops/s budget, 0 means unthrottled, overrides the workload file",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "count operations in Prometheus collectors and print their totals",
			},
		),
		Action: runBench,
	}
}

func runBench(c *cli.Context) error {
	w, err := loadWorkload(c)
	if err != nil {
		return err
	}

	st, err := buildStore(c)
	if err != nil {
		return err
	}

	var reg *prometheus.Registry
	if c.Bool("metrics") {
		reg = prometheus.NewRegistry()
		st = store.NewInstrumented(st, reg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := bench.Run(ctx, st, w)
	if err != nil {
		return err
	}

	report.WriteTable(os.Stdout)

	if reg != nil {
		return writeMetricTotals(os.Stdout, reg)
	}

	return nil
}

// loadWorkload reads the workload file when given and applies the flag
// overrides on top, so a file can hold the mix while flags vary the
// scale.
func loadWorkload(c *cli.Context) (*bench.Workload, error) {
	w := bench.DefaultWorkload()

	if path := c.String("workload"); path != "" {
		loaded, err := bench.Load(path)
		if err != nil {
			return nil, err
		}

		w = loaded
	}

	if c.IsSet("threads") {
		w.ThreadCount = c.Int("threads")
	}

	if c.IsSet("ops") {
		w.OperationCount = c.Int("ops")
	}

	if c.IsSet("records") {
		w.RecordCount = c.Int("records")
	}

	if c.IsSet("target") {
		w.Target = c.Int("target")
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// writeMetricTotals prints one line per gathered counter or gauge.
func writeMetricTotals(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	fmt.Fprintln(w, "\nPrometheus totals:")

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			var value float64

			switch {
			case metric.GetCounter() != nil:
				value = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				value = metric.GetGauge().GetValue()
			default:
				continue
			}

			labels := make([]string, 0, len(metric.GetLabel()))
			for _, pair := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", pair.GetName(), pair.GetValue()))
			}

			name := family.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			fmt.Fprintf(w, "  %s = %s\n", name, humanize.Commaf(value))
		}
	}

	return nil
}
