// Command waxload exercises configured rings under synthetic write load
// and reports what the readers managed to keep up with. It is the
// quickest way to size a ring: point it at a config, pick a write rate,
// and watch the lapped rate.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valyala/fastrand"
	"golang.org/x/time/rate"

	"github.com/jaypwindley/wax/config"
	"github.com/jaypwindley/wax/metric"
	"github.com/jaypwindley/wax/poller"
	"github.com/jaypwindley/wax/ring"
	"github.com/jaypwindley/wax/stopwatch"
)

type record struct {
	Seq   uint64
	Value uint32
}

func main() {
	var (
		configPath = flag.String("config", "wax.yaml", "configuration file")
		duration   = flag.Duration("duration", 10*time.Second, "how long to run")
		writeRate  = flag.Float64("rate", 10000, "writes per second per ring")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(logger, *configPath, *duration, *writeRate); err != nil {
		logger.Error("waxload failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath string, duration time.Duration, writeRate float64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	registry := metric.NewRegistry()
	if cfg.Metrics.Enabled {
		server := metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, registry)
		go func() {
			if err := server.Start(); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			_ = server.Stop()
		}()
		logger.Info("metrics server listening", "port", cfg.Metrics.Port, "path", cfg.Metrics.Path)
	}

	var group poller.Group
	rings := make(map[string]*ring.Ring[record])

	for name, rc := range cfg.Rings {
		if !rc.Typed() {
			logger.Info("skipping byte-stride ring", "ring", name)
			continue
		}

		var options []ring.Option
		if rc.Metrics {
			options = append(options, ring.WithMetrics(registry, name))
		}
		r, err := ring.New[record](rc.Capacity, options...)
		if err != nil {
			return err
		}
		rings[name] = r

		// Reads are tallied by the ring's own statistics.
		drain := poller.Drain(r.NewReader(), nil, func(record) error { return nil })
		p, err := poller.New(name, drain,
			poller.WithInterval(10*time.Millisecond),
			poller.WithLogger(logger))
		if err != nil {
			return err
		}
		group.Add(p)

		go write(ctx, r.NewWriter(), writeRate)
		logger.Info("ring under load", "ring", name, "capacity", rc.Capacity,
			"storage_bytes", r.Storage(), "rate", writeRate)
	}

	if len(rings) == 0 {
		return fmt.Errorf("no typed rings configured in %s", configPath)
	}

	sw := stopwatch.New()
	if err := group.StartAll(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	if err := group.StopAll(5 * time.Second); err != nil {
		return err
	}

	logger.Info("load complete", "elapsed", sw.Format(stopwatch.Milliseconds))
	for name, r := range rings {
		s := r.Stats().Summary()
		logger.Info("ring report", "ring", name,
			"writes", s.Writes, "laps", s.Laps, "reads", s.Reads,
			"lapped_reads", s.LappedReads, "lapped_rate", s.LappedRate,
			"write_throughput", s.WriteThroughput)
	}
	return nil
}

func write(ctx context.Context, w *ring.Writer[record], perSecond float64) {
	limiter := rate.NewLimiter(rate.Limit(perSecond), int(perSecond/10)+1)
	var seq uint64
	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		seq++
		w.Put(record{Seq: seq, Value: fastrand.Uint32()})
	}
}
