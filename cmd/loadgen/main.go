package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"room-reservation/internal/handler/middleware"
	"room-reservation/internal/loadgen"
	"room-reservation/internal/pkg/clock"
	"room-reservation/internal/pkg/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := loadgen.DefaultConfig()
	var (
		target   string
		logLevel string
		timeout  time.Duration
	)

	root := &cobra.Command{
		Use:   "loadgen",
		Short: "Replay mixed reservation traffic against a running server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := middleware.NewLogger(config.LogConfig{Level: logLevel, TimeZone: "UTC", TimeFormat: time.RFC3339}).GetSlogLogger()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client := loadgen.NewClient(target, &http.Client{Timeout: timeout})
			runner := loadgen.NewRunner(client, cfg, clock.NewRealClock(), logger)

			logger.Info("Load test started", "target", target, "duration", cfg.Duration, "concurrency", cfg.Concurrency)
			report, err := runner.Run(ctx)
			if err != nil {
				return err
			}
			printReport(cmd, report)
			return nil
		},
	}

	flags := root.Flags()
	flags.StringVar(&target, "target", "http://localhost:8080", "server base URL")
	flags.DurationVarP(&cfg.Duration, "duration", "d", cfg.Duration, "how long to send traffic")
	flags.IntVarP(&cfg.Concurrency, "concurrency", "c", cfg.Concurrency, "requests in flight at once")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	flags.IntVar(&cfg.Warmup, "warmup", cfg.Warmup, "back to back reservations booked before the run")
	flags.Float64Var(&cfg.BadRatio, "bad-ratio", cfg.BadRatio, "share of invalid creates and unknown ids")
	flags.DurationVar(&timeout, "timeout", 5*time.Second, "per request timeout")
	flags.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	for _, op := range []loadgen.Op{loadgen.OpCreate, loadgen.OpRetrieve, loadgen.OpUpdate, loadgen.OpCancel, loadgen.OpAvailabilities} {
		name := "weight-" + strings.ToLower(string(op))
		w := cfg.Weights[op]
		flags.Int(name, w, fmt.Sprintf("relative share of %s requests", op))
	}
	root.PreRunE = func(cmd *cobra.Command, _ []string) error {
		for op := range cfg.Weights {
			w, err := cmd.Flags().GetInt("weight-" + strings.ToLower(string(op)))
			if err != nil {
				return err
			}
			cfg.Weights[op] = w
		}
		return nil
	}
	return root
}

func printReport(cmd *cobra.Command, r loadgen.Report) {
	out := cmd.OutOrStdout()
	for _, op := range r.Ops {
		statuses := make([]string, 0, len(op.Statuses))
		for _, code := range op.SortedStatuses() {
			statuses = append(statuses, fmt.Sprintf("%d=%d", code, op.Statuses[code]))
		}
		fmt.Fprintf(out, "%-15s avg time = %6.2fms  requests = %d  [%s]\n",
			op.Op, float64(op.Avg.Microseconds())/1000, op.Requests, strings.Join(statuses, " "))
	}
	fmt.Fprintf(out, "number of requests = %d\n", r.Requests)
	fmt.Fprintf(out, "transport failures = %d\n", r.Failures)
	fmt.Fprintf(out, "execution time = %dms\n", r.Elapsed.Milliseconds())
	fmt.Fprintf(out, "requests per second = %.0f\n", r.PerSecond)
}
