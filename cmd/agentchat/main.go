// Command agentchat runs a self-directed multi-agent conversation from a
// YAML configuration and prints each turn to the console.
//
// Usage:
//
//	agentchat run --config config.yaml
//	agentchat version
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/agentchat"
	"github.com/BaSui01/agentchat/chat"
	"github.com/BaSui01/agentchat/config"
	"github.com/BaSui01/agentchat/internal/telemetry"
)

// Version information (injected at build time).
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		if err := runChat(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("agentchat %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  agentchat run --config config.yaml   run a conversation
  agentchat version                    show version information`)
}

func runChat(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to the YAML configuration")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, err := telemetry.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *chat.Metrics
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		metrics = chat.NewMetrics(registry)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		g.Go(func() error {
			logger.Info("metrics listener started", zap.String("addr", cfg.Metrics.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	gc, err := agentchat.NewSelfDirectedChat(cfg,
		agentchat.WithLogger(logger),
		agentchat.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}

	g.Go(func() error {
		defer stop()
		return stepLoop(ctx, gc)
	})

	return g.Wait()
}

// stepLoop drives the conversation, printing one line per turn in the form
// [source->recipient] (Suggested candidates: [...]) "content".
func stepLoop(ctx context.Context, gc *chat.GroupChat) error {
	for !gc.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := gc.Step(ctx)
		if err != nil {
			return err
		}

		last, err := gc.History().Last()
		if err != nil {
			return err
		}
		recipient := "None"
		if last.Context.Routing.HasRecipient() {
			recipient = last.Context.Routing.RecipientName()
		}
		candidates := last.Context.CandidateNames()

		fmt.Printf("[%s->%s] (Suggested candidates: [%s]) %q\n----\n",
			msg.Source, recipient, strings.Join(candidates, " "), msg.Text())
	}
	return nil
}
