package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/psytests/psytests/internal/app"
	"github.com/psytests/psytests/internal/config"
	"github.com/psytests/psytests/internal/insight"
	"github.com/psytests/psytests/internal/llm"
	"github.com/psytests/psytests/internal/release"
	"github.com/psytests/psytests/internal/scoring"
	"github.com/psytests/psytests/internal/screens/home"
	qscreen "github.com/psytests/psytests/internal/screens/questionnaire"
	"github.com/psytests/psytests/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	bank, err := loadBank(cfg)
	if err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var metrics *llm.Metrics
	if cfg.MetricsAddr != "" {
		metrics = llm.NewMetrics()
		stop := serveMetrics(cfg.MetricsAddr, metrics)
		defer stop()
	}

	return app.Run(app.Options{
		Home: home.Deps{
			Test: qscreen.Deps{
				Bank:     bank,
				Attempts: st.AttemptRepo(),
				Insight:  newInsightService(ctx, cfg, st.EventRepo(), metrics),
				Sampler:  scoring.NewReferenceSampler(),
				Now:      time.Now,
			},
			CheckUpdate: updateCheck(),
		},
		Splash: true,
	})
}

// newInsightService returns nil when insights are disabled or no provider
// is configured. The TUI owns stdout, so diagnostics go to stderr.
func newInsightService(ctx context.Context, cfg config.Config, events store.EventRepo, metrics *llm.Metrics) *insight.Service {
	if !cfg.Insights {
		return nil
	}
	llmCfg, ok := llm.ConfigFromEnv()
	if !ok {
		return nil
	}
	provider, err := llm.NewProvider(ctx, llmCfg, llm.Options{Events: events, Metrics: metrics})
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI commentary will be unavailable.")
		return nil
	}
	return insight.NewService(provider, insight.DefaultConfig())
}

func serveMetrics(addr string, metrics *llm.Metrics) (stop func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintln(os.Stderr, "metrics server:", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// updateCheck is nil for development builds.
func updateCheck() func(context.Context) (string, error) {
	if version == "" || version == "(devel)" {
		return nil
	}
	checker := release.NewChecker(release.WithTimeout(5 * time.Second))
	return func(ctx context.Context) (string, error) {
		status, err := checker.Check(ctx, version)
		if err != nil {
			return "", err
		}
		if !status.UpdateAvailable {
			return "", nil
		}
		return status.Latest, nil
	}
}
