package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/creastat/assistant/config"
	"github.com/creastat/assistant/controller"
	"github.com/creastat/assistant/logger"
	"github.com/creastat/assistant/session"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "assistant",
		Short:        "Chat with the ULSS 9 Scaligera website assistant",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./assistant.yaml)")
	root.AddCommand(newChatCmd(&configPath))
	return root
}

func newChatCmd(configPath *string) *cobra.Command {
	var (
		baseURL string
		html    bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if baseURL != "" {
				cfg.Gateway.BaseURL = baseURL
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			l := logger.New(cfg.Log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.Metrics.Addr != "" {
				srv := serveMetrics(cfg.Metrics.Addr)
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			gw, err := newGateway(cfg.Gateway)
			if err != nil {
				return err
			}
			store, err := newPrefsStore(cfg.Prefs)
			if err != nil {
				return err
			}
			defer store.Close()

			l.Info().
				Str("backend", gw.BaseURL()).
				Str("prefs", cfg.Prefs.Driver).
				Msg("starting chat session")

			ctl := controller.New(gw, store,
				controller.WithLogger(l),
				controller.WithStorageKey(cfg.Prefs.Key),
				controller.WithLimits(session.Limits{
					MaxMessages: cfg.History.MaxMessages,
					MaxTokens:   cfg.History.MaxTokens,
				}),
			)
			defer ctl.Close()

			r := newREPL(ctl, cmd.InOrStdin(), cmd.OutOrStdout(), html)
			return r.run(ctx)
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "backend origin, overrides gateway.base_url")
	cmd.Flags().BoolVar(&html, "html", false, "print assistant answers as HTML")
	return cmd
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server error")
		}
	}()
	log.Info().Str("addr", addr).Msg("serving metrics")
	return srv
}
