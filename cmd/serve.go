package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Annallisboa/QA-app/internal/metrics"
	"github.com/Annallisboa/QA-app/internal/pipeline"
	"github.com/Annallisboa/QA-app/internal/store"
	"github.com/Annallisboa/QA-app/internal/web"
)

var (
	serveHost       string
	servePort       int
	serveAskTimeout time.Duration
	serveNoMetrics  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question and map web app",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("host") {
			serveHost = cfg.Server.Host
		}
		if !cmd.Flags().Changed("port") {
			servePort = cfg.Server.Port
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := metrics.New(reg)

		p, err := pipeline.NewDefault(client, logger, m.Hooks())
		if err != nil {
			return err
		}

		sessions := store.New(cfg.Server.SessionTTL.Duration, cfg.DefaultMap())
		defer sessions.Close()

		srv := &web.Server{
			Runner:     p,
			Sessions:   sessions,
			Defaults:   cfg.DefaultMap(),
			Logger:     logger,
			Addr:       fmt.Sprintf("%s:%d", serveHost, servePort),
			Metrics:    m,
			AskTimeout: serveAskTimeout,
		}
		if !serveNoMetrics {
			srv.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().DurationVar(&serveAskTimeout, "ask-timeout", 3*time.Minute, "Upper bound for answering one question (0 disables)")
	serveCmd.Flags().BoolVar(&serveNoMetrics, "no-metrics", false, "Do not expose /metrics")
	rootCmd.AddCommand(serveCmd)
}
