package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/fxtrainer/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a trainer session over websocket",
	Long: `Run a trainer session and expose it over HTTP.

Endpoints:
  /ws       JSON snapshots out, JSON commands in
  /metrics  Prometheus metrics
  /healthz  liveness probe

Example:
  trainer serve --addr :8080`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().Int64Var(&runSeed, "seed", 0, "random walk seed (overrides config)")
	serveCmd.Flags().BoolVar(&runFollowCoach, "follow-coach", false, "open the coach's suggested tickets automatically")
	serveCmd.Flags().DurationVar(&runDuration, "duration", 0, "stop after this long (0 runs until interrupted)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	tr, err := newSession()
	if err != nil {
		return err
	}
	defer tr.Close()

	ctx, cancel := signalContext(runDuration)
	defer cancel()

	srv := server.New(tr, log)

	runErr := make(chan error, 1)
	go func() { runErr <- tr.Run(ctx) }()

	log.Info("session started", zap.String("session", tr.ID()), zap.String("addr", addr))
	err = srv.ListenAndServe(ctx, addr)
	cancel()
	if rerr := <-runErr; err == nil {
		err = rerr
	}
	return err
}
