package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/rekening-koran/internal/api"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			log := logrus.WithField("component", "api")
			h := api.NewHandler(version, log)
			h.IncludeHeader = cfg.Output.IncludeHeader
			h.AllowOrigins = cfg.Server.AllowOrigins
			app := api.NewApp(h, cfg.Server.MaxUploadMB)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				log.Info("shutting down")
				_ = app.Shutdown()
			}()

			log.WithField("addr", cfg.Server.Addr).Info("listening")
			return app.Listen(cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
