package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"wysiwyg/internal/server"
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cleaning pipelines over HTTP",
		Long: `Serve the paste cleaner and the content serializer over HTTP.

Endpoints:
  POST /clean     {"html": "...", "context": ["b"]} -> {"html": "..."}
  POST /content   {"html": "..."} -> {"content": "..."}
  POST /markdown  {"html": "..."} -> {"markdown": "..."}
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(logrus.WithField("component", "server"))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}
