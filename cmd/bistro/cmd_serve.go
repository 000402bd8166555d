package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/masudmolla6/bistro-restaurant-server/config"
	"github.com/masudmolla6/bistro-restaurant-server/internal/kernel"
	"github.com/masudmolla6/bistro-restaurant-server/internal/server"
)

var (
	servePort   string
	serveMemory bool
)

// bistro serve: start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		rt, err := boot(ctx, serveMemory)
		if err != nil {
			return err
		}

		port := servePort
		if port == "" {
			port = config.AppPort()
		}

		h := kernel.Handler(rt.deps, kernel.Options{CORSOrigins: config.CORSAllowedOrigins()})
		srv := server.New(":"+port, h)
		for _, r := range rt.resources {
			srv.OnShutdown(r.name, r.close)
		}
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (default APP_PORT or PORT)")
	serveCmd.Flags().BoolVar(&serveMemory, "memory", false, "use an in-memory store instead of MongoDB")
}
