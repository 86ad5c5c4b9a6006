package main

import (
	"github.com/spf13/cobra"

	"github.com/nchouhan/ogni-scan/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		srv := api.NewServer(a.cfg, a.log, a.ingest, a.resolver, a.chat, a.store)
		return srv.ListenAndServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
