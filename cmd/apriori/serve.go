package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/apriori/api"
	"github.com/katalvlaran/apriori/store"
)

var (
	serveDB   string
	servePort string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored mining runs over HTTP",
	Long: `Serve exposes the run store over HTTP:

  GET  /health
  GET  /runs
  GET  /runs/{id}
  GET  /runs/{id}/itemsets
  GET  /runs/{id}/rules?metric=confidence&size=2&limit=10
  POST /mine {"path": "...", "threshold": 100}

Examples:
  apriori serve --db apriori.sqlite --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveDB, "db", "apriori.sqlite", "SQLite database holding mining runs")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	db, err := store.Open(serveDB)
	if err != nil {
		return err
	}
	defer db.Close()

	if err = store.EnsureTables(cmd.Context(), db); err != nil {
		return err
	}

	r := mux.NewRouter()
	if err = api.RegisterRoutes(r, db); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + servePort,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("apriori server listening", "addr", srv.Addr, "db", serveDB)
	if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
