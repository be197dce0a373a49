package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tenkay/backend/internal/api"
	"github.com/tenkay/backend/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                          - Health check
  GET  /api/upcoming-filings            - Upcoming filings feed
  GET  /api/companies                   - Tracked companies
  GET  /api/companies/{ticker}          - Company detail
  GET  /api/companies/{ticker}/filings  - Filing history
  GET  /api/companies/{ticker}/press    - Press coverage
  GET  /api/companies/{ticker}/market   - Latest quote snapshot
  GET  /api/analyses                    - Published analyses
  GET  /api/analyses/{slug}             - Analysis detail
  GET  /api/me/preferences              - Subscriber preferences
  PUT  /api/me/preferences              - Update preferences
  GET  /api/stream                      - Publish event stream (websocket)

Example:
  go run ./cmd/tenkay api
  go run ./cmd/tenkay api --port 8080 --scheduler=false`,
	RunE: runAPIServer,
}

var (
	apiPort       string
	withScheduler bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
	apiCmd.Flags().BoolVar(&withScheduler, "scheduler", true, "run pipeline jobs in-process")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	h := &api.Handlers{
		Upcoming:    handlers.NewUpcomingHandler(d.filingRepo, d.earningsRepo, d.cache, d.cfg, d.log),
		Companies:   handlers.NewCompanyHandler(d.companyRepo, d.filingRepo, d.log),
		Analyses:    handlers.NewAnalysisHandler(d.contentRepo, d.cache, d.log),
		Press:       handlers.NewPressHandler(d.pressRepo, d.log),
		Market:      handlers.NewMarketHandler(d.marketRepo, d.cache, d.log),
		Subscribers: handlers.NewSubscriberHandler(d.subscriberRepo, d.log),
		Stream:      handlers.NewStreamHandler(d.hub, d.log),
	}

	router := api.NewRouter(h, d.log)
	server := api.New(d.cfg, d.log, router)

	// Pipeline jobs run in-process by default so stream clients see
	// publish events without a separate daemon
	if withScheduler {
		sched, err := d.buildScheduler()
		if err != nil {
			return fmt.Errorf("build scheduler: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	go func() {
		if err := server.Start(); err != nil {
			d.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", d.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
