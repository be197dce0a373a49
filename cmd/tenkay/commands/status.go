package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// statusCmd reports backend health: database, redis, data coverage
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend status",
	Long: `Checks database and Redis connectivity and summarizes stored
data per company.

Example:
  go run ./cmd/tenkay status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health, err := d.db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("database health check: %w", err)
	}

	fmt.Println("Database:")
	fmt.Printf("  healthy:       %v\n", health.Healthy)
	fmt.Printf("  response time: %s\n", health.ResponseTime)
	fmt.Printf("  connections:   %d/%d (idle %d)\n",
		health.Stats.TotalConns, health.Stats.MaxConns, health.Stats.IdleConns)

	fmt.Println("Redis:")
	fmt.Printf("  enabled: %v\n", d.redis.Enabled())

	companyList, err := d.companyRepo.GetEnabled(ctx)
	if err != nil {
		return fmt.Errorf("load companies: %w", err)
	}

	counts, err := d.filingRepo.CountByCompany(ctx)
	if err != nil {
		return fmt.Errorf("count filings: %w", err)
	}

	fmt.Printf("Companies (%d enabled):\n", len(companyList))
	for _, c := range companyList {
		fmt.Printf("  %-6s %-30s filings: %d\n", c.Ticker, c.Name, counts[c.ID])
	}

	return nil
}
