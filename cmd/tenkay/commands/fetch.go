package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// fetchTimeout bounds a one-off job run
const fetchTimeout = 30 * time.Minute

// fetchCmd runs a single pipeline job immediately
var fetchCmd = &cobra.Command{
	Use:   "fetch [job]",
	Short: "Run a pipeline job once",
	Long: `Runs one pipeline job synchronously and exits.

Jobs:
  filings   - EDGAR filing sync
  earnings  - earnings calendar refresh
  market    - quote snapshots
  press     - press coverage sync
  digest    - newsletter digest assembly

Example:
  go run ./cmd/tenkay fetch filings
  go run ./cmd/tenkay fetch earnings`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"filings", "earnings", "market", "press", "digest"},
	RunE:      runFetch,
}

// jobAliases maps CLI shorthand to scheduler job names
var jobAliases = map[string]string{
	"filings":  "filings_sync",
	"earnings": "earnings_calendar",
	"market":   "market_data",
	"press":    "press_sync",
	"digest":   "digest",
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	jobName, ok := jobAliases[args[0]]
	if !ok {
		return fmt.Errorf("unknown job %q", args[0])
	}

	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	sched, err := d.buildScheduler()
	if err != nil {
		return fmt.Errorf("build scheduler: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	fmt.Printf("Running %s...\n", jobName)
	start := time.Now()

	if err := sched.RunJobAndWait(ctx, jobName); err != nil {
		return fmt.Errorf("job %s failed: %w", jobName, err)
	}

	fmt.Printf("Completed in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
