package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage the job scheduler",
	Long: `Runs the pipeline scheduler daemon or inspects its jobs.

Registered jobs:
  filings_sync      - daily 06:00 UTC (EDGAR filing sync)
  earnings_calendar - daily 05:00 UTC (scheduled earnings dates)
  market_data       - hourly on US trading hours (quote snapshots)
  press_sync        - every 6 hours (news and IR press releases)
  digest            - daily 13:00 UTC (newsletter digests)

Example:
  go run ./cmd/tenkay scheduler start
  go run ./cmd/tenkay scheduler list`,
}

var schedulerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the scheduler daemon",
	RunE:  runScheduler,
}

var schedulerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered jobs",
	RunE:  listJobs,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	sched, err := d.buildScheduler()
	if err != nil {
		return fmt.Errorf("build scheduler: %w", err)
	}

	sched.Start()

	fmt.Println("Scheduler started. Registered jobs:")
	for _, jobName := range sched.JobNames() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	sched, err := d.buildScheduler()
	if err != nil {
		return fmt.Errorf("build scheduler: %w", err)
	}

	fmt.Println("Registered jobs:")
	for _, jobName := range sched.JobNames() {
		fmt.Printf("  - %s\n", jobName)
	}
	return nil
}
