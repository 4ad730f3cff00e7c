package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gridwatt/gridplan/infra/logger"
	inframetrics "github.com/gridwatt/gridplan/infra/metrics"
	"github.com/gridwatt/gridplan/pkg/export"
)

var (
	planOutPrefix string
	metricsAddr   string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a greedy connection plan under the configured caps",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planOutPrefix, "out", "o", "plan", "output file prefix")
	planCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address after planning")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, pl, buildings, infra, err := setup()
	if err != nil {
		return err
	}
	log := logger.New("plan-command")

	result, err := pl.Plan(ctx, buildings, infra)
	if err != nil {
		return fmt.Errorf("plan: %w", err)
	}
	log.Infof("plan %s: %d/%d buildings connected, total cost %.2f",
		result.PlanID, result.Allocation.BuildingsConnected, buildings.Len(), result.Summary.TotalCost)

	if err := writeFile(planOutPrefix+"_summary.csv", func(f *os.File) error {
		return export.WritePlanCSV(f, result.Allocation.Records)
	}); err != nil {
		return err
	}
	if err := writeFile(planOutPrefix+"_statistics.json", func(f *os.File) error {
		return export.WriteSummaryJSON(f, result.Summary)
	}); err != nil {
		return err
	}
	if err := writeFile(planOutPrefix+"_connection_lines.csv", func(f *os.File) error {
		return export.WriteConnectionLinesCSV(f, result.Allocation.Records, buildings, infra)
	}); err != nil {
		return err
	}

	if metricsAddr != "" {
		log.Infof("serving metrics on %s until interrupted", metricsAddr)
		return inframetrics.StartPromServer(ctx, metricsAddr)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
