package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gridwatt/gridplan/infra/logger"
	"github.com/gridwatt/gridplan/pkg/export"
)

var phasesOutPrefix string

var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "Split the building set into sequential construction phases",
	RunE:  runPhases,
}

func init() {
	phasesCmd.Flags().StringVarP(&phasesOutPrefix, "out", "o", "phased", "output file prefix")
	rootCmd.AddCommand(phasesCmd)
}

func runPhases(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, pl, buildings, infra, err := setup()
	if err != nil {
		return err
	}
	log := logger.New("phases-command")

	result, err := pl.PlanPhases(ctx, buildings, infra)
	if err != nil {
		return fmt.Errorf("phases: %w", err)
	}
	for _, phase := range result.Assignment.Phases {
		log.Infof("phase %d: %d buildings, total cost %.2f",
			phase.Index, len(phase.Members), phase.TotalCost)
	}
	if n := len(result.Assignment.Unassigned); n > 0 {
		log.Warnf("%d buildings unassigned after the last phase", n)
	}

	if err := writeFile(phasesOutPrefix+"_connection_plan.csv", func(f *os.File) error {
		return export.WritePhasesCSV(f, result.Assignment)
	}); err != nil {
		return err
	}
	return writeFile(phasesOutPrefix+"_summary.json", func(f *os.File) error {
		return export.WritePhasesJSON(f, result.Assignment)
	})
}
