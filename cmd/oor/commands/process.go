package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LCLAMEDIA/openorders/internal/pipeline"
	"github.com/LCLAMEDIA/openorders/internal/store"
)

var dryRun bool

var processCmd = &cobra.Command{
	Use:   "process <report.xlsx>",
	Short: "Process one open-orders report",
	Long: `Process a single open-orders report: load the customer mapping and robot
inventory, annotate every row and write the processed workbook plus a text
summary into the exports directory.

With --dry-run, the statistics are printed but no files are written and no
run is recorded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		var st *store.Store
		if !dryRun {
			if st, err = store.New(cfg.DBPath()); err != nil {
				return err
			}
			defer st.Close()
		}

		processor := pipeline.New(cfg, st, log)
		outcome := processor.Process(context.Background(), filepath.Base(args[0]), data, dryRun)

		fmt.Print(pipeline.RenderSummary(outcome.Stats))
		if outcome.OutputPath != "" {
			fmt.Printf("Written to: %s\n", outcome.OutputPath)
		}
		if outcome.ErrorKind != "" {
			return fmt.Errorf("%s: %s", outcome.ErrorKind, outcome.Stats.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report statistics without writing artifacts")
}
