package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/plantlady/plantlady-api/internal/database"
	"github.com/plantlady/plantlady-api/internal/importer"
	"github.com/spf13/cobra"
)

var (
	importYear int
	importUser string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import historical spreadsheet exports",
}

var importSeedsCmd = &cobra.Command{
	Use:   "seeds <file.csv>",
	Short: "Import a seed-starting sheet",
	Long: `Import a seed-starting CSV export. Varieties are matched by exact
common name and batches by (variety, season), so re-running the same
file creates nothing new. Rows without a plant name are skipped and
listed in the report.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportSeeds,
}

var importCostsCmd = &cobra.Command{
	Use:   "costs <file.csv>",
	Short: "Import a season cost sheet",
	Long: `Import a season cost CSV export. Rows with a missing item name or a
missing, unparseable or zero cost are skipped. Cost rows have no
natural dedup key; re-importing the same file duplicates them.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportCosts,
}

func init() {
	importCmd.PersistentFlags().IntVar(&importYear, "year", time.Now().Year(), "season year to import into")
	importCmd.PersistentFlags().StringVar(&importUser, "user", "", "name of the user who owns the imported records")
	importCmd.MarkPersistentFlagRequired("user")

	importCmd.AddCommand(importSeedsCmd)
	importCmd.AddCommand(importCostsCmd)
	rootCmd.AddCommand(importCmd)
}

func runImportSeeds(cmd *cobra.Command, args []string) error {
	report, err := runImport(args[0], func(im *importer.Importer, f *os.File) (*importer.Report, error) {
		return im.ImportSeedStarting(f, importYear, importUser)
	})
	if err != nil {
		return err
	}

	slog.Info("seed-starting import complete",
		"varieties_created", report.VarietiesCreated,
		"batches_created", report.BatchesCreated,
		"rows_skipped", len(report.Skipped))
	printSkips(report)
	return nil
}

func runImportCosts(cmd *cobra.Command, args []string) error {
	report, err := runImport(args[0], func(im *importer.Importer, f *os.File) (*importer.Report, error) {
		return im.ImportSeasonCosts(f, importYear, importUser)
	})
	if err != nil {
		return err
	}

	slog.Info("cost import complete",
		"costs_imported", report.CostsImported,
		"rows_skipped", len(report.Skipped))
	printSkips(report)
	return nil
}

func runImport(path string, run func(*importer.Importer, *os.File) (*importer.Report, error)) (*importer.Report, error) {
	if _, err := connect(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return run(importer.New(database.DB), f)
}

func printSkips(report *importer.Report) {
	for _, s := range report.Skipped {
		slog.Warn("row skipped", "line", s.Line, "reason", s.Reason)
	}
}
