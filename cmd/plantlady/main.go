package main

import (
	"fmt"
	"os"

	"github.com/plantlady/plantlady-api/internal/config"
	"github.com/plantlady/plantlady-api/internal/database"
	"github.com/plantlady/plantlady-api/internal/logging"
	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "plantlady",
	Short: "Garden record administration tool",
	Long: `plantlady manages the garden tracking database from the command line.
It seeds default users and seasons, and imports historical spreadsheet
exports (seed-starting sheets and season cost sheets).`,
	Version: Version,
}

// connect loads configuration, connects and migrates. Every subcommand
// needs a live database.
func connect() (*config.Config, error) {
	cfg := config.Load()
	if cfg.DBPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD environment variable is required")
	}
	if err := database.Connect(cfg); err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return cfg, nil
}

func main() {
	logging.Setup(config.Load().LogLevel)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
