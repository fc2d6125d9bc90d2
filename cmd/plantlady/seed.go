package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/plantlady/plantlady-api/internal/database"
	"github.com/plantlady/plantlady-api/internal/models"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedPIN string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create default users and seasons",
	Long: `Seed the database with the household users and the current seasons.
Existing rows are left alone; running seed twice changes nothing.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedPIN, "pin", "1234", "initial 4-digit PIN for seeded users")
	rootCmd.AddCommand(seedCmd)
}

type seedUser struct {
	name  string
	color string
}

func runSeed(cmd *cobra.Command, args []string) error {
	if _, err := connect(); err != nil {
		return err
	}
	db := database.DB

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPIN), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}

	users := []seedUser{
		{name: "Jamison", color: "#4caf50"},
		{name: "Amy", color: "#9c27b0"},
	}
	for _, u := range users {
		var existing models.User
		err := db.Where("name = ?", u.name).First(&existing).Error
		if err == nil {
			slog.Info("user exists, skipping", "name", u.name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check user %s: %w", u.name, err)
		}

		user := models.User{Name: u.name, DisplayColor: u.color, PINHash: string(hash)}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.name, err)
		}
		slog.Info("user created", "name", u.name)
	}

	thisYear := time.Now().Year()
	for _, year := range []int{thisYear, thisYear + 1} {
		var existing models.Season
		err := db.Where("year = ?", year).First(&existing).Error
		if err == nil {
			slog.Info("season exists, skipping", "year", year)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check season %d: %w", year, err)
		}

		season := models.Season{Year: year}
		if err := db.Create(&season).Error; err != nil {
			return fmt.Errorf("failed to create season %d: %w", year, err)
		}
		slog.Info("season created", "year", year)
	}

	slog.Info("seed complete")
	return nil
}
