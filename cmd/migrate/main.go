package main

import (
	"os"

	"mycloud-drive/internal/config"
	"mycloud-drive/internal/model"
	"mycloud-drive/pkg/database"

	"github.com/fatih/color"
)

var (
	step = color.New(color.FgCyan)
	ok   = color.New(color.FgGreen, color.Bold)
	warn = color.New(color.FgYellow)
	fail = color.New(color.FgRed, color.Bold)
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
	if err != nil {
		fail.Printf("✗ Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	step.Println("► Step 1: Setting up extensions")
	// gen_random_uuid() is built in from Postgres 13; the extension covers older servers.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		warn.Printf("⚠ Failed to create pgcrypto: %v. Continuing...\n", err)
	}

	models := []interface{}{
		&model.User{},
		&model.File{},
		&model.AccessLog{},
	}
	step.Printf("► Step 2: Running AutoMigrate for %d tables\n", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		fail.Printf("✗ AutoMigrate failed: %v\n", err)
		os.Exit(1)
	}

	ok.Println("✔ Migration complete")
}
