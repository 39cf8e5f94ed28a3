//cmd/seeder/main.go
package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"

	"github.com/unclebandit/brandplay-backend/internal/config"
	"github.com/unclebandit/brandplay-backend/internal/db"
)

// The seeder applies pending migrations and then runs every seed/*.sql file
// in name order.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("❌ config: %v", err)
	}
	cfg.ConfigureLogging()
	if cfg.DatabaseURL == "" {
		logrus.Fatal("❌ DATABASE_URL is required")
	}

	m, err := migrate.New(cfg.MigrationsDir, cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("❌ migrations: %v", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logrus.Fatalf("❌ migrate up: %v", err)
	}
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		logrus.Warnf("closing migrator: source=%v db=%v", srcErr, dbErr)
	}
	logrus.Info("✅ Migrations applied")

	conn, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("❌ database: %v", err)
	}
	defer conn.Close()

	seedFiles, err := filepath.Glob(filepath.Join(cfg.SeedDir, "*.sql"))
	if err != nil {
		logrus.Fatalf("❌ seed dir: %v", err)
	}
	sort.Strings(seedFiles)

	for _, file := range seedFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			logrus.Fatalf("failed to read %s: %v", file, err)
		}
		if _, err := conn.Exec(string(content)); err != nil {
			logrus.Fatalf("failed to execute %s: %v", file, err)
		}
		logrus.Infof("Seeded: %s", file)
	}

	logrus.Info("Database seeding completed successfully!")
}
