package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	myworkout "github.com/andreasknopke/MyWorkout"
	"github.com/andreasknopke/MyWorkout/internal/catalog"
	"github.com/andreasknopke/MyWorkout/internal/config"
	"github.com/andreasknopke/MyWorkout/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	catalogPath := flag.String("catalog", "", "path to a catalog YAML file (default: built-in catalog)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	data := myworkout.CatalogYAML
	if *catalogPath != "" {
		var err error
		data, err = os.ReadFile(*catalogPath)
		if err != nil {
			log.Error("failed to read catalog", "path", *catalogPath, "error", err)
			os.Exit(1)
		}
	}

	f, err := catalog.Parse(data)
	if err != nil {
		log.Error("invalid catalog", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	res, err := catalog.Seed(ctx, db, f, log)
	if err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
	log.Info("seed complete",
		"exercises", res.Exercises,
		"profiles_created", res.ProfilesCreated,
		"profiles_kept", res.ProfilesKept,
	)
}
