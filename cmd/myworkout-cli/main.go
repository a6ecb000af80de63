// Package main is the offline MyWorkout command line: it runs the engine
// against a local SQLite database.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	myworkout "github.com/andreasknopke/MyWorkout"
	"github.com/andreasknopke/MyWorkout/internal/catalog"
	"github.com/andreasknopke/MyWorkout/internal/engine"
	"github.com/andreasknopke/MyWorkout/internal/localstore"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "myworkout",
	Short:         "Adaptive home workout generator",
	Long:          "Generates workouts from your profile and feedback history, stored in a local database.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	dataDir    string
	jsonOutput bool
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", envOr("MYWORKOUT_DATA_DIR", defaultDataDir()), "local data directory")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine activity to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "myworkout")
	}
	return ".myworkout"
}

func logger() *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// openEngine opens the local store, seeding the built-in catalog on first use,
// and builds an engine over it. Callers close the store.
func openEngine(cmd *cobra.Command) (*localstore.Store, *engine.Engine, error) {
	log := logger()
	store, err := localstore.Open(dataDir)
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	list, err := store.ListExercises(ctx)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	if len(list) == 0 {
		f, err := catalog.Parse(myworkout.CatalogYAML)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		if _, err := catalog.Seed(ctx, store, f, log); err != nil {
			store.Close()
			return nil, nil, err
		}
	}
	if _, err := store.EnsureDefaultProfile(ctx, ""); err != nil {
		store.Close()
		return nil, nil, err
	}

	eng := engine.New(engine.Deps{
		Profiles: store,
		Catalog:  store,
		Feedback: store,
		Sessions: store,
		Logger:   log,
	}, engine.Options{})
	return store, eng, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
