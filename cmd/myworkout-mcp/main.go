package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	myworkout "github.com/andreasknopke/MyWorkout"
	"github.com/andreasknopke/MyWorkout/internal/catalog"
	"github.com/andreasknopke/MyWorkout/internal/engine"
	"github.com/andreasknopke/MyWorkout/internal/localstore"
	workoutmcp "github.com/andreasknopke/MyWorkout/internal/mcp"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "MyWorkout server URL; empty runs the engine locally")
	apiKey := flag.String("api-key", os.Getenv("MYWORKOUT_API_KEY"), "API key for remote writes")
	dataDir := flag.String("data", defaultDataDir(), "local data directory")
	profile := flag.String("profile", "", "profile UUID tools act on by default")
	flag.Parse()

	// stdout carries the MCP protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	profileID := uuid.Nil
	if *profile != "" {
		id, err := uuid.Parse(*profile)
		if err != nil {
			log.Error("invalid -profile", "error", err)
			os.Exit(1)
		}
		profileID = id
	}

	var ds workoutmcp.DataSource
	if *serverURL != "" {
		ds = workoutmcp.NewHTTPClient(*serverURL, *apiKey)
		log.Info("remote mode", "server", *serverURL)
	} else {
		store, err := openLocal(*dataDir, log)
		if err != nil {
			log.Error("failed to open local store", "error", err)
			os.Exit(1)
		}
		defer store.Close()

		eng := engine.New(engine.Deps{
			Profiles: store,
			Catalog:  store,
			Feedback: store,
			Sessions: store,
			Logger:   log,
		}, engine.Options{})
		ds = workoutmcp.Local{Engine: eng, Sessions: store}
		log.Info("local mode", "data", *dataDir)
	}

	s := workoutmcp.New(ds, Version, log)
	err := server.ServeStdio(s, server.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return workoutmcp.WithProfileID(ctx, profileID)
	}))
	if err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}

// openLocal opens the SQLite store and seeds it from the built-in catalog the
// first time.
func openLocal(dir string, log *slog.Logger) (*localstore.Store, error) {
	store, err := localstore.Open(dir)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	list, err := store.ListExercises(ctx)
	if err != nil {
		store.Close()
		return nil, err
	}
	if len(list) == 0 {
		f, err := catalog.Parse(myworkout.CatalogYAML)
		if err != nil {
			store.Close()
			return nil, err
		}
		if _, err := catalog.Seed(ctx, store, f, log); err != nil {
			store.Close()
			return nil, err
		}
	}
	if _, err := store.EnsureDefaultProfile(ctx, ""); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "myworkout")
	}
	return ".myworkout"
}
