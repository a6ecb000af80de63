package main

import (
	"fmt"
	"os"

	myworkout "github.com/andreasknopke/MyWorkout"
	"github.com/andreasknopke/MyWorkout/internal/catalog"
	"github.com/andreasknopke/MyWorkout/internal/localstore"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the exercise catalog and seed profiles",
	Long:  "Upserts every catalog exercise and creates the seed profiles that do not exist yet. Existing profiles are left alone.",
	RunE:  runSeed,
}

var seedCatalogPath string

func init() {
	seedCmd.Flags().StringVarP(&seedCatalogPath, "catalog", "c", "", "catalog YAML file (default: built-in catalog)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	data := myworkout.CatalogYAML
	if seedCatalogPath != "" {
		var err error
		data, err = os.ReadFile(seedCatalogPath)
		if err != nil {
			return fmt.Errorf("failed to read catalog %s: %w", seedCatalogPath, err)
		}
	}
	f, err := catalog.Parse(data)
	if err != nil {
		return err
	}

	store, err := localstore.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := catalog.Seed(cmd.Context(), store, f, logger())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), res)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exercises written: %d\nprofiles created: %d, kept: %d\n",
		res.Exercises, res.ProfilesCreated, res.ProfilesKept)
	return nil
}
