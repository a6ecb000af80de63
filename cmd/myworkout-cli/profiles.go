package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List training profiles",
	RunE:  runListProfiles,
}

var profilesCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a training profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreateProfile,
}

var (
	newGoal        string
	newDuration    int
	newDays        int
	newCycle       int
	newEquipment   []string
	newLimitations []string
	newExcluded    []string
)

func init() {
	f := profilesCreateCmd.Flags()
	f.StringVarP(&newGoal, "goal", "g", string(models.GoalHypertrophy), "HYPERTROPHY, STRENGTH or ENDURANCE")
	f.IntVarP(&newDuration, "duration", "d", 40, "default session length in minutes")
	f.IntVar(&newDays, "days", 3, "training days per week, 1-7")
	f.IntVar(&newCycle, "cycle", 6, "block length in weeks")
	f.StringSliceVarP(&newEquipment, "equipment", "e", []string{string(models.EquipmentBodyweight)}, "owned equipment")
	f.StringSliceVarP(&newLimitations, "limitation", "l", nil, "limitations, e.g. KNEE_PAIN")
	f.StringSliceVar(&newExcluded, "exclude", nil, "exercise ids or slugs to never select")

	profilesCmd.AddCommand(profilesCreateCmd)
	rootCmd.AddCommand(profilesCmd)
}

func runListProfiles(cmd *cobra.Command, _ []string) error {
	store, _, err := openEngine(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.ListProfiles(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), list)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGOAL\tDAYS\tEQUIPMENT")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Goal, p.TrainingDaysPerWeek,
			strings.Join(models.EquipmentStrings(p.Equipment), ","))
	}
	return tw.Flush()
}

func runCreateProfile(cmd *cobra.Command, args []string) error {
	in := models.NewProfile{
		Name:                args[0],
		Goal:                models.Goal(strings.ToUpper(newGoal)),
		DurationMin:         newDuration,
		TrainingDaysPerWeek: newDays,
		CycleLengthWeeks:    newCycle,
		Equipment:           models.ParseEquipment(upper(newEquipment)),
		Limitations:         models.ParseLimitations(upper(newLimitations)),
		ExcludedExercises:   newExcluded,
	}

	store, _, err := openEngine(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.CreateProfile(cmd.Context(), in)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), p)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created profile %s (%s)\n", p.Name, p.ID)
	return nil
}
