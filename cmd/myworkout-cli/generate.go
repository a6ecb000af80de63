package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the next workout session",
	Long:  "Generates and stores a session for a profile. Goal, equipment and limitations flags override the profile for this session only.",
	RunE:  runGenerate,
}

var (
	genProfile     string
	genDuration    int
	genGoal        string
	genEquipment   []string
	genLimitations []string
	genSeed        int64
)

func init() {
	generateCmd.Flags().StringVarP(&genProfile, "profile", "p", "", "profile UUID (default profile if empty)")
	generateCmd.Flags().IntVarP(&genDuration, "duration", "d", 0, "session length in minutes, 15-120")
	generateCmd.Flags().StringVarP(&genGoal, "goal", "g", "", "goal override: HYPERTROPHY, STRENGTH or ENDURANCE")
	generateCmd.Flags().StringSliceVarP(&genEquipment, "equipment", "e", nil, "equipment override, e.g. BODYWEIGHT,DUMBBELL")
	generateCmd.Flags().StringSliceVarP(&genLimitations, "limitation", "l", nil, "limitation override, e.g. KNEE_PAIN")
	generateCmd.Flags().Int64Var(&genSeed, "seed", -1, "random seed for a reproducible selection")
	rootCmd.AddCommand(generateCmd)
}

func parseProfileFlag(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid profile id %q: %w", raw, err)
	}
	return id, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	profileID, err := parseProfileFlag(genProfile)
	if err != nil {
		return err
	}

	req := models.GenerateRequest{
		ProfileID:   profileID,
		DurationMin: genDuration,
		Goal:        models.Goal(strings.ToUpper(genGoal)),
	}
	if cmd.Flags().Changed("equipment") {
		req.Equipment = models.ParseEquipment(upper(genEquipment))
	}
	if cmd.Flags().Changed("limitation") {
		req.Limitations = models.ParseLimitations(upper(genLimitations))
	}
	if genSeed >= 0 {
		s := uint64(genSeed)
		req.Seed = &s
	}

	store, eng, err := openEngine(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := eng.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), sess)
	}
	return printSession(cmd.OutOrStdout(), sess)
}

func upper(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToUpper(strings.TrimSpace(v))
	}
	return out
}

func printSession(w io.Writer, sess *models.WorkoutSession) error {
	fmt.Fprintf(w, "Session %s\n", sess.ID)
	fmt.Fprintf(w, "%s, %d min, week %d (%s), target RPE %.1f\n",
		sess.Goal, sess.DurationMin, sess.BlockWeek, sess.Phase, sess.TargetRPE)
	if sess.Deload {
		fmt.Fprintf(w, "Deload: fatigue score %.2f, load reduced\n", sess.FatigueScore)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tEXERCISE\tSETS\tREPS\tREST\tLOAD\tID")
	for _, it := range sess.Items {
		name := it.ExerciseID.String()
		if it.Exercise != nil {
			name = it.Exercise.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d-%d\t%ds\t%.0f%%\t%s\n",
			it.Position, name, it.Sets, it.RepsMin, it.RepsMax, it.RestSec, it.LoadModifier*100, it.ExerciseID)
	}
	return tw.Flush()
}
