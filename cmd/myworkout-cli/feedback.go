package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback SESSION_ID",
	Short: "Record feedback for a session",
	Long: "Records feedback for every exercise of a session. Either pass a JSON file with one entry per exercise, " +
		"or rate the whole session with --rpe and --difficulty and the prescribed sets count as completed.",
	Args: cobra.ExactArgs(1),
	RunE: runFeedback,
}

var (
	fbFile       string
	fbRPE        float64
	fbDifficulty string
	fbNotes      string
)

func init() {
	feedbackCmd.Flags().StringVarP(&fbFile, "file", "f", "", "JSON file with a feedback array")
	feedbackCmd.Flags().Float64Var(&fbRPE, "rpe", 0, "average RPE for every exercise, 1-10")
	feedbackCmd.Flags().StringVar(&fbDifficulty, "difficulty", "", "TOO_EASY, JUST_RIGHT or TOO_HARD for every exercise")
	feedbackCmd.Flags().StringVar(&fbNotes, "notes", "", "note attached to every entry")
	feedbackCmd.MarkFlagsMutuallyExclusive("file", "rpe")
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	sessionID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid session id %q: %w", args[0], err)
	}

	store, eng, err := openEngine(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	sub := models.FeedbackSubmission{SessionID: sessionID}
	if fbFile != "" {
		data, err := os.ReadFile(fbFile)
		if err != nil {
			return fmt.Errorf("failed to read feedback file %s: %w", fbFile, err)
		}
		if err := json.Unmarshal(data, &sub.Feedback); err != nil {
			return fmt.Errorf("failed to parse feedback file: %w", err)
		}
	} else {
		sess, err := store.GetSession(cmd.Context(), sessionID)
		if err != nil {
			return err
		}
		sub.Feedback = uniformFeedback(sess, fbRPE, models.Difficulty(strings.ToUpper(fbDifficulty)), fbNotes)
	}

	sess, err := eng.RecordFeedback(cmd.Context(), sub)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), sess)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "recorded %d entries for session %s (%d total)\n",
		len(sub.Feedback), sess.ID, len(sess.Feedback))
	return nil
}

// uniformFeedback rates every item of the session the same way and counts the
// prescribed sets at the bottom of the rep range as done.
func uniformFeedback(sess *models.WorkoutSession, rpe float64, d models.Difficulty, notes string) []models.FeedbackInput {
	out := make([]models.FeedbackInput, 0, len(sess.Items))
	for _, it := range sess.Items {
		out = append(out, models.FeedbackInput{
			ExerciseID:    it.ExerciseID,
			AvgRPE:        rpe,
			CompletedSets: it.Sets,
			CompletedReps: min(200, it.Sets*it.RepsMin),
			Difficulty:    d,
			Notes:         notes,
		})
	}
	return out
}
