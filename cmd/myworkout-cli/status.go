package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/andreasknopke/MyWorkout/internal/schedule"
	"github.com/spf13/cobra"
)

var readinessCmd = &cobra.Command{
	Use:   "readiness",
	Short: "Show fatigue, block week and phase",
	RunE:  runReadiness,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [WEEKDAY]",
	Short: "Show the weekly training plan",
	Long:  "Shows which weekdays are training days and each day's focus. WEEKDAY (0 = Sunday ... 6 = Saturday) marks today.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSchedule,
}

var statusProfile string

func init() {
	for _, c := range []*cobra.Command{readinessCmd, scheduleCmd} {
		c.Flags().StringVarP(&statusProfile, "profile", "p", "", "profile UUID (default profile if empty)")
		rootCmd.AddCommand(c)
	}
}

func runReadiness(cmd *cobra.Command, _ []string) error {
	profileID, err := parseProfileFlag(statusProfile)
	if err != nil {
		return err
	}
	store, eng, err := openEngine(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := eng.Readiness(cmd.Context(), profileID)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), r)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "sessions: %d\n", r.SessionCount)
	fmt.Fprintf(w, "block: week %d of %d, %s\n", r.Period.Week, r.Period.CycleWeeks, r.Period.Phase)
	fmt.Fprintf(w, "fatigue: score %.2f, avg RPE %.1f over %d records\n",
		r.Summary.FatigueScore, r.Summary.AvgRPE, r.Summary.Window)
	fmt.Fprintf(w, "deload: %t, target RPE %.1f\n", r.Deload, r.TargetRPE)
	return nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	profileID, err := parseProfileFlag(statusProfile)
	if err != nil {
		return err
	}

	today := time.Now().Weekday()
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 || n > 6 {
			return fmt.Errorf("weekday must be a number 0-6, got %q", args[0])
		}
		today = time.Weekday(n)
	}

	store, eng, err := openEngine(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := eng.Profile(cmd.Context(), profileID)
	if err != nil {
		return err
	}
	plan := schedule.For(p.ID, p.TrainingDaysPerWeek, today)
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), plan)
	}

	w := cmd.OutOrStdout()
	for _, d := range plan.Days {
		marker := " "
		if d.IsToday {
			marker = "*"
		}
		focus := "rest"
		if d.IsTrainingDay {
			focus = d.Focus
		}
		fmt.Fprintf(w, "%s %s  %s\n", marker, d.Label, focus)
	}
	return nil
}
