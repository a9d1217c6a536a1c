package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/insights"
	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/store"
	"github.com/spf13/cobra"
)

var difficultyOrder = []question.Difficulty{
	question.DifficultyEasy,
	question.DifficultyMedium,
	question.DifficultyHard,
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show the full analytics report from the last snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer s.Close()

		snap, err := s.SnapshotRepo().Latest(context.Background())
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if snap == nil {
			fmt.Println("No progress saved yet. Play a round first!")
			return nil
		}

		perf := snap.Data.Performance
		if perf == nil {
			perf = game.NewPerformance()
		}
		report := insights.BuildReport(perf, snap.Data.HighestScore, snap.Data.HighestStreak)

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Printf("Answered:     %d\n", report.Overview.TotalQuestions)
		fmt.Printf("Accuracy:     %s\n", report.Overview.Accuracy)
		fmt.Printf("Best score:   %d\n", report.Overview.CurrentScore)
		fmt.Printf("Best streak:  %d\n", report.Overview.BestStreak)

		if len(report.Strengths) > 0 {
			fmt.Println("\nStrengths")
			for _, tc := range report.Strengths {
				fmt.Printf("  %-16s %d correct\n", tc.Topic, tc.Count)
			}
		}
		if len(report.Improvements) > 0 {
			fmt.Println("\nNeeds work")
			for _, tc := range report.Improvements {
				fmt.Printf("  %-16s %d missed\n", tc.Topic, tc.Count)
			}
		}

		if len(report.DifficultyBreakdown) > 0 {
			fmt.Println("\nBy difficulty")
			for _, d := range difficultyOrder {
				ts, ok := report.DifficultyBreakdown[d]
				if !ok || ts.Total == 0 {
					continue
				}
				pct := float64(ts.Correct) / float64(ts.Total) * 100
				fmt.Printf("  %-8s %d/%d (%.0f%%)\n", d, ts.Correct, ts.Total, pct)
			}
		}

		if len(report.RecentPerformance) > 0 {
			fmt.Println("\nRecent answers")
			for _, a := range report.RecentPerformance {
				mark := "✓"
				if !a.IsCorrect {
					mark = "✗"
				}
				q := a.Question
				if len(q) > 44 {
					q = q[:44] + "..."
				}
				fmt.Printf("  %s %-48s %s\n", mark, q, a.Topic)
			}
		}

		return nil
	},
}

func init() {
	insightsCmd.Flags().Bool("json", false, "Emit the report as JSON")
}
