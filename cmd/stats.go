package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/insights"
	"github.com/abhisek/fluence/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics from the last snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		if snap.Data.Player != "" {
			fmt.Printf("Player:       %s\n", snap.Data.Player)
		}
		fmt.Printf("Answered:     %d\n", report.Overview.TotalQuestions)
		fmt.Printf("Accuracy:     %s\n", report.Overview.Accuracy)
		fmt.Printf("Best score:   %d\n", report.Overview.CurrentScore)
		fmt.Printf("Best streak:  %d\n", report.Overview.BestStreak)

		if len(report.Strengths) > 0 {
			var topics []string
			for _, tc := range report.Strengths {
				topics = append(topics, fmt.Sprintf("%s (%d)", tc.Topic, tc.Count))
			}
			fmt.Printf("Strengths:    %s\n", strings.Join(topics, ", "))
		}
		if len(report.Improvements) > 0 {
			var topics []string
			for _, tc := range report.Improvements {
				topics = append(topics, fmt.Sprintf("%s (%d)", tc.Topic, tc.Count))
			}
			fmt.Printf("Needs work:   %s\n", strings.Join(topics, ", "))
		}

		for _, line := range insights.Lines(perf, snap.Data.Questions, snap.Data.HighestStreak, time.Now()) {
			fmt.Println(" ·", line)
		}
		return nil
	},
}
