package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/srs"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topics in a question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		student, _ := cmd.Flags().GetString("student")

		loader := newLoader(cmd)
		bank, err := loader.Load(cmd.Context(), student)
		if err != nil {
			return err
		}

		type topicRow struct {
			name    string
			count   int
			mastery int
		}
		byTopic := make(map[string]*topicRow)
		var order []string
		for _, q := range bank {
			row, ok := byTopic[q.Topic]
			if !ok {
				row = &topicRow{name: q.Topic}
				byTopic[q.Topic] = row
				order = append(order, q.Topic)
			}
			row.count++
			row.mastery += srs.MasteryLevel(q.SRS)
		}

		fmt.Printf("%-20s  %9s  %s\n", "Topic", "Questions", "Mastery")
		fmt.Println(strings.Repeat("─", 42))
		for _, name := range order {
			row := byTopic[name]
			fmt.Printf("%-20s  %9d  %6d%%\n", row.name, row.count, row.mastery/row.count)
		}
		fmt.Printf("\n%d questions in %s\n", len(bank), question.SourceFor(student))
		return nil
	},
}
