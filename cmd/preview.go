package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/fluence/internal/evaluate"
	"github.com/abhisek/fluence/internal/question"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Answer bank questions at the prompt (no database)",
	Long: `Load a question bank and answer its questions interactively.

This is a stateless developer tool — no database, no scheduling, no events.
Useful for checking bank content and answer matching.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("topic", "", "Only questions from this topic")
	previewCmd.Flags().Int("count", 5, "Number of questions to ask")
}

func runPreview(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")
	student, _ := cmd.Flags().GetString("student")

	loader := newLoader(cmd)
	bank, err := loader.Load(context.Background(), student)
	if err != nil {
		return err
	}

	var pool []*question.Question
	for _, q := range bank {
		if topic == "" || q.Topic == topic {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		return fmt.Errorf("no questions found for topic %q in %s", topic, question.SourceFor(student))
	}
	if count > len(pool) {
		count = len(pool)
	}

	fmt.Printf("Bank: %s — %d questions\n\n", question.SourceFor(student), len(pool))

	scanner := bufio.NewScanner(os.Stdin)
	var correct int

	for i := 0; i < count; i++ {
		q := pool[i]

		fmt.Printf("── Question %d/%d (%s) ──\n", i+1, count, q.Topic)
		fmt.Println(q.Prompt)
		for j, opt := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Print("(skipped)\n\n")
			continue
		}

		// Number picks map to options.
		if len(q.Options) > 0 && len(answer) == 1 && answer[0] >= '1' && answer[0] <= '9' {
			if idx := int(answer[0] - '1'); idx < len(q.Options) {
				answer = q.Options[idx]
			}
		}

		if evaluate.Evaluate(answer, q) {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Correct)
		}

		if q.Explanation != "" {
			fmt.Printf("Explanation: %s\n", q.Explanation)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, count)
	return nil
}
