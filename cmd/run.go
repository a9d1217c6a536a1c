package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/fluence/internal/app"
	"github.com/abhisek/fluence/internal/llm"
	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/review"
	"github.com/abhisek/fluence/internal/speech"
	"github.com/abhisek/fluence/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	student, _ := cmd.Flags().GetString("student")
	opts := app.Options{
		Loader:  newLoader(cmd),
		Student: student,
		Events:  eventRepo,
		Snaps:   st.SnapshotRepo(),
		Speech:  speech.NewManager(nil, nil),
	}

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI feedback will be unavailable.")
		opts.Review = review.NewDisabled()
	} else {
		opts.Review = review.NewService(provider, review.DefaultConfig())
	}

	return app.Run(opts)
}

// newLoader builds the question bank loader from flags and environment.
// Flag > env > current directory.
func newLoader(cmd *cobra.Command) *question.Loader {
	dir, _ := cmd.Flags().GetString("questions-dir")
	url, _ := cmd.Flags().GetString("questions-url")
	if dir == "" {
		dir = os.Getenv("FLUENCE_QUESTIONS_DIR")
	}
	if url == "" {
		url = os.Getenv("FLUENCE_QUESTIONS_URL")
	}
	if dir == "" && url == "" {
		dir = "."
	}
	return question.NewLoader(question.LoaderConfig{
		Dir:     dir,
		BaseURL: url,
	})
}
