package review

// Placeholder texts shown when no live feedback is available.
const (
	DisabledFeedback    = "AI feedback is disabled. Set an API key to enable personalized tips."
	UnavailableFeedback = "Unable to generate feedback at this time."
)

// Config holds answer review generation settings.
type Config struct {
	MaxTokens       int
	ReportMaxTokens int
	Temperature     float64
}

// DefaultConfig returns sensible defaults for feedback generation.
// Reviews are shown between questions, so responses stay short.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       384,
		ReportMaxTokens: 512,
		Temperature:     0.4,
	}
}
