package question

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
)

// LoaderConfig configures where question banks come from.
type LoaderConfig struct {
	// Dir is the local directory holding bank files. Used when BaseURL is empty.
	Dir string

	// BaseURL, when set, is the remote location bank files are fetched from.
	BaseURL string

	// Aliases maps player names to student IDs. Defaults to DefaultAliases.
	Aliases AliasTable

	// Timeout bounds a remote fetch. Default: 10s.
	Timeout time.Duration
}

// Loader reads and normalizes question banks. A bank is a JSON array of
// question records; load failures are surfaced whole rather than serving a
// partial set.
type Loader struct {
	cfg    LoaderConfig
	client *resty.Client
}

// NewLoader creates a Loader.
func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.Aliases == nil {
		cfg.Aliases = DefaultAliases
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Loader{
		cfg:    cfg,
		client: resty.New().SetTimeout(cfg.Timeout),
	}
}

// ResolveStudent picks the student ID for a session. An explicit selector
// wins; otherwise the player name is looked up in the alias table. Returns
// "" when neither applies, meaning the default bank.
func (l *Loader) ResolveStudent(explicit, playerName string) string {
	if explicit != "" {
		return explicit
	}
	return l.cfg.Aliases.Resolve(playerName)
}

// SourceFor returns the bank file name for a student ID ("" = default bank).
func SourceFor(student string) string {
	if student == "" {
		return "questions.json"
	}
	return fmt.Sprintf("questions-student%s.json", student)
}

// Load fetches the bank for the given student ID and returns the
// normalized questions.
func (l *Loader) Load(ctx context.Context, student string) ([]*Question, error) {
	name := SourceFor(student)

	var raw []byte
	var err error
	if l.cfg.BaseURL != "" {
		raw, err = l.fetch(ctx, name)
	} else {
		raw, err = os.ReadFile(filepath.Join(l.cfg.Dir, name))
	}
	if err != nil {
		return nil, fmt.Errorf("load question bank %s: %w", name, err)
	}

	return Parse(raw)
}

func (l *Loader) fetch(ctx context.Context, name string) ([]byte, error) {
	resp, err := l.client.R().SetContext(ctx).Get(l.cfg.BaseURL + "/" + name)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("unexpected status %s", resp.Status())
	}
	return resp.Body(), nil
}

// Parse decodes and normalizes a bank document.
func Parse(raw []byte) ([]*Question, error) {
	var questions []*Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	for i, q := range questions {
		q.Normalize(i)
	}
	return questions, nil
}
