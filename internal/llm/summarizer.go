// Package llm generates an optional reviewer-facing summary of a
// reconciliation result. The summary never affects grades, categories
// or the policy lookup; it is produced after reconciliation and kept
// separate from the result.
package llm

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ykomori/riskfuse/internal/model"
)

// Summary is the generated summary with its provenance
type Summary struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	SummaryMD string `json:"summary_md"`
}

// Summarizer wraps an LLM provider for result summarization
type Summarizer struct {
	client *openai.Client
	model  string
}

// NewSummarizer creates a summarizer from the LLM configuration.
// Only the openai provider is supported; an empty provider means
// summarization is disabled and callers get a nil summarizer.
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	if cfg.Provider == "" {
		return nil, nil
	}
	if cfg.Provider != "openai" {
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY)")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	m := cfg.Model
	if m == "" {
		m = openai.GPT4oMini
	}

	return &Summarizer{
		client: openai.NewClientWithConfig(clientConfig),
		model:  m,
	}, nil
}

// Summarize generates a short Japanese summary of the result
func (s *Summarizer) Summarize(ctx context.Context, result *model.Result) (*Summary, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a compliance reviewer assistant. Summarize the supplied " +
					"media risk reconciliation result in Japanese, in at most 200 characters. " +
					"State only what the data shows; add no new risk judgements.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(result),
			},
		},
		MaxTokens: 400,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response")
	}

	return &Summary{
		Provider:  "openai",
		Model:     s.model,
		SummaryMD: strings.TrimSpace(resp.Choices[0].Message.Content),
	}, nil
}

// BuildPrompt renders the result facts the model is allowed to use
func BuildPrompt(result *model.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "社会的感度: %s\n", result.SocialGrade)
	fmt.Fprintf(&b, "法務評価: %s\n", result.LegalCategory)
	fmt.Fprintf(&b, "判定: %s\n", result.Profile.Badge)

	if len(result.TagGrades) > 0 {
		names := make([]string, 0, len(result.TagGrades))
		for name := range result.TagGrades {
			names = append(names, name)
		}
		sort.Strings(names)
		b.WriteString("タグ:\n")
		for _, name := range names {
			fmt.Fprintf(&b, "- %s: %s\n", name, result.TagGrades[name])
		}
	}

	if len(result.Groups) > 0 {
		fmt.Fprintf(&b, "検出エビデンス %d件:\n", len(result.Groups))
		for _, g := range result.Groups {
			if g.RepresentativeText == "" {
				continue
			}
			fmt.Fprintf(&b, "- [%s] %s\n", g.RepresentativeTimecode, g.RepresentativeText)
		}
	}

	return b.String()
}
