// Package llm provides summaries of articles and discussions via an OpenAI-compatible API
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/newsdigest/pkg/config"
	"github.com/umputun/newsdigest/pkg/domain"
)

const maxAttempts = 3

// errEmptyResponse is returned when the model replies with nothing usable
var errEmptyResponse = errors.New("empty response from llm")

// Summarizer uses LLM to summarize articles and discussion threads
type Summarizer struct {
	client           *openai.Client
	config           config.LLMConfig
	articlePrompt    string
	discussionPrompt string
}

// default system prompt for articles with an external link
const defaultArticlePrompt = `You summarize articles for a technical audience.
Keep it concise and focused on facts, one short paragraph.
Write directly about the subject matter. NEVER use phrases like "The article discusses" or "The author explains".
Write the summary in the same language as the article text.`

// default system prompt for self posts and threads without an external link
const selfPostPrompt = `You summarize Hacker News self-posts or thread content.
Keep it concise and focused on the main subject, one short paragraph.
Write directly about the subject matter.`

// default system prompt for discussion threads
const defaultDiscussionPrompt = `You summarize Hacker News comment threads. Comments are given in page order,
one per line starting with "- ", replies indented under their parent. Output two parts:
1) "Top upvoted themes:" 3-5 bullets, each line starting with "- ", reflecting the most visible comments
and threads and their arguments (group similar ideas).
2) "Overall discussion:" one concise paragraph capturing main themes and disagreements.
Avoid quotes and usernames.`

// NewSummarizer creates a new LLM summarizer
func NewSummarizer(cfg config.LLMConfig) *Summarizer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	// use custom prompts if provided, otherwise use defaults
	articlePrompt := cfg.ArticlePrompt
	if articlePrompt == "" {
		articlePrompt = defaultArticlePrompt
	}
	discussionPrompt := cfg.DiscussionPrompt
	if discussionPrompt == "" {
		discussionPrompt = defaultDiscussionPrompt
	}

	return &Summarizer{
		client:           openai.NewClientWithConfig(clientConfig),
		config:           cfg,
		articlePrompt:    articlePrompt,
		discussionPrompt: discussionPrompt,
	}
}

// SummarizeArticle summarizes the article text of a story. Stories without an external link
// are summarized as self posts, text is the post body or the thread.
func (s *Summarizer) SummarizeArticle(ctx context.Context, story domain.Story, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no article text for %s", story.ID)
	}

	if story.URL == "" {
		prompt := fmt.Sprintf("Title: %s\nHN thread: %s\n\nThread text:\n%s", story.Title, story.CommentsURL, text)
		return s.complete(ctx, selfPostPrompt, prompt)
	}

	prompt := fmt.Sprintf("Title: %s\nURL: %s\n\nArticle text:\n%s", story.Title, story.URL, text)
	return s.complete(ctx, s.articlePrompt, prompt)
}

// SummarizeDiscussion summarizes the flattened comment thread of a story
func (s *Summarizer) SummarizeDiscussion(ctx context.Context, story domain.Story, thread string) (string, error) {
	if strings.TrimSpace(thread) == "" {
		return "", fmt.Errorf("no discussion text for %s", story.ID)
	}
	prompt := fmt.Sprintf("HN thread: %s\nTitle: %s\n\nComments:\n%s", story.CommentsURL, story.Title, thread)
	return s.complete(ctx, s.discussionPrompt, prompt)
}

// complete sends one chat completion, retrying up to maxAttempts times on empty replies
func (s *Summarizer) complete(ctx context.Context, system, prompt string) (string, error) {
	var lastErr error
	for range maxAttempts {
		chatReq := openai.ChatCompletionRequest{
			Model:       s.config.Model,
			Temperature: float32(s.config.Temperature),
			MaxTokens:   s.config.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		}

		resp, err := s.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return "", fmt.Errorf("llm request failed: %w", err)
		}

		if len(resp.Choices) == 0 {
			lastErr = errEmptyResponse
			continue
		}

		content := strings.TrimSpace(resp.Choices[0].Message.Content)
		if content == "" {
			lastErr = errEmptyResponse
			continue
		}
		return content, nil
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}
