package llm

import (
	"context"
	"time"

	"github.com/evindia/evbot/pkg/logging"
)

const (
	// DisabledReply is returned without calling the model when no client is
	// configured.
	DisabledReply = "AI features are disabled. Please try a simpler request."
	// ApologyReply is returned on any model failure.
	ApologyReply = "Sorry, I couldn’t process that. Please try again."

	systemPersona = "You are EV India Bot, an expert on electric scooters in India. " +
		"Provide accurate, concise information. For comparisons, use a structured format. " +
		"If unsure, admit it and suggest checking availability with a pincode. " +
		"Be friendly and professional."

	maxHistoryMessages = 20
	defaultReplyTokens = 500
	replyTemperature   = 0.7
)

// Assistant wraps a completion client so the caller can never observe a
// failure: every path returns a usable reply string.
type Assistant struct {
	client    Client
	modelID   string
	timeout   time.Duration
	maxTokens int32
	logger    *logging.Logger
}

func NewAssistant(client Client, modelID string, timeout time.Duration, maxTokens int, logger *logging.Logger) *Assistant {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if maxTokens <= 0 {
		maxTokens = defaultReplyTokens
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Assistant{client: client, modelID: modelID, timeout: timeout, maxTokens: int32(maxTokens), logger: logger}
}

// Enabled reports whether a completion client is configured.
func (a *Assistant) Enabled() bool {
	return a != nil && a.client != nil
}

// Reply answers prompt with up to the last ten exchanges of history. It
// never returns an error: model failures become ApologyReply and a missing
// client becomes DisabledReply.
func (a *Assistant) Reply(ctx context.Context, userID int64, prompt string, history []ChatMessage) string {
	if !a.Enabled() {
		return DisabledReply
	}

	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}
	messages := make([]ChatMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: RoleUser, Content: prompt})

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.Complete(ctx, Request{
		Model:       a.modelID,
		System:      []string{systemPersona},
		Messages:    messages,
		MaxTokens:   a.maxTokens,
		Temperature: replyTemperature,
	})
	if err != nil {
		a.logger.Error("llm completion failed", "user_id", userID, "prompt", truncate(prompt, 100), "error", err)
		return ApologyReply
	}
	if resp.Text == "" {
		a.logger.Warn("llm returned empty reply", "user_id", userID, "stop_reason", resp.StopReason)
		return ApologyReply
	}
	return resp.Text
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
