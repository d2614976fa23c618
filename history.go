package assistant

import (
	"time"

	"github.com/google/uuid"
)

// Message id prefixes. The suffix is a version 7 UUID, so ids are unique and
// sort in creation order.
const (
	IDPrefixWelcome   = "welcome"
	IDPrefixUser      = "user"
	IDPrefixAssistant = "assistant"
	IDPrefixError     = "error"
)

// NewMessageID returns a unique, time-ordered message id with the given prefix.
func NewMessageID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + "-" + id.String()
}

// NewMessage builds a conversation message with an estimated token count.
func NewMessage(prefix string, sender Sender, content string) ConversationMessage {
	return ConversationMessage{
		ID:         NewMessageID(prefix),
		Sender:     sender,
		Content:    content,
		TokenCount: EstimateTokens(content),
		CreatedAt:  time.Now(),
	}
}

// AddMessageToHistory appends a message to the conversation history without
// sharing the backing array of the input slice, so earlier snapshots stay intact.
func AddMessageToHistory(history []ConversationMessage, msg ConversationMessage) []ConversationMessage {
	out := make([]ConversationMessage, len(history), len(history)+1)
	copy(out, history)
	return append(out, msg)
}

// TruncateHistory truncates the conversation history based on token and message limits.
// It applies message limit first, then token limit, removing oldest messages as needed.
// A limit of zero or less disables that limit.
// Returns the truncated history with the most recent messages preserved.
func TruncateHistory(history []ConversationMessage, tokenLimit, messageLimit int) []ConversationMessage {
	if len(history) == 0 {
		return history
	}

	if messageLimit > 0 && len(history) > messageLimit {
		history = history[len(history)-messageLimit:]
	}

	if tokenLimit <= 0 {
		return history
	}

	totalTokens := 0
	for _, msg := range history {
		totalTokens += msg.TokenCount
	}

	// The newest message is always kept, even when it alone exceeds the limit.
	for totalTokens > tokenLimit && len(history) > 1 {
		totalTokens -= history[0].TokenCount
		history = history[1:]
	}

	return history
}
