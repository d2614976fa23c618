package assistant

import (
	"strings"
	"time"
)

// Sender identifies who authored a conversation message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Language is a response language the backend can answer in.
type Language string

const (
	LanguageItalian Language = "it"
	LanguageEnglish Language = "en"

	// DefaultLanguage is used whenever no choice has been made or negotiation failed.
	DefaultLanguage = LanguageItalian
)

// Languages lists every language the widget knows how to negotiate.
func Languages() []Language {
	return []Language{LanguageItalian, LanguageEnglish}
}

// ParseLanguage validates a language code. Unknown or empty codes report false.
func ParseLanguage(code string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(code))) {
	case LanguageItalian:
		return LanguageItalian, true
	case LanguageEnglish:
		return LanguageEnglish, true
	default:
		return "", false
	}
}

// Topic is a backend knowledge domain. The empty topic means "no filter".
type Topic string

const (
	TopicGeneralInfo Topic = "general_info"
	TopicHours       Topic = "hours"
	TopicLocations   Topic = "locations"
	TopicServices    Topic = "services"

	// TopicDocs is reported by the backend in stores_used but cannot be selected.
	TopicDocs Topic = "docs"
)

// Topics returns the selectable topic filters in display order.
func Topics() []Topic {
	return []Topic{TopicGeneralInfo, TopicHours, TopicLocations, TopicServices}
}

// ParseTopic validates a selectable topic identifier.
func ParseTopic(id string) (Topic, bool) {
	t := Topic(strings.TrimSpace(id))
	for _, known := range Topics() {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// Citation is best-effort provenance attached to an assistant answer.
// None of the fields is required.
type Citation struct {
	Content    string `json:"content,omitempty"`
	Index      *int   `json:"index,omitempty"`
	Title      string `json:"title,omitempty"`
	URL        string `json:"url,omitempty"`
	Snippet    string `json:"snippet,omitempty"`
	SourceType string `json:"source_type,omitempty"`
}

// LinkOrigin tells where a suggested link points to.
type LinkOrigin string

const (
	LinkOriginWebsite    LinkOrigin = "website"
	LinkOriginAttachment LinkOrigin = "attachment"
)

// SuggestedLink is a page or document recommended alongside an answer.
type SuggestedLink struct {
	Title      string     `json:"title"`
	URL        string     `json:"url,omitempty"`
	DocumentID string     `json:"document_id,omitempty"`
	Origin     LinkOrigin `json:"source_type,omitempty"`
}

// Navigable reports whether the link can be rendered as a hyperlink.
func (l SuggestedLink) Navigable() bool {
	return strings.TrimSpace(l.URL) != ""
}

// ConversationMessage is a single entry of the conversation. Messages are never
// modified after creation; the conversation order is the insertion order.
type ConversationMessage struct {
	ID         string          `json:"id"`
	Sender     Sender          `json:"sender"`
	Content    string          `json:"content"`
	Citations  []Citation      `json:"citations,omitempty"`
	Links      []SuggestedLink `json:"links,omitempty"`
	Topics     []Topic         `json:"topics,omitempty"`
	TokenCount int             `json:"token_count"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Clone returns a deep copy of the message.
func (m ConversationMessage) Clone() ConversationMessage {
	out := m
	if m.Citations != nil {
		out.Citations = make([]Citation, len(m.Citations))
		for i, c := range m.Citations {
			if c.Index != nil {
				idx := *c.Index
				c.Index = &idx
			}
			out.Citations[i] = c
		}
	}
	if m.Links != nil {
		out.Links = append([]SuggestedLink(nil), m.Links...)
	}
	if m.Topics != nil {
		out.Topics = append([]Topic(nil), m.Topics...)
	}
	return out
}
