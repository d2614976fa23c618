package gateway

import (
	"context"
	"strings"

	"github.com/creastat/assistant"
)

// Gateway is the contract with the remote retrieval-augmented assistant backend.
// Implementations are stateless: they never retry, back off or cache.
type Gateway interface {
	// FetchWelcome requests the greeting, starter suggestions and the supported
	// language set. An empty hint omits the lang parameter.
	FetchWelcome(ctx context.Context, hint assistant.Language) (*WelcomePayload, error)

	// SendChatMessage submits a user utterance. The message must be non-empty
	// after trimming whitespace.
	SendChatMessage(ctx context.Context, req ChatRequest) (*ChatPayload, error)
}

// WelcomePayload is the body of GET /welcome.
type WelcomePayload struct {
	Message          string   `json:"message"`
	AvailableDomains []string `json:"available_domains"`
	Suggestions      []string `json:"suggestions"`

	// Languages is omitted by backends that only answer in Italian.
	Languages []string `json:"languages,omitempty"`
}

// SupportedLanguages returns the advertised languages the widget understands,
// deduplicated and in advertisement order. It is never empty.
func (w WelcomePayload) SupportedLanguages() []assistant.Language {
	seen := make(map[assistant.Language]struct{}, len(w.Languages))
	var out []assistant.Language
	for _, code := range w.Languages {
		lang, ok := assistant.ParseLanguage(code)
		if !ok {
			continue
		}
		if _, dup := seen[lang]; dup {
			continue
		}
		seen[lang] = struct{}{}
		out = append(out, lang)
	}
	if len(out) == 0 {
		return []assistant.Language{assistant.DefaultLanguage}
	}
	return out
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`

	// Domain is the optional topic filter; nil is encoded as JSON null.
	Domain         *string `json:"domain"`
	ConversationID string  `json:"conversation_id,omitempty"`
	Language       string  `json:"language,omitempty"`
}

// NewChatRequest builds a request for the given text, topic filter and language.
// An empty topic produces a null domain.
func NewChatRequest(text string, topic assistant.Topic, lang assistant.Language, conversationID string) ChatRequest {
	req := ChatRequest{
		Message:        strings.TrimSpace(text),
		ConversationID: conversationID,
		Language:       string(lang),
	}
	if topic != "" {
		domain := string(topic)
		req.Domain = &domain
	}
	return req
}

// Source is a retrieved passage cited by the backend.
type Source struct {
	Content    string `json:"content,omitempty"`
	Index      *int   `json:"index,omitempty"`
	Title      string `json:"title,omitempty"`
	URL        string `json:"url,omitempty"`
	Snippet    string `json:"snippet,omitempty"`
	SourceType string `json:"source_type,omitempty"`
}

// Link is a page or attachment the backend recommends.
type Link struct {
	Title      string `json:"title"`
	URL        string `json:"url,omitempty"`
	DocumentID string `json:"document_id,omitempty"`
	SourceType string `json:"source_type,omitempty"`
}

// ChatPayload is the body returned by POST /chat.
type ChatPayload struct {
	Response           string   `json:"response"`
	Sources            []Source `json:"sources"`
	Links              []Link   `json:"links"`
	StoresUsed         []string `json:"stores_used"`
	Domain             *string  `json:"domain"`
	SuggestedQuestions []string `json:"suggested_questions,omitempty"`
}

// Message converts the payload into the assistant's conversation message.
func (p ChatPayload) Message() assistant.ConversationMessage {
	msg := assistant.NewMessage(assistant.IDPrefixAssistant, assistant.SenderAssistant, p.Response)

	for _, s := range p.Sources {
		c := assistant.Citation{
			Content:    s.Content,
			Title:      s.Title,
			URL:        s.URL,
			Snippet:    s.Snippet,
			SourceType: s.SourceType,
		}
		if s.Index != nil {
			idx := *s.Index
			c.Index = &idx
		}
		msg.Citations = append(msg.Citations, c)
	}

	for _, l := range p.Links {
		if strings.TrimSpace(l.Title) == "" {
			continue
		}
		link := assistant.SuggestedLink{
			Title:      l.Title,
			URL:        l.URL,
			DocumentID: l.DocumentID,
		}
		switch assistant.LinkOrigin(l.SourceType) {
		case assistant.LinkOriginWebsite, assistant.LinkOriginAttachment:
			link.Origin = assistant.LinkOrigin(l.SourceType)
		}
		msg.Links = append(msg.Links, link)
	}

	for _, store := range p.StoresUsed {
		if store = strings.TrimSpace(store); store != "" {
			msg.Topics = append(msg.Topics, assistant.Topic(store))
		}
	}

	return msg
}

// Suggestions returns the follow-up questions, or an empty list when none were sent.
func (p ChatPayload) Suggestions() []string {
	out := make([]string, 0, len(p.SuggestedQuestions))
	for _, q := range p.SuggestedQuestions {
		if strings.TrimSpace(q) != "" {
			out = append(out, q)
		}
	}
	return out
}
