package session

import (
	"slices"

	"github.com/creastat/assistant"
)

// Phase is the controller-visible lifecycle stage of a session.
type Phase int

const (
	// PhaseInitializing waits for a welcome payload.
	PhaseInitializing Phase = iota
	// PhaseAwaitingLanguage waits for the user to pick a response language.
	PhaseAwaitingLanguage
	// PhaseReady accepts messages. Busy marks an outstanding chat request.
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseAwaitingLanguage:
		return "awaiting_language"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// State represents everything the presentation layer renders.
// Values returned by Store.Snapshot share no memory with the store.
type State struct {
	Phase          Phase
	ConversationID string

	// Messages in conversation order.
	Messages []assistant.ConversationMessage

	// Language is empty while undecided.
	Language assistant.Language

	// Topic is the filter for the next message only; empty means none.
	Topic assistant.Topic

	Suggestions []string
	Busy        bool

	// Warning is a dismissable connectivity notice.
	Warning string

	SupportedLanguages []assistant.Language
}

// AwaitingLanguage reports whether the user must pick a language first.
func (s State) AwaitingLanguage() bool {
	return s.Phase == PhaseAwaitingLanguage
}

// AcceptsMessages reports whether a submission would be accepted.
func (s State) AcceptsMessages() bool {
	return s.Phase == PhaseReady && !s.Busy
}

// Supports reports whether lang was advertised by the backend.
func (s State) Supports(lang assistant.Language) bool {
	return slices.Contains(s.SupportedLanguages, lang)
}

// EffectiveLanguage is the language used for requests: the chosen one, or the default.
func (s State) EffectiveLanguage() assistant.Language {
	if s.Language == "" {
		return assistant.DefaultLanguage
	}
	return s.Language
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	if s.Messages != nil {
		out.Messages = make([]assistant.ConversationMessage, len(s.Messages))
		for i, m := range s.Messages {
			out.Messages[i] = m.Clone()
		}
	}
	if s.Suggestions != nil {
		out.Suggestions = append([]string(nil), s.Suggestions...)
	}
	if s.SupportedLanguages != nil {
		out.SupportedLanguages = append([]assistant.Language(nil), s.SupportedLanguages...)
	}
	return out
}

// Limits bounds the retained conversation. Zero values disable a limit.
type Limits struct {
	MaxMessages int
	MaxTokens   int
}
