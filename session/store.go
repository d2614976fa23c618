package session

import (
	"github.com/creastat/assistant"
)

// Store holds the session state and applies transitions to it.
// Every transition is a total function of the current state and its arguments;
// none performs I/O. Store is not safe for concurrent use: the controller
// serializes access.
type Store struct {
	state  State
	limits Limits
}

// NewStore creates a store in the pre-welcome state.
func NewStore(conversationID string, limits Limits) *Store {
	s := &Store{limits: limits}
	s.state = initialState(conversationID, nil)
	return s
}

func initialState(conversationID string, supported []assistant.Language) State {
	if len(supported) == 0 {
		supported = []assistant.Language{assistant.DefaultLanguage}
	}
	return State{
		Phase:              PhaseInitializing,
		ConversationID:     conversationID,
		SupportedLanguages: append([]assistant.Language(nil), supported...),
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	return s.state.Clone()
}

// Phase returns the current phase without copying the state.
func (s *Store) Phase() Phase { return s.state.Phase }

// Busy reports whether a chat request is outstanding.
func (s *Store) Busy() bool { return s.state.Busy }

// BeginInitialization marks a welcome fetch as outstanding.
func (s *Store) BeginInitialization() {
	s.state.Phase = PhaseInitializing
	s.state.Busy = false
}

// EnterAwaitingLanguage asks the user for a language. Any conversation is discarded.
func (s *Store) EnterAwaitingLanguage(supported []assistant.Language) {
	s.setSupported(supported)
	s.state.Phase = PhaseAwaitingLanguage
	s.state.Language = ""
	s.state.Messages = nil
	s.state.Suggestions = nil
	s.state.Topic = ""
	s.state.Busy = false
}

// EnterReady starts a conversation with greeting as the only message.
func (s *Store) EnterReady(lang assistant.Language, supported []assistant.Language, greeting assistant.ConversationMessage, suggestions []string, warning string) {
	if supported != nil {
		s.setSupported(supported)
	}
	if lang == "" {
		lang = assistant.DefaultLanguage
	}
	s.state.Phase = PhaseReady
	s.state.Language = lang
	s.state.Messages = []assistant.ConversationMessage{greeting}
	s.state.Suggestions = copyStrings(suggestions)
	s.state.Topic = ""
	s.state.Busy = false
	s.state.Warning = warning
}

// ChooseLanguage records an explicit pick; the localized welcome is still pending.
func (s *Store) ChooseLanguage(lang assistant.Language) {
	s.state.Language = lang
	s.state.Phase = PhaseInitializing
}

// BeginExchange appends the optimistic user message and marks the session busy.
func (s *Store) BeginExchange(user assistant.ConversationMessage) {
	s.append(user)
	s.state.Suggestions = nil
	s.state.Warning = ""
	s.state.Busy = true
}

// CompleteExchange appends the answer and replaces the suggestions.
func (s *Store) CompleteExchange(reply assistant.ConversationMessage, suggestions []string) {
	s.append(reply)
	s.state.Suggestions = copyStrings(suggestions)
	s.endExchange()
}

// FailExchange appends a synthetic apology in place of the answer.
func (s *Store) FailExchange(apology assistant.ConversationMessage) {
	s.append(apology)
	s.state.Suggestions = nil
	s.endExchange()
}

func (s *Store) endExchange() {
	s.state.Topic = ""
	s.state.Busy = false
}

// ToggleTopic selects topic, or deselects it when it is already selected.
func (s *Store) ToggleTopic(topic assistant.Topic) {
	if s.state.Topic == topic {
		s.state.Topic = ""
		return
	}
	s.state.Topic = topic
}

// ClearTopic removes the topic filter.
func (s *Store) ClearTopic() {
	s.state.Topic = ""
}

// ClearSuggestions empties the suggestion list.
func (s *Store) ClearSuggestions() {
	s.state.Suggestions = nil
}

// SetWarning shows a connectivity notice.
func (s *Store) SetWarning(warning string) {
	s.state.Warning = warning
}

// DismissWarning hides the connectivity notice.
func (s *Store) DismissWarning() {
	s.state.Warning = ""
}

// Reset returns to the pre-welcome state under a new conversation id,
// keeping only the backend's advertised languages.
func (s *Store) Reset(conversationID string) {
	s.state = initialState(conversationID, s.state.SupportedLanguages)
}

func (s *Store) append(msg assistant.ConversationMessage) {
	history := assistant.AddMessageToHistory(s.state.Messages, msg)
	s.state.Messages = assistant.TruncateHistory(history, s.limits.MaxTokens, s.limits.MaxMessages)
}

func (s *Store) setSupported(supported []assistant.Language) {
	if len(supported) == 0 {
		supported = []assistant.Language{assistant.DefaultLanguage}
	}
	s.state.SupportedLanguages = append([]assistant.Language(nil), supported...)
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return append([]string(nil), in...)
}
