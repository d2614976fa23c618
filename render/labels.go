package render

import (
	"strconv"
	"strings"

	"github.com/creastat/assistant"
)

// MaxVisibleCitations is how many citations are shown under an answer.
const MaxVisibleCitations = 3

// Language picker copy is shown before a language exists, so it is bilingual.
const (
	LanguagePrompt = "Scegli lingua / Choose language"
	LanguageHint   = "Le risposte saranno nella lingua scelta. / Answers will be in the selected language."
)

var topicLabels = map[assistant.Language]map[assistant.Topic]string{
	assistant.LanguageItalian: {
		assistant.TopicGeneralInfo: "Informazioni generali",
		assistant.TopicHours:       "Orari",
		assistant.TopicLocations:   "Sedi",
		assistant.TopicServices:    "Servizi",
		assistant.TopicDocs:        "Documenti",
	},
	assistant.LanguageEnglish: {
		assistant.TopicGeneralInfo: "General information",
		assistant.TopicHours:       "Opening hours",
		assistant.TopicLocations:   "Locations",
		assistant.TopicServices:    "Services",
		assistant.TopicDocs:        "Documents",
	},
}

// TopicLabel returns the display name of a topic. Unknown topics are shown
// by their identifier.
func TopicLabel(topic assistant.Topic, lang assistant.Language) string {
	labels, ok := topicLabels[lang]
	if !ok {
		labels = topicLabels[assistant.DefaultLanguage]
	}
	if label, ok := labels[topic]; ok {
		return label
	}
	return string(topic)
}

// Strings is the fixed interface copy for one language.
type Strings struct {
	Suggestions    string
	NewChat        string
	TopicPrompt    string
	Skip           string
	Links          string
	Sources        string
	Placeholder    string
	SourceFallback string
}

var uiStrings = map[assistant.Language]Strings{
	assistant.LanguageItalian: {
		Suggestions:    "Suggerimenti:",
		NewChat:        "Nuova chat",
		TopicPrompt:    "Opzionale: la tua domanda riguarda… (salta se non sei sicuro)",
		Skip:           "Salta",
		Links:          "Pagine / documenti consigliati",
		Sources:        "Fonti",
		Placeholder:    "Scrivi la tua domanda...",
		SourceFallback: "Fonte",
	},
	assistant.LanguageEnglish: {
		Suggestions:    "Suggestions:",
		NewChat:        "New chat",
		TopicPrompt:    "Optional: your question relates to… (skip if unsure)",
		Skip:           "Skip",
		Links:          "Suggested pages / documents",
		Sources:        "Sources",
		Placeholder:    "Type your question...",
		SourceFallback: "Source",
	},
}

// UI returns the interface copy for lang, defaulting to Italian.
func UI(lang assistant.Language) Strings {
	if s, ok := uiStrings[lang]; ok {
		return s
	}
	return uiStrings[assistant.DefaultLanguage]
}

// CitationLabel picks the most descriptive text of a citation: snippet, then
// title, then content, then a numbered placeholder. position is zero-based and
// only used when the citation carries no index.
func CitationLabel(c assistant.Citation, position int, lang assistant.Language) string {
	for _, s := range []string{c.Snippet, c.Title, c.Content} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	n := position + 1
	if c.Index != nil {
		n = *c.Index
	}
	return UI(lang).SourceFallback + " " + strconv.Itoa(n)
}

// VisibleCitations returns the citations shown under an answer.
func VisibleCitations(citations []assistant.Citation) []assistant.Citation {
	if len(citations) > MaxVisibleCitations {
		return citations[:MaxVisibleCitations]
	}
	return citations
}
