package controller

import (
	"github.com/creastat/assistant"
	"github.com/creastat/assistant/gateway"
)

// Content is locally synthesized welcome content used when the backend
// cannot provide one.
type Content struct {
	Greeting    string
	Suggestions []string
}

var fallbackContent = map[assistant.Language]Content{
	assistant.LanguageItalian: {
		Greeting: "👋 Benvenuto nell'assistente ULSS 9 Scaligera. Scrivi una domanda per trovare informazioni sul sito aulss9.veneto.it.",
		Suggestions: []string{
			"Quali sono gli orari del punto prelievi di Legnago?",
			"Dove si trova l'Ospedale Magalini di Villafranca?",
			"Come prenotare una visita specialistica?",
		},
	},
	assistant.LanguageEnglish: {
		Greeting: "👋 Welcome to the ULSS 9 Scaligera assistant. Ask a question to find information on the aulss9.veneto.it website.",
		Suggestions: []string{
			"What are the opening hours of the Legnago blood draw point?",
			"Where is Magalini Hospital in Villafranca?",
			"How do I book a specialist visit?",
		},
	},
}

var apologies = map[assistant.Language]string{
	assistant.LanguageItalian: "❌ Si è verificato un errore. Riprova o verifica che il backend sia avviato.",
	assistant.LanguageEnglish: "❌ Something went wrong. Please try again or check that the backend is running.",
}

// ConnectivityWarning is shown when the initial welcome fetch fails.
const ConnectivityWarning = "Impossibile connettersi al server. Verifica che il backend sia avviato."

// Fallback returns the hard-coded welcome content for lang.
func Fallback(lang assistant.Language) Content {
	c, ok := fallbackContent[lang]
	if !ok {
		c = fallbackContent[assistant.DefaultLanguage]
	}
	return Content{Greeting: c.Greeting, Suggestions: append([]string(nil), c.Suggestions...)}
}

// Apology returns the synthetic answer used when a chat request fails.
func Apology(lang assistant.Language) string {
	if text, ok := apologies[lang]; ok {
		return text
	}
	return apologies[assistant.DefaultLanguage]
}

// welcomeContent prefers the last payload the backend sent over the hard-coded text.
func welcomeContent(last *gateway.WelcomePayload, lang assistant.Language) Content {
	if last != nil {
		return Content{Greeting: last.Message, Suggestions: append([]string(nil), last.Suggestions...)}
	}
	return Fallback(lang)
}
