package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creastat/assistant"
)

func TestTopicLabel(t *testing.T) {
	require.Equal(t, "Orari", TopicLabel(assistant.TopicHours, assistant.LanguageItalian))
	require.Equal(t, "Opening hours", TopicLabel(assistant.TopicHours, assistant.LanguageEnglish))
	require.Equal(t, "Documenti", TopicLabel(assistant.TopicDocs, assistant.LanguageItalian))
	require.Equal(t, "Sedi", TopicLabel(assistant.TopicLocations, ""), "undecided language uses Italian")
	require.Equal(t, "parking", TopicLabel("parking", assistant.LanguageEnglish))

	for _, topic := range assistant.Topics() {
		require.NotEqual(t, string(topic), TopicLabel(topic, assistant.LanguageEnglish))
	}
}

func TestUI(t *testing.T) {
	require.Equal(t, "Nuova chat", UI(assistant.LanguageItalian).NewChat)
	require.Equal(t, "New chat", UI(assistant.LanguageEnglish).NewChat)
	require.Equal(t, UI(assistant.LanguageItalian), UI("de"))
}

func TestCitationLabel(t *testing.T) {
	idx := 7
	tests := []struct {
		name     string
		citation assistant.Citation
		lang     assistant.Language
		want     string
	}{
		{"snippet wins", assistant.Citation{Snippet: "snip", Title: "title", Content: "body"}, assistant.LanguageItalian, "snip"},
		{"title", assistant.Citation{Title: "title", Content: "body"}, assistant.LanguageItalian, "title"},
		{"content", assistant.Citation{Snippet: "  ", Content: "body"}, assistant.LanguageItalian, "body"},
		{"index", assistant.Citation{Index: &idx}, assistant.LanguageItalian, "Fonte 7"},
		{"position", assistant.Citation{URL: "https://example.org"}, assistant.LanguageEnglish, "Source 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CitationLabel(tt.citation, 2, tt.lang))
		})
	}
}

func TestVisibleCitations(t *testing.T) {
	cs := make([]assistant.Citation, 5)
	require.Len(t, VisibleCitations(cs), MaxVisibleCitations)
	require.Len(t, VisibleCitations(cs[:2]), 2)
	require.Empty(t, VisibleCitations(nil))
}

func TestFormatMessage(t *testing.T) {
	out, err := FormatMessage("**Orari**\nlun-ven 8:00")
	require.NoError(t, err)
	require.Equal(t, "<p><strong>Orari</strong><br>\nlun-ven 8:00</p>\n", out)

	out, err = FormatMessage("<script>alert(1)</script>")
	require.NoError(t, err)
	require.NotContains(t, out, "<script>")

	out, err = FormatMessage("Vedi https://www.aulss9.veneto.it")
	require.NoError(t, err)
	require.Contains(t, out, `<a href="https://www.aulss9.veneto.it">`)
}
