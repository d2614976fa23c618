package assistant

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	lang, ok := ParseLanguage("it")
	require.True(t, ok)
	require.Equal(t, LanguageItalian, lang)

	lang, ok = ParseLanguage(" EN ")
	require.True(t, ok)
	require.Equal(t, LanguageEnglish, lang)

	for _, bad := range []string{"", "fr", "italian", "null"} {
		_, ok := ParseLanguage(bad)
		require.False(t, ok, bad)
	}
}

func TestParseTopic(t *testing.T) {
	for _, topic := range Topics() {
		got, ok := ParseTopic(string(topic))
		require.True(t, ok)
		require.Equal(t, topic, got)
	}

	_, ok := ParseTopic("docs")
	require.False(t, ok, "docs is a label-only store")
	_, ok = ParseTopic("")
	require.False(t, ok)
}

func TestSuggestedLinkNavigable(t *testing.T) {
	require.True(t, SuggestedLink{Title: "Orari", URL: "https://www.aulss9.veneto.it"}.Navigable())
	require.False(t, SuggestedLink{Title: "Modulo.pdf", DocumentID: "doc-1"}.Navigable())
	require.False(t, SuggestedLink{Title: "blank", URL: "   "}.Navigable())
}

func TestConversationMessageClone(t *testing.T) {
	idx := 2
	msg := ConversationMessage{
		Citations: []Citation{{Index: &idx, Title: "a"}},
		Links:     []SuggestedLink{{Title: "l"}},
		Topics:    []Topic{TopicHours},
	}
	clone := msg.Clone()
	*clone.Citations[0].Index = 9
	clone.Links[0].Title = "changed"
	clone.Topics[0] = TopicServices

	require.Equal(t, 2, *msg.Citations[0].Index)
	require.Equal(t, "l", msg.Links[0].Title)
	require.Equal(t, TopicHours, msg.Topics[0])
}
