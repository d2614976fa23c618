package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creastat/assistant"
	"github.com/creastat/assistant/gateway"
)

func TestNew_ValidatesBaseURL(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL, c.BaseURL())

	c, err = New(Config{BaseURL: "https://assistente.example.it/api/"})
	require.NoError(t, err)
	require.Equal(t, "https://assistente.example.it/api", c.BaseURL())

	_, err = New(Config{BaseURL: "ftp://example.it"})
	require.ErrorIs(t, err, assistant.ErrInvalidConfig)

	_, err = New(Config{BaseURL: "http://"})
	require.ErrorIs(t, err, assistant.ErrInvalidConfig)
}

func TestFetchWelcome(t *testing.T) {
	var gotQuery atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/welcome", r.URL.Path)
		gotQuery.Store(r.URL.RawQuery)
		// no content type on purpose: the body must still be decoded as JSON
		_, _ = w.Write([]byte(`{"message":"Hello","available_domains":["hours"],"suggestions":["Q1","Q2"],"languages":["it","en"]}`))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL + "/api"})
	require.NoError(t, err)

	payload, err := c.FetchWelcome(context.Background(), assistant.LanguageEnglish)
	require.NoError(t, err)
	require.Equal(t, "lang=en", gotQuery.Load())
	require.Equal(t, "Hello", payload.Message)
	require.Equal(t, []string{"Q1", "Q2"}, payload.Suggestions)
	require.Equal(t, []assistant.Language{assistant.LanguageItalian, assistant.LanguageEnglish}, payload.SupportedLanguages())

	_, err = c.FetchWelcome(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "", gotQuery.Load())
}

func TestFetchWelcome_NonSuccessIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.FetchWelcome(context.Background(), "")
	require.Error(t, err)
	require.ErrorIs(t, err, assistant.ErrNetwork)

	var ne *gateway.NetworkError
	require.ErrorAs(t, err, &ne)
	require.Equal(t, http.StatusServiceUnavailable, ne.StatusCode)
	require.Contains(t, ne.Error(), "upstream down")
}

func TestFetchWelcome_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := New(Config{BaseURL: url})
	require.NoError(t, err)

	_, err = c.FetchWelcome(context.Background(), assistant.LanguageItalian)
	require.ErrorIs(t, err, assistant.ErrNetwork)
}

func TestSendChatMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chat", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "orari Legnago", body["message"])
		require.Equal(t, "hours", body["domain"])
		require.Equal(t, "it", body["language"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"response": "Apre alle 7:30.",
			"sources": [{"index": 1, "snippet": "orari"}],
			"links": [{"title": "Prelievi", "url": "https://www.aulss9.veneto.it", "source_type": "website"}],
			"stores_used": ["hours"],
			"domain": "hours",
			"suggested_questions": ["E il sabato?"]
		}`))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL + "/api"})
	require.NoError(t, err)

	req := gateway.NewChatRequest("orari Legnago", assistant.TopicHours, assistant.LanguageItalian, "")
	payload, err := c.SendChatMessage(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "Apre alle 7:30.", payload.Response)
	require.Equal(t, []string{"hours"}, payload.StoresUsed)
	require.Equal(t, []string{"E il sabato?"}, payload.Suggestions())
	require.NotNil(t, payload.Domain)
	require.Equal(t, "hours", *payload.Domain)
}

func TestSendChatMessage_NullDomainAndErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		v, present := body["domain"]
		require.True(t, present)
		require.Nil(t, v)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"boom"}`))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.SendChatMessage(context.Background(), gateway.NewChatRequest("ciao", "", assistant.LanguageItalian, ""))
	require.ErrorIs(t, err, assistant.ErrNetwork)
	require.EqualValues(t, 1, calls.Load())

	_, err = c.SendChatMessage(context.Background(), gateway.ChatRequest{Message: "   "})
	require.ErrorIs(t, err, assistant.ErrEmptyMessage)
	require.EqualValues(t, 1, calls.Load(), "empty messages never reach the backend")
}
