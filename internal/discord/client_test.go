package discord

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"raw token", "abc.def.ghi", "abc.def.ghi"},
		{"bot prefix stripped", "Bot abc.def.ghi", "abc.def.ghi"},
		{"surrounding whitespace", "  Bot abc.def.ghi  ", "abc.def.ghi"},
		{"whitespace after prefix", "Bot   abc", "abc"},
		{"lowercase prefix kept", "bot abc", "bot abc"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeToken(tt.in); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFetchGuildMember_SendsBotAuthorization(t *testing.T) {
	var gotAuth, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id":"111","username":"jal","discriminator":"0","global_name":"Jal","avatar":"abc"},"nick":"streamer","avatar":null}`))
	}))
	defer ts.Close()

	// token colado com prefixo tem que normalizar pro mesmo header
	c := NewClient(testLogger(), "Bot tok123")
	c.BaseURL = ts.URL

	member, err := c.FetchGuildMember(context.Background(), "222", "111")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bot tok123" {
		t.Errorf("expected Authorization %q, got %q", "Bot tok123", gotAuth)
	}
	if gotPath != "/guilds/222/members/111" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if member.User.ID != "111" || member.User.Username != "jal" {
		t.Errorf("unexpected member: %+v", member)
	}
	if member.Nick == nil || *member.Nick != "streamer" {
		t.Errorf("expected nick streamer, got %v", member.Nick)
	}
	if member.Avatar != nil {
		t.Errorf("expected null guild avatar, got %v", *member.Avatar)
	}
}

func TestFetchRecentMessages_UsesFixedLimit(t *testing.T) {
	var gotLimit string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"2","content":"newest"},{"id":"1","content":"oldest"}]`))
	}))
	defer ts.Close()

	c := NewClient(testLogger(), "tok")
	c.BaseURL = ts.URL

	msgs, err := c.FetchRecentMessages(context.Background(), "333")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotLimit != "20" {
		t.Errorf("expected limit=20, got %q", gotLimit)
	}
	if len(msgs) != 2 || msgs[0].ID != "2" {
		t.Errorf("unexpected messages: %+v", msgs)
	}
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected error
	}{
		{"401 maps to unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"403 maps to forbidden", http.StatusForbidden, ErrForbidden},
		{"500 maps to unavailable", http.StatusInternalServerError, ErrUnavailable},
		{"502 maps to unavailable", http.StatusBadGateway, ErrUnavailable},
		{"404 maps to unavailable", http.StatusNotFound, ErrUnavailable},
		{"429 maps to unavailable", http.StatusTooManyRequests, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
			}))
			defer ts.Close()

			c := NewClient(testLogger(), "tok")
			c.BaseURL = ts.URL

			_, err := c.FetchGuildMember(context.Background(), "222", "111")
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
			// uma tentativa só, sem retry
			if calls != 1 {
				t.Errorf("expected exactly 1 upstream call, got %d", calls)
			}
		})
	}
}

func TestClient_NetworkErrorIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // fecha antes de usar pra forçar connection refused

	c := NewClient(testLogger(), "tok")
	c.BaseURL = ts.URL

	_, err := c.FetchGuildMember(context.Background(), "222", "111")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestClient_DecodeErrorIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer ts.Close()

	c := NewClient(testLogger(), "tok")
	c.BaseURL = ts.URL

	_, err := c.FetchRecentMessages(context.Background(), "333")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
