package reflection_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chris-regnier/moodctl/internal/reflection"
)

func TestClientComplete(t *testing.T) {
	var got struct {
		Model    string                   `json:"model"`
		Messages []reflection.ChatMessage `json:"messages"`
	}
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"How did that feel?"}}]}`))
	}))
	defer srv.Close()

	c := reflection.NewClient(srv.URL+"/v1/", "test-model", "sk-test", 5*time.Second)
	reply, err := c.Complete(context.Background(), []reflection.ChatMessage{
		{Role: "system", Content: "be kind"},
		{Role: "user", Content: "I swam today"},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "How did that feel?" {
		t.Errorf("reply = %q", reply)
	}
	if got.Model != "test-model" || len(got.Messages) != 2 || got.Messages[1].Content != "I swam today" {
		t.Errorf("request = %+v", got)
	}
	if auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", auth)
	}
}

func TestClientCompleteErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"api error message", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, "bad key"},
		{"plain status", http.StatusBadGateway, `upstream down`, "502"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no choices"},
		{"malformed body", http.StatusOK, `{`, "decoding response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := reflection.NewClient(srv.URL, "m", "", time.Second)
			_, err := c.Complete(context.Background(), nil)
			if !errors.Is(err, reflection.ErrTransport) {
				t.Fatalf("expected ErrTransport, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestClientHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := reflection.NewClient(srv.URL, "m", "", time.Minute)
	if _, err := c.Complete(ctx, nil); !errors.Is(err, reflection.ErrTransport) {
		t.Errorf("expected ErrTransport for cancelled context, got %v", err)
	}
}
