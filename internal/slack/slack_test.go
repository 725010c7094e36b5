package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPost(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
	}))
	defer srv.Close()

	if err := New(srv.URL).Post(context.Background(), "3 issues assigned"); err != nil {
		t.Fatalf("post: %v", err)
	}
	if got["text"] != "3 issues assigned" {
		t.Fatalf("unexpected payload %v", got)
	}
}

func TestPostNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no_service", http.StatusGone)
	}))
	defer srv.Close()

	err := New(srv.URL).Post(context.Background(), "hello")
	if err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
}
