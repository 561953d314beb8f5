package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPublishDecisionPostsComment(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		gotBody = payload["body"]

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	notifier := NewNotifier(server.URL, "pubroot/journal", "ghp_test")
	err := notifier.PublishDecision(context.Background(), 42, "Accepted with score 7.5/10")
	if err != nil {
		t.Fatalf("PublishDecision: %v", err)
	}

	if gotPath != "/repos/pubroot/journal/issues/42/comments" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer ghp_test" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotBody != "Accepted with score 7.5/10" {
		t.Errorf("body = %q", gotBody)
	}
}

func TestPublishDecisionErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	notifier := NewNotifier(server.URL, "pubroot/journal", "bad-token")
	err := notifier.PublishDecision(context.Background(), 1, "msg")
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected 401 error, got %v", err)
	}
}

func TestPublishDecisionRequiresToken(t *testing.T) {
	t.Parallel()

	notifier := NewNotifier("", "pubroot/journal", "")
	if err := notifier.PublishDecision(context.Background(), 1, "msg"); err == nil {
		t.Fatal("expected misconfiguration error")
	}
}
