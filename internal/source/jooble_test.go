package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

func TestJoobleFetch_NoCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("adapter without a key must not call the API")
	}))
	defer srv.Close()

	adapter := &Jooble{client: httpx.NewClient(5 * time.Second), base: srv.URL, apiKey: ""}

	jobs, err := adapter.Fetch(context.Background(), model.Query{Keyword: "golang"})
	if err != nil {
		t.Fatalf("missing credential must not be an error, got %v", err)
	}
	if jobs != nil {
		t.Fatalf("expected no jobs, got %d", len(jobs))
	}
}

func TestJoobleFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/secret-key" {
			t.Errorf("expected key in path, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jobs": [
			{"title": "Go Developer", "company": "Acme", "location": "Berlin", "link": "https://jooble.org/j/1", "snippet": "Write Go", "salary": "90k", "updated": "2026-08-31T09:00:00Z"},
			{"title": "", "company": "", "location": "", "link": "https://jooble.org/j/2", "snippet": ""}
		]}`))
	}))
	defer srv.Close()

	adapter := &Jooble{client: httpx.NewClient(5 * time.Second), base: srv.URL, apiKey: "secret-key"}

	jobs, err := adapter.Fetch(context.Background(), model.Query{Keyword: "golang", Location: "Berlin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Title != "Go Developer" || jobs[0].Salary != "90k" {
		t.Errorf("unexpected first job: %+v", jobs[0])
	}
	if jobs[0].PostedAt == nil {
		t.Error("expected updated timestamp parsed")
	}
	// Blank fields fall back to placeholders.
	if jobs[1].Title != "Position" || jobs[1].Company != "Company" {
		t.Errorf("expected fallbacks for blank fields, got %q / %q", jobs[1].Title, jobs[1].Company)
	}
}
