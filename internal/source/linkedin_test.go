package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

func TestLinkedInJobsFetch_Strict24h(t *testing.T) {
	fresh := time.Now().Add(-3 * time.Hour).Format(time.RFC3339)
	stale := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-RapidAPI-Key") != "rapid-key" {
			t.Errorf("expected rapidapi key header, got %q", r.Header.Get("X-RapidAPI-Key"))
		}
		payload := fmt.Sprintf(`[
			{"title": "Go Engineer", "company": "Acme", "location": "Remote", "job_url": "https://linkedin.com/jobs/1", "posted_date": %q},
			{"title": "Stale Role", "company": "Old Co", "location": "Remote", "job_url": "https://linkedin.com/jobs/2", "posted_date": %q},
			{"title": "Undated Role", "company": "Mystery", "location": "Remote", "job_url": "https://linkedin.com/jobs/3"}
		]`, fresh, stale)
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	adapter := &LinkedInJobs{client: httpx.NewClient(5 * time.Second), base: srv.URL, host: "test", apiKey: "rapid-key"}

	jobs, err := adapter.Fetch(context.Background(), model.Query{Keyword: "golang", Location: "Remote"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected only the job inside 24h with a parseable date, got %d", len(jobs))
	}
	if jobs[0].Title != "Go Engineer" {
		t.Errorf("unexpected survivor: %s", jobs[0].Title)
	}
}

func TestLinkedInJobsFetch_WrappedShape(t *testing.T) {
	fresh := time.Now().Add(-1 * time.Hour).Format(time.RFC3339)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := fmt.Sprintf(`{"jobs": [
			{"title": "Go Engineer", "company_name": "Acme", "location": "Remote", "url": "https://linkedin.com/jobs/1", "posted_date": %q}
		]}`, fresh)
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	adapter := &LinkedInJobs{client: httpx.NewClient(5 * time.Second), base: srv.URL, host: "test", apiKey: "rapid-key"}

	jobs, err := adapter.Fetch(context.Background(), model.Query{Keyword: "golang"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected wrapped object shape decoded, got %d jobs", len(jobs))
	}
	if jobs[0].Company != "Acme" {
		t.Errorf("expected company_name fallback, got %s", jobs[0].Company)
	}
	if jobs[0].Link != "https://linkedin.com/jobs/1" {
		t.Errorf("expected url fallback, got %s", jobs[0].Link)
	}
}

func TestLinkedInJobsFetch_NoCredential(t *testing.T) {
	adapter := &LinkedInJobs{client: httpx.NewClient(5 * time.Second), apiKey: ""}

	jobs, err := adapter.Fetch(context.Background(), model.Query{Keyword: "golang"})
	if err != nil || jobs != nil {
		t.Fatalf("missing credential must yield (nil, nil), got %v / %v", jobs, err)
	}
}
