package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

func TestRemoteOKFetch_Success(t *testing.T) {
	epoch := time.Now().Add(-2 * time.Hour).Unix()
	payload := `[
		{"legal": "API terms here"},
		{"slug": "go-engineer-acme", "position": "Go Engineer", "company": "Acme", "url": "https://remoteok.com/remote-jobs/1", "tags": ["golang", "backend"], "description": "<p>Build services</p>", "epoch": ` + itoa(epoch) + `},
		{"slug": "accountant-ledger", "position": "Accountant", "company": "Ledger Inc", "url": "https://remoteok.com/remote-jobs/2", "epoch": ` + itoa(epoch) + `}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	adapter := &RemoteOK{client: httpx.NewClient(5 * time.Second), base: srv.URL}

	jobs, err := adapter.Fetch(context.Background(), model.Query{Keyword: "golang"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job (metadata element and non-matching title filtered), got %d", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Go Engineer" {
		t.Errorf("expected title Go Engineer, got %s", j.Title)
	}
	if j.Company != "Acme" {
		t.Errorf("expected company Acme, got %s", j.Company)
	}
	if j.Source != "RemoteOK" {
		t.Errorf("expected source RemoteOK, got %s", j.Source)
	}
	if j.Description != "Build services" {
		t.Errorf("expected markup stripped from description, got %q", j.Description)
	}
	if j.PostedAt == nil {
		t.Error("expected posted date from epoch")
	}
}

func TestRemoteOKFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	adapter := &RemoteOK{client: httpx.NewClient(5 * time.Second), base: srv.URL}

	if _, err := adapter.Fetch(context.Background(), model.Query{Keyword: "golang"}); err == nil {
		t.Fatal("expected error on HTTP 500")
	}
}

func TestRemoteOKFetch_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer srv.Close()

	adapter := &RemoteOK{client: httpx.NewClient(5 * time.Second), base: srv.URL}

	if _, err := adapter.Fetch(context.Background(), model.Query{Keyword: "golang"}); err == nil {
		t.Fatal("expected error on malformed payload")
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
