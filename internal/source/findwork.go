package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

type findworkResponse struct {
	Results []findworkJob `json:"results"`
}

type findworkJob struct {
	Role        string   `json:"role"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	URL         string   `json:"url"`
	Text        string   `json:"text"`
	Keywords    []string `json:"keywords"`
	DatePosted  string   `json:"date_posted"`
	CreatedAt   string   `json:"created_at"`
	PostedAt    string   `json:"posted_at"`
}

func (j findworkJob) postedTime() *time.Time {
	for _, v := range []string{j.CreatedAt, j.DatePosted, j.PostedAt} {
		if t := parseTime(v); t != nil {
			return t
		}
	}
	return nil
}

// FindWork queries the findwork.dev API with token auth. Recency: 24h
// bucket then 7d bucket, no date means recent; cap 20. Requires an API
// key; without one the adapter contributes nothing.
type FindWork struct {
	client *httpx.Client
	base   string
	apiKey string
}

func NewFindWork(client *httpx.Client, apiKey string) *FindWork {
	return &FindWork{client: client, base: "https://findwork.dev", apiKey: apiKey}
}

func (s *FindWork) Name() string     { return "FindWork" }
func (s *FindWork) Tier() model.Tier { return model.TierKeyed }

func (s *FindWork) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	if s.apiKey == "" {
		slog.Info("source skipped, credential not configured", "source", s.Name())
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	header := http.Header{}
	header.Set("Authorization", "Token "+s.apiKey)
	header.Set("Accept", "application/json")

	endpoint := s.base + "/api/jobs/?search=" + url.QueryEscape(q.Keyword)
	var resp findworkResponse
	if err := s.client.GetJSON(ctx, endpoint, header, &resp); err != nil {
		return nil, fmt.Errorf("findwork: %w", err)
	}

	jobs := make([]model.Job, 0, len(resp.Results))
	for _, j := range resp.Results {
		jobs = append(jobs, model.Job{
			Title:       orFallback(j.Role, fallbackTitle),
			Company:     orFallback(j.CompanyName, fallbackCompany),
			Location:    orFallback(j.Location, "Remote"),
			Link:        j.URL,
			Source:      "FindWork",
			Description: cleanDescription(j.Text),
			PostedAt:    j.postedTime(),
			Tags:        j.Keywords,
		})
	}
	return recencyBuckets(jobs, time.Now(), 20), nil
}
