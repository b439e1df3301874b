package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

type joobleRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
	Page     int    `json:"page"`
}

type joobleResponse struct {
	Jobs []joobleJob `json:"jobs"`
}

type joobleJob struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Salary   string `json:"salary"`
	Updated  string `json:"updated"`
}

// Jooble queries the Jooble search API. The API exposes no posting-date
// filter, so results are passed through unfiltered; cap 20. Requires an
// API key; without one the adapter contributes nothing.
type Jooble struct {
	client *httpx.Client
	base   string
	apiKey string
}

func NewJooble(client *httpx.Client, apiKey string) *Jooble {
	return &Jooble{client: client, base: "https://jooble.org", apiKey: apiKey}
}

func (s *Jooble) Name() string     { return "Jooble" }
func (s *Jooble) Tier() model.Tier { return model.TierKeyed }

func (s *Jooble) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	if s.apiKey == "" {
		slog.Info("source skipped, credential not configured", "source", s.Name())
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req := joobleRequest{Keywords: q.Keyword, Location: q.Location, Page: 1}
	var resp joobleResponse
	if err := s.client.PostJSON(ctx, s.base+"/api/"+s.apiKey, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("jooble: %w", err)
	}

	jobs := make([]model.Job, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		jobs = append(jobs, model.Job{
			Title:       orFallback(j.Title, fallbackTitle),
			Company:     orFallback(j.Company, fallbackCompany),
			Location:    orFallback(j.Location, q.Location),
			Link:        j.Link,
			Source:      "Jooble",
			Description: cleanDescription(j.Snippet),
			PostedAt:    parseTime(j.Updated),
			Salary:      j.Salary,
		})
	}
	return capJobs(jobs, 20), nil
}
