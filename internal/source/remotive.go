package source

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	Title           string `json:"title"`
	CompanyName     string `json:"company_name"`
	URL             string `json:"url"`
	Location        string `json:"candidate_required_location"`
	Description     string `json:"description"`
	PublicationDate string `json:"publication_date"`
	JobType         string `json:"job_type"`
	Salary          string `json:"salary"`
}

// Remotive fetches the Remotive public API with an upstream keyword search.
// Recency: 24h bucket then 7d bucket, no or unparseable date means recent;
// cap 20.
type Remotive struct {
	client *httpx.Client
	base   string
}

func NewRemotive(client *httpx.Client) *Remotive {
	return &Remotive{client: client, base: "https://remotive.com"}
}

func (s *Remotive) Name() string     { return "Remotive API" }
func (s *Remotive) Tier() model.Tier { return model.TierFree }

func (s *Remotive) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	endpoint := s.base + "/api/remote-jobs?search=" + url.QueryEscape(q.Keyword)
	var resp remotiveResponse
	if err := s.client.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("remotive: %w", err)
	}

	jobs := make([]model.Job, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		jobs = append(jobs, model.Job{
			Title:       orFallback(j.Title, fallbackTitle),
			Company:     orFallback(j.CompanyName, fallbackCompany),
			Location:    orFallback(j.Location, "Remote"),
			Link:        j.URL,
			Source:      "Remotive",
			Description: cleanDescription(j.Description),
			PostedAt:    parseTime(j.PublicationDate),
			JobType:     j.JobType,
			Salary:      j.Salary,
		})
	}
	return recencyBuckets(jobs, time.Now(), 20), nil
}
