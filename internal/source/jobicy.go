package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

type jobicyResponse struct {
	Jobs []jobicyJob `json:"jobs"`
}

type jobicyJob struct {
	JobTitle    string `json:"jobTitle"`
	CompanyName string `json:"companyName"`
	JobGeo      string `json:"jobGeo"`
	URL         string `json:"url"`
	JobExcerpt  string `json:"jobExcerpt"`
	PubDate     string `json:"pubDate"`
	JobType     string `json:"jobType"`
	JobIndustry string `json:"jobIndustry"`
}

// Jobicy fetches the Jobicy remote jobs API. The feed has no upstream
// search, so keyword (title) and location (jobGeo) filtering happens
// locally. Recency: strict 24h, records without a parseable date dropped;
// cap 20.
type Jobicy struct {
	client *httpx.Client
	base   string
}

func NewJobicy(client *httpx.Client) *Jobicy {
	return &Jobicy{client: client, base: "https://jobicy.com"}
}

func (s *Jobicy) Name() string     { return "Jobicy" }
func (s *Jobicy) Tier() model.Tier { return model.TierFree }

func (s *Jobicy) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var resp jobicyResponse
	if err := s.client.GetJSON(ctx, s.base+"/api/v2/remote-jobs", nil, &resp); err != nil {
		return nil, fmt.Errorf("jobicy: %w", err)
	}

	keyword := strings.ToLower(strings.TrimSpace(q.Keyword))
	location := strings.ToLower(strings.TrimSpace(q.Location))
	now := time.Now()

	var jobs []model.Job
	for _, j := range resp.Jobs {
		if keyword != "" && !strings.Contains(strings.ToLower(j.JobTitle), keyword) {
			continue
		}
		if location != "" && location != "all" && !strings.Contains(strings.ToLower(j.JobGeo), location) {
			continue
		}
		postedAt := parseTime(j.PubDate, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02")
		if postedAt == nil || now.Sub(*postedAt) > day {
			continue
		}
		jobs = append(jobs, model.Job{
			Title:       orFallback(j.JobTitle, fallbackTitle),
			Company:     orFallback(j.CompanyName, fallbackCompany),
			Location:    orFallback(j.JobGeo, "Remote"),
			Link:        j.URL,
			Source:      "Jobicy",
			Description: cleanDescription(j.JobExcerpt),
			PostedAt:    postedAt,
			JobType:     j.JobType,
			Industry:    j.JobIndustry,
		})
	}
	return capJobs(jobs, 20), nil
}
