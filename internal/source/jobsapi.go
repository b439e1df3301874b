package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

type jobsAPIResponse struct {
	Jobs []jobsAPIJob `json:"jobs"`
}

type jobsAPIJob struct {
	Title          string          `json:"title"`
	Company        json.RawMessage `json:"company"`
	Location       string          `json:"location"`
	URL            string          `json:"url"`
	Description    string          `json:"description"`
	DatePosted     string          `json:"datePosted"`
	Salary         string          `json:"salary"`
	EmploymentType string          `json:"employmentType"`
	JobProviders   []struct {
		URL string `json:"url"`
	} `json:"jobProviders"`
}

// companyName tolerates the two shapes the API emits: a plain string or an
// object with a name field.
func (j jobsAPIJob) companyName() string {
	var s string
	if err := json.Unmarshal(j.Company, &s); err == nil {
		return s
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(j.Company, &obj); err == nil {
		return obj.Name
	}
	return ""
}

// JobsAPIUnified queries the RapidAPI jobs-api14 multi-platform list.
// Recency: the upstream datePosted=today parameter is the whole filter;
// nothing local. Links may be protocol- or site-relative and are resolved
// to absolute form.
type JobsAPIUnified struct {
	client *httpx.Client
	base   string
	host   string
	apiKey string
}

func NewJobsAPIUnified(client *httpx.Client, apiKey string) *JobsAPIUnified {
	return &JobsAPIUnified{
		client: client,
		base:   "https://jobs-api14.p.rapidapi.com",
		host:   "jobs-api14.p.rapidapi.com",
		apiKey: apiKey,
	}
}

func (s *JobsAPIUnified) Name() string     { return "Jobs API (Unified)" }
func (s *JobsAPIUnified) Tier() model.Tier { return model.TierMetered }

func (s *JobsAPIUnified) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	if s.apiKey == "" {
		slog.Info("source skipped, credential not configured", "source", s.Name())
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	params := url.Values{}
	params.Set("query", q.Keyword)
	params.Set("location", q.Location)
	params.Set("autoTranslateLocation", "false")
	params.Set("remoteOnly", "false")
	params.Set("employmentTypes", "fulltime;parttime;intern;contractor")
	params.Set("datePosted", "today")
	params.Set("page", "1")

	var resp jobsAPIResponse
	err := s.client.GetJSON(ctx, s.base+"/v2/list?"+params.Encode(), rapidHeader(s.host, s.apiKey), &resp)
	if err != nil {
		return nil, fmt.Errorf("jobsapi: %w", err)
	}

	jobs := make([]model.Job, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		link := j.URL
		if len(j.JobProviders) > 0 && j.JobProviders[0].URL != "" {
			link = j.JobProviders[0].URL
		}
		jobs = append(jobs, model.Job{
			Title:       orFallback(j.Title, fallbackTitle),
			Company:     orFallback(j.companyName(), fallbackCompany),
			Location:    orFallback(j.Location, q.Location),
			Link:        absoluteLink(link, "https://www.linkedin.com"),
			Source:      "Jobs API (Unified)",
			Description: cleanDescription(j.Description),
			PostedAt:    parseTime(j.DatePosted),
			Salary:      j.Salary,
			JobType:     j.EmploymentType,
		})
	}
	return capJobs(jobs, 20), nil
}
