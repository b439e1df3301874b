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

type linkedInJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	JobURL      string `json:"job_url"`
	URL         string `json:"url"`
	Description string `json:"description"`
	PostedDate  string `json:"posted_date"`
	ListedAt    string `json:"listed_at"`
	Date        string `json:"date"`
}

func (j linkedInJob) postedTime() *time.Time {
	for _, v := range []string{j.PostedDate, j.Date, j.ListedAt} {
		if t := parseTime(v); t != nil {
			return t
		}
	}
	return nil
}

// LinkedInJobs queries the RapidAPI LinkedIn job search 24h endpoint.
// Recency: strict 24h enforced locally on top of the upstream window;
// records without a parseable date are dropped.
type LinkedInJobs struct {
	client *httpx.Client
	base   string
	host   string
	apiKey string
}

func NewLinkedInJobs(client *httpx.Client, apiKey string) *LinkedInJobs {
	return &LinkedInJobs{
		client: client,
		base:   "https://linkedin-job-search-api.p.rapidapi.com",
		host:   "linkedin-job-search-api.p.rapidapi.com",
		apiKey: apiKey,
	}
}

func (s *LinkedInJobs) Name() string     { return "LinkedIn API (24h)" }
func (s *LinkedInJobs) Tier() model.Tier { return model.TierMetered }

func (s *LinkedInJobs) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	if s.apiKey == "" {
		slog.Info("source skipped, credential not configured", "source", s.Name())
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	params := url.Values{}
	params.Set("limit", "20")
	params.Set("offset", "0")
	params.Set("title_filter", fmt.Sprintf("%q", q.Keyword))
	params.Set("location_filter", fmt.Sprintf("%q", q.Location))
	params.Set("description_type", "text")

	body, err := s.client.GetBytes(ctx, s.base+"/active-jb-24h?"+params.Encode(), rapidHeader(s.host, s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("linkedin: %w", err)
	}

	// The endpoint answers either a bare array or an object wrapping it.
	var data []linkedInJob
	if err := json.Unmarshal(body, &data); err != nil {
		var wrapped struct {
			Jobs []linkedInJob `json:"jobs"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("linkedin: decode failed: %w", err)
		}
		data = wrapped.Jobs
	}

	now := time.Now()
	var jobs []model.Job
	for _, j := range data {
		postedAt := j.postedTime()
		if postedAt == nil || now.Sub(*postedAt) > day {
			continue
		}
		link := j.JobURL
		if link == "" {
			link = j.URL
		}
		company := j.Company
		if company == "" {
			company = j.CompanyName
		}
		jobs = append(jobs, model.Job{
			Title:       orFallback(j.Title, fallbackTitle),
			Company:     orFallback(company, fallbackCompany),
			Location:    orFallback(j.Location, q.Location),
			Link:        link,
			Source:      "LinkedIn API (24h)",
			Description: cleanDescription(j.Description),
			PostedAt:    postedAt,
		})
	}
	return jobs, nil
}
