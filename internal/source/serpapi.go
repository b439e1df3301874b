package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

type serpAPIResponse struct {
	JobsResults []serpAPIJob `json:"jobs_results"`
}

type serpAPIJob struct {
	Title              string `json:"title"`
	CompanyName        string `json:"company_name"`
	Location           string `json:"location"`
	ShareURL           string `json:"share_url"`
	ApplyLink          string `json:"apply_link"`
	Description        string `json:"description"`
	Thumbnail          string `json:"thumbnail"`
	DetectedExtensions struct {
		PostedAt     string `json:"posted_at"`
		Salary       string `json:"salary"`
		ScheduleType string `json:"schedule_type"`
	} `json:"detected_extensions"`
}

// SerpAPIGoogleJobs queries Google Jobs through SerpApi. Recency: the
// upstream chips=date_posted:today parameter is the whole filter. Requires
// an API key; without one the adapter contributes nothing.
type SerpAPIGoogleJobs struct {
	client *httpx.Client
	base   string
	apiKey string
}

func NewSerpAPIGoogleJobs(client *httpx.Client, apiKey string) *SerpAPIGoogleJobs {
	return &SerpAPIGoogleJobs{client: client, base: "https://serpapi.com", apiKey: apiKey}
}

func (s *SerpAPIGoogleJobs) Name() string     { return "Google Jobs (SerpApi)" }
func (s *SerpAPIGoogleJobs) Tier() model.Tier { return model.TierPremium }

func (s *SerpAPIGoogleJobs) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	if s.apiKey == "" {
		slog.Info("source skipped, credential not configured", "source", s.Name())
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	params := url.Values{}
	params.Set("engine", "google_jobs")
	params.Set("q", q.Keyword)
	params.Set("location", q.Location)
	params.Set("api_key", s.apiKey)
	params.Set("chips", "date_posted:today")
	params.Set("lrad", "100")

	var resp serpAPIResponse
	if err := s.client.GetJSON(ctx, s.base+"/search?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("serpapi: %w", err)
	}

	jobs := make([]model.Job, 0, len(resp.JobsResults))
	for _, j := range resp.JobsResults {
		link := j.ShareURL
		if link == "" {
			link = j.ApplyLink
		}
		jobs = append(jobs, model.Job{
			Title:       orFallback(j.Title, fallbackTitle),
			Company:     orFallback(j.CompanyName, fallbackCompany),
			Location:    orFallback(j.Location, q.Location),
			Link:        link,
			Source:      "Google Jobs (SerpApi)",
			Description: cleanDescription(j.Description),
			PostedAt:    parseTime(j.DetectedExtensions.PostedAt),
			Salary:      j.DetectedExtensions.Salary,
			JobType:     j.DetectedExtensions.ScheduleType,
			Thumbnail:   j.Thumbnail,
		})
	}
	return jobs, nil
}
