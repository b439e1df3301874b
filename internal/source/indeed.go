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

type indeedJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	JobURL      string `json:"job_url"`
	Description string `json:"description"`
	Date        string `json:"date"`
	PostedDate  string `json:"posted_date"`
}

// Indeed queries the RapidAPI Indeed feed. Recency: strict 24h; records
// without a date field are dropped outright.
type Indeed struct {
	client *httpx.Client
	base   string
	host   string
	apiKey string
}

func NewIndeed(client *httpx.Client, apiKey string) *Indeed {
	return &Indeed{
		client: client,
		base:   "https://indeed-jobs-api-finland.p.rapidapi.com",
		host:   "indeed-jobs-api-finland.p.rapidapi.com",
		apiKey: apiKey,
	}
}

func (s *Indeed) Name() string     { return "Indeed API (24h)" }
func (s *Indeed) Tier() model.Tier { return model.TierMetered }

func (s *Indeed) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	if s.apiKey == "" {
		slog.Info("source skipped, credential not configured", "source", s.Name())
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	params := url.Values{}
	params.Set("offset", "0")
	params.Set("keyword", q.Keyword)
	params.Set("location", q.Location)

	body, err := s.client.GetBytes(ctx, s.base+"/indeed-fi/?"+params.Encode(), rapidHeader(s.host, s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("indeed: %w", err)
	}

	var data []indeedJob
	if err := json.Unmarshal(body, &data); err != nil {
		var wrapped struct {
			Jobs []indeedJob `json:"jobs"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("indeed: decode failed: %w", err)
		}
		data = wrapped.Jobs
	}

	now := time.Now()
	var jobs []model.Job
	for _, j := range data {
		dateVal := j.Date
		if dateVal == "" {
			dateVal = j.PostedDate
		}
		postedAt := parseTime(dateVal)
		if postedAt == nil || now.Sub(*postedAt) > day {
			continue
		}
		link := j.URL
		if link == "" {
			link = j.JobURL
		}
		jobs = append(jobs, model.Job{
			Title:       orFallback(j.Title, fallbackTitle),
			Company:     orFallback(j.Company, fallbackCompany),
			Location:    orFallback(j.Location, q.Location),
			Link:        link,
			Source:      "Indeed API (24h)",
			Description: cleanDescription(j.Description),
			PostedAt:    postedAt,
		})
	}
	return jobs, nil
}
