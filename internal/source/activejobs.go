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

type activeJobsJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	ApplyURL    string `json:"apply_url"`
	Description string `json:"description"`
	PostedDate  string `json:"posted_date"`
}

// ActiveJobsDB queries the RapidAPI Active Jobs DB 7-day ATS feed.
// Recency: the upstream window is 7 days; locally the last-24h postings are
// ordered first with older ones appended; no date means recent; cap 30.
type ActiveJobsDB struct {
	client *httpx.Client
	base   string
	host   string
	apiKey string
}

func NewActiveJobsDB(client *httpx.Client, apiKey string) *ActiveJobsDB {
	return &ActiveJobsDB{
		client: client,
		base:   "https://active-jobs-db.p.rapidapi.com",
		host:   "active-jobs-db.p.rapidapi.com",
		apiKey: apiKey,
	}
}

func (s *ActiveJobsDB) Name() string     { return "ActiveJobsDB" }
func (s *ActiveJobsDB) Tier() model.Tier { return model.TierMetered }

func (s *ActiveJobsDB) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	if s.apiKey == "" {
		slog.Info("source skipped, credential not configured", "source", s.Name())
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	params := url.Values{}
	params.Set("limit", "30")
	params.Set("offset", "0")
	params.Set("title_filter", q.Keyword)
	params.Set("location_filter", q.Location)
	params.Set("description_type", "text")

	var data []activeJobsJob
	err := s.client.GetJSON(ctx, s.base+"/active-ats-7d?"+params.Encode(), rapidHeader(s.host, s.apiKey), &data)
	if err != nil {
		return nil, fmt.Errorf("activejobsdb: %w", err)
	}

	jobs := make([]model.Job, 0, len(data))
	for _, j := range data {
		link := j.URL
		if link == "" {
			link = j.ApplyURL
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
			Source:      "ActiveJobsDB",
			Description: cleanDescription(j.Description),
			PostedAt:    parseTime(j.PostedDate),
		})
	}
	return recencyBuckets(jobs, time.Now(), 30), nil
}
