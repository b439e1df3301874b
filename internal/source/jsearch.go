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

// rapidHeader builds the standard RapidAPI auth headers.
func rapidHeader(host, key string) http.Header {
	h := http.Header{}
	h.Set("X-RapidAPI-Key", key)
	h.Set("X-RapidAPI-Host", host)
	return h
}

type jsearchResponse struct {
	Data []jsearchJob `json:"data"`
}

type jsearchJob struct {
	JobTitle       string `json:"job_title"`
	EmployerName   string `json:"employer_name"`
	JobCity        string `json:"job_city"`
	JobCountry     string `json:"job_country"`
	JobApplyLink   string `json:"job_apply_link"`
	JobGoogleLink  string `json:"job_google_link"`
	JobDescription string `json:"job_description"`
	JobPostedAtUTC string `json:"job_posted_at_datetime_utc"`
	JobEmployment  string `json:"job_employment_type"`
}

// JSearch queries the RapidAPI JSearch endpoint. The 24h window is applied
// upstream (date_posted=today); no local filtering; cap 20.
type JSearch struct {
	client *httpx.Client
	base   string
	host   string
	apiKey string
}

func NewJSearch(client *httpx.Client, apiKey string) *JSearch {
	return &JSearch{
		client: client,
		base:   "https://jsearch.p.rapidapi.com",
		host:   "jsearch.p.rapidapi.com",
		apiKey: apiKey,
	}
}

func (s *JSearch) Name() string     { return "JSearch (24h)" }
func (s *JSearch) Tier() model.Tier { return model.TierMetered }

func (s *JSearch) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	if s.apiKey == "" {
		slog.Info("source skipped, credential not configured", "source", s.Name())
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	params := url.Values{}
	params.Set("query", q.Keyword+" in "+orFallback(q.Location, "all"))
	params.Set("page", "1")
	params.Set("num_pages", "1")
	params.Set("date_posted", "today")

	var resp jsearchResponse
	err := s.client.GetJSON(ctx, s.base+"/search?"+params.Encode(), rapidHeader(s.host, s.apiKey), &resp)
	if err != nil {
		return nil, fmt.Errorf("jsearch: %w", err)
	}

	jobs := make([]model.Job, 0, len(resp.Data))
	for _, j := range resp.Data {
		location := j.JobCountry
		if j.JobCity != "" && j.JobCountry != "" {
			location = j.JobCity + ", " + j.JobCountry
		}
		link := j.JobApplyLink
		if link == "" {
			link = j.JobGoogleLink
		}
		jobs = append(jobs, model.Job{
			Title:       orFallback(j.JobTitle, fallbackTitle),
			Company:     orFallback(j.EmployerName, fallbackCompany),
			Location:    orFallback(location, q.Location),
			Link:        link,
			Source:      "JSearch (24h)",
			Description: cleanDescription(j.JobDescription),
			PostedAt:    parseTime(j.JobPostedAtUTC),
			JobType:     j.JobEmployment,
		})
	}
	return capJobs(jobs, 20), nil
}
