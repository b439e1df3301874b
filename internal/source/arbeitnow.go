package source

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

type arbeitnowResponse struct {
	Data []arbeitnowJob `json:"data"`
}

type arbeitnowJob struct {
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Remote      bool     `json:"remote"`
	CreatedAt   int64    `json:"created_at"`
}

// Arbeitnow fetches the Arbeitnow job board API. Recency: postings from the
// last 24 hours; a missing date means keep; cap 20.
type Arbeitnow struct {
	client *httpx.Client
	base   string
}

func NewArbeitnow(client *httpx.Client) *Arbeitnow {
	return &Arbeitnow{client: client, base: "https://www.arbeitnow.com"}
}

func (s *Arbeitnow) Name() string     { return "Arbeitnow" }
func (s *Arbeitnow) Tier() model.Tier { return model.TierFree }

func (s *Arbeitnow) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	params := url.Values{}
	params.Set("search", q.Keyword)
	params.Set("location", q.Location)
	params.Set("page", "1")

	var resp arbeitnowResponse
	if err := s.client.GetJSON(ctx, s.base+"/api/job-board-api?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("arbeitnow: %w", err)
	}

	now := time.Now()
	var jobs []model.Job
	for _, j := range resp.Data {
		var postedAt *time.Time
		if j.CreatedAt > 0 {
			t := time.Unix(j.CreatedAt, 0)
			if now.Sub(t) > day {
				continue
			}
			postedAt = &t
		}
		jobs = append(jobs, model.Job{
			Title:       orFallback(j.Title, fallbackTitle),
			Company:     orFallback(j.CompanyName, fallbackCompany),
			Location:    orFallback(j.Location, q.Location),
			Link:        j.URL,
			Source:      "Arbeitnow",
			Description: cleanDescription(j.Description),
			PostedAt:    postedAt,
			Tags:        j.Tags,
			Remote:      j.Remote,
		})
	}
	return capJobs(jobs, 20), nil
}
