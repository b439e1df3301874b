package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

// remoteOKJob is one element of the RemoteOK API array. The first element
// of the array is legal metadata, not a job; it is skipped by the missing
// position check.
type remoteOKJob struct {
	Slug        string   `json:"slug"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Epoch       int64    `json:"epoch"`
}

// RemoteOK fetches the RemoteOK public API. Recency: 24h bucket first, 7d
// bucket appended, no date means recent; combined cap 25.
type RemoteOK struct {
	client *httpx.Client
	base   string
}

func NewRemoteOK(client *httpx.Client) *RemoteOK {
	return &RemoteOK{client: client, base: "https://remoteok.com"}
}

func (s *RemoteOK) Name() string     { return "RemoteOK" }
func (s *RemoteOK) Tier() model.Tier { return model.TierFree }

func (s *RemoteOK) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var data []remoteOKJob
	if err := s.client.GetJSON(ctx, s.base+"/api", nil, &data); err != nil {
		return nil, fmt.Errorf("remoteok: %w", err)
	}

	terms := keywordTerms(q.Keyword)
	now := time.Now()

	var jobs []model.Job
	for _, j := range data {
		if j.Position == "" {
			continue
		}
		searchText := j.Position + " " + j.Company + " " + strings.Join(j.Tags, " ")
		if !matchesAnyTerm(searchText, terms) {
			continue
		}
		link := j.URL
		if link == "" {
			link = s.base + "/remote-jobs/" + j.Slug
		}
		job := model.Job{
			Title:       orFallback(j.Position, "Remote Position"),
			Company:     orFallback(j.Company, fallbackCompany),
			Location:    "Remote (Worldwide)",
			Link:        link,
			Source:      "RemoteOK",
			Description: cleanDescription(j.Description),
			Tags:        j.Tags,
		}
		if j.Epoch > 0 {
			t := time.Unix(j.Epoch, 0)
			job.PostedAt = &t
		}
		jobs = append(jobs, job)
	}
	return recencyBuckets(jobs, now, 25), nil
}
