package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

// RemotiveRSS fetches the single Remotive feed. Recency: strict 24h, items
// without a parseable date dropped; keyword must appear in the title;
// cap 20.
type RemotiveRSS struct {
	client  *httpx.Client
	feedURL string
}

func NewRemotiveRSS(client *httpx.Client) *RemotiveRSS {
	return &RemotiveRSS{client: client, feedURL: "https://remotive.com/remote-jobs.rss"}
}

func (s *RemotiveRSS) Name() string     { return "Remotive RSS" }
func (s *RemotiveRSS) Tier() model.Tier { return model.TierRSS }

func (s *RemotiveRSS) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	items, err := fetchFeed(ctx, s.client, s.feedURL)
	if err != nil {
		return nil, fmt.Errorf("remotive rss: %w", err)
	}

	keyword := strings.ToLower(strings.TrimSpace(q.Keyword))
	now := time.Now()

	var jobs []model.Job
	for _, item := range items {
		postedAt := item.pubTime()
		if postedAt == nil || now.Sub(*postedAt) > day {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(item.Title), keyword) {
			continue
		}
		jobs = append(jobs, model.Job{
			Title:       orFallback(item.Title, fallbackTitle),
			Company:     "Remotive",
			Location:    "Remote",
			Link:        item.Link,
			Source:      "Remotive (RSS)",
			Description: cleanDescription(item.Description),
			PostedAt:    postedAt,
		})
	}
	return capJobs(jobs, 20), nil
}
