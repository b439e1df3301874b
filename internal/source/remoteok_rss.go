package source

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

var remoteOKLocationRe = regexp.MustCompile(`(?i)location[:\s]+([^<\n,]+)`)

// RemoteOKRSS fetches the RemoteOK feed. Recency: last 24h, no date means
// keep; keyword terms matched against title+description; cap 20. Feed
// titles follow "Position at Company" (sometimes "Position - Company").
type RemoteOKRSS struct {
	client  *httpx.Client
	feedURL string
}

func NewRemoteOKRSS(client *httpx.Client) *RemoteOKRSS {
	return &RemoteOKRSS{client: client, feedURL: "https://remoteok.com/remote-jobs.rss"}
}

func (s *RemoteOKRSS) Name() string     { return "RemoteOK RSS" }
func (s *RemoteOKRSS) Tier() model.Tier { return model.TierRSS }

func (s *RemoteOKRSS) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	items, err := fetchFeed(ctx, s.client, s.feedURL)
	if err != nil {
		return nil, fmt.Errorf("remoteok rss: %w", err)
	}

	terms := keywordTerms(q.Keyword)
	now := time.Now()

	var jobs []model.Job
	for _, item := range items {
		if !matchesAnyTerm(item.Title+" "+item.Description, terms) {
			continue
		}
		postedAt := item.pubTime()
		if postedAt != nil && now.Sub(*postedAt) > day {
			continue
		}

		title, company := splitTitleCompany(item.Title)

		location := "Remote (Worldwide)"
		if m := remoteOKLocationRe.FindStringSubmatch(item.Description); m != nil {
			location = strings.TrimSpace(m[1])
		}

		jobs = append(jobs, model.Job{
			Title:       orFallback(title, fallbackTitle),
			Company:     orFallback(company, fallbackCompany),
			Location:    location,
			Link:        item.Link,
			Source:      "RemoteOK (RSS)",
			Description: cleanDescription(item.Description),
			PostedAt:    postedAt,
		})
	}
	return capJobs(jobs, 20), nil
}

func splitTitleCompany(full string) (title, company string) {
	for _, sep := range []string{" at ", " - "} {
		if idx := strings.Index(full, sep); idx > 0 {
			return strings.TrimSpace(full[:idx]), strings.TrimSpace(full[idx+len(sep):])
		}
	}
	return full, ""
}
