package source

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

// WeWorkRemotelyRSS aggregates several WeWorkRemotely category feeds.
// A failing feed is skipped, not fatal. Recency: last 24h, no date means
// keep. The combined list is deduplicated on title+company before return
// because the category feeds overlap.
type WeWorkRemotelyRSS struct {
	client *httpx.Client
	feeds  []string
}

func NewWeWorkRemotelyRSS(client *httpx.Client) *WeWorkRemotelyRSS {
	return &WeWorkRemotelyRSS{
		client: client,
		feeds: []string{
			"https://weworkremotely.com/categories/remote-programming-jobs.rss",
			"https://weworkremotely.com/categories/remote-devops-sysadmin-jobs.rss",
			"https://weworkremotely.com/categories/remote-design-jobs.rss",
			"https://weworkremotely.com/categories/remote-product-jobs.rss",
			"https://weworkremotely.com/remote-jobs.rss",
		},
	}
}

func (s *WeWorkRemotelyRSS) Name() string     { return "WeWorkRemotely RSS" }
func (s *WeWorkRemotelyRSS) Tier() model.Tier { return model.TierRSS }

func (s *WeWorkRemotelyRSS) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	terms := keywordTerms(q.Keyword)
	now := time.Now()

	var jobs []model.Job
	for _, feedURL := range s.feeds {
		feedCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		items, err := fetchFeed(feedCtx, s.client, feedURL)
		cancel()
		if err != nil {
			slog.Warn("feed fetch failed, continuing", "source", s.Name(), "feed", feedURL, "error", err)
			continue
		}

		for _, item := range items {
			if !matchesAnyTerm(item.Title+" "+item.Description, terms) {
				continue
			}
			if t := item.pubTime(); t != nil && now.Sub(*t) > day {
				continue
			}
			// Titles follow "Company: Position".
			company, position := fallbackCompany, item.Title
			if idx := strings.Index(item.Title, ":"); idx > 0 {
				company = strings.TrimSpace(item.Title[:idx])
				position = strings.TrimSpace(item.Title[idx+1:])
			}
			jobs = append(jobs, model.Job{
				Title:       orFallback(position, item.Title),
				Company:     company,
				Location:    "Remote (Worldwide)",
				Link:        item.Link,
				Source:      "WeWorkRemotely (RSS)",
				Description: cleanDescription(item.Description),
				PostedAt:    item.pubTime(),
			})
		}
	}
	return dedupeByTitleCompany(jobs), nil
}
