package source

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

// WeWorkRemotelyBoard scrapes the WeWorkRemotely programming listings page.
// The page exposes no posting dates, so everything matching the keyword is
// kept; cap 20. It overlaps with the RSS adapter on purpose; the
// deduplicator collapses the overlap downstream.
type WeWorkRemotelyBoard struct {
	client *httpx.Client
	base   string
}

func NewWeWorkRemotelyBoard(client *httpx.Client) *WeWorkRemotelyBoard {
	return &WeWorkRemotelyBoard{client: client, base: "https://weworkremotely.com"}
}

func (s *WeWorkRemotelyBoard) Name() string     { return "WeWorkRemotely Board" }
func (s *WeWorkRemotelyBoard) Tier() model.Tier { return model.TierFree }

func (s *WeWorkRemotelyBoard) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	body, err := s.client.GetBytes(ctx, s.base+"/categories/remote-programming-jobs", nil)
	if err != nil {
		return nil, fmt.Errorf("wwr board: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("wwr board: parse failed: %w", err)
	}

	terms := keywordTerms(q.Keyword)

	var jobs []model.Job
	doc.Find("section.jobs article ul li a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		title := strings.TrimSpace(sel.Find("span.title").Text())
		company := strings.TrimSpace(sel.Find("span.company").First().Text())
		if title == "" || company == "" {
			return
		}
		if !matchesAnyTerm(title+" "+company, terms) {
			return
		}
		jobs = append(jobs, model.Job{
			Title:       title,
			Company:     company,
			Location:    "Remote (Worldwide)",
			Link:        absoluteLink(href, s.base),
			Source:      "WeWorkRemotely",
			Description: cleanDescription(title + " at " + company),
		})
	})
	return capJobs(dedupeByTitleCompany(jobs), 20), nil
}
