package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
)

// rssFeed mirrors the subset of RSS 2.0 the job feeds use.
type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// pubTime parses the item's pubDate; nil when absent or unparseable.
func (it rssItem) pubTime() *time.Time {
	return parseTime(it.PubDate, time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822)
}

// fetchFeed downloads and parses one RSS feed URL.
func fetchFeed(ctx context.Context, client *httpx.Client, feedURL string) ([]rssItem, error) {
	body, err := client.GetBytes(ctx, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("feed fetch failed: %w", err)
	}
	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("feed parse failed: %w", err)
	}
	return feed.Channel.Items, nil
}
