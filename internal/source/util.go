package source

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/yeshika17/ResumeSeRole/internal/model"
)

const (
	fallbackTitle   = "Position"
	fallbackCompany = "Company"

	descriptionMax = 200

	day  = 24 * time.Hour
	week = 7 * 24 * time.Hour
)

// cleanDescription strips markup from raw text and truncates it to the
// canonical description length.
func cleanDescription(raw string) string {
	text := raw
	if strings.ContainsAny(raw, "<>") {
		if doc, err := html.Parse(strings.NewReader(raw)); err == nil {
			text = extractText(doc)
		}
	}
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > descriptionMax {
		cut := descriptionMax
		// Back up to a rune boundary so a multi-byte character is
		// never split in half.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(extractText(c))
	}
	return sb.String()
}

// orFallback returns s, or fallback when s is blank.
func orFallback(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// absoluteLink resolves protocol-relative, bare-www, and site-relative
// links against siteBase into absolute form.
func absoluteLink(link, siteBase string) string {
	switch {
	case link == "":
		return ""
	case strings.HasPrefix(link, "//"):
		return "https:" + link
	case strings.HasPrefix(link, "www."):
		return "https://" + link
	case strings.HasPrefix(link, "/"):
		return strings.TrimSuffix(siteBase, "/") + link
	default:
		return link
	}
}

// keywordTerms splits a raw keyword into lowercase search terms, dropping
// words too short to be meaningful.
func keywordTerms(keyword string) []string {
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(keyword)) {
		if len(w) > 2 {
			terms = append(terms, w)
		}
	}
	return terms
}

// matchesAnyTerm reports whether text contains at least one of the terms.
// An empty term list matches everything.
func matchesAnyTerm(text string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// recencyBuckets splits jobs into a last-24h bucket and a last-7d bucket by
// posted date, appends the older bucket after the recent one, and caps the
// combined list. Jobs with no date land in the recent bucket; jobs older
// than seven days are dropped. Several providers share this exact policy.
func recencyBuckets(jobs []model.Job, now time.Time, limit int) []model.Job {
	var recent, older []model.Job
	for _, j := range jobs {
		switch {
		case j.PostedAt == nil:
			recent = append(recent, j)
		case now.Sub(*j.PostedAt) <= day:
			recent = append(recent, j)
		case now.Sub(*j.PostedAt) <= week:
			older = append(older, j)
		}
	}
	combined := append(recent, older...)
	if len(combined) > limit {
		combined = combined[:limit]
	}
	return combined
}

// capJobs bounds a result list to n records.
func capJobs(jobs []model.Job, n int) []model.Job {
	if len(jobs) > n {
		return jobs[:n]
	}
	return jobs
}

// parseTime tries the given layouts in order and returns nil when none fit.
func parseTime(val string, layouts ...string) *time.Time {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	if len(layouts) == 0 {
		layouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, val); err == nil {
			return &t
		}
	}
	return nil
}

// dedupeByTitleCompany removes records sharing the same lowercased,
// whitespace-stripped title+company, keeping the first occurrence. Used by
// feed adapters that aggregate several feeds for one provider.
func dedupeByTitleCompany(jobs []model.Job) []model.Job {
	seen := make(map[string]struct{}, len(jobs))
	out := jobs[:0]
	for _, j := range jobs {
		key := strings.ToLower(j.Title + j.Company)
		key = strings.Join(strings.Fields(key), "")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, j)
	}
	return out
}
