package aggregate

import (
	"strings"

	"github.com/yeshika17/ResumeSeRole/internal/model"
)

// Dedupe collapses records sharing an identity key, keeping the first
// occurrence in flattened order. The key is exact (lowercased,
// whitespace-stripped title+company+location): false positives would merge
// distinct postings, so no fuzzy matching.
func Dedupe(jobs []model.Job) []model.Job {
	seen := make(map[string]struct{}, len(jobs))
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		key := identityKey(j)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, j)
	}
	return out
}

func identityKey(j model.Job) string {
	key := strings.ToLower(j.Title + "-" + j.Company + "-" + j.Location)
	return strings.Join(strings.Fields(key), "")
}
