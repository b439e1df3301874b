package analyze

import "strings"

const (
	scoreBase         = 15
	scoreTitleWord    = 10
	scoreStrength     = 12
	scoreKeywordFound = 8
	scoreGapPenalty   = 3
	titleBonusCeiling = 30
	minMatchScore     = 10
	maxMatchScore     = 100
)

// MatchScore estimates how well one posting fits a previously analyzed
// resume. It is a cheap lexical heuristic: strengths and found keywords
// from the analysis push the score up, gaps pull it down, and overlap
// with the searched title adds a bonus. The result is normalized against
// the best score the inputs could produce and clamped to 10-100.
func MatchScore(jobTitle, jobText, searchedTitle string, analysis Analysis) int {
	haystack := strings.ToLower(jobTitle + " " + jobText)
	score := scoreBase
	maxPossible := scoreBase

	titleWords := significantWords(searchedTitle)
	for _, w := range titleWords {
		if strings.Contains(strings.ToLower(jobTitle), w) {
			score += scoreTitleWord
		}
	}
	if len(titleWords) > 0 {
		maxPossible += titleBonusCeiling
	}

	for _, s := range analysis.Strengths {
		maxPossible += scoreStrength
		if s != "" && strings.Contains(haystack, strings.ToLower(s)) {
			score += scoreStrength
		}
	}

	for _, m := range analysis.KeywordMatches {
		if m.Found && m.Keyword != "" && strings.Contains(haystack, strings.ToLower(m.Keyword)) {
			score += scoreKeywordFound
		}
	}

	for _, g := range analysis.Gaps {
		if g != "" && strings.Contains(haystack, strings.ToLower(g)) {
			score -= scoreGapPenalty
		}
	}

	if maxPossible > scoreBase {
		score = score * maxMatchScore / maxPossible
	}
	if score < minMatchScore {
		score = minMatchScore
	}
	if score > maxMatchScore {
		score = maxMatchScore
	}
	return score
}

// significantWords keeps lowercased words longer than two characters so
// fillers like "of" and "in" never earn a title bonus.
func significantWords(s string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if len(w) > 2 {
			out = append(out, w)
		}
	}
	return out
}
