package analyze

import "testing"

func TestMatchScore_Bounds(t *testing.T) {
	// No analysis signal and no title overlap stays at the floor region.
	got := MatchScore("Accountant", "ledgers and audits", "golang developer", Analysis{})
	if got < minMatchScore || got > maxMatchScore {
		t.Fatalf("score out of bounds: %d", got)
	}

	full := Analysis{
		Strengths: []string{"Go", "PostgreSQL"},
		KeywordMatches: []KeywordMatch{
			{Keyword: "Go", Found: true},
			{Keyword: "PostgreSQL", Found: true},
		},
	}
	got = MatchScore("Senior Golang Developer", "Go and PostgreSQL services", "golang developer", full)
	if got > maxMatchScore {
		t.Fatalf("score must clamp at %d, got %d", maxMatchScore, got)
	}
}

func TestMatchScore_StrengthsRaiseScore(t *testing.T) {
	analysis := Analysis{Strengths: []string{"Go", "Docker"}}

	matched := MatchScore("Go Engineer", "Go and Docker stack", "", analysis)
	unmatched := MatchScore("Accountant", "spreadsheets", "", analysis)
	if matched <= unmatched {
		t.Errorf("matching strengths must raise the score: %d <= %d", matched, unmatched)
	}
}

func TestMatchScore_GapsLowerScore(t *testing.T) {
	withGap := MatchScore("Go Engineer", "Kubernetes heavy role", "",
		Analysis{Strengths: []string{"Go"}, Gaps: []string{"Kubernetes"}})
	withoutGap := MatchScore("Go Engineer", "Kubernetes heavy role", "",
		Analysis{Strengths: []string{"Go"}})
	if withGap >= withoutGap {
		t.Errorf("a matched gap must lower the score: %d >= %d", withGap, withoutGap)
	}
}

func TestMatchScore_TitleOverlapRaisesScore(t *testing.T) {
	analysis := Analysis{Strengths: []string{"Go"}}

	overlap := MatchScore("Senior Backend Engineer", "Go services", "backend engineer", analysis)
	noOverlap := MatchScore("Data Analyst", "Go services", "backend engineer", analysis)
	if overlap <= noOverlap {
		t.Errorf("title overlap must raise the score: %d <= %d", overlap, noOverlap)
	}
}

func TestSignificantWords(t *testing.T) {
	got := significantWords("QA of Go in Berlin")
	if len(got) != 1 || got[0] != "berlin" {
		t.Errorf("expected short words dropped, got %v", got)
	}
}
