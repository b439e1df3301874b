package analyze

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestAnalyzer(srv *httptest.Server, apiKey string) *Analyzer {
	return &Analyzer{
		baseURL:    srv.URL,
		apiKey:     apiKey,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func chatPayload(content string) string {
	// The analysis JSON travels inside the chat message content, so it
	// arrives double-encoded.
	return `{"choices": [{"message": {"content": ` + jsonString(content) + `}}]}`
}

func jsonString(s string) string {
	out := `"`
	for _, r := range s {
		switch r {
		case '"':
			out += `\"`
		case '\\':
			out += `\\`
		case '\n':
			out += `\n`
		case '\t':
			out += `\t`
		default:
			out += string(r)
		}
	}
	return out + `"`
}

const analysisJSON = `{
	"overallScore": 72,
	"sectionScores": {"technicalSkills": 80, "projects": 70, "coreKnowledge": 75, "education": 60, "certifications": 40, "atsStructure": 85},
	"matchingSkills": ["Go", "PostgreSQL"],
	"missingSkills": ["Kubernetes"],
	"sectionAnalysis": {"technicalSkills": "solid"},
	"majorWeaknesses": ["No orchestration experience"],
	"mustDoImprovements": ["Add Kubernetes projects"],
	"honestVerdict": "Strong backend profile."
}`

func TestAnalyze_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatPayload(analysisJSON)))
	}))
	defer srv.Close()

	a := newTestAnalyzer(srv, "test-key")
	got := a.Analyze(context.Background(), "resume text", "job description", "Backend Engineer")

	if got.OverallScore != 72 {
		t.Errorf("expected overall score 72, got %d", got.OverallScore)
	}
	if len(got.Strengths) != 2 || got.Strengths[0] != "Go" {
		t.Errorf("unexpected strengths: %v", got.Strengths)
	}
	if len(got.Gaps) != 1 || got.Gaps[0] != "Kubernetes" {
		t.Errorf("unexpected gaps: %v", got.Gaps)
	}
	if len(got.KeywordMatches) != 3 {
		t.Fatalf("expected 3 keyword matches, got %d", len(got.KeywordMatches))
	}
	if !got.KeywordMatches[0].Found || got.KeywordMatches[2].Found {
		t.Error("expected matching skills marked found and missing skills not found")
	}
	if got.SectionScores.ATSStructure != 85 {
		t.Errorf("expected ats structure 85, got %d", got.SectionScores.ATSStructure)
	}
	if got.HonestVerdict != "Strong backend profile." {
		t.Errorf("unexpected verdict: %q", got.HonestVerdict)
	}
}

func TestAnalyze_MarkdownFencedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatPayload("```json\n" + analysisJSON + "\n```")))
	}))
	defer srv.Close()

	a := newTestAnalyzer(srv, "test-key")
	got := a.Analyze(context.Background(), "resume", "job", "")

	if got.OverallScore != 72 {
		t.Errorf("expected fenced JSON parsed, got score %d", got.OverallScore)
	}
}

func TestAnalyze_MissingKeyDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("missing key must not reach the API")
	}))
	defer srv.Close()

	a := newTestAnalyzer(srv, "")
	got := a.Analyze(context.Background(), "resume", "job", "")

	assertDegraded(t, got)
}

func TestAnalyze_ServerErrorDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := newTestAnalyzer(srv, "test-key")
	assertDegraded(t, a.Analyze(context.Background(), "resume", "job", ""))
}

func TestAnalyze_MalformedContentDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatPayload("I cannot produce JSON today.")))
	}))
	defer srv.Close()

	a := newTestAnalyzer(srv, "test-key")
	assertDegraded(t, a.Analyze(context.Background(), "resume", "job", ""))
}

func assertDegraded(t *testing.T, got Analysis) {
	t.Helper()
	if got.OverallScore != 0 {
		t.Errorf("degraded analysis must score zero, got %d", got.OverallScore)
	}
	if got.HonestVerdict != "Resume analysis could not be completed at this time." {
		t.Errorf("unexpected degraded verdict: %q", got.HonestVerdict)
	}
	if got.KeywordMatches == nil || got.DetailedAnalysis == nil {
		t.Error("degraded analysis must keep collections non-nil for JSON encoding")
	}
}
