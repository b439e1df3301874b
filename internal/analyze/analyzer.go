// Package analyze scores a resume against a job description through one
// LLM call, and hosts the lightweight keyword-overlap score used to rank
// individual postings. The LLM path degrades to a valid zero-score
// analysis on any failure; callers never see an error from it.
package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"

	// Prompt inputs are trimmed so one oversized resume cannot blow the
	// token budget.
	maxPromptChars = 2000
)

// KeywordMatch records whether one job-description keyword appeared in
// the resume.
type KeywordMatch struct {
	Keyword string `json:"keyword"`
	Found   bool   `json:"found"`
}

// SectionScores carries the per-section 0-100 scores.
type SectionScores struct {
	TechnicalSkills int `json:"technicalSkills"`
	Projects        int `json:"projects"`
	CoreKnowledge   int `json:"coreKnowledge"`
	Education       int `json:"education"`
	Certifications  int `json:"certifications"`
	ATSStructure    int `json:"atsStructure"`
}

// Analysis is the structured result of one resume/job evaluation.
type Analysis struct {
	OverallScore       int               `json:"overallScore"`
	Strengths          []string          `json:"strengths"`
	Gaps               []string          `json:"gaps"`
	KeywordMatches     []KeywordMatch    `json:"keywordMatches"`
	SectionScores      SectionScores     `json:"sectionScores"`
	DetailedAnalysis   map[string]string `json:"detailedAnalysis"`
	MajorWeaknesses    []string          `json:"majorWeaknesses"`
	MustDoImprovements []string          `json:"mustDoImprovements"`
	HonestVerdict      string            `json:"honestVerdict"`
	Recommendations    []string          `json:"recommendations"`
}

// DefaultAnalysis is the degraded-but-valid result returned when the LLM
// path fails for any reason.
func DefaultAnalysis() Analysis {
	return Analysis{
		Strengths:          []string{"Unable to analyze - please try again"},
		Gaps:               []string{"Analysis failed"},
		KeywordMatches:     []KeywordMatch{},
		DetailedAnalysis:   map[string]string{},
		MajorWeaknesses:    []string{"AI analysis failed"},
		MustDoImprovements: []string{"Please try analyzing again"},
		HonestVerdict:      "Resume analysis could not be completed at this time.",
		Recommendations:    []string{"AI analysis failed. Please try again."},
	}
}

// Analyzer calls the OpenAI chat completions endpoint.
type Analyzer struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewAnalyzer(apiKey string) *Analyzer {
	return &Analyzer{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// rawAnalysis mirrors the JSON contract the prompt demands.
type rawAnalysis struct {
	OverallScore    int               `json:"overallScore"`
	SectionScores   SectionScores     `json:"sectionScores"`
	MatchingSkills  []string          `json:"matchingSkills"`
	MissingSkills   []string          `json:"missingSkills"`
	SectionAnalysis map[string]string `json:"sectionAnalysis"`
	MajorWeaknesses []string          `json:"majorWeaknesses"`
	MustDo          []string          `json:"mustDoImprovements"`
	HonestVerdict   string            `json:"honestVerdict"`
}

// Analyze evaluates resumeText against jobDescription. It always returns
// a usable Analysis: transport faults, bad JSON, and a missing API key
// all degrade to DefaultAnalysis.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobDescription, jobTitle string) Analysis {
	if a.apiKey == "" {
		slog.Info("resume analysis skipped, OPENAI_API_KEY not configured")
		return DefaultAnalysis()
	}
	if jobTitle == "" {
		jobTitle = "Job Role"
	}

	raw, err := a.complete(ctx, buildPrompt(resumeText, jobDescription, jobTitle))
	if err != nil {
		slog.Error("resume analysis failed, returning default", "error", err)
		return DefaultAnalysis()
	}

	var parsed rawAnalysis
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &parsed); err != nil {
		slog.Error("resume analysis returned malformed JSON, returning default", "error", err)
		return DefaultAnalysis()
	}

	matches := make([]KeywordMatch, 0, len(parsed.MatchingSkills)+len(parsed.MissingSkills))
	for _, skill := range parsed.MatchingSkills {
		matches = append(matches, KeywordMatch{Keyword: skill, Found: true})
	}
	for _, skill := range parsed.MissingSkills {
		matches = append(matches, KeywordMatch{Keyword: skill, Found: false})
	}

	detail := parsed.SectionAnalysis
	if detail == nil {
		detail = map[string]string{}
	}

	return Analysis{
		OverallScore:       parsed.OverallScore,
		Strengths:          orEmpty(parsed.MatchingSkills),
		Gaps:               orEmpty(parsed.MissingSkills),
		KeywordMatches:     matches,
		SectionScores:      parsed.SectionScores,
		DetailedAnalysis:   detail,
		MajorWeaknesses:    orEmpty(parsed.MajorWeaknesses),
		MustDoImprovements: orEmpty(parsed.MustDo),
		HonestVerdict:      parsed.HonestVerdict,
		Recommendations:    orEmpty(parsed.MustDo),
	}
}

func (a *Analyzer) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:       a.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.2,
		MaxTokens:   3000,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal llm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create llm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read llm response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm returned HTTP %d: %s", resp.StatusCode, string(respBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("parse llm response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("llm error (%s): %s", chatResp.Error.Type, chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("llm returned no content")
	}
	return chatResp.Choices[0].Message.Content, nil
}

func buildPrompt(resumeText, jobDescription, jobTitle string) string {
	return fmt.Sprintf(`You are an experienced ATS evaluator and industry recruiter.

Evaluate the RESUME strictly for the following role.

Job Title:
%s

Job Description:
%s

Resume:
%s

Evaluation Guidelines:
- Infer required skills, expectations, and seniority ONLY from the job description
- Judge real relevance, not surface-level keywords
- Be strict like a real ATS + recruiter
- Provide DETAILED and COMPREHENSIVE lists (aim for 8-12 items per array)

Return ONLY valid JSON in EXACT format:

{
  "overallScore": number,
  "sectionScores": {
    "technicalSkills": number,
    "projects": number,
    "coreKnowledge": number,
    "education": number,
    "certifications": number,
    "atsStructure": number
  },
  "matchingSkills": string[],
  "missingSkills": string[],
  "sectionAnalysis": {
    "technicalSkills": "string",
    "projects": "string",
    "coreKnowledge": "string",
    "education": "string",
    "certifications": "string",
    "atsStructure": "string"
  },
  "majorWeaknesses": string[],
  "mustDoImprovements": string[],
  "honestVerdict": "string"
}

IMPORTANT:
- All scores must be between 0-100
- Be realistic and recruiter-like
- No markdown, no explanations outside JSON`,
		jobTitle, trimText(jobDescription, maxPromptChars), trimText(resumeText, maxPromptChars))
}

func trimText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen]
}

var controlChars = regexp.MustCompile(`[\x00-\x1f]+`)

// cleanJSON strips markdown fences and control characters some models
// wrap around their JSON.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = controlChars.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
