package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/yeshika17/ResumeSeRole/internal/analyze"
	"github.com/yeshika17/ResumeSeRole/internal/model"
	"github.com/yeshika17/ResumeSeRole/internal/observability"
	"github.com/yeshika17/ResumeSeRole/internal/resume"
)

const maxResumeUpload = 10 << 20 // 10 MB

func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	keyword := q.Get("keyword")
	location := q.Get("location")

	if keyword == "" {
		respondError(w, http.StatusBadRequest, "keyword query parameter is required")
		return
	}

	result, err := s.aggregator.Aggregate(r.Context(), keyword, location)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch jobs: "+err.Error())
		return
	}

	displayLocation := location
	if displayLocation == "" {
		displayLocation = "All locations"
	}

	if len(result.Jobs) == 0 {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message":   "No jobs found in the last 24 hours. Try a different keyword or check back later.",
			"jobs":      []model.Job{},
			"totalJobs": 0,
			"cached":    false,
		})
		return
	}

	payload := map[string]interface{}{
		"success":   true,
		"totalJobs": len(result.Jobs),
		"keyword":   keyword,
		"location":  displayLocation,
		"cached":    result.Cached,
		"jobs":      result.Jobs,
	}
	if result.Cached {
		payload["cacheAge"] = fmt.Sprintf("%d minutes", int(result.CacheAge.Minutes()))
	}
	respondJSON(w, http.StatusOK, payload)
}

func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxResumeUpload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	jobDescription := r.FormValue("jobDescription")
	if jobDescription == "" {
		respondError(w, http.StatusBadRequest, "jobDescription form field is required")
		return
	}
	jobTitle := r.FormValue("jobTitle")

	file, header, err := r.FormFile("resume")
	if err != nil {
		respondError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	// The PDF reader needs a seekable file on disk, so the upload is
	// staged in a temp file that lives only for this request.
	tmp, err := os.CreateTemp("", "resume-*.pdf")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to stage resume upload")
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		respondError(w, http.StatusInternalServerError, "Failed to store resume upload")
		return
	}
	tmp.Close()

	text, err := s.extractText(tmp.Name())
	if err != nil {
		switch {
		case errors.Is(err, resume.ErrEmpty):
			respondError(w, http.StatusBadRequest, "No readable text found in the resume. Is it a scanned image?")
		case errors.Is(err, resume.ErrUnreadable):
			respondError(w, http.StatusBadRequest, "Could not parse the resume. Please upload a valid PDF.")
		default:
			respondError(w, http.StatusInternalServerError, "Failed to read resume: "+err.Error())
		}
		return
	}

	analysis := s.analyzer.Analyze(r.Context(), text, jobDescription, jobTitle)
	matchScore := analyze.MatchScore(jobTitle, jobDescription, jobTitle, analysis)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"fileName":   header.Filename,
		"analysis":   analysis,
		"matchScore": matchScore,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}
