package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

type googleMapsRequest struct {
	Text       string `json:"text"`
	Place      string `json:"place"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Country    string `json:"country"`
	State      string `json:"state"`
	PostalCode string `json:"postalcode"`
	Latitude   string `json:"latitude"`
	Longitude  string `json:"longitude"`
	Radius     string `json:"radius"`
}

type googleMapsPlace struct {
	Title        string `json:"title"`
	Name         string `json:"name"`
	Company      string `json:"company"`
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	Location     string `json:"location"`
	URL          string `json:"url"`
	Link         string `json:"link"`
	MapsURL      string `json:"maps_url"`
	Description  string `json:"description"`
	Snippet      string `json:"snippet"`
	Salary       string `json:"salary"`
	JobType      string `json:"job_type"`
	Timestamp    string `json:"timestamp"`
	Date         string `json:"date"`
	PostedDate   string `json:"posted_date"`
}

func (p googleMapsPlace) postedTime() *time.Time {
	for _, v := range []string{p.Timestamp, p.Date, p.PostedDate} {
		if t := parseTime(v); t != nil {
			return t
		}
	}
	return nil
}

// GoogleMaps queries the RapidAPI google-api31 place search for local
// hiring listings. Recency: last 24h on whichever timestamp field the
// result carries, no date means keep; cap 20. Requires the shared
// RapidAPI key; without one the adapter contributes nothing.
type GoogleMaps struct {
	client *httpx.Client
	base   string
	host   string
	apiKey string
}

func NewGoogleMaps(client *httpx.Client, apiKey string) *GoogleMaps {
	return &GoogleMaps{
		client: client,
		base:   "https://google-api31.p.rapidapi.com",
		host:   "google-api31.p.rapidapi.com",
		apiKey: apiKey,
	}
}

func (s *GoogleMaps) Name() string     { return "Google Maps API" }
func (s *GoogleMaps) Tier() model.Tier { return model.TierMetered }

func (s *GoogleMaps) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	if s.apiKey == "" {
		slog.Info("source skipped, credential not configured", "source", s.Name())
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req := googleMapsRequest{Text: q.Keyword, Place: q.Location}

	var raw json.RawMessage
	if err := s.client.PostJSON(ctx, s.base+"/map", rapidHeader(s.host, s.apiKey), req, &raw); err != nil {
		return nil, fmt.Errorf("googlemaps: %w", err)
	}

	// The endpoint answers a bare array or an object wrapping it under
	// results or data.
	var places []googleMapsPlace
	var wrapped struct {
		Results []googleMapsPlace `json:"results"`
		Data    []googleMapsPlace `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		places = wrapped.Results
		if places == nil {
			places = wrapped.Data
		}
	} else if err := json.Unmarshal(raw, &places); err != nil {
		return nil, fmt.Errorf("googlemaps: decode failed: %w", err)
	}

	now := time.Now()
	var jobs []model.Job
	for _, p := range places {
		postedAt := p.postedTime()
		if postedAt != nil && now.Sub(*postedAt) > day {
			continue
		}
		title := p.Title
		if title == "" {
			title = p.Name
		}
		company := p.Company
		if company == "" {
			company = p.BusinessName
		}
		location := p.Address
		if location == "" {
			location = p.Location
		}
		link := p.URL
		if link == "" {
			link = p.Link
		}
		if link == "" {
			link = p.MapsURL
		}
		description := p.Description
		if description == "" {
			description = p.Snippet
		}
		jobs = append(jobs, model.Job{
			Title:       orFallback(title, fallbackTitle),
			Company:     orFallback(company, fallbackCompany),
			Location:    orFallback(location, q.Location),
			Link:        link,
			Source:      "Google Maps API",
			Description: cleanDescription(description),
			PostedAt:    postedAt,
			Salary:      p.Salary,
			JobType:     p.JobType,
		})
	}
	return capJobs(jobs, 20), nil
}
