package source

import (
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/config"
	"github.com/yeshika17/ResumeSeRole/internal/httpx"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

// Roster builds the full ordered adapter list. Order is tier order, then
// registration order within a tier; the deduplicator uses it as the
// first-seen tie-break, so changing it changes which duplicate survives.
func Roster(cfg *config.Config) []model.Source {
	client := httpx.NewClient(15 * time.Second)

	return []model.Source{
		// rss
		NewWeWorkRemotelyRSS(client),
		NewRemotiveRSS(client),
		NewRemoteOKRSS(client),
		// free
		NewRemoteOK(client),
		NewRemotive(client),
		NewArbeitnow(client),
		NewJobicy(client),
		NewWeWorkRemotelyBoard(client),
		// keyed
		NewJooble(client, cfg.JoobleKey),
		NewFindWork(client, cfg.FindWorkKey),
		// metered
		NewJSearch(client, cfg.RapidAPIKey),
		NewActiveJobsDB(client, cfg.RapidAPIKey),
		NewLinkedInJobs(client, cfg.RapidAPIKey),
		NewIndeed(client, cfg.RapidAPIKey),
		NewJobsAPIUnified(client, cfg.RapidAPIKey),
		NewGoogleMaps(client, cfg.RapidAPIKey),
		// premium
		NewSerpAPIGoogleJobs(client, cfg.SerpAPIKey),
	}
}
