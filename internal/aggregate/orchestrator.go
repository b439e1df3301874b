// Package aggregate implements the fan-out/merge pipeline: every source
// runs concurrently for one request, the settled outcomes are flattened in
// roster order, duplicates are collapsed, and the result is cached.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/yeshika17/ResumeSeRole/internal/model"
	"github.com/yeshika17/ResumeSeRole/internal/observability"
)

// Outcome is one source's settled result: either its jobs or the error
// that made it contribute nothing. Never both.
type Outcome struct {
	Source string
	Tier   model.Tier
	Jobs   []model.Job
	Err    error
}

// Orchestrator fans one query out to every registered source. The roster
// is fixed at construction; there is no runtime registry.
type Orchestrator struct {
	sources []model.Source
}

func NewOrchestrator(sources []model.Source) *Orchestrator {
	return &Orchestrator{sources: sources}
}

// FanOut runs every source concurrently and waits for all of them to
// settle. A panicking or failing source becomes a failure outcome; it
// never aborts the batch. Outcomes come back in roster order.
func (o *Orchestrator) FanOut(ctx context.Context, q model.Query) []Outcome {
	outcomes := make([]Outcome, len(o.sources))

	var wg sync.WaitGroup
	for i, src := range o.sources {
		wg.Add(1)
		go func(i int, src model.Source) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = Outcome{
						Source: src.Name(),
						Tier:   src.Tier(),
						Err:    fmt.Errorf("source panicked: %v", r),
					}
				}
			}()
			jobs, err := src.Fetch(ctx, q)
			outcomes[i] = Outcome{Source: src.Name(), Tier: src.Tier(), Jobs: jobs, Err: err}
		}(i, src)
	}
	wg.Wait()

	logOutcomes(outcomes)
	return outcomes
}

// Flatten concatenates every successful outcome's jobs, preserving
// roster order. That order is the dedup tie-break.
func Flatten(outcomes []Outcome) []model.Job {
	var all []model.Job
	for _, out := range outcomes {
		if out.Err != nil {
			continue
		}
		all = append(all, out.Jobs...)
	}
	return all
}

func logOutcomes(outcomes []Outcome) {
	sorted := make([]Outcome, len(outcomes))
	copy(sorted, outcomes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Tier < sorted[j].Tier })

	for _, out := range sorted {
		if out.Err != nil {
			observability.IncError(observability.ClassifyFetchError(out.Err), out.Source)
			slog.Warn("source failed",
				"tier", out.Tier.String(),
				"source", out.Source,
				"error", out.Err,
			)
			continue
		}
		observability.AddJobs(out.Source, len(out.Jobs))
		slog.Info("source settled",
			"tier", out.Tier.String(),
			"source", out.Source,
			"jobs", len(out.Jobs),
		)
	}
}
