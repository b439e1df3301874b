package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeshika17/ResumeSeRole/internal/model"
)

// fakeSource is a scriptable model.Source for pipeline tests.
type fakeSource struct {
	name  string
	tier  model.Tier
	jobs  []model.Job
	err   error
	delay time.Duration
	panic bool
}

func (f *fakeSource) Name() string     { return f.name }
func (f *fakeSource) Tier() model.Tier { return f.tier }

func (f *fakeSource) Fetch(ctx context.Context, q model.Query) ([]model.Job, error) {
	if f.panic {
		panic("adapter bug")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.jobs, f.err
}

func TestFanOut_AllSettled(t *testing.T) {
	sources := []model.Source{
		&fakeSource{name: "ok", tier: model.TierFree, jobs: []model.Job{{Title: "A", Company: "X"}}},
		&fakeSource{name: "broken", tier: model.TierFree, err: errors.New("boom")},
		&fakeSource{name: "slow", tier: model.TierRSS, delay: 50 * time.Millisecond, jobs: []model.Job{{Title: "B", Company: "Y"}}},
		&fakeSource{name: "buggy", tier: model.TierPremium, panic: true},
	}

	outcomes := NewOrchestrator(sources).FanOut(context.Background(), model.Query{Keyword: "go"})
	require.Len(t, outcomes, 4)

	// Outcomes stay in roster order regardless of settle time.
	assert.Equal(t, "ok", outcomes[0].Source)
	assert.NoError(t, outcomes[0].Err)
	assert.Equal(t, "broken", outcomes[1].Source)
	assert.Error(t, outcomes[1].Err)
	assert.Equal(t, "slow", outcomes[2].Source)
	assert.Len(t, outcomes[2].Jobs, 1)
	assert.Error(t, outcomes[3].Err, "a panicking source settles as a failure")
	assert.Contains(t, outcomes[3].Err.Error(), "panicked")
}

func TestFlatten_SkipsFailures(t *testing.T) {
	outcomes := []Outcome{
		{Source: "a", Jobs: []model.Job{{Title: "A"}, {Title: "B"}}},
		{Source: "b", Err: errors.New("down")},
		{Source: "c", Jobs: []model.Job{{Title: "C"}}},
	}

	jobs := Flatten(outcomes)
	require.Len(t, jobs, 3)
	assert.Equal(t, "A", jobs[0].Title)
	assert.Equal(t, "C", jobs[2].Title)
}

func TestDedupe_FirstSeenWins(t *testing.T) {
	jobs := []model.Job{
		{Title: "Go Engineer", Company: "Acme", Location: "Remote", Source: "first"},
		{Title: "Backend Engineer", Company: "Acme", Location: "Remote", Source: "second"},
		{Title: "go  engineer", Company: "ACME", Location: " remote ", Source: "third"},
	}

	got := Dedupe(jobs)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Source, "earlier source wins the duplicate")
	assert.Equal(t, "second", got[1].Source)

	assert.Equal(t, got, Dedupe(got), "dedup is idempotent")
}

func TestDedupe_LocationDistinguishes(t *testing.T) {
	jobs := []model.Job{
		{Title: "Go Engineer", Company: "Acme", Location: "Berlin"},
		{Title: "Go Engineer", Company: "Acme", Location: "Remote"},
	}
	assert.Len(t, Dedupe(jobs), 2, "same title+company in different locations are distinct postings")
}
