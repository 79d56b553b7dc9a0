// Package retriever chains the backend health probe, the remote search and
// the local fallback into one request-scoped sequence:
//
//	probe -> fetch -> done
//	   \        \
//	    +--------+-> fallback -> done
//
// Every network step carries its own timeout; the fallback step is local and
// pure, so a retrieval always terminates with a usable result.
package retriever

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jeremyhunt/jobscout/internal/job"
	"github.com/jeremyhunt/jobscout/internal/jobapi"
	"github.com/jeremyhunt/jobscout/internal/profile"
	"github.com/jeremyhunt/jobscout/internal/query"
	"github.com/jeremyhunt/jobscout/internal/scoring"
)

// DefaultLimit bounds a retrieval when the caller does not say otherwise.
const DefaultLimit = 20

const fallbackMessage = "using local dataset - backend unavailable or returned no jobs"

// Result is what callers get back. Either Jobs/Total is populated (with an
// optional degraded-mode Message) or Error is, never both.
type Result struct {
	Jobs    []*job.Job
	Total   int
	Message string
	Error   string
}

type Retriever struct {
	api    *jobapi.Client
	scorer *scoring.Engine
	query  *query.Engine
	region profile.Region
	local  []*job.Job
	logger *zap.Logger
}

// New builds a retriever. The local dataset is scored once here so the
// relevance-sort path never sees an unscored job.
func New(api *jobapi.Client, scorer *scoring.Engine, queries *query.Engine, local []*job.Job, region profile.Region, logger *zap.Logger) *Retriever {
	scorer.ScoreAll(local)

	return &Retriever{
		api:    api,
		scorer: scorer,
		query:  queries,
		region: region,
		local:  local,
		logger: logger,
	}
}

// Retrieve runs the probe -> fetch -> fallback sequence for one search.
func (r *Retriever) Retrieve(ctx context.Context, params jobapi.SearchParams) *Result {
	if r.api.Healthy(ctx) {
		if result := r.fetch(ctx, params); result != nil {
			return result
		}
	} else {
		r.logger.Info("backend unavailable", zap.String("base_url", r.api.BaseURL))
	}

	return r.fallback(params)
}

// fetch runs the remote search, scores the response and orders it by
// relevance. It returns nil whenever the fallback step should take over: call
// failure, a backend-reported error, or an empty result.
func (r *Retriever) fetch(ctx context.Context, params jobapi.SearchParams) *Result {
	resp, err := r.api.Search(ctx, params)
	if err != nil {
		r.logger.Warn("remote search failed", zap.Error(err))
		return nil
	}
	if resp.Error != "" {
		r.logger.Warn("backend reported an error", zap.String("error", resp.Error))
		return nil
	}
	if len(resp.Jobs) == 0 {
		r.logger.Info("remote search returned no jobs", zap.String("search", params.Search))
		return nil
	}

	r.scorer.ScoreAll(resp.Jobs)
	sort.SliceStable(resp.Jobs, func(i, k int) bool {
		return resp.Jobs[i].RelevanceScore > resp.Jobs[k].RelevanceScore
	})

	total := resp.Total
	if total < len(resp.Jobs) {
		total = len(resp.Jobs)
	}

	return &Result{Jobs: resp.Jobs, Total: total}
}

// fallback serves the pre-scored local dataset through the query engine with
// criteria equivalent to the remote search. This is a successful degraded
// response; an empty dataset here means the seed data itself is broken.
func (r *Retriever) fallback(params jobapi.SearchParams) *Result {
	if len(r.local) == 0 {
		return &Result{Error: "local dataset is empty, nothing to fall back to"}
	}

	criteria := query.DefaultCriteria()
	criteria.Search = params.Search
	criteria.Location = r.locationClass(params.Location)

	matched := r.query.Apply(r.local, criteria)

	r.logger.Info("serving results from local dataset",
		zap.Int("initial", len(r.local)),
		zap.Int("dropped", len(r.local)-len(matched)),
		zap.Int("left", len(matched)),
	)

	total := len(matched)
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}

	return &Result{Jobs: matched, Total: total, Message: fallbackMessage}
}

// locationClass maps the free-form location hint of a remote search onto the
// closest filter class for the local dataset.
func (r *Retriever) locationClass(hint string) string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	switch {
	case hint == "" || hint == query.LocationAll:
		return query.LocationAll
	case hint == query.LocationRemote:
		return query.LocationRemote
	case r.region.Name != "" && strings.Contains(hint, strings.ToLower(r.region.Name)):
		return query.LocationLocal
	}
	return query.LocationAll
}
