// Package service is the query surface consumed by the presentation layer:
// paged search over a held result set, application-status updates and stats.
package service

import (
	"github.com/jeremyhunt/jobscout/internal/job"
	"github.com/jeremyhunt/jobscout/internal/query"
)

// DefaultLimit is the page size used when the caller does not provide one.
const DefaultLimit = 20

type Service struct {
	engine *query.Engine
	jobs   *job.Jobs
}

// New wraps a job collection. The service itself does no locking; callers
// serialize access (status updates are last-writer-wins).
func New(engine *query.Engine, jobs *job.Jobs) *Service {
	return &Service{engine: engine, jobs: jobs}
}

// Page is one window of a filtered, ordered result set.
type Page struct {
	Jobs    []*job.Job `json:"jobs"`
	Total   int        `json:"total"`
	Offset  int        `json:"offset"`
	Limit   int        `json:"limit"`
	HasMore bool       `json:"hasMore"`
}

// Search filters and orders the collection, then cuts the requested window.
func (s *Service) Search(criteria query.Criteria, offset, limit int) Page {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	matched := s.engine.Apply(s.jobs.Items, criteria)
	total := len(matched)

	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return Page{
		Jobs:    matched[start:end],
		Total:   total,
		Offset:  offset,
		Limit:   limit,
		HasMore: offset+limit < total,
	}
}

// UpdateStatus mutates one posting's application status and returns it.
func (s *Service) UpdateStatus(id string, status job.Status) (*job.Job, error) {
	return s.jobs.UpdateStatus(id, status)
}

// Jobs returns the full held collection, status mutations included.
func (s *Service) Jobs() []*job.Job {
	return s.jobs.Items
}

func (s *Service) Stats() job.Stats {
	return s.jobs.Stats()
}
