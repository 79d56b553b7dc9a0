// Package query narrows and orders job collections. Apply is pure and keeps
// a stable order for equal sort keys, so repeated application with the same
// criteria is a no-op.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jeremyhunt/jobscout/internal/job"
	"github.com/jeremyhunt/jobscout/internal/profile"
)

// Location classes.
const (
	LocationAll    = "all"
	LocationRemote = "remote"
	LocationLocal  = "local"
	LocationBoth   = "both"
)

// Sort keys.
const (
	SortRelevance = "relevance"
	SortDate      = "date"
	SortSalary    = "salary"
	SortCompany   = "company"
)

// DefaultMaxSalary is the upper end of the plausible salary range; criteria
// that leave MaxSalary unset get this instead, so a zero-value band never
// filters everything out.
const DefaultMaxSalary = 200000

// Criteria is a single caller-supplied query.
type Criteria struct {
	Search    string
	Location  string
	MinSalary int
	MaxSalary int
	Tags      []string
	SortBy    string
}

func DefaultCriteria() Criteria {
	return Criteria{
		Location:  LocationAll,
		MaxSalary: DefaultMaxSalary,
		SortBy:    SortRelevance,
	}
}

type Engine struct {
	region   profile.Region
	collator *collate.Collator
}

func New(region profile.Region) *Engine {
	return &Engine{
		region:   region,
		collator: collate.New(language.English),
	}
}

// Apply returns the postings matching every criterion, ordered by the
// requested sort key. The input slice is not modified.
func (e *Engine) Apply(jobs []*job.Job, c Criteria) []*job.Job {
	matched := make([]*job.Job, 0, len(jobs))
	for _, j := range jobs {
		if e.matches(j, c) {
			matched = append(matched, j)
		}
	}

	e.order(matched, c.SortBy)
	return matched
}

func (e *Engine) matches(j *job.Job, c Criteria) bool {
	return matchesSearch(j, c.Search) &&
		e.matchesLocation(j, c.Location) &&
		matchesSalary(j, c) &&
		matchesTags(j, c.Tags)
}

func matchesSearch(j *job.Job, term string) bool {
	if term == "" {
		return true
	}

	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(j.Title), term) ||
		strings.Contains(strings.ToLower(j.Company), term) ||
		strings.Contains(strings.ToLower(j.Description), term) {
		return true
	}
	for _, req := range j.Requirements {
		if strings.Contains(strings.ToLower(req), term) {
			return true
		}
	}
	return false
}

func (e *Engine) matchesLocation(j *job.Job, class string) bool {
	switch class {
	case "", LocationAll:
		return true
	case LocationRemote:
		return j.IsRemote
	case LocationLocal:
		return e.inRegion(j)
	case LocationBoth:
		return j.IsRemote || e.inRegion(j)
	}
	return false
}

func (e *Engine) inRegion(j *job.Job) bool {
	if e.region.Name == "" {
		return false
	}
	return strings.Contains(strings.ToLower(j.Location), strings.ToLower(e.region.Name))
}

func matchesSalary(j *job.Job, c Criteria) bool {
	upper := c.MaxSalary
	if upper <= 0 {
		upper = DefaultMaxSalary
	}

	return job.MaxSalary(j.Salary) >= c.MinSalary && job.MinSalary(j.Salary) <= upper
}

// matchesTags uses any-of semantics: one shared tag is enough.
func matchesTags(j *job.Job, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, want := range tags {
		for _, have := range j.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

func (e *Engine) order(jobs []*job.Job, sortBy string) {
	switch sortBy {
	case SortRelevance:
		sort.SliceStable(jobs, func(i, k int) bool {
			return jobs[i].RelevanceScore > jobs[k].RelevanceScore
		})
	case SortDate:
		sort.SliceStable(jobs, func(i, k int) bool {
			// unparseable dates sort last
			a, _ := jobs[i].PostedAt()
			b, _ := jobs[k].PostedAt()
			return a.After(b)
		})
	case SortSalary:
		sort.SliceStable(jobs, func(i, k int) bool {
			return job.MaxSalary(jobs[i].Salary) > job.MaxSalary(jobs[k].Salary)
		})
	case SortCompany:
		sort.SliceStable(jobs, func(i, k int) bool {
			return e.collator.CompareString(jobs[i].Company, jobs[k].Company) < 0
		})
	}
}
