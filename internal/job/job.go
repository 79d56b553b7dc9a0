package job

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Status tracks where an application stands for a single posting.
type Status string

const (
	StatusNotApplied Status = "not_applied"
	StatusApplied    Status = "applied"
	StatusInterview  Status = "interview"
	StatusRejected   Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotApplied, StatusApplied, StatusInterview, StatusRejected:
		return true
	}
	return false
}

// Job is a single posting as received from the backend or the seed dataset.
// Everything except ApplicationStatus and RelevanceScore is treated as
// immutable once created.
type Job struct {
	ID                string   `json:"id" yaml:"id"`
	Title             string   `json:"title" yaml:"title"`
	Company           string   `json:"company" yaml:"company"`
	Location          string   `json:"location" yaml:"location"`
	Salary            string   `json:"salary" yaml:"salary"`
	PostedDate        string   `json:"postedDate" yaml:"postedDate"`
	Source            string   `json:"source" yaml:"source"`
	Description       string   `json:"description" yaml:"description"`
	Requirements      []string `json:"requirements" yaml:"requirements"`
	IsRemote          bool     `json:"isRemote" yaml:"isRemote"`
	RelevanceScore    int      `json:"relevanceScore" yaml:"relevanceScore,omitempty"`
	ApplicationStatus Status   `json:"applicationStatus" yaml:"applicationStatus,omitempty"`
	Tags              []string `json:"tags" yaml:"tags"`
	URL               string   `json:"url" yaml:"url"`
}

var postedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// PostedAt parses the posting date. The backend sends timestamps, the seed
// dataset plain dates. The second return value is false when the date is
// missing or unparseable.
func (j *Job) PostedAt() (time.Time, bool) {
	for _, layout := range postedDateLayouts {
		if t, err := time.Parse(layout, j.PostedDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Jobs is a result-set of postings.
type Jobs struct {
	Items []*Job
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *Job {
	for _, item := range j.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// UpdateStatus mutates the application status of the posting with the given
// id. Last writer wins; callers serialize concurrent updates themselves.
func (j *Jobs) UpdateStatus(id string, status Status) (*Job, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid application status: %q", status)
	}

	item := j.FindByID(id)
	if item == nil {
		return nil, fmt.Errorf("no job with id %q", id)
	}

	item.ApplicationStatus = status
	return item, nil
}

// Stats summarizes a result-set for the presentation layer.
type Stats struct {
	Total            int `json:"total"`
	NotApplied       int `json:"notApplied"`
	Applied          int `json:"applied"`
	Interviews       int `json:"interviews"`
	Rejected         int `json:"rejected"`
	Remote           int `json:"remote"`
	Local            int `json:"local"`
	AverageRelevance int `json:"averageRelevance"`
}

func (j *Jobs) Stats() Stats {
	stats := Stats{Total: len(j.Items)}

	sum := 0
	for _, item := range j.Items {
		switch item.ApplicationStatus {
		case StatusApplied:
			stats.Applied++
		case StatusInterview:
			stats.Interviews++
		case StatusRejected:
			stats.Rejected++
		default:
			stats.NotApplied++
		}

		if item.IsRemote {
			stats.Remote++
		} else {
			stats.Local++
		}

		sum += item.RelevanceScore
	}

	if stats.Total > 0 {
		stats.AverageRelevance = (sum + stats.Total/2) / stats.Total
	}

	return stats
}

func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}
