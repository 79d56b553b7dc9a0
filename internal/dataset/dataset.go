// Package dataset embeds the static fallback dataset used when the backend is
// unavailable.
package dataset

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhunt/jobscout/internal/job"
)

//go:embed seed.yaml
var seedYAML []byte

// Load parses the embedded dataset. An invalid seed file is a build-time data
// bug, not a runtime condition, so errors here are fatal to the caller.
func Load() ([]*job.Job, error) {
	var doc struct {
		Jobs []*job.Job `yaml:"jobs"`
	}
	if err := yaml.Unmarshal(seedYAML, &doc); err != nil {
		return nil, fmt.Errorf("parsing seed dataset: %w", err)
	}

	seen := make(map[string]bool, len(doc.Jobs))
	for _, j := range doc.Jobs {
		if j.ID == "" {
			return nil, fmt.Errorf("seed dataset: job %q has no id", j.Title)
		}
		if seen[j.ID] {
			return nil, fmt.Errorf("seed dataset: duplicate job id %q", j.ID)
		}
		seen[j.ID] = true

		if j.ApplicationStatus == "" {
			j.ApplicationStatus = job.StatusNotApplied
		}
	}

	return doc.Jobs, nil
}
