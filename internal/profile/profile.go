// Package profile holds the candidate profile the scoring engine ranks
// against. The profile is built once at startup and never mutated afterwards;
// tests construct their own instead of relying on a global.
package profile

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Skills groups the candidate's stack by how strongly a match should count.
type Skills struct {
	Primary   []string `mapstructure:"primary"`
	Secondary []string `mapstructure:"secondary"`
	Emerging  []string `mapstructure:"emerging"`
}

// Region names the candidate's home market. Name is the preferred city,
// Aliases the broader identifiers (state name, abbreviation) that still count
// as nearby.
type Region struct {
	Name    string   `mapstructure:"name"`
	Aliases []string `mapstructure:"aliases"`
}

type Profile struct {
	Skills           Skills   `mapstructure:"skills"`
	RemoteWeight     float64  `mapstructure:"remote-weight"`
	Locations        []string `mapstructure:"locations"`
	SalaryMin        int      `mapstructure:"salary-min"`
	Industries       []string `mapstructure:"industries"`
	ExperienceLevels []string `mapstructure:"experience-levels"`
	Region           Region   `mapstructure:"region"`
}

// Default returns the built-in candidate profile.
func Default() *Profile {
	return &Profile{
		Skills: Skills{
			Primary:   []string{"React", "JavaScript", "Python", "Next.js", "TailwindCSS"},
			Secondary: []string{"TypeScript", "Node.js", "HTML", "CSS", "Git"},
			Emerging:  []string{"AI/ML", "Automation", "APIs", "AWS"},
		},
		RemoteWeight:     1.1,
		Locations:        []string{"Nashville", "Remote"},
		SalaryMin:        65000,
		Industries:       []string{"Tech", "AI", "Automation", "Startups"},
		ExperienceLevels: []string{"Junior", "Entry-Level", "Mid-Level"},
		Region: Region{
			Name:    "Nashville",
			Aliases: []string{"Tennessee", "TN"},
		},
	}
}

// FromMap overlays configuration-file overrides onto the default profile.
func FromMap(raw map[string]any) (*Profile, error) {
	p := Default()
	if len(raw) == 0 {
		return p, nil
	}

	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   p,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding profile overrides: %w", err)
	}

	return p, nil
}

// Weights distribute the final score across the six sub-scores. They are
// hand-tuned values kept visible in configuration so tuning never touches the
// algorithm's structure.
type Weights struct {
	Skills     float64 `mapstructure:"skills"`
	Location   float64 `mapstructure:"location"`
	Salary     float64 `mapstructure:"salary"`
	Industry   float64 `mapstructure:"industry"`
	Experience float64 `mapstructure:"experience"`
	Recency    float64 `mapstructure:"recency"`
}

func DefaultWeights() Weights {
	return Weights{
		Skills:     0.40,
		Location:   0.15,
		Salary:     0.15,
		Industry:   0.10,
		Experience: 0.10,
		Recency:    0.10,
	}
}
