// Package scoring computes the 0-100 relevance score of a posting against the
// candidate profile. Scoring is pure: fixed job content and a fixed clock
// always produce the same score.
package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/jeremyhunt/jobscout/internal/job"
	"github.com/jeremyhunt/jobscout/internal/profile"
)

// Hand-tuned sub-score constants, kept together so the tuning is visible in
// one place.
const (
	primarySkillPoints   = 20
	secondarySkillPoints = 10
	emergingSkillPoints  = 15
	multiMatchBonus      = 10

	regionLocationScore    = 95
	areaLocationScore      = 85
	elsewhereLocationScore = 50

	industryBaseScore = 50

	neutralExperienceScore = 80

	staleRecencyScore = 40
)

type Engine struct {
	profile *profile.Profile
	weights profile.Weights
	now     func() time.Time
}

func New(p *profile.Profile, w profile.Weights) *Engine {
	return &Engine{
		profile: p,
		weights: w,
		now:     time.Now,
	}
}

// WithClock replaces the evaluation instant, making recency deterministic in
// tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Score combines the six weighted sub-scores into a single integer. The
// location sub-score can exceed 100 for remote jobs, so the final clamp is not
// optional.
func (e *Engine) Score(j *job.Job) int {
	sum := e.skillMatch(j)*e.weights.Skills +
		e.locationFit(j)*e.weights.Location +
		e.salaryFit(j)*e.weights.Salary +
		e.industryFit(j)*e.weights.Industry +
		e.experienceFit(j)*e.weights.Experience +
		e.recency(j)*e.weights.Recency

	return int(math.Round(math.Max(0, math.Min(100, sum))))
}

// ScoreAll stamps every posting with its relevance score.
func (e *Engine) ScoreAll(jobs []*job.Job) {
	for _, j := range jobs {
		j.RelevanceScore = e.Score(j)
	}
}

func (e *Engine) skillMatch(j *job.Job) float64 {
	parts := make([]string, 0, len(j.Requirements)+1)
	parts = append(parts, j.Requirements...)
	parts = append(parts, j.Description)
	blob := strings.ToLower(strings.Join(parts, " "))

	score, matches := 0, 0
	tier := func(skills []string, points int) {
		for _, skill := range skills {
			if strings.Contains(blob, strings.ToLower(skill)) {
				score += points
				matches++
			}
		}
	}

	tier(e.profile.Skills.Primary, primarySkillPoints)
	tier(e.profile.Skills.Secondary, secondarySkillPoints)
	tier(e.profile.Skills.Emerging, emergingSkillPoints)

	if matches >= 3 {
		score += multiMatchBonus
	}
	if matches >= 5 {
		score += multiMatchBonus
	}

	if score > 100 {
		score = 100
	}
	return float64(score)
}

func (e *Engine) locationFit(j *job.Job) float64 {
	if j.IsRemote {
		return 100 * e.profile.RemoteWeight
	}

	location := strings.ToLower(j.Location)
	if e.profile.Region.Name != "" && strings.Contains(location, strings.ToLower(e.profile.Region.Name)) {
		return regionLocationScore
	}
	for _, alias := range e.profile.Region.Aliases {
		if strings.Contains(location, strings.ToLower(alias)) {
			return areaLocationScore
		}
	}
	return elsewhereLocationScore
}

func (e *Engine) salaryFit(j *job.Job) float64 {
	max := job.MaxSalary(j.Salary)
	min := e.profile.SalaryMin

	switch {
	case max >= min+20000:
		return 100
	case max >= min+10000:
		return 90
	case max >= min:
		return 80
	case max >= min-5000:
		return 70
	}
	return 50
}

func (e *Engine) industryFit(j *job.Job) float64 {
	text := strings.ToLower(j.Company + " " + j.Description + " " + strings.Join(j.Tags, " "))

	score := industryBaseScore
	if containsAny(text, "tech", "startup") {
		score += 20
	}
	if containsAny(text, "ai", "machine learning", "ml") {
		score += 25
	}
	if strings.Contains(text, "automation") {
		score += 30
	}
	if j.IsRemote && strings.Contains(text, "remote") {
		score += 15
	}
	if containsAny(text, "innovation", "cutting-edge", "modern") {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return float64(score)
}

func (e *Engine) experienceFit(j *job.Job) float64 {
	text := strings.ToLower(j.Title + " " + j.Description)

	switch {
	case containsAny(text, "junior", "entry", "associate"):
		return 100
	case containsAny(text, "mid", "intermediate"):
		return 90
	case containsAny(text, "senior", "lead", "principal"):
		return 60
	case containsAny(text, "manager", "director"):
		return 30
	}
	return neutralExperienceScore
}

func (e *Engine) recency(j *job.Job) float64 {
	posted, ok := j.PostedAt()
	if !ok {
		// unparseable dates score as stale postings
		return staleRecencyScore
	}

	days := int(e.now().Sub(posted).Hours() / 24)
	switch {
	case days <= 1:
		return 100
	case days <= 3:
		return 90
	case days <= 7:
		return 80
	case days <= 14:
		return 70
	case days <= 30:
		return 60
	}
	return staleRecencyScore
}

// RelevanceLabel buckets a score the way results are presented to the user.
func RelevanceLabel(score int) string {
	switch {
	case score >= 90:
		return "excellent match"
	case score >= 80:
		return "good match"
	case score >= 70:
		return "fair match"
	}
	return "poor match"
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
