package retriever

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jeremyhunt/jobscout/internal/job"
	"github.com/jeremyhunt/jobscout/internal/jobapi"
	"github.com/jeremyhunt/jobscout/internal/profile"
	"github.com/jeremyhunt/jobscout/internal/query"
	"github.com/jeremyhunt/jobscout/internal/scoring"
)

var testNow = time.Date(2025, time.August, 30, 12, 0, 0, 0, time.UTC)

func localJobs() []*job.Job {
	return []*job.Job{
		{
			ID:           "local-a",
			Title:        "React Developer",
			Company:      "Silverline",
			Location:     "Remote",
			Salary:       "$80,000 - $95,000",
			PostedDate:   "2025-08-29",
			Description:  "Remote React and Node.js work for an automation startup.",
			Requirements: []string{"React", "Node.js"},
			IsRemote:     true,
			Tags:         []string{"remote"},
		},
		{
			ID:           "local-b",
			Title:        "Junior Web Developer",
			Company:      "Vanderbilt",
			Location:     "Nashville, TN",
			Salary:       "$60,000",
			PostedDate:   "2025-08-20",
			Description:  "HTML, CSS and JavaScript work on campus.",
			Requirements: []string{"JavaScript"},
			Tags:         []string{"education"},
		},
		{
			ID:           "local-c",
			Title:        "Data Entry Clerk",
			Company:      "Paper Co",
			Location:     "Boise, ID",
			Salary:       "$35,000",
			PostedDate:   "2025-07-01",
			Description:  "Spreadsheet upkeep.",
			Requirements: []string{"Excel"},
			Tags:         []string{"admin"},
		},
	}
}

func newTestRetriever(t *testing.T, baseURL string, local []*job.Job) *Retriever {
	t.Helper()

	prof := profile.Default()
	scorer := scoring.New(prof, profile.DefaultWeights()).
		WithClock(func() time.Time { return testNow })

	api := jobapi.New(zap.NewNop(), baseURL)
	api.HealthTimeout = 200 * time.Millisecond
	api.SearchTimeout = 500 * time.Millisecond

	return New(api, scorer, query.New(prof.Region), local, prof.Region, zap.NewNop())
}

func TestRetrieveRemoteSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/health":
			w.WriteHeader(http.StatusOK)
		case "/api/jobs/search":
			w.Write([]byte(`{
				"jobs": [
					{"id": "rem-low", "title": "Office Clerk", "company": "Paper Co", "location": "Boise, ID", "salary": "$30,000", "postedDate": "2025-05-01", "description": "Filing."},
					{"id": "rem-high", "title": "Junior React Developer", "company": "Modern AI Startup", "location": "Remote", "salary": "$90,000 - $110,000", "postedDate": "2025-08-30", "description": "React, JavaScript and Python automation.", "requirements": ["React", "JavaScript"], "isRemote": true, "tags": ["remote"]}
				],
				"total": 2
			}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	r := newTestRetriever(t, srv.URL, localJobs())
	result := r.Retrieve(context.Background(), jobapi.SearchParams{Search: "developer"})

	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if result.Message != "" {
		t.Fatalf("remote success must not carry a degraded-mode message, got %q", result.Message)
	}
	if len(result.Jobs) != 2 || result.Total != 2 {
		t.Fatalf("unexpected result: %d jobs, total %d", len(result.Jobs), result.Total)
	}

	// scored and ordered by relevance descending
	if result.Jobs[0].ID != "rem-high" {
		t.Fatalf("expected the stronger match first, got %s", result.Jobs[0].ID)
	}
	for _, j := range result.Jobs {
		if j.RelevanceScore < 0 || j.RelevanceScore > 100 {
			t.Fatalf("job %s has out-of-range score %d", j.ID, j.RelevanceScore)
		}
	}
	if result.Jobs[0].RelevanceScore < result.Jobs[1].RelevanceScore {
		t.Fatalf("result is not sorted by relevance: %d < %d",
			result.Jobs[0].RelevanceScore, result.Jobs[1].RelevanceScore)
	}
}

func TestRetrieveFallbackOnProbeFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // probe hits a dead server

	r := newTestRetriever(t, srv.URL, localJobs())
	result := r.Retrieve(context.Background(), jobapi.SearchParams{Search: "developer"})

	if result.Error != "" {
		t.Fatalf("fallback is a successful degraded response, got error %q", result.Error)
	}
	if result.Message == "" {
		t.Fatalf("expected a degraded-mode message")
	}

	// "developer" matches the two developer postings, ranked by relevance
	if len(result.Jobs) != 2 {
		t.Fatalf("expected 2 local jobs, got %d", len(result.Jobs))
	}
	if result.Jobs[0].ID != "local-a" || result.Jobs[1].ID != "local-b" {
		t.Fatalf("unexpected fallback order: %s, %s", result.Jobs[0].ID, result.Jobs[1].ID)
	}
}

func TestRetrieveFallbackOnEmptyRemote(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/health":
			w.WriteHeader(http.StatusOK)
		case "/api/jobs/search":
			w.Write([]byte(`{"jobs": [], "total": 0}`))
		}
	}))
	defer srv.Close()

	r := newTestRetriever(t, srv.URL, localJobs())
	result := r.Retrieve(context.Background(), jobapi.SearchParams{Search: "developer"})

	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if result.Message == "" {
		t.Fatalf("expected the empty remote result to trigger the fallback")
	}
	if len(result.Jobs) != 2 {
		t.Fatalf("expected 2 local jobs, got %d", len(result.Jobs))
	}
}

func TestRetrieveFallbackOnSearchFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/health":
			w.WriteHeader(http.StatusOK)
		case "/api/jobs/search":
			http.Error(w, "upstream scrape failed", http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	r := newTestRetriever(t, srv.URL, localJobs())
	result := r.Retrieve(context.Background(), jobapi.SearchParams{})

	if result.Message == "" || result.Error != "" {
		t.Fatalf("expected degraded fallback, got message=%q error=%q", result.Message, result.Error)
	}
}

func TestRetrieveFallbackHonorsLimit(t *testing.T) {
	t.Parallel()

	r := newTestRetriever(t, "http://127.0.0.1:1", localJobs())
	result := r.Retrieve(context.Background(), jobapi.SearchParams{Limit: 1})

	if len(result.Jobs) != 1 {
		t.Fatalf("expected the limit to truncate to 1 job, got %d", len(result.Jobs))
	}
	if result.Total != 3 {
		t.Fatalf("total must count all matches before truncation, got %d", result.Total)
	}
}

func TestRetrieveFallbackMapsLocationHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hint     string
		expectID string
		count    int
	}{
		{name: "remote hint", hint: "remote", expectID: "local-a", count: 1},
		{name: "region hint", hint: "nashville", expectID: "local-b", count: 1},
		{name: "unknown hint matches all", hint: "berlin", count: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newTestRetriever(t, "http://127.0.0.1:1", localJobs())
			result := r.Retrieve(context.Background(), jobapi.SearchParams{Location: tt.hint})

			if len(result.Jobs) != tt.count {
				t.Fatalf("expected %d jobs, got %d", tt.count, len(result.Jobs))
			}
			if tt.expectID != "" && result.Jobs[0].ID != tt.expectID {
				t.Fatalf("expected %s, got %s", tt.expectID, result.Jobs[0].ID)
			}
		})
	}
}

func TestRetrieveEmptyDatasetIsAnError(t *testing.T) {
	t.Parallel()

	r := newTestRetriever(t, "http://127.0.0.1:1", nil)
	result := r.Retrieve(context.Background(), jobapi.SearchParams{})

	if result.Error == "" {
		t.Fatalf("expected an error when the fallback dataset is empty")
	}
	if len(result.Jobs) != 0 || result.Total != 0 {
		t.Fatalf("error responses must carry no jobs, got %d/%d", len(result.Jobs), result.Total)
	}
}
