// ABOUTME: Run-wide accumulation of test results
// ABOUTME: Append-only map from status to insertion-ordered results
package report

import "sync"

// Summary accumulates results for one run. Every status key is present from
// construction; results are only ever appended.
type Summary struct {
	RunID string

	mu      sync.Mutex
	results map[Status][]Result
}

// NewSummary creates an empty summary with all statuses initialised
func NewSummary(runID string) *Summary {
	s := &Summary{
		RunID:   runID,
		results: make(map[Status][]Result, len(Statuses())),
	}
	for _, st := range Statuses() {
		s.results[st] = []Result{}
	}
	return s
}

// Add appends r under its status. Safe for concurrent use.
func (s *Summary) Add(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[r.Status] = append(s.results[r.Status], r)
}

// Results returns a copy of the results recorded under status
func (s *Summary) Results(status Status) []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Result, len(s.results[status]))
	copy(out, s.results[status])
	return out
}

// Count returns the number of results under status
func (s *Summary) Count(status Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results[status])
}

// Total returns the number of recorded results
func (s *Summary) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, rs := range s.results {
		n += len(rs)
	}
	return n
}

// Failed reports whether any case failed or crashed
func (s *Summary) Failed() bool {
	return s.Count(StatusFailure) > 0 || s.Count(StatusCrash) > 0
}

// All returns every result grouped in reporting order
func (s *Summary) All() []Result {
	var out []Result
	for _, st := range Statuses() {
		out = append(out, s.Results(st)...)
	}
	return out
}
