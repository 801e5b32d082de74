package domain

// RunStatistics aggregates outcomes. Errored cases count as failed for the
// pass rate but are tracked separately as well.
type RunStatistics struct {
	Total   int `json:"total" db:"total"`
	Passed  int `json:"passed" db:"passed"`
	Failed  int `json:"failed" db:"failed"`
	Errored int `json:"errored" db:"errored"`
}

// Add accounts for one outcome
func (s *RunStatistics) Add(o Outcome) {
	s.Total++
	switch o.Kind {
	case OutcomePassed:
		s.Passed++
	case OutcomeErrored:
		s.Errored++
		s.Failed++
	default:
		s.Failed++
	}
}

// PassRate is passed/total in percent, 0 for an empty run
func (s RunStatistics) PassRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Total) * 100
}
