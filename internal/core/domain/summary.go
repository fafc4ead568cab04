package domain

// Exit codes returned by the validation command.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// FileOutcome is one entry of the ordered filename -> valid mapping.
type FileOutcome struct {
	FileName string `json:"file_name"`
	Valid    bool   `json:"valid"`
}

// Summary is the immutable snapshot built once all files are processed.
type Summary struct {
	Outcomes []FileOutcome `json:"outcomes"`
	Passed   int           `json:"passed"`
	Total    int           `json:"total"`
}

// AllPassed reports whether at least one file ran and every file passed.
func (s Summary) AllPassed() bool {
	return s.Total > 0 && s.Passed == s.Total
}

// Failed returns the names of the files that did not pass, in order.
func (s Summary) Failed() []string {
	var out []string
	for _, o := range s.Outcomes {
		if !o.Valid {
			out = append(out, o.FileName)
		}
	}
	return out
}

// Summarize reduces ordered per-file outcomes to a summary and exit code.
// The exit code is ExitOK only when every file passed and at least one ran.
func Summarize(outcomes []FileOutcome) (Summary, int) {
	s := Summary{
		Outcomes: append([]FileOutcome(nil), outcomes...),
		Total:    len(outcomes),
	}
	for _, o := range outcomes {
		if o.Valid {
			s.Passed++
		}
	}
	if s.AllPassed() {
		return s, ExitOK
	}
	return s, ExitFailure
}

// OutcomesOf projects file results onto the ordered outcome list.
func OutcomesOf(results []FileResult) []FileOutcome {
	out := make([]FileOutcome, 0, len(results))
	for _, r := range results {
		out = append(out, FileOutcome{FileName: r.FileName, Valid: r.Valid})
	}
	return out
}

// Report is the complete outcome of one validation run.
type Report struct {
	RunID    string       `json:"run_id"`
	Results  []FileResult `json:"results"`
	Summary  Summary      `json:"summary"`
	ExitCode int          `json:"exit_code"`
}
