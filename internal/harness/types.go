package harness

// Outcome is the result of a single case.
type Outcome struct {
	Locator    string `json:"locator"`
	Expression string `json:"expression,omitempty"`
	Passed     bool   `json:"passed"`
	Matches    *int   `json:"matches,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Passed is true if every case passed.
	Passed bool `json:"passed"`

	// Outcomes holds one entry per case, in case order.
	Outcomes []Outcome `json:"outcomes"`

	// Errors contains one message per failed case.
	// Empty if Passed is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Passed:   true,
		Outcomes: []Outcome{},
		Errors:   []string{},
	}
}

// Add records an outcome, failing the result when the outcome failed.
func (r *Result) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	if !o.Passed {
		r.Errors = append(r.Errors, o.Locator+": "+o.Message)
		r.Passed = false
	}
}
