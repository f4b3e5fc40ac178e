package models

import "fmt"

// Status is the outcome recorded on a test entry line.
type Status string

const (
	StatusOK      Status = "ok"
	StatusIgnored Status = "ignored"
	StatusFailed  Status = "FAILED"
	StatusNone    Status = ""
)

// TestEntry is one test outcome line plus its captured output.
type TestEntry struct {
	Category  string    `json:"category" yaml:"category"`
	Path      string    `json:"path" yaml:"path"`
	Status    Status    `json:"status" yaml:"status"`
	Output    string    `json:"output" yaml:"output"`
	Diagnosis Diagnosis `json:"diagnosis,omitempty" yaml:"diagnosis,omitempty"`
}

// Line reconstructs the entry line as it appears in the log.
func (e TestEntry) Line() string {
	return fmt.Sprintf("test [%s] %s ... %s", e.Category, e.Path, e.Status)
}

// ResultSummary holds the counts from a category's trailing result line.
// Declared is false when the category had no result line; the counts are
// then zero and carry no meaning.
type ResultSummary struct {
	Declared bool   `json:"declared"`
	Status   string `json:"status,omitempty"`
	Passed   int    `json:"passed"`
	Failed   int    `json:"failed"`
	Ignored  int    `json:"ignored"`
}

// Total returns the number of tests the result line accounts for.
func (r ResultSummary) Total() int {
	return r.Passed + r.Failed + r.Ignored
}
