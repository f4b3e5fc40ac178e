package models

// Diagnosis is the classification assigned to a test entry.
type Diagnosis string

// Built-in diagnosis kinds. Signature names from the signature table are
// additional kinds that sit between Ignored and Unknown.
const (
	DiagnosisPassed    Diagnosis = "passed"
	DiagnosisIgnored   Diagnosis = "ignored"
	DiagnosisGCRegRoot Diagnosis = "gcregroot"
	DiagnosisUnknown   Diagnosis = "unknown"
)

// IsReserved reports whether name is a kind that a signature may not use.
func IsReserved(name string) bool {
	switch Diagnosis(name) {
	case DiagnosisPassed, DiagnosisIgnored, DiagnosisUnknown:
		return true
	}
	return false
}

// CategorySummary aggregates the diagnosed entries of one category.
type CategorySummary struct {
	Category  string                    `json:"category"`
	Result    ResultSummary             `json:"result"`
	Diagnosis map[Diagnosis]int         `json:"diagnosis"`
	Entries   map[Diagnosis][]TestEntry `json:"entries"`
}

// Total returns the number of entries counted across all kinds.
func (s *CategorySummary) Total() int {
	total := 0
	for _, n := range s.Diagnosis {
		total += n
	}
	return total
}

// Count returns the count for kind, zero if never seen.
func (s *CategorySummary) Count(kind Diagnosis) int {
	return s.Diagnosis[kind]
}

// Report is the complete result of summarizing one log.
type Report struct {
	RunID      string            `json:"run_id"`
	Source     string            `json:"source"`
	Kinds      []Diagnosis       `json:"kinds"`
	Categories []CategorySummary `json:"categories"`
}

// Undiagnosed returns every entry diagnosed as unknown, in category order.
func (r *Report) Undiagnosed() []TestEntry {
	var out []TestEntry
	for _, c := range r.Categories {
		out = append(out, c.Entries[DiagnosisUnknown]...)
	}
	return out
}
