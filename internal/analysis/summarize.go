package analysis

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/elliottslaughter/rust-gc-notes/pkg/models"
)

// Summarizer failures. Both mean the log did not parse the way its own
// result line says it should.
var (
	ErrMixedCategory = errors.New("entries from more than one category")
	ErrCountMismatch = errors.New("diagnosis counts disagree with result line")
)

// Summarize aggregates the diagnosed entries of one category. It returns nil
// for an empty entry list. kinds lists every diagnosis kind in report order
// and failureKinds the subset a failed test can diagnose to.
func Summarize(entries []models.TestEntry, result models.ResultSummary, kinds, failureKinds []models.Diagnosis) (*models.CategorySummary, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	name := entries[0].Category
	if stray, found := lo.Find(entries, func(e models.TestEntry) bool { return e.Category != name }); found {
		err := errors.Wrapf(ErrMixedCategory, "category %q contains %s", name, stray.Line())
		return nil, errors.WithDetailf(err, "first entry: %s\nstray entry: %s", entries[0].Line(), stray.Line())
	}

	byDiagnosis := lo.GroupBy(entries, func(e models.TestEntry) models.Diagnosis { return e.Diagnosis })

	counts := make(map[models.Diagnosis]int, len(kinds))
	for _, k := range kinds {
		counts[k] = 0
	}
	for k, group := range byDiagnosis {
		counts[k] = len(group)
	}

	summary := &models.CategorySummary{
		Category:  name,
		Result:    result,
		Diagnosis: counts,
		Entries:   byDiagnosis,
	}
	if !result.Declared {
		return summary, nil
	}
	if err := crossCheck(summary, failureKinds); err != nil {
		return nil, err
	}
	return summary, nil
}

func crossCheck(s *models.CategorySummary, failureKinds []models.Diagnosis) error {
	failed := lo.SumBy(failureKinds, func(k models.Diagnosis) int { return s.Diagnosis[k] })

	checks := []struct {
		field    string
		counted  int
		declared int
	}{
		{"passed", s.Count(models.DiagnosisPassed), s.Result.Passed},
		{"ignored", s.Count(models.DiagnosisIgnored), s.Result.Ignored},
		{"failed", failed, s.Result.Failed},
	}
	for _, c := range checks {
		if c.counted == c.declared {
			continue
		}
		err := errors.Wrapf(ErrCountMismatch, "category %q: %d %s entries, result line declares %d",
			s.Category, c.counted, c.field, c.declared)
		return errors.WithDetailf(err, "diagnosis: %v\nresult: %+v", s.Diagnosis, s.Result)
	}
	return nil
}
