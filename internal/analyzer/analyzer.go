package analyzer

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/elliottslaughter/rust-gc-notes/pkg/models"
)

// ErrUnknownStatus is returned for entries whose status is not one the
// diagnoser understands.
var ErrUnknownStatus = errors.New("unknown test status")

// Analyzer classifies test entries against an ordered signature table.
type Analyzer struct {
	signatures []Signature
}

// New creates an Analyzer. A nil table uses DefaultSignatures.
func New(signatures []Signature) *Analyzer {
	if signatures == nil {
		signatures = DefaultSignatures()
	}
	return &Analyzer{signatures: signatures}
}

// Signatures returns the table in evaluation order.
func (a *Analyzer) Signatures() []Signature {
	return a.signatures
}

// Kinds returns every diagnosis kind in report order: passed, ignored, each
// signature, unknown.
func (a *Analyzer) Kinds() []models.Diagnosis {
	kinds := make([]models.Diagnosis, 0, len(a.signatures)+3)
	kinds = append(kinds, models.DiagnosisPassed, models.DiagnosisIgnored)
	kinds = append(kinds, a.FailureKinds()...)
	return kinds
}

// FailureKinds returns the kinds a failed entry can diagnose to.
func (a *Analyzer) FailureKinds() []models.Diagnosis {
	kinds := make([]models.Diagnosis, 0, len(a.signatures)+1)
	for _, s := range a.signatures {
		kinds = append(kinds, models.Diagnosis(s.Name))
	}
	return append(kinds, models.DiagnosisUnknown)
}

// Diagnose classifies a single entry. The first matching signature wins;
// a failure matching none is unknown.
func (a *Analyzer) Diagnose(entry models.TestEntry) (models.Diagnosis, error) {
	switch entry.Status {
	case models.StatusOK:
		return models.DiagnosisPassed, nil
	case models.StatusIgnored:
		return models.DiagnosisIgnored, nil
	case models.StatusFailed:
		for _, s := range a.signatures {
			if s.Pattern.MatchString(entry.Output) {
				return models.Diagnosis(s.Name), nil
			}
		}
		return models.DiagnosisUnknown, nil
	}
	err := errors.Wrapf(ErrUnknownStatus, "status %q for entry %s", entry.Status, entry.Path)
	return "", errors.WithDetail(err, dumpEntry(entry))
}

// Analyze returns a copy of entries with the diagnosis attached.
func (a *Analyzer) Analyze(entries []models.TestEntry) ([]models.TestEntry, error) {
	out := make([]models.TestEntry, len(entries))
	for i, entry := range entries {
		d, err := a.Diagnose(entry)
		if err != nil {
			return nil, err
		}
		entry.Diagnosis = d
		out[i] = entry
	}
	return out, nil
}

func dumpEntry(entry models.TestEntry) string {
	data, err := yaml.Marshal(entry)
	if err != nil {
		return entry.Line()
	}
	return string(data)
}
