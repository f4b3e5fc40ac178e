package analyzer

import (
	"regexp"

	"github.com/cockroachdb/errors"

	"github.com/elliottslaughter/rust-gc-notes/pkg/models"
)

// ErrInvalidSignature is returned for signatures that cannot be used.
var ErrInvalidSignature = errors.New("invalid failure signature")

// Signature names a known class of failure by a pattern over test output.
type Signature struct {
	Name    string
	Pattern *regexp.Regexp
}

// gcregrootPattern matches the LLVM instruction selection crash on the
// gcregroot intrinsic.
const gcregrootPattern = `LLVM ERROR: Cannot select: intrinsic %llvm.gcregroot`

// DefaultSignatures returns the built-in signature table.
func DefaultSignatures() []Signature {
	return []Signature{
		{Name: string(models.DiagnosisGCRegRoot), Pattern: regexp.MustCompile(gcregrootPattern)},
	}
}

// NewSignature compiles a signature, rejecting empty or reserved names.
func NewSignature(name, pattern string) (Signature, error) {
	if name == "" {
		return Signature{}, errors.Wrap(ErrInvalidSignature, "name is empty")
	}
	if models.IsReserved(name) {
		return Signature{}, errors.Wrapf(ErrInvalidSignature, "name %q is reserved", name)
	}
	if pattern == "" {
		return Signature{}, errors.Wrapf(ErrInvalidSignature, "signature %q has an empty pattern", name)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Signature{}, errors.Mark(errors.Wrapf(err, "signature %q", name), ErrInvalidSignature)
	}
	return Signature{Name: name, Pattern: re}, nil
}

// ValidateSignatures checks that signature names are unique.
func ValidateSignatures(signatures []Signature) error {
	seen := make(map[string]bool, len(signatures))
	for _, s := range signatures {
		if seen[s.Name] {
			return errors.Wrapf(ErrInvalidSignature, "duplicate name %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}
