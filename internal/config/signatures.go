package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elliottslaughter/rust-gc-notes/internal/analyzer"
)

// SignatureFile is the YAML layout of a signature table file.
type SignatureFile struct {
	// Replace drops the built-in signatures instead of appending to them.
	Replace    bool            `yaml:"replace"`
	Signatures []SignatureSpec `yaml:"signatures"`
}

// SignatureSpec is one named pattern.
type SignatureSpec struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// LoadSignatures returns the signature table for path. An empty path yields
// the built-in table.
func LoadSignatures(path string) ([]analyzer.Signature, error) {
	if path == "" {
		return analyzer.DefaultSignatures(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signatures: %w", err)
	}
	return ParseSignatures(data)
}

// ParseSignatures builds a signature table from YAML. Unknown keys are
// rejected so typos do not silently disable a signature.
func ParseSignatures(data []byte) ([]analyzer.Signature, error) {
	var file SignatureFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse signatures: %w", err)
	}

	var table []analyzer.Signature
	if !file.Replace {
		table = analyzer.DefaultSignatures()
	}
	for _, spec := range file.Signatures {
		sig, err := analyzer.NewSignature(spec.Name, spec.Pattern)
		if err != nil {
			return nil, err
		}
		table = append(table, sig)
	}
	if err := analyzer.ValidateSignatures(table); err != nil {
		return nil, err
	}
	return table, nil
}
