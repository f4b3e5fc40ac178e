// Package report renders a summarized log as text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/elliottslaughter/rust-gc-notes/pkg/models"
)

// Section banners. The trailing spaces are part of the format.
const (
	summaryBanner     = "/========================\\\n      Result Summary     \n\\========================/\n"
	undiagnosedBanner = "/========================\\\n   Undiagnosed Failures  \n\\========================/\n"
)

// PrintText writes the result summary table followed by the undiagnosed
// failures. Colour is applied around padded fields only, so the plain
// column layout is unchanged.
func PrintText(w io.Writer, r *models.Report) error {
	bold := color.New(color.Bold)

	if _, err := bold.Fprint(w, summaryBanner); err != nil {
		return err
	}
	fmt.Fprintln(w)

	for i := range r.Categories {
		fmt.Fprintln(w, SummaryLine(&r.Categories[i], r.Kinds))
	}

	fmt.Fprintln(w)
	_, _ = bold.Fprint(w, undiagnosedBanner)
	fmt.Fprintln(w)

	red := color.New(color.FgRed)
	for _, entry := range r.Undiagnosed() {
		_, _ = red.Fprintln(w, entry.Line())
		fmt.Fprintln(w, entry.Output)
		fmt.Fprintln(w)
	}
	return nil
}

// SummaryLine formats one category row: the label right-justified to 12
// columns, then "count (percent%) kind" for each kind, comma separated.
func SummaryLine(s *models.CategorySummary, kinds []models.Diagnosis) string {
	total := s.Total()
	fields := make([]string, 0, len(kinds))
	for _, k := range kinds {
		n := s.Count(k)
		pct := 0.0
		if total > 0 {
			pct = float64(n) * 100.0 / float64(total)
		}
		field := fmt.Sprintf("%3d (%5.1f%%) %s", n, pct, k)
		fields = append(fields, kindColor(k, n).Sprint(field))
	}
	return fmt.Sprintf("%12s: %s", s.Category, strings.Join(fields, ","))
}

func kindColor(k models.Diagnosis, n int) *color.Color {
	if n == 0 {
		return color.New(color.FgHiBlack)
	}
	switch k {
	case models.DiagnosisPassed:
		return color.New(color.FgGreen)
	case models.DiagnosisIgnored:
		return color.New(color.FgYellow)
	case models.DiagnosisUnknown:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgMagenta)
	}
}

// PrintJSON writes the report as indented JSON.
func PrintJSON(w io.Writer, r *models.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Print dispatches on format ("text" or "json").
func Print(w io.Writer, format string, r *models.Report) error {
	switch format {
	case "", "text":
		return PrintText(w, r)
	case "json":
		return PrintJSON(w, r)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
