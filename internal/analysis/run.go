package analysis

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/elliottslaughter/rust-gc-notes/internal/analyzer"
	"github.com/elliottslaughter/rust-gc-notes/internal/parser"
	"github.com/elliottslaughter/rust-gc-notes/internal/progress"
	"github.com/elliottslaughter/rust-gc-notes/pkg/models"
)

// Params configures a summarize run. Source is the log path, with "-"
// meaning standard input; Input, when set, is read instead of opening Source.
type Params struct {
	Source   string
	Input    io.Reader
	Analyzer *analyzer.Analyzer
	Emitter  progress.Emitter
	Logger   *log.Logger
}

// Run executes the full pipeline: read the log, split categories and
// entries, diagnose, and summarize. Categories without entries are skipped.
func Run(ctx context.Context, p Params) (*models.Report, error) {
	a := p.Analyzer
	if a == nil {
		a = analyzer.New(nil)
	}
	emitter := p.Emitter
	if emitter == nil {
		emitter = progress.Discard
	}

	emitter.Emit(progress.Event{Type: "stage", Message: "Reading " + p.Source})
	text, err := readInput(p)
	if err != nil {
		return nil, err
	}

	emitter.Emit(progress.Event{Type: "stage", Message: "Parsing log"})
	lp := &parser.LibtestParser{}
	categories := lp.ParseText(text)

	kinds := a.Kinds()
	failureKinds := a.FailureKinds()
	report := &models.Report{
		RunID:      uuid.NewString(),
		Source:     p.Source,
		Kinds:      kinds,
		Categories: make([]models.CategorySummary, 0, len(categories)),
	}

	for _, c := range categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(c.Entries) == 0 {
			continue
		}
		emitter.Emit(progress.Event{Type: "category", Message: "Diagnosing", Category: c.Name(), Entries: len(c.Entries)})

		diagnosed, err := a.Analyze(c.Entries)
		if err != nil {
			return nil, errors.Wrapf(err, "category %q", c.Name())
		}
		summary, err := Summarize(diagnosed, c.Result, kinds, failureKinds)
		if err != nil {
			return nil, err
		}
		if !c.Result.Declared && p.Logger != nil {
			p.Logger.Warn("category has no result line, skipping cross-check", "category", summary.Category)
		}
		report.Categories = append(report.Categories, *summary)
	}

	emitter.Emit(progress.Event{Type: "done", Message: fmt.Sprintf("Summarized %d categories", len(report.Categories))})
	return report, nil
}

func readInput(p Params) (string, error) {
	if p.Input != nil {
		return parser.Read(p.Input, p.Source)
	}
	return parser.ReadLog(p.Source)
}
