package summarize

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/elliottslaughter/rust-gc-notes/internal/analysis"
	"github.com/elliottslaughter/rust-gc-notes/internal/analyzer"
	"github.com/elliottslaughter/rust-gc-notes/internal/config"
	"github.com/elliottslaughter/rust-gc-notes/internal/progress"
	"github.com/elliottslaughter/rust-gc-notes/internal/report"
)

func runSummarize(cmd *cobra.Command, path string, o *options) error {
	signatures, err := config.LoadSignatures(o.settings.Signatures)
	if err != nil {
		return err
	}
	o.logger.Debug("signature table", "count", len(signatures))

	var input io.Reader
	if path == "-" {
		input = cmd.InOrStdin()
	}

	emitter := progress.New(cmd.ErrOrStderr(), o.logger)
	result, err := analysis.Run(cmd.Context(), analysis.Params{
		Source:   path,
		Input:    input,
		Analyzer: analyzer.New(signatures),
		Emitter:  emitter,
		Logger:   o.logger,
	})
	emitter.Close()
	if err != nil {
		return err
	}

	o.logger.Info("summarized log", "source", path, "categories", len(result.Categories), "run_id", result.RunID)
	return report.Print(cmd.OutOrStdout(), o.settings.Format, result)
}
