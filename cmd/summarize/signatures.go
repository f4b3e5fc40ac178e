package summarize

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/elliottslaughter/rust-gc-notes/internal/analyzer"
	"github.com/elliottslaughter/rust-gc-notes/internal/config"
)

func newSignaturesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "signatures",
		Short: "List the failure signatures in evaluation order",
		Long: `List the failure signatures consulted for each failed test, in the
order they are tried. The first matching signature names the diagnosis;
failures matching none are reported as unknown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			signatures, err := config.LoadSignatures(o.settings.Signatures)
			if err != nil {
				return err
			}
			printSignatures(cmd, signatures)
			return nil
		},
	}
}

func printSignatures(cmd *cobra.Command, signatures []analyzer.Signature) {
	w := cmd.OutOrStdout()
	width := lo.Max(lo.Map(signatures, func(s analyzer.Signature, _ int) int { return len(s.Name) }))
	width = max(width, len("NAME"))

	fmt.Fprintf(w, "%-3s %-*s %s\n", "#", width, "NAME", "PATTERN")
	for i, s := range signatures {
		fmt.Fprintf(w, "%-3d %-*s %s\n", i+1, width, s.Name, s.Pattern.String())
	}
}
