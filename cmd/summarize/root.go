package summarize

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/elliottslaughter/rust-gc-notes/internal/config"
	"github.com/elliottslaughter/rust-gc-notes/internal/logging"
)

// options carries state resolved in PersistentPreRunE to the subcommands.
type options struct {
	configFile string
	v          *viper.Viper
	settings   config.Settings
	logger     *log.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{v: config.New()}

	cmd := &cobra.Command{
		Use:   "summarize <log-file>",
		Short: "Summarize a captured test-suite log",
		Long: `Summarize parses a captured test-suite log, groups the results by
category, classifies failures by known signatures, and prints a summary
table followed by every failure no signature explains.

Capture a log with:
  make check -k 2>&1 | tee tests.log

Examples:
  summarize tests.log
  summarize tests.log --format json
  summarize tests.log --signatures signatures.yaml
  make check -k 2>&1 | summarize -`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummarize(cmd, args[0], opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "Config file (default .summarize.yaml)")
	pf.StringP("signatures", "s", "", "YAML file with additional failure signatures")
	pf.Bool("no-color", false, "Disable colored output")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")

	_ = opts.v.BindPFlag(config.KeySignatures, pf.Lookup("signatures"))
	_ = opts.v.BindPFlag(config.KeyNoColor, pf.Lookup("no-color"))
	_ = opts.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = opts.v.BindPFlag(config.KeyFormat, cmd.Flags().Lookup("format"))

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSignaturesCmd(opts))
	return cmd
}

func (o *options) init(cmd *cobra.Command) error {
	// Arguments are valid by now; later failures are not usage errors.
	cmd.SilenceUsage = true

	if err := config.ReadFile(o.v, o.configFile); err != nil {
		return err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		o.v.Set(config.KeyLogLevel, "debug")
	}

	settings, err := config.Load(o.v)
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(cmd.ErrOrStderr(), settings.LogLevel)
	if err != nil {
		return err
	}

	color.NoColor = color.NoColor || settings.NoColor || !isTerminal(cmd.OutOrStdout())

	o.settings = settings
	o.logger = logger
	if f := o.v.ConfigFileUsed(); f != "" {
		logger.Debug("loaded config", "file", f)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Execute runs the root command and exits non-zero on any error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// printError writes err and any attached details, such as the offending
// log entry.
func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	_, _ = red.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
	for _, detail := range errors.GetAllDetails(err) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.TrimRight(detail, "\n"))
	}
}
