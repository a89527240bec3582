package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/numclean/internal/clean"
	"github.com/raphi011/numclean/internal/config"
	"github.com/raphi011/numclean/internal/history"
	"github.com/raphi011/numclean/internal/log"
	"github.com/raphi011/numclean/internal/output"
	"github.com/raphi011/numclean/internal/ui/static"
	"github.com/raphi011/numclean/internal/ui/styles"
)

// Command group IDs for organizing help output
const (
	GroupUtility = "utility"
	GroupConfig  = "config"
)

// newRootCmd builds the numclean command tree.
// The root command itself runs the filter on its single argument.
func newRootCmd() *cobra.Command {
	var (
		verbose bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "numclean <input>",
		Short: "Strip non-numeric lines from a data dump",
		Long: `numclean copies the purely numeric lines of a text file into a sibling
.csv file.

Blank lines and every line containing a letter or a '+' are dropped. All
other lines (digits, whitespace and punctuation such as '-', '.', ',') are
written unchanged and in their original order. The output path replaces the
input's final extension with .csv, so data.txt becomes data.csv.

The output path is printed to stdout, a summary to stderr.`,
		Example: `  numclean data.txt             # Writes data.csv
  numclean archive.tar.gz       # Writes archive.tar.csv
  numclean -q dump && wc -l dump.csv
  numclean ./history            # File named like a subcommand`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return clean.UsageError(len(args))
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			styles.Init(cfg.UI.Theme)

			// Rebuild the logger now that flags are parsed
			stderr := log.FromContext(ctx).Writer()
			cmd.SetContext(log.WithLogger(ctx, log.New(stderr, verbose, quiet)))
			return nil
		},
		RunE: runClean,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show each processing step on stderr")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the summary and all other log output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)
	cfg := config.FromContext(ctx)

	res, err := clean.Run(ctx, args[0])
	if err != nil {
		return err
	}

	out.Println(res.Output)
	l.Println(static.Summary(res.Output, res.Stats))

	if cfg.History.Enabled {
		done := l.Timed("recording history", "path", historyPath(cfg))
		err := recordRun(cfg, res)
		done()
		if err != nil {
			l.Printf("%s\n", styles.WarningStyle.Render(fmt.Sprintf("Warning: failed to record history: %v", err)))
		}
	}
	return nil
}

// recordRun stores res in the run history under absolute paths.
func recordRun(cfg *config.Config, res clean.Result) error {
	input, err := filepath.Abs(res.Input)
	if err != nil {
		return err
	}
	output, err := filepath.Abs(res.Output)
	if err != nil {
		return err
	}

	return history.Record(historyPath(cfg), history.Entry{
		Input:  input,
		Output: output,
		Stats:  res.Stats,
	}, cfg.History.MaxEntries)
}

// historyPath returns the configured history file, or the default one.
func historyPath(cfg *config.Config) string {
	if cfg.History.Path != "" {
		return cfg.History.Path
	}
	return history.DefaultPath()
}

// Execute runs the root command against the process environment and exits
// non-zero on failure.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Diagnostics go to stderr; colors are downsampled or stripped to
	// whatever stderr supports (pipes, NO_COLOR, dumb terminals)
	stderr := colorprofile.NewWriter(os.Stderr, os.Environ())

	os.Exit(run(ctx, os.Args[1:], os.Stdout, stderr))
}

// run executes numclean with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}
	ctx = config.WithConfig(ctx, &loadedCfg)
	ctx = log.WithLogger(ctx, log.New(stderr, false, false))
	ctx = output.WithPrinter(ctx, stdout)

	cmd := newRootCmd()
	// A nil slice would make cobra fall back to os.Args
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "numclean: %v\n", err)
		if clean.IsKind(err, clean.KindUsage) {
			fmt.Fprintln(stderr)
			fmt.Fprintln(stderr, "Run 'numclean -h' for help")
		}
		return 1
	}
	return 0
}
