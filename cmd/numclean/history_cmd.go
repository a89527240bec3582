package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/numclean/internal/config"
	"github.com/raphi011/numclean/internal/history"
	"github.com/raphi011/numclean/internal/log"
	"github.com/raphi011/numclean/internal/output"
	"github.com/raphi011/numclean/internal/ui/static"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show past runs",
		Aliases: []string{"hist"},
		GroupID: GroupUtility,
		Long: `Show past numclean runs, newest first.

Each input file appears once with the counts of its latest run and the
number of times it was cleaned. Output is a table on a terminal and
tab-separated values otherwise.`,
		Example: `  numclean history              # List past runs
  numclean history --json       # Machine-readable list
  numclean history prune        # Forget inputs that no longer exist
  numclean history clear        # Forget everything`,
		Args: cobra.NoArgs,
		RunE: runHistoryList,
	}

	cmd.Flags().Bool("json", false, "Output as JSON")

	cmd.AddCommand(newHistoryPruneCmd())
	cmd.AddCommand(newHistoryClearCmd())

	return cmd
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := output.FromContext(ctx)
	l := log.FromContext(ctx)
	cfg := config.FromContext(ctx)

	asJSON, _ := cmd.Flags().GetBool("json")

	h, err := history.Load(historyPath(cfg))
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	entries := h.Recent()

	switch {
	case asJSON:
		if entries == nil {
			entries = []history.Entry{}
		}
		return out.JSON(entries)
	case len(entries) == 0:
		l.Println("No runs recorded")
	case out.IsTerminal():
		out.Print(static.RenderHistory(entries))
	default:
		out.Print(static.RenderHistoryTSV(entries))
	}
	return nil
}

func newHistoryPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove runs whose input file no longer exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			path := historyPath(config.FromContext(ctx))

			removed, err := history.Prune(path)
			if err != nil {
				return fmt.Errorf("prune history: %w", err)
			}
			if removed == 0 {
				l.Println("No stale runs")
				return nil
			}
			l.Printf("Removed %d stale %s\n", removed, pluralize(removed, "run"))
			return nil
		},
	}
}

func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := history.Clear(historyPath(config.FromContext(ctx))); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			log.FromContext(ctx).Println("History cleared")
			return nil
		},
	}
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
