// Package static provides non-interactive terminal output components.
//
// This package renders the run summary and the history listing. Styling is
// applied unconditionally; callers write through a colorprofile writer,
// which strips it where the terminal cannot show it.
package static

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/numclean/internal/filter"
	"github.com/raphi011/numclean/internal/history"
	"github.com/raphi011/numclean/internal/ui/styles"
)

// HistoryHeaders are the column titles of the history table
var HistoryHeaders = []string{"INPUT", "OUTPUT", "KEPT", "LINES", "RUNS", "LAST RUN"}

// lastRunLayout formats the LAST RUN column
const lastRunLayout = "2006-01-02 15:04"

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Bold.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// HistoryRow returns the table cells for one history entry, matching
// HistoryHeaders.
func HistoryRow(e history.Entry) []string {
	return []string{
		e.Input,
		e.Output,
		strconv.Itoa(e.Stats.Kept),
		strconv.Itoa(e.Stats.Lines),
		strconv.Itoa(e.RunCount),
		e.LastRun.Local().Format(lastRunLayout),
	}
}

// RenderHistory renders entries as a table, or "" when there are none.
func RenderHistory(entries []history.Entry) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = HistoryRow(e)
	}
	return RenderTable(HistoryHeaders, rows)
}

// RenderHistoryTSV renders entries as tab-separated lines for scripts.
// Timestamps use RFC 3339.
func RenderHistoryTSV(entries []history.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		row := HistoryRow(e)
		row[len(row)-1] = e.LastRun.UTC().Format(time.RFC3339)
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}

// Summary renders the one-line result of a run:
//
//	✓ kept 2 of 5 lines → data.csv (◌ 1 blank, ✕ 2 rejected)
func Summary(output string, st filter.Stats) string {
	sym := styles.DefaultSymbols

	kept := styles.SuccessStyle.Render(fmt.Sprintf("%s kept %d of %d %s", sym.Kept, st.Kept, st.Lines, plural(st.Lines, "line")))
	path := styles.PrimaryStyle.Render(output)

	if st.Dropped() == 0 {
		return fmt.Sprintf("%s %s %s", kept, sym.Arrow, path)
	}

	blank := styles.MutedStyle.Render(fmt.Sprintf("%s %d blank", sym.Blank, st.Blank))
	rejected := styles.ErrorStyle.Render(fmt.Sprintf("%s %d rejected", sym.Rejected, st.Rejected))
	return fmt.Sprintf("%s %s %s (%s, %s)", kept, sym.Arrow, path, blank, rejected)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
