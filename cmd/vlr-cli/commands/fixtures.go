package commands

import (
	"errors"
	"io"

	"vlrscraper/internal/fixtures"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fixturesCmd)
}

func renderFixtures(out io.Writer, t *fixtures.Transport) {
	urls := t.URLs()
	tbl := newTable(out)
	tbl.AppendHeader(table.Row{"URL"})
	for _, url := range urls {
		tbl.AppendRow(table.Row{url})
	}
	tbl.AppendFooter(table.Row{len(urls)})
	tbl.Render()
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures --fixtures <file>",
	Short: "Lists the pages stored in a regressions file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if replay == nil {
			return errors.New("fixtures needs --fixtures")
		}
		renderFixtures(cmd.OutOrStdout(), replay)
		return nil
	},
}
