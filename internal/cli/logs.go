package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/linksaver/internal/logtail"
	"github.com/five82/linksaver/internal/prefs"
)

func newLogsCmd(env *Env) *cobra.Command {
	var (
		lines  int
		filter string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the request log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("lines") {
				lines = prefs.Load(env.PrefsPath).LogLines
			}
			out, err := logtail.Read(env.logFile, lines)
			if err != nil {
				return writeErr(cmd, err)
			}
			for _, line := range logtail.Filter(out, filter) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of lines (default from prefs log_lines; 0 prints all)")
	cmd.Flags().StringVarP(&filter, "search", "s", "", "Only lines containing this term")
	return cmd
}
