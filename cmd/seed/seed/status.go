package seed

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStatusCmd(a *app, modules *[]string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which collections already hold documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.open(cmd, false, true)
			if err != nil {
				return err
			}
			defer sess.cleanup()

			rows, err := sess.seed.Status(cmd.Context(), *modules)
			if err != nil {
				return err
			}

			empty := 0
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "MODULE\tCOLLECTION\tSTATUS")
			for _, r := range rows {
				if r.Empty() {
					empty++
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", r.Module, r.Collection, r)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d collections empty\n", empty, len(rows))
			return nil
		},
	}
}
