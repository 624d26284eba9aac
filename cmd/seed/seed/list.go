package seed

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(a *app, modules *[]string) *cobra.Command {
	var permissions bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List modules, their collections and record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.open(cmd, false, false)
			if err != nil {
				return err
			}
			defer sess.cleanup()

			rows, total, err := sess.seed.List(*modules)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "MODULE\tCOLLECTION\tRECORDS\tDEPENDS ON")
			for _, r := range rows {
				deps := "-"
				if len(r.Dependencies) > 0 {
					deps = strings.Join(r.Dependencies, ", ")
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.Module, r.Collection, r.Records, deps)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%d collections, total=%d records\n", len(rows), total)

			if !permissions {
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "PERMISSION\tDESCRIPTION\tGRANTED TO")
			for _, p := range sess.seed.Permissions() {
				roles := "-"
				if len(p.Roles) > 0 {
					roles = strings.Join(p.Roles, ", ")
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", p.Permission, p.Description, roles)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&permissions, "permissions", false, "Also print the permission catalog and the roles granting each")
	return cmd
}
