package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/wdu-e2e/internal/config"
	"github.com/xkilldash9x/wdu-e2e/internal/suite"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the test profiles and the tags each one runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			extra := config.Get().Profiles
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PROFILE\tTAGS")
			for _, name := range suite.ProfileNames(extra) {
				tags, err := suite.ResolveTags(name, extra)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", name, tags)
			}
			return w.Flush()
		},
	}
}
