package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "List linked copies whose original no longer exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mirrors, err := a.workspace.DanglingMirrors(ctx)
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(mirrors)
			}
			if len(mirrors) == 0 {
				fmt.Fprintln(out, "no dangling linked copies")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tLINE\tID\tCONTENT")
			for _, m := range mirrors {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", m.RelPath, m.Line+1, m.SourceID, m.Content)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			return fmt.Errorf("%d dangling linked copies", len(mirrors))
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the dangling copies as JSON")
	return cmd
}
