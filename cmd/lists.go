package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show the task lists of the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.shutdown(ctx)

			lists, err := a.client.ListTaskLists(ctx)
			if err != nil {
				return err
			}

			for _, l := range lists {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", l.ID, l.Title)
			}
			return nil
		},
	}
}
