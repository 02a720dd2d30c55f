package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/tasknotes/internal/render"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <note.md>",
		Short: "Render the task blocks of a note once",
		Long: `Render every fenced task block of a markdown note and print the
resulting checklists to stdout.

Blocks are fenced with three backticks and the "tasks" tag:

  ` + "```tasks" + `
  list: Work
  date: today
  ` + "```" + ``,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			notePath := args[0]

			note, err := os.ReadFile(notePath)
			if err != nil {
				return fmt.Errorf("reading note: %w", err)
			}

			blocks := render.ExtractBlocks(string(note))
			if len(blocks) == 0 {
				return fmt.Errorf("no task blocks found in %s", notePath)
			}

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.shutdown(ctx)

			for i, b := range blocks {
				id := a.controller.Mount(ctx, notePath, b.Body)
				result, err := a.controller.Render(ctx, id)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprint(cmd.OutOrStdout(), result.Markdown)
			}
			return nil
		},
	}

	return cmd
}
