package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wysiwyg/internal/serialize"
)

func newContentCommand() *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "content [file]",
		Short: "Print the canonical content of editor markup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markup, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			out, err := serialize.Content(markup)
			if err != nil {
				return fmt.Errorf("failed to serialize content: %w", err)
			}
			if markdown {
				if out, err = serialize.Markdown(out); err != nil {
					return fmt.Errorf("failed to convert to markdown: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print Markdown instead of HTML")
	return cmd
}
