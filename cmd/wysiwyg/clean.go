package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"wysiwyg/internal/dom"
	"wysiwyg/internal/edit"
	"wysiwyg/internal/sanitize"
)

func newCleanCommand() *cobra.Command {
	var (
		fromClipboard bool
		context       []string
	)

	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Clean pasted HTML",
		Long: `Clean HTML the way the editor cleans a paste: inline styles become tags,
attributes are stripped, unknown elements are unwrapped and whitespace is
collapsed.

Examples:
  # Clean a saved clipboard fragment
  wysiwyg clean fragment.html

  # Clean the system clipboard as if pasted inside bold text
  wysiwyg clean --clipboard --context b`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var markup string
			var err error
			if fromClipboard {
				markup, err = clipboard.ReadAll()
				if err != nil {
					return fmt.Errorf("failed to read clipboard: %w", err)
				}
			} else if markup, err = readInput(cmd, args); err != nil {
				return err
			}

			cleaned, err := edit.CleanClipboardHTML(markup, sanitize.ContextFromTags(context...))
			if err != nil {
				return fmt.Errorf("failed to clean markup: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dom.InnerHTML(cleaned))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "Read the markup from the system clipboard")
	cmd.Flags().StringSliceVar(&context, "context", nil, "Formatting tags active at the paste point (b,i,u,s,q)")
	return cmd
}
