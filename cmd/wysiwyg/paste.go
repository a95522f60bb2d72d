package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"wysiwyg/internal/config"
	"wysiwyg/internal/dom"
	"wysiwyg/internal/edit"
	"wysiwyg/pkg/wysiwyg"
)

func newPasteCommand(opts *rootOptions) *cobra.Command {
	var (
		content string
		asHTML  bool
	)

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Paste the system clipboard into editor content",
		Long: `Paste the system clipboard at the end of the given content and print the
resulting canonical content. With --html the clipboard is treated as HTML and
cleaned before insertion.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := clipboard.ReadAll()
			if err != nil {
				return fmt.Errorf("failed to read clipboard: %w", err)
			}

			data := edit.ClipboardData{edit.MIMEText: text}
			if asHTML {
				data[edit.MIMEHTML] = text
			}

			out, err := pasteAtEnd(opts.cfg, content, data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Editor content to paste into")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Treat the clipboard as HTML")
	return cmd
}

// pasteAtEnd pastes data after the last character of content
func pasteAtEnd(cfg config.Config, content string, data edit.ClipboardData) (string, error) {
	cfg.InitialContent = content
	editor, err := wysiwyg.New(dom.CreateElement("div"), cfg,
		wysiwyg.WithLogger(logrus.WithField("component", "editor")))
	if err != nil {
		return "", err
	}
	defer editor.Destroy()

	end := utf8.RuneCountInString(dom.TextContent(editor.Visual()))
	editor.SelectText(end, end)
	if err := editor.Paste(data); err != nil {
		return "", fmt.Errorf("failed to paste: %w", err)
	}
	return editor.GetContent()
}
