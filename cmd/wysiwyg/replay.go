package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"wysiwyg/internal/config"
	"wysiwyg/internal/dom"
	"wysiwyg/internal/edit"
	"wysiwyg/pkg/wysiwyg"
)

// Script is a recorded editing session
type Script struct {
	Content string `yaml:"content"`
	Steps   []Step `yaml:"steps"`
}

// Step is one user action. Exactly one field is expected to be set.
type Step struct {
	Select   []int      `yaml:"select,omitempty"`
	Wrap     string     `yaml:"wrap,omitempty"`
	Paste    *PasteStep `yaml:"paste,omitempty"`
	Key      *KeyStep   `yaml:"key,omitempty"`
	Link     *LinkStep  `yaml:"link,omitempty"`
	Clear    bool       `yaml:"clear,omitempty"`
	Undo     bool       `yaml:"undo,omitempty"`
	CodeView bool       `yaml:"codeview,omitempty"`
}

// PasteStep carries the clipboard payloads of a paste
type PasteStep struct {
	Text string `yaml:"text"`
	HTML string `yaml:"html"`
}

// KeyStep is a key press followed by its release
type KeyStep struct {
	Key  string `yaml:"key"`
	Meta bool   `yaml:"meta"`
	Ctrl bool   `yaml:"ctrl"`
}

// LinkStep fills and submits the link dialog
type LinkStep struct {
	Text   string `yaml:"text"`
	Href   string `yaml:"href"`
	NewTab bool   `yaml:"new_tab"`
}

func newReplayCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a scripted editing session",
		Long: `Replay a YAML editing script against a fresh editor and print the
resulting content.

Example script:
  content: "hello world"
  steps:
    - select: [0, 5]
    - wrap: b
    - select: [6, 11]
    - link: {href: "https://example.com", new_tab: true}
    - key: {key: z, ctrl: true}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read script %s: %w", args[0], err)
			}

			var script Script
			if err := yaml.Unmarshal(data, &script); err != nil {
				return fmt.Errorf("failed to parse script: %w", err)
			}

			out, err := replay(opts.cfg, script)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// replay runs the script and returns the final content
func replay(cfg config.Config, script Script) (string, error) {
	cfg.InitialContent = script.Content
	log := logrus.WithField("component", "replay")

	editor, err := wysiwyg.New(dom.CreateElement("div"), cfg,
		wysiwyg.WithLogger(logrus.WithField("component", "editor")))
	if err != nil {
		return "", err
	}
	defer editor.Destroy()

	for i, step := range script.Steps {
		log.WithField("step", i).Debugf("%+v", step)
		if err := runStep(editor, step); err != nil {
			return "", fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return editor.GetContent()
}

func runStep(editor *wysiwyg.Editor, step Step) error {
	switch {
	case step.Select != nil:
		switch len(step.Select) {
		case 1:
			editor.SelectText(step.Select[0], step.Select[0])
		case 2:
			editor.SelectText(step.Select[0], step.Select[1])
		default:
			return fmt.Errorf("select takes one or two offsets, got %d", len(step.Select))
		}
	case step.Wrap != "":
		editor.WrapInsideTag(step.Wrap)
	case step.Paste != nil:
		data := edit.ClipboardData{edit.MIMEText: step.Paste.Text}
		if step.Paste.HTML != "" {
			data[edit.MIMEHTML] = step.Paste.HTML
		}
		return editor.Paste(data)
	case step.Key != nil:
		for _, kind := range []wysiwyg.KeyType{wysiwyg.KeyDown, wysiwyg.KeyUp} {
			editor.HandleKey(wysiwyg.KeyEvent{Type: kind, Key: step.Key.Key, Meta: step.Key.Meta, Ctrl: step.Key.Ctrl})
		}
	case step.Link != nil:
		return submitLink(editor, step.Link)
	case step.Clear:
		editor.ClearStyle()
	case step.Undo:
		return editor.Undo()
	case step.CodeView:
		return editor.ToggleCodeView()
	default:
		return fmt.Errorf("empty step")
	}
	return nil
}

func submitLink(editor *wysiwyg.Editor, link *LinkStep) error {
	modal, err := editor.InsertLink()
	if err != nil || modal == nil {
		return err
	}

	if link.Text != "" {
		if err := modal.SetValue("text", link.Text); err != nil {
			return err
		}
	}
	if err := modal.SetValue("href", link.Href); err != nil {
		return err
	}
	if err := modal.SetChecked("openInNewTab", link.NewTab); err != nil {
		return err
	}
	modal.Submit()
	return nil
}
