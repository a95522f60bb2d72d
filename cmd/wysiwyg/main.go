package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"wysiwyg/internal/config"
)

// rootOptions holds the flags shared by every command
type rootOptions struct {
	configPath string
	verbose    bool
	cfg        config.Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{cfg: config.Default()}

	cmd := &cobra.Command{
		Use:   "wysiwyg",
		Short: "Headless rich-text editing tools",
		Long: `wysiwyg drives the headless editing engine from the command line.

It cleans pasted HTML down to the editor's formatting vocabulary, turns raw
editor markup into canonical content or Markdown, replays scripted editing
sessions and serves the same pipelines over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			if opts.configPath == "" {
				return nil
			}
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Editor configuration file (YAML)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(newCleanCommand())
	cmd.AddCommand(newContentCommand())
	cmd.AddCommand(newReplayCommand(opts))
	cmd.AddCommand(newPasteCommand(opts))
	cmd.AddCommand(newServeCommand())
	return cmd
}

// readInput reads the file named by the first argument, or stdin
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read input file %s: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	return string(data), nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
