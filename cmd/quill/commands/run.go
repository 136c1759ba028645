package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/quill/internal/clipboard"
	"github.com/sant0-9/quill/internal/llm"
	"github.com/sant0-9/quill/internal/prompts"
	"github.com/sant0-9/quill/internal/rewrite"
)

func runCmd() *cobra.Command {
	var copyOut bool

	cmd := &cobra.Command{
		Use:   "run [text]",
		Short: "Rewrite text and print the result",
		Long:  "Rewrite the given text, or standard input when no text is given, and print the result.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			client, err := llm.NewClient(cfg, logger)
			if err != nil {
				return err
			}

			ctrl := rewrite.NewController(client, clipboard.System{}, logger)
			kind, err := prompts.ParseAction(cfg.DefaultAction)
			if err != nil {
				return err
			}
			if err := ctrl.SelectAction(kind); err != nil {
				return err
			}
			ctrl.SetTargetLanguage(cfg.TargetLanguage)
			ctrl.SetInput(text)

			ctrl.ProcessText(cmd.Context())

			s := ctrl.State()
			if s.Err != "" {
				return errors.New(s.Err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Output)

			if copyOut {
				if _, ok := ctrl.CopyToClipboard(); !ok {
					return errors.New(ctrl.State().Err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "also copy the result to the clipboard")
	return cmd
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if f, ok := stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", rewrite.ErrEmptyInput
		}
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
