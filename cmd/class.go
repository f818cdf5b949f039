package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xkilldash9x/graft/internal/observability"
	"go.uber.org/zap"
)

var (
	classAdd    []string
	classRemove []string
	classToggle []string
	classOut    string
)

var classCmd = &cobra.Command{
	Use:   "class <file> <selector>",
	Short: "Mutate class lists on every element matching a CSS selector.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(classAdd)+len(classRemove)+len(classToggle) == 0 {
			return fmt.Errorf("nothing to do: pass at least one of --add, --remove, --toggle")
		}

		log := observability.GetLogger()
		doc, err := parseDocument(args[0], log)
		if err != nil {
			return err
		}

		sel, err := doc.QueryAllErr(args[1])
		if err != nil {
			return err
		}
		if len(classAdd) > 0 {
			sel.AddClass(classAdd...)
		}
		if len(classRemove) > 0 {
			sel.RemoveClass(classRemove...)
		}
		if len(classToggle) > 0 {
			sel.ToggleClass(classToggle...)
		}
		log.Debug("classes applied",
			zap.String("selector", args[1]),
			zap.Int("matches", sel.Len()))

		if classOut == "" {
			return doc.Render(cmd.OutOrStdout())
		}
		f, err := os.Create(classOut)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		return doc.Render(f)
	},
}

func init() {
	classCmd.Flags().StringSliceVar(&classAdd, "add", nil, "class names to add")
	classCmd.Flags().StringSliceVar(&classRemove, "remove", nil, "class names to remove")
	classCmd.Flags().StringSliceVar(&classToggle, "toggle", nil, "class names to toggle")
	classCmd.Flags().StringVarP(&classOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(classCmd)
}
