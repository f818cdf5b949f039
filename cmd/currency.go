package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xkilldash9x/graft/pkg/format"
)

var (
	currencyMinDigits int
	currencyMaxDigits int
)

var currencyCmd = &cobra.Command{
	Use:   "currency <amount> <locale> <code>",
	Short: "Format an amount as locale-aware currency.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("parse amount %q: %w", args[0], err)
		}

		var opts format.Options
		if currencyMinDigits >= 0 {
			opts.MinFractionDigits = &currencyMinDigits
		}
		if currencyMaxDigits >= 0 {
			opts.MaxFractionDigits = &currencyMaxDigits
		}

		out, err := format.Currency(amount, args[1], args[2], opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	currencyCmd.Flags().IntVar(&currencyMinDigits, "min-digits", -1, "minimum fraction digits (-1 for currency default)")
	currencyCmd.Flags().IntVar(&currencyMaxDigits, "max-digits", -1, "maximum fraction digits (-1 for currency default)")
	rootCmd.AddCommand(currencyCmd)
}
