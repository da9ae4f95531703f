package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var txCmd = &cobra.Command{
	Use:   "tx <hash>",
	Short: "Look up a transaction's inclusion status",
	Long: `Fetch the receipt for a transaction hash. A hash the endpoint has no
record of yet reports as pending.

Examples:
  chainctl tx 0xabc...def`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := svc.Receipt(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printResult(r, func() {
			fmt.Printf("hash:   %s\n", r.Hash)
			fmt.Printf("status: %s\n", r.Status)
			if r.BlockNumber != 0 {
				fmt.Printf("block:  %d (%s)\n", r.BlockNumber, r.BlockHash)
				fmt.Printf("gas:    %d\n", r.GasUsed)
			}
			if len(r.Events) > 0 {
				fmt.Printf("events: %s\n", strings.Join(r.Events, ", "))
			}
		})
		return nil
	},
}
