package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <address>",
	Short: "Check that an address hosts a fungible token contract",
	Long: `Probe an address for an ERC-20-shaped token contract.

Examples:
  chainctl validate 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045
  chainctl validate --json 0x...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := svc.ValidateContract(cmd.Context(), args[0])
		printResult(res, func() {
			fmt.Printf("valid:    %v\n", res.IsValid)
			fmt.Printf("fungible: %v\n", res.IsFungibleToken)
			if res.Error != "" {
				fmt.Printf("error:    %s\n", res.Error)
			}
			if m := res.Metadata; m != nil {
				fmt.Printf("name:     %s\n", m.Name)
				fmt.Printf("symbol:   %s\n", m.Symbol)
				fmt.Printf("decimals: %d\n", m.Decimals)
				fmt.Printf("supply:   %s (base units)\n", m.TotalSupply)
			}
		})
		return nil
	},
}
