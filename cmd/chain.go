package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var gasCmd = &cobra.Command{
	Use:   "gas",
	Short: "Show the current gas price",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gp, err := svc.GasPrice(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s wei\n", gp)
		return nil
	},
}

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Show the latest block number",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := svc.BlockNumber(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}
