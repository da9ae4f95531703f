package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var deploymentsNetwork string

var deploymentsCmd = &cobra.Command{
	Use:   "deployments [name]",
	Short: "List deployed contract addresses",
	Long: `Show the deployment registry for a network, or resolve one contract
name to its deployed address.

Examples:
  chainctl deployments
  chainctl deployments PropertyToken --network 137`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		network := deploymentsNetwork
		if network == "" {
			network = cfg.NetworkID
		}

		if len(args) == 1 {
			address, err := svc.Deployments().Address(args[0], network)
			if err != nil {
				return err
			}
			fmt.Println(address)
			return nil
		}

		available := svc.Deployments().Available(network)
		printResult(available, func() {
			if len(available) == 0 {
				fmt.Printf("no deployments on network %s\n", network)
				return
			}
			names := make([]string, 0, len(available))
			for name := range available {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%-24s %s\n", name, available[name])
			}
		})
		return nil
	},
}

func init() {
	deploymentsCmd.Flags().StringVar(&deploymentsNetwork, "network", "", "network id (default: config)")
}
