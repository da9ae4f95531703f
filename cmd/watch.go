package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/proptoken/chaincore/internal/chain"
)

var watchCmd = &cobra.Command{
	Use:   "watch <contract> <event>",
	Short: "Stream a contract's events to the terminal",
	Long: `Poll for new event logs on a contract and print each one as it lands.
Runs until interrupted.

Examples:
  chainctl watch 0x... Transfer`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		contractAddr, eventName := args[0], args[1]

		unsubscribe, err := svc.SubscribeToEvent(contractAddr, eventName, func(l chain.LogEntry) {
			fmt.Printf("block %d  %s  %s\n", l.Block(), l.TxHash, strings.Join(l.Topics, " "))
		})
		if err != nil {
			return err
		}
		defer unsubscribe()

		fmt.Printf("watching %s for %s events (ctrl-c to stop)\n", contractAddr, eventName)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		svc.UnsubscribeAll()
		return nil
	},
}
