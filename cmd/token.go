package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/proptoken/chaincore/internal/amount"
)

var (
	tokenContract string
	tokenTo       string
	tokenAmount   string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Read and operate property-token contracts",
	Long: `Read token metadata and balances, mint and transfer tokens.

Sub-commands:
  chainctl token info      — name, symbol, decimals, supply, owner
  chainctl token balance   — a holder's balance
  chainctl token mint      — mint tokens from the platform account
  chainctl token transfer  — transfer tokens from the platform account`,
}

var tokenInfoCmd = &cobra.Command{
	Use:   "info <address>",
	Short: "Read token metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := svc.TokenMetadata(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printResult(m, func() {
			fmt.Printf("name:     %s\n", m.Name)
			fmt.Printf("symbol:   %s\n", m.Symbol)
			fmt.Printf("decimals: %d\n", m.Decimals)
			fmt.Printf("supply:   %s (base units)\n", m.TotalSupply)
			if m.Owner != "" {
				fmt.Printf("owner:    %s\n", m.Owner)
			}
		})
		return nil
	},
}

var tokenBalanceCmd = &cobra.Command{
	Use:   "balance <contract> <wallet>",
	Short: "Read a holder's token balance",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bal, err := svc.BalanceOf(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		out := struct {
			Contract  string `json:"contract"`
			Wallet    string `json:"wallet"`
			BaseUnits string `json:"baseUnits"`
			Balance   string `json:"balance,omitempty"`
		}{Contract: args[0], Wallet: args[1], BaseUnits: bal}

		// Human-readable rendering needs the token's decimals; skip it when
		// metadata is unavailable.
		if m, err := svc.TokenMetadata(cmd.Context(), args[0]); err == nil {
			if human, err := amount.FromBaseUnits(bal, m.Decimals); err == nil {
				out.Balance = human + " " + m.Symbol
			}
		}

		printResult(out, func() {
			fmt.Printf("balance: %s (base units)\n", out.BaseUnits)
			if out.Balance != "" {
				fmt.Printf("         %s\n", out.Balance)
			}
		})
		return nil
	},
}

var tokenMintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint tokens from the platform account",
	Long: `Mint tokens to an address. The configured signing key must be the
contract owner.

Examples:
  chainctl token mint --contract 0x... --to 0xRecipient --amount 2500.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := svc.Mint(cmd.Context(), tokenContract, tokenTo, tokenAmount)
		if err != nil {
			return err
		}
		fmt.Printf("minted %s to %s\ntx: %s\n", tokenAmount, tokenTo, hash)
		return nil
	},
}

var tokenTransferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer tokens from the platform account",
	Long: `Transfer tokens held by the platform account to a recipient.

Examples:
  chainctl token transfer --contract 0x... --to 0xRecipient --amount 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := svc.Transfer(cmd.Context(), tokenContract, tokenTo, tokenAmount)
		if err != nil {
			return err
		}
		fmt.Printf("transferred %s to %s\ntx: %s\n", tokenAmount, tokenTo, hash)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{tokenMintCmd, tokenTransferCmd} {
		c.Flags().StringVar(&tokenContract, "contract", "", "token contract address")
		c.Flags().StringVar(&tokenTo, "to", "", "recipient address")
		c.Flags().StringVar(&tokenAmount, "amount", "", "amount in token units (decimals allowed)")
		c.MarkFlagRequired("contract") //nolint:errcheck
		c.MarkFlagRequired("to")       //nolint:errcheck
		c.MarkFlagRequired("amount")   //nolint:errcheck
	}

	tokenCmd.AddCommand(tokenInfoCmd, tokenBalanceCmd, tokenMintCmd, tokenTransferCmd)
}
