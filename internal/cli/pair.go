package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Partner linking commands",
	}

	cmd.AddCommand(newPairCodeCmd())
	cmd.AddCommand(newPairRedeemCmd())
	cmd.AddCommand(newPairShowCmd())
	cmd.AddCommand(newPairUnpairCmd())

	return cmd
}

func newPairCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "code",
		Short: "Issue a pairing code for your partner",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PairCode

			if err := client.Post("/api/v1/pairs/code", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPairRedeemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redeem <code>",
		Short: "Redeem a pairing code from your partner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"code": strings.ToUpper(args[0])}
			var result Pair

			if err := client.Post("/api/v1/pairs/redeem", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPairShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your current pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Pair

			if err := client.Get("/api/v1/pairs/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPairUnpairCmd() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "unpair",
		Short: "Dissolve your pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("unpairing removes shared memories access for both sides; pass --yes to confirm")
			}

			if err := client.Delete("/api/v1/pairs/me"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Unpaired.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm unpairing")

	return cmd
}
