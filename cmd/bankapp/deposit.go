package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljmnewton/bank-app-final/internal/cli"
)

func depositCmd() *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "deposit <account> <amount>",
		Short: "Deposit money into an account",
		Long:  `Deposit a positive amount into an account, referenced by ID or name.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireUnlocked(ctx); err != nil {
				return err
			}

			account, err := a.resolveAccount(ctx, args[0], typeName)
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			record, err := a.engine.RecordDeposit(ctx, account.ID, amount)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deposited %s %s into %q; new balance %s %s",
				record.Amount.StringFixed(2),
				record.Currency.Label(),
				record.AccountName,
				record.BalanceAfter.StringFixed(2),
				record.Currency.Label())))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "disambiguate by account type (savings, deposit)")

	return cmd
}
