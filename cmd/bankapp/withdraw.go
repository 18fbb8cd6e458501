package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljmnewton/bank-app-final/internal/cli"
	"github.com/danieljmnewton/bank-app-final/internal/model"
)

func withdrawCmd() *cobra.Command {
	var (
		typeName     string
		categoryName string
	)

	cmd := &cobra.Command{
		Use:   "withdraw <account> <amount>",
		Short: "Withdraw money from an account",
		Long: `Withdraw a positive amount from an account, referenced by ID or name.
The withdrawal can be tagged with an expense category.`,
		Args: cobra.ExactArgs(2),
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
			category, err := model.ParseExpenseCategory(categoryName)
			if err != nil {
				return err
			}

			record, err := a.engine.RecordWithdrawal(ctx, account.ID, amount, category)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Withdrew %s %s from %q; new balance %s %s",
				record.Amount.StringFixed(2),
				record.Currency.Label(),
				record.AccountName,
				record.BalanceAfter.StringFixed(2),
				record.Currency.Label())))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "disambiguate by account type (savings, deposit)")
	cmd.Flags().StringVar(&categoryName, "category", "", "expense category (food, rent, transport)")

	return cmd
}
