package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljmnewton/bank-app-final/internal/cli"
	"github.com/danieljmnewton/bank-app-final/internal/model"
)

func transferCmd() *cobra.Command {
	var (
		note         string
		categoryName string
	)

	cmd := &cobra.Command{
		Use:   "transfer <from> <to> <amount>",
		Short: "Transfer money between two accounts",
		Long: `Transfer a positive amount between two accounts of the same currency.
The transfer is recorded as two linked ledger entries: a debit against the
source and a credit against the destination.`,
		Args: cobra.ExactArgs(3),
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

			from, err := a.resolveAccount(ctx, args[0], "")
			if err != nil {
				return err
			}
			to, err := a.resolveAccount(ctx, args[1], "")
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			category, err := model.ParseExpenseCategory(categoryName)
			if err != nil {
				return err
			}

			debit, credit, err := a.engine.RecordTransfer(ctx, from.ID, to.ID, amount, note, category)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Transferred %s %s from %q (now %s) to %q (now %s)",
				credit.Amount.StringFixed(2),
				credit.Currency.Label(),
				debit.AccountName,
				debit.BalanceAfter.StringFixed(2),
				credit.AccountName,
				credit.BalanceAfter.StringFixed(2))))
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "free-text note attached to both legs")
	cmd.Flags().StringVar(&categoryName, "category", "", "expense category (food, rent, transport)")

	return cmd
}
