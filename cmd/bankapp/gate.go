package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljmnewton/bank-app-final/internal/cli"
)

func unlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <pin>",
		Short: "Unlock the ledger with the PIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.gate.Initialize(ctx); err != nil {
				return err
			}

			ok, err := a.gate.TryUnlock(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(cli.FormatError("Wrong PIN"))
				return fmt.Errorf("unlock rejected")
			}
			fmt.Println(cli.SuccessStyle.Render(cli.UnlockIcon + " Unlocked"))
			return nil
		},
	}
}

func lockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Lock the ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.gate.Initialize(ctx); err != nil {
				return err
			}
			if err := a.gate.Lock(ctx); err != nil {
				return err
			}
			fmt.Println(cli.SubtleStyle.Render(cli.LockIcon + " Locked"))
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the ledger is unlocked",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.gate.Initialize(ctx); err != nil {
				return err
			}
			if a.gate.Unlocked() {
				fmt.Println(cli.SuccessStyle.Render(cli.UnlockIcon + " Unlocked"))
			} else {
				fmt.Println(cli.SubtleStyle.Render(cli.LockIcon + " Locked"))
			}
			return nil
		},
	}
}
