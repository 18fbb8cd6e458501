package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/danieljmnewton/bank-app-final/internal/cli"
	"github.com/danieljmnewton/bank-app-final/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage bank accounts",
		Long:  `Create, list, export and import bank accounts.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(createAccountCmd())
	cmd.AddCommand(exportAccountsCmd())
	cmd.AddCommand(importAccountsCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireUnlocked(ctx); err != nil {
				return err
			}

			accounts, err := a.accounts.List(ctx)
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No accounts yet. Use 'bankapp accounts create' to add one."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Accounts"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Type"),
				cli.TableHeaderStyle.Render("Balance"),
				cli.TableHeaderStyle.Render("Updated"))
			for _, account := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n",
					model.ShortID(account.ID),
					account.Name,
					account.Type.Label(),
					account.Balance.StringFixed(2),
					account.Currency.Label(),
					account.LastUpdated.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func createAccountCmd() *cobra.Command {
	var (
		typeName       string
		currencyName   string
		initialBalance string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(1),
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

			accountType, err := model.ParseAccountType(typeName)
			if err != nil {
				return err
			}
			currency, err := model.ParseCurrency(currencyName)
			if err != nil {
				return err
			}
			balance, err := parseAmount(initialBalance)
			if err != nil {
				return err
			}

			account, err := a.accounts.Create(ctx, args[0], accountType, currency, balance)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created %s %q (%s) with balance %s %s",
				strings.ToLower(account.Type.Label()),
				account.Name,
				model.ShortID(account.ID),
				account.Balance.StringFixed(2),
				account.Currency.Label())))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "account type (savings, deposit)")
	cmd.Flags().StringVar(&currencyName, "currency", "sek", "account currency")
	cmd.Flags().StringVar(&initialBalance, "balance", "0", "initial balance")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func exportAccountsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export accounts as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireUnlocked(ctx); err != nil {
				return err
			}

			raw, err := a.accounts.ExportJSON(ctx)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Println(string(raw))
				return nil
			}
			if err := os.WriteFile(output, raw, 0600); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}
			fmt.Println(cli.FormatSuccess("Exported accounts to " + output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func importAccountsCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import accounts from a JSON export",
		Long: `Import accounts from a JSON export. By default incoming accounts whose
identifier already exists are skipped; with --replace all existing accounts
are discarded first.`,
		Args: cobra.ExactArgs(1),
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

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import file: %w", err)
			}

			problems, err := a.accounts.ImportJSON(ctx, data, replace)
			if err != nil {
				return err
			}
			if len(problems) > 0 {
				for _, p := range problems {
					fmt.Println(cli.FormatError(p))
				}
				return fmt.Errorf("import finished with %d problem(s)", len(problems))
			}

			fmt.Println(cli.FormatSuccess("Accounts imported"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "discard existing accounts before importing")

	return cmd
}
