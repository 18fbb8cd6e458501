package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/danieljmnewton/bank-app-final/internal/cli"
	"github.com/danieljmnewton/bank-app-final/internal/history"
	"github.com/danieljmnewton/bank-app-final/internal/model"
)

func historyCmd() *cobra.Command {
	var (
		fromDate     string
		toDate       string
		typeName     string
		categoryName string
		search       string
		accountRef   string
		sortBy       string
		sortAsc      bool
		page         int
		pageSize     int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the transaction history",
		Long: `Show a filterable, sortable page of the transaction history. Date filters
compare calendar dates only and are inclusive on both ends.`,
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

			query, err := buildHistoryQuery(historyFlags{
				from:     fromDate,
				to:       toDate,
				typeName: typeName,
				category: categoryName,
				search:   search,
				sortBy:   sortBy,
				asc:      sortAsc,
				page:     page,
				pageSize: pageSize,
			}, viper.GetInt("history.page_size"))
			if err != nil {
				return err
			}

			var transactions []model.Transaction
			if accountRef != "" {
				account, resolveErr := a.resolveAccount(ctx, accountRef, "")
				if resolveErr != nil {
					return resolveErr
				}
				transactions, err = a.records.GetByAccount(ctx, account.ID)
			} else {
				transactions, err = a.records.GetAll(ctx)
			}
			if err != nil {
				// The history view degrades to an empty list rather than
				// failing outright.
				slog.Warn("failed to load transactions, showing empty history", "error", err)
				transactions = nil
			}

			result := history.Run(transactions, query)
			renderHistoryPage(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromDate, "from", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&toDate, "to", "", "end date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&typeName, "type", "", "filter by transaction type (deposit, withdrawal, transfer)")
	cmd.Flags().StringVar(&categoryName, "category", "", "filter by expense category (none, food, rent, transport)")
	cmd.Flags().StringVar(&search, "search", "", "free-text search across account, currency, type and note")
	cmd.Flags().StringVar(&accountRef, "account", "", "only transactions touching this account (ID or name)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort key (timestamp, type, accountId, amount, currency, balanceAfter)")
	cmd.Flags().BoolVar(&sortAsc, "asc", false, "sort ascending instead of descending")
	cmd.Flags().IntVar(&page, "page", 1, "page number (out-of-range pages clamp)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "page size (default from config)")

	return cmd
}

// historyFlags carries the raw history flag values.
type historyFlags struct {
	from     string
	to       string
	typeName string
	category string
	search   string
	sortBy   string
	asc      bool
	page     int
	pageSize int
}

// buildHistoryQuery translates flag values into a query. The direction flag
// applies to the default timestamp order too, not only when --sort is given.
func buildHistoryQuery(f historyFlags, defaultPageSize int) (history.Query, error) {
	query := history.NewQuery()
	query.Search = f.search
	query.Page = f.page
	if f.pageSize > 0 {
		query.PageSize = f.pageSize
	} else if defaultPageSize > 0 {
		query.PageSize = defaultPageSize
	}

	var err error
	if query.From, err = parseDate(f.from); err != nil {
		return query, err
	}
	if query.To, err = parseDate(f.to); err != nil {
		return query, err
	}
	if f.typeName != "" {
		kind, err := model.ParseTransactionType(f.typeName)
		if err != nil {
			return query, err
		}
		query.Kind = &kind
	}
	if f.category != "" {
		category, err := model.ParseExpenseCategory(f.category)
		if err != nil {
			return query, err
		}
		query.Category = &category
	}
	if f.sortBy != "" {
		// Unknown keys are tolerated; the query engine falls back to
		// timestamp descending.
		query.SortBy = history.SortKey(f.sortBy)
	}
	query.SortDesc = !f.asc
	return query, nil
}

func renderHistoryPage(page history.Page) {
	if page.TotalCount == 0 {
		fmt.Println(cli.InfoStyle.Render("No transactions match."))
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Page %d of %d", page.Number, page.TotalPages)))
		return
	}

	fmt.Println(cli.FormatTitle("Transaction history"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Date"),
		cli.TableHeaderStyle.Render("Type"),
		cli.TableHeaderStyle.Render("Account"),
		cli.TableHeaderStyle.Render("Amount"),
		cli.TableHeaderStyle.Render("Balance"),
		cli.TableHeaderStyle.Render("Category"),
		cli.TableHeaderStyle.Render("Note"))
	for _, t := range page.Items {
		amount := t.Amount.StringFixed(2) + " " + t.Currency.Label()
		if t.Amount.Sign() < 0 || t.Type == model.TransactionWithdrawal {
			amount = cli.NegativeAmountStyle.Render(amount)
		} else {
			amount = cli.PositiveAmountStyle.Render(amount)
		}
		fmt.Fprintf(w, "%s\t%s\t%s (%s)\t%s\t%s\t%s\t%s\n",
			t.Timestamp.Format("2006-01-02 15:04"),
			t.Type.Label(),
			t.AccountName,
			model.ShortID(t.DisplayAccountID()),
			amount,
			t.BalanceAfter.StringFixed(2)+" "+t.Currency.Label(),
			t.Category.Label(),
			t.Note)
	}
	_ = w.Flush()

	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Page %d of %d (%d transaction(s))",
		page.Number, page.TotalPages, page.TotalCount)))
}
