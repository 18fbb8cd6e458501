// Package history implements the transaction-history query engine: filter,
// free-text search, multi-key sort and clamped pagination. It is a pure
// function of its inputs and never fails; unknown sort keys fall back to the
// default order and out-of-range pages clamp.
package history

import (
	"sort"
	"strings"
	"time"

	"github.com/danieljmnewton/bank-app-final/internal/model"
)

// SortKey selects the column a query orders by.
type SortKey string

// Sort keys.
const (
	SortTimestamp    SortKey = "timestamp"
	SortKind         SortKey = "type"
	SortAccountID    SortKey = "accountId"
	SortAmount       SortKey = "amount"
	SortCurrency     SortKey = "currency"
	SortBalanceAfter SortKey = "balanceAfter"
)

// DefaultPageSize is used when a query does not set a positive page size.
const DefaultPageSize = 10

// Query describes one history view request. Nil filter fields are skipped;
// From and To compare calendar dates only, both inclusive.
type Query struct {
	From     *time.Time
	To       *time.Time
	Kind     *model.TransactionType
	Category *model.ExpenseCategory
	Search   string
	SortBy   SortKey
	SortDesc bool
	Page     int
	PageSize int
}

// NewQuery returns the default view: most recent first, first page.
func NewQuery() Query {
	return Query{
		SortBy:   SortTimestamp,
		SortDesc: true,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// Toggle flips or switches the sort column, mirroring the column-header
// affordance: toggling the active key flips direction, a new key starts
// descending only for the timestamp column. Either way the view resets to
// the first page.
func (q Query) Toggle(key SortKey) Query {
	if q.SortBy == key {
		q.SortDesc = !q.SortDesc
	} else {
		q.SortBy = key
		q.SortDesc = key == SortTimestamp
	}
	q.Page = 1
	return q
}

// Page is one rendered slice of the filtered result set. TotalPages is
// always at least 1, so an empty result set renders as page 1 of 1 with no
// items.
type Page struct {
	Items      []model.Transaction
	Number     int
	TotalPages int
	TotalCount int
}

// Run applies the query to the full transaction list and returns the
// requested page plus the total matching count.
func Run(transactions []model.Transaction, q Query) Page {
	filtered := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if matches(t, q) {
			filtered = append(filtered, t)
		}
	}

	sortRecords(filtered, q.SortBy, q.SortDesc)

	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	number := q.Page
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page{
		Items:      filtered[start:end],
		Number:     number,
		TotalPages: totalPages,
		TotalCount: total,
	}
}

// matches applies the conjunctive filters and the free-text search.
func matches(t model.Transaction, q Query) bool {
	if q.From != nil && calendarDate(t.Timestamp).Before(calendarDate(*q.From)) {
		return false
	}
	if q.To != nil && calendarDate(t.Timestamp).After(calendarDate(*q.To)) {
		return false
	}
	if q.Kind != nil && t.Type != *q.Kind {
		return false
	}
	if q.Category != nil && t.Category != *q.Category {
		return false
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	if search == "" {
		return true
	}
	// Substring match against any of: the display account id, the currency
	// label, the transaction type label, and the note.
	for _, field := range []string{
		t.DisplayAccountID(),
		t.Currency.Label(),
		t.Type.Label(),
		t.Note,
	} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// calendarDate strips the time of day so range filters compare whole days.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sortRecords(records []model.Transaction, key SortKey, desc bool) {
	switch key {
	case SortTimestamp, SortKind, SortAccountID, SortAmount, SortCurrency, SortBalanceAfter:
	default:
		// Unknown key: default order is timestamp descending regardless of
		// the direction flag.
		key = SortTimestamp
		desc = true
	}

	sort.SliceStable(records, func(i, j int) bool {
		c := compare(records[i], records[j], key)
		if c != 0 {
			if desc {
				return c > 0
			}
			return c < 0
		}
		if key == SortKind {
			// Kind ties always break on most recent first, in either
			// direction.
			return records[i].Timestamp.After(records[j].Timestamp)
		}
		return false
	})
}

func compare(a, b model.Transaction, key SortKey) int {
	switch key {
	case SortKind:
		return kindRank(a.Type) - kindRank(b.Type)
	case SortAccountID:
		return strings.Compare(a.DisplayAccountID(), b.DisplayAccountID())
	case SortAmount:
		return a.Amount.Cmp(b.Amount)
	case SortCurrency:
		return strings.Compare(string(a.Currency), string(b.Currency))
	case SortBalanceAfter:
		return a.BalanceAfter.Cmp(b.BalanceAfter)
	default:
		return a.Timestamp.Compare(b.Timestamp)
	}
}

// kindRank orders transaction types the way the history view lists them:
// deposits, then withdrawals, then transfers.
func kindRank(t model.TransactionType) int {
	switch t {
	case model.TransactionDeposit:
		return 0
	case model.TransactionWithdrawal:
		return 1
	case model.TransactionTransfer:
		return 2
	default:
		return 3
	}
}
