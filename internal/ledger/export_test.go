package ledger

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljmnewton/bank-app-final/internal/model"
)

func TestAccountStore_ExportJSON(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	mustCreate(t, s, "Alice", model.AccountTypeSavings, 100)

	raw, err := s.ExportJSON(ctx)
	require.NoError(t, err)

	// Pretty-printed array with camelCase field and enum names.
	assert.True(t, strings.HasPrefix(string(raw), "[\n"))
	assert.Contains(t, string(raw), `"accountType": "savings"`)
	assert.Contains(t, string(raw), `"currency": "sek"`)
	assert.Contains(t, string(raw), `"lastUpdated"`)

	var parsed []model.Account
	require.NoError(t, json.Unmarshal(raw, &parsed))
	require.Len(t, parsed, 1)
	assert.Equal(t, "Alice", parsed[0].Name)
}

func TestAccountStore_ExportEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	raw, err := s.ExportJSON(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}

func TestAccountStore_ImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source, _ := newTestStore(t)
	mustCreate(t, source, "Alice", model.AccountTypeSavings, 100)
	mustCreate(t, source, "Bob", model.AccountTypeDeposit, 50)

	raw, err := source.ExportJSON(ctx)
	require.NoError(t, err)

	target, _ := newTestStore(t)
	problems, err := target.ImportJSON(ctx, raw, false)
	require.NoError(t, err)
	assert.Empty(t, problems)

	accounts, err := target.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestAccountStore_ImportMergeSkipsExistingIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	existing := mustCreate(t, s, "Alice", model.AccountTypeSavings, 100)

	raw, err := s.ExportJSON(ctx)
	require.NoError(t, err)

	// Re-importing the export merges nothing new.
	problems, err := s.ImportJSON(ctx, raw, false)
	require.NoError(t, err)
	assert.Empty(t, problems)

	accounts, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.True(t, accounts[0].Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, existing.ID, accounts[0].ID)
}

func TestAccountStore_ImportReplaceDiscardsExisting(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	mustCreate(t, s, "Alice", model.AccountTypeSavings, 100)

	incoming := `[{"id":"fresh-1","name":"Carol","accountType":"deposit","currency":"sek","balance":"25"}]`
	problems, err := s.ImportJSON(ctx, []byte(incoming), true)
	require.NoError(t, err)
	assert.Empty(t, problems)

	accounts, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Carol", accounts[0].Name)
	assert.False(t, accounts[0].LastUpdated.IsZero(), "missing timestamp is filled in")
}

func TestAccountStore_ImportMalformed(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: "   "},
		{name: "not json", data: "definitely not json"},
		{name: "wrong shape", data: `{"name":"Alice"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			mustCreate(t, s, "Alice", model.AccountTypeSavings, 100)

			problems, err := s.ImportJSON(ctx, []byte(tt.data), true)
			require.NoError(t, err)
			require.Len(t, problems, 1, "a single descriptive problem")

			// No mutation, even with replace requested.
			accounts, listErr := s.List(ctx)
			require.NoError(t, listErr)
			assert.Len(t, accounts, 1)
			assert.Equal(t, "Alice", accounts[0].Name)
		})
	}
}

func TestAccountStore_ImportCollectsPerAccountProblems(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	incoming := `[
		{"id":"ok-1","name":"Valid","accountType":"savings","currency":"sek","balance":"10"},
		{"id":"bad-1","name":"","accountType":"savings","currency":"sek","balance":"10"},
		{"id":"bad-2","name":"Wrong","accountType":"checking","currency":"sek","balance":"10"}
	]`
	problems, err := s.ImportJSON(ctx, []byte(incoming), false)
	require.NoError(t, err)
	assert.Len(t, problems, 2)

	// The valid account still made it in.
	accounts, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Valid", accounts[0].Name)
}
