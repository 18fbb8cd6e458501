package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danieljmnewton/bank-app-final/internal/model"
)

// ExportJSON renders all accounts as a pretty-printed JSON array using the
// camelCase wire names.
func (s *AccountStore) ExportJSON(ctx context.Context) ([]byte, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	accounts := s.accounts
	if accounts == nil {
		accounts = []*model.Account{}
	}
	raw, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode accounts: %w", err)
	}
	return raw, nil
}

// ImportJSON parses the export shape and adds the accounts it contains. With
// replaceExisting all current accounts are discarded first; otherwise
// incoming accounts whose identifier already exists are skipped.
//
// The returned strings are human-readable problems; an empty slice means
// success. Malformed or empty JSON yields a single problem and no mutation.
// The error return is reserved for storage failures.
func (s *AccountStore) ImportJSON(ctx context.Context, data []byte, replaceExisting bool) ([]string, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []string{"import data is empty"}, nil
	}
	var incoming []*model.Account
	if err := json.Unmarshal(trimmed, &incoming); err != nil {
		return []string{fmt.Sprintf("could not parse accounts JSON: %v", err)}, nil
	}

	previous := s.accounts
	if replaceExisting {
		s.accounts = nil
	}

	existing := make(map[string]bool, len(s.accounts))
	for _, a := range s.accounts {
		existing[a.ID] = true
	}

	var problems []string
	added := 0
	for i, account := range incoming {
		if account == nil {
			problems = append(problems, fmt.Sprintf("entry %d: not an account object", i+1))
			continue
		}
		// Serialized data may predate identifiers and timestamps.
		if account.ID == "" {
			account.ID = uuid.NewString()
		}
		if account.LastUpdated.IsZero() {
			account.LastUpdated = time.Now()
		}
		if err := account.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("entry %d (%s): %v", i+1, account.Name, err))
			continue
		}
		if existing[account.ID] {
			continue
		}
		s.accounts = append(s.accounts, account)
		existing[account.ID] = true
		added++
	}

	if added > 0 || replaceExisting {
		if err := s.save(ctx); err != nil {
			s.accounts = previous
			return nil, err
		}
	}

	slog.Info("accounts imported",
		"added", added,
		"skipped", len(incoming)-added,
		"replace", replaceExisting,
		"problems", len(problems))
	return problems, nil
}
