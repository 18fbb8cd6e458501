// Package gate implements the static-PIN access gate in front of the ledger.
package gate

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/danieljmnewton/bank-app-final/internal/service"
)

// stateKey is the fixed storage key for the unlocked flag.
const stateKey = "IsUnlocked"

// Gate tracks whether the ledger is unlocked and notifies subscribers when
// that changes. It is a single static-secret comparison, not a cryptographic
// mechanism.
type Gate struct {
	kv       service.KVStore
	pin      string
	unlocked bool
	subs     []func(bool)
}

// New creates a gate that accepts the given PIN.
func New(kv service.KVStore, pin string) *Gate {
	return &Gate{kv: kv, pin: pin}
}

// Initialize loads the persisted unlocked flag and notifies subscribers.
func (g *Gate) Initialize(ctx context.Context) error {
	raw, ok, err := g.kv.Get(ctx, stateKey)
	if err != nil {
		return fmt.Errorf("failed to load gate state: %w", err)
	}
	g.unlocked = false
	if ok {
		stored, parseErr := strconv.ParseBool(string(raw))
		if parseErr == nil {
			g.unlocked = stored
		}
	}
	g.notify()
	return nil
}

// TryUnlock compares pin against the configured secret. A wrong PIN reports
// false without error; a correct PIN unlocks and persists the flag.
// Subscribers are notified only after the flag is durably recorded.
func (g *Gate) TryUnlock(ctx context.Context, pin string) (bool, error) {
	if pin != g.pin {
		slog.Debug("unlock attempt rejected")
		return false, nil
	}

	g.unlocked = true
	if err := g.save(ctx); err != nil {
		return true, err
	}
	g.notify()
	return true, nil
}

// Lock locks the gate and persists the flag. Subscribers are notified only
// after the flag is durably recorded.
func (g *Gate) Lock(ctx context.Context) error {
	g.unlocked = false
	if err := g.save(ctx); err != nil {
		return err
	}
	g.notify()
	return nil
}

// Unlocked reports the current gate state.
func (g *Gate) Unlocked() bool {
	return g.unlocked
}

// Subscribe registers fn to be called with the new state whenever the gate
// locks or unlocks. Callbacks run synchronously on the mutating call.
func (g *Gate) Subscribe(fn func(unlocked bool)) {
	g.subs = append(g.subs, fn)
}

func (g *Gate) notify() {
	for _, fn := range g.subs {
		fn(g.unlocked)
	}
}

func (g *Gate) save(ctx context.Context) error {
	if err := g.kv.Set(ctx, stateKey, []byte(strconv.FormatBool(g.unlocked))); err != nil {
		return fmt.Errorf("failed to persist gate state: %w", err)
	}
	return nil
}
