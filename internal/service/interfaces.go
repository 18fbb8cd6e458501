// Package service defines the contracts between the ledger and its
// collaborators.
package service

import "context"

// KVStore is the opaque durable map the stores persist through. Get reports
// absence through the second return value; a missing key is a normal case,
// not an error.
type KVStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
