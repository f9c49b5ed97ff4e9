// Package store is the gateway to the remote member collection.
//
// Every call is an independent round trip; nothing is retained locally.
// Transport failures are wrapped with ErrStore together with the original
// cause, so callers can match either with errors.Is.
package store

import (
	"context"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/model"
)

// Collection is the key namespace member documents are stored under.
const Collection = "users"

type Gateway interface {
	// Create upserts the document at id with exactly the five data fields.
	Create(ctx context.Context, id, name, car string, isActive, validPayment bool, notes string) (string, error)
	// Read returns nil, nil when no document exists at id.
	Read(ctx context.Context, id string) (*model.Member, error)
	ReadAll(ctx context.Context) ([]model.Member, error)
	ReadByPaymentStatus(ctx context.Context, validPayment bool) ([]model.Member, error)
	// Update merges the supplied fields. ErrNotFound when id does not exist.
	Update(ctx context.Context, id string, patch model.MemberPatch) (string, error)
	// Delete removes the document. ErrNotFound when id does not exist.
	Delete(ctx context.Context, id string) (string, error)
	HealthCheck(ctx context.Context) error
}

// Compile-time interface compliance checks
var (
	_ Gateway = (*GormGateway)(nil)
	_ Gateway = (*RedisGateway)(nil)
)
