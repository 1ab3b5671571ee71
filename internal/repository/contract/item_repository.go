package contract

import (
	"context"

	"notekeeper-be/internal/entity"

	"github.com/google/uuid"
)

// ItemRepository is the persistence contract for notes and folders.
// Every read is scoped by an explicit owner id; DeleteOne is the one
// exception and trusts the caller to have verified ownership through
// GetOwned first.
type ItemRepository interface {
	// ListRoots returns the owner's root-level items, newest first
	// (id descending).
	ListRoots(ctx context.Context, ownerId uuid.UUID) ([]*entity.Item, error)

	// Create inserts the item and writes the generated id and
	// timestamps back into it.
	Create(ctx context.Context, item *entity.Item) error

	// GetOwned returns the item only if it exists and belongs to
	// ownerId; otherwise entity.ErrNotFound.
	GetOwned(ctx context.Context, id uint64, ownerId uuid.UUID) (*entity.Item, error)

	// Update persists an already-fetched, owner-verified item.
	Update(ctx context.Context, item *entity.Item) error

	// DeleteOne removes a single item by id, unconditionally.
	DeleteOne(ctx context.Context, id uint64) error

	// DeleteChildren bulk-removes the direct children of parentId
	// that belong to ownerId.
	DeleteChildren(ctx context.Context, parentId uint64, ownerId uuid.UUID) error

	// FindChildren returns the direct children of parentId that
	// belong to ownerId.
	FindChildren(ctx context.Context, parentId uint64, ownerId uuid.UUID) ([]*entity.Item, error)
}
