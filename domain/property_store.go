package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PropertyStore interface {
	Insert(ctx context.Context, property *Property) (*Property, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Property, error)
	GetAll(ctx context.Context) ([]*Property, error)
	GetBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*Property, error)
	GetByStatus(ctx context.Context, status PropertyStatus) ([]*Property, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)

	// UpdateFields replaces the full mutable field set, resets the status to
	// PENDING and clears any rejection reason. The write is refused for SOLD
	// properties.
	UpdateFields(ctx context.Context, id primitive.ObjectID, update *PropertyUpdate) (*Property, error)

	UpdateStatus(ctx context.Context, id primitive.ObjectID, status PropertyStatus, reason string) (*Property, error)

	// MarkSold atomically flips a not-yet-sold property to SOLD and returns
	// the claimed property. At most one concurrent caller succeeds; the rest
	// get ErrAlreadySold.
	MarkSold(ctx context.Context, id primitive.ObjectID) (*Property, error)

	Delete(ctx context.Context, id primitive.ObjectID) error
}
