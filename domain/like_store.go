package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LikeStore interface {
	Insert(ctx context.Context, like *PropertyLike) (*PropertyLike, error)
	Exists(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error)
	Remove(ctx context.Context, userID, propertyID primitive.ObjectID) error
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*PropertyLike, error)
	GetBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*PropertyLike, error)
	DeleteByProperty(ctx context.Context, propertyID primitive.ObjectID) error
}
