package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactRequestStore interface {
	Insert(ctx context.Context, request *ContactRequest) (*ContactRequest, error)
	Get(ctx context.Context, id primitive.ObjectID) (*ContactRequest, error)
	GetBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*ContactRequest, error)
	GetByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]*ContactRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status RequestStatus) (*ContactRequest, error)
	DeleteByProperty(ctx context.Context, propertyID primitive.ObjectID) error
}
