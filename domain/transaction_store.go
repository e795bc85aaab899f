package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transactions are append-only: there is no update or delete in normal flow.
type TransactionStore interface {
	Insert(ctx context.Context, transaction *Transaction) (*Transaction, error)
	GetAll(ctx context.Context) ([]*Transaction, error)
	GetByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]*Transaction, error)
	GetBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*Transaction, error)
	ExistsByProperty(ctx context.Context, propertyID primitive.ObjectID) (bool, error)
}
