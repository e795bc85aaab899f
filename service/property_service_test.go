package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"realestate_service/domain"
	"realestate_service/errors"
)

type propertyFixture struct {
	service      *PropertyService
	store        *inMemPropertyStore
	users        *inMemUserStore
	likes        *inMemLikeStore
	contacts     *inMemContactStore
	transactions *inMemTransactionStore
	seller       *domain.User
}

func newPropertyFixture(t *testing.T) *propertyFixture {
	t.Helper()

	store := newInMemPropertyStore()
	users := newInMemUserStore()
	likes := newInMemLikeStore()
	contacts := newInMemContactStore()
	transactions := newInMemTransactionStore()

	seller, err := users.Register(context.Background(), &domain.User{
		Name:     "Test Seller",
		Email:    "seller@test.com",
		Role:     domain.Seller,
		Verified: true,
	})
	require.NoError(t, err)

	service := NewPropertyService(store, users, likes, contacts, transactions, nil, nil, testTracer())

	return &propertyFixture{
		service:      service,
		store:        store,
		users:        users,
		likes:        likes,
		contacts:     contacts,
		transactions: transactions,
		seller:       seller,
	}
}

func validProperty() *domain.Property {
	return &domain.Property{
		Title:   "Family house in Petrovaradin",
		Type:    domain.House,
		Price:   185000,
		Area:    "160m2",
		Address: "Preradoviceva 24",
		City:    "Novi Sad",
	}
}

func validUpdate() *domain.PropertyUpdate {
	return &domain.PropertyUpdate{
		Title:   "Family house with a garden",
		Type:    domain.House,
		Price:   190000,
		Area:    "160m2",
		Address: "Preradoviceva 24",
		City:    "Novi Sad",
	}
}

func TestCreateStartsPending(t *testing.T) {
	fixture := newPropertyFixture(t)
	ctx := context.Background()

	property := validProperty()
	property.Status = domain.StatusApproved // callers cannot pick a status

	created, err := fixture.service.Create(ctx, fixture.seller.ID, property)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, fixture.seller.ID, created.SellerID)
	assert.False(t, created.ID.IsZero())
}

func TestCreateUnknownSeller(t *testing.T) {
	fixture := newPropertyFixture(t)

	_, err := fixture.service.Create(context.Background(), primitive.NewObjectID(), validProperty())
	assert.Equal(t, errors.ErrUserNotFound, err)
}

func TestCreateRejectsInvalidProperty(t *testing.T) {
	fixture := newPropertyFixture(t)

	property := validProperty()
	property.Title = "abc" // below minimum length

	_, err := fixture.service.Create(context.Background(), fixture.seller.ID, property)
	assert.Error(t, err)
}

func TestApproveThenRejectLifecycle(t *testing.T) {
	fixture := newPropertyFixture(t)
	ctx := context.Background()

	created, err := fixture.service.Create(ctx, fixture.seller.ID, validProperty())
	require.NoError(t, err)

	approved, err := fixture.service.UpdateStatus(ctx, created.ID, domain.StatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Status)

	rejected, err := fixture.service.UpdateStatus(ctx, created.ID, domain.StatusRejected, "incomplete documentation")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)
	assert.Equal(t, "incomplete documentation", rejected.RejectionReason)
}

func TestRejectRequiresReason(t *testing.T) {
	fixture := newPropertyFixture(t)
	ctx := context.Background()

	created, err := fixture.service.Create(ctx, fixture.seller.ID, validProperty())
	require.NoError(t, err)

	_, err = fixture.service.UpdateStatus(ctx, created.ID, domain.StatusRejected, "")
	assert.Equal(t, errors.ErrRejectReasonRequired, err)
}

func TestUpdateStatusNeverSold(t *testing.T) {
	fixture := newPropertyFixture(t)
	ctx := context.Background()

	created, err := fixture.service.Create(ctx, fixture.seller.ID, validProperty())
	require.NoError(t, err)

	_, err = fixture.service.UpdateStatus(ctx, created.ID, domain.StatusSold, "")
	assert.Equal(t, errors.ErrInvalidStatus, err)
}

func TestUpdateStatusOnSoldListing(t *testing.T) {
	fixture := newPropertyFixture(t)
	ctx := context.Background()

	created, err := fixture.service.Create(ctx, fixture.seller.ID, validProperty())
	require.NoError(t, err)
	_, err = fixture.store.MarkSold(ctx, created.ID)
	require.NoError(t, err)

	_, err = fixture.service.UpdateStatus(ctx, created.ID, domain.StatusApproved, "")
	assert.Equal(t, errors.ErrAlreadySold, err)
}

// sellDuringReadStore commits a sale right after every read, so a status
// write that follows the read races against an already-sold listing.
type sellDuringReadStore struct {
	domain.PropertyStore
}

func (store *sellDuringReadStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	property, err := store.PropertyStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.Status != domain.StatusSold {
		if _, err := store.PropertyStore.MarkSold(ctx, id); err != nil {
			return nil, err
		}
	}
	return property, nil
}

func TestStatusWriteRefusedAfterRacingSale(t *testing.T) {
	ctx := context.Background()

	base := newInMemPropertyStore()
	users := newInMemUserStore()
	seller, err := users.Register(ctx, &domain.User{
		Name: "Test Seller", Email: "seller@test.com", Role: domain.Seller, Verified: true,
	})
	require.NoError(t, err)

	listing := validProperty()
	listing.SellerID = seller.ID
	created, err := base.Insert(ctx, listing)
	require.NoError(t, err)

	service := NewPropertyService(&sellDuringReadStore{PropertyStore: base}, users,
		newInMemLikeStore(), newInMemContactStore(), newInMemTransactionStore(), nil, nil, testTracer())

	// The pre-check sees a not-yet-sold listing, then the sale lands before
	// the status write. The write must lose, not overwrite the sale.
	_, err = service.UpdateStatus(ctx, created.ID, domain.StatusApproved, "")
	assert.Equal(t, errors.ErrAlreadySold, err)

	property, err := base.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSold, property.Status)
}

func TestEditResetsToPendingAndClearsReason(t *testing.T) {
	fixture := newPropertyFixture(t)
	ctx := context.Background()

	created, err := fixture.service.Create(ctx, fixture.seller.ID, validProperty())
	require.NoError(t, err)

	_, err = fixture.service.UpdateStatus(ctx, created.ID, domain.StatusRejected, "blurry photos")
	require.NoError(t, err)

	updated, err := fixture.service.Update(ctx, fixture.seller.ID, created.ID, validUpdate())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, updated.Status)
	assert.Empty(t, updated.RejectionReason)
	assert.Equal(t, "Family house with a garden", updated.Title)
}

func TestEditByNonOwner(t *testing.T) {
	fixture := newPropertyFixture(t)
	ctx := context.Background()

	created, err := fixture.service.Create(ctx, fixture.seller.ID, validProperty())
	require.NoError(t, err)

	_, err = fixture.service.Update(ctx, primitive.NewObjectID(), created.ID, validUpdate())
	assert.Equal(t, errors.ErrNotOwner, err)
}

func TestEditSoldListing(t *testing.T) {
	fixture := newPropertyFixture(t)
	ctx := context.Background()

	created, err := fixture.service.Create(ctx, fixture.seller.ID, validProperty())
	require.NoError(t, err)
	_, err = fixture.store.MarkSold(ctx, created.ID)
	require.NoError(t, err)

	_, err = fixture.service.Update(ctx, fixture.seller.ID, created.ID, validUpdate())
	assert.Equal(t, errors.ErrSoldImmutable, err)
}

func TestDeleteCascades(t *testing.T) {
	fixture := newPropertyFixture(t)
	ctx := context.Background()

	created, err := fixture.service.Create(ctx, fixture.seller.ID, validProperty())
	require.NoError(t, err)

	buyerID := primitive.NewObjectID()
	_, err = fixture.likes.Insert(ctx, &domain.PropertyLike{
		UserID: buyerID, PropertyID: created.ID, SellerID: fixture.seller.ID,
	})
	require.NoError(t, err)
	_, err = fixture.contacts.Insert(ctx, &domain.ContactRequest{
		BuyerID: buyerID, SellerID: fixture.seller.ID, PropertyID: created.ID,
		Status: domain.RequestPending,
	})
	require.NoError(t, err)

	err = fixture.service.Delete(ctx, fixture.seller.ID, domain.Seller, created.ID)
	require.NoError(t, err)

	_, err = fixture.store.Get(ctx, created.ID)
	assert.Equal(t, errors.ErrPropertyNotFound, err)

	likes, err := fixture.likes.GetByUser(ctx, buyerID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	requests, err := fixture.contacts.GetByBuyer(ctx, buyerID)
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestDeleteRefusedWhenTransactionsExist(t *testing.T) {
	fixture := newPropertyFixture(t)
	ctx := context.Background()

	created, err := fixture.service.Create(ctx, fixture.seller.ID, validProperty())
	require.NoError(t, err)

	_, err = fixture.transactions.Insert(ctx, &domain.Transaction{
		BuyerID: primitive.NewObjectID(), SellerID: fixture.seller.ID, PropertyID: created.ID,
	})
	require.NoError(t, err)

	err = fixture.service.Delete(ctx, fixture.seller.ID, domain.Seller, created.ID)
	assert.Equal(t, errors.ErrHasTransactions, err)
}

func TestDeleteByAdmin(t *testing.T) {
	fixture := newPropertyFixture(t)
	ctx := context.Background()

	created, err := fixture.service.Create(ctx, fixture.seller.ID, validProperty())
	require.NoError(t, err)

	err = fixture.service.Delete(ctx, primitive.NewObjectID(), domain.Admin, created.ID)
	assert.NoError(t, err)
}

func TestDeleteByStranger(t *testing.T) {
	fixture := newPropertyFixture(t)
	ctx := context.Background()

	created, err := fixture.service.Create(ctx, fixture.seller.ID, validProperty())
	require.NoError(t, err)

	err = fixture.service.Delete(ctx, primitive.NewObjectID(), domain.Buyer, created.ID)
	assert.Equal(t, errors.ErrNotOwner, err)
}
