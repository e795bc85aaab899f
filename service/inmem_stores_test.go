package application

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"

	"realestate_service/domain"
	"realestate_service/errors"
)

// The fakes below mirror the behavior of the mongo stores closely enough for
// service-level tests, including the conditional write in MarkSold.

func testTracer() trace.Tracer {
	return trace.NewNoopTracerProvider().Tracer("test")
}

type inMemPropertyStore struct {
	mu         sync.Mutex
	properties map[primitive.ObjectID]*domain.Property
}

func newInMemPropertyStore() *inMemPropertyStore {
	return &inMemPropertyStore{properties: map[primitive.ObjectID]*domain.Property{}}
}

func (store *inMemPropertyStore) Insert(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored := *property
	stored.ID = primitive.NewObjectID()
	stored.Status = domain.StatusPending
	stored.RejectionReason = ""
	stored.CreatedAt = time.Now()
	store.properties[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (store *inMemPropertyStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	property, ok := store.properties[id]
	if !ok {
		return nil, errors.ErrPropertyNotFound
	}
	result := *property
	return &result, nil
}

func (store *inMemPropertyStore) GetAll(ctx context.Context) ([]*domain.Property, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	all := []*domain.Property{}
	for _, property := range store.properties {
		result := *property
		all = append(all, &result)
	}
	return all, nil
}

func (store *inMemPropertyStore) GetBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.Property, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	matched := []*domain.Property{}
	for _, property := range store.properties {
		if property.SellerID == sellerID {
			result := *property
			matched = append(matched, &result)
		}
	}
	return matched, nil
}

func (store *inMemPropertyStore) GetByStatus(ctx context.Context, status domain.PropertyStatus) ([]*domain.Property, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	matched := []*domain.Property{}
	for _, property := range store.properties {
		if property.Status == status {
			result := *property
			matched = append(matched, &result)
		}
	}
	return matched, nil
}

func (store *inMemPropertyStore) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, property := range store.properties {
		if property.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (store *inMemPropertyStore) UpdateFields(ctx context.Context, id primitive.ObjectID, update *domain.PropertyUpdate) (*domain.Property, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	property, ok := store.properties[id]
	if !ok {
		return nil, errors.ErrPropertyNotFound
	}
	if property.Status == domain.StatusSold {
		return nil, errors.ErrSoldImmutable
	}

	property.Title = update.Title
	property.Type = update.Type
	property.Price = update.Price
	property.Area = update.Area
	property.Beds = update.Beds
	property.Baths = update.Baths
	property.Bhk = update.Bhk
	property.Description = update.Description
	property.Address = update.Address
	property.City = update.City
	property.Images = update.Images
	property.Status = domain.StatusPending
	property.RejectionReason = ""

	result := *property
	return &result, nil
}

func (store *inMemPropertyStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.PropertyStatus, reason string) (*domain.Property, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	property, ok := store.properties[id]
	if !ok {
		return nil, errors.ErrPropertyNotFound
	}
	if property.Status == domain.StatusSold {
		return nil, errors.ErrAlreadySold
	}

	property.Status = status
	if status == domain.StatusRejected {
		property.RejectionReason = reason
	} else {
		property.RejectionReason = ""
	}

	result := *property
	return &result, nil
}

func (store *inMemPropertyStore) MarkSold(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	property, ok := store.properties[id]
	if !ok || property.Status == domain.StatusSold {
		return nil, errors.ErrAlreadySold
	}

	property.Status = domain.StatusSold
	result := *property
	return &result, nil
}

func (store *inMemPropertyStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.properties[id]; !ok {
		return errors.ErrPropertyNotFound
	}
	delete(store.properties, id)
	return nil
}

type inMemUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newInMemUserStore() *inMemUserStore {
	return &inMemUserStore{users: map[primitive.ObjectID]*domain.User{}}
}

func (store *inMemUserStore) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored := *user
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = time.Now()
	store.users[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (store *inMemUserStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, ok := store.users[id]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	result := *user
	return &result, nil
}

func (store *inMemUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, user := range store.users {
		if user.Email == email {
			result := *user
			return &result, nil
		}
	}
	return nil, errors.ErrUserNotFound
}

func (store *inMemUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, user := range store.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (store *inMemUserStore) Update(ctx context.Context, user *domain.User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.users[user.ID]; !ok {
		return errors.ErrUserNotFound
	}
	stored := *user
	store.users[user.ID] = &stored
	return nil
}

type inMemLikeStore struct {
	mu    sync.Mutex
	likes map[primitive.ObjectID]*domain.PropertyLike
}

func newInMemLikeStore() *inMemLikeStore {
	return &inMemLikeStore{likes: map[primitive.ObjectID]*domain.PropertyLike{}}
}

func (store *inMemLikeStore) Insert(ctx context.Context, like *domain.PropertyLike) (*domain.PropertyLike, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored := *like
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = time.Now()
	store.likes[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (store *inMemLikeStore) Exists(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, like := range store.likes {
		if like.UserID == userID && like.PropertyID == propertyID {
			return true, nil
		}
	}
	return false, nil
}

func (store *inMemLikeStore) Remove(ctx context.Context, userID, propertyID primitive.ObjectID) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for id, like := range store.likes {
		if like.UserID == userID && like.PropertyID == propertyID {
			delete(store.likes, id)
			return nil
		}
	}
	return nil
}

func (store *inMemLikeStore) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.PropertyLike, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	matched := []*domain.PropertyLike{}
	for _, like := range store.likes {
		if like.UserID == userID {
			result := *like
			matched = append(matched, &result)
		}
	}
	return matched, nil
}

func (store *inMemLikeStore) GetBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.PropertyLike, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	matched := []*domain.PropertyLike{}
	for _, like := range store.likes {
		if like.SellerID == sellerID {
			result := *like
			matched = append(matched, &result)
		}
	}
	return matched, nil
}

func (store *inMemLikeStore) DeleteByProperty(ctx context.Context, propertyID primitive.ObjectID) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for id, like := range store.likes {
		if like.PropertyID == propertyID {
			delete(store.likes, id)
		}
	}
	return nil
}

type inMemContactStore struct {
	mu       sync.Mutex
	requests map[primitive.ObjectID]*domain.ContactRequest
}

func newInMemContactStore() *inMemContactStore {
	return &inMemContactStore{requests: map[primitive.ObjectID]*domain.ContactRequest{}}
}

func (store *inMemContactStore) Insert(ctx context.Context, request *domain.ContactRequest) (*domain.ContactRequest, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored := *request
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = time.Now()
	store.requests[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (store *inMemContactStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.ContactRequest, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	request, ok := store.requests[id]
	if !ok {
		return nil, errors.ErrRequestNotFound
	}
	result := *request
	return &result, nil
}

func (store *inMemContactStore) GetBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.ContactRequest, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	matched := []*domain.ContactRequest{}
	for _, request := range store.requests {
		if request.SellerID == sellerID {
			result := *request
			matched = append(matched, &result)
		}
	}
	return matched, nil
}

func (store *inMemContactStore) GetByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]*domain.ContactRequest, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	matched := []*domain.ContactRequest{}
	for _, request := range store.requests {
		if request.BuyerID == buyerID {
			result := *request
			matched = append(matched, &result)
		}
	}
	return matched, nil
}

func (store *inMemContactStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.RequestStatus) (*domain.ContactRequest, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	request, ok := store.requests[id]
	if !ok {
		return nil, errors.ErrRequestNotFound
	}
	request.Status = status

	result := *request
	return &result, nil
}

func (store *inMemContactStore) DeleteByProperty(ctx context.Context, propertyID primitive.ObjectID) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for id, request := range store.requests {
		if request.PropertyID == propertyID {
			delete(store.requests, id)
		}
	}
	return nil
}

type inMemTransactionStore struct {
	mu           sync.Mutex
	transactions []*domain.Transaction
}

func newInMemTransactionStore() *inMemTransactionStore {
	return &inMemTransactionStore{}
}

func (store *inMemTransactionStore) Insert(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored := *transaction
	stored.ID = primitive.NewObjectID()
	stored.PaymentDate = time.Now()
	store.transactions = append(store.transactions, &stored)

	result := stored
	return &result, nil
}

func (store *inMemTransactionStore) GetAll(ctx context.Context) ([]*domain.Transaction, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	all := []*domain.Transaction{}
	for _, transaction := range store.transactions {
		result := *transaction
		all = append(all, &result)
	}
	return all, nil
}

func (store *inMemTransactionStore) GetByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]*domain.Transaction, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	matched := []*domain.Transaction{}
	for _, transaction := range store.transactions {
		if transaction.BuyerID == buyerID {
			result := *transaction
			matched = append(matched, &result)
		}
	}
	return matched, nil
}

func (store *inMemTransactionStore) GetBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.Transaction, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	matched := []*domain.Transaction{}
	for _, transaction := range store.transactions {
		if transaction.SellerID == sellerID {
			result := *transaction
			matched = append(matched, &result)
		}
	}
	return matched, nil
}

func (store *inMemTransactionStore) ExistsByProperty(ctx context.Context, propertyID primitive.ObjectID) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, transaction := range store.transactions {
		if transaction.PropertyID == propertyID {
			return true, nil
		}
	}
	return false, nil
}

type inMemOtpCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newInMemOtpCache() *inMemOtpCache {
	return &inMemOtpCache{values: map[string]string{}}
}

func (cache *inMemOtpCache) PostCacheData(ctx context.Context, key string, value string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.values[key] = value
	return nil
}

func (cache *inMemOtpCache) GetCachedValue(ctx context.Context, key string) (string, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	value, ok := cache.values[key]
	if !ok {
		return "", errors.ErrOtpExpired
	}
	return value, nil
}

func (cache *inMemOtpCache) DelCachedValue(ctx context.Context, key string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	delete(cache.values, key)
	return nil
}
