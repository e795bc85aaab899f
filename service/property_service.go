package application

import (
	"context"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"realestate_service/domain"
	"realestate_service/errors"
)

type PropertyService struct {
	store  domain.PropertyStore
	users  domain.UserStore
	likes  domain.LikeStore
	cache  domain.PropertyCache
	sales  domain.TransactionStore
	leads  domain.ContactRequestStore
	mailer *MailService
	tracer trace.Tracer
}

func NewPropertyService(store domain.PropertyStore, users domain.UserStore, likes domain.LikeStore,
	leads domain.ContactRequestStore, sales domain.TransactionStore, cache domain.PropertyCache,
	mailer *MailService, tracer trace.Tracer) *PropertyService {
	return &PropertyService{
		store:  store,
		users:  users,
		likes:  likes,
		leads:  leads,
		sales:  sales,
		cache:  cache,
		mailer: mailer,
		tracer: tracer,
	}
}

func (service *PropertyService) Create(ctx context.Context, sellerID primitive.ObjectID, property *domain.Property) (*domain.Property, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.Create")
	defer span.End()

	if err := property.Validate(); err != nil {
		return nil, err
	}

	seller, err := service.users.Get(ctx, sellerID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// Status is assigned server-side in the store; whatever the caller sent
	// is discarded there.
	property.SellerID = seller.ID
	created, err := service.store.Insert(ctx, property)
	if err != nil {
		return nil, err
	}

	if service.mailer != nil {
		go func() {
			_ = service.mailer.SendPropertySubmitted(seller.Email, seller.Name, created.Title)
		}()
	}

	return created, nil
}

// Search runs the public query: the visibility predicate always applies, the
// optional filters only when set.
func (service *PropertyService) Search(ctx context.Context, filter *domain.SearchFilter) ([]*domain.Property, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.Search")
	defer span.End()

	properties, err := service.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := []*domain.Property{}
	for _, property := range properties {
		if MatchesFilter(property, filter) {
			matched = append(matched, property)
		}
	}
	return matched, nil
}

// MatchesFilter composes the visibility predicate with every set filter via
// logical AND.
func MatchesFilter(property *domain.Property, filter *domain.SearchFilter) bool {
	if !PubliclyVisible(property) {
		return false
	}
	if filter == nil {
		return true
	}
	return MatchesCity(property, filter.City) &&
		MatchesMinPrice(property, filter.MinPrice) &&
		MatchesMaxPrice(property, filter.MaxPrice) &&
		MatchesType(property, filter.Type) &&
		MatchesMinBeds(property, filter.MinBeds)
}

// PubliclyVisible gates public search: only APPROVED and SOLD listings leave
// the building.
func PubliclyVisible(property *domain.Property) bool {
	return property.Status == domain.StatusApproved || property.Status == domain.StatusSold
}

func MatchesCity(property *domain.Property, city string) bool {
	if city == "" {
		return true
	}
	return strings.Contains(strings.ToLower(property.City), strings.ToLower(city))
}

func MatchesMinPrice(property *domain.Property, minPrice *float64) bool {
	return minPrice == nil || property.Price >= *minPrice
}

func MatchesMaxPrice(property *domain.Property, maxPrice *float64) bool {
	return maxPrice == nil || property.Price <= *maxPrice
}

func MatchesType(property *domain.Property, propertyType domain.PropertyType) bool {
	return propertyType == "" || property.Type == propertyType
}

func MatchesMinBeds(property *domain.Property, minBeds *int) bool {
	if minBeds == nil {
		return true
	}
	if !property.Type.Residential() || property.Beds == nil {
		return false
	}
	return *property.Beds >= *minBeds
}

func (service *PropertyService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.Get")
	defer span.End()

	if service.cache != nil {
		if cached, err := service.cache.Get(ctx, id.Hex()); err == nil {
			return cached, nil
		}
	}

	property, err := service.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		if err := service.cache.Post(ctx, property); err != nil {
			log.Printf("property cache set failed: %s", err)
		}
	}
	return property, nil
}

func (service *PropertyService) GetBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.Property, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.GetBySeller")
	defer span.End()

	return service.store.GetBySeller(ctx, sellerID)
}

func (service *PropertyService) GetPending(ctx context.Context) ([]*domain.Property, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.GetPending")
	defer span.End()

	return service.store.GetByStatus(ctx, domain.StatusPending)
}

func (service *PropertyService) Update(ctx context.Context, callerID, id primitive.ObjectID, update *domain.PropertyUpdate) (*domain.Property, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.Update")
	defer span.End()

	if err := update.Validate(); err != nil {
		return nil, err
	}

	property, err := service.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.SellerID != callerID {
		span.SetStatus(codes.Error, "caller does not own property")
		return nil, errors.ErrNotOwner
	}
	if property.Status == domain.StatusSold {
		return nil, errors.ErrSoldImmutable
	}

	updated, err := service.store.UpdateFields(ctx, id, update)
	if err != nil {
		return nil, err
	}
	service.dropCached(ctx, id)
	return updated, nil
}

// UpdateStatus handles the admin approve/reject transition. SOLD is never a
// valid target here, that transition belongs to the booking flow.
func (service *PropertyService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.PropertyStatus, reason string) (*domain.Property, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.UpdateStatus")
	defer span.End()

	if status != domain.StatusApproved && status != domain.StatusRejected {
		return nil, errors.ErrInvalidStatus
	}
	if status == domain.StatusRejected && reason == "" {
		return nil, errors.ErrRejectReasonRequired
	}

	property, err := service.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.Status == domain.StatusSold {
		return nil, errors.ErrAlreadySold
	}

	updated, err := service.store.UpdateStatus(ctx, id, status, reason)
	if err != nil {
		return nil, err
	}
	service.dropCached(ctx, id)

	if service.mailer != nil {
		if seller, err := service.users.Get(ctx, updated.SellerID); err == nil {
			go func() {
				_ = service.mailer.SendPropertyStatus(seller.Email, seller.Name, updated.Title, string(status), reason)
			}()
		}
	}

	return updated, nil
}

func (service *PropertyService) Delete(ctx context.Context, callerID primitive.ObjectID, callerRole domain.Role, id primitive.ObjectID) error {
	ctx, span := service.tracer.Start(ctx, "PropertyService.Delete")
	defer span.End()

	property, err := service.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if callerRole != domain.Admin && property.SellerID != callerID {
		return errors.ErrNotOwner
	}

	// A referenced Transaction keeps the listing around: deleting it would
	// break the transaction's referential integrity.
	referenced, err := service.sales.ExistsByProperty(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return errors.ErrHasTransactions
	}

	if err := service.store.Delete(ctx, id); err != nil {
		return err
	}

	if err := service.likes.DeleteByProperty(ctx, id); err != nil {
		log.Printf("cascade like delete failed for %s: %s", id.Hex(), err)
	}
	if err := service.leads.DeleteByProperty(ctx, id); err != nil {
		log.Printf("cascade contact delete failed for %s: %s", id.Hex(), err)
	}
	service.dropCached(ctx, id)
	return nil
}

func (service *PropertyService) dropCached(ctx context.Context, id primitive.ObjectID) {
	if service.cache == nil {
		return
	}
	if err := service.cache.Del(ctx, id.Hex()); err != nil {
		log.Printf("property cache invalidation failed: %s", err)
	}
}
