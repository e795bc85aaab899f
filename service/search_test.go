package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate_service/domain"
)

func approvedProperty(city string, price float64, propertyType domain.PropertyType, beds *int) *domain.Property {
	return &domain.Property{
		City:   city,
		Price:  price,
		Type:   propertyType,
		Beds:   beds,
		Status: domain.StatusApproved,
	}
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestPubliclyVisible(t *testing.T) {
	assert.False(t, PubliclyVisible(&domain.Property{Status: domain.StatusPending}))
	assert.False(t, PubliclyVisible(&domain.Property{Status: domain.StatusRejected}))
	assert.True(t, PubliclyVisible(&domain.Property{Status: domain.StatusApproved}))
	assert.True(t, PubliclyVisible(&domain.Property{Status: domain.StatusSold}))
}

func TestMatchesCity(t *testing.T) {
	property := approvedProperty("Novi Sad", 100000, domain.House, nil)

	assert.True(t, MatchesCity(property, ""))
	assert.True(t, MatchesCity(property, "novi"))
	assert.True(t, MatchesCity(property, "SAD"))
	assert.False(t, MatchesCity(property, "Beograd"))
}

func TestMatchesPriceBoundsInclusive(t *testing.T) {
	property := approvedProperty("Novi Sad", 100000, domain.House, nil)

	assert.True(t, MatchesMinPrice(property, floatPtr(100000)))
	assert.True(t, MatchesMaxPrice(property, floatPtr(100000)))
	assert.False(t, MatchesMinPrice(property, floatPtr(100001)))
	assert.False(t, MatchesMaxPrice(property, floatPtr(99999)))
	assert.True(t, MatchesMinPrice(property, nil))
	assert.True(t, MatchesMaxPrice(property, nil))
}

func TestMatchesType(t *testing.T) {
	property := approvedProperty("Novi Sad", 100000, domain.Villa, nil)

	assert.True(t, MatchesType(property, ""))
	assert.True(t, MatchesType(property, domain.Villa))
	assert.False(t, MatchesType(property, domain.Land))
}

func TestMatchesMinBedsResidentialOnly(t *testing.T) {
	house := approvedProperty("Novi Sad", 100000, domain.House, intPtr(3))
	land := approvedProperty("Novi Sad", 100000, domain.Land, nil)
	noBeds := approvedProperty("Novi Sad", 100000, domain.Apartment, nil)

	assert.True(t, MatchesMinBeds(house, intPtr(3)))
	assert.True(t, MatchesMinBeds(house, intPtr(2)))
	assert.False(t, MatchesMinBeds(house, intPtr(4)))

	// Non-residential listings never satisfy a beds filter, even land with no
	// beds recorded.
	assert.False(t, MatchesMinBeds(land, intPtr(1)))
	assert.False(t, MatchesMinBeds(noBeds, intPtr(1)))

	assert.True(t, MatchesMinBeds(land, nil))
}

func TestMatchesFilterComposes(t *testing.T) {
	property := approvedProperty("Novi Sad", 150000, domain.House, intPtr(4))

	assert.True(t, MatchesFilter(property, nil))
	assert.True(t, MatchesFilter(property, &domain.SearchFilter{}))
	assert.True(t, MatchesFilter(property, &domain.SearchFilter{
		City:     "novi",
		MinPrice: floatPtr(100000),
		MaxPrice: floatPtr(200000),
		Type:     domain.House,
		MinBeds:  intPtr(3),
	}))

	// One failing filter fails the whole conjunction.
	assert.False(t, MatchesFilter(property, &domain.SearchFilter{
		City:    "novi",
		MinBeds: intPtr(5),
	}))

	hidden := approvedProperty("Novi Sad", 150000, domain.House, intPtr(4))
	hidden.Status = domain.StatusPending
	assert.False(t, MatchesFilter(hidden, nil))
}

func TestSearchFiltersHiddenListings(t *testing.T) {
	fixture := newPropertyFixture(t)
	ctx := context.Background()

	pending, err := fixture.service.Create(ctx, fixture.seller.ID, validProperty())
	require.NoError(t, err)

	second := validProperty()
	second.Title = "Studio apartment near the center"
	second.Type = domain.Apartment
	second.Price = 72000
	approved, err := fixture.service.Create(ctx, fixture.seller.ID, second)
	require.NoError(t, err)
	_, err = fixture.service.UpdateStatus(ctx, approved.ID, domain.StatusApproved, "")
	require.NoError(t, err)

	third := validProperty()
	third.Title = "Villa with a pool in Kamenica"
	third.Type = domain.Villa
	third.Price = 320000
	sold, err := fixture.service.Create(ctx, fixture.seller.ID, third)
	require.NoError(t, err)
	_, err = fixture.store.MarkSold(ctx, sold.ID)
	require.NoError(t, err)

	results, err := fixture.service.Search(ctx, nil)
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, property := range results {
		ids[property.ID.Hex()] = true
	}
	assert.False(t, ids[pending.ID.Hex()])
	assert.True(t, ids[approved.ID.Hex()])
	assert.True(t, ids[sold.ID.Hex()])
}
