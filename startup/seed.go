package startup

import (
	"context"

	"realestate_service/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// seed inserts a fixture account per role and a few listings. Every record is
// guarded by an existence check so restarts do not duplicate data.
func seed(ctx context.Context, users domain.UserStore, properties domain.PropertyStore, logger *logrus.Logger) {

	admin := seedUser(ctx, users, logger, &domain.User{
		Name:     "Site Admin",
		Email:    "admin@realestatehelper.com",
		Role:     domain.Admin,
		Verified: true,
	}, "admin123")

	seller := seedUser(ctx, users, logger, &domain.User{
		Name:        "Petar Petrovic",
		Email:       "seller@realestatehelper.com",
		Role:        domain.Seller,
		CompanyName: "Petrovic Nekretnine",
		Phone:       "+381641234567",
		City:        "Novi Sad",
		Verified:    true,
	}, "seller123")

	seedUser(ctx, users, logger, &domain.User{
		Name:     "Mila Milic",
		Email:    "buyer@realestatehelper.com",
		Role:     domain.Buyer,
		Phone:    "+381607654321",
		City:     "Beograd",
		Verified: true,
	}, "buyer123")

	if admin == nil || seller == nil {
		return
	}

	beds := 3
	baths := 2
	seedProperty(ctx, properties, logger, &domain.Property{
		SellerID:    seller.ID,
		Title:       "Family house in Petrovaradin",
		Type:        domain.House,
		Price:       185000,
		Area:        "160m2",
		Beds:        &beds,
		Baths:       &baths,
		Description: "Two-storey family house with a garden, close to the fortress.",
		Address:     "Preradoviceva 24",
		City:        "Novi Sad",
	}, domain.StatusApproved)

	studioBeds := 1
	studioBaths := 1
	seedProperty(ctx, properties, logger, &domain.Property{
		SellerID:    seller.ID,
		Title:       "Studio apartment near the city center",
		Type:        domain.Apartment,
		Price:       72000,
		Area:        "34m2",
		Beds:        &studioBeds,
		Baths:       &studioBaths,
		Bhk:         "1BHK",
		Description: "Compact studio on the third floor, recently renovated.",
		Address:     "Bulevar Oslobodjenja 101",
		City:        "Novi Sad",
	}, domain.StatusApproved)

	seedProperty(ctx, properties, logger, &domain.Property{
		SellerID:    seller.ID,
		Title:       "Agricultural land plot near Futog",
		Type:        domain.Land,
		Price:       39000,
		Area:        "5400m2",
		Description: "Flat arable plot with road access.",
		Address:     "Futoski put bb",
		City:        "Futog",
	}, domain.StatusPending)
}

func seedUser(ctx context.Context, users domain.UserStore, logger *logrus.Logger,
	user *domain.User, password string) *domain.User {

	exists, err := users.ExistsByEmail(ctx, user.Email)
	if err != nil {
		logger.Errorf("Seed: checking user %s: %v", user.Email, err)
		return nil
	}
	if exists {
		existing, err := users.GetByEmail(ctx, user.Email)
		if err != nil {
			logger.Errorf("Seed: loading user %s: %v", user.Email, err)
			return nil
		}
		return existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Errorf("Seed: hashing password for %s: %v", user.Email, err)
		return nil
	}
	user.Password = string(hash)

	created, err := users.Register(ctx, user)
	if err != nil {
		logger.Errorf("Seed: inserting user %s: %v", user.Email, err)
		return nil
	}
	logger.Infof("Seed: created user %s (%s)", created.Email, created.Role)
	return created
}

func seedProperty(ctx context.Context, properties domain.PropertyStore, logger *logrus.Logger,
	property *domain.Property, status domain.PropertyStatus) {

	exists, err := properties.ExistsByTitle(ctx, property.Title)
	if err != nil {
		logger.Errorf("Seed: checking listing %q: %v", property.Title, err)
		return
	}
	if exists {
		return
	}

	created, err := properties.Insert(ctx, property)
	if err != nil {
		logger.Errorf("Seed: inserting listing %q: %v", property.Title, err)
		return
	}

	if status != domain.StatusPending {
		if _, err := properties.UpdateStatus(ctx, created.ID, status, ""); err != nil {
			logger.Errorf("Seed: setting status of %q: %v", property.Title, err)
			return
		}
	}
	logger.Infof("Seed: created listing %q (%s)", property.Title, status)
}
