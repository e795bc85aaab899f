package application

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/cristalhq/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"realestate_service/domain"
	"realestate_service/errors"
)

type UserService struct {
	store  domain.UserStore
	cache  domain.OtpCache
	mailer *MailService
	tracer trace.Tracer
}

func NewUserService(store domain.UserStore, cache domain.OtpCache, mailer *MailService, tracer trace.Tracer) *UserService {
	return &UserService{
		store:  store,
		cache:  cache,
		mailer: mailer,
		tracer: tracer,
	}
}

func (service *UserService) Register(ctx context.Context, request *domain.SignupRequest) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.Register")
	defer span.End()

	if err := request.Validate(); err != nil {
		return nil, err
	}

	exists, err := service.store.ExistsByEmail(ctx, request.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if exists {
		return nil, errors.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:        request.Name,
		Email:       request.Email,
		Password:    string(hash),
		Role:        request.Role,
		Phone:       request.Phone,
		CompanyName: request.CompanyName,
		Address:     request.Address,
		City:        request.City,
		State:       request.State,
		Zip:         request.Zip,
		// Admin accounts skip OTP verification.
		Verified: request.Role == domain.Admin,
	}

	created, err := service.store.Register(ctx, user)
	if err != nil {
		return nil, err
	}

	if !created.Verified {
		otp := fmt.Sprintf("%06d", rand.Intn(1000000))
		if err := service.cache.PostCacheData(ctx, created.Email, otp); err != nil {
			log.Printf("failed to cache OTP for %s: %s", created.Email, err)
			return nil, err
		}
		if service.mailer != nil {
			go func() {
				_ = service.mailer.SendOtp(created.Email, created.Name, otp)
			}()
		}
	}

	return created, nil
}

func (service *UserService) VerifyOtp(ctx context.Context, verification *domain.OtpVerification) error {
	ctx, span := service.tracer.Start(ctx, "UserService.VerifyOtp")
	defer span.End()

	user, err := service.store.GetByEmail(ctx, verification.Email)
	if err != nil {
		return err
	}
	if user.Verified {
		return errors.ErrAlreadyVerified
	}

	cached, err := service.cache.GetCachedValue(ctx, verification.Email)
	if err != nil {
		span.SetStatus(codes.Error, "OTP missing or expired")
		return errors.ErrOtpExpired
	}
	if cached != verification.Otp {
		return errors.ErrInvalidOtp
	}

	if err := service.cache.DelCachedValue(ctx, verification.Email); err != nil {
		log.Printf("failed to delete OTP for %s: %s", verification.Email, err)
	}

	user.Verified = true
	if err := service.store.Update(ctx, user); err != nil {
		return err
	}

	if service.mailer != nil {
		go func() {
			_ = service.mailer.SendWelcome(user.Email, user.Name)
		}()
	}
	return nil
}

func (service *UserService) Login(ctx context.Context, request *domain.LoginRequest) (*domain.LoginResponse, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.Login")
	defer span.End()

	user, err := service.store.GetByEmail(ctx, request.Email)
	if err != nil {
		if err == errors.ErrUserNotFound {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Verified && user.Role != domain.Admin {
		return nil, errors.ErrNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	token, err := GenerateJWT(user)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &domain.LoginResponse{
		Token: token,
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

func (service *UserService) GetProfile(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.GetProfile")
	defer span.End()

	return service.store.Get(ctx, id)
}

// UpdateProfile applies the supplied fields only. Email and role stay as they
// are, whatever the caller sends.
func (service *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, update *domain.ProfileUpdate) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.UpdateProfile")
	defer span.End()

	user, err := service.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Phone != "" {
		user.Phone = update.Phone
	}
	if update.CompanyName != "" {
		user.CompanyName = update.CompanyName
	}
	if update.Address != "" {
		user.Address = update.Address
	}
	if update.City != "" {
		user.City = update.City
	}
	if update.State != "" {
		user.State = update.State
	}
	if update.Zip != "" {
		user.Zip = update.Zip
	}

	if err := service.store.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func GenerateJWT(user *domain.User) (string, error) {
	key := []byte(os.Getenv("SECRET_KEY"))
	signer, err := jwt.NewSignerHS(jwt.HS256, key)
	if err != nil {
		log.Println(err)
		return "", err
	}

	builder := jwt.NewBuilder(signer)

	claims := &domain.Claims{
		UserID:    user.ID.Hex(),
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(time.Minute * 60),
	}

	token, err := builder.Build(claims)
	if err != nil {
		log.Println(err)
		return "", err
	}

	return token.String(), nil
}
