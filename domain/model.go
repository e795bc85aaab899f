package domain

import (
	"encoding/json"
	"io"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PropertyType string

const (
	House      PropertyType = "HOUSE"
	Land       PropertyType = "LAND"
	Farm       PropertyType = "FARM"
	Apartment  PropertyType = "APARTMENT"
	Villa      PropertyType = "VILLA"
	Commercial PropertyType = "COMMERCIAL"
)

// Residential reports whether beds/baths/bhk are meaningful for the type.
func (t PropertyType) Residential() bool {
	return t == House || t == Apartment || t == Villa
}

func ValidPropertyType(t PropertyType) bool {
	switch t {
	case House, Land, Farm, Apartment, Villa, Commercial:
		return true
	}
	return false
}

type PropertyStatus string

const (
	StatusPending  PropertyStatus = "PENDING"
	StatusApproved PropertyStatus = "APPROVED"
	StatusRejected PropertyStatus = "REJECTED"
	StatusSold     PropertyStatus = "SOLD"
)

type Property struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	SellerID        primitive.ObjectID `bson:"sellerId" json:"sellerId"`
	Title           string             `bson:"title" json:"title" validate:"required,min=5,max=100"`
	Type            PropertyType       `bson:"type" json:"type" validate:"required"`
	Price           float64            `bson:"price" json:"price" validate:"gte=0"`
	Area            string             `bson:"area" json:"area" validate:"required"`
	Beds            *int               `bson:"beds,omitempty" json:"beds,omitempty"`
	Baths           *int               `bson:"baths,omitempty" json:"baths,omitempty"`
	Bhk             string             `bson:"bhk,omitempty" json:"bhk,omitempty"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty" validate:"max=2000"`
	Address         string             `bson:"address" json:"address" validate:"required"`
	City            string             `bson:"city" json:"city" validate:"required"`
	Images          []string           `bson:"images,omitempty" json:"images,omitempty"`
	RejectionReason string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	Status          PropertyStatus     `bson:"property_status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// PropertyUpdate is the full mutable field set a seller may edit. Status,
// owner and creation timestamp are never taken from the caller.
type PropertyUpdate struct {
	Title       string       `json:"title" validate:"required,min=5,max=100"`
	Type        PropertyType `json:"type" validate:"required"`
	Price       float64      `json:"price" validate:"gte=0"`
	Area        string       `json:"area" validate:"required"`
	Beds        *int         `json:"beds,omitempty"`
	Baths       *int         `json:"baths,omitempty"`
	Bhk         string       `json:"bhk,omitempty"`
	Description string       `json:"description,omitempty" validate:"max=2000"`
	Address     string       `json:"address" validate:"required"`
	City        string       `json:"city" validate:"required"`
	Images      []string     `json:"images,omitempty"`
}

type Role string

const (
	Buyer  Role = "BUYER"
	Seller Role = "SELLER"
	Admin  Role = "ADMIN"
)

type User struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	Role        Role               `bson:"role" json:"role"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CompanyName string             `bson:"companyName,omitempty" json:"companyName,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	City        string             `bson:"city,omitempty" json:"city,omitempty"`
	State       string             `bson:"state,omitempty" json:"state,omitempty"`
	Zip         string             `bson:"zip,omitempty" json:"zip,omitempty"`
	Verified    bool               `bson:"verified" json:"verified"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestContacted RequestStatus = "CONTACTED"
	RequestClosed    RequestStatus = "CLOSED"
)

func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestPending, RequestContacted, RequestClosed:
		return true
	}
	return false
}

type ContactRequest struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	BuyerID    primitive.ObjectID `bson:"buyerId" json:"buyerId"`
	SellerID   primitive.ObjectID `bson:"sellerId" json:"sellerId"`
	PropertyID primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	Status     RequestStatus      `bson:"request_status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// PropertyLike is existence-only: a (user, property) pair either exists or not.
type PropertyLike struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	PropertyID primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	SellerID   primitive.ObjectID `bson:"sellerId" json:"sellerId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

type Transaction struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	BuyerID       primitive.ObjectID `bson:"buyerId" json:"buyerId"`
	SellerID      primitive.ObjectID `bson:"sellerId" json:"sellerId"`
	PropertyID    primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	Amount        float64            `bson:"amount" json:"amount"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	PaymentDate   time.Time          `bson:"paymentDate" json:"paymentDate"`
}

type Claims struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"userType"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        Role   `json:"role"`
	Phone       string `json:"phone"`
	CompanyName string `json:"companyName,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Zip         string `json:"zip,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type OtpVerification struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

type ProfileUpdate struct {
	Name        string `json:"name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Zip         string `json:"zip,omitempty"`
}

// SearchFilter carries the optional public search parameters. A nil/empty
// field imposes no constraint.
type SearchFilter struct {
	City     string
	MinPrice *float64
	MaxPrice *float64
	Type     PropertyType
	MinBeds  *int
}

func (p *Property) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return err
	}
	return validatePropertyFields(p.Type, p.Beds, p.Baths)
}

func (u *PropertyUpdate) Validate() error {
	validate := validator.New()
	if err := validate.Struct(u); err != nil {
		return err
	}
	return validatePropertyFields(u.Type, u.Beds, u.Baths)
}

type ValidationError struct {
	Message string `json:"message"`
}

func (v *ValidationError) Error() string {
	return v.Message
}

func validatePropertyFields(t PropertyType, beds, baths *int) error {
	if !ValidPropertyType(t) {
		return &ValidationError{Message: "Invalid property type"}
	}
	if beds != nil && *beds < 0 {
		return &ValidationError{Message: "Beds cannot be negative"}
	}
	if baths != nil && *baths < 0 {
		return &ValidationError{Message: "Baths cannot be negative"}
	}
	return nil
}

func (r *SignupRequest) Validate() error {
	emailRegex := regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	nameRegex := regexp.MustCompile(`^[a-zA-Z\s]{3,50}$`)

	if r.Name == "" {
		return &ValidationError{Message: "Name cannot be empty"}
	}
	if !nameRegex.MatchString(r.Name) {
		return &ValidationError{Message: "Name must contain only letters and spaces and be 3-50 characters long"}
	}
	if r.Email == "" {
		return &ValidationError{Message: "Email cannot be empty"}
	}
	if !emailRegex.MatchString(r.Email) {
		return &ValidationError{Message: "Invalid email format"}
	}
	if len(r.Password) < 6 {
		return &ValidationError{Message: "Password must be at least 6 characters long"}
	}
	if r.Role != Buyer && r.Role != Seller && r.Role != Admin {
		return &ValidationError{Message: "Role should be BUYER, SELLER or ADMIN"}
	}
	return nil
}

func (p *Property) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(p)
}

func (p *Property) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(p)
}

func (u *PropertyUpdate) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(u)
}
