package handlers

import (
	"encoding/json"
	stderrors "errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cristalhq/jwt/v4"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"realestate_service/domain"
	"realestate_service/errors"
)

var jwtKey = []byte(os.Getenv("SECRET_KEY"))

var verifier, _ = jwt.NewVerifierHS(jwt.HS256, jwtKey)

func parseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse([]byte(tokenString), verifier)
	if err != nil {
		log.Println(err)
		return nil, err
	}
	return token, nil
}

func extractClaims(token *jwt.Token) map[string]string {
	var claims map[string]string

	err := jwt.ParseClaims(token.Bytes(), verifier, &claims)
	if err != nil {
		log.Println(err)
	}

	return claims
}

// callerIdentity resolves the bearer token to the caller's user id and role.
func callerIdentity(r *http.Request) (primitive.ObjectID, domain.Role, error) {
	bearer := r.Header.Get("Authorization")
	if bearer == "" {
		return primitive.NilObjectID, "", stderrors.New("missing authorization header")
	}

	bearerToken := strings.Split(bearer, "Bearer ")
	if len(bearerToken) != 2 {
		return primitive.NilObjectID, "", stderrors.New("invalid token format")
	}

	token, err := parseToken(bearerToken[1])
	if err != nil {
		return primitive.NilObjectID, "", err
	}

	claims := extractClaims(token)

	expiresAt, err := time.Parse(time.RFC3339, claims["expires_at"])
	if err != nil {
		return primitive.NilObjectID, "", stderrors.New("invalid token expiry")
	}
	if time.Now().After(expiresAt) {
		return primitive.NilObjectID, "", stderrors.New("token expired")
	}

	id, err := primitive.ObjectIDFromHex(claims["user_id"])
	if err != nil {
		return primitive.NilObjectID, "", err
	}
	return id, domain.Role(claims["userType"]), nil
}

func jsonResponse(object interface{}, w http.ResponseWriter) {
	resp, err := json.Marshal(object)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write(resp)
}

// writeError maps domain errors onto status codes. Storage internals are
// never echoed to the client.
func writeError(w http.ResponseWriter, err error) {
	switch err {
	case errors.ErrPropertyNotFound, errors.ErrUserNotFound, errors.ErrRequestNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.ErrNotOwner, errors.ErrNotSeller, errors.ErrForbidden:
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.ErrAlreadySold, errors.ErrEmailExists, errors.ErrHasTransactions, errors.ErrSoldImmutable:
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.ErrInvalidCredentials:
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.ErrNotVerified:
		http.Error(w, err.Error(), http.StatusLocked)
	case errors.ErrAlreadyVerified, errors.ErrInvalidOtp, errors.ErrOtpExpired,
		errors.ErrInvalidStatus, errors.ErrRejectReasonRequired:
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		var validationErr *domain.ValidationError
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &validationErr) || stderrors.As(err, &fieldErrs) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Println(err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
