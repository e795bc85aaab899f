package casbinAuthorization

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/casbin/casbin"
	"github.com/cristalhq/jwt/v4"
	"github.com/sirupsen/logrus"
)

var jwtKey = []byte(os.Getenv("SECRET_KEY"))

var verifier, _ = jwt.NewVerifierHS(jwt.HS256, jwtKey)

// extractUserRole reads the role claim off the bearer token. Requests without
// a token get the Unauthenticated role so the policy can still allow the
// public routes.
func extractUserRole(r *http.Request) (string, error) {
	bearer := r.Header.Get("Authorization")
	if bearer == "" {
		return "Unauthenticated", nil
	}

	bearerToken := strings.Split(bearer, "Bearer ")
	if len(bearerToken) != 2 {
		return "", errors.New("invalid token format")
	}

	token, err := jwt.Parse([]byte(bearerToken[1]), verifier)
	if err != nil {
		return "", err
	}

	var claims map[string]string
	if err := jwt.ParseClaims(token.Bytes(), verifier, &claims); err != nil {
		return "", err
	}
	return claims["userType"], nil
}

// CasbinMiddleware evaluates every request against the (role, path, method)
// policy. Ownership checks stay in the services; this gate covers roles only.
func CasbinMiddleware(e *casbin.Enforcer, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			userRole, err := extractUserRole(r)
			if err != nil {
				logger.Warnf("Rejecting request with bad token: %v", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			allowed, err := e.EnforceSafe(userRole, r.URL.Path, r.Method)
			if err != nil {
				logger.Errorf("Error enforcing authorization policy: %v", err)
				http.Error(w, "Unauthorized user", http.StatusUnauthorized)
				return
			}

			if !allowed {
				logger.Warnf("Denied %s %s for role %s", r.Method, r.URL.Path, userRole)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
