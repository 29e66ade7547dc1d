package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"restaurant-booking-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID uint            `json:"user_id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the verified caller attached to the request context. Its
// presence or absence is the whole auth result; nothing is attached on a
// failed optional verification.
type Identity struct {
	UserID   uint
	Email    string
	Role     models.UserRole
	IssuedAt time.Time
}

const identityKey = "identity"

// GenerateToken creates a signed JWT for a given user
func GenerateToken(user *models.User, secret []byte, expiry time.Duration) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken parses and validates a bearer token, returning its claims.
func VerifyToken(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

func identityFromClaims(claims *Claims) Identity {
	identity := Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	if identity.Role == "" {
		identity.Role = models.RoleUser
	}
	return identity
}

// AuthRequired validates the JWT and injects the caller identity into the
// context. Failures carry distinct reason codes for client diagnostics.
func AuthRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "code": "NO_AUTH_TOKEN"})
			c.Abort()
			return
		}
		claims, err := VerifyToken(tokenStr, secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired", "code": "TOKEN_EXPIRED"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "code": "INVALID_TOKEN"})
			}
			c.Abort()
			return
		}
		c.Set(identityKey, identityFromClaims(claims))
		c.Next()
	}
}

// OptionalAuth attaches the caller identity when a valid token is presented
// and proceeds anonymously on any failure.
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c); ok {
			if claims, err := VerifyToken(tokenStr, secret); err == nil {
				c.Set(identityKey, identityFromClaims(claims))
			}
		}
		c.Next()
	}
}

// RequireRole enforces that the caller has one of the allowed roles. Must run
// after AuthRequired.
func RequireRole(code string, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CallerIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "code": "NO_AUTH_TOKEN"})
			c.Abort()
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Required role(s): " + rolesString(roles), "code": code})
		c.Abort()
	}
}

// AdminOnly restricts a route to admins.
func AdminOnly() gin.HandlerFunc {
	return RequireRole("NOT_ADMIN", models.RoleAdmin)
}

// OwnerOnly restricts a route to restaurant owners; admins pass too.
func OwnerOnly() gin.HandlerFunc {
	return RequireRole("NOT_OWNER", models.RoleOwner, models.RoleAdmin)
}

// WaitingListRestricted additionally gates waiting-list views behind a
// deployment flag requiring admin role. Must run after AuthRequired.
func WaitingListRestricted(requireAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if requireAdmin {
			identity, ok := CallerIdentity(c)
			if !ok || identity.Role != models.RoleAdmin {
				c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Waiting list is restricted.", "code": "WAITING_LIST_RESTRICTED"})
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// CallerIdentity extracts the verified identity, reporting whether the
// request is authenticated.
func CallerIdentity(c *gin.Context) (Identity, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := val.(Identity)
	return identity, ok
}

func rolesString(roles []models.UserRole) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}
