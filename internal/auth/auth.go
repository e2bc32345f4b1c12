// Package auth issues and verifies bearer tokens and resolves them to
// stored accounts. Verification is read-only and always short-circuits
// before any data access in the handlers that require it.
package auth

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/rajeshbyreddy95/server/internal/common/errors"
	"github.com/rajeshbyreddy95/server/internal/storage"
)

const issuer = "movie-server"

// Claims is the JWT payload. UserID references the account document.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Service issues tokens and verifies bearer credentials.
type Service struct {
	storage storage.Storage
	secret  []byte
	expiry  time.Duration
}

// New creates an auth service signing with the given secret. expiry is
// the issued token lifetime.
func New(store storage.Storage, secret string, expiry time.Duration) *Service {
	return &Service{
		storage: store,
		secret:  []byte(secret),
		expiry:  expiry,
	}
}

// GenerateToken issues a signed token referencing the given account id.
func (s *Service) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.InternalError("failed to sign token", err)
	}
	return signed, nil
}

// VerifyBearer validates an Authorization header value and resolves it
// to the stored account. Failures carry a credential code so handlers
// can answer 401 for credential problems and 404 for a vanished account.
func (s *Service) VerifyBearer(ctx context.Context, bearerHeader string) (*storage.User, error) {
	token, err := extractToken(bearerHeader)
	if err != nil {
		return nil, err
	}

	claims, err := s.parseClaims(token)
	if err != nil {
		return nil, err
	}

	if claims.UserID == "" {
		return nil, errors.AuthError("Invalid token").WithCode(errors.CodeMalformedCredential)
	}

	user, err := s.storage.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.IsType(err, errors.ErrTypeValidation) {
			// The token verified but references an id the store cannot
			// even parse. Treat it as a malformed credential.
			return nil, errors.AuthError("Invalid token").WithCode(errors.CodeMalformedCredential)
		}
		return nil, err
	}
	return user, nil
}

func extractToken(bearerHeader string) (string, error) {
	if bearerHeader == "" {
		return "", errors.AuthError("No token provided").WithCode(errors.CodeNoCredential)
	}

	parts := strings.SplitN(bearerHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.AuthError("No token provided").WithCode(errors.CodeNoCredential)
	}
	return parts[1], nil
}

func (s *Service) parseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.AuthError("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.AuthError("Token expired").WithCode(errors.CodeCredentialExpired)
		}
		return nil, errors.AuthError("Invalid token").WithCode(errors.CodeCredentialInvalid)
	}
	if !parsed.Valid {
		return nil, errors.AuthError("Invalid token").WithCode(errors.CodeCredentialInvalid)
	}
	return claims, nil
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.InternalError("failed to hash password", err)
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against its bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
