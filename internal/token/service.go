package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	userentity "github.com/rentfold/service-core/internal/user/entity"
	"github.com/rentfold/service-core/pkg/utilities"
)

var ErrInvalidToken = errors.New("invalid session token")

const issuer = "rentfold-api-core"

type Config struct {
	Secret string
	TTL    time.Duration
}

// ConfigFromEnv reads token config from environment variables. An empty
// secret means a random per-process key: sessions then expire on restart,
// which is fine for a single-binary deployment.
func ConfigFromEnv() Config {
	ttl := 8 * time.Hour
	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = time.Duration(n) * time.Minute
		}
	}
	return Config{Secret: os.Getenv("TOKEN_SECRET"), TTL: ttl}
}

// Service issues and verifies HS256 session tokens for authenticated calls.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(cfg Config) (*Service, error) {
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, err
		}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Service{secret: secret, ttl: ttl}, nil
}

// Session is the verified content of a token.
type Session struct {
	UserID int
	Role   userentity.Role
}

// Issue creates a signed session token for an authenticated user.
func (s *Service) Issue(u *userentity.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":  issuer,
		"sub":  fmt.Sprintf("%d", u.ID),
		"exp":  now.Add(s.ttl).Unix(),
		"iat":  now.Unix(),
		"jti":  utilities.NewKSUID(),
		"role": int(u.Role),
		"name": u.FullName,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Verify parses and validates a token and returns its session.
func (s *Service) Verify(tokenString string) (*Session, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return nil, ErrInvalidToken
	}
	id, err := strconv.Atoi(sub)
	if err != nil || id <= 0 {
		return nil, ErrInvalidToken
	}
	role, ok := claims["role"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	return &Session{UserID: id, Role: userentity.Role(int(role))}, nil
}
