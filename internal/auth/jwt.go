package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lamngoc/quizforge/config"
)

// Claims are the custom JWT claims issued by the identity provider.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	FullName string `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(cfg *config.Config) *JWTService {
	expiryHrs := cfg.JWT.ExpiryHours
	if expiryHrs <= 0 {
		expiryHrs = 24
	}
	return &JWTService{
		secret: []byte(cfg.JWT.Secret),
		expiry: time.Duration(expiryHrs) * time.Hour,
	}
}

// GenerateToken mints a signed token for p.
func (s *JWTService) GenerateToken(p Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   p.ID,
		Email:    p.Email,
		Name:     p.Name,
		FullName: p.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken validates tokenString and returns the principal it carries.
func (s *JWTService) ParseToken(tokenString string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.UserID == 0 {
		return nil, errors.New("token carries no user id")
	}

	return &Principal{
		ID:       claims.UserID,
		Email:    claims.Email,
		Name:     claims.Name,
		FullName: claims.FullName,
	}, nil
}
