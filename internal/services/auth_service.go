package services

import (
	"time"

	"github.com/utkarshshahi0/crud-assesment/config"
	crud_errors "github.com/utkarshshahi0/crud-assesment/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and verifies the bearer tokens gating every
// application endpoint. Identity is a single configured admin credential;
// there is no user store.
type AuthService struct {
	username     string
	passwordHash []byte
	jwtSecret    []byte
	accessTTL    time.Duration
}

type AccessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func NewAuthService(cfg *config.Config) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		username:     cfg.AdminUsername,
		passwordHash: hash,
		jwtSecret:    []byte(cfg.JWTSecret),
		accessTTL:    time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}, nil
}

func (s *AuthService) Login(username, password string) (AuthResponse, error) {
	if username != s.username {
		return AuthResponse{}, crud_errors.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return AuthResponse{}, crud_errors.ErrUnauthorized
	}

	now := time.Now()
	claims := AccessClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, crud_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, crud_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, crud_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, crud_errors.ErrUnauthorized
	}

	return *claims, nil
}
