// Package auth registers users, issues access tokens and authenticates
// requests.
//
// Every other package trusts the owner ID that the middleware in this
// package puts into the request context.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spendwise/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("the email address or password is incorrect")
	ErrMissingToken       = errors.New("you must be logged in to access this resource")
	ErrInvalidToken       = errors.New("your access token is invalid or expired, please log in again")
)

// minPasswordLength is the minimum length of a password in bytes.
const minPasswordLength = 8

// Registration contains the data needed to create a user.
type Registration struct {
	Name     string `json:"name" example:"Ada Lovelace"`
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// Credentials are used to log in.
type Credentials struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// Token is an access token and the time it expires at.
type Token struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // The bearer token
	ExpiresAt time.Time `json:"expiresAt" example:"2025-06-15T11:30:00Z"`                 // When the token expires
}

// Service manages users.
type Service struct {
	db     *gorm.DB
	secret string
	ttl    time.Duration
}

// New returns the auth service. Tokens are signed with secret and are valid for ttl.
func New(db *gorm.DB, secret string, ttl time.Duration) Service {
	return Service{
		db:     db,
		secret: secret,
		ttl:    ttl,
	}
}

// Register creates a user. Email addresses are unique, ignoring case.
func (s Service) Register(ctx context.Context, r Registration) (models.User, error) {
	if len(r.Password) < minPasswordLength {
		return models.User{}, fmt.Errorf("%w: the password must be at least %d characters long", models.ErrValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: string(hash),
	}

	err = s.db.WithContext(ctx).Create(&user).Error
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login verifies the credentials and issues a token for the user.
//
// An unknown email address and a wrong password both return ErrInvalidCredentials.
func (s Service) Login(ctx context.Context, c Credentials) (Token, error) {
	var user models.User

	err := s.db.WithContext(ctx).Where(&models.User{Email: strings.ToLower(strings.TrimSpace(c.Email))}).First(&user).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return Token{}, ErrInvalidCredentials
	} else if err != nil {
		return Token{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(c.Password)) != nil {
		return Token{}, ErrInvalidCredentials
	}

	token, expires, err := IssueToken(s.secret, user.ID, s.ttl)
	if err != nil {
		return Token{}, err
	}

	return Token{Token: token, ExpiresAt: expires}, nil
}

// Me returns the user with the ID.
func (s Service) Me(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Middleware returns the authentication middleware for tokens issued by this service.
func (s Service) Middleware() gin.HandlerFunc {
	return Middleware(s.secret)
}
