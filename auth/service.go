// Package auth handles registration, login, bearer token issuance and
// verification. Tokens are signed HS256 JWTs carrying the user id; the
// middleware in this package verifies them on protected routes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/config"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// Claims is the JWT payload: the user id plus the registered claims.
type Claims struct {
	UserID int32 `json:"user_id"`
	jwt.RegisteredClaims
}

// AuthService provides registration, login, and current-user lookup.
type AuthService struct {
	dbPool     *pgxpool.Pool
	authConfig config.AuthConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(dbPool *pgxpool.Pool, authConfig config.AuthConfig) *AuthService {
	return &AuthService{
		dbPool:     dbPool,
		authConfig: authConfig,
	}
}

// Register creates a new user and returns a bearer token for it. The avatar
// is derived from the email; the password is stored as a bcrypt hash.
// A duplicate email fails with "user already exists" and creates nothing.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Name:           req.Name,
		Email:          strings.ToLower(req.Email),
		HashedPassword: string(hashedPassword),
		Avatar:         GravatarURL(req.Email),
	}

	query := `INSERT INTO users (name, email, password, avatar)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err = s.dbPool.QueryRow(ctx, query, user.Name, user.Email, user.HashedPassword, user.Avatar).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewBadRequestError("user already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	return s.issueToken(user.ID)
}

// Login authenticates an email/password pair and returns a bearer token.
// The error does not reveal whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var user User
	query := `SELECT id, name, email, password, avatar, created_at FROM users WHERE email = $1`
	err := s.dbPool.QueryRow(ctx, query, strings.ToLower(req.Email)).
		Scan(&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.Avatar, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewBadRequestError("Invalid Credentials", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperror.NewBadRequestError("Invalid Credentials", nil)
	}

	return s.issueToken(user.ID)
}

// CurrentUser returns the account for the authenticated caller, minus the
// password hash.
func (s *AuthService) CurrentUser(ctx context.Context, userID int32) (*User, error) {
	var user User
	query := `SELECT id, name, email, avatar, created_at FROM users WHERE id = $1`
	err := s.dbPool.QueryRow(ctx, query, userID).
		Scan(&user.ID, &user.Name, &user.Email, &user.Avatar, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return &user, nil
}

func (s *AuthService) issueToken(userID int32) (*TokenResponse, error) {
	token, err := GenerateToken(userID, s.authConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &TokenResponse{Token: token}, nil
}

// GenerateToken signs a bearer token for the given user id.
func GenerateToken(userID int32, cfg config.AuthConfig) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken verifies a bearer token and returns its claims.
func ParseToken(tokenString string, cfg config.AuthConfig) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.UserID == 0 {
		return nil, errors.New("user_id claim is missing")
	}
	return claims, nil
}
