package service

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/errors"
)

const tokenTTL = 12 * time.Hour

// AuthService issues and validates bearer tokens. Issued tokens are also
// persisted so the audit middleware can attribute requests to users.
type AuthService struct {
	store  domain.Store
	secret []byte
	logger *slog.Logger
}

func NewAuthService(store domain.Store, secret string, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		secret: []byte(secret),
		logger: logger,
	}
}

func (s *AuthService) Register(username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, errors.NewAppError(errors.InvalidInput, "username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to hash password").WithDetails(err.Error())
	}

	user := &domain.User{
		Username: username,
		Password: string(hash),
	}
	if err := s.store.Users().CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateUser(id int64, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, errors.NewAppError(errors.InvalidInput, "username and password are required")
	}

	user, err := s.store.Users().GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to hash password").WithDetails(err.Error())
	}

	user.Username = username
	user.Password = string(hash)
	if err := s.store.Users().SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) GetUser(id int64) (*domain.User, error) {
	user, err := s.store.Users().GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// Login verifies credentials and issues a signed bearer token.
func (s *AuthService) Login(username, password string) (*domain.AccessToken, error) {
	user, err := s.store.Users().GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.ErrUnauthorized
	}

	claims := jwt.MapClaims{
		"sub": user.Username,
		"id":  user.ID,
		"exp": jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to sign token").WithDetails(err.Error())
	}

	token := &domain.AccessToken{
		AccessToken: signed,
		TokenType:   "bearer",
		UserID:      user.ID,
	}
	if err := s.store.Users().CreateAccessToken(token); err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return token, nil
}

// Authenticate resolves a bearer token to the calling principal.
func (s *AuthService) Authenticate(tokenString string) (*domain.Principal, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.ErrUnauthorized
	}

	username, _ := claims["sub"].(string)
	idFloat, _ := claims["id"].(float64)
	if username == "" || idFloat == 0 {
		return nil, errors.ErrUnauthorized
	}

	return &domain.Principal{
		UserID:   int64(idFloat),
		Username: username,
	}, nil
}
