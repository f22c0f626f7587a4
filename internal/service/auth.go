package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stridehq/stride/internal/apperr"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
)

const SessionCookieName = "session_token"

// AuthService implements the demo session: login always resolves to one
// fixed identity, carried in a signed cookie.
type AuthService struct {
	userRepo      repository.UserRepository
	sessionSecret string
	sessionExpiry time.Duration
	isProduction  bool
	demoUserID    string
	demoUserEmail string
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessionSecret string,
	sessionExpiry time.Duration,
	isProduction bool,
	demoUserID string,
	demoUserEmail string,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		sessionSecret: sessionSecret,
		sessionExpiry: sessionExpiry,
		isProduction:  isProduction,
		demoUserID:    demoUserID,
		demoUserEmail: demoUserEmail,
	}
}

// Login upserts the demo user and returns it with a fresh session token.
func (s *AuthService) Login() (*model.User, string, error) {
	user, err := s.userRepo.ByID(s.demoUserID)
	if err == repository.ErrUserNotFound {
		user = &model.User{
			ID:        s.demoUserID,
			Email:     s.demoUserEmail,
			FirstName: "Demo",
			LastName:  "User",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		err = s.userRepo.Upsert(user)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve demo user: %w", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *AuthService) generateToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.sessionExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.sessionSecret))
}

// UserFromToken verifies the session token and loads the user it names.
func (s *AuthService) UserFromToken(tokenString string) (*model.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.sessionSecret), nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthorized, "invalid session", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthorized("invalid session")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, apperr.Unauthorized("invalid session")
	}

	user, err := s.userRepo.ByID(userID)
	if err == repository.ErrUserNotFound {
		return nil, apperr.Unauthorized("unknown user")
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AuthService) SessionExpiry() time.Duration {
	return s.sessionExpiry
}

func (s *AuthService) SetSessionCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}
