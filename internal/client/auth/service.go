// Package auth управляет сессией пользователя на клиенте: логин,
// регистрация, верификация по OTP коду и хранение токенов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/api"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/validation"
	pkgapi "github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// ErrNotAuthenticated возвращается, когда валидной сессии нет
var ErrNotAuthenticated = errors.New("not authenticated")

// Service предоставляет функции авторизации
type Service struct {
	apiClient *api.Client
	authStore storage.AuthStorage
}

// NewService создает новый сервис авторизации
func NewService(apiClient *api.Client, authStore storage.AuthStorage) *Service {
	return &Service{
		apiClient: apiClient,
		authStore: authStore,
	}
}

// Register регистрирует нового пользователя.
// Аккаунт создается неподтвержденным: до верификации email через OTP
// залогиниться нельзя.
func (s *Service) Register(ctx context.Context, email, name, password string) (*pkgapi.RegisterResponse, error) {
	// Валидация входных данных
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.apiClient.Register(ctx, pkgapi.RegisterRequest{
		Email:    email,
		Name:     name,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return resp, nil
}

// Login выполняет аутентификацию по email и паролю,
// сохраняет токены и устанавливает их на API клиент
func (s *Service) Login(ctx context.Context, email, password string) (*pkgapi.UserInfo, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}

	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := s.saveSession(ctx, resp); err != nil {
		return nil, err
	}

	return resp.User, nil
}

// SendOTP запрашивает отправку одноразового кода на email
func (s *Service) SendOTP(ctx context.Context, email string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	if _, err := s.apiClient.SendOTP(ctx, pkgapi.SendOTPRequest{Email: email}); err != nil {
		return fmt.Errorf("failed to send OTP: %w", err)
	}
	return nil
}

// VerifyOTP проверяет одноразовый код; при успехе аккаунт считается
// подтвержденным и сессия сохраняется
func (s *Service) VerifyOTP(ctx context.Context, email, code string) (*pkgapi.UserInfo, error) {
	if err := validation.ValidateOTPCode(code); err != nil {
		return nil, fmt.Errorf("invalid code: %w", err)
	}

	resp, err := s.apiClient.VerifyOTP(ctx, pkgapi.VerifyOTPRequest{
		Email: email,
		Code:  code,
	})
	if err != nil {
		return nil, fmt.Errorf("verification failed: %w", err)
	}

	if err := s.saveSession(ctx, resp); err != nil {
		return nil, err
	}

	return resp.User, nil
}

// Restore восстанавливает сохраненную сессию.
// Если access токен истек, пробует обменять refresh токен.
func (s *Service) Restore(ctx context.Context) (*storage.AuthData, error) {
	auth, err := s.authStore.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if time.Now().Unix() < auth.ExpiresAt {
		s.apiClient.SetAccessToken(auth.AccessToken)
		return auth, nil
	}

	// Access токен истек: пробуем обновиться
	resp, err := s.apiClient.Refresh(ctx, auth.RefreshToken)
	if err != nil {
		// Refresh тоже не удался: сессия мертва
		_ = s.authStore.DeleteAuth(ctx)
		return nil, ErrNotAuthenticated
	}

	if err := s.saveSession(ctx, resp); err != nil {
		return nil, err
	}

	return s.authStore.GetAuth(ctx)
}

// Logout инвалидирует сессию на сервере и удаляет ее локально
func (s *Service) Logout(ctx context.Context) error {
	// Серверная инвалидация best-effort: локальная сессия удаляется
	// в любом случае
	if err := s.apiClient.Logout(ctx); err != nil {
		return fmt.Errorf("server logout failed: %w", err)
	}

	if err := s.authStore.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete local session: %w", err)
	}

	s.apiClient.SetAccessToken("")
	return nil
}

// saveSession сохраняет токены и включает их на API клиенте
func (s *Service) saveSession(ctx context.Context, resp *pkgapi.TokenResponse) error {
	auth := &storage.AuthData{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Unix() + resp.ExpiresIn,
	}
	if resp.User != nil {
		auth.Email = resp.User.Email
		auth.UserID = resp.User.ID
		auth.Role = resp.User.Role
	}

	if err := s.authStore.SaveAuth(ctx, auth); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.apiClient.SetAccessToken(resp.AccessToken)
	return nil
}
