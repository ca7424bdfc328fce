package handlers

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/crypto"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/models"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/mail"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/validation"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// otpTTL время жизни одноразового кода
const otpTTL = 10 * time.Minute

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger       *slog.Logger
	userStorage  storage.UserStorage
	tokenStorage storage.TokenStorage
	otpStorage   storage.OTPStorage
	mailer       mail.Sender
	jwtConfig    JWTConfig
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, tokenStorage storage.TokenStorage, otpStorage storage.OTPStorage, mailer mail.Sender, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		userStorage:  userStorage,
		tokenStorage: tokenStorage,
		otpStorage:   otpStorage,
		mailer:       mailer,
		jwtConfig:    jwtConfig,
	}
}

// Register обрабатывает POST /api/auth/register
// Регистрация нового пользователя. Email остается неподтвержденным
// до прохождения OTP верификации.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация полей
	if err := validation.ValidateEmail(req.Email); err != nil {
		h.logger.WarnContext(ctx, "invalid email", slog.String("email", req.Email), slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		sendError(h.logger, w, "name is required", http.StatusBadRequest)
		return
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: passwordHash,
		Role:         models.RoleCustomer,
		Verified:     false,
		CreatedAt:    time.Now(),
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("email", req.Email))
			sendError(h.logger, w, "An account with this email already exists", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("email", req.Email),
		slog.String("user_id", user.ID))

	resp := api.RegisterResponse{
		Success: true,
		UserID:  user.ID,
		Message: "Account created. Please verify your email",
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Login обрабатывает POST /api/auth/login
// Аутентификация пользователя по email и паролю
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		sendError(h.logger, w, "password is required", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("email", req.Email))
			sendError(h.logger, w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := crypto.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		h.logger.WarnContext(ctx, "login failed: invalid password", slog.String("email", req.Email))
		sendError(h.logger, w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	// Неподтвержденный email - просим пройти OTP верификацию
	if !user.Verified {
		h.logger.WarnContext(ctx, "login failed: email not verified", slog.String("email", req.Email))
		sendError(h.logger, w, "Please verify your email before logging in", http.StatusUnauthorized)
		return
	}

	h.issueTokens(w, r, user)
}

// SendOTP обрабатывает POST /api/auth/send-otp
// Генерирует 6-значный код и отправляет его на email.
// Повторный запрос заменяет предыдущий код.
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode send-otp request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	// Код выдаем только существующим пользователям
	if _, err := h.userStorage.GetUserByEmail(ctx, req.Email); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "No account found for this email", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	code, err := generateOTPCode()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate otp code", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	otp := &models.OTPCode{
		Email:     req.Email,
		Code:      code,
		ExpiresAt: now.Add(otpTTL),
		CreatedAt: now,
	}

	if err := h.otpStorage.UpsertCode(ctx, otp); err != nil {
		h.logger.ErrorContext(ctx, "failed to store otp code", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.mailer.SendOTP(ctx, req.Email, code); err != nil {
		h.logger.ErrorContext(ctx, "failed to send otp mail", slog.Any("error", err))
		sendError(h.logger, w, "Failed to send verification code", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "otp code sent", slog.String("email", req.Email))

	resp := api.StatusResponse{
		Success: true,
		Message: "Verification code sent to your email",
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// VerifyOTP обрабатывает POST /api/auth/verify-otp
// Проверяет код, помечает email подтвержденным и выдает токены.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode verify-otp request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateOTPCode(req.Code); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	stored, err := h.otpStorage.GetCode(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrOTPNotFound) {
			sendError(h.logger, w, "No verification code found. Please request a new one", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get otp code", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Срок действия проверяем до сравнения кода,
	// чтобы не подтверждать устаревшие коды
	if stored.Expired(time.Now()) {
		h.logger.WarnContext(ctx, "otp code expired", slog.String("email", req.Email))
		sendError(h.logger, w, "This OTP has expired. Please request a new one", http.StatusBadRequest)
		return
	}

	if stored.Code != req.Code {
		h.logger.WarnContext(ctx, "otp code mismatch", slog.String("email", req.Email))
		sendError(h.logger, w, "Invalid verification code", http.StatusBadRequest)
		return
	}

	// Код одноразовый - удаляем после успешной проверки
	if err := h.otpStorage.DeleteCode(ctx, req.Email); err != nil {
		h.logger.WarnContext(ctx, "failed to delete otp code", slog.Any("error", err))
		// Не критичная ошибка, продолжаем
	}

	user, err := h.userStorage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !user.Verified {
		if err := h.userStorage.MarkVerified(ctx, user.ID); err != nil {
			h.logger.ErrorContext(ctx, "failed to mark user verified", slog.Any("error", err))
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
			return
		}
		user.Verified = true
	}

	h.logger.InfoContext(ctx, "email verified", slog.String("email", req.Email))

	h.issueTokens(w, r, user)
}

// Refresh обрабатывает POST /api/auth/refresh
// Обновление access token с помощью refresh token (с ротацией)
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	refreshToken, err := bearerToken(r)
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusUnauthorized)
		return
	}

	storedToken, err := h.tokenStorage.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.WarnContext(ctx, "refresh token not found")
			sendError(h.logger, w, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if time.Now().After(storedToken.ExpiresAt) {
		h.logger.WarnContext(ctx, "refresh token expired", slog.String("user_id", storedToken.UserID))
		sendError(h.logger, w, "refresh token expired", http.StatusUnauthorized)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, storedToken.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Ротация: старый refresh token удаляем
	if err := h.tokenStorage.DeleteRefreshToken(ctx, refreshToken); err != nil {
		h.logger.WarnContext(ctx, "failed to delete old refresh token", slog.Any("error", err))
		// Продолжаем выполнение
	}

	h.issueTokens(w, r, user)
}

// Logout обрабатывает POST /api/auth/logout
// Выход пользователя (удаление всех refresh tokens)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accessToken, err := bearerToken(r)
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusUnauthorized)
		return
	}

	claims, err := ValidateAccessToken(h.jwtConfig, accessToken)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid access token", slog.Any("error", err))
		sendError(h.logger, w, "invalid or expired access token", http.StatusUnauthorized)
		return
	}

	deletedCount, err := h.tokenStorage.DeleteUserTokens(ctx, claims.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete user tokens", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged out successfully",
		slog.String("user_id", claims.UserID),
		slog.Int("tokens_deleted", deletedCount))

	w.WriteHeader(http.StatusNoContent)
}

// issueTokens генерирует пару токенов и отправляет TokenResponse
func (h *AuthHandler) issueTokens(w http.ResponseWriter, r *http.Request, user *models.User) {
	ctx := r.Context()

	accessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, user.ID, user.Email, user.Role)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	refreshToken, expiresAt, err := GenerateRefreshToken(h.jwtConfig)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	token := &models.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	if err := h.tokenStorage.SaveRefreshToken(ctx, token); err != nil {
		h.logger.ErrorContext(ctx, "failed to save refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	if err := h.userStorage.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Не критичная ошибка, логируем но не прерываем
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "tokens issued",
		slog.String("email", user.Email),
		slog.String("user_id", user.ID))

	resp := api.TokenResponse{
		Success:      true,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User: &api.UserInfo{
			ID:       user.ID,
			Email:    user.Email,
			Name:     user.Name,
			Role:     user.Role,
			Verified: user.Verified,
		},
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// bearerToken извлекает токен из заголовка Authorization
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("Authorization header is required")
	}

	const bearerPrefix = "Bearer "
	if len(authHeader) < len(bearerPrefix) || authHeader[:len(bearerPrefix)] != bearerPrefix {
		return "", fmt.Errorf("invalid Authorization header format")
	}

	token := authHeader[len(bearerPrefix):]
	if token == "" {
		return "", fmt.Errorf("token is required")
	}

	return token, nil
}

// generateOTPCode генерирует криптографически случайный 6-значный код
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
