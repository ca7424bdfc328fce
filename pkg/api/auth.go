package api

// UserInfo представляет публичные данные пользователя
type UserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"` // "customer" или "retailer"
	Verified bool   `json:"verified"`
}

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// RegisterResponse представляет ответ на успешную регистрацию
type RegisterResponse struct {
	UserID  string `json:"user_id"` // UUID пользователя
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SendOTPRequest представляет запрос на отправку одноразового кода на email
type SendOTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest представляет запрос на проверку одноразового кода
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// TokenResponse представляет ответ с токенами доступа
type TokenResponse struct {
	User         *UserInfo `json:"user,omitempty"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Message      string    `json:"message,omitempty"`
	ExpiresIn    int64     `json:"expires_in"` // время жизни access token в секундах
	Success      bool      `json:"success"`
}
