package models

import "time"

// Роли пользователей
const (
	RoleCustomer = "customer"
	RoleRetailer = "retailer"
)

// User представляет пользователя в системе
type User struct {
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	ID           string     `json:"id"`            // UUID пользователя
	Email        string     `json:"email"`         // уникальный email
	Name         string     `json:"name"`          // отображаемое имя
	PasswordHash string     `json:"-"`             // bcrypt хеш пароля
	Role         string     `json:"role"`          // customer / retailer
	Verified     bool       `json:"verified"`      // подтвержден ли email через OTP
}

// RefreshToken представляет refresh token пользователя
type RefreshToken struct {
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
}

// OTPCode представляет одноразовый код подтверждения email.
// На один email существует не более одного активного кода:
// повторная отправка заменяет предыдущий.
type OTPCode struct {
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Email     string    `json:"email"`
	Code      string    `json:"code"` // 6 цифр
}

// Expired возвращает true, если срок действия кода истек
func (o *OTPCode) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
