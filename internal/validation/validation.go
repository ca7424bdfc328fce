package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// EmailPattern определяет допустимый формат email.
// Упрощенная проверка: локальная часть, @, домен с точкой.
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
	// MaxNameLen максимальная длина имени/названия
	MaxNameLen = 128
	// MinRating минимальная оценка отзыва
	MinRating = 1
	// MaxRating максимальная оценка отзыва
	MaxRating = 5
)

// ValidateEmail проверяет, что email соответствует базовому формату
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > 254 {
		return fmt.Errorf("email is too long")
	}

	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	return nil
}

// ValidateRating проверяет, что оценка отзыва в допустимых границах.
// Текст ошибки уходит пользователю как есть.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("Rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

// ValidateProductName проверяет название товара
func ValidateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("product name cannot be empty")
	}

	if len(name) > MaxNameLen {
		return fmt.Errorf("product name must not exceed %d characters", MaxNameLen)
	}

	return nil
}

// ValidatePrice проверяет цену товара
func ValidatePrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}

// ValidateStock проверяет остаток товара
func ValidateStock(stock int) error {
	if stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	return nil
}

// ValidateOTPCode проверяет формат одноразового кода (6 цифр)
func ValidateOTPCode(code string) error {
	if len(code) != 6 {
		return fmt.Errorf("OTP code must be 6 digits")
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("OTP code must contain only digits")
		}
	}
	return nil
}
