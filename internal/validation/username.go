package validation

import (
	"fmt"
	"regexp"
)

// UsernamePattern определяет допустимый формат логина пользователя
// Латинские буквы, цифры и символы _ . @ -
var UsernamePattern = regexp.MustCompile(`^[_.@A-Za-z0-9-]+$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 1
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 50

	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 4
	// MaxPasswordLen максимальная длина пароля
	MaxPasswordLen = 100
)

// ValidateUsername проверяет, что username соответствует требованиям
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9) and _ . @ -")
	}

	return nil
}

// ValidatePassword проверяет требования к паролю: от 4 до 100 символов
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLen)
	}

	return nil
}
