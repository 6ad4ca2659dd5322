package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iudanet/credadmin/internal/models"
)

const (
	// MinCredentialLoginLen минимальная длина логина credential
	MinCredentialLoginLen = 5
	// MaxCredentialLoginLen максимальная длина логина credential
	MaxCredentialLoginLen = 100
	// MaxKeyLen максимальная длина activation/reset ключей
	MaxKeyLen = 20
)

// FieldError describes one invalid field.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors is returned by ValidateCredential when some fields are invalid.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateCredential проверяет поля credential перед сохранением.
// Возвращает FieldErrors со всеми найденными ошибками или nil.
func ValidateCredential(c *models.Credential) error {
	if c == nil {
		return FieldErrors{{Field: "credential", Message: "is required"}}
	}

	var errs FieldErrors

	loginLen := utf8.RuneCountInString(c.Login)
	switch {
	case strings.TrimSpace(c.Login) == "":
		errs = append(errs, FieldError{Field: "login", Message: "is required"})
	case loginLen < MinCredentialLoginLen || loginLen > MaxCredentialLoginLen:
		errs = append(errs, FieldError{
			Field:   "login",
			Message: fmt.Sprintf("must be between %d and %d characters", MinCredentialLoginLen, MaxCredentialLoginLen),
		})
	}

	if utf8.RuneCountInString(c.ActivationKey) > MaxKeyLen {
		errs = append(errs, FieldError{Field: "activationKey", Message: fmt.Sprintf("must not exceed %d characters", MaxKeyLen)})
	}
	if utf8.RuneCountInString(c.ResetKey) > MaxKeyLen {
		errs = append(errs, FieldError{Field: "resetKey", Message: fmt.Sprintf("must not exceed %d characters", MaxKeyLen)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
