package models

import "time"

// Стандартные роли
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User представляет учетную запись пользователя, которой могут принадлежать credentials
type User struct {
	CreatedAt    time.Time  `json:"created_at"`           // время создания
	LastLogin    *time.Time `json:"last_login,omitempty"` // время последнего входа
	Login        string     `json:"login"`                // уникальный логин
	PasswordHash string     `json:"-"`                    // argon2id хеш пароля
	Authorities  []string   `json:"authorities"`          // роли пользователя
	ID           int64      `json:"id"`                   // идентификатор
	Activated    bool       `json:"activated"`            // учетная запись активирована
}

// HasAuthority reports whether the user holds the given role.
func (u *User) HasAuthority(authority string) bool {
	for _, a := range u.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}
