package api

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// TokenResponse представляет ответ с токеном доступа
type TokenResponse struct {
	IDToken     string   `json:"id_token"`    // JWT access token
	Authorities []string `json:"authorities"` // роли пользователя (например, ROLE_USER)
	ExpiresIn   int64    `json:"expires_in"`  // время жизни токена в секундах
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error    string `json:"error"`              // краткий код ошибки
	Message  string `json:"message,omitempty"`  // сообщение для пользователя
	ErrorKey string `json:"errorKey,omitempty"` // машинный ключ (например, idexists)
	Entity   string `json:"entityName,omitempty"`
}
