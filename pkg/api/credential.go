package api

// CredentialDTO представляет credential в том виде, в котором он передается по сети.
// Временные поля передаются строками в формате ISO-8601 (RFC 3339).
type CredentialDTO struct {
	ID            *int64  `json:"id,omitempty"`
	Login         string  `json:"login"`
	PasswordHash  string  `json:"passwordHash,omitempty"`
	LastLoginDate *string `json:"lastLoginDate,omitempty"`
	ActivationKey string  `json:"activationKey,omitempty"`
	ResetKey      string  `json:"resetKey,omitempty"`
	ResetDate     *string `json:"resetDate,omitempty"`
	UserLogin     string  `json:"userLogin,omitempty"`
	UserID        *int64  `json:"userId,omitempty"`
	Activated     bool    `json:"activated"`
	Primary       bool    `json:"primary"`
}

// UserDTO is the public projection of an account that may own credentials.
type UserDTO struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
