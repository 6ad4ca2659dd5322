package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		errMsg   string
		wantErr  bool
	}{
		{
			name:     "valid username - lowercase",
			username: "admin",
		},
		{
			name:     "valid username - email",
			username: "john.smith@example.com",
		},
		{
			name:     "valid username - single char",
			username: "a",
		},
		{
			name:     "valid username - max length",
			username: strings.Repeat("a", MaxUsernameLen),
		},
		{
			name:     "invalid - empty username",
			username: "",
			wantErr:  true,
			errMsg:   "username cannot be empty",
		},
		{
			name:     "invalid - too long",
			username: strings.Repeat("a", MaxUsernameLen+1),
			wantErr:  true,
			errMsg:   "must not exceed 50 characters",
		},
		{
			name:     "invalid - space",
			username: "john smith",
			wantErr:  true,
			errMsg:   "can only contain",
		},
		{
			name:     "invalid - cyrillic",
			username: "пользователь",
			wantErr:  true,
			errMsg:   "can only contain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		errMsg   string
		wantErr  bool
	}{
		{name: "valid - min length", password: "abcd"},
		{name: "valid - max length", password: strings.Repeat("x", MaxPasswordLen)},
		{name: "invalid - empty", password: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "invalid - too short", password: "abc", wantErr: true, errMsg: "at least 4"},
		{name: "invalid - too long", password: strings.Repeat("x", MaxPasswordLen+1), wantErr: true, errMsg: "must not exceed 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
