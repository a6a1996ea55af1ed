package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u := NewUser("alice")

	assert.Equal(t, "alice", u.UserName)
	assert.Empty(t, u.ID)
	assert.NotNil(t, u.Logins)
	assert.NotNil(t, u.Claims)
	assert.NotNil(t, u.Roles)

	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"logins":[]`)
	assert.NotContains(t, string(data), `"passwordHash"`)
}

func TestUser_IsLockedOut(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	u := NewUser("alice")
	u.LockoutEnd = now.Add(time.Hour)

	assert.False(t, u.IsLockedOut(now), "lockout disabled")

	u.LockoutEnabled = true
	assert.True(t, u.IsLockedOut(now))
	assert.False(t, u.IsLockedOut(u.LockoutEnd))
	assert.False(t, NewUser("bob").IsLockedOut(now))
}

func TestUser_Predicates(t *testing.T) {
	u := NewUser("alice")
	u.Logins = append(u.Logins, LoginInfo{LoginProvider: "google", ProviderKey: "1"})
	u.Claims = append(u.Claims, Claim{Type: "scope", Value: "read"})
	u.Roles = append(u.Roles, "admin")

	assert.True(t, u.HasLogin(LoginInfo{LoginProvider: "google", ProviderKey: "1"}))
	assert.False(t, u.HasLogin(LoginInfo{LoginProvider: "github", ProviderKey: "1"}))
	assert.True(t, u.HasClaim(Claim{Type: "scope", Value: "read"}))
	assert.False(t, u.HasClaim(Claim{Type: "scope", Value: "write"}))
	assert.True(t, u.HasRole("admin"))
	assert.False(t, u.HasRole("Admin"))
}
