package model

import (
	"time"
)

// User represents a stored account with its embedded logins, claims and roles.
type User struct {
	ID                   string      `json:"id"`
	Entity               string      `json:"entity,omitempty"`
	UserName             string      `json:"userName"`
	Email                string      `json:"email,omitempty"`
	EmailConfirmed       bool        `json:"emailConfirmed"`
	PasswordHash         string      `json:"passwordHash,omitempty"`
	SecurityStamp        string      `json:"securityStamp,omitempty"`
	PhoneNumber          string      `json:"phoneNumber,omitempty"`
	PhoneNumberConfirmed bool        `json:"phoneNumberConfirmed"`
	TwoFactorEnabled     bool        `json:"twoFactorEnabled"`
	LockoutEnd           time.Time   `json:"lockoutEnd"`
	LockoutEnabled       bool        `json:"lockoutEnabled"`
	AccessFailedCount    int         `json:"accessFailedCount"`
	Logins               []LoginInfo `json:"logins"`
	Claims               []Claim     `json:"claims"`
	Roles                []string    `json:"roles"`
}

// LoginInfo binds a user to an external login provider.
type LoginInfo struct {
	LoginProvider string `json:"loginProvider"`
	ProviderKey   string `json:"providerKey"`
}

// Claim is a type/value pair attached to a user.
type Claim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// NewUser creates a user with the given username and empty collections.
func NewUser(userName string) *User {
	u := &User{UserName: userName}
	u.normalize()
	return u
}

func (u *User) normalize() {
	if u.Logins == nil {
		u.Logins = []LoginInfo{}
	}
	if u.Claims == nil {
		u.Claims = []Claim{}
	}
	if u.Roles == nil {
		u.Roles = []string{}
	}
}

// HasLogin reports whether the user already carries the provider/key pair.
func (u *User) HasLogin(login LoginInfo) bool {
	for _, l := range u.Logins {
		if l.LoginProvider == login.LoginProvider && l.ProviderKey == login.ProviderKey {
			return true
		}
	}
	return false
}

// HasClaim reports whether the user already carries the type/value pair.
func (u *User) HasClaim(claim Claim) bool {
	for _, c := range u.Claims {
		if c.Type == claim.Type && c.Value == claim.Value {
			return true
		}
	}
	return false
}

// HasRole reports role membership. Comparison is case-sensitive.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsLockedOut reports whether lockout is enabled and LockoutEnd is after now.
func (u *User) IsLockedOut(now time.Time) bool {
	return u.LockoutEnabled && u.LockoutEnd.After(now)
}

// AccountID returns the user id.
func (u *User) AccountID() string { return u.ID }

// AccountName returns the username.
func (u *User) AccountName() string { return u.UserName }

// AccountEmail returns the email address.
func (u *User) AccountEmail() string { return u.Email }
