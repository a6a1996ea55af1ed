package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUserName(ctx context.Context, userName string) (*User, error)
	Close() error
}

// LoginStore manages external login bindings.
type LoginStore interface {
	UserStore
	AddLogin(ctx context.Context, user *User, login LoginInfo) error
	RemoveLogin(ctx context.Context, user *User, login LoginInfo) error
	GetLogins(ctx context.Context, user *User) ([]LoginInfo, error)
	FindByLogin(ctx context.Context, login LoginInfo) (*User, error)
}

// ClaimStore manages user claims.
type ClaimStore interface {
	UserStore
	AddClaim(ctx context.Context, user *User, claim Claim) error
	RemoveClaim(ctx context.Context, user *User, claim Claim) error
	GetClaims(ctx context.Context, user *User) ([]Claim, error)
}

// RoleStore manages role membership.
type RoleStore interface {
	UserStore
	AddToRole(ctx context.Context, user *User, role string) error
	RemoveFromRole(ctx context.Context, user *User, role string) error
	GetRoles(ctx context.Context, user *User) ([]string, error)
	IsInRole(ctx context.Context, user *User, role string) (bool, error)
}

// PasswordStore reads and writes the password hash. Setters do not persist.
type PasswordStore interface {
	UserStore
	SetPasswordHash(ctx context.Context, user *User, hash string) error
	GetPasswordHash(ctx context.Context, user *User) (string, error)
	HasPassword(ctx context.Context, user *User) (bool, error)
}

// SecurityStampStore reads and writes the security stamp. Setters do not persist.
type SecurityStampStore interface {
	UserStore
	SetSecurityStamp(ctx context.Context, user *User, stamp string) error
	GetSecurityStamp(ctx context.Context, user *User) (string, error)
}

// EmailStore reads and writes email fields and looks users up by email.
type EmailStore interface {
	UserStore
	SetEmail(ctx context.Context, user *User, email string) error
	GetEmail(ctx context.Context, user *User) (string, error)
	GetEmailConfirmed(ctx context.Context, user *User) (bool, error)
	SetEmailConfirmed(ctx context.Context, user *User, confirmed bool) error
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// LockoutStore tracks lockout state. Setters do not persist.
type LockoutStore interface {
	UserStore
	GetLockoutEnd(ctx context.Context, user *User) (time.Time, error)
	SetLockoutEnd(ctx context.Context, user *User, end time.Time) error
	IncrementAccessFailedCount(ctx context.Context, user *User) (int, error)
	ResetAccessFailedCount(ctx context.Context, user *User) error
	GetAccessFailedCount(ctx context.Context, user *User) (int, error)
	GetLockoutEnabled(ctx context.Context, user *User) (bool, error)
	SetLockoutEnabled(ctx context.Context, user *User, enabled bool) error
}

// TwoFactorStore reads and writes the two-factor flag. Setters do not persist.
type TwoFactorStore interface {
	UserStore
	SetTwoFactorEnabled(ctx context.Context, user *User, enabled bool) error
	GetTwoFactorEnabled(ctx context.Context, user *User) (bool, error)
}

// PhoneNumberStore reads and writes phone fields. Setters do not persist.
type PhoneNumberStore interface {
	UserStore
	SetPhoneNumber(ctx context.Context, user *User, phoneNumber string) error
	GetPhoneNumber(ctx context.Context, user *User) (string, error)
	GetPhoneNumberConfirmed(ctx context.Context, user *User) (bool, error)
	SetPhoneNumberConfirmed(ctx context.Context, user *User, confirmed bool) error
}

// QueryableUserStore exposes ad hoc queries over the store's partition.
type QueryableUserStore interface {
	UserStore
	Users(ctx context.Context, conditions ...Condition) ([]*User, error)
}
