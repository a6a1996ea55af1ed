package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identitystore/internal/model"
)

// The accessors below read or write the in-memory user only. Persist the
// changes with Update.

// SetPasswordHash sets the password hash. An empty hash removes the password.
func (s *UserStore) SetPasswordHash(_ context.Context, user *model.User, hash string) error {
	if err := s.check(user); err != nil {
		return err
	}
	user.PasswordHash = hash
	return nil
}

func (s *UserStore) GetPasswordHash(_ context.Context, user *model.User) (string, error) {
	if err := s.check(user); err != nil {
		return "", err
	}
	return user.PasswordHash, nil
}

// HasPassword reports whether a password hash is set.
func (s *UserStore) HasPassword(_ context.Context, user *model.User) (bool, error) {
	if err := s.check(user); err != nil {
		return false, err
	}
	return user.PasswordHash != "", nil
}

func (s *UserStore) SetSecurityStamp(_ context.Context, user *model.User, stamp string) error {
	if err := s.check(user); err != nil {
		return err
	}
	user.SecurityStamp = stamp
	return nil
}

func (s *UserStore) GetSecurityStamp(_ context.Context, user *model.User) (string, error) {
	if err := s.check(user); err != nil {
		return "", err
	}
	return user.SecurityStamp, nil
}

// NewSecurityStamp returns a fresh random stamp for credential changes.
func NewSecurityStamp() string {
	return uuid.NewString()
}

func (s *UserStore) SetEmail(_ context.Context, user *model.User, email string) error {
	if err := s.check(user); err != nil {
		return err
	}
	if email == "" {
		return model.NilArgument("email")
	}
	user.Email = email
	return nil
}

func (s *UserStore) GetEmail(_ context.Context, user *model.User) (string, error) {
	if err := s.check(user); err != nil {
		return "", err
	}
	return user.Email, nil
}

func (s *UserStore) GetEmailConfirmed(_ context.Context, user *model.User) (bool, error) {
	if err := s.check(user); err != nil {
		return false, err
	}
	return user.EmailConfirmed, nil
}

func (s *UserStore) SetEmailConfirmed(_ context.Context, user *model.User, confirmed bool) error {
	if err := s.check(user); err != nil {
		return err
	}
	user.EmailConfirmed = confirmed
	return nil
}

// GetLockoutEnd returns the lockout end. A time at or before now means not locked out.
func (s *UserStore) GetLockoutEnd(_ context.Context, user *model.User) (time.Time, error) {
	if err := s.check(user); err != nil {
		return time.Time{}, err
	}
	return user.LockoutEnd, nil
}

func (s *UserStore) SetLockoutEnd(_ context.Context, user *model.User, end time.Time) error {
	if err := s.check(user); err != nil {
		return err
	}
	user.LockoutEnd = end
	return nil
}

// IncrementAccessFailedCount bumps the failure counter and returns the new value.
func (s *UserStore) IncrementAccessFailedCount(_ context.Context, user *model.User) (int, error) {
	if err := s.check(user); err != nil {
		return 0, err
	}
	user.AccessFailedCount++
	return user.AccessFailedCount, nil
}

func (s *UserStore) ResetAccessFailedCount(_ context.Context, user *model.User) error {
	if err := s.check(user); err != nil {
		return err
	}
	user.AccessFailedCount = 0
	return nil
}

func (s *UserStore) GetAccessFailedCount(_ context.Context, user *model.User) (int, error) {
	if err := s.check(user); err != nil {
		return 0, err
	}
	return user.AccessFailedCount, nil
}

func (s *UserStore) GetLockoutEnabled(_ context.Context, user *model.User) (bool, error) {
	if err := s.check(user); err != nil {
		return false, err
	}
	return user.LockoutEnabled, nil
}

func (s *UserStore) SetLockoutEnabled(_ context.Context, user *model.User, enabled bool) error {
	if err := s.check(user); err != nil {
		return err
	}
	user.LockoutEnabled = enabled
	return nil
}

func (s *UserStore) SetTwoFactorEnabled(_ context.Context, user *model.User, enabled bool) error {
	if err := s.check(user); err != nil {
		return err
	}
	user.TwoFactorEnabled = enabled
	return nil
}

func (s *UserStore) GetTwoFactorEnabled(_ context.Context, user *model.User) (bool, error) {
	if err := s.check(user); err != nil {
		return false, err
	}
	return user.TwoFactorEnabled, nil
}

func (s *UserStore) SetPhoneNumber(_ context.Context, user *model.User, phoneNumber string) error {
	if err := s.check(user); err != nil {
		return err
	}
	if phoneNumber == "" {
		return model.NilArgument("phoneNumber")
	}
	user.PhoneNumber = phoneNumber
	return nil
}

func (s *UserStore) GetPhoneNumber(_ context.Context, user *model.User) (string, error) {
	if err := s.check(user); err != nil {
		return "", err
	}
	return user.PhoneNumber, nil
}

func (s *UserStore) GetPhoneNumberConfirmed(_ context.Context, user *model.User) (bool, error) {
	if err := s.check(user); err != nil {
		return false, err
	}
	return user.PhoneNumberConfirmed, nil
}

func (s *UserStore) SetPhoneNumberConfirmed(_ context.Context, user *model.User, confirmed bool) error {
	if err := s.check(user); err != nil {
		return err
	}
	user.PhoneNumberConfirmed = confirmed
	return nil
}
