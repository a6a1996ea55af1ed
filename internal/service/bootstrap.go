package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/identitystore/internal/logger"
	"github.com/dtroode/identitystore/internal/model"
	"github.com/dtroode/identitystore/internal/validation"
)

// ErrPolicyViolation is returned when a seeded account fails validation.
var ErrPolicyViolation = errors.New("account violates policy")

// BootstrapAccount describes an account created at startup when missing.
type BootstrapAccount struct {
	UserName string
	Email    string
	Password string
	Roles    []string
}

type bootstrapStore interface {
	model.RoleStore
	model.PasswordStore
	model.SecurityStampStore
}

// Bootstrap seeds accounts through the same policy checks as regular sign-ups.
type Bootstrap struct {
	store      bootstrapStore
	users      *validation.UserValidator
	passwords  *validation.PasswordValidator
	logger     *logger.Logger
	bcryptCost int
}

// NewBootstrap creates a seeder. A cost of zero uses bcrypt.DefaultCost.
func NewBootstrap(
	store bootstrapStore,
	users *validation.UserValidator,
	passwords *validation.PasswordValidator,
	logger *logger.Logger,
	bcryptCost int,
) *Bootstrap {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Bootstrap{
		store:      store,
		users:      users,
		passwords:  passwords,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Ensure creates the account unless a user with the same name exists, and
// returns the stored user.
func (b *Bootstrap) Ensure(ctx context.Context, account BootstrapAccount) (*model.User, error) {
	existing, err := b.store.FindByUserName(ctx, account.UserName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up bootstrap user: %w", err)
	}
	if existing != nil {
		b.logger.Info("Bootstrap: account already exists",
			"user_name", account.UserName,
			"user_id", existing.ID)
		return existing, nil
	}

	user := model.NewUser(account.UserName)
	user.Email = account.Email

	result, err := b.users.Validate(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to validate bootstrap user: %w", err)
	}
	errs := append([]string{}, result.Errors...)
	errs = append(errs, b.passwords.Validate(account.Password).Errors...)
	if len(errs) > 0 {
		b.logger.Warn("Bootstrap: account rejected by policy",
			"user_name", account.UserName,
			"violations", len(errs))
		return nil, fmt.Errorf("%w: %s", ErrPolicyViolation, validation.Failed(errs...).String())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), b.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := b.store.SetPasswordHash(ctx, user, string(hash)); err != nil {
		return nil, err
	}
	if err := b.store.SetSecurityStamp(ctx, user, NewSecurityStamp()); err != nil {
		return nil, err
	}

	if err := b.store.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create bootstrap user: %w", err)
	}
	for _, role := range account.Roles {
		if err := b.store.AddToRole(ctx, user, role); err != nil {
			return nil, fmt.Errorf("failed to add bootstrap user to role %s: %w", role, err)
		}
	}

	b.logger.Info("Bootstrap: account created",
		"user_name", user.UserName,
		"user_id", user.ID,
		"roles", user.Roles)

	return user, nil
}

// CheckPassword reports whether password matches the user's stored hash.
func CheckPassword(user *model.User, password string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
