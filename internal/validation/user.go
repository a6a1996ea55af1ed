package validation

import (
	"context"
	"net/mail"
	"regexp"
	"strings"

	"github.com/dtroode/identitystore/internal/model"
)

var userNamePattern = regexp.MustCompile(`^[A-Za-z0-9@_.]+$`)

// Account is the candidate checked by UserValidator.
type Account interface {
	AccountID() string
	AccountName() string
}

// EmailAccount is an Account exposing its own email address. Accounts that do
// not implement it are validated using their name as the email.
type EmailAccount interface {
	Account
	AccountEmail() string
}

// UserFinder looks up existing users for duplicate detection.
type UserFinder interface {
	FindByUserName(ctx context.Context, userName string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// UserValidator checks usernames and emails, including uniqueness.
type UserValidator struct {
	finder   UserFinder
	Messages Messages

	AllowOnlyAlphanumericUserNames bool
	RequireUniqueEmail             bool
}

// NewUserValidator creates a validator backed by the given lookups.
func NewUserValidator(finder UserFinder, messages Messages) *UserValidator {
	return &UserValidator{finder: finder, Messages: messages}
}

// Validate runs the username check and, when enabled, the email check.
// Policy violations are reported in the result; the error is reserved for a
// nil account and lookup failures.
func (v *UserValidator) Validate(ctx context.Context, account Account) (Result, error) {
	if isNil(account) {
		return Result{}, model.NilArgument("account")
	}

	var errs []string

	userErrs, err := v.validateUserName(ctx, account)
	if err != nil {
		return Result{}, err
	}
	errs = append(errs, userErrs...)

	if v.RequireUniqueEmail {
		emailErrs, err := v.validateEmail(ctx, account)
		if err != nil {
			return Result{}, err
		}
		errs = append(errs, emailErrs...)
	}

	if len(errs) == 0 {
		return Success, nil
	}
	return Failed(errs...), nil
}

func (v *UserValidator) validateUserName(ctx context.Context, account Account) ([]string, error) {
	name := account.AccountName()

	if isBlank(name) {
		return []string{v.Messages.UserNameTooShort}, nil
	}
	if v.AllowOnlyAlphanumericUserNames && !userNamePattern.MatchString(name) {
		return []string{format(v.Messages.InvalidUserName, name)}, nil
	}

	owner, err := v.finder.FindByUserName(ctx, name)
	if err != nil {
		return nil, err
	}
	if owner != nil && owner.ID != account.AccountID() {
		return []string{format(v.Messages.DuplicateName, name)}, nil
	}
	return nil, nil
}

func (v *UserValidator) validateEmail(ctx context.Context, account Account) ([]string, error) {
	email := account.AccountName()
	if ea, ok := account.(EmailAccount); ok {
		email = ea.AccountEmail()
	}

	if isBlank(email) {
		return []string{v.Messages.EmailTooShort}, nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return []string{format(v.Messages.InvalidEmail, email)}, nil
	}

	owner, err := v.finder.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if owner != nil && owner.ID != account.AccountID() {
		return []string{format(v.Messages.DuplicateEmail, email)}, nil
	}
	return nil, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isNil(account Account) bool {
	if account == nil {
		return true
	}
	u, ok := account.(*model.User)
	return ok && u == nil
}
