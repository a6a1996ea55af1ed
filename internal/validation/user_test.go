package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/identitystore/internal/mocks"
	"github.com/dtroode/identitystore/internal/model"
)

// nameOnly is an account without its own email.
type nameOnly struct{ id, name string }

func (a nameOnly) AccountID() string   { return a.id }
func (a nameOnly) AccountName() string { return a.name }

func newUser(id, name, email string) *model.User {
	u := model.NewUser(name)
	u.ID = id
	u.Email = email
	return u
}

func TestUserValidator_Success(t *testing.T) {
	ctx := context.Background()
	finder := mocks.NewUserFinder(t)
	finder.On("FindByUserName", mock.Anything, "alice").Return(nil, nil)
	finder.On("FindByEmail", mock.Anything, "alice@x.com").Return(nil, nil)

	v := NewUserValidator(finder, DefaultMessages())
	v.AllowOnlyAlphanumericUserNames = true
	v.RequireUniqueEmail = true

	res, err := v.Validate(ctx, newUser("u1", "alice", "alice@x.com"))
	require.NoError(t, err)
	assert.True(t, res.Succeeded())
}

func TestUserValidator_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	finder := mocks.NewUserFinder(t)
	finder.On("FindByUserName", mock.Anything, "bob").Return(nil, nil)
	finder.On("FindByEmail", mock.Anything, "x@y.com").Return(newUser("u2", "carol", "x@y.com"), nil)

	v := NewUserValidator(finder, DefaultMessages())
	v.RequireUniqueEmail = true

	res, err := v.Validate(ctx, newUser("u1", "bob", "x@y.com"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Email 'x@y.com' is already taken."}, res.Errors)
}

func TestUserValidator_OwnEmailAndName(t *testing.T) {
	ctx := context.Background()
	self := newUser("u1", "bob", "x@y.com")
	finder := mocks.NewUserFinder(t)
	finder.On("FindByUserName", mock.Anything, "bob").Return(self, nil)
	finder.On("FindByEmail", mock.Anything, "x@y.com").Return(self, nil)

	v := NewUserValidator(finder, DefaultMessages())
	v.RequireUniqueEmail = true

	res, err := v.Validate(ctx, newUser("u1", "bob", "x@y.com"))
	require.NoError(t, err)
	assert.True(t, res.Succeeded())
}

func TestUserValidator_DuplicateName(t *testing.T) {
	ctx := context.Background()
	finder := mocks.NewUserFinder(t)
	finder.On("FindByUserName", mock.Anything, "bob").Return(newUser("u2", "bob", ""), nil)

	v := NewUserValidator(finder, DefaultMessages())

	res, err := v.Validate(ctx, newUser("u1", "bob", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name bob is already taken."}, res.Errors)
}

func TestUserValidator_InvalidUserName(t *testing.T) {
	v := NewUserValidator(mocks.NewUserFinder(t), DefaultMessages())
	v.AllowOnlyAlphanumericUserNames = true

	res, err := v.Validate(context.Background(), newUser("u1", "bob smith", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"User name bob smith is invalid, can only contain letters or digits."}, res.Errors)
}

func TestUserValidator_BlankValues(t *testing.T) {
	v := NewUserValidator(mocks.NewUserFinder(t), DefaultMessages())
	v.RequireUniqueEmail = true

	res, err := v.Validate(context.Background(), newUser("u1", "  ", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"User name cannot be empty.", "Email cannot be empty."}, res.Errors)
}

func TestUserValidator_InvalidEmail(t *testing.T) {
	finder := mocks.NewUserFinder(t)
	finder.On("FindByUserName", mock.Anything, "bob").Return(nil, nil)

	v := NewUserValidator(finder, DefaultMessages())
	v.RequireUniqueEmail = true

	res, err := v.Validate(context.Background(), newUser("u1", "bob", "bob@"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Email 'bob@' is invalid."}, res.Errors)
}

func TestUserValidator_NameUsedAsEmail(t *testing.T) {
	finder := mocks.NewUserFinder(t)
	finder.On("FindByUserName", mock.Anything, "bob@x.com").Return(nil, nil)
	finder.On("FindByEmail", mock.Anything, "bob@x.com").Return(nil, nil)

	v := NewUserValidator(finder, DefaultMessages())
	v.RequireUniqueEmail = true

	res, err := v.Validate(context.Background(), nameOnly{id: "u1", name: "bob@x.com"})
	require.NoError(t, err)
	assert.True(t, res.Succeeded())
}

func TestUserValidator_NilAccount(t *testing.T) {
	v := NewUserValidator(mocks.NewUserFinder(t), DefaultMessages())

	_, err := v.Validate(context.Background(), nil)
	assert.ErrorIs(t, err, model.ErrNilArgument)

	var u *model.User
	_, err = v.Validate(context.Background(), u)
	assert.ErrorIs(t, err, model.ErrNilArgument)
}

func TestUserValidator_LookupError(t *testing.T) {
	boom := errors.New("db down")
	finder := mocks.NewUserFinder(t)
	finder.On("FindByUserName", mock.Anything, "bob").Return(nil, boom)

	v := NewUserValidator(finder, DefaultMessages())

	_, err := v.Validate(context.Background(), newUser("u1", "bob", ""))
	assert.ErrorIs(t, err, boom)
}

func TestUserValidator_Czech(t *testing.T) {
	finder := mocks.NewUserFinder(t)
	finder.On("FindByUserName", mock.Anything, "bob").Return(newUser("u2", "bob", ""), nil)

	tags, err := ParseLocale("cs-CZ,en;q=0.5")
	require.NoError(t, err)
	v := NewUserValidator(finder, MessagesFor(tags...))

	res, err := v.Validate(context.Background(), newUser("u1", "bob", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"Uživatelské jméno bob již existuje."}, res.Errors)
}
