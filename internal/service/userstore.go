package service

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dtroode/identitystore/internal/logger"
	"github.com/dtroode/identitystore/internal/model"
)

var (
	_ model.LoginStore         = (*UserStore)(nil)
	_ model.ClaimStore         = (*UserStore)(nil)
	_ model.RoleStore          = (*UserStore)(nil)
	_ model.PasswordStore      = (*UserStore)(nil)
	_ model.SecurityStampStore = (*UserStore)(nil)
	_ model.EmailStore         = (*UserStore)(nil)
	_ model.LockoutStore       = (*UserStore)(nil)
	_ model.TwoFactorStore     = (*UserStore)(nil)
	_ model.PhoneNumberStore   = (*UserStore)(nil)
	_ model.QueryableUserStore = (*UserStore)(nil)
)

// UserStore persists users as documents in a collection partition.
//
// Field setters only change the in-memory user. Nothing is written until
// Create, Update or one of the login/claim/role mutators is called, so callers
// can batch several setters into one Update. Updates replace the whole
// document without a concurrency check: the last writer wins.
type UserStore struct {
	collection model.DocumentCollection
	entityType model.EntityType
	logger     *logger.Logger
	newID      func() string
	closed     atomic.Bool
}

// UserStoreOption configures a UserStore.
type UserStoreOption func(*UserStore)

// WithIDGenerator replaces the random UUID generator used on Create.
func WithIDGenerator(gen func() string) UserStoreOption {
	return func(s *UserStore) { s.newID = gen }
}

// WithoutIDGeneration makes Create insert users with whatever id they carry.
func WithoutIDGeneration() UserStoreOption {
	return func(s *UserStore) { s.newID = nil }
}

// NewUserStore creates a store over the given collection. Queries and written
// documents are scoped to entityType when it is configured.
func NewUserStore(collection model.DocumentCollection, entityType model.EntityType, logger *logger.Logger, opts ...UserStoreOption) *UserStore {
	s := &UserStore{
		collection: collection,
		entityType: entityType,
		logger:     logger,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close marks the store closed. Further calls fail with model.ErrDisposed.
func (s *UserStore) Close() error {
	s.closed.Store(true)
	return nil
}

func (s *UserStore) check(user *model.User) error {
	if s.closed.Load() {
		return model.ErrDisposed
	}
	if user == nil {
		return model.NilArgument("user")
	}
	return nil
}

func (s *UserStore) checkOpen() error {
	if s.closed.Load() {
		return model.ErrDisposed
	}
	return nil
}

// Create inserts a new user, assigning an id when it has none.
func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	if err := s.check(user); err != nil {
		return err
	}

	if user.ID == "" && s.newID != nil {
		user.ID = s.newID()
	}

	doc, err := s.document(user)
	if err != nil {
		return err
	}

	if err := s.collection.Insert(ctx, doc); err != nil {
		s.logger.Error("UserStore: failed to create user",
			"user_id", user.ID,
			"collection", s.collection.Address(),
			"error", err.Error())
		return err
	}

	s.logger.Debug("UserStore: user created",
		"user_id", user.ID)

	return nil
}

// Update replaces the stored document with the in-memory user.
func (s *UserStore) Update(ctx context.Context, user *model.User) error {
	if err := s.check(user); err != nil {
		return err
	}
	return s.replace(ctx, user)
}

func (s *UserStore) replace(ctx context.Context, user *model.User) error {
	doc, err := s.document(user)
	if err != nil {
		return err
	}

	if err := s.collection.Replace(ctx, doc); err != nil {
		s.logger.Error("UserStore: failed to replace user",
			"user_id", user.ID,
			"collection", s.collection.Address(),
			"error", err.Error())
		return err
	}

	s.logger.Debug("UserStore: user replaced",
		"user_id", user.ID)

	return nil
}

// Delete removes the user if it still exists. Deleting a missing user succeeds.
func (s *UserStore) Delete(ctx context.Context, user *model.User) error {
	if err := s.check(user); err != nil {
		return err
	}

	existing, err := s.get(ctx, user.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		s.logger.Debug("UserStore: user already deleted",
			"user_id", user.ID)
		return nil
	}

	if err := s.collection.Delete(ctx, existing.ID); err != nil {
		s.logger.Error("UserStore: failed to delete user",
			"user_id", user.ID,
			"error", err.Error())
		return err
	}

	return nil
}

// FindByID returns the user with the given id, or nil when there is none.
func (s *UserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, model.NilArgument("id")
	}
	return s.get(ctx, id)
}

// FindByUserName returns the first user in the partition with the exact name.
func (s *UserStore) FindByUserName(ctx context.Context, userName string) (*model.User, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if userName == "" {
		return nil, model.NilArgument("userName")
	}
	return s.findFirst(ctx, model.Condition{Field: "userName", Value: userName})
}

// FindByEmail returns the first user in the partition with the exact email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, model.NilArgument("email")
	}
	return s.findFirst(ctx, model.Condition{Field: "email", Value: email})
}

// FindByLogin returns the first user bound to the provider/key pair.
// It scans the whole partition.
func (s *UserStore) FindByLogin(ctx context.Context, login model.LoginInfo) (*model.User, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if login.LoginProvider == "" || login.ProviderKey == "" {
		return nil, model.NilArgument("login")
	}

	users, err := s.find(ctx, model.Query{Conditions: s.scope()})
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.HasLogin(login) {
			return u, nil
		}
	}
	return nil, nil
}

// Users returns every user in the partition matching the conditions.
func (s *UserStore) Users(ctx context.Context, conditions ...model.Condition) ([]*model.User, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.find(ctx, model.Query{Conditions: s.scope(conditions...)})
}

// AddLogin binds an external login and persists the user. Duplicates are ignored.
func (s *UserStore) AddLogin(ctx context.Context, user *model.User, login model.LoginInfo) error {
	if err := s.check(user); err != nil {
		return err
	}
	if login.LoginProvider == "" || login.ProviderKey == "" {
		return model.NilArgument("login")
	}

	if !user.HasLogin(login) {
		user.Logins = append(user.Logins, login)
	}
	return s.replace(ctx, user)
}

// RemoveLogin drops the provider/key binding and persists the user.
func (s *UserStore) RemoveLogin(ctx context.Context, user *model.User, login model.LoginInfo) error {
	if err := s.check(user); err != nil {
		return err
	}
	if login.LoginProvider == "" || login.ProviderKey == "" {
		return model.NilArgument("login")
	}

	user.Logins = slices.DeleteFunc(user.Logins, func(l model.LoginInfo) bool {
		return l.LoginProvider == login.LoginProvider && l.ProviderKey == login.ProviderKey
	})
	return s.replace(ctx, user)
}

// GetLogins returns a copy of the user's logins.
func (s *UserStore) GetLogins(_ context.Context, user *model.User) ([]model.LoginInfo, error) {
	if err := s.check(user); err != nil {
		return nil, err
	}
	return slices.Clone(user.Logins), nil
}

// AddClaim attaches a claim and persists the user. Duplicates are ignored.
func (s *UserStore) AddClaim(ctx context.Context, user *model.User, claim model.Claim) error {
	if err := s.check(user); err != nil {
		return err
	}
	if claim.Type == "" {
		return model.NilArgument("claim")
	}

	if !user.HasClaim(claim) {
		user.Claims = append(user.Claims, claim)
	}
	return s.replace(ctx, user)
}

// RemoveClaim drops every matching claim and persists the user.
func (s *UserStore) RemoveClaim(ctx context.Context, user *model.User, claim model.Claim) error {
	if err := s.check(user); err != nil {
		return err
	}
	if claim.Type == "" {
		return model.NilArgument("claim")
	}

	user.Claims = slices.DeleteFunc(user.Claims, func(c model.Claim) bool {
		return c.Type == claim.Type && c.Value == claim.Value
	})
	return s.replace(ctx, user)
}

// ReplaceClaim swaps every occurrence of claim with newClaim and persists the user.
func (s *UserStore) ReplaceClaim(ctx context.Context, user *model.User, claim, newClaim model.Claim) error {
	if err := s.check(user); err != nil {
		return err
	}
	if claim.Type == "" || newClaim.Type == "" {
		return model.NilArgument("claim")
	}

	user.Claims = slices.DeleteFunc(user.Claims, func(c model.Claim) bool {
		return c.Type == claim.Type && c.Value == claim.Value
	})
	if !user.HasClaim(newClaim) {
		user.Claims = append(user.Claims, newClaim)
	}
	return s.replace(ctx, user)
}

// GetClaims returns a copy of the user's claims.
func (s *UserStore) GetClaims(_ context.Context, user *model.User) ([]model.Claim, error) {
	if err := s.check(user); err != nil {
		return nil, err
	}
	return slices.Clone(user.Claims), nil
}

// AddToRole adds the role and persists the user. Duplicates are ignored.
func (s *UserStore) AddToRole(ctx context.Context, user *model.User, role string) error {
	if err := s.check(user); err != nil {
		return err
	}
	if role == "" {
		return model.NilArgument("role")
	}

	if !user.HasRole(role) {
		user.Roles = append(user.Roles, role)
	}
	return s.replace(ctx, user)
}

// RemoveFromRole removes the role and persists the user.
func (s *UserStore) RemoveFromRole(ctx context.Context, user *model.User, role string) error {
	if err := s.check(user); err != nil {
		return err
	}
	if role == "" {
		return model.NilArgument("role")
	}

	user.Roles = slices.DeleteFunc(user.Roles, func(r string) bool { return r == role })
	return s.replace(ctx, user)
}

// GetRoles returns a copy of the user's roles.
func (s *UserStore) GetRoles(_ context.Context, user *model.User) ([]string, error) {
	if err := s.check(user); err != nil {
		return nil, err
	}
	return slices.Clone(user.Roles), nil
}

// IsInRole reports case-sensitive role membership.
func (s *UserStore) IsInRole(_ context.Context, user *model.User, role string) (bool, error) {
	if err := s.check(user); err != nil {
		return false, err
	}
	if role == "" {
		return false, model.NilArgument("role")
	}
	return user.HasRole(role), nil
}

func (s *UserStore) scope(conditions ...model.Condition) []model.Condition {
	out := slices.Clone(conditions)
	if s.entityType.Configured() {
		out = append(out, s.entityType.Condition())
	}
	return out
}

func (s *UserStore) document(user *model.User) (model.Document, error) {
	doc, err := model.NewDocument(user)
	if err != nil {
		return nil, err
	}
	doc.Stamp(s.entityType)
	return doc, nil
}

func (s *UserStore) get(ctx context.Context, id string) (*model.User, error) {
	doc, err := s.collection.Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return doc.User()
}

func (s *UserStore) findFirst(ctx context.Context, condition model.Condition) (*model.User, error) {
	users, err := s.find(ctx, model.Query{Conditions: s.scope(condition), Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}

func (s *UserStore) find(ctx context.Context, query model.Query) ([]*model.User, error) {
	docs, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(docs))
	for _, doc := range docs {
		u, err := doc.User()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
