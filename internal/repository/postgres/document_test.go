package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/identitystore/internal/model"
)

func newMockRepo(t *testing.T) (*DocumentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDocumentRepository(db, "users"), mock
}

func TestNewDocumentRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewDocumentRepository(db, "users")

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
	assert.Equal(t, "postgres:documents/users", repo.Address())
}

func TestDocumentRepository_Insert(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3::jsonb)`).
			WithArgs("users", "u1", `{"id":"u1","userName":"alice"}`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Insert(ctx, model.Document{"id": "u1", "userName": "alice"})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate id", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3::jsonb)`).
			WithArgs("users", "u1", sqlmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: uniqueViolation})

		err := repo.Insert(ctx, model.Document{"id": "u1"})
		assert.ErrorIs(t, err, model.ErrAlreadyExists)
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3::jsonb)`).
			WithArgs("users", "u1", sqlmock.AnyArg()).
			WillReturnError(errors.New("connection reset"))

		err := repo.Insert(ctx, model.Document{"id": "u1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert document")
	})
}

func TestDocumentRepository_Replace(t *testing.T) {
	ctx := context.Background()
	query := `UPDATE documents SET body = $3::jsonb, updated_at = NOW() WHERE collection = $1 AND id = $2`

	t.Run("success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(query).
			WithArgs("users", "u1", `{"emailConfirmed":true,"id":"u1"}`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Replace(ctx, model.Document{"id": "u1", "emailConfirmed": true})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing document", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(query).
			WithArgs("users", "u1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Replace(ctx, model.Document{"id": "u1"})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestDocumentRepository_Delete(t *testing.T) {
	ctx := context.Background()
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`

	repo, mock := newMockRepo(t)
	mock.ExpectExec(query).WithArgs("users", "u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs("users", "u2").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(ctx, "u1"))
	assert.ErrorIs(t, repo.Delete(ctx, "u2"), model.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_Get(t *testing.T) {
	ctx := context.Background()
	query := `SELECT body::text FROM documents WHERE collection = $1 AND id = $2`

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(query).WithArgs("users", "u1").
			WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`{"id":"u1","userName":"alice"}`)))

		doc, err := repo.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", doc.ID())
		assert.Equal(t, "alice", doc["userName"])
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(query).WithArgs("users", "u1").
			WillReturnRows(sqlmock.NewRows([]string{"body"}))

		doc, err := repo.Get(ctx, "u1")
		assert.Nil(t, doc)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestDocumentRepository_Find(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockRepo(t)

	query := `SELECT body::text FROM documents WHERE collection = $1` +
		` AND body->>($2::text) = $3 AND body->>($4::text) = $5 ORDER BY created_at, id LIMIT $6`
	mock.ExpectQuery(query).
		WithArgs("users", "email", "a@x.com", "entity", "identity", 1).
		WillReturnRows(sqlmock.NewRows([]string{"body"}).
			AddRow([]byte(`{"id":"u1","email":"a@x.com","entity":"identity"}`)))

	docs, err := repo.Find(ctx, model.Query{
		Conditions: []model.Condition{
			{Field: "email", Value: "a@x.com"},
			{Field: "entity", Value: "identity"},
		},
		Limit: 1,
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "u1", docs[0].ID())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildFindQuery_NoConditions(t *testing.T) {
	query, args := buildFindQuery("users", model.Query{})

	assert.Equal(t, `SELECT body::text FROM documents WHERE collection = $1 ORDER BY created_at, id`, query)
	assert.Equal(t, []any{"users"}, args)
}
