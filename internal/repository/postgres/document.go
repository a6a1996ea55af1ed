package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/identitystore/internal/model"
)

const uniqueViolation = "23505"

var _ model.DocumentCollection = (*DocumentRepository)(nil)

// DocumentRepository stores documents of one logical collection as JSONB rows
// of the shared documents table.
type DocumentRepository struct {
	db         *sql.DB
	collection string
}

func NewDocumentRepository(db *sql.DB, collection string) *DocumentRepository {
	return &DocumentRepository{
		db:         db,
		collection: collection,
	}
}

func (r *DocumentRepository) Insert(ctx context.Context, doc model.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	query := `INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3::jsonb)`

	_, err = r.db.ExecContext(ctx, query, r.collection, doc.ID(), string(body))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert document: %w", err)
	}

	return nil
}

func (r *DocumentRepository) Replace(ctx context.Context, doc model.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	query := `UPDATE documents SET body = $3::jsonb, updated_at = NOW() WHERE collection = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, r.collection, doc.ID(), string(body))
	if err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}

	return requireAffected(res)
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, r.collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return requireAffected(res)
}

func (r *DocumentRepository) Get(ctx context.Context, id string) (model.Document, error) {
	query := `SELECT body::text FROM documents WHERE collection = $1 AND id = $2`

	var body []byte
	err := r.db.QueryRowContext(ctx, query, r.collection, id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return model.DecodeDocument(body)
}

func (r *DocumentRepository) Find(ctx context.Context, q model.Query) ([]model.Document, error) {
	query, args := buildFindQuery(r.collection, q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc, err := model.DecodeDocument(body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}

	return docs, nil
}

func (r *DocumentRepository) Address() string {
	return "postgres:documents/" + r.collection
}

func (r *DocumentRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// buildFindQuery conjoins one parameterized equality clause per condition.
// Field names are bound as parameters too.
func buildFindQuery(collection string, q model.Query) (string, []any) {
	var b strings.Builder
	args := []any{collection}

	b.WriteString(`SELECT body::text FROM documents WHERE collection = $1`)
	for _, c := range q.Conditions {
		args = append(args, c.Field, c.Value)
		fmt.Fprintf(&b, ` AND body->>($%d::text) = $%d`, len(args)-1, len(args))
	}
	b.WriteString(` ORDER BY created_at, id`)
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&b, ` LIMIT $%d`, len(args))
	}

	return b.String(), args
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
