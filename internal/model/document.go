package model

import (
	"context"
	"encoding/json"
	"fmt"
)

// DocumentCollection is the connection contract every storage backend satisfies.
// Documents are addressed by their "id" field.
type DocumentCollection interface {
	Insert(ctx context.Context, doc Document) error
	Replace(ctx context.Context, doc Document) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Document, error)
	Find(ctx context.Context, query Query) ([]Document, error)
	Address() string
}

// Pinger is implemented by backends able to report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Document is a JSON-shaped document as stored by a collection.
type Document map[string]any

// Condition is an equality filter on a top-level document field.
type Condition struct {
	Field string
	Value string
}

// Query selects documents matching all conditions. Limit 0 means no limit.
type Query struct {
	Conditions []Condition
	Limit      int
}

// EntityType is the discriminator field and value tagging documents of one kind
// inside a shared collection. The zero value disables scoping.
type EntityType struct {
	Field string
	Value string
}

// Configured reports whether a discriminator is set.
func (e EntityType) Configured() bool {
	return e.Field != ""
}

// Condition returns the equality filter selecting this entity type.
func (e EntityType) Condition() Condition {
	return Condition{Field: e.Field, Value: e.Value}
}

// NewDocument encodes a user into a document.
func NewDocument(u *User) (Document, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	return doc, nil
}

// DecodeDocument parses raw JSON into a document.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}

// ID returns the document id or an empty string.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// Stamp writes the discriminator value into the document.
func (d Document) Stamp(e EntityType) {
	if e.Configured() {
		d[e.Field] = e.Value
	}
}

// Matches reports whether every condition holds for the document.
func (d Document) Matches(conditions []Condition) bool {
	for _, c := range conditions {
		v, ok := d[c.Field].(string)
		if !ok || v != c.Value {
			return false
		}
	}
	return true
}

// User decodes the document into a user.
func (d Document) User() (*User, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	u.normalize()
	return &u, nil
}
