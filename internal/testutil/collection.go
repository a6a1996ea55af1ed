package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dtroode/identitystore/internal/model"
)

var _ model.DocumentCollection = (*Collection)(nil)

// Collection is an in-memory document collection for tests. Documents are kept
// serialized so callers never share state with the stored copy.
type Collection struct {
	mu    sync.Mutex
	ids   []string
	items map[string][]byte
}

// NewCollection creates an empty in-memory collection.
func NewCollection() *Collection {
	return &Collection{items: map[string][]byte{}}
}

func (c *Collection) Insert(_ context.Context, doc model.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := doc.ID()
	if _, ok := c.items[id]; ok {
		return model.ErrAlreadyExists
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	c.items[id] = data
	c.ids = append(c.ids, id)
	return nil
}

func (c *Collection) Replace(_ context.Context, doc model.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := doc.ID()
	if _, ok := c.items[id]; !ok {
		return model.ErrNotFound
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	c.items[id] = data
	return nil
}

func (c *Collection) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return model.ErrNotFound
	}
	delete(c.items, id)
	for i, existing := range c.ids {
		if existing == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (c *Collection) Get(_ context.Context, id string) (model.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.items[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return model.DecodeDocument(data)
}

func (c *Collection) Find(_ context.Context, query model.Query) ([]model.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []model.Document
	for _, id := range c.ids {
		doc, err := model.DecodeDocument(c.items[id])
		if err != nil {
			return nil, err
		}
		if !doc.Matches(query.Conditions) {
			continue
		}
		out = append(out, doc)
		if query.Limit > 0 && len(out) == query.Limit {
			break
		}
	}
	return out, nil
}

func (c *Collection) Address() string {
	return "memory"
}

// Len returns the number of stored documents.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
