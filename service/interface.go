package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shelfdb/shelfdb/record"
)

var (
	ErrorCollectionNotFound      = errors.New("collection not found")
	ErrorCollectionAlreadyExists = errors.New("collection already exists")
	ErrorDocumentNotFound        = errors.New("document not found")
)

// Collection is the api-facing summary of a collection.
type Collection struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// FindQuery narrows a fullscan: a connor filter document plus skip/limit
// pagination. A nil filter matches everything.
type FindQuery struct {
	Filter map[string]any `json:"filter"`
	Skip   int            `json:"skip"`
	Limit  int            `json:"limit"`
}

type Servicer interface {
	CreateCollection(ctx context.Context, name string) (*Collection, error)
	GetCollection(ctx context.Context, name string) (*Collection, error)
	ListCollections(ctx context.Context) ([]*Collection, error)
	DropCollection(ctx context.Context, name string) (bool, error)

	Insert(ctx context.Context, name string, fields map[string]any) (record.Document, error)
	Find(ctx context.Context, name string, query FindQuery, emit func(record.Document)) error
	GetDocument(ctx context.Context, name string, id uuid.UUID) (record.Document, error)
	UpdateByID(ctx context.Context, name string, id uuid.UUID, doc record.Document) (bool, error)
	RemoveByID(ctx context.Context, name string, id uuid.UUID) (bool, error)
	RemoveMatching(ctx context.Context, name string, filter map[string]any) ([]record.Document, error)

	Persist(ctx context.Context, name string) error
	ClearAndPersist(ctx context.Context, name string) error
	PurgeCollection(ctx context.Context, name string) (bool, error)
	CopyCollection(ctx context.Context, name string) (string, bool, error)
}
