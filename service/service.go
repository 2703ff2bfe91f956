// Package service owns the live Document collections behind the HTTP
// surface. Collection instances provide no internal synchronization, so the
// service serializes access with one mutex per collection. Mutating
// operations persist before returning.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/SierraSoftworks/connor"
	"github.com/google/uuid"

	"github.com/shelfdb/shelfdb/collection"
	"github.com/shelfdb/shelfdb/database"
	"github.com/shelfdb/shelfdb/record"
)

type Service struct {
	db *database.Database

	mutex   sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mutex sync.Mutex
	col   *collection.Collection[record.Document]
}

func NewService(db *database.Database) *Service {
	return &Service{
		db:      db,
		entries: map[string]*entry{},
	}
}

// lookup returns the live collection for name, loading it on first use.
// When create is false a missing backing file is ErrorCollectionNotFound.
// The cache key is lowercased to match the file name resolution, so every
// casing of a name addresses the same live instance.
func (s *Service) lookup(ctx context.Context, name string, create bool) (*entry, error) {
	name = strings.ToLower(name)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if e, ok := s.entries[name]; ok {
		return e, nil
	}

	if !create && !s.db.Exists(name) {
		return nil, ErrorCollectionNotFound
	}

	col, err := database.GetCollection[record.Document](ctx, s.db, name)
	if err != nil {
		return nil, err
	}

	e := &entry{col: col}
	s.entries[name] = e
	return e, nil
}

// evict drops the cached instance so the next access reloads from disk.
func (s *Service) evict(name string) {
	s.mutex.Lock()
	delete(s.entries, strings.ToLower(name))
	s.mutex.Unlock()
}

func (s *Service) CreateCollection(ctx context.Context, name string) (*Collection, error) {
	name = strings.ToLower(name)

	if s.db.Exists(name) {
		return nil, ErrorCollectionAlreadyExists
	}

	e, err := s.lookup(ctx, name, true)
	if err != nil {
		return nil, err
	}

	return &Collection{Name: name, Total: e.col.Len()}, nil
}

func (s *Service) GetCollection(ctx context.Context, name string) (*Collection, error) {
	name = strings.ToLower(name)

	e, err := s.lookup(ctx, name, false)
	if err != nil {
		return nil, err
	}

	e.mutex.Lock()
	total := e.col.Len()
	e.mutex.Unlock()

	return &Collection{Name: name, Total: total}, nil
}

func (s *Service) ListCollections(ctx context.Context) ([]*Collection, error) {

	result := []*Collection{}
	for _, name := range s.db.ListCollections() {
		col, err := s.GetCollection(ctx, name)
		if err != nil {
			return nil, err
		}
		result = append(result, col)
	}

	return result, nil
}

func (s *Service) DropCollection(ctx context.Context, name string) (bool, error) {
	s.evict(name)
	return s.db.DropCollection(name)
}

func (s *Service) Insert(ctx context.Context, name string, fields map[string]any) (record.Document, error) {

	e, err := s.lookup(ctx, name, true)
	if err != nil {
		return nil, err
	}

	doc := record.NewDocument(fields)

	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.col.Insert(doc)
	if err := e.col.Write(ctx); err != nil {
		return nil, err
	}

	return doc, nil
}

func (s *Service) Find(ctx context.Context, name string, query FindQuery, emit func(record.Document)) error {

	e, err := s.lookup(ctx, name, false)
	if err != nil {
		return err
	}

	hasFilter := len(query.Filter) > 0
	skip := query.Skip
	limit := query.Limit

	e.mutex.Lock()
	defer e.mutex.Unlock()

	for _, doc := range e.col.Rows() {

		if limit == 0 {
			break
		}

		if hasFilter {
			match, err := connor.Match(query.Filter, map[string]any(doc))
			if err != nil {
				return fmt.Errorf("match: %w", err)
			}
			if !match {
				continue
			}
		}

		if skip > 0 {
			skip--
			continue
		}

		limit--
		emit(doc)
	}

	return nil
}

// GetDocument locates a document by identifier with a linear scan.
func (s *Service) GetDocument(ctx context.Context, name string, id uuid.UUID) (record.Document, error) {

	e, err := s.lookup(ctx, name, false)
	if err != nil {
		return nil, err
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	for _, doc := range e.col.Rows() {
		if doc.ID() == id {
			return doc, nil
		}
	}

	return nil, ErrorDocumentNotFound
}

func (s *Service) UpdateByID(ctx context.Context, name string, id uuid.UUID, doc record.Document) (bool, error) {

	e, err := s.lookup(ctx, name, false)
	if err != nil {
		return false, err
	}

	// The replacement keeps the addressed identity
	replacement := record.Document{}
	for k, v := range doc {
		replacement[k] = v
	}
	replacement["id"] = id.String()

	e.mutex.Lock()
	defer e.mutex.Unlock()

	if !e.col.UpdateByID(id, replacement) {
		return false, nil
	}

	return true, e.col.Write(ctx)
}

func (s *Service) RemoveByID(ctx context.Context, name string, id uuid.UUID) (bool, error) {

	e, err := s.lookup(ctx, name, false)
	if err != nil {
		return false, err
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	if !e.col.RemoveByID(id) {
		return false, nil
	}

	return true, e.col.Write(ctx)
}

func (s *Service) RemoveMatching(ctx context.Context, name string, filter map[string]any) ([]record.Document, error) {

	e, err := s.lookup(ctx, name, false)
	if err != nil {
		return nil, err
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	removed := []record.Document{}
	var matchErr error
	e.col.RemoveAll(func(doc record.Document) bool {
		if matchErr != nil {
			return false
		}
		match, err := connor.Match(filter, map[string]any(doc))
		if err != nil {
			matchErr = fmt.Errorf("match: %w", err)
			return false
		}
		if match {
			removed = append(removed, doc)
		}
		return match
	})
	if matchErr != nil {
		return nil, matchErr
	}

	if len(removed) > 0 {
		if err := e.col.Write(ctx); err != nil {
			return nil, err
		}
	}

	return removed, nil
}

// Persist writes the in-memory sequence back to disk.
func (s *Service) Persist(ctx context.Context, name string) error {

	e, err := s.lookup(ctx, name, false)
	if err != nil {
		return err
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	return e.col.Write(ctx)
}

// ClearAndPersist empties the collection both in memory and on disk.
func (s *Service) ClearAndPersist(ctx context.Context, name string) error {

	e, err := s.lookup(ctx, name, false)
	if err != nil {
		return err
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	return e.col.ClearAndWrite(ctx)
}

// PurgeCollection truncates the backing file without going through the
// collection store. The cached instance is evicted so stale in-memory rows
// cannot resurrect the purged content on a later write.
func (s *Service) PurgeCollection(ctx context.Context, name string) (bool, error) {
	s.evict(name)
	return s.db.Purge(name)
}

func (s *Service) CopyCollection(ctx context.Context, name string) (string, bool, error) {
	return s.db.Copy(name)
}
