// Package collection maps a serialized file to an in-memory ordered sequence
// of typed records. Mutations never touch disk, persistence is an explicit
// Write. One logical owner per Collection instance: there is no internal
// locking, callers that share an instance must synchronize externally.
package collection

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	json2 "github.com/go-json-experiment/json"
	"github.com/google/uuid"

	"github.com/shelfdb/shelfdb/record"
)

type Collection[T record.Identifier] struct {
	filename string
	rows     []T
}

// New returns an empty collection bound to filename. Nothing is read or
// created on disk.
func New[T record.Identifier](filename string) *Collection[T] {
	return &Collection[T]{
		filename: filename,
		rows:     []T{},
	}
}

// Load reads the whole file into memory. A missing or zero-length file yields
// an empty collection without attempting to decode. Malformed content fails
// with ErrMalformed and no partially populated collection is returned.
func Load[T record.Identifier](ctx context.Context, filename string) (*Collection[T], error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return New[T](filename), nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat collection: %w", err)
	}
	if info.Size() == 0 {
		return New[T](filename), nil
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open collection for read: %w", err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(&contextReader{ctx: ctx, r: f}, bufferSize(info.Size()))

	rows := []T{}
	err = json2.UnmarshalRead(r, &rows)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("decode %s: %w: %w", filepath.Base(filename), ErrMalformed, err)
	}

	return &Collection[T]{
		filename: filename,
		rows:     rows,
	}, nil
}

// Filename returns the file path this collection is bound to.
func (c *Collection[T]) Filename() string {
	return c.filename
}

func (c *Collection[T]) Len() int {
	return len(c.rows)
}

// Rows exposes the in-memory sequence for iteration. Callers must not mutate
// the returned slice.
func (c *Collection[T]) Rows() []T {
	return c.rows
}

// Insert appends one record to the in-memory sequence.
func (c *Collection[T]) Insert(item T) {
	c.rows = append(c.rows, item)
}

// InsertMany appends records after the existing content, preserving their
// relative order.
func (c *Collection[T]) InsertMany(items ...T) {
	c.rows = append(c.rows, items...)
}

// ReplaceAll discards the current sequence and installs a copy of items.
func (c *Collection[T]) ReplaceAll(items []T) {
	c.rows = append([]T{}, items...)
}

// Retain keeps only the records for which keep returns true, preserving
// their order.
func (c *Collection[T]) Retain(keep func(item T) bool) {
	kept := c.rows[:0]
	for _, row := range c.rows {
		if keep(row) {
			kept = append(kept, row)
		}
	}
	clear(c.rows[len(kept):])
	c.rows = kept
}

// RemoveAll drops every record for which drop returns true, preserving the
// order of the survivors.
func (c *Collection[T]) RemoveAll(drop func(item T) bool) {
	c.Retain(func(item T) bool {
		return !drop(item)
	})
}

// UpdateByID replaces the first record whose identifier equals id, keeping
// its position. It reports whether a record was found; on a miss the
// sequence is left untouched.
func (c *Collection[T]) UpdateByID(id uuid.UUID, replacement T) bool {
	for i, row := range c.rows {
		if row.ID() == id {
			c.rows[i] = replacement
			return true
		}
	}
	return false
}

// RemoveByID removes the first record whose identifier equals id and reports
// whether a removal occurred.
func (c *Collection[T]) RemoveByID(id uuid.UUID) bool {
	for i, row := range c.rows {
		if row.ID() == id {
			c.rows = append(c.rows[:i], c.rows[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveOne removes the first record equal to item. Equality is identity,
// so this is RemoveByID over the item's own identifier.
func (c *Collection[T]) RemoveOne(item T) bool {
	return c.RemoveByID(item.ID())
}

// Clear empties the in-memory sequence without touching disk.
func (c *Collection[T]) Clear() {
	c.rows = []T{}
}

// ForEach applies f to every record in sequence order.
func (c *Collection[T]) ForEach(f func(item T)) {
	for _, row := range c.rows {
		f(row)
	}
}

// AsMap snapshots the current contents keyed by identifier. When duplicate
// identifiers exist the last occurrence wins.
func (c *Collection[T]) AsMap() map[uuid.UUID]T {
	m := make(map[uuid.UUID]T, len(c.rows))
	for _, row := range c.rows {
		m[row.ID()] = row
	}
	return m
}

// Write overwrites the backing file with the serialized in-memory sequence,
// truncating any previous content. Output is compact and zero-value struct
// fields are omitted. The file handle is released before returning on every
// path.
func (c *Collection[T]) Write(ctx context.Context) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	var currentSize int64
	if info, err := os.Stat(c.filename); err == nil {
		currentSize = info.Size()
	}

	f, err := os.OpenFile(c.filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return fmt.Errorf("open collection for write: %w", err)
	}

	w := bufio.NewWriterSize(&contextWriter{ctx: ctx, w: f}, bufferSize(currentSize))

	err = json2.MarshalWrite(w, c.rows, json2.OmitZeroStructFields(true))
	if err == nil {
		err = w.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("write collection: %w", err)
	}

	return nil
}

// ClearAndWrite empties the sequence and immediately persists, leaving both
// memory and disk empty.
func (c *Collection[T]) ClearAndWrite(ctx context.Context) error {
	c.Clear()
	return c.Write(ctx)
}
