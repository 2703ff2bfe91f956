// Package database binds record types to collection files under one root
// folder and manages file lifecycle: create, enumerate, drop, purge and copy.
// Loading file contents into memory is delegated to package collection.
package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/btree"

	"github.com/shelfdb/shelfdb/collection"
	"github.com/shelfdb/shelfdb/record"
)

// Extension is the fixed suffix of every collection file.
const Extension = ".json"

type Config struct {
	Dir string `usage:"data directory"`
}

type Database struct {
	config *Config
	logger *slog.Logger

	mutex sync.Mutex
	names *btree.BTreeG[string]
}

// Open creates the root folder if absent, scans it for existing collection
// files and returns a ready to use Database.
func Open(config *Config, logger *slog.Logger) (*Database, error) {

	if logger == nil {
		logger = slog.Default()
	}

	err := os.MkdirAll(config.Dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db := &Database{
		config: config,
		logger: logger,
		names:  btree.NewG(8, func(a, b string) bool { return a < b }),
	}

	err = db.scan()
	if err != nil {
		return nil, err
	}

	logger.Info("database open", "dir", config.Dir, "collections", db.names.Len())

	return db, nil
}

// scan rebuilds the name registry from the files currently under the root
// folder. A missing root yields an empty registry.
func (db *Database) scan() error {

	entries, err := os.ReadDir(db.config.Dir)
	if os.IsNotExist(err) {
		db.names.Clear(false)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read data directory: %w", err)
	}

	db.names.Clear(false)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, Extension) {
			continue
		}
		db.names.ReplaceOrInsert(strings.TrimSuffix(name, Extension))
	}

	return nil
}

// Filename resolves a collection name to its canonical file path: lowercase
// name plus extension, a direct child of the root folder.
func (db *Database) Filename(name string) string {
	return filepath.Join(db.config.Dir, strings.ToLower(name)+Extension)
}

// Exists reports whether the collection's backing file is present.
func (db *Database) Exists(name string) bool {
	_, err := os.Stat(db.Filename(name))
	return err == nil
}

// ListCollections enumerates collection files under the root folder and
// returns their names in lexical order, extension stripped. A missing root
// folder yields an empty list.
func (db *Database) ListCollections() []string {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if err := db.scan(); err != nil {
		db.logger.Warn("list collections", "error", err)
	}

	names := []string{}
	db.names.Ascend(func(name string) bool {
		names = append(names, name)
		return true
	})
	return names
}

// CollectionName derives the canonical collection name from the record type.
func CollectionName[T record.Identifier]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}

// GetCollection ensures the backing file for name exists, creating it empty
// when missing, and loads it into memory.
func GetCollection[T record.Identifier](ctx context.Context, db *Database, name string) (*collection.Collection[T], error) {

	filename := db.Filename(name)

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_RDONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("create collection file: %w", err)
	}
	f.Close()

	db.register(strings.ToLower(name))

	return collection.Load[T](ctx, filename)
}

// CollectionOf is GetCollection with the name derived from the record type.
func CollectionOf[T record.Identifier](ctx context.Context, db *Database) (*collection.Collection[T], error) {
	return GetCollection[T](ctx, db, CollectionName[T]())
}

// DropCollection deletes the backing file and reports whether a deletion
// occurred. A missing file is not an error.
func (db *Database) DropCollection(name string) (bool, error) {

	err := os.Remove(db.Filename(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("remove collection file: %w", err)
	}

	db.mutex.Lock()
	db.names.Delete(strings.ToLower(name))
	db.mutex.Unlock()

	return true, nil
}

// Purge truncates the backing file to zero bytes in place. The file remains,
// now empty. A missing file reports false and no file is created.
func (db *Database) Purge(name string) (bool, error) {

	filename := db.Filename(name)

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return false, nil
	}

	err := os.Truncate(filename, 0)
	if err != nil {
		return false, fmt.Errorf("truncate collection file: %w", err)
	}

	return true, nil
}

// PurgeAll truncates every collection file under the root folder.
func (db *Database) PurgeAll() error {
	for _, name := range db.ListCollections() {
		if _, err := db.Purge(name); err != nil {
			return err
		}
	}
	return nil
}

// Copy duplicates the backing file under a timestamped name, for lightweight
// snapshotting. It returns the new collection name and whether a copy was
// made; a missing source reports false.
func (db *Database) Copy(name string) (string, bool, error) {

	in, err := os.Open(db.Filename(name))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("open collection file: %w", err)
	}
	defer in.Close()

	copyName := fmt.Sprintf("%s_%d", strings.ToLower(name), time.Now().UnixNano())

	out, err := os.Create(filepath.Join(db.config.Dir, copyName+Extension))
	if err != nil {
		return "", false, fmt.Errorf("create collection copy: %w", err)
	}

	_, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", false, fmt.Errorf("copy collection file: %w", err)
	}

	db.register(copyName)

	return copyName, true, nil
}

func (db *Database) register(name string) {
	db.mutex.Lock()
	db.names.ReplaceOrInsert(name)
	db.mutex.Unlock()
}
