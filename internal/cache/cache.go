// Package cache keeps an index of the workspaces under a cache root.
//
// Each successful build records one Entry keyed by workspace name, so the
// list command can show which views have cached workspaces, where they live
// and what they last produced. The workspaces themselves stay on disk; the
// index only holds metadata in BoltDB.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.etcd.io/bbolt"
)

const (
	// IndexFile is the BoltDB file inside the cache root
	IndexFile = "index.db"

	// bucketName is the BoltDB bucket name for workspace entries
	bucketName = "workspaces"
)

// ErrNotFound is returned by Get for an unknown workspace name
var ErrNotFound = errors.New("workspace not found in index")

// Cache is the workspace index of one cache root
type Cache struct {
	db   *bbolt.DB
	root string
}

// New opens (creating if needed) the index in cacheRoot
func New(cacheRoot string) (*Cache, error) {
	if err := os.MkdirAll(cacheRoot, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbPath := filepath.Join(cacheRoot, IndexFile)
	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache index: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache bucket: %w", err)
	}

	return &Cache{
		db:   db,
		root: cacheRoot,
	}, nil
}

// Root is the cache root the index belongs to
func (c *Cache) Root() string {
	return c.root
}

// Close closes the index database
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}

	return nil
}

// Store records entry, replacing any previous entry for the same workspace
func (c *Cache) Store(entry Entry) error {
	if entry.Name == "" {
		return fmt.Errorf("cache entry has no workspace name")
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	err := c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}

		return b.Put([]byte(entry.Name), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}

	return nil
}

// Get returns the entry for a workspace name, or ErrNotFound
func (c *Cache) Get(name string) (*Entry, error) {
	var entry *Entry

	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(name))
		if data == nil {
			return nil
		}

		entry = &Entry{}
		return json.Unmarshal(data, entry)
	})
	if err != nil {
		return nil, err
	}

	if entry == nil {
		return nil, ErrNotFound
	}

	return entry, nil
}

// List returns every entry, most recently built first
func (c *Cache) List() ([]Entry, error) {
	var entries []Entry

	err := c.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).ForEach(func(_, data []byte) error {
			var entry Entry
			if err := json.Unmarshal(data, &entry); err != nil {
				return err
			}

			entries = append(entries, entry)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read cache index: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Name < entries[j].Name
		}

		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	return entries, nil
}

// Remove deletes the entry for name. Removing an unknown name is not an error.
func (c *Cache) Remove(name string) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(name))
	})
}

// Prune removes entries whose workspace directory no longer exists and
// returns their names
func (c *Cache) Prune() ([]string, error) {
	entries, err := c.List()
	if err != nil {
		return nil, err
	}

	var pruned []string
	for _, entry := range entries {
		if _, err := os.Stat(entry.WorkspaceDir); !errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err := c.Remove(entry.Name); err != nil {
			return pruned, err
		}

		pruned = append(pruned, entry.Name)
	}

	return pruned, nil
}

// Clear removes all entries. Workspaces on disk are left alone.
func (c *Cache) Clear() error {
	err := c.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket([]byte(bucketName))
	})
	if err != nil {
		return err
	}

	return c.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
}

// Stats returns the number of entries and the combined size on disk of
// their workspaces
func (c *Cache) Stats() (int, int64, error) {
	entries, err := c.List()
	if err != nil {
		return 0, 0, err
	}

	var totalSize int64
	for _, entry := range entries {
		totalSize += dirSize(entry.WorkspaceDir)
	}

	return len(entries), totalSize, nil
}

// dirSize sums regular file sizes below dir without following symlinks
func dirSize(dir string) int64 {
	var size int64

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				size += info.Size()
			}
		}

		return nil
	})

	return size
}
