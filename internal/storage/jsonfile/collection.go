// Package jsonfile implements the repository ports over flat JSON documents:
// each collection is a single human-readable JSON array on disk, re-read and
// rewritten wholesale on every operation. There is no cross-call caching and
// no partial write; repositories serialize access with their own mutex.
package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Collection is a generic load/save abstraction over one persisted JSON
// array document.
type Collection[T any] struct {
	path string
	log  zerolog.Logger
}

func NewCollection[T any](path string, log zerolog.Logger) *Collection[T] {
	return &Collection[T]{path: path, log: log}
}

// Init creates the data directory and, when the backing document does not
// exist yet, writes the seed documents.
func (c *Collection[T]) Init(seed []T) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}

	if _, err := os.Stat(c.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	return c.Save(seed)
}

// Load reads the whole collection. A missing or corrupt document yields an
// empty collection rather than an error; corruption is logged because it can
// mask data loss.
func (c *Collection[T]) Load() []T {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.Warn().Err(err).Str("path", c.path).Msg("collection unreadable, treating as empty")
		}
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var docs []T
	if err := json.Unmarshal(data, &docs); err != nil {
		c.log.Warn().Err(err).Str("path", c.path).Msg("collection corrupt, treating as empty")
		return nil
	}
	return docs
}

// Save replaces the persisted collection with docs as an indented JSON array.
func (c *Collection[T]) Save(docs []T) error {
	if docs == nil {
		docs = []T{} // keep "[]" on disk, never "null"
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}
