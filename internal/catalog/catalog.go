// Package catalog stores the uploaded asset descriptors in a flat JSON file.
//
// The asset's Telegram file ID doubles as its public reference: it is the
// catalog key and the ?start= argument of the share link. If file IDs ever
// turn out to be guessable, mint a separate random reference at upload time
// and keep FindByReference indexed on it; nothing outside this package
// assumes the two are the same string.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Kind identifies how an asset is re-transmitted.
type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

// Asset is one cataloged upload. Created once at upload time, never mutated.
type Asset struct {
	Reference string `json:"file_id"`
	Kind      Kind   `json:"type"`
}

// ErrNotFound is returned when a reference is absent from the catalog.
var ErrNotFound = errors.New("asset not found")

// Catalog is the durable, insertion-ordered asset sequence. Every append
// rewrites the whole file; at admin-upload frequency that is cheap and keeps
// the on-disk and in-memory views in lockstep.
//
// The catalog does not deduplicate: appending two assets with the same
// reference yields two entries. Reference uniqueness is the upstream handle
// source's responsibility (Telegram file IDs are unique per file).
type Catalog struct {
	logger *slog.Logger

	mu     sync.Mutex
	path   string
	assets []Asset
}

// New loads the catalog from path. An absent file is an empty catalog, not
// an error.
func New(log *slog.Logger, path string) (*Catalog, error) {
	if log == nil {
		log = slog.Default()
	}
	c := &Catalog{
		logger: log.With(slog.String("component", "catalog")),
		path:   path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &c.assets); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	c.logger.Info("catalog loaded", slog.Int("assets", len(c.assets)))
	return c, nil
}

// Append adds the asset to the end of the sequence and persists the full
// sequence. On a failed write the in-memory state is rolled back; the append
// is not committed.
func (c *Catalog) Append(asset Asset) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.assets = append(c.assets, asset)
	if err := c.persist(); err != nil {
		c.assets = c.assets[:len(c.assets)-1]
		return fmt.Errorf("persist catalog: %w", err)
	}
	return nil
}

// ListAll returns the assets in upload order.
func (c *Catalog) ListAll() []Asset {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Asset, len(c.assets))
	copy(out, c.assets)
	return out
}

// FindByReference returns the asset with the given reference or ErrNotFound.
func (c *Catalog) FindByReference(ref string) (Asset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, asset := range c.assets {
		if asset.Reference == ref {
			return asset, nil
		}
	}
	return Asset{}, ErrNotFound
}

// persist writes the sequence to a temp file and renames it over the catalog
// path, so a crash mid-write never leaves a truncated catalog. Caller holds mu.
func (c *Catalog) persist() error {
	data, err := json.MarshalIndent(c.assets, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, ".catalog-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
