// Package snapshotcache loads and indexes on-disk market-data snapshots.
// It never talks to poe.ninja/poe.watch itself — callers hand it an
// already-downloaded snapshot to save, or ask it to load one back
// keyed by (data_source, normalized_league_name).
package snapshotcache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/filterspirit/filterspirit/autogen"
	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"
)

// Metadata is the per-snapshot sidecar file.
type Metadata struct {
	LeagueName   string    `json:"league_name"`
	DataSource   string    `json:"data_source"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// indexEntry is one row of the top-level cache index.
type indexEntry struct {
	Key              string    `json:"key"`
	Metadata         Metadata  `json:"metadata"`
	FilterSpiritVers string    `json:"filterspirit_version"`
}

const indexFileName = "index.json"

// Cache manages snapshots under a single root directory.
type Cache struct {
	dir string
}

// New returns a Cache rooted at dir, creating it if necessary.
func New(dir string) (*Cache, error) {
	if !fileutil.FolderExists(dir) {
		if err := fileutil.CreateFolder(dir); err != nil {
			return nil, errorutil.NewWithErr(err).Msgf("failed to create cache dir %v", dir)
		}
	}
	return &Cache{dir: dir}, nil
}

// key normalizes (data_source, league_name) into the cache's directory
// name").
func key(dataSource, leagueName string) string {
	normalized := strings.ToLower(strings.TrimSpace(leagueName))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	return dataSource + "_" + normalized
}

func (c *Cache) entryDir(dataSource, leagueName string) string {
	return filepath.Join(c.dir, key(dataSource, leagueName))
}

// Load reads a previously-saved snapshot for (dataSource, leagueName).
// ok is false if no such snapshot is cached.
func (c *Cache) Load(dataSource, leagueName string) (autogen.Snapshot, Metadata, bool, error) {
	dir := c.entryDir(dataSource, leagueName)
	if !fileutil.FolderExists(dir) {
		return autogen.Snapshot{}, Metadata{}, false, nil
	}

	metaBin, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return autogen.Snapshot{}, Metadata{}, false, errorutil.NewWithErr(err).Msgf("failed to read metadata for %v/%v", dataSource, leagueName)
	}
	var meta Metadata
	if err := json.Unmarshal(metaBin, &meta); err != nil {
		return autogen.Snapshot{}, Metadata{}, false, errorutil.NewWithErr(err).Msgf("malformed metadata.json in %v", dir)
	}

	snapBin, err := os.ReadFile(filepath.Join(dir, "snapshot.json"))
	if err != nil {
		return autogen.Snapshot{}, Metadata{}, false, errorutil.NewWithErr(err).Msgf("failed to read snapshot.json in %v", dir)
	}
	var snap autogen.Snapshot
	if err := json.Unmarshal(snapBin, &snap); err != nil {
		return autogen.Snapshot{}, Metadata{}, false, errorutil.NewWithErr(err).Msgf("malformed snapshot.json in %v", dir)
	}

	return snap, meta, true, nil
}

// Age reports how long ago the cached snapshot for (dataSource,
// leagueName) was downloaded, used by the CLI's -max-age flag.
func (c *Cache) Age(dataSource, leagueName string) (time.Duration, bool, error) {
	_, meta, ok, err := c.Load(dataSource, leagueName)
	if err != nil || !ok {
		return 0, ok, err
	}
	return time.Since(meta.DownloadedAt), true, nil
}

// Save writes snap and its metadata to the cache directory and updates
// the top-level index.
func (c *Cache) Save(snap autogen.Snapshot, meta Metadata, filterSpiritVersion string) error {
	dir := c.entryDir(meta.DataSource, meta.LeagueName)
	if !fileutil.FolderExists(dir) {
		if err := fileutil.CreateFolder(dir); err != nil {
			return errorutil.NewWithErr(err).Msgf("failed to create cache entry dir %v", dir)
		}
	}

	metaBin, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return errorutil.NewWithErr(err).Msgf("failed to marshal metadata")
	}
	if err := os.WriteFile(filepath.Join(dir, "metadata.json"), metaBin, 0644); err != nil {
		return errorutil.NewWithErr(err).Msgf("failed to write metadata.json")
	}

	snapBin, err := json.Marshal(snap)
	if err != nil {
		return errorutil.NewWithErr(err).Msgf("failed to marshal snapshot")
	}
	if err := os.WriteFile(filepath.Join(dir, "snapshot.json"), snapBin, 0644); err != nil {
		return errorutil.NewWithErr(err).Msgf("failed to write snapshot.json")
	}

	return c.appendIndex(indexEntry{
		Key:              key(meta.DataSource, meta.LeagueName),
		Metadata:         meta,
		FilterSpiritVers: filterSpiritVersion,
	})
}

func (c *Cache) appendIndex(entry indexEntry) error {
	entries, err := c.readIndex()
	if err != nil {
		return err
	}

	replaced := false
	for i, e := range entries {
		if e.Key == entry.Key {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	bin, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errorutil.NewWithErr(err).Msgf("failed to marshal cache index")
	}
	return os.WriteFile(filepath.Join(c.dir, indexFileName), bin, 0644)
}

func (c *Cache) readIndex() ([]indexEntry, error) {
	path := filepath.Join(c.dir, indexFileName)
	if !fileutil.FileExists(path) {
		return nil, nil
	}
	bin, err := os.ReadFile(path)
	if err != nil {
		return nil, errorutil.NewWithErr(err).Msgf("failed to read cache index")
	}
	var entries []indexEntry
	if err := json.Unmarshal(bin, &entries); err != nil {
		return nil, errorutil.NewWithErr(err).Msgf("malformed cache index")
	}
	return entries, nil
}

// List returns every cached snapshot's metadata.
func (c *Cache) List() ([]Metadata, error) {
	entries, err := c.readIndex()
	if err != nil {
		return nil, err
	}
	out := make([]Metadata, len(entries))
	for i, e := range entries {
		out[i] = e.Metadata
	}
	return out, nil
}
