// Package history records past numclean runs.
// This enables `numclean history` to show which dumps were cleaned, where
// the output went and how many lines survived.
package history

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/numclean/internal/filter"
	"github.com/raphi011/numclean/internal/storage"
)

// DefaultMaxEntries caps the history when no limit is configured.
const DefaultMaxEntries = 50

// Entry describes the latest run for one input file
type Entry struct {
	Input    string       `json:"input"`
	Output   string       `json:"output"`
	Stats    filter.Stats `json:"stats"`
	RunCount int          `json:"run_count"`
	LastRun  time.Time    `json:"last_run"`
}

// History stores one entry per input path
type History struct {
	Entries []Entry `json:"entries"`
}

// DefaultPath returns the path to the history file in ~/.numclean/
func DefaultPath() string {
	dir, _ := storage.Dir()
	return filepath.Join(dir, "history.json")
}

// Load reads the history from path.
// A missing file yields an empty history.
func Load(path string) (*History, error) {
	var h History
	if err := storage.LoadJSON(path, &h); err != nil {
		if storage.IsNotExist(err) {
			return &History{}, nil
		}
		return nil, err
	}
	return &h, nil
}

// Save writes the history to path atomically
func (h *History) Save(path string) error {
	return storage.SaveJSON(path, h)
}

// Record stores the outcome of a run for e.Input, bumping its run count.
// When the history grows beyond maxEntries the least recent entries are
// evicted; maxEntries <= 0 means DefaultMaxEntries.
func Record(path string, e Entry, maxEntries int) error {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if e.LastRun.IsZero() {
		e.LastRun = time.Now()
	}

	return storage.WithLock(path, func() error {
		h, err := Load(path)
		if err != nil {
			return err
		}

		if existing := h.FindByInput(e.Input); existing != nil {
			e.RunCount = existing.RunCount + 1
			*existing = e
		} else {
			e.RunCount = 1
			h.Entries = append(h.Entries, e)
		}

		h.sortRecent()
		if len(h.Entries) > maxEntries {
			h.Entries = h.Entries[:maxEntries]
		}

		return h.Save(path)
	})
}

// Prune removes entries whose input file no longer exists from the history
// at path. Returns the number of entries removed.
func Prune(path string) (int, error) {
	var removed int
	err := storage.WithLock(path, func() error {
		h, err := Load(path)
		if err != nil {
			return err
		}
		if removed = h.RemoveStale(); removed == 0 {
			return nil
		}
		return h.Save(path)
	})
	return removed, err
}

// Clear removes every entry from the history at path
func Clear(path string) error {
	return storage.WithLock(path, func() error {
		h := &History{Entries: []Entry{}}
		return h.Save(path)
	})
}

// Recent returns the entries ordered by last run, newest first
func (h *History) Recent() []Entry {
	entries := slices.Clone(h.Entries)
	slices.SortStableFunc(entries, byLastRunDesc)
	return entries
}

// FindByInput returns the entry for input, or nil
func (h *History) FindByInput(input string) *Entry {
	for i := range h.Entries {
		if h.Entries[i].Input == input {
			return &h.Entries[i]
		}
	}
	return nil
}

// staleCheckLimit bounds concurrent stat calls in RemoveStale.
const staleCheckLimit = 8

// RemoveStale drops entries whose input file no longer exists.
// Inputs are checked concurrently since they may live on slow mounts.
// Returns the number of entries removed.
func (h *History) RemoveStale() int {
	stale := make([]bool, len(h.Entries))

	var g errgroup.Group
	g.SetLimit(staleCheckLimit)
	for i, e := range h.Entries {
		g.Go(func() error {
			_, err := os.Stat(e.Input)
			stale[i] = os.IsNotExist(err)
			return nil
		})
	}
	_ = g.Wait() // Always nil

	kept := h.Entries[:0]
	for i, e := range h.Entries {
		if !stale[i] {
			kept = append(kept, e)
		}
	}
	removed := len(h.Entries) - len(kept)
	h.Entries = kept
	return removed
}

func (h *History) sortRecent() {
	slices.SortStableFunc(h.Entries, byLastRunDesc)
}

func byLastRunDesc(a, b Entry) int {
	return b.LastRun.Compare(a.LastRun)
}
