// Package lookup keeps a visitor's recent ZIP code searches.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"leadengine/internal/eligibility"
	"leadengine/internal/storage"
	"leadengine/pkg/platform/sentinel"
)

const (
	// StorageKey is the visitor-scoped key holding the JSON array of codes.
	StorageKey = "satlink_recent_zips"
	// MaxEntries bounds the history.
	MaxEntries = 5
)

// Store is the in-memory view of one visitor's lookup history, most-recent-first,
// without duplicates and never longer than MaxEntries.
type Store struct {
	mu     sync.Mutex
	kv     storage.Store
	logger *slog.Logger
	codes  []string
}

// Load reads the persisted history. Missing or unreadable storage yields an
// empty history; a corrupt value is deleted so the next write starts clean.
func Load(ctx context.Context, kv storage.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{kv: kv, logger: logger, codes: []string{}}

	raw, err := kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			logger.DebugContext(ctx, "recent lookups unavailable", "error", err)
		}
		return s
	}

	codes, err := decode(raw)
	if err != nil {
		logger.WarnContext(ctx, "discarding corrupt recent lookups", "error", err)
		if delErr := kv.Delete(ctx, StorageKey); delErr != nil {
			logger.DebugContext(ctx, "failed to clear corrupt recent lookups", "error", delErr)
		}
		return s
	}
	s.codes = codes
	return s
}

// decode accepts only a JSON array of strings. Duplicates and overflow from an
// older writer are dropped so the invariants hold from the first read.
func decode(raw string) ([]string, error) {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, errors.Join(sentinel.ErrCorrupt, err)
	}
	if values == nil {
		return nil, sentinel.ErrCorrupt
	}

	out := make([]string, 0, MaxEntries)
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		if _, err := eligibility.ParsePostalCode(v); err != nil || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == MaxEntries {
			break
		}
	}
	return out, nil
}

// Record moves code to the front (or prepends it), truncates to MaxEntries and
// persists the result. Malformed codes are ignored. Persist failures leave the
// in-memory history updated; the next successful write overwrites storage.
func (s *Store) Record(ctx context.Context, code eligibility.PostalCode) {
	if _, err := eligibility.ParsePostalCode(string(code)); err != nil {
		return
	}

	s.mu.Lock()
	next := make([]string, 0, MaxEntries)
	next = append(next, string(code))
	for _, c := range s.codes {
		if c == string(code) {
			continue
		}
		if len(next) == MaxEntries {
			break
		}
		next = append(next, c)
	}
	s.codes = next
	payload, err := json.Marshal(next)
	s.mu.Unlock()

	if err != nil {
		return
	}
	if err := s.kv.Set(ctx, StorageKey, string(payload)); err != nil {
		s.logger.DebugContext(ctx, "failed to persist recent lookups", "error", err)
	}
}

// List returns a copy of the history, most-recent-first.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

// Len returns the number of remembered codes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.codes)
}
