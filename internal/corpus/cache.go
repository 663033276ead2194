// Package corpus loads and caches the static per-language pictogram corpus
// from JSON files on disk. The corpus is read-only after load and shared
// across requests without locking.
package corpus

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/openaac/pictoapi/internal/domain"
)

// defaultFileContent is written when the fallback corpus file is missing.
const defaultFileContent = `{"pittogrammi": []}`

// Cache owns the mapping from language code to loaded candidate list.
// Loads happen at most once per language (singleflight); afterwards the
// slices are immutable and safe for concurrent reads.
//
// Load failures are not errors: a missing or malformed corpus degrades to
// an empty candidate list so that resolution continues without suggestions.
type Cache struct {
	dir         string
	defaultLang string
	log         *slog.Logger

	mu        sync.RWMutex
	byLang    map[string][]domain.Candidate
	loadGroup singleflight.Group
}

// New creates a Cache reading corpus files from dir. Files are named
// "<lang>_pittogrammi.json"; when absent, "pittogrammi.json" in the same
// directory is used and auto-created empty if missing.
func New(dir, defaultLang string, logger *slog.Logger) *Cache {
	return &Cache{
		dir:         dir,
		defaultLang: domain.NormalizeLanguage(defaultLang),
		log:         logger.With("component", "corpus"),
		byLang:      make(map[string][]domain.Candidate),
	}
}

// Get returns the candidate list for the language, loading it on first use.
// An empty language code selects the default language.
func (c *Cache) Get(lang string) []domain.Candidate {
	lang = domain.NormalizeLanguage(lang)
	if lang == "" {
		lang = c.defaultLang
	}

	c.mu.RLock()
	cands, ok := c.byLang[lang]
	c.mu.RUnlock()
	if ok {
		return cands
	}

	loaded, _, _ := c.loadGroup.Do(lang, func() (any, error) {
		cands := c.load(lang)
		c.mu.Lock()
		c.byLang[lang] = cands
		c.mu.Unlock()
		return cands, nil
	})
	return loaded.([]domain.Candidate)
}

// FindExact returns the first candidate whose name equals name, comparing
// case-sensitively in corpus order. Returns false when nothing matches.
//
// Corpus files are expected to carry lowercase names: phrase-path lookup
// keys are lowercased by domain.NormalizeToken, so an uppercase corpus
// name is only reachable through the disambiguation re-lookup, which uses
// the model's pick verbatim.
func (c *Cache) FindExact(lang, name string) (domain.Candidate, bool) {
	for _, cand := range c.Get(lang) {
		if cand.Name == name {
			return cand, true
		}
	}
	return domain.Candidate{}, false
}

func (c *Cache) load(lang string) []domain.Candidate {
	path := filepath.Join(c.dir, lang+"_pittogrammi.json")
	if _, err := os.Stat(path); err != nil {
		fallback, err := c.ensureDefaultFile()
		if err != nil {
			c.log.Error("corpus fallback unavailable", slog.String("lang", lang), slog.String("error", err.Error()))
			return []domain.Candidate{}
		}
		c.log.Info("language corpus missing, using default file",
			slog.String("lang", lang), slog.String("path", fallback))
		path = fallback
	}

	data, err := os.ReadFile(path)
	if err != nil {
		c.log.Error("read corpus file", slog.String("path", path), slog.String("error", err.Error()))
		return []domain.Candidate{}
	}

	cands, err := Parse(data)
	if err != nil {
		c.log.Error("parse corpus file", slog.String("path", path), slog.String("error", err.Error()))
		return []domain.Candidate{}
	}

	c.log.Info("corpus loaded", slog.String("lang", lang), slog.Int("candidates", len(cands)))
	return cands
}

// ensureDefaultFile returns the path of the default corpus file, creating
// it empty if it does not exist. Creation is guarded by a file lock so that
// concurrent processes sharing the data directory do not clobber each other.
func (c *Cache) ensureDefaultFile() (string, error) {
	path := filepath.Join(c.dir, "pittogrammi.json")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("create corpus dir: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("lock default corpus: %w", err)
	}
	defer lock.Unlock() //nolint:errcheck

	// Re-check under the lock: another process may have created it.
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.WriteFile(path, []byte(defaultFileContent), 0o644); err != nil {
		return "", fmt.Errorf("create default corpus: %w", err)
	}
	return path, nil
}

// Parse decodes a corpus document. Both historical shapes are accepted:
// a bare JSON array of candidates, or an object wrapping the array in a
// "pittogrammi" field.
func Parse(data []byte) ([]domain.Candidate, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("corpus document is not valid JSON")
	}

	doc := gjson.ParseBytes(data)
	if doc.IsObject() {
		doc = doc.Get("pittogrammi")
	}
	if !doc.IsArray() {
		return nil, fmt.Errorf("corpus document has no candidate array")
	}

	var cands []domain.Candidate
	doc.ForEach(func(_, item gjson.Result) bool {
		cands = append(cands, domain.Candidate{
			ID:   int(item.Get("id").Int()),
			Name: item.Get("nome").String(),
		})
		return true
	})
	if cands == nil {
		cands = []domain.Candidate{}
	}
	return cands, nil
}
