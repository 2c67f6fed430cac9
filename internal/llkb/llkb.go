// Package llkb implements the learned-pattern knowledge base: a JSON file
// recording which free-text step utterances have previously compiled
// successfully, with Wilson-score confidence, promotion, and pruning.
//
// The store is process-wide cached with a 5-second TTL; writes invalidate
// the cache and rewrite the file atomically via a temp-file rename.
// Concurrent writers across processes are not locked: last writer wins,
// an accepted consistency ceiling.
package llkb

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/journeyc/compiler/internal/ir"
)

// cacheTTL is the in-process cache lifetime for a loaded store file.
const cacheTTL = 5 * time.Second

// LearnedPattern is one recorded utterance→primitive mapping.
// MappedPrimitive carries the primitive's type tag; PrimitiveJSON carries
// the full payload (locator, value, arguments) so a later match can
// reconstruct the exact primitive that compiled, not a generic stand-in
// re-derived from the new step's text.
type LearnedPattern struct {
	ID              string          `json:"id"`
	Hash            string          `json:"hash"`
	OriginalText    string          `json:"originalText"`
	NormalizedText  string          `json:"normalizedText"`
	MappedPrimitive string          `json:"mappedPrimitive"`
	PrimitiveJSON   json.RawMessage `json:"primitive,omitempty"`
	Confidence      float64         `json:"confidence"`
	SuccessCount    int             `json:"successCount"`
	FailCount       int             `json:"failCount"`
	SourceJourneys  []string        `json:"sourceJourneys"`
	LastUsed        time.Time       `json:"lastUsed"`
	CreatedAt       time.Time       `json:"createdAt"`
	PromotedToCore  bool            `json:"promotedToCore"`
	PromotedAt      *time.Time      `json:"promotedAt,omitempty"`
}

// Primitive reconstructs the learned pattern's compiled primitive from its
// stored payload. Returns false when the record predates payload storage
// (or the payload doesn't decode), letting callers fall back to a generic
// reconstruction.
func (p *LearnedPattern) Primitive() (ir.Primitive, bool) {
	if len(p.PrimitiveJSON) == 0 {
		return nil, false
	}
	prim, err := ir.UnmarshalPrimitive(ir.PrimitiveType(p.MappedPrimitive), p.PrimitiveJSON)
	if err != nil {
		return nil, false
	}
	return prim, true
}

// file is the on-disk shape of learned-patterns.json.
type file struct {
	Version     int              `json:"version"`
	LastUpdated time.Time        `json:"lastUpdated"`
	Patterns    []LearnedPattern `json:"patterns"`
}

const fileVersion = 1

// Clock abstracts "now" so tests can pin timestamps deterministically.
type Clock interface{ Now() time.Time }

// IDGen abstracts learned-pattern ID generation for deterministic tests.
type IDGen interface{ Generate() string }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type uuidGen struct{}

func (uuidGen) Generate() string { return uuid.NewString() }

// cacheEntry pairs a loaded file with the time it was loaded.
type cacheEntry struct {
	loaded file
	at     time.Time
}

var (
	cacheMu sync.Mutex
	cache   = map[string]cacheEntry{}
)

// Store is a handle to one learned-patterns.json file.
type Store struct {
	path  string
	clock Clock
	ids   IDGen
}

// Open returns a Store bound to path. The file need not exist yet; it is
// created on first write.
func Open(path string) *Store {
	return &Store{path: path, clock: systemClock{}, ids: uuidGen{}}
}

// WithClock overrides the store's clock, for deterministic tests.
func (s *Store) WithClock(c Clock) *Store { s.clock = c; return s }

// WithIDGen overrides the store's ID generator, for deterministic tests.
func (s *Store) WithIDGen(g IDGen) *Store { s.ids = g; return s }

func (s *Store) load() (file, error) {
	cacheMu.Lock()
	if entry, ok := cache[s.path]; ok && s.clock.Now().Sub(entry.at) < cacheTTL {
		cacheMu.Unlock()
		return entry.loaded, nil
	}
	cacheMu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		f := file{Version: fileVersion}
		s.storeCache(f)
		return f, nil
	}
	if err != nil {
		return file{}, err
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return file{}, err
	}
	s.storeCache(f)
	return f, nil
}

func (s *Store) storeCache(f file) {
	cacheMu.Lock()
	cache[s.path] = cacheEntry{loaded: f, at: s.clock.Now()}
	cacheMu.Unlock()
}

func (s *Store) invalidateCache() {
	cacheMu.Lock()
	delete(cache, s.path)
	cacheMu.Unlock()
}

// write atomically rewrites the store file (append-then-rewrite semantics:
// the whole in-memory pattern list is rewritten, the write itself is
// atomic via temp-file rename) and invalidates the cache.
func (s *Store) write(f file) error {
	f.Version = fileVersion
	f.LastUpdated = s.clock.Now()
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(dir, ".llkb-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	s.invalidateCache()
	return nil
}

// wilsonLowerBound computes the lower bound of the 95% Wilson score
// interval (z=1.96) over (success, success+fail). With zero observations,
// confidence defaults to 0.5.
func wilsonLowerBound(success, total int) float64 {
	if total == 0 {
		return 0.5
	}
	const z = 1.96
	n := float64(total)
	p := float64(success) / n
	z2 := z * z
	denom := 1 + z2/n
	centre := p + z2/(2*n)
	margin := z * math.Sqrt(p*(1-p)/n+z2/(4*n*n))
	return (centre - margin) / denom
}

// MatchOptions controls MatchLLKBPattern's threshold.
type MatchOptions struct {
	MinConfidence float64
}

// canonicalText is the store's text-key normalization: learned patterns are
// keyed case-insensitively so "Clicks Save" and "clicks save" accumulate
// confidence on one record instead of splitting it across two.
func canonicalText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MatchLLKBPattern returns the first non-promoted pattern whose
// NormalizedText equals normalizedText and whose confidence is at or above
// opts.MinConfidence.
func (s *Store) MatchLLKBPattern(normalizedText string, opts MatchOptions) (*LearnedPattern, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	key := canonicalText(normalizedText)
	for i := range f.Patterns {
		p := f.Patterns[i]
		if p.PromotedToCore {
			continue
		}
		if p.NormalizedText != key {
			continue
		}
		if p.Confidence < opts.MinConfidence {
			continue
		}
		return &p, nil
	}
	return nil, nil
}

// RecordPatternSuccess creates or updates the learned pattern for
// normalizedText, incrementing SuccessCount, recomputing confidence, and
// appending journeyID to the pattern's source list if not already present.
// The primitive's full payload is stored alongside its type tag so a later
// MatchLLKBPattern hit reproduces exactly what compiled.
func (s *Store) RecordPatternSuccess(originalText, normalizedText string, prim ir.Primitive, journeyID string) (*LearnedPattern, error) {
	if prim == nil {
		return nil, fmt.Errorf("recording pattern success: nil primitive")
	}
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	normalizedText = canonicalText(normalizedText)
	primitiveType := string(prim.Kind())
	hash, err := ir.PatternHash(normalizedText, primitiveType)
	if err != nil {
		return nil, fmt.Errorf("hashing pattern: %w", err)
	}
	payload, err := ir.MarshalPrimitive(prim)
	if err != nil {
		return nil, fmt.Errorf("encoding pattern primitive: %w", err)
	}
	idx := findPatternByHash(f.Patterns, hash)
	if idx < 0 {
		p := LearnedPattern{
			ID:              s.ids.Generate(),
			Hash:            hash,
			OriginalText:    originalText,
			NormalizedText:  normalizedText,
			MappedPrimitive: primitiveType,
			PrimitiveJSON:   payload,
			CreatedAt:       now,
		}
		f.Patterns = append(f.Patterns, p)
		idx = len(f.Patterns) - 1
	}
	p := &f.Patterns[idx]
	p.SuccessCount++
	p.LastUsed = now
	if len(p.PrimitiveJSON) == 0 {
		// Backfill records written before primitive payloads were stored.
		p.PrimitiveJSON = payload
	}
	p.Confidence = wilsonLowerBound(p.SuccessCount, p.SuccessCount+p.FailCount)
	if !containsString(p.SourceJourneys, journeyID) && journeyID != "" {
		p.SourceJourneys = append(p.SourceJourneys, journeyID)
	}
	if err := s.write(f); err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

// RecordPatternFailure increments FailCount for the learned pattern with
// normalizedText (a no-op if none exists yet) and recomputes confidence.
func (s *Store) RecordPatternFailure(normalizedText, journeyID string) (*LearnedPattern, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	idx := findPatternByText(f.Patterns, canonicalText(normalizedText))
	if idx < 0 {
		return nil, nil
	}
	p := &f.Patterns[idx]
	p.FailCount++
	p.LastUsed = s.clock.Now()
	p.Confidence = wilsonLowerBound(p.SuccessCount, p.SuccessCount+p.FailCount)
	if err := s.write(f); err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

// GetPromotablePatterns returns every non-promoted pattern with confidence
// ≥ 0.9, successCount ≥ 5, and ≥ 2 distinct source journeys.
func (s *Store) GetPromotablePatterns() ([]LearnedPattern, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	var out []LearnedPattern
	for _, p := range f.Patterns {
		if p.PromotedToCore {
			continue
		}
		if p.Confidence < 0.9 || p.SuccessCount < 5 {
			continue
		}
		if len(distinct(p.SourceJourneys)) < 2 {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// PromotePattern marks id as promoted, hiding it from MatchLLKBPattern.
// Promotion is advisory only: it does not publish the pattern into the
// compiled-in catalog (internal/catalog); publishing requires a separate,
// explicit export step.
func (s *Store) PromotePattern(id string) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	for i := range f.Patterns {
		if f.Patterns[i].ID == id {
			f.Patterns[i].PromotedToCore = true
			now := s.clock.Now()
			f.Patterns[i].PromotedAt = &now
			slog.Info("llkb pattern promoted", "id", id, "normalized_text", f.Patterns[i].NormalizedText, "success_count", f.Patterns[i].SuccessCount)
			return s.write(f)
		}
	}
	return nil
}

// PruneOptions controls PrunePatterns.
type PruneOptions struct {
	MaxAgeDays    int
	MinConfidence float64
	MinSuccess    int
}

// DefaultPruneOptions returns the standard pruning thresholds.
func DefaultPruneOptions() PruneOptions {
	return PruneOptions{MaxAgeDays: 90, MinConfidence: 0.3, MinSuccess: 1}
}

// PrunePatterns removes patterns below the given thresholds. Promoted
// patterns are always retained regardless of age or confidence.
func (s *Store) PrunePatterns(opts PruneOptions) (removed int, err error) {
	f, err := s.load()
	if err != nil {
		return 0, err
	}
	cutoff := s.clock.Now().AddDate(0, 0, -opts.MaxAgeDays)
	kept := f.Patterns[:0]
	for _, p := range f.Patterns {
		if p.PromotedToCore {
			kept = append(kept, p)
			continue
		}
		stale := p.LastUsed.Before(cutoff)
		weak := p.Confidence < opts.MinConfidence || p.SuccessCount < opts.MinSuccess
		if stale && weak {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	f.Patterns = kept
	if removed > 0 {
		slog.Info("llkb patterns pruned", "removed", removed, "remaining", len(kept), "max_age_days", opts.MaxAgeDays)
		if err := s.write(f); err != nil {
			return 0, err
		}
	}
	return removed, nil
}

// All returns every pattern currently in the store, for inspection/testing.
func (s *Store) All() ([]LearnedPattern, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return append([]LearnedPattern(nil), f.Patterns...), nil
}

// findPatternByHash looks up a pattern by its content-addressed hash
// (ir.PatternHash over normalizedText+primitiveType), the identity used to
// dedupe patterns recorded from different journeys at creation time.
func findPatternByHash(patterns []LearnedPattern, hash string) int {
	for i, p := range patterns {
		if p.Hash == hash {
			return i
		}
	}
	return -1
}

// findPatternByText looks up a pattern by normalizedText alone, for
// RecordPatternFailure's path, which is never told the primitive type of
// the step whose fix just failed and so cannot recompute a full
// PatternHash. If more than one pattern shares normalizedText across
// distinct primitive types, the first-created one is matched.
func findPatternByText(patterns []LearnedPattern, normalizedText string) int {
	for i, p := range patterns {
		if p.NormalizedText == normalizedText {
			return i
		}
	}
	return -1
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func distinct(ss []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
