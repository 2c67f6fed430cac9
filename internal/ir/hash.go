package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix lets
// the hashing algorithm evolve without colliding with previously computed
// hashes.
const (
	DomainJourney = "journeyc/journey/v1"
	DomainPattern = "journeyc/pattern/v1"
	DomainStep    = "journeyc/step/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte separator prevents
// domain/data boundary ambiguity (a document that happens to start with the
// domain string cannot be crafted to collide with a genuine domain prefix).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// JourneyHash computes a content-addressed hash for a compiled IR journey.
// Two compilations of semantically identical journeys (same id, title, tier,
// scope, actor, steps, and tags in the same order) produce the same hash regardless of
// insignificant whitespace in the source Markdown. This powers idempotent
// re-compilation detection: the CLI layer can skip regenerating a test file
// when the journey's hash hasn't changed since the last run.
func JourneyHash(j *Journey) (string, error) {
	return hashJSONValue(DomainJourney, struct {
		ID    string   `json:"id"`
		Title string   `json:"title"`
		Tier  string   `json:"tier"`
		Scope string   `json:"scope"`
		Actor string   `json:"actor"`
		Steps []Step   `json:"steps,omitempty"`
		Tags  []string `json:"tags,omitempty"`
	}{j.ID, j.Title, string(j.Tier), j.Scope, j.Actor, j.Steps, j.Tags})
}

// PatternHash computes a stable hash for an LLKB learned pattern, keyed on
// its normalized text and mapped primitive type. Used to deduplicate
// patterns recorded from different journeys that happen to normalize to the
// same text.
func PatternHash(normalizedText, primitiveType string) (string, error) {
	return hashJSONValue(DomainPattern, struct {
		NormalizedText string `json:"normalized_text"`
		PrimitiveType  string `json:"primitive_type"`
	}{normalizedText, primitiveType})
}

// hashJSONValue marshals v to JSON, re-parses it into the IRValue algebra
// (so integers stay integers instead of decaying to float64, which a plain
// map[string]any round trip through encoding/json would cause), canonicalizes
// it, and hashes the result with domain separation.
func hashJSONValue(domain string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("hashJSONValue: marshal: %w", err)
	}
	irVal, err := UnmarshalIRValue(data)
	if err != nil {
		return "", fmt.Errorf("hashJSONValue: %w", err)
	}
	canonical, err := MarshalCanonical(irVal)
	if err != nil {
		return "", fmt.Errorf("hashJSONValue: canonicalize: %w", err)
	}
	return hashWithDomain(domain, canonical), nil
}
