package carvekit

import (
	"github.com/gobwas/glob"

	"github.com/gobeaver/carvekit/sigscan"
)

// ============================================================================
// PayloadSelector Interface
// ============================================================================

// PayloadSelector defines the interface for filtering carved payloads.
//
// This interface is designed to be:
// - Future-proof: New selector types can be added without breaking existing code
// - Composable: Selectors can be combined with And, Or, Not
//
// Example usage:
//
//	// Only images
//	payloads := carvekit.DetectCarvedPayloads(data,
//	    carvekit.WithSelector(carvekit.MatchMIME("image/*")))
//
//	// Composed selector
//	selector := carvekit.And(
//	    carvekit.MatchKinds(sigscan.KindPNG, sigscan.KindJPEG),
//	    carvekit.MinLength(64),
//	)
//	payloads := carvekit.DetectCarvedPayloads(data, carvekit.WithSelector(selector))
type PayloadSelector interface {
	// Match returns true if the payload should be included in results.
	Match(payload CarvedPayload) bool
}

// Filter returns the payloads the selector matches, preserving order.
// A nil selector matches everything.
func Filter(payloads []CarvedPayload, selector PayloadSelector) []CarvedPayload {
	if selector == nil {
		return payloads
	}
	var results []CarvedPayload
	for _, p := range payloads {
		if selector.Match(p) {
			results = append(results, p)
		}
	}
	return results
}

// ============================================================================
// Built-in Selectors
// ============================================================================

// AllSelector matches every payload.
type AllSelector struct{}

func (s AllSelector) Match(payload CarvedPayload) bool { return true }

// All returns a selector that matches every payload.
func All() PayloadSelector {
	return AllSelector{}
}

// ============================================================================
// MatchMIME - Pattern matching
// ============================================================================

type mimeSelector struct {
	pattern string
	g       glob.Glob
}

// MatchMIME creates a selector matching payload media types against a glob
// pattern. The path separator is '/', so a single '*' stays within one
// MIME component.
//
// Examples:
//
//	MatchMIME("image/*")        // Any image format
//	MatchMIME("application/*")  // PDF and ZIP payloads
//	MatchMIME("image/png")      // Exact type
func MatchMIME(pattern string) PayloadSelector {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		g = nil
	}
	return &mimeSelector{pattern: pattern, g: g}
}

func (s *mimeSelector) Match(payload CarvedPayload) bool {
	if s.g == nil {
		return false
	}
	return s.g.Match(payload.MIME)
}

// ============================================================================
// Kind, Length and Confidence Selectors
// ============================================================================

type kindSelector struct {
	kinds map[sigscan.Kind]bool
}

// MatchKinds creates a selector matching payloads of any given kind.
func MatchKinds(kinds ...sigscan.Kind) PayloadSelector {
	set := make(map[sigscan.Kind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return &kindSelector{kinds: set}
}

func (s *kindSelector) Match(payload CarvedPayload) bool {
	return s.kinds[payload.Kind]
}

type minLengthSelector struct {
	min int
}

// MinLength creates a selector matching payloads of at least n bytes.
func MinLength(n int) PayloadSelector {
	return &minLengthSelector{min: n}
}

func (s *minLengthSelector) Match(payload CarvedPayload) bool {
	return payload.Length >= s.min
}

type maxLengthSelector struct {
	max int
}

// MaxLength creates a selector matching payloads of at most n bytes.
func MaxLength(n int) PayloadSelector {
	return &maxLengthSelector{max: n}
}

func (s *maxLengthSelector) Match(payload CarvedPayload) bool {
	return payload.Length <= s.max
}

type confidenceSelector struct {
	min Confidence
}

// MinConfidence creates a selector matching payloads at or above the given
// confidence, ordered low < medium < high.
func MinConfidence(c Confidence) PayloadSelector {
	return &confidenceSelector{min: c}
}

func (s *confidenceSelector) Match(payload CarvedPayload) bool {
	return payload.Confidence.rank() >= s.min.rank()
}

// ============================================================================
// Composable Selectors (And, Or, Not)
// ============================================================================

type andSelector struct {
	selectors []PayloadSelector
}

// And matches only if ALL selectors match.
func And(selectors ...PayloadSelector) PayloadSelector {
	return &andSelector{selectors: selectors}
}

func (s *andSelector) Match(payload CarvedPayload) bool {
	for _, sel := range s.selectors {
		if !sel.Match(payload) {
			return false
		}
	}
	return true
}

type orSelector struct {
	selectors []PayloadSelector
}

// Or matches if ANY selector matches.
func Or(selectors ...PayloadSelector) PayloadSelector {
	return &orSelector{selectors: selectors}
}

func (s *orSelector) Match(payload CarvedPayload) bool {
	for _, sel := range s.selectors {
		if sel.Match(payload) {
			return true
		}
	}
	return false
}

type notSelector struct {
	selector PayloadSelector
}

// Not inverts a selector's match result.
func Not(selector PayloadSelector) PayloadSelector {
	return &notSelector{selector: selector}
}

func (s *notSelector) Match(payload CarvedPayload) bool {
	return !s.selector.Match(payload)
}

// ============================================================================
// FuncSelector - Custom logic (escape hatch for any use case)
// ============================================================================

type funcSelector struct {
	matchFn func(CarvedPayload) bool
}

// FuncSelector creates a selector from a custom function.
// This is the escape hatch for any filtering logic not covered by built-ins.
//
// Example:
//
//	FuncSelector(func(p carvekit.CarvedPayload) bool {
//	    return p.Start > 0 && p.Length > 1024
//	})
func FuncSelector(fn func(CarvedPayload) bool) PayloadSelector {
	return &funcSelector{matchFn: fn}
}

func (s *funcSelector) Match(payload CarvedPayload) bool { return s.matchFn(payload) }
