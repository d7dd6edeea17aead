package carvekit

import "github.com/gobeaver/carvekit/sigscan"

// DefaultMaxFindings caps how many payloads a scan reports when no option
// overrides it.
const DefaultMaxFindings = 24

// Option represents a scan option
type Option func(*Options)

// Options contains all possible options for a scan
type Options struct {
	// MaxFindings caps how many payloads the scan reports.
	// Zero or negative disables the scan entirely.
	MaxFindings int

	// Kinds restricts detection to the given formats.
	// Empty means every format in the catalog.
	Kinds []sigscan.Kind

	// Selector filters payloads before they count against MaxFindings
	Selector PayloadSelector

	// Digest selects the checksum algorithm applied to each payload.
	// Empty means payloads carry no digest.
	Digest ChecksumAlgorithm
}

// newOptions returns the scan defaults with the given options applied.
func newOptions(opts []Option) Options {
	o := Options{MaxFindings: DefaultMaxFindings}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxFindings caps how many payloads the scan reports
func WithMaxFindings(n int) Option {
	return func(o *Options) {
		o.MaxFindings = n
	}
}

// WithKinds restricts detection to the given formats
func WithKinds(kinds ...sigscan.Kind) Option {
	return func(o *Options) {
		o.Kinds = kinds
	}
}

// WithSelector filters payloads with a selector before they count against
// the findings cap
func WithSelector(selector PayloadSelector) Option {
	return func(o *Options) {
		o.Selector = selector
	}
}

// WithDigest computes a checksum of each payload's bytes
func WithDigest(algorithm ChecksumAlgorithm) Option {
	return func(o *Options) {
		o.Digest = algorithm
	}
}
