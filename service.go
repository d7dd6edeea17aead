package carvekit

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gobeaver/beaver-kit/config"

	"github.com/gobeaver/carvekit/sigscan"
)

// Global instance
var (
	defaultCarver *Carver
	defaultOnce   sync.Once
	defaultErr    error
)

// Carver is a configured scanning service. It applies the configured scan
// limits, format restriction and digest settings to every call, and keeps
// an optional result cache for repeated buffers.
//
// A Carver is safe for concurrent use; the underlying scans are pure
// functions and the cache is thread-safe.
type Carver struct {
	cfg   Config
	base  Options
	cache Cache
	ttl   time.Duration
}

// Builder provides a way to create Carver instances with custom prefixes
type Builder struct {
	prefix string
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// Init initializes the global Carver instance using the builder's prefix
func (b *Builder) Init() error {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return err
	}
	return Init(cfg)
}

// New creates a new Carver instance using the builder's prefix
func (b *Builder) New() (*Carver, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return nil, err
	}
	return New(cfg)
}

// Init initializes the global carver instance
func Init(configs ...*Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultCarver, defaultErr = New(cfg)
	})

	return defaultErr
}

// New creates a new carver instance with given config
func New(cfg *Config) (*Carver, error) {
	// Validation
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	kinds, err := parseFormats(cfg.Formats)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	base := Options{
		MaxFindings: cfg.MaxFindings,
		Kinds:       kinds,
	}
	if cfg.DigestEnabled {
		base.Digest = ChecksumAlgorithm(cfg.DigestAlgorithm)
	}

	c := &Carver{
		cfg:  *cfg,
		base: base,
	}
	if cfg.CacheEnabled {
		c.cache = NewMemoryCache()
		c.ttl = time.Duration(cfg.CacheTTLSeconds) * time.Second
	}
	return c, nil
}

// validateConfig checks configuration validity
func validateConfig(cfg *Config) error {
	if cfg.MaxScanBytes < 0 {
		return fmt.Errorf("%w: max scan bytes must not be negative", ErrInvalidConfig)
	}
	if cfg.MaxFindings <= 0 {
		return fmt.Errorf("%w: max findings must be positive", ErrInvalidConfig)
	}
	if _, err := parseFormats(cfg.Formats); err != nil {
		return err
	}
	if cfg.DigestEnabled {
		if _, err := NewHasher(ChecksumAlgorithm(cfg.DigestAlgorithm)); err != nil {
			return err
		}
	}
	if cfg.CacheTTLSeconds < 0 {
		return fmt.Errorf("%w: cache TTL must not be negative", ErrInvalidConfig)
	}
	if cfg.PreviewBytes < 0 {
		return fmt.Errorf("%w: preview bytes must not be negative", ErrInvalidConfig)
	}
	return nil
}

// parseFormats resolves a comma-separated format list to catalog kinds.
// Both kind names ("jpeg") and common extensions ("jpg") are accepted.
func parseFormats(s string) ([]sigscan.Kind, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var kinds []sigscan.Kind
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if _, ok := sigscan.Lookup(sigscan.Kind(part)); ok {
			kinds = append(kinds, sigscan.Kind(part))
			continue
		}
		if kind, ok := sigscan.KindForExtension(part); ok {
			kinds = append(kinds, kind)
			continue
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, part)
	}
	return kinds, nil
}

// Scan detects carved payloads in data using the carver's configuration.
// Additional options are applied on top of the configured ones. Buffers
// larger than the configured scan limit are rejected with a ScanError.
func (c *Carver) Scan(data []byte, opts ...Option) ([]CarvedPayload, error) {
	if c.cfg.MaxScanBytes > 0 && len(data) > c.cfg.MaxScanBytes {
		return nil, &ScanError{Op: "scan", Size: len(data), Err: ErrBufferTooLarge}
	}

	o := c.base
	for _, opt := range opts {
		opt(&o)
	}

	// Selector predicates have no stable cache key; those scans skip
	// the cache.
	if c.cache == nil || o.Selector != nil {
		return detectPayloads(data, o), nil
	}

	key := scanCacheKey(data, o)
	if cached, ok := c.cache.Get(key); ok {
		if payloads, ok := cached.([]CarvedPayload); ok {
			return payloads, nil
		}
	}

	payloads := detectPayloads(data, o)
	c.cache.Set(key, payloads, c.ttl)
	return payloads, nil
}

// Trailing locates the trailing data of a PNG or JPEG file. Buffers larger
// than the configured scan limit are rejected with a ScanError; all other
// failures report as a nil result.
func (c *Carver) Trailing(data []byte, kind sigscan.Kind) (*TrailingData, error) {
	if c.cfg.MaxScanBytes > 0 && len(data) > c.cfg.MaxScanBytes {
		return nil, &ScanError{Op: "trailing", Size: len(data), Err: ErrBufferTooLarge}
	}
	return ExtractTrailingData(data, kind), nil
}

// TrailingPayloads locates a file's trailing data and scans it for carved
// payloads. Payload offsets index into the trailing slice, not the
// original file.
func (c *Carver) TrailingPayloads(data []byte, kind sigscan.Kind) (*TrailingData, []CarvedPayload, error) {
	trailing, err := c.Trailing(data, kind)
	if err != nil || trailing == nil {
		return trailing, nil, err
	}
	payloads, err := c.Scan(trailing.Bytes)
	return trailing, payloads, err
}

// ScanBitPlanes extracts the selected bit planes from a pixmap and scans
// the packed stream for carved payloads. The extraction budget is the
// configured scan limit, so the stream is always scannable.
func (c *Carver) ScanBitPlanes(p Pixmap, planes []PlaneSpec, opts BitExtractionOptions) (ExtractedBitStream, []CarvedPayload, error) {
	budget := c.cfg.MaxScanBytes
	if budget <= 0 {
		// Full stream: at most 32 planes over Width*Height pixels.
		budget = p.Width * p.Height * 4
	}
	stream := ExtractBitPlaneStream(p, planes, opts, budget)
	payloads, err := c.Scan(stream.Bytes)
	return stream, payloads, err
}

// Preview returns the payload's leading bytes, clamped to the configured
// preview window.
func (c *Carver) Preview(data []byte, payload CarvedPayload) []byte {
	return payload.Preview(data, c.cfg.PreviewBytes)
}

// Config returns a copy of the carver's configuration.
func (c *Carver) Config() Config {
	return c.cfg
}

// Cache returns the carver's result cache, or nil when caching is
// disabled.
func (c *Carver) Cache() Cache {
	return c.cache
}

// Service returns the global carver instance
func Service() *Carver {
	if defaultCarver == nil {
		_ = Init()
	}
	return defaultCarver
}

// Default returns the global instance, initializing if needed with error handling
func Default() (*Carver, error) {
	if defaultCarver == nil {
		if err := Init(); err != nil {
			return nil, err
		}
	}
	return defaultCarver, nil
}

// NewFromEnv creates instance from environment variables (convenience constructor)
func NewFromEnv() (*Carver, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// InitFromEnv initializes the global instance from environment variables (convenience method)
func InitFromEnv() error {
	return Init()
}

// Reset clears the global instance (for testing)
func Reset() {
	defaultCarver = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}

// Scan detects carved payloads using the global carver instance.
func Scan(data []byte, opts ...Option) ([]CarvedPayload, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return c.Scan(data, opts...)
}
