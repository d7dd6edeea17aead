package carvekit

import (
	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Scan limits
	MaxScanBytes int `env:"CARVEKIT_MAX_SCAN_BYTES,default:4194304"` // 4MB default
	MaxFindings  int `env:"CARVEKIT_MAX_FINDINGS,default:24"`

	// Formats restricts scans to a comma-separated kind list, e.g.
	// "png,jpeg,zip". Empty means every catalog format.
	Formats string `env:"CARVEKIT_FORMATS"`

	// Payload digest settings
	DigestEnabled   bool   `env:"CARVEKIT_DIGEST_ENABLED,default:false"`
	DigestAlgorithm string `env:"CARVEKIT_DIGEST_ALGORITHM,default:xxhash"`

	// Scan result cache settings
	CacheEnabled    bool `env:"CARVEKIT_CACHE_ENABLED,default:false"`
	CacheTTLSeconds int  `env:"CARVEKIT_CACHE_TTL_SECONDS,default:300"`

	// PreviewBytes bounds hex-style payload previews
	PreviewBytes int `env:"CARVEKIT_PREVIEW_BYTES,default:8192"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
