package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a reusable scan configuration loaded from a YAML file.
// Command line flags override profile values.
type Profile struct {
	// Formats restricts scans to a comma-separated format list,
	// e.g. "png,jpeg,zip".
	Formats string `yaml:"formats"`

	// MIME filters payloads by media type glob, e.g. "image/*".
	MIME string `yaml:"mime"`

	// MinLength and MaxLength bound payload sizes in bytes. Zero
	// means unbounded.
	MinLength int `yaml:"min_length"`
	MaxLength int `yaml:"max_length"`

	// MinConfidence drops payloads below a grade: low, medium, high.
	MinConfidence string `yaml:"min_confidence"`

	// MaxFindings caps reported payloads per scan.
	MaxFindings int `yaml:"max_findings"`

	// Digest selects a payload checksum algorithm, e.g. "sha256".
	Digest string `yaml:"digest"`

	// Planes selects bit planes for image inputs, e.g. "R1,G1,B1".
	Planes string `yaml:"planes"`

	// Traversal adjustments for bit plane extraction.
	ScanOrder    string `yaml:"scan_order"`
	ChannelOrder string `yaml:"channel_order"`
	BitOrder     string `yaml:"bit_order"`
	PackOrder    string `yaml:"pack_order"`

	// Trailing also scans data found after a host container's end.
	Trailing bool `yaml:"trailing"`
}

// LoadProfile reads a YAML scan profile from path.
func LoadProfile(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return &p, nil
}
