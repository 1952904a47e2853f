package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ArtifactKeyOpts identify one rendered plant.
type ArtifactKeyOpts struct {
	Genome   string  `json:"genome"`
	Stage    int     `json:"stage"`
	Seed     string  `json:"seed"`
	PotStyle string  `json:"pot_style"`
	Format   string  `json:"format"`
	Filters  bool    `json:"filters"`
	Scale    float64 `json:"scale,omitempty"` // raster formats only
}

// SheetKeyOpts identify one rendered showcase sheet.
type SheetKeyOpts struct {
	Sheet   string  `json:"sheet"`
	Format  string  `json:"format"`
	Filters bool    `json:"filters"`
	Scale   float64 `json:"scale,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	ArtifactKey(opts ArtifactKeyOpts) string
	SheetKey(opts SheetKeyOpts) string
}

// DefaultKeyer hashes the options into "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns the key for a rendered plant.
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey("artifact", opts)
}

// SheetKey returns the key for a rendered sheet.
func (DefaultKeyer) SheetKey(opts SheetKeyOpts) string {
	return hashKey("sheet", opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
