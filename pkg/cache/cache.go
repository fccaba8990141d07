// Package cache provides the caching layer for traced datasets and
// rendered artifacts.
//
// A [Cache] stores opaque byte blobs under hashed keys. Backends:
//
//   - [FileCache]: directory-based, the CLI default
//   - [RedisCache]: shared cache for multi-instance serving
//   - [MongoCache]: TTL collection, for deployments already on Mongo
//   - [NullCache]: disables caching
//
// A [Keyer] builds the keys: dataset keys hash the field identity together
// with the seeding parameters, artifact keys hash the dataset content
// together with the render options. Changing any input therefore changes
// the key, so stale entries are never served.
package cache

import (
	"context"
	"time"
)

// Cache stores and retrieves byte blobs.
type Cache interface {
	// Get returns the cached data and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// DatasetKeyOpts are the seeding parameters that identify a traced dataset.
type DatasetKeyOpts struct {
	DSep       float64
	DTest      float64
	StepFactor float64
	MaxSteps   int
	MaxLines   int
	SeedX      float64
	SeedY      float64
	HasSeed    bool
}

// ArtifactKeyOpts are the render parameters that identify an output artifact.
type ArtifactKeyOpts struct {
	Format    string
	Style     string
	Width     int
	Height    int
	Color     string
	LineWidth float64
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// DatasetKey returns the key for a traced dataset given the field's
	// content hash and the seeding parameters.
	DatasetKey(fieldHash string, opts DatasetKeyOpts) string
	// ArtifactKey returns the key for a rendered artifact given the
	// dataset's content hash and the render parameters.
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes keys with SHA-256 over the JSON form of the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DatasetKey generates a key with the "dataset" prefix.
func (k *DefaultKeyer) DatasetKey(fieldHash string, opts DatasetKeyOpts) string {
	return hashKey("dataset", fieldHash, opts)
}

// ArtifactKey generates a key with the "artifact" prefix.
func (k *DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", datasetHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
