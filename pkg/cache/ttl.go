package cache

import "time"

// Default TTLs per entry kind. Datasets are pure functions of their key
// inputs so they could live forever; the TTLs bound disk growth for
// long-running servers.
const (
	// TTLDataset is the lifetime of traced streamline datasets.
	TTLDataset = 30 * 24 * time.Hour

	// TTLArtifact is the lifetime of rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)
