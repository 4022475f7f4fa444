package assets

type Config struct {
	// Directory walked for source files
	SourceDir string
	// Output directory for optimized files
	OutputDir string
	// Globs (relative to SourceDir) selecting files to copy, empty means all
	Include []string
	// Path to the JSON build manifest, empty disables it
	ManifestPath string
	// Whether to write precompressed .gz siblings for text assets
	Gzip bool
	// Files smaller than this are not precompressed
	GzipMinSize int64
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		SourceDir:    "src",
		OutputDir:    "build",
		ManifestPath: "build/manifest.json",
		Gzip:         false,
		GzipMinSize:  1024,
	}
}
