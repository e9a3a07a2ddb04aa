package configs

// Storage configures where uploaded spec PDFs are kept on disk. Each
// campaign gets its own subdirectory under Root, named by campaign id.
// LegacyDir is a flat directory checked as a fallback when resolving
// filenames that predate the per-campaign layout.
type Storage struct {
	Root      string `env:"ROOT" envDefault:"data/specs"`
	LegacyDir string `env:"LEGACY_DIR" envDefault:"data/static"`
}
