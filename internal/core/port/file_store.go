package port

// FileStore is the outbound port for the per-campaign attachment tree.
// Only the spec upload path writes through it; no other component touches
// the attachment directories.
type FileStore interface {
	// EnsureDir creates the campaign's attachment directory if missing.
	EnsureDir(campaignID int64) error
	// Exists reports whether filename is already present in the
	// campaign's directory.
	Exists(campaignID int64, filename string) bool
	// Save writes content under the campaign's directory. The write is
	// atomic: a temp file is renamed into place.
	Save(campaignID int64, filename string, content []byte) error
	// Remove deletes filename from the campaign's directory. Used as
	// compensation when the metadata transaction fails.
	Remove(campaignID int64, filename string) error
	// Resolve returns the on-disk path for filename, checking the
	// campaign directory first and a flat legacy directory second.
	Resolve(campaignID int64, filename string) (path string, ok bool)
}

// Invalidator receives a signal after every successful write operation.
// The read-through cache subscribes to it; invalidation is whole-cache,
// trading precision for simplicity.
type Invalidator interface {
	Invalidate()
}
