package configs

import "time"

// Cache configures the read-through memo in front of the repository.
// LiveTTL applies to campaign list reads, HistoryTTL to notes-history and
// spec-version reads. TTL values are in seconds. The cache absorbs the
// UI's re-render-heavy call pattern and is not relied on for correctness.
type Cache struct {
	LiveTTL    int `env:"LIVE_TTL" envDefault:"5"`
	HistoryTTL int `env:"HISTORY_TTL" envDefault:"300"`
}

// Live returns LiveTTL as a duration.
func (c Cache) Live() time.Duration { return time.Duration(c.LiveTTL) * time.Second }

// History returns HistoryTTL as a duration.
func (c Cache) History() time.Duration { return time.Duration(c.HistoryTTL) * time.Second }
