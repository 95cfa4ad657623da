// Package cachedstore keeps recently used responses in memory in front of a
// slower Store, so a session re-reading a page skips the disk or network.
package cachedstore

import "fmt"

// Backend holds cached responses. Implementations own both storage and
// eviction.
type Backend interface {
	// Get returns the cached body for key.
	Get(key string) ([]byte, bool)

	// Set caches body under key.
	Set(key string, body []byte)

	// Delete drops key from the cache.
	Delete(key string)

	// Stats returns a snapshot of the cache counters.
	Stats() Stats
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
	Bytes   int64
}

// HitRate returns hits as a percentage of all reads, or 0 before any read.
func (s Stats) HitRate() float64 {
	reads := s.Hits + s.Misses
	if reads == 0 {
		return 0
	}
	return float64(s.Hits) / float64(reads) * 100
}

// String formats s for logs, e.g. "12 hits, 3 misses (80.0%), 4 entries, 51234 bytes".
func (s Stats) String() string {
	return fmt.Sprintf("%d hits, %d misses (%.1f%%), %d entries, %d bytes",
		s.Hits, s.Misses, s.HitRate(), s.Entries, s.Bytes)
}
