// Package cachestrategy defines how the in-memory response cache picks the
// bodies it drops.
package cachestrategy

// Strategy holds response bodies by cache key and evicts them by its own
// policy. Implementations must be safe for concurrent use.
type Strategy interface {
	Get(key string) ([]byte, bool)

	// Add stores value under key, replacing any previous body, and reports
	// whether another entry was evicted to make room.
	Add(key string, value []byte) bool

	// Remove drops key and reports whether it was held.
	Remove(key string) bool

	// Len is the number of bodies held.
	Len() int

	// Bytes is the total size of the bodies held.
	Bytes() int64
}
