package lichess

import (
	"sort"
	"strings"
)

// CacheKey names the cache entry for a request to path (relative to the
// API root) with the given query parameters: path separators become
// underscores, each parameter adds "_key=value" in key order, and ".json"
// ends the name.
//
//	CacheKey("user/alice/games", map[string]string{"nb": "0"})
//	// "user_alice_games_nb=0.json"
func CacheKey(path string, params map[string]string) string {
	name := strings.ReplaceAll(path, "/", "_")
	if len(params) == 0 {
		return name + ".json"
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}
	return name + "_" + strings.Join(pairs, "_") + ".json"
}
