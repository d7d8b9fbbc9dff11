package graphics

import (
	"sync"
)

type atlasKey struct {
	path   string
	filter Filter
}

var (
	atlasCache = make(map[atlasKey]*Atlas)
	cacheMutex sync.RWMutex
)

// GetAtlas returns a cached atlas for the given path and filter, loading it
// from disk on first use. An empty path yields the procedural atlas.
func GetAtlas(path string, filter Filter) (*Atlas, error) {
	key := atlasKey{path, filter}

	cacheMutex.RLock()
	if a, ok := atlasCache[key]; ok {
		cacheMutex.RUnlock()
		return a, nil
	}
	cacheMutex.RUnlock()

	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	// Double check locking
	if a, ok := atlasCache[key]; ok {
		return a, nil
	}

	var a *Atlas
	if path == "" {
		a = DefaultAtlas(16, filter)
	} else {
		var err error
		if a, err = LoadAtlas(path, filter); err != nil {
			return nil, err
		}
	}

	atlasCache[key] = a
	return a, nil
}
