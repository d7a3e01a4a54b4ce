package images

import (
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
)

// ThumbCache caches resized thumbnails keyed by source path and size
type ThumbCache struct {
	cache map[string]*image.NRGBA
	mu    sync.RWMutex
}

// Global thumbnail cache
var globalCache = &ThumbCache{
	cache: make(map[string]*image.NRGBA),
}

// LoadThumbnail loads the image at path and resizes it to size x size pixels.
// The source aspect ratio is deliberately ignored so that every thumbnail has
// identical dimensions. Source files are never modified. Results are cached,
// so diff entries referring to the same image decode it only once.
func LoadThumbnail(path string, size int) (*image.NRGBA, error) {
	key := fmt.Sprintf("%s#%d", path, size)

	// Check cache first
	globalCache.mu.RLock()
	if thumb, ok := globalCache.cache[key]; ok {
		globalCache.mu.RUnlock()
		return thumb, nil
	}
	globalCache.mu.RUnlock()

	src, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}

	// Resize also normalizes whatever color model the decoder produced to NRGBA.
	thumb := imaging.Resize(src, size, size, imaging.Lanczos)

	globalCache.mu.Lock()
	globalCache.cache[key] = thumb
	globalCache.mu.Unlock()

	return thumb, nil
}
