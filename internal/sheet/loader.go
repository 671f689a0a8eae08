package sheet

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/bmp" // Register BMP format decoder
)

// Cache provides thread-safe caching of decoded sprite sheets to avoid
// redundant disk reads.
//
// The cache stores decoded image.Image objects keyed by their file path.
// Once a sheet is loaded, subsequent Load() calls for the same path return
// the cached copy without disk I/O. This matters for the HTTP server and
// for CLI workflows that detect and then slice the same file.
//
// Cache is safe for concurrent use by multiple goroutines.
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). Long-running processes handling many sheets should clean up
// periodically to prevent unbounded memory growth.
type Cache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewCache creates and initializes a new empty sheet cache.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk if not
// cached. Supported formats are PNG, JPEG, GIF, and BMP.
//
// The image is cached using the exact path string provided. Different paths
// to the same file (relative vs absolute) result in separate cache entries.
func (c *Cache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrInvalidImage, filepath.Base(path), err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadSheet decodes the image at path and wraps it in a Sheet using opts.
func (c *Cache) LoadSheet(path string, opts Options) (*Sheet, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	return New(img, opts)
}

// Clear removes all images from the cache, freeing the associated memory.
// After Clear(), all sheets must be reloaded from disk on subsequent
// Load() calls.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path. If the path is
// not in the cache, Evict does nothing.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Info contains metadata about a loaded sprite sheet file.
type Info struct {
	// Width is the sheet width in pixels.
	Width int `json:"width"`

	// Height is the sheet height in pixels.
	Height int `json:"height"`

	// Format is the image format guessed from the file extension:
	// "png", "jpeg", "gif", "bmp", or "unknown".
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadInfo loads a sheet (through the cache) and returns its metadata.
func (c *Cache) LoadInfo(path string) (*Info, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".bmp":
		format = "bmp"
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	bounds := img.Bounds()
	return &Info{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}
