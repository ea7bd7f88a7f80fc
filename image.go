package lumen

import (
	"fmt"
	"image"
	"os"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageCache decodes layer images from disk and memoizes the result. A path
// that fails to load is logged once and then drawn untextured.
type ImageCache struct {
	entries map[string]imageEntry
}

type imageEntry struct {
	img image.Image
	err error
}

// NewImageCache returns an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{entries: make(map[string]imageEntry)}
}

// Load returns the decoded image for path, or nil if it could not be loaded.
func (c *ImageCache) Load(path string) image.Image {
	if e, ok := c.entries[path]; ok {
		return e.img
	}
	img, err := DecodeImageFile(path)
	if err != nil {
		Logger().Warn("failed to load image", "path", path, "err", err)
		c.entries[path] = imageEntry{err: err}
		return nil
	}
	c.entries[path] = imageEntry{img: img}
	return img
}

// Put stores an already-decoded image under path, replacing any cached entry.
func (c *ImageCache) Put(path string, img image.Image) {
	c.entries[path] = imageEntry{img: img}
}

// Err returns the load error recorded for path, if any.
func (c *ImageCache) Err(path string) error {
	return c.entries[path].err
}

// Forget drops path so the next Load retries from disk.
func (c *ImageCache) Forget(path string) {
	delete(c.entries, path)
}

// Len returns the number of cached paths, failed loads included.
func (c *ImageCache) Len() int { return len(c.entries) }

// DecodeImageFile opens and decodes an image, detecting the format from its
// contents rather than its extension.
func DecodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}
