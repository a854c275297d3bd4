package frame

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
)

// Source supplies one frame per processing cycle.
//
// Implementations may return the same image repeatedly (a paused stream, a
// still) or advance through a sequence. Returning an error marks the cycle
// as having no frame; detection degrades to "no document found".
type Source interface {
	CurrentFrame() (image.Image, error)
}

// StillSource wraps a single in-memory image as a Source.
type StillSource struct {
	Image image.Image
}

// CurrentFrame returns the wrapped image, or an error if none is set.
func (s *StillSource) CurrentFrame() (image.Image, error) {
	if s.Image == nil {
		return nil, errors.New("no frame available")
	}
	return s.Image, nil
}

// FileSource plays a sequence of image files as a frame stream, advancing
// one file per CurrentFrame call and wrapping around at the end.
//
// Decoded images are cached so replaying the sequence does not re-read
// disk. FileSource is safe for concurrent use, though the engine only ever
// drives it from one cycle at a time.
type FileSource struct {
	mu    sync.Mutex
	paths []string
	next  int
	cache map[string]image.Image
}

// NewFileSource creates a FileSource over the given image files.
// Supported formats are PNG, JPEG, and GIF.
func NewFileSource(paths ...string) (*FileSource, error) {
	if len(paths) == 0 {
		return nil, errors.New("no frame files given")
	}
	return &FileSource{
		paths: append([]string(nil), paths...),
		cache: make(map[string]image.Image),
	}, nil
}

// CurrentFrame returns the next frame in the sequence.
func (s *FileSource) CurrentFrame() (image.Image, error) {
	s.mu.Lock()
	path := s.paths[s.next]
	s.next = (s.next + 1) % len(s.paths)
	if img, ok := s.cache[path]; ok {
		s.mu.Unlock()
		return img, nil
	}
	s.mu.Unlock()

	img, err := loadImage(path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[path] = img
	s.mu.Unlock()
	return img, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame %s: %w", path, err)
	}
	return img, nil
}
