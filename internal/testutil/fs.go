package testutil

import (
	"io"
	"sync"

	"github.com/vk/glsipy/internal/fsutil"
)

// CountingFS wraps an fsutil.FS and records how often each path was opened
// and written.
type CountingFS struct {
	fsutil.FS

	mu     sync.Mutex
	opens  map[string]int
	writes map[string]int
}

// NewCountingFS wraps fsys, or the host file system when fsys is nil.
func NewCountingFS(fsys fsutil.FS) *CountingFS {
	if fsys == nil {
		fsys = fsutil.OS{}
	}
	return &CountingFS{
		FS:     fsys,
		opens:  make(map[string]int),
		writes: make(map[string]int),
	}
}

// Open implements fsutil.FS.
func (c *CountingFS) Open(path string) (io.ReadCloser, error) {
	c.mu.Lock()
	c.opens[path]++
	c.mu.Unlock()
	return c.FS.Open(path)
}

// WriteFile implements fsutil.FS.
func (c *CountingFS) WriteFile(path string, data []byte) error {
	c.mu.Lock()
	c.writes[path]++
	c.mu.Unlock()
	return c.FS.WriteFile(path, data)
}

// Opens reports how many times path was opened.
func (c *CountingFS) Opens(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opens[path]
}

// Writes reports how many files were written in total.
func (c *CountingFS) Writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, count := range c.writes {
		n += count
	}
	return n
}
