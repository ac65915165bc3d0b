package fsutil

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// FS is the narrow file system surface the resolver needs. It exists so
// tests can observe which files a compilation actually reads.
type FS interface {
	// Exists reports whether path names an existing file or directory.
	Exists(path string) bool
	// Open opens path for reading.
	Open(path string) (io.ReadCloser, error)
	// WriteFile creates or truncates path and writes data to it.
	WriteFile(path string, data []byte) error
}

// OS is the FS backed by the host file system.
type OS struct{}

// Exists implements FS.
func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Open implements FS.
func (OS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// WriteFile implements FS.
func (OS) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// ReadLines reads the whole of path and splits it into lines that keep their
// "\n" terminators. The last line has no terminator if the file does not end
// with one. The file is closed before ReadLines returns.
func ReadLines(fsys FS, path string) ([]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
