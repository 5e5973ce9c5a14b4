package assetkit

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/alnah/go-assetkit/internal/fileutil"
)

// StaticFile is one entry of the output set. Exactly one of SourcePath
// (copy the file as is) or Content (write these bytes) is used.
type StaticFile struct {
	SourcePath  string // raw-copy entry
	Content     []byte // pre-rendered entry
	Destination string // slash-separated, relative to the output directory
	Plugin      string // owning plugin slug, empty for host entries
}

// IsContent reports whether f carries pre-rendered content.
func (f StaticFile) IsContent() bool {
	return f.SourcePath == ""
}

// StaticFileSet is the host's output set. It is safe for concurrent use.
type StaticFileSet struct {
	mu    sync.Mutex
	files []StaticFile
}

// NewStaticFileSet creates an empty set.
func NewStaticFileSet() *StaticFileSet {
	return &StaticFileSet{}
}

// Add appends f.
func (s *StaticFileSet) Add(f StaticFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, f)
}

// Remove drops every copy entry whose SourcePath is sourcePath and returns
// how many were dropped.
func (s *StaticFileSet) Remove(sourcePath string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.files[:0]
	removed := 0
	for _, f := range s.files {
		if !f.IsContent() && f.SourcePath == sourcePath {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	clear(s.files[len(kept):])
	s.files = kept
	return removed
}

// Files returns a snapshot of the entries in insertion order.
func (s *StaticFileSet) Files() []StaticFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StaticFile, len(s.files))
	copy(out, s.files)
	return out
}

// Len returns the number of entries.
func (s *StaticFileSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// Transform replaces each content entry with fn's result.
func (s *StaticFileSet) Transform(fn func(StaticFile) (StaticFile, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.files {
		if !f.IsContent() {
			continue
		}
		out, err := fn(f)
		if err != nil {
			return err
		}
		s.files[i] = out
	}
	return nil
}

// Write materializes every entry under root. Later entries for the same
// destination overwrite earlier ones.
func (s *StaticFileSet) Write(root string) (int, error) {
	written := 0
	for _, f := range s.Files() {
		if !filepath.IsLocal(filepath.FromSlash(f.Destination)) {
			return written, fmt.Errorf("%w: destination %q escapes output directory", ErrWrite, f.Destination)
		}
		dst := filepath.Join(root, filepath.FromSlash(f.Destination))

		var err error
		if f.IsContent() {
			err = fileutil.WriteFileAtomic(dst, f.Content, 0o644)
		} else {
			err = fileutil.CopyFile(f.SourcePath, dst)
		}
		if err != nil {
			return written, fmt.Errorf("%w: %s: %v", ErrWrite, f.Destination, err)
		}
		written++
	}
	return written, nil
}
