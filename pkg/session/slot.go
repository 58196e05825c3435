package session

import (
	"os"
	"sync"
)

// Slot is the single durable storage location for a self-encoded
// artifact. Writes are atomic replace-or-delete operations; the session
// store is the only writer.
type Slot interface {
	Load() (string, bool)
	Store(value string)
	Clear()
}

// MemorySlot keeps the artifact in process memory. Suitable for tests
// and for sessions that should not outlive the process.
type MemorySlot struct {
	mu    sync.Mutex
	value string
	set   bool
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Load() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.set
}

func (s *MemorySlot) Store(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.set = true
}

func (s *MemorySlot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
	s.set = false
}

// FileSlot persists the artifact to a single file, surviving process
// restarts. Read and decode failures degrade to "no artifact": a
// corrupt slot silently resolves to the logged-out state.
type FileSlot struct {
	Path string
}

func NewFileSlot(path string) *FileSlot {
	return &FileSlot{Path: path}
}

func (s *FileSlot) Load() (string, bool) {
	b, err := os.ReadFile(s.Path)
	if err != nil || len(b) == 0 {
		return "", false
	}
	return string(b), true
}

func (s *FileSlot) Store(value string) {
	_ = os.WriteFile(s.Path, []byte(value), 0o600)
}

func (s *FileSlot) Clear() {
	_ = os.Remove(s.Path)
}
