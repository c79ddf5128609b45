package questions

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"sync"
)

// Store holds the prompt list loaded at startup.
type Store struct {
	mu    sync.RWMutex
	items []string
	intn  func(n int) int
}

func NewStore() *Store {
	return &Store{intn: rand.Intn}
}

// NewStoreWithRand lets tests pin the random pick.
func NewStoreWithRand(intn func(n int) int) *Store {
	return &Store{intn: intn}
}

// Load replaces the list with the non-empty lines of the file at path.
// On error the store is left empty; callers log the error and keep running.
func (s *Store) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		s.set(nil)
		return fmt.Errorf("open question file: %w", err)
	}
	defer f.Close()

	return s.LoadFrom(f)
}

// LoadFrom reads trimmed, non-empty lines from r.
func (s *Store) LoadFrom(r io.Reader) error {
	var items []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			items = append(items, line)
		}
	}
	if err := scanner.Err(); err != nil {
		s.set(nil)
		return fmt.Errorf("read questions: %w", err)
	}

	s.set(items)
	return nil
}

// PickRandom returns a uniformly chosen question, or false when the list is empty.
func (s *Store) PickRandom() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.items) == 0 {
		return "", false
	}
	return s.items[s.intn(len(s.items))], true
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// All returns a copy of the loaded list.
func (s *Store) All() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) set(items []string) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}
