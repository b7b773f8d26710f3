package store

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/docview/internal/doctree"
	"github.com/dgallion1/docview/internal/parser"
)

var (
	// ErrNotLoaded is returned by Current before any successful Load.
	ErrNotLoaded = errors.New("no document loaded")
	// ErrNotFound is returned for unknown document IDs.
	ErrNotFound = errors.New("document not found")
)

// Entry is one stored document with its load metadata.
type Entry struct {
	ID          string            `json:"doc_id"`
	Filename    string            `json:"filename"`
	Title       string            `json:"title"`
	ContentHash string            `json:"content_hash"`
	LoadedAt    time.Time         `json:"loaded_at"`
	Document    *doctree.Document `json:"-"`
}

// Store owns parsed documents for the process lifetime. Documents are
// immutable; Load swaps in a freshly parsed Document and never mutates a
// stored one, so readers can hold returned values without locking.
type Store struct {
	mu      sync.RWMutex
	current *Entry
	docs    map[string]*Entry
	opts    parser.Options
}

func New(opts parser.Options) *Store {
	return &Store{
		docs: make(map[string]*Entry),
		opts: opts,
	}
}

// Load parses data with the parser matching filename and stores the result,
// replacing the current document. Parse failures (including
// parser.ErrNoHeadings) leave the previous document in place.
func (s *Store) Load(filename string, data []byte) (*Entry, error) {
	return s.LoadWithOptions(filename, data, s.opts)
}

// LoadWithOptions is Load with per-call parser options, used when a request
// overrides the store defaults.
func (s *Store) LoadWithOptions(filename string, data []byte, opts parser.Options) (*Entry, error) {
	p, err := parser.ForFile(filename, opts)
	if err != nil {
		return nil, err
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	entry := &Entry{
		ID:          newDocID(),
		Filename:    filename,
		Title:       doc.Title,
		ContentHash: ContentHashHex(data),
		LoadedAt:    time.Now(),
		Document:    doc,
	}

	s.mu.Lock()
	s.current = entry
	s.docs[entry.ID] = entry
	s.mu.Unlock()

	return entry, nil
}

// Current returns the most recently loaded document.
func (s *Store) Current() (*doctree.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNotLoaded
	}
	return s.current.Document, nil
}

// Get returns a stored entry by ID.
func (s *Store) Get(id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

// List returns all stored entries, newest first.
func (s *Store) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Entry, 0, len(s.docs))
	for _, e := range s.docs {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoadedAt.After(out[j].LoadedAt) })
	return out
}

// Delete removes a stored entry. Deleting the current document clears it.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.docs, id)
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	return nil
}

// FindByHash returns the entry whose content hash matches, if any.
func (s *Store) FindByHash(hash string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.docs {
		if e.ContentHash == hash {
			return e, true
		}
	}
	return nil, false
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
